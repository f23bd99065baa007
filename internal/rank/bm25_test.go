package rank

import (
	"testing"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(path string, tf map[string]int, length int) *model.Document {
	return &model.Document{Path: path, TermFreq: tf, DocLength: length, ModTime: time.Unix(0, 0)}
}

func TestScore_MoreOccurrencesScoreHigherThanFewer(t *testing.T) {
	// Given: two documents, one containing the query term more often
	cfg := DefaultConfig()
	idf := map[string]float64{"kubernetes": 2.0}

	lowTF := map[string]int{"kubernetes": 1}
	highTF := map[string]int{"kubernetes": 5}

	low := Score(cfg, []string{"kubernetes"}, lowTF, 10, 10, idf)
	high := Score(cfg, []string{"kubernetes"}, highTF, 10, 10, idf)

	// Then: BM25 is monotonically increasing in term frequency (fixed length)
	assert.Greater(t, high, low)
}

func TestScore_ZeroAvgDocLengthReturnsZero(t *testing.T) {
	cfg := DefaultConfig()
	s := Score(cfg, []string{"a"}, map[string]int{"a": 3}, 10, 0, map[string]float64{"a": 1})
	assert.Equal(t, 0.0, s)
}

func TestQuery_EmptyQueryReturnsEmptyNotNilResult(t *testing.T) {
	cfg := DefaultConfig()
	fi := &model.ForwardIndex{Files: map[string]*model.Document{}, AvgDocLength: 1}

	got := Query(cfg, fi, "   ")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_OrdersByDescendingScoreThenAscendingPath(t *testing.T) {
	// Given: two docs with identical term frequency, so identical scores
	cfg := DefaultConfig()
	tf := map[string]int{analyzer.Stem("deploy"): 2}
	fi := &model.ForwardIndex{
		Files: map[string]*model.Document{
			"z-doc.md": newDoc("z-doc.md", tf, 10),
			"a-doc.md": newDoc("a-doc.md", tf, 10),
		},
		AvgDocLength: 10,
		IDF:          map[string]float64{analyzer.Stem("deploy"): 1.5},
	}

	got := Query(cfg, fi, "deploy")

	require.Len(t, got, 2)
	// Then: equal scores tie-break by ascending path
	assert.Equal(t, "a-doc.md", got[0].Path)
	assert.Equal(t, "z-doc.md", got[1].Path)
}

func TestQuery_RespectsTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 1
	tf := map[string]int{analyzer.Stem("deploy"): 2}
	fi := &model.ForwardIndex{
		Files: map[string]*model.Document{
			"a.md": newDoc("a.md", tf, 10),
			"b.md": newDoc("b.md", tf, 10),
		},
		AvgDocLength: 10,
		IDF:          map[string]float64{analyzer.Stem("deploy"): 1.0},
	}

	got := Query(cfg, fi, "deploy")
	assert.Len(t, got, 1)
}

func TestTopDocs_ClampsToAvailableLength(t *testing.T) {
	docs := []DocScore{{Path: "a"}, {Path: "b"}}
	assert.Len(t, TopDocs(docs, 10), 2)
	assert.Len(t, TopDocs(docs, 1), 1)
	assert.Len(t, TopDocs(docs, 0), 2)
}
