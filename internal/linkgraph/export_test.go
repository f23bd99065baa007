package linkgraph

import (
	"testing"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docFromWeights builds a document whose SimHash/MinHash/TermFreq are all
// derived from the same token-weight map, so two documents built from equal
// maps score as near-duplicates under the combined similarity formula.
func docFromWeights(path string, weights map[string]int) *model.Document {
	set := make(map[string]struct{}, len(weights))
	length := 0
	for tok, n := range weights {
		set[tok] = struct{}{}
		length += n
	}
	return &model.Document{
		Path:      path,
		ModTime:   time.Unix(0, 0),
		TermFreq:  weights,
		DocLength: length,
		SimHash:   fingerprint.SimHash(weights),
		MinHash:   fingerprint.MinHash(set, 128),
	}
}

func TestExportGraph_IncludesReferenceEdges(t *testing.T) {
	a := &model.Document{Path: "a.md", ModTime: time.Unix(0, 0), References: []model.Reference{
		{Kind: model.RefRelativePath, Target: "b.md", Resolved: true},
	}}
	b := &model.Document{Path: "b.md", ModTime: time.Unix(0, 0)}
	fi := buildIndex(map[string]*model.Document{"a.md": a, "b.md": b})

	export := ExportGraph(fi, 0.9, 16, 8)

	assert.Equal(t, []string{"a.md", "b.md"}, export.Nodes)
	require.Len(t, export.Edges, 1)
	assert.Equal(t, Edge{From: "a.md", To: "b.md", Kind: EdgeReferences}, export.Edges[0])
}

func TestSuggestConsolidation_PairsDuplicateDocumentsWithCanonicality(t *testing.T) {
	shared := map[string]int{"setup": 3, "deploy": 2, "kubernetes": 1}
	a := docFromWeights("guide.md", shared)
	b := docFromWeights("docs/archived/guide-copy.md", shared)
	fi := buildIndex(map[string]*model.Document{"guide.md": a, "docs/archived/guide-copy.md": b})
	g := Build(fi)

	suggestions := SuggestConsolidation(fi, g, time.Unix(1000, 0), 0.9, 0.9, 2, 16, 8)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "document", suggestions[0].Kind)
	assert.Contains(t, suggestions[0].Canonicality, "guide.md")
	assert.Contains(t, suggestions[0].Canonicality, "docs/archived/guide-copy.md")
}
