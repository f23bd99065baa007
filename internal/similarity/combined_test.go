package similarity

import (
	"testing"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
)

func docFromTokens(path string, tokens []string) *model.Document {
	tf := make(map[string]int, len(tokens))
	set := make(map[string]struct{}, len(tokens))
	weights := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
		set[t] = struct{}{}
		weights[t]++
	}
	return &model.Document{
		Path:      path,
		TermFreq:  tf,
		DocLength: len(tokens),
		ModTime:   time.Unix(0, 0),
		SimHash:   fingerprint.SimHash(weights),
		MinHash:   fingerprint.MinHash(set, 128),
	}
}

func TestCombined_SelfSimilarityIsOne(t *testing.T) {
	d := docFromTokens("a.md", []string{"kubernetes", "deploy", "cluster", "pod"})
	assert.InDelta(t, 1.0, Combined(d, d), 1e-9)
}

func TestCombined_BoundedInZeroOne(t *testing.T) {
	a := docFromTokens("a.md", []string{"kubernetes", "deploy", "cluster"})
	b := docFromTokens("b.md", []string{"frontend", "react", "css"})

	s := Combined(a, b)
	assert.GreaterOrEqual(t, s, 0.0)
	assert.LessOrEqual(t, s, 1.0)
}
