package similarity

import (
	"fmt"
	"testing"

	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordSet returns a deterministic token set of n words drawn from a fixed
// vocabulary, offset by start, so two sets built with overlapping ranges
// share exactly the overlapping words.
func wordSet(start, n int) map[string]struct{} {
	out := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		out[fmt.Sprintf("tok%03d", start+i)] = struct{}{}
	}
	return out
}

func TestLSH_CandidatePairs_FindsPlantedNearDuplicates(t *testing.T) {
	lsh := NewLSH(16, 8)

	// Given: 20 planted pairs, each sharing 80 of 100 tokens (Jaccard ~0.67)
	planted := make(map[[2]string]struct{})
	for i := 0; i < 20; i++ {
		base := i * 200
		a := fmt.Sprintf("pair%d-a", i)
		b := fmt.Sprintf("pair%d-b", i)
		sigA := fingerprint.MinHash(wordSet(base, 100), 128)
		sigB := fingerprint.MinHash(wordSet(base+20, 100), 128) // 80-token overlap
		lsh.Add(a, sigA)
		lsh.Add(b, sigB)
		key := [2]string{a, b}
		if a > b {
			key = [2]string{b, a}
		}
		planted[key] = struct{}{}
	}

	// And: unrelated singleton documents with disjoint vocabularies
	for i := 0; i < 10; i++ {
		sig := fingerprint.MinHash(wordSet(100000+i*1000, 50), 128)
		lsh.Add(fmt.Sprintf("noise%d", i), sig)
	}

	pairs := lsh.CandidatePairs()
	found := make(map[[2]string]struct{}, len(pairs))
	for _, p := range pairs {
		found[p] = struct{}{}
	}

	hits := 0
	for key := range planted {
		if _, ok := found[key]; ok {
			hits++
		}
	}

	// Then: recall over the planted pairs clears the required threshold
	recall := float64(hits) / float64(len(planted))
	assert.GreaterOrEqual(t, recall, 0.95)
}

func TestLSH_CandidatePairs_DeterministicOrdering(t *testing.T) {
	lsh := NewLSH(16, 8)
	sig := fingerprint.MinHash(wordSet(0, 50), 128)
	lsh.Add("b", sig)
	lsh.Add("a", sig)
	lsh.Add("c", sig)

	pairs := lsh.CandidatePairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, [2]string{"a", "b"}, pairs[0])
	assert.Equal(t, [2]string{"a", "c"}, pairs[1])
	assert.Equal(t, [2]string{"b", "c"}, pairs[2])
}
