package similarity

import (
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

// Pair is one duplicate-candidate document pair with its combined
// similarity score.
type Pair struct {
	PathA      string
	PathB      string
	Similarity float64
}

// DuplicatePairs builds LSH candidate pairs from the corpus's MinHash
// signatures (bands=16, rows=8 by default), scores each
// candidate with the combined similarity formula, and returns pairs with
// similarity >= threshold, sorted in ascending (pathA, pathB) order.
//
// Candidate generation via banding keeps this sub-quadratic in the common
// case where duplicates are sparse: only documents sharing a band bucket
// are ever compared, rather than every pair in the corpus.
func DuplicatePairs(files map[string]*model.Document, threshold float64, bands, rows int) []Pair {
	lsh := NewLSH(bands, rows)
	for path, doc := range files {
		lsh.Add(path, doc.MinHash)
	}

	var pairs []Pair
	for _, cand := range lsh.CandidatePairs() {
		a, b := files[cand[0]], files[cand[1]]
		if a == nil || b == nil {
			continue
		}
		s := Combined(a, b)
		if s >= threshold {
			pairs = append(pairs, Pair{PathA: cand[0], PathB: cand[1], Similarity: s})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].PathA != pairs[j].PathA {
			return pairs[i].PathA < pairs[j].PathA
		}
		return pairs[i].PathB < pairs[j].PathB
	})
	return pairs
}
