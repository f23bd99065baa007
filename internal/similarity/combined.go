// Package similarity implements the similarity engine: combined
// document similarity, LSH-bucketed duplicate detection, and section-level
// near-duplicate clustering.
package similarity

import (
	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// Weights for the combined document similarity formula:
// S(A,B) = 0.4*Jaccard(keywords) + 0.3*SimHashSim + 0.3*MinHashSim.
const (
	weightJaccard = 0.4
	weightSimHash = 0.3
	weightMinHash = 0.3
)

// Combined computes the weighted combination of keyword Jaccard, SimHash
// similarity, and MinHash similarity between two documents.
func Combined(a, b *model.Document) float64 {
	j := fingerprint.Jaccard(a.Keywords(), b.Keywords())
	sh := fingerprint.SimHashSimilarity(a.SimHash, b.SimHash)
	mh := fingerprint.MinHashSimilarity(a.MinHash, b.MinHash)
	return weightJaccard*j + weightSimHash*sh + weightMinHash*mh
}
