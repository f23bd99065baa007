// Package rank implements the BM25 ranking engine: document-level
// scoring over the forward index's term frequencies and IDF map, and
// section-level scoring by on-demand re-tokenization.
package rank

import (
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// Config carries the BM25 free parameters and result-size defaults.
type Config struct {
	K1       float64
	B        float64
	TopK     int
	TopMDocs int
}

// DefaultConfig returns k1=1.5, b=0.75, topK=10, topMDocs=20.
func DefaultConfig() Config {
	return Config{K1: 1.5, B: 0.75, TopK: 10, TopMDocs: 20}
}

// DocScore is one document's BM25 result.
type DocScore struct {
	Path  string
	Score float64
}

// Score computes the BM25 score of query terms (already stemmed) against a
// single document's term frequencies.
func Score(cfg Config, queryTerms []string, tf map[string]int, docLength int, avgDocLength float64, idf map[string]float64) float64 {
	if avgDocLength == 0 {
		return 0
	}
	var score float64
	for _, t := range queryTerms {
		f := float64(tf[t])
		if f == 0 {
			continue
		}
		termIDF := idf[t]
		numerator := f * (cfg.K1 + 1)
		denominator := f + cfg.K1*(1-cfg.B+cfg.B*float64(docLength)/avgDocLength)
		score += termIDF * (numerator / denominator)
	}
	return score
}

// Query runs document-level BM25 across the whole forward index and
// returns the top cfg.TopK documents with score > 0, sorted by descending
// score then ascending path. An empty query (after tokenization/stemming)
// returns an empty, non-nil result — not an error.
func Query(cfg Config, fi *model.ForwardIndex, query string) []DocScore {
	terms := analyzer.TokenizeQuery(query)
	if len(terms) == 0 {
		return []DocScore{}
	}

	results := make([]DocScore, 0, len(fi.Files))
	for path, doc := range fi.Files {
		s := Score(cfg, terms, doc.TermFreq, doc.DocLength, fi.AvgDocLength, fi.IDF)
		if s > 0 {
			results = append(results, DocScore{Path: path, Score: s})
		}
	}

	sortScores(results)

	k := cfg.TopK
	if k <= 0 || k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// sortScores orders by descending score then ascending path, per the
// determinism requirement ("ties are broken by ascending path").
func sortScores(results []DocScore) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})
}
