package assembler

import (
	"math"
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

// sectionEpsilonFactor is ε in the "score > ε (ε = 0.15 ·
// max_section_score)" admission rule.
const sectionEpsilonFactor = 0.15

// combinedBM25Weight / combinedCanonWeight are the 0.7/0.3 weights in
// "combined score = 0.7·bm25_norm + 0.3·canonicality".
const (
	combinedBM25Weight  = 0.7
	combinedCanonWeight = 0.3
)

// primarySection is one section admitted by Stage 1.
type primarySection struct {
	Path          string
	Index         int
	Section       model.Section
	BM25          float64
	BM25Norm      float64
	Canonicality  float64
	CombinedScore float64
	Body          string
}

// selectPrimary runs Stage 1: document-level BM25 to find the top M
// documents, section-level BM25 restricted to those documents' sections,
// then the combined-score ranking.
func (a *Assembler) selectPrimary(req Request, graph *linkgraph.Graph) []primarySection {
	m := req.MaxSections
	if m > 20 || m <= 0 {
		m = 20
	}

	docScores := rank.Query(a.Rank, a.FI, req.Query)
	topDocs := rank.TopDocs(docScores, m)
	if len(topDocs) == 0 {
		return nil
	}

	sectionScores := rank.QuerySections(a.Rank, a.FI, req.Query, topDocs)
	if len(sectionScores) == 0 {
		return nil
	}

	maxScore := sectionScores[0].Score
	epsilon := sectionEpsilonFactor * maxScore

	canonByPath := make(map[string]float64, len(topDocs))
	for _, d := range topDocs {
		doc := a.FI.Files[d.Path]
		age := linkgraph.AgeDays(doc.ModTime, a.Now)
		canonByPath[d.Path] = linkgraph.Canonicality(d.Path, graph.InboundCount(d.Path), age)
	}

	var out []primarySection
	for _, s := range sectionScores {
		if s.Score <= epsilon {
			continue
		}
		bm25Norm := 0.0
		if maxScore > 0 {
			bm25Norm = s.Score / maxScore
		}
		canon := canonByPath[s.Path]
		combined := combinedBM25Weight*bm25Norm + combinedCanonWeight*canon

		out = append(out, primarySection{
			Path: s.Path, Index: s.Index, Section: s.Section,
			BM25: s.Score, BM25Norm: bm25Norm, Canonicality: canon,
			CombinedScore: combined,
			Body:          bodyOf(a, s.Path, s.Section),
		})
	}

	sortPrimary(out)

	if len(out) > m {
		out = out[:m]
	}
	return out
}

// sortPrimary orders by descending combined score, ties broken by
// ascending (path, start line).
func sortPrimary(sections []primarySection) {
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].CombinedScore != sections[j].CombinedScore {
			return sections[i].CombinedScore > sections[j].CombinedScore
		}
		if sections[i].Path != sections[j].Path {
			return sections[i].Path < sections[j].Path
		}
		return sections[i].Section.StartLine < sections[j].Section.StartLine
	})
}

func bodyOf(a *Assembler, path string, sec model.Section) string {
	if sec.Body != "" {
		return sec.Body
	}
	body, err := analyzer.LoadSectionBody(a.Root, path, sec.StartLine, sec.EndLine)
	if err != nil {
		return ""
	}
	return body
}

// queryOverlapScore returns the fraction of query terms present among the
// stemmed tokens of a section's body — used by Stage 4's refinement.
func queryOverlapScore(body string, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	tf := analyzer.SectionTermFreq(body, false)
	hits := 0
	for _, t := range queryTerms {
		if tf[t] > 0 {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTerms))
}

// logRefBoost computes 0.5·canonicality + 0.5·log(1 + refsToTarget), the
// tie-break used to order cross-reference targets within a priority
// class, per Stage 2's cross-reference expansion.
func logRefBoost(canonicality float64, refsToTarget int) float64 {
	return 0.5*canonicality + 0.5*math.Log(1+float64(refsToTarget))
}
