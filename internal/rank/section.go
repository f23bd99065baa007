package rank

import (
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// SectionScore identifies one scored section within a document.
type SectionScore struct {
	Path    string
	Index   int // index into Document.Sections
	Section model.Section
	Score   float64
}

// QuerySections runs section-level BM25 over every section of the
// top-M documents (by document-level BM25): the corpus for
// this pass is restricted to those documents' sections, and each
// section's term frequencies are re-derived from its body on demand.
// Document-level IDF is reused rather than recomputed, per the
// explicit instruction that per-section IDF is not stored.
func QuerySections(cfg Config, fi *model.ForwardIndex, query string, topDocs []DocScore) []SectionScore {
	terms := analyzer.TokenizeQuery(query)
	if len(terms) == 0 {
		return []SectionScore{}
	}

	var out []SectionScore
	for _, d := range topDocs {
		doc, ok := fi.Files[d.Path]
		if !ok {
			continue
		}
		for i, sec := range doc.Sections {
			tf := analyzer.SectionTermFreq(sec.Body, sec.Level > 0)
			length := 0
			for _, c := range tf {
				length += c
			}
			s := Score(cfg, terms, tf, length, fi.AvgDocLength, fi.IDF)
			out = append(out, SectionScore{Path: d.Path, Index: i, Section: sec, Score: s})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Section.StartLine < out[j].Section.StartLine
	})
	return out
}

// TopDocs restricts a full Query result to at most m entries, used to
// build the §4.4 top-M document set that section-level BM25 is scoped to.
func TopDocs(docs []DocScore, m int) []DocScore {
	if m <= 0 || m > len(docs) {
		m = len(docs)
	}
	return docs[:m]
}
