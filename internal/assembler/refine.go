package assembler

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
)

// Default extractive-refinement weights, Stage 4:
// score = λ1·query_overlap + λ2·position_prior + λ3·structural_flag − λ4·length_penalty.
const (
	lambdaQueryOverlap = 0.6
	lambdaPosition     = 0.2
	lambdaStructural   = 0.3
	lambdaLength       = 0.05

	// refineSkipTokens is the section-size threshold below which
	// refinement is skipped entirely.
	refineSkipTokens = 150
)

var (
	sentenceSplit  = regexp.MustCompile(`(?:[.!?][)"']?)\s+`)
	bulletMarker   = regexp.MustCompile(`^\s*([-*+]|\d+[.)])\s+`)
	inlineCodeSpan = regexp.MustCompile("`[^`]+`")
)

type sentence struct {
	text          string
	inCodeFence   bool
	isListItem    bool
	hasInlineCode bool
}

// refine runs Stage 4: split the body into sentences, score each, and keep
// those scoring at or above the median — always keeping code spans and
// list items atomically — while preserving original order. Sections at or
// under refineSkipTokens are returned unchanged.
func refine(body string, query string) string {
	if EstimateTokens(body) <= refineSkipTokens {
		return body
	}

	sentences := splitSentences(body)
	if len(sentences) <= 1 {
		return body
	}

	queryTerms := analyzer.TokenizeQuery(query)
	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		scores[i] = scoreSentence(s, i, len(sentences), queryTerms)
	}

	median := medianOf(scores)

	var kept []string
	for i, s := range sentences {
		if s.inCodeFence || s.isListItem || scores[i] >= median {
			kept = append(kept, s.text)
		}
	}
	if len(kept) == 0 {
		return body
	}
	return strings.Join(kept, " ")
}

// splitSentences breaks text into sentence-like units, treating a fenced
// code block as one atomic unit and flagging list items so they are never
// dropped.
func splitSentences(text string) []sentence {
	var out []sentence
	lines := strings.Split(text, "\n")

	var buf strings.Builder
	inFence := false
	var fenceBuf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		for _, part := range sentenceSplit.Split(buf.String(), -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, sentence{text: part, hasInlineCode: inlineCodeSpan.MatchString(part)})
		}
		buf.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if !inFence {
				flush()
				inFence = true
				fenceBuf.WriteString(line)
			} else {
				fenceBuf.WriteString("\n")
				fenceBuf.WriteString(line)
				out = append(out, sentence{text: fenceBuf.String(), inCodeFence: true})
				fenceBuf.Reset()
				inFence = false
			}
			continue
		}
		if inFence {
			if fenceBuf.Len() > 0 {
				fenceBuf.WriteString("\n")
			}
			fenceBuf.WriteString(line)
			continue
		}
		if bulletMarker.MatchString(line) {
			flush()
			out = append(out, sentence{text: line, isListItem: true})
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(line)
	}
	if inFence && fenceBuf.Len() > 0 {
		out = append(out, sentence{text: fenceBuf.String(), inCodeFence: true})
	}
	flush()

	return out
}

func scoreSentence(s sentence, index, total int, queryTerms []string) float64 {
	overlap := queryOverlapScore(s.text, queryTerms)
	position := 1.0
	if total > 1 {
		position = 1 - float64(index)/float64(total-1)
	}
	structural := 0.0
	if s.inCodeFence || s.isListItem || s.hasInlineCode {
		structural = 1
	}
	lengthPenalty := float64(len(s.text)) / 500.0
	if lengthPenalty > 1 {
		lengthPenalty = 1
	}

	return lambdaQueryOverlap*overlap + lambdaPosition*position + lambdaStructural*structural - lambdaLength*lengthPenalty
}

func medianOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
