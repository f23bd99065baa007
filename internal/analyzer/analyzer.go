// Package analyzer implements the text analyzer (decode, segment,
// tokenize, stem, extract references) described for the indexer's
// per-file parsing stage. Every operation is pure and deterministic:
// identical bytes in always produce identical tokens, sections, and
// references out, independent of platform or run order.
package analyzer

import (
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

// headingWeight is the multiplier applied to tokens found on a heading
// line when accumulating term frequencies.
const headingWeight = 2

// Result bundles everything the indexer needs from one file's analysis.
type Result struct {
	Sections   []model.Section
	TermFreq   map[string]int
	DocLength  int
	References []model.Reference
	LineCount  int
}

// Analyze decodes raw file bytes and produces sections, term frequencies,
// and references. Malformed UTF-8 is replaced, never rejected; Analyze
// never returns an error because a bad file is reflected in whatever
// sections parse rather than aborting the whole build.
func Analyze(raw []byte) Result {
	text := toValidUTF8(raw)
	lines := splitLines(text)

	sections := segment(lines)
	for i := range sections {
		sections[i].Body = sectionBody(lines, sections[i].StartLine, sections[i].EndLine)
	}

	codeLines := codeLineFlags(lines)
	headingLines := headingLineSet(sections)
	fmEnd := frontmatterEnd(lines)

	termFreq := make(map[string]int)
	for i, line := range lines {
		if i+1 < fmEnd {
			continue
		}
		if codeLines[i] {
			continue
		}
		weight := 1
		if headingLines[i+1] {
			weight = headingWeight
		}
		for _, raw := range splitWords(line) {
			word := normalize(raw)
			if !acceptToken(word) {
				continue
			}
			termFreq[Stem(word)] += weight
		}
	}

	docLength := 0
	for _, c := range termFreq {
		docLength += c
	}

	refs := extractReferences(lines)

	return Result{
		Sections:   sections,
		TermFreq:   termFreq,
		DocLength:  docLength,
		References: refs,
		LineCount:  len(lines),
	}
}

// toValidUTF8 decodes raw bytes as text, replacing each malformed UTF-8
// sequence with U+FFFD.
func toValidUTF8(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}

// headingLineSet returns the set of 1-indexed line numbers that are
// section heading lines (level >= 1; the synthetic level-0 prelude has no
// heading line).
func headingLineSet(sections []model.Section) map[int]bool {
	out := make(map[int]bool, len(sections))
	for _, s := range sections {
		if s.Level > 0 {
			out[s.StartLine] = true
		}
	}
	return out
}

// TokenizeQuery applies the same normalize/accept/stem pipeline as
// indexing, for use by the ranking engine when preparing query terms.
func TokenizeQuery(q string) []string {
	var out []string
	for _, raw := range splitWords(q) {
		word := normalize(raw)
		if !acceptToken(word) {
			continue
		}
		out = append(out, Stem(word))
	}
	return out
}

// SectionTermFreq re-tokenizes a section's body on demand, for the
// section-level BM25 pass which does not persist per-section term
// frequencies. isHeadingSection applies the heading-weight multiplier to
// the section's first line (its heading text).
func SectionTermFreq(body string, isHeadingSection bool) map[string]int {
	lines := splitLines(body)
	codeLines := codeLineFlags(lines)

	tf := make(map[string]int)
	for i, line := range lines {
		if codeLines[i] {
			continue
		}
		weight := 1
		if isHeadingSection && i == 0 {
			weight = headingWeight
		}
		for _, raw := range splitWords(line) {
			word := normalize(raw)
			if !acceptToken(word) {
				continue
			}
			tf[Stem(word)] += weight
		}
	}
	return tf
}
