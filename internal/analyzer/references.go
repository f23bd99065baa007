package analyzer

import (
	"regexp"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

var (
	// linkPattern captures an optional leading '!' (image marker), the
	// label, and the target of a markdown link.
	linkPattern = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

	// identifierPattern matches bare identifier-style references such as
	// ADR-013 or RFC042: a letter run, an optional separator, 2-4 digits.
	identifierPattern = regexp.MustCompile(`\b([A-Za-z]+)[-_ ]?(\d{2,4})\b`)

	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)
)

// extractReferences scans every line of a document for markdown links and
// bare identifier references. Markdown link spans are excluded from the
// identifier scan on the same line to avoid double-counting a link whose
// label happens to contain an identifier-shaped token.
func extractReferences(lines []string) []model.Reference {
	var refs []model.Reference

	for i, line := range lines {
		lineNum := i + 1
		consumed := make([]bool, len(line))

		for _, m := range linkPattern.FindAllStringSubmatchIndex(line, -1) {
			for p := m[0]; p < m[1]; p++ {
				consumed[p] = true
			}
			isImage := line[m[2]:m[3]] == "!"
			target := line[m[6]:m[7]]

			ref := model.Reference{Raw: target, SourceLine: lineNum}
			switch {
			case isImage:
				ref.Kind = model.RefImage
			case schemePattern.MatchString(target):
				ref.Kind = model.RefExternal
			default:
				ref.Kind = model.RefRelativePath
				path, anchor := splitAnchor(target)
				ref.Target = path
				ref.Anchor = anchor
			}
			refs = append(refs, ref)
		}

		for _, m := range identifierPattern.FindAllStringIndex(line, -1) {
			if anyConsumed(consumed, m[0], m[1]) {
				continue
			}
			raw := line[m[0]:m[1]]
			refs = append(refs, model.Reference{
				Kind:       model.RefIdentifier,
				Raw:        raw,
				SourceLine: lineNum,
			})
		}
	}

	return refs
}

// MatchIdentifier extracts the digit run from the first identifier-style
// match in s (e.g. "ADR-013-retries" -> "013", true), for use by the
// indexer's identifier-table construction.
func MatchIdentifier(s string) (string, bool) {
	m := identifierPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[2], true
}

func anyConsumed(consumed []bool, start, end int) bool {
	for p := start; p < end && p < len(consumed); p++ {
		if consumed[p] {
			return true
		}
	}
	return false
}

// splitAnchor separates a "#fragment" suffix from a link target.
func splitAnchor(target string) (path, anchor string) {
	if idx := strings.Index(target, "#"); idx >= 0 {
		return target[:idx], target[idx+1:]
	}
	return target, ""
}
