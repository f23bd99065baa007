package assembler

import (
	"regexp"
	"strings"
)

// tableRowPattern matches a markdown table row, used to detect table
// blocks for atomic-span preservation.
var tableRowPattern = regexp.MustCompile(`^\s*\|.*\|\s*$`)

// atomicSpan is a byte range within a section body that must never be
// split mid-span during truncation: a fenced code block or a contiguous
// run of table rows, mirroring the teacher's findAtomicBlocks/
// mergeAtomicBlocks treatment of code fences and tables (SPEC_FULL §5).
type atomicSpan struct {
	start, end int // byte offsets, end exclusive
}

// findAtomicSpans scans text for fenced code blocks and table blocks.
func findAtomicSpans(text string) []atomicSpan {
	var spans []atomicSpan

	lines := strings.Split(text, "\n")
	offsets := make([]int, len(lines)+1)
	pos := 0
	for i, l := range lines {
		offsets[i] = pos
		pos += len(l) + 1
	}
	offsets[len(lines)] = pos

	inFence := false
	fenceStart := 0
	tableStart := -1
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		switch {
		case strings.HasPrefix(trimmed, "```"):
			if !inFence {
				inFence = true
				fenceStart = offsets[i]
			} else {
				inFence = false
				spans = append(spans, atomicSpan{start: fenceStart, end: offsets[i+1]})
			}
		case inFence:
			// inside fence, nothing to do per line
		case tableRowPattern.MatchString(l):
			if tableStart < 0 {
				tableStart = offsets[i]
			}
		default:
			if tableStart >= 0 {
				spans = append(spans, atomicSpan{start: tableStart, end: offsets[i]})
				tableStart = -1
			}
		}
	}
	if inFence {
		spans = append(spans, atomicSpan{start: fenceStart, end: offsets[len(lines)]})
	}
	if tableStart >= 0 {
		spans = append(spans, atomicSpan{start: tableStart, end: offsets[len(lines)]})
	}
	return spans
}

// snapToAtomicBoundary adjusts a truncation cut point so it never lands
// inside an atomic span: if cut falls within a span, the cut moves back to
// that span's start, dropping the whole (partial) block rather than
// slicing it.
func snapToAtomicBoundary(text string, cut int) int {
	for _, span := range findAtomicSpans(text) {
		if cut > span.start && cut < span.end {
			return span.start
		}
	}
	return cut
}
