package analyzer

import (
	"regexp"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

var (
	atxPattern   = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	fenceMarker  = regexp.MustCompile("^```")
)

// splitLines splits text into lines without the trailing newline, matching
// a 1-indexed line numbering scheme.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

type headingMark struct {
	line  int
	level int
	text  string
}

// frontmatterEnd returns the 1-indexed line number where content resumes
// after a leading YAML frontmatter block ("---" on line 1, a closing
// "---" on its own line, nothing in between required). Returns 0 if line
// 1 is not a frontmatter delimiter or no closing delimiter is found.
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 2
		}
	}
	return 0
}

// segment splits lines into ATX-heading-delimited sections. A leading YAML
// frontmatter block is skipped entirely rather than folded into the
// prelude section. Heading lines inside fenced code blocks are not
// treated as headings. A synthetic level-0 section covers any prelude
// before the first heading, and the whole document if there are no
// headings at all.
func segment(lines []string) []model.Section {
	lineCount := len(lines)
	fmEnd := frontmatterEnd(lines)

	var marks []headingMark
	inFence := false
	for i, l := range lines {
		lineNo := i + 1
		if lineNo < fmEnd {
			continue
		}
		if fenceMarker.MatchString(strings.TrimSpace(l)) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := atxPattern.FindStringSubmatch(l); m != nil {
			marks = append(marks, headingMark{line: lineNo, level: len(m[1]), text: strings.TrimSpace(m[2])})
		}
	}

	preludeStart := 1
	if fmEnd > 1 {
		preludeStart = fmEnd
	}

	if len(marks) == 0 {
		if preludeStart > lineCount {
			return []model.Section{{Heading: "", Level: 0, StartLine: preludeStart, EndLine: preludeStart}}
		}
		return []model.Section{{Heading: "", Level: 0, StartLine: preludeStart, EndLine: lineCount + 1}}
	}

	var sections []model.Section
	if marks[0].line > preludeStart {
		sections = append(sections, model.Section{Heading: "", Level: 0, StartLine: preludeStart, EndLine: marks[0].line})
	}
	for idx, m := range marks {
		end := lineCount + 1
		if idx+1 < len(marks) {
			end = marks[idx+1].line
		}
		sections = append(sections, model.Section{Heading: m.text, Level: m.level, StartLine: m.line, EndLine: end})
	}
	return sections
}

// sectionBody joins the lines in the half-open 1-indexed range
// [startLine, endLine).
func sectionBody(lines []string, startLine, endLine int) string {
	start := startLine - 1
	end := endLine - 1
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// codeLineFlags returns, per line, whether that line falls inside a fenced
// code block or an indented (4-space/tab) code block. Such lines remain
// part of the section body but are excluded from term-frequency indexing.
func codeLineFlags(lines []string) []bool {
	flags := make([]bool, len(lines))
	inFence := false
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		if fenceMarker.MatchString(trimmed) {
			inFence = !inFence
			flags[i] = true // the fence delimiter line itself isn't indexed
			continue
		}
		if inFence {
			flags[i] = true
			continue
		}
		if strings.HasPrefix(l, "    ") || strings.HasPrefix(l, "\t") {
			flags[i] = true
		}
	}
	return flags
}
