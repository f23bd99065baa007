package linkgraph

import (
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

// BrokenReason classifies why a relative-path reference failed to
// resolve.
type BrokenReason string

const (
	ReasonMissingFile   BrokenReason = "missing_file"
	ReasonMissingAnchor BrokenReason = "missing_anchor"
	ReasonPlaceholder   BrokenReason = "placeholder"
)

// BrokenLink is one reported broken relative-path reference.
type BrokenLink struct {
	SourcePath string       `json:"source_path"`
	SourceLine int          `json:"source_line"`
	RawTarget  string       `json:"raw_target"`
	Reason     BrokenReason `json:"reason"`
}

// placeholderTargets are raw link targets the analyzer treats as
// intentional stand-ins rather than real broken links — authors write
// these deliberately in drafts.
var placeholderTargets = map[string]struct{}{
	"":    {},
	"#":   {},
	"TODO": {},
	"TBD":  {},
}

// BrokenLinks scans every document's relative-path references for
// resolution failures: a missing target file, a target that resolved but
// whose anchor slug matches no ATX heading in it, or a placeholder
// target. Only ATX headings are considered
// anchor targets — setext headings never match.
func BrokenLinks(fi *model.ForwardIndex) []BrokenLink {
	var out []BrokenLink

	paths := make([]string, 0, len(fi.Files))
	for p := range fi.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		doc := fi.Files[path]
		for _, ref := range doc.References {
			if ref.Kind != model.RefRelativePath {
				continue
			}

			if _, isPlaceholder := placeholderTargets[ref.Raw]; isPlaceholder {
				out = append(out, BrokenLink{
					SourcePath: path, SourceLine: ref.SourceLine,
					RawTarget: ref.Raw, Reason: ReasonPlaceholder,
				})
				continue
			}

			if !ref.Resolved {
				out = append(out, BrokenLink{
					SourcePath: path, SourceLine: ref.SourceLine,
					RawTarget: ref.Raw, Reason: ReasonMissingFile,
				})
				continue
			}

			if ref.Anchor == "" {
				continue
			}
			target, ok := fi.Files[ref.Target]
			if !ok {
				continue
			}
			if !anchorExists(target, ref.Anchor) {
				out = append(out, BrokenLink{
					SourcePath: path, SourceLine: ref.SourceLine,
					RawTarget: ref.Raw, Reason: ReasonMissingAnchor,
				})
			}
		}
	}

	if out == nil {
		out = []BrokenLink{}
	}
	return out
}

// anchorExists reports whether slugify(anchor) matches the slug of any
// ATX heading section in doc.
func anchorExists(doc *model.Document, anchor string) bool {
	slug := model.Slugify(anchor)
	for _, sec := range doc.Sections {
		if sec.Level == 0 {
			continue
		}
		if sec.HeadingSlug() == slug {
			return true
		}
	}
	return false
}
