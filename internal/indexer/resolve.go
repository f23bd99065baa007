package indexer

import (
	"fmt"
	stdpath "path"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// resolveReferences resolves every relative-path and identifier reference
// in the index against the now-complete set of documents, per §4.3 step 6:
// drop the anchor (already separated at extraction time), resolve against
// the source document's directory, normalize . and .., and look up the
// result in ForwardIndex.Files. Unresolved references are left with
// Resolved=false rather than dropped, so the link graph can report them as broken.
func resolveReferences(fi *model.ForwardIndex) {
	for sourcePath, doc := range fi.Files {
		for i := range doc.References {
			ref := &doc.References[i]
			switch ref.Kind {
			case model.RefRelativePath:
				resolved := resolveRelative(sourcePath, ref.Target)
				ref.Target = resolved
				_, ref.Resolved = fi.Files[resolved]

			case model.RefIdentifier:
				digits, ok := analyzer.MatchIdentifier(ref.Raw)
				if !ok {
					continue
				}
				key := padKey(digits, fi.IdentifierWidth)
				if target, ok := fi.IdentifierKeys[key]; ok {
					ref.Target = target
					ref.Resolved = true
				}
			}
		}
	}
}

// resolveRelative resolves a link target against the directory of the
// document that contains it, using posix-style join/clean since document
// paths are always slash-separated regardless of host OS.
func resolveRelative(sourcePath, target string) string {
	dir := stdpath.Dir(sourcePath)
	return stdpath.Clean(stdpath.Join(dir, target))
}

func padKey(digits string, width int) string {
	n := 0
	fmt.Sscanf(digits, "%d", &n)
	return fmt.Sprintf("%0*d", width, n)
}
