package linkgraph

import (
	"sort"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

// Graph is a derived, read-only view computed from a ForwardIndex: inbound
// edges, the reverse map the rest of this package's operations are built
// on. It holds no logic of its own beyond the one pass that builds it —
// every other operation (backlinks, orphans, canonicality, ...) is a pure
// function over a Graph plus the ForwardIndex it was built from.
type Graph struct {
	fi       *model.ForwardIndex
	inbound  map[string][]string // target path -> sorted source paths
}

// Build computes the inbound-edge reverse map from every resolved
// relative-path and identifier reference in fi. Unresolved references do
// not contribute an edge.
func Build(fi *model.ForwardIndex) *Graph {
	inbound := make(map[string][]string)
	sources := make([]string, 0, len(fi.Files))
	for p := range fi.Files {
		sources = append(sources, p)
	}
	sort.Strings(sources)

	for _, src := range sources {
		doc := fi.Files[src]
		seen := make(map[string]struct{})
		for _, ref := range doc.References {
			if !ref.Resolved || ref.Target == "" {
				continue
			}
			if ref.Kind != model.RefRelativePath && ref.Kind != model.RefIdentifier {
				continue
			}
			if _, dup := seen[ref.Target]; dup {
				continue
			}
			seen[ref.Target] = struct{}{}
			inbound[ref.Target] = append(inbound[ref.Target], src)
		}
	}

	for target := range inbound {
		sort.Strings(inbound[target])
	}

	return &Graph{fi: fi, inbound: inbound}
}

// Backlinks returns the sorted set of documents with a resolved reference
// to path.
func (g *Graph) Backlinks(path string) []string {
	out := g.inbound[path]
	if out == nil {
		return []string{}
	}
	return append([]string(nil), out...)
}

// InboundCount returns len(Backlinks(path)) without allocating a copy.
func (g *Graph) InboundCount(path string) int {
	return len(g.inbound[path])
}

// Orphans returns documents with zero inbound resolved references,
// excluding any path containing one of the given substrings (case
// sensitive, e.g. `--exclude README`), sorted ascending.
func (g *Graph) Orphans(excludeSubstrings []string) []string {
	var out []string
	paths := make([]string, 0, len(g.fi.Files))
	for p := range g.fi.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if g.InboundCount(p) > 0 {
			continue
		}
		if containsAny(p, excludeSubstrings) {
			continue
		}
		out = append(out, p)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
