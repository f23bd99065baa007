package assembler

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
)

// render implements Stage 5: a pure function of the admitted section set
// (already in score order) to a markdown digest.
func render(query string, primary, xrefs []admittedSection, graph *linkgraph.Graph, now time.Time) *Digest {
	var b strings.Builder

	fmt.Fprintf(&b, "# Context: %s\n\n", query)

	totalTokens := 0
	for _, s := range primary {
		totalTokens += EstimateTokens(s.Body)
	}
	for _, s := range xrefs {
		totalTokens += EstimateTokens(s.Body)
	}

	b.WriteString("## Metadata\n\n")
	fmt.Fprintf(&b, "- Estimated tokens: %d\n", totalTokens)
	b.WriteString("- Primary documents:\n")

	entries := make([]PrimaryManifestEntry, 0, len(primary))
	seenDocs := make(map[string]struct{})
	for _, s := range primary {
		if _, ok := seenDocs[s.Path]; ok {
			continue
		}
		seenDocs[s.Path] = struct{}{}
		entries = append(entries, PrimaryManifestEntry{Path: s.Path, BM25: s.BM25, Canonicality: s.Canonicality})
		fmt.Fprintf(&b, "  - `%s` (bm25=%.3f, canonicality=%.3f)\n", s.Path, s.BM25, s.Canonicality)
	}
	b.WriteString("\n")

	for _, s := range primary {
		renderSection(&b, s)
	}

	var xrefEntries []XrefManifestEntry
	if len(xrefs) > 0 {
		b.WriteString("## Cross-Referenced Documents\n\n")
		for _, s := range xrefs {
			renderSection(&b, s)
			xrefEntries = append(xrefEntries, XrefManifestEntry{
				Path: s.Path, Heading: s.Heading, DocType: linkgraph.DocType(s.DocType),
			})
		}
	}

	return &Digest{
		Markdown:        b.String(),
		EstimatedTokens: totalTokens,
		Primary:         entries,
		CrossRefs:       xrefEntries,
	}
}

func renderSection(b *strings.Builder, s admittedSection) {
	heading := s.Heading
	if heading == "" {
		heading = "(untitled)"
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	fmt.Fprintf(b, "_Source: %s:%d-%d_\n\n", s.Path, s.StartLine, s.EndLine)
	b.WriteString(strings.TrimSpace(s.Body))
	b.WriteString("\n\n")
}
