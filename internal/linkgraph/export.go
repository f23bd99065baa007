package linkgraph

import (
	"sort"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/similarity"
)

// EdgeKind classifies one export edge. "references" mirrors a resolved
// Reference; "duplicates" is derived from the similarity engine.
// "supersedes" is declared, but ExportGraph emits no edges of that kind:
// supersession is not detected.
type EdgeKind string

const (
	EdgeReferences EdgeKind = "references"
	EdgeDuplicates EdgeKind = "duplicates"
	EdgeSupersedes EdgeKind = "supersedes"
)

// Edge is one directed edge in the exported graph.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Export is the full graph dump served by the `export-graph` command: all
// documents as nodes, plus reference and duplicate edges.
type Export struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// ExportGraph composes reference edges from fi with duplicate edges from
// the similarity engine at the given threshold, per the "no cyclic
// ownership" note: nodes own outbound references; inbound is purely
// derived and computed once here.
func ExportGraph(fi *model.ForwardIndex, dupThreshold float64, lshBands, lshRows int) Export {
	nodes := make([]string, 0, len(fi.Files))
	for p := range fi.Files {
		nodes = append(nodes, p)
	}
	sort.Strings(nodes)

	var edges []Edge
	for _, src := range nodes {
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
			edges = append(edges, Edge{From: src, To: ref.Target, Kind: EdgeReferences})
		}
	}

	for _, pair := range similarity.DuplicatePairs(fi.Files, dupThreshold, lshBands, lshRows) {
		edges = append(edges, Edge{From: pair.PathA, To: pair.PathB, Kind: EdgeDuplicates})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Kind < edges[j].Kind
	})

	return Export{Nodes: nodes, Edges: edges}
}

// ConsolidationSuggestion groups a doc-duplicate pair or a section cluster
// into one candidate for manual merge review, for the `suggest-
// consolidation` command.
type ConsolidationSuggestion struct {
	Kind          string              `json:"kind"` // "document" or "section"
	Paths         []string            `json:"paths"`
	Similarity    float64             `json:"similarity,omitempty"`
	SectionLabel  string              `json:"section_label,omitempty"`
	Canonicality  map[string]float64  `json:"canonicality"`
}

// SuggestConsolidation combines the similarity engine's document-duplicate
// pairs and section clusters with canonicality scores, so a reviewer sees
// which side of each group is most likely the canonical copy.
func SuggestConsolidation(fi *model.ForwardIndex, g *Graph, now time.Time, docThreshold, sectionThreshold float64, minFiles, lshBands, lshRows int) []ConsolidationSuggestion {
	var out []ConsolidationSuggestion

	for _, pair := range similarity.DuplicatePairs(fi.Files, docThreshold, lshBands, lshRows) {
		out = append(out, ConsolidationSuggestion{
			Kind:       "document",
			Paths:      []string{pair.PathA, pair.PathB},
			Similarity: pair.Similarity,
			Canonicality: map[string]float64{
				pair.PathA: Canonicality(pair.PathA, g.InboundCount(pair.PathA), AgeDays(fi.Files[pair.PathA].ModTime, now)),
				pair.PathB: Canonicality(pair.PathB, g.InboundCount(pair.PathB), AgeDays(fi.Files[pair.PathB].ModTime, now)),
			},
		})
	}

	for _, cluster := range similarity.ClusterSections(fi.Files, sectionThreshold, minFiles) {
		paths := make([]string, 0, len(cluster.Sections))
		seen := make(map[string]struct{})
		canon := make(map[string]float64)
		for _, s := range cluster.Sections {
			if _, ok := seen[s.Path]; ok {
				continue
			}
			seen[s.Path] = struct{}{}
			paths = append(paths, s.Path)
			canon[s.Path] = Canonicality(s.Path, g.InboundCount(s.Path), AgeDays(fi.Files[s.Path].ModTime, now))
		}
		out = append(out, ConsolidationSuggestion{
			Kind:         "section",
			Paths:        paths,
			SectionLabel: cluster.Label,
			Canonicality: canon,
		})
	}

	return out
}
