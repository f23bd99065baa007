package similarity

import (
	"sort"

	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// SectionRef identifies one section within the corpus.
type SectionRef struct {
	Path    string
	Index   int
	Heading string
}

// Cluster is a group of near-duplicate sections drawn from at least
// MinFiles distinct documents.
type Cluster struct {
	Label    string
	Sections []SectionRef
}

// ClusterSections scans every section across every document, union-finds
// pairs whose SimHash Hamming-similarity is >= threshold, and returns
// clusters whose sections span at least minFiles distinct documents. The
// cluster label is the most common heading text among its members; ties
// break on the lexicographically smallest heading. Clusters are returned
// in ascending order of their smallest member's (path, index).
func ClusterSections(files map[string]*model.Document, threshold float64, minFiles int) []Cluster {
	var refs []SectionRef
	var hashes []uint64

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		doc := files[path]
		for i, sec := range doc.Sections {
			refs = append(refs, SectionRef{Path: path, Index: i, Heading: sec.Heading})
			hashes = append(hashes, sec.SimHash)
		}
	}

	uf := newUnionFind(len(refs))
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if refs[i].Path == refs[j].Path {
				continue
			}
			if fingerprint.SimHashSimilarity(hashes[i], hashes[j]) >= threshold {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := range refs {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	var clusters []Cluster
	for _, members := range groups {
		distinctPaths := make(map[string]struct{})
		for _, idx := range members {
			distinctPaths[refs[idx].Path] = struct{}{}
		}
		if len(distinctPaths) < minFiles {
			continue
		}

		sort.Slice(members, func(a, b int) bool {
			if refs[members[a]].Path != refs[members[b]].Path {
				return refs[members[a]].Path < refs[members[b]].Path
			}
			return refs[members[a]].Index < refs[members[b]].Index
		})

		var sectionRefs []SectionRef
		headingCounts := make(map[string]int)
		for _, idx := range members {
			sectionRefs = append(sectionRefs, refs[idx])
			headingCounts[refs[idx].Heading]++
		}

		clusters = append(clusters, Cluster{
			Label:    mostCommonHeading(headingCounts),
			Sections: sectionRefs,
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		a, b := clusters[i].Sections[0], clusters[j].Sections[0]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Index < b.Index
	})
	return clusters
}

func mostCommonHeading(counts map[string]int) string {
	best := ""
	bestCount := -1
	for h, c := range counts {
		if c > bestCount || (c == bestCount && h < best) {
			best = h
			bestCount = c
		}
	}
	return best
}
