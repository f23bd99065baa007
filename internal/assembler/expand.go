package assembler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

// xrefSection is one section admitted by Stage 2's cross-reference
// expansion.
type xrefSection struct {
	Path    string
	Index   int
	Section model.Section
	Body    string
	DocType linkgraph.DocType
	// Priority ranks the target document's class; lower sorts first:
	// 0=ADR, 1=architecture/design, 2=runbook/ops, 3=other.
	Priority int
	Order    float64 // 0.5*canonicality + 0.5*log(1+refs_to_target), descending
}

// adrHeadingMarkers are the heading substrings ADR-like documents prefer,
// per Stage 2's cross-reference expansion rules.
var adrHeadingMarkers = []string{"context", "decision", "consequence", "rationale", "motivation", "summary"}

// runbookHeadingMarkers are the heading substrings runbook/ops documents
// prefer.
var runbookHeadingMarkers = []string{"deploy", "restart", "rollback", "monitor", "alert", "troubleshoot"}

const maxADRSections = 3
const maxRunbookSections = 2
const minArchSections, maxArchSections = 2, 3

// priorityOf maps a DocType to its expansion priority class.
func priorityOf(t linkgraph.DocType) int {
	switch t {
	case linkgraph.TypeADR:
		return 0
	case linkgraph.TypeArchitecture:
		return 1
	case linkgraph.TypeRunbook:
		return 2
	default:
		return 3
	}
}

type xrefTarget struct {
	path   string
	anchor string
}

// expandCrossReferences runs Stage 2: collect references originating
// within primary sections, deduplicate by (target, anchor), then for each
// target pick sections per its doc-type class, recursing up to
// req.ExpansionDepth rounds: each round expands the references found in
// the sections the previous round added. References found inside sections
// added by the final round are not expanded further.
func (a *Assembler) expandCrossReferences(req Request, primary []primarySection, graph *linkgraph.Graph) []xrefSection {
	seenTargets := make(map[xrefTarget]struct{})
	seenSectionKeys := make(map[string]struct{})
	for _, p := range primary {
		seenSectionKeys[sectionKey(p.Path, p.Index)] = struct{}{}
	}

	var out []xrefSection

	sourceSections := primarySectionRanges(primary)
	for depth := 0; depth < req.ExpansionDepth; depth++ {
		targets := a.collectTargets(sourceSections, seenTargets)
		if len(targets) == 0 {
			break
		}

		round := a.selectForTargets(req, targets, graph)

		var fresh []xrefSection
		for _, x := range round {
			key := sectionKey(x.Path, x.Index)
			if _, dup := seenSectionKeys[key]; dup {
				continue
			}
			seenSectionKeys[key] = struct{}{}
			fresh = append(fresh, x)
		}
		out = append(out, fresh...)

		sourceSections = sourceSections[:0]
		for _, x := range fresh {
			sourceSections = append(sourceSections, sectionRange{Path: x.Path, Start: x.Section.StartLine, End: x.Section.EndLine})
		}
	}

	sortXrefs(out)
	return out
}

type sectionRange struct {
	Path       string
	Start, End int
}

func primarySectionRanges(primary []primarySection) []sectionRange {
	out := make([]sectionRange, 0, len(primary))
	for _, p := range primary {
		out = append(out, sectionRange{Path: p.Path, Start: p.Section.StartLine, End: p.Section.EndLine})
	}
	return out
}

func sectionKey(path string, index int) string {
	return path + "#" + strconv.Itoa(index)
}

// collectTargets gathers every resolved, non-image, non-external
// reference whose source line falls within one of sourceSections, scoped
// to relative-path and identifier kinds.
func (a *Assembler) collectTargets(sourceSections []sectionRange, seen map[xrefTarget]struct{}) []xrefTarget {
	var out []xrefTarget
	for _, sr := range sourceSections {
		doc, ok := a.FI.Files[sr.Path]
		if !ok {
			continue
		}
		for _, ref := range doc.References {
			if ref.SourceLine < sr.Start || ref.SourceLine >= sr.End {
				continue
			}
			if ref.Kind != model.RefRelativePath && ref.Kind != model.RefIdentifier {
				continue
			}
			if !ref.Resolved || ref.Target == "" {
				continue
			}
			key := xrefTarget{path: ref.Target, anchor: ref.Anchor}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// selectForTargets orders targets by (priority asc, order desc) and picks
// the sections each target contributes per its doc-type's rule.
func (a *Assembler) selectForTargets(req Request, targets []xrefTarget, graph *linkgraph.Graph) []xrefSection {
	type scoredTarget struct {
		target   xrefTarget
		docType  linkgraph.DocType
		priority int
		order    float64
	}

	scored := make([]scoredTarget, 0, len(targets))
	for _, t := range targets {
		doc, ok := a.FI.Files[t.path]
		if !ok {
			continue
		}
		docType := linkgraph.InferDocType(t.path)
		age := linkgraph.AgeDays(doc.ModTime, a.Now)
		canon := linkgraph.Canonicality(t.path, graph.InboundCount(t.path), age)
		scored = append(scored, scoredTarget{
			target: t, docType: docType, priority: priorityOf(docType),
			order: logRefBoost(canon, graph.InboundCount(t.path)),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].priority != scored[j].priority {
			return scored[i].priority < scored[j].priority
		}
		if scored[i].order != scored[j].order {
			return scored[i].order > scored[j].order
		}
		return scored[i].target.path < scored[j].target.path
	})

	var out []xrefSection
	for _, st := range scored {
		doc := a.FI.Files[st.target.path]
		indices := a.selectSectionsForTarget(req, st.target, doc, st.docType)
		for _, idx := range indices {
			sec := doc.Sections[idx]
			out = append(out, xrefSection{
				Path: st.target.path, Index: idx, Section: sec,
				Body: bodyOf(a, st.target.path, sec),
				DocType: st.docType, Priority: st.priority, Order: st.order,
			})
		}
	}
	return out
}

// selectSectionsForTarget implements the per-doc-type section-selection
// rules of Stage 2's cross-reference expansion.
func (a *Assembler) selectSectionsForTarget(req Request, target xrefTarget, doc *model.Document, docType linkgraph.DocType) []int {
	if target.anchor != "" {
		slug := model.Slugify(target.anchor)
		for i, sec := range doc.Sections {
			if sec.HeadingSlug() == slug {
				return []int{i}
			}
		}
		// Falls through to the doc-type default rule if the anchor
		// doesn't resolve to a real heading.
	}

	switch docType {
	case linkgraph.TypeADR:
		return selectByHeadingMarkers(doc, adrHeadingMarkers, maxADRSections, true)

	case linkgraph.TypeArchitecture:
		return a.selectByQueryBM25(req, doc, minArchSections, maxArchSections)

	case linkgraph.TypeRunbook:
		return selectByHeadingMarkers(doc, runbookHeadingMarkers, maxRunbookSections, false)

	default:
		if len(doc.Sections) == 0 {
			return nil
		}
		return []int{0}
	}
}

// selectByHeadingMarkers returns the indices of sections whose heading
// (lowercased) contains any of markers, capped at cap. If none match and
// alwaysIncludeFirst is set (ADR rule), the first section is returned
// instead.
func selectByHeadingMarkers(doc *model.Document, markers []string, cap int, alwaysIncludeFirst bool) []int {
	var out []int
	for i, sec := range doc.Sections {
		heading := strings.ToLower(sec.Heading)
		for _, m := range markers {
			if strings.Contains(heading, m) {
				out = append(out, i)
				break
			}
		}
		if len(out) >= cap {
			break
		}
	}
	if len(out) == 0 {
		if alwaysIncludeFirst && len(doc.Sections) > 0 {
			return []int{0}
		}
		return nil
	}
	return out
}

// selectByQueryBM25 re-scores a target document's own sections against the
// query (restricted to this one document) and returns the top min..max
// indices.
func (a *Assembler) selectByQueryBM25(req Request, doc *model.Document, min, max int) []int {
	terms := analyzer.TokenizeQuery(req.Query)
	if len(terms) == 0 || len(doc.Sections) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score float64
	}
	var scores []scored
	for i, sec := range doc.Sections {
		tf := analyzer.SectionTermFreq(bodyOf(a, doc.Path, sec), sec.Level > 0)
		length := 0
		for _, c := range tf {
			length += c
		}
		s := rank.Score(a.Rank, terms, tf, length, a.FI.AvgDocLength, a.FI.IDF)
		scores = append(scores, scored{idx: i, score: s})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].idx < scores[j].idx
	})

	n := max
	if n > len(scores) {
		n = len(scores)
	}
	if n < min && len(scores) >= min {
		n = min
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, scores[i].idx)
	}
	sort.Ints(out)
	return out
}

func sortXrefs(xrefs []xrefSection) {
	sort.Slice(xrefs, func(i, j int) bool {
		if xrefs[i].Priority != xrefs[j].Priority {
			return xrefs[i].Priority < xrefs[j].Priority
		}
		if xrefs[i].Order != xrefs[j].Order {
			return xrefs[i].Order > xrefs[j].Order
		}
		if xrefs[i].Path != xrefs[j].Path {
			return xrefs[i].Path < xrefs[j].Path
		}
		return xrefs[i].Index < xrefs[j].Index
	})
}
