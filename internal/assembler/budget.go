package assembler

// xrefBudgetCap and perXrefDocCap are the fixed ceilings from
// Stage 3: "xref_budget = min(⌊0.3·T⌋, 2000, T − tokens(primary))" and
// "per-xref-doc cap = min(600, xref_budget)".
const (
	xrefBudgetCap = 2000
	perXrefDocCap = 600
)

// admittedSection is a primary or cross-ref section after Stage 3's
// truncation pass, ready for Stage 4 refinement.
type admittedSection struct {
	Path         string
	Heading      string
	StartLine    int
	EndLine      int
	Body         string
	BM25         float64
	Canonicality float64
	DocType      string
}

// budget runs Stage 3: walk primary sections in combined-score order,
// admitting each if it fits in the remaining token budget (truncating at
// the last sentence boundary only when a section alone exceeds the
// budget); then walk cross-ref sections in priority order under a
// separate, smaller budget capped per the documented limits.
func (a *Assembler) budget(req Request, primary []primarySection, xrefs []xrefSection) ([]admittedSection, []admittedSection, int, int) {
	budgetTotal := req.MaxTokens

	var admittedPrimary []admittedSection
	remaining := budgetTotal
	primaryTokens := 0
	for _, p := range primary {
		body, used, ok := admitSection(p.Body, remaining)
		if !ok {
			continue
		}
		admittedPrimary = append(admittedPrimary, admittedSection{
			Path: p.Path, Heading: p.Section.Heading,
			StartLine: p.Section.StartLine, EndLine: p.Section.EndLine,
			Body: body, BM25: p.BM25, Canonicality: p.Canonicality,
		})
		remaining -= used
		primaryTokens += used
		if remaining <= 0 {
			break
		}
	}

	xrefBudget := budgetTotal*3/10
	if xrefBudget > xrefBudgetCap {
		xrefBudget = xrefBudgetCap
	}
	if rest := budgetTotal - primaryTokens; rest < xrefBudget {
		xrefBudget = rest
	}
	if xrefBudget < 0 {
		xrefBudget = 0
	}

	perDocCap := perXrefDocCap
	if xrefBudget < perDocCap {
		perDocCap = xrefBudget
	}

	var admittedXrefs []admittedSection
	xrefRemaining := xrefBudget
	docSpent := make(map[string]int)
	xrefTokens := 0
	for _, x := range xrefs {
		if xrefRemaining <= 0 {
			break
		}
		docBudgetLeft := perDocCap - docSpent[x.Path]
		if docBudgetLeft <= 0 {
			continue
		}
		cap := docBudgetLeft
		if cap > xrefRemaining {
			cap = xrefRemaining
		}

		body, used, ok := admitSection(x.Body, cap)
		if !ok {
			continue
		}
		admittedXrefs = append(admittedXrefs, admittedSection{
			Path: x.Path, Heading: x.Section.Heading,
			StartLine: x.Section.StartLine, EndLine: x.Section.EndLine,
			Body: body, DocType: string(x.DocType),
		})
		docSpent[x.Path] += used
		xrefRemaining -= used
		xrefTokens += used
	}

	return admittedPrimary, admittedXrefs, primaryTokens, primaryTokens + xrefTokens
}

// admitSection decides whether a section fits the remaining token budget
// (measured in the §4.7 ⌈len/4⌉ estimator). A section that fits wholesale
// is admitted as-is. A section exceeding the budget is truncated at the
// last sentence boundary before the budget line, or at the budget line
// itself when no boundary falls before it, and the cut is then moved back
// so it never lands mid-atomic-span; if nothing is left after that, the
// section is skipped rather than emitted empty.
func admitSection(body string, remainingTokens int) (string, int, bool) {
	if remainingTokens <= 0 {
		return "", 0, false
	}

	full := EstimateTokens(body)
	if full <= remainingTokens {
		return body, full, true
	}

	maxBytes := remainingTokens * 4
	cut := len(truncateAtSentence(body, maxBytes))
	cut = snappedLen(body, cut)
	if cut == 0 {
		return "", 0, false
	}
	truncated := body[:cut]
	return truncated, EstimateTokens(truncated), true
}

func snappedLen(body string, cutLen int) int {
	return snapToAtomicBoundary(body, cutLen)
}
