// Package assembler implements the context assembler: the
// multi-stage pipeline that turns a query and a token budget into a
// deterministic markdown digest — select primary sections by BM25, expand
// a bounded set of cross-references, extractively refine the admitted
// content, and render.
package assembler

import (
	"time"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

// Request is one assembly invocation's input.
type Request struct {
	Query          string
	MaxTokens      int
	MaxSections    int
	ExpansionDepth int
}

// DefaultRequest fills in the documented defaults: max_tokens=8000,
// max_sections=20, expansion depth=1.
func DefaultRequest(query string) Request {
	return Request{Query: query, MaxTokens: 8000, MaxSections: 20, ExpansionDepth: 1}
}

// Digest is the pipeline's output: the rendered markdown plus a
// machine-readable manifest describing what was admitted.
type Digest struct {
	Markdown      string
	EstimatedTokens int
	Primary       []PrimaryManifestEntry
	CrossRefs     []XrefManifestEntry
	Partial       bool // true if no section was admitted (no match, or a budget too small for any)
}

// PrimaryManifestEntry describes one primary-selected document in the
// digest's metadata block.
type PrimaryManifestEntry struct {
	Path         string
	BM25         float64
	Canonicality float64
}

// XrefManifestEntry describes one admitted cross-referenced section.
type XrefManifestEntry struct {
	Path    string
	Heading string
	DocType linkgraph.DocType
}

// Root is the filesystem root section bodies are lazily re-read from,
// since the forward index never persists them (Section body is
// "lazily-loadable").
type Assembler struct {
	Root string
	FI   *model.ForwardIndex
	Rank rank.Config
	Now  time.Time
}

// New builds an Assembler over an already-loaded forward index.
func New(root string, fi *model.ForwardIndex, rankCfg rank.Config) *Assembler {
	return &Assembler{Root: root, FI: fi, Rank: rankCfg, Now: time.Now().UTC()}
}

// Assemble runs the full five-stage pipeline. A nil FI returns
// IndexMissing; an empty query after tokenization returns EmptyQuery; when
// no section is admitted (nothing matched, or a budget so small that
// nothing fits) it still returns a digest with a header and empty body
// (signalled via Digest.Partial, not an error).
func (a *Assembler) Assemble(req Request) (*Digest, error) {
	if a.FI == nil {
		return nil, cferrors.New(cferrors.CodeIndexMissing, "no index loaded", nil)
	}
	if len(analyzer.TokenizeQuery(req.Query)) == 0 {
		return nil, cferrors.New(cferrors.CodeEmptyQuery, "query is empty after tokenization", nil)
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = 8000
	}
	if req.MaxSections <= 0 {
		req.MaxSections = 20
	}
	if req.ExpansionDepth < 0 {
		req.ExpansionDepth = 0
	}
	if req.ExpansionDepth > 2 {
		req.ExpansionDepth = 2
	}

	graph := linkgraph.Build(a.FI)

	primary := a.selectPrimary(req, graph)

	var xrefs []xrefSection
	if req.ExpansionDepth > 0 {
		xrefs = a.expandCrossReferences(req, primary, graph)
	}

	admittedPrimary, admittedXrefs, _, _ := a.budget(req, primary, xrefs)

	for i := range admittedPrimary {
		admittedPrimary[i].Body = refine(admittedPrimary[i].Body, req.Query)
	}
	for i := range admittedXrefs {
		admittedXrefs[i].Body = refine(admittedXrefs[i].Body, req.Query)
	}

	digest := render(req.Query, admittedPrimary, admittedXrefs, graph, a.Now)
	digest.Partial = len(admittedPrimary) == 0 && len(admittedXrefs) == 0

	return digest, nil
}
