package linkgraph

import (
	"math"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

// canonicalFilenames are filename stems (case-insensitive, extension
// stripped) that earn the fname_boost term.
var canonicalFilenames = map[string]struct{}{
	"readme":  {},
	"index":   {},
	"guide":   {},
	"runbook": {},
	"plan":    {},
}

const (
	fnameBoost   = 0.3
	linkBoostCap = 0.3
	linkBoostPer = 0.05
	depthPenCap  = 0.5
	depthPenPer  = 0.1
	agePenalty   = 0.2
	staleDays    = 180
)

// Canonicality scores a document's authority:
//
//	base        = doc_type_weight(type)
//	depth_pen   = min(0.5, 0.1 * segments)
//	fname_boost = 0.3 if filename matches a canonical name
//	link_boost  = min(0.3, 0.05 * inbound_count)
//	age_pen     = 0.2 if age_days > 180
//	score       = clamp(base + fname_boost + link_boost - depth_pen - age_pen, 0, 1)
func Canonicality(docPath string, inboundCount int, ageDays float64) float64 {
	docType := InferDocType(docPath)
	base := DocTypeWeight(docType)

	segments := strings.Count(strings.Trim(docPath, "/"), "/") + 1
	depthPen := math.Min(depthPenCap, depthPenPer*float64(segments))

	boost := 0.0
	if isCanonicalFilename(docPath) {
		boost = fnameBoost
	}

	linkBoost := math.Min(linkBoostCap, linkBoostPer*float64(inboundCount))

	agePen := 0.0
	if ageDays > staleDays {
		agePen = agePenalty
	}

	score := base + boost + linkBoost - depthPen - agePen
	return clamp01(score)
}

// isCanonicalFilename reports whether path's filename (stem, extension
// stripped, case-insensitive) matches a canonical name, or an ADR-N
// pattern.
func isCanonicalFilename(p string) bool {
	base := strings.ToLower(path.Base(p))
	base = strings.TrimSuffix(base, path.Ext(base))
	if _, ok := canonicalFilenames[base]; ok {
		return true
	}
	return strings.HasPrefix(base, "adr-") || strings.HasPrefix(base, "adr_")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AgeDays returns the number of days between modTime and now, as a
// fractional value (elapsed hours / 24).
func AgeDays(modTime, now time.Time) float64 {
	return now.Sub(modTime).Hours() / 24
}

// AllCanonicality scores every document in fi against g's backlink counts,
// using now as the reference clock for age.
func AllCanonicality(fi *model.ForwardIndex, g *Graph, now time.Time) map[string]float64 {
	out := make(map[string]float64, len(fi.Files))
	for p, doc := range fi.Files {
		age := AgeDays(doc.ModTime, now)
		out[p] = Canonicality(p, g.InboundCount(p), age)
	}
	return out
}

// Stale returns documents whose age is >= days and whose inbound count is
// <= minInlinks, sorted ascending by path.
func Stale(fi *model.ForwardIndex, g *Graph, now time.Time, days int, minInlinks int) []string {
	var out []string
	for p, doc := range fi.Files {
		age := AgeDays(doc.ModTime, now)
		if age >= float64(days) && g.InboundCount(p) <= minInlinks {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// CanonicalOrphans returns documents with canonicality >= tauC and zero
// inbound references, sorted ascending by path.
func CanonicalOrphans(fi *model.ForwardIndex, g *Graph, now time.Time, tauC float64) []string {
	var out []string
	for p, doc := range fi.Files {
		if g.InboundCount(p) != 0 {
			continue
		}
		age := AgeDays(doc.ModTime, now)
		if Canonicality(p, 0, age) >= tauC {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}
