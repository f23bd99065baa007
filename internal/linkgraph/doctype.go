// Package linkgraph implements the link graph engine: derived views
// over an already-resolved ForwardIndex — backlinks, orphans, broken
// links, canonicality scoring, staleness, and canonical-orphan
// intersection. Nothing here mutates the ForwardIndex.
package linkgraph

import "strings"

// DocType is the closed set of document-type classifications used by the
// canonicality formula's base weight and the assembler's xref priority.
type DocType string

const (
	TypeADR          DocType = "adr"
	TypeArchitecture DocType = "architecture"
	TypeRunbook      DocType = "runbook"
	TypeTesting      DocType = "testing"
	TypeArchived     DocType = "archived"
	TypeExample      DocType = "example"
	TypeReport       DocType = "report"
	TypeAgent        DocType = "agent"
	TypeUnknown      DocType = "unknown"
)

// docTypeRules maps a path substring to the DocType it implies. Evaluated
// in order; the first match wins, mirroring the teacher's
// substring-based ProjectType inference in internal/config.
var docTypeRules = []struct {
	substr string
	typ    DocType
}{
	{"adr", TypeADR},
	{"architecture", TypeArchitecture},
	{"runbook", TypeRunbook},
	{"testing", TypeTesting},
	{"archived", TypeArchived},
	{"example", TypeExample},
	{"report", TypeReport},
	{"agent", TypeAgent},
}

// InferDocType classifies a path by substring match against a closed rule
// set. Unmatched paths are TypeUnknown.
func InferDocType(path string) DocType {
	lower := strings.ToLower(path)
	for _, rule := range docTypeRules {
		if strings.Contains(lower, rule.substr) {
			return rule.typ
		}
	}
	return TypeUnknown
}

// docTypeWeight is the canonicality formula's base ∈ [0.1, 1.0] per type.
var docTypeWeight = map[DocType]float64{
	TypeADR:          1.0,
	TypeArchitecture: 0.9,
	TypeRunbook:      0.8,
	TypeTesting:      0.4,
	TypeReport:       0.5,
	TypeAgent:        0.5,
	TypeArchived:     0.1,
	TypeExample:      0.3,
	TypeUnknown:      0.2,
}

// DocTypeWeight returns the base weight for t.
func DocTypeWeight(t DocType) float64 {
	return docTypeWeight[t]
}
