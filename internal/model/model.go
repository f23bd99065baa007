// Package model defines the core data entities shared by every component:
// documents, sections, references, and the forward/reverse indexes built
// from them. Types here are plain data — no component-specific logic lives
// in this package.
package model

import "time"

// ReferenceKind classifies an outbound link found during analysis.
type ReferenceKind string

const (
	RefRelativePath ReferenceKind = "relative-path"
	RefIdentifier   ReferenceKind = "identifier"
	RefExternal     ReferenceKind = "external"
	RefImage        ReferenceKind = "image"
)

// Reference is an outbound link discovered inside a Document or Section.
type Reference struct {
	Kind     ReferenceKind `json:"kind"`
	Raw      string        `json:"raw"`
	Target   string        `json:"target,omitempty"`   // link path without anchor; after resolution the joined path (set even if unresolved), or for identifiers the matched document (empty if none)
	Anchor   string        `json:"anchor,omitempty"`
	SourceLine int         `json:"source_line"`
	Resolved bool          `json:"resolved"`
}

// Section is a contiguous heading-delimited span within a Document.
// [StartLine, EndLine) is the half-open line range; Body is loaded lazily
// by callers that need refinement or rendering, so it is tagged to be
// skipped by default JSON encoding of the full index.
type Section struct {
	Heading    string `json:"heading"`
	Level      int    `json:"level"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	SimHash    uint64 `json:"simhash"`
	Body       string `json:"-"`
}

// HeadingSlug returns the anchor slug for the section's heading, computed
// the same way a markdown renderer slugifies ATX headings: lowercase,
// non-alphanumeric runs collapse to a single hyphen, trimmed.
func (s Section) HeadingSlug() string {
	return Slugify(s.Heading)
}

// Document is an immutable snapshot of one source file as produced by a
// build. Every field is populated by the indexer during a build and never
// mutated afterward.
type Document struct {
	Path         string         `json:"path"`
	Size         int64          `json:"size"`
	LineCount    int            `json:"line_count"`
	ModTime      time.Time      `json:"mod_time"`
	Sections     []Section      `json:"sections"`
	TermFreq     map[string]int `json:"term_freq"`
	DocLength    int            `json:"doc_length"`
	SimHash      uint64         `json:"simhash"`
	MinHash      []uint64       `json:"minhash"`
	References   []Reference    `json:"references"`
}

// Keywords returns the set of distinct stemmed terms in the document, used
// by the similarity engine's Jaccard computation.
func (d Document) Keywords() map[string]struct{} {
	out := make(map[string]struct{}, len(d.TermFreq))
	for term := range d.TermFreq {
		out[term] = struct{}{}
	}
	return out
}

// ForwardIndex is the persisted, versioned index over a corpus.
type ForwardIndex struct {
	Version        int                  `json:"version"`
	IndexedAt      time.Time            `json:"indexed_at"`
	Files          map[string]*Document `json:"files"`
	AvgDocLength   float64              `json:"avg_doc_length"`
	IDF            map[string]float64   `json:"idf_map"`
	IdentifierKeys map[string]string    `json:"identifier_keys"` // zero-padded id -> path
	IdentifierWidth int                 `json:"identifier_width"`
}

// ReverseIndex maps a stemmed term to the sorted list of document paths
// containing it. It is derived and may be rebuilt from ForwardIndex.
type ReverseIndex struct {
	Version int                 `json:"version"`
	Terms   map[string][]string `json:"terms"`
}

// Stats is the corpus-level summary persisted alongside the two indexes.
type Stats struct {
	Version      int       `json:"version"`
	DocCount     int       `json:"doc_count"`
	AvgDocLength float64   `json:"avg_doc_length"`
	IndexedAt    time.Time `json:"indexed_at"`
	BuildID      string    `json:"build_id"`
}

// Slugify implements the ATX heading slug rule used for anchor matching:
// lowercase, non-alphanumeric runs become a single hyphen, leading/trailing
// hyphens trimmed.
func Slugify(s string) string {
	out := make([]byte, 0, len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r-'A'+'a'))
			lastHyphen = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			out = append(out, byte(r))
			lastHyphen = false
		default:
			if !lastHyphen && len(out) > 0 {
				out = append(out, '-')
				lastHyphen = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
