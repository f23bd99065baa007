package indexer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
)

// minIdentifierWidth is the floor on zero-padding width, even when every
// observed identifier is shorter.
const minIdentifierWidth = 3

// buildIdentifierTable scans each document's filename (sans extension) for
// an identifier-style digit run and registers a zero-padded key -> path
// mapping. Padding width is the longest digit run observed, clamped to a
// minimum of 3. Paths are processed in sorted order so the first document
// to claim a given key wins ties deterministically.
func buildIdentifierTable(paths []string) (map[string]string, int) {
	type candidate struct {
		digits string
		path   string
	}

	width := minIdentifierWidth
	var candidates []candidate
	for _, p := range paths {
		base := filepath.Base(p)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		digits, ok := analyzer.MatchIdentifier(base)
		if !ok {
			continue
		}
		if len(digits) > width {
			width = len(digits)
		}
		candidates = append(candidates, candidate{digits: digits, path: p})
	}

	table := make(map[string]string, len(candidates))
	for _, c := range candidates {
		n, err := strconv.Atoi(c.digits)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%0*d", width, n)
		if _, exists := table[key]; !exists {
			table[key] = c.path
		}
	}

	return table, width
}
