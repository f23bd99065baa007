package similarity

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// LSH provides locality-sensitive hashing over MinHash signatures: the
// H-value vector is split into bands equal-size bands; documents that
// collide on any band's hash become candidate pairs. Band
// parameters are taken as given by the caller (the configured defaults are
// bands=16, rows=8) rather than solved for a target threshold, matching an explicit bands/rows parameterization rather than
// the teacher's `NewMinHashLSH` auto-solve.
type LSH struct {
	bands   int
	rows    int
	buckets []map[uint64][]string
}

// NewLSH builds an LSH index for signatures of length bands*rows.
func NewLSH(bands, rows int) *LSH {
	buckets := make([]map[uint64][]string, bands)
	for i := range buckets {
		buckets[i] = make(map[uint64][]string)
	}
	return &LSH{bands: bands, rows: rows, buckets: buckets}
}

// Add inserts id's signature into every band bucket it hashes into.
func (l *LSH) Add(id string, sig []uint64) {
	for b := 0; b < l.bands; b++ {
		h := l.bandHash(sig, b)
		l.buckets[b][h] = append(l.buckets[b][h], id)
	}
}

// CandidatePairs returns every distinct unordered pair of ids sharing at
// least one band bucket, in ascending (a, b) order for deterministic
// downstream iteration.
func (l *LSH) CandidatePairs() [][2]string {
	seen := make(map[[2]string]struct{})
	for _, bucket := range l.buckets {
		for _, ids := range bucket {
			if len(ids) < 2 {
				continue
			}
			sorted := append([]string(nil), ids...)
			sort.Strings(sorted)
			for i := 0; i < len(sorted); i++ {
				for j := i + 1; j < len(sorted); j++ {
					if sorted[i] == sorted[j] {
						continue
					}
					seen[[2]string{sorted[i], sorted[j]}] = struct{}{}
				}
			}
		}
	}

	pairs := make([][2]string, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

func (l *LSH) bandHash(sig []uint64, band int) uint64 {
	start := band * l.rows
	end := start + l.rows
	if end > len(sig) {
		end = len(sig)
	}

	h := fnv.New64a()
	var buf [8]byte
	for i := start; i < end; i++ {
		binary.LittleEndian.PutUint64(buf[:], sig[i])
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
