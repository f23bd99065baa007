// Package store implements the on-disk persistence layer: atomic
// JSON writes, forward-only version migration, corruption self-heal on
// load, and the derived reverse index.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// CurrentVersion is the on-disk schema version this build writes.
const CurrentVersion = 1

const (
	forwardIndexFile = "forward_index.json"
	reverseIndexFile = "reverse_index.json"
	statsFile        = "stats.json"
)

// Save atomically writes the forward index, its derived reverse index, and
// corpus stats to root. Each file is written to a temp path in the same
// directory, fsynced, then renamed into place — a crash mid-write never
// leaves a corrupt file at the canonical path.
func Save(root string, fi *model.ForwardIndex, stats *model.Stats) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return cferrors.Wrap(cferrors.CodeIO, err)
	}

	fi.Version = CurrentVersion
	stats.Version = CurrentVersion

	ri := DeriveReverseIndex(fi)

	if err := writeAtomicJSON(filepath.Join(root, forwardIndexFile), fi); err != nil {
		return err
	}
	if err := writeAtomicJSON(filepath.Join(root, reverseIndexFile), ri); err != nil {
		return err
	}
	if err := writeAtomicJSON(filepath.Join(root, statsFile), stats); err != nil {
		return err
	}
	return nil
}

// Load reads the index at root. A missing reverse index is rebuilt rather
// than treated as an error. A version older than CurrentVersion loads with
// defaulted new fields and a warning is returned alongside the result
// (never an error) per the forward-only migration policy.
func Load(root string) (*model.ForwardIndex, *model.ReverseIndex, *model.Stats, string, error) {
	fiPath := filepath.Join(root, forwardIndexFile)
	if _, err := os.Stat(fiPath); os.IsNotExist(err) {
		return nil, nil, nil, "", cferrors.New(cferrors.CodeIndexMissing, fmt.Sprintf("no index at %s", root), nil)
	}

	var fi model.ForwardIndex
	if err := readJSON(fiPath, &fi); err != nil {
		return nil, nil, nil, "", cferrors.New(cferrors.CodeParse, "forward index is corrupt", err).
			WithSuggestion("rebuild the index with `ctxforge build`")
	}

	warning := ""
	if fi.Version < CurrentVersion {
		warning = fmt.Sprintf("index version %d is older than %d; loaded with defaults, rebuild recommended", fi.Version, CurrentVersion)
		migrateForward(&fi)
	}

	var ri model.ReverseIndex
	riPath := filepath.Join(root, reverseIndexFile)
	if err := readJSON(riPath, &ri); err != nil {
		ri = *DeriveReverseIndex(&fi)
	}

	var stats model.Stats
	statsPath := filepath.Join(root, statsFile)
	if err := readJSON(statsPath, &stats); err != nil {
		stats = model.Stats{
			Version:      fi.Version,
			DocCount:     len(fi.Files),
			AvgDocLength: fi.AvgDocLength,
			IndexedAt:    fi.IndexedAt,
		}
	}

	return &fi, &ri, &stats, warning, nil
}

// DeriveReverseIndex rebuilds the term -> sorted path list mapping from a
// forward index's per-document term frequencies.
func DeriveReverseIndex(fi *model.ForwardIndex) *model.ReverseIndex {
	terms := make(map[string]map[string]struct{})
	for path, doc := range fi.Files {
		for term := range doc.TermFreq {
			set, ok := terms[term]
			if !ok {
				set = make(map[string]struct{})
				terms[term] = set
			}
			set[path] = struct{}{}
		}
	}

	out := make(map[string][]string, len(terms))
	for term, set := range terms {
		paths := make([]string, 0, len(set))
		for p := range set {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		out[term] = paths
	}

	return &model.ReverseIndex{Version: CurrentVersion, Terms: out}
}

// migrateForward fills in fields introduced after older schema versions.
// Version 1 is the only version this build knows about, so there is
// nothing to default yet beyond stamping the current version.
func migrateForward(fi *model.ForwardIndex) {
	if fi.Files == nil {
		fi.Files = make(map[string]*model.Document)
	}
	if fi.IDF == nil {
		fi.IDF = make(map[string]float64)
	}
	if fi.IdentifierKeys == nil {
		fi.IdentifierKeys = make(map[string]string)
	}
	fi.Version = CurrentVersion
}

func writeAtomicJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return cferrors.Wrap(cferrors.CodeIO, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return cferrors.Wrap(cferrors.CodeIO, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return cferrors.Wrap(cferrors.CodeIO, err)
	}
	if err := tmp.Close(); err != nil {
		return cferrors.Wrap(cferrors.CodeIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return cferrors.Wrap(cferrors.CodeIO, err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// NowISO8601 formats t the way indexed_at is stored.
func NowISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
