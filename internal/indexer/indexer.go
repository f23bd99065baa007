// Package indexer implements the indexer: walking a document tree,
// parsing each file through the text analyzer, aggregating corpus
// statistics, and resolving references into a persisted forward index.
package indexer

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
)

// Options configures a single build run.
type Options struct {
	Root            string
	IncludeExt      []string
	ExcludePatterns []string
	Workers         int
	CacheSize       int
	NumHashes       int
}

type fileResult struct {
	path string
	doc  *model.Document
	err  error
}

// Build walks Options.Root and produces a fully resolved ForwardIndex. A
// worker pool (errgroup-based, bounded by Options.Workers) parses files
// concurrently; a single aggregator loop consumes their results so document
// frequency accumulation and identifier-table construction stay
// deterministic regardless of worker scheduling. Per-file I/O errors are
// collected and skipped; only a directory-walk failure is fatal.
func Build(ctx context.Context, opts Options) (*model.ForwardIndex, []error, error) {
	if opts.Workers <= 0 {
		opts.Workers = min(8, runtime.NumCPU())
	}
	if opts.NumHashes <= 0 {
		opts.NumHashes = 128
	}

	relPaths, err := discoverFiles(opts.Root, opts.IncludeExt, opts.ExcludePatterns, opts.CacheSize)
	if err != nil {
		return nil, nil, cferrors.Wrap(cferrors.CodeIO, err)
	}

	results := make(chan fileResult, len(relPaths))
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, opts.Workers)

	for _, rel := range relPaths {
		rel := rel
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			doc, err := parseFile(opts.Root, rel, opts.NumHashes)
			select {
			case results <- fileResult{path: rel, doc: doc, err: err}:
			case <-gctx.Done():
				return gctx.Err()
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	files := make(map[string]*model.Document)
	var readErrors []error
	df := make(map[string]int)

	for r := range results {
		if r.err != nil {
			readErrors = append(readErrors, fmt.Errorf("%s: %w", r.path, r.err))
			continue
		}
		files[r.path] = r.doc
		for term := range r.doc.TermFreq {
			df[term]++
		}
	}

	n := len(files)
	var totalLength int
	for _, d := range files {
		totalLength += d.DocLength
	}
	avgDocLength := 0.0
	if n > 0 {
		avgDocLength = float64(totalLength) / float64(n)
	}

	idf := make(map[string]float64, len(df))
	for term, docFreq := range df {
		idf[term] = math.Log((float64(n)-float64(docFreq)+0.5)/(float64(docFreq)+0.5) + 1)
	}

	sortedPaths := make([]string, 0, n)
	for p := range files {
		sortedPaths = append(sortedPaths, p)
	}
	sort.Strings(sortedPaths)

	identifierKeys, width := buildIdentifierTable(sortedPaths)

	fi := &model.ForwardIndex{
		IndexedAt:       time.Now().UTC(),
		Files:           files,
		AvgDocLength:    avgDocLength,
		IDF:             idf,
		IdentifierKeys:  identifierKeys,
		IdentifierWidth: width,
	}

	resolveReferences(fi)

	return fi, readErrors, nil
}

func parseFile(root, rel string, numHashes int) (*model.Document, error) {
	full := filepath.Join(root, rel)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}

	result := analyzer.Analyze(data)

	distinct := make(map[string]struct{}, len(result.TermFreq))
	for t := range result.TermFreq {
		distinct[t] = struct{}{}
	}

	sections := result.Sections
	for i := range sections {
		tf := analyzer.SectionTermFreq(sections[i].Body, sections[i].Level > 0)
		sections[i].SimHash = fingerprint.SimHash(tf)
	}

	return &model.Document{
		Path:       filepath.ToSlash(rel),
		Size:       info.Size(),
		LineCount:  result.LineCount,
		ModTime:    info.ModTime(),
		Sections:   sections,
		TermFreq:   result.TermFreq,
		DocLength:  result.DocLength,
		SimHash:    fingerprint.SimHash(result.TermFreq),
		MinHash:    fingerprint.MinHash(distinct, numHashes),
		References: result.References,
	}, nil
}
