package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/indexer"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/store"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build (or rebuild) the document index",
		Long: `Walk the document tree, analyze every matching file, resolve its
cross-reference graph, and persist a fresh forward index.

A build takes an exclusive lock on the index directory; a concurrent
build attempt fails fast rather than racing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runBuild(cmd.Context(), cmd, path)
		},
	}
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}

	lock := store.NewBuildLock(indexDir(cfg))
	acquired, err := lock.TryLock()
	if err != nil {
		return reportError(err)
	}
	if !acquired {
		return reportError(fmt.Errorf("another build is already running against %s", indexDir(cfg)))
	}
	defer func() { _ = lock.Unlock() }()

	opts := indexer.Options{
		Root:            path,
		IncludeExt:      cfg.Paths.Include,
		ExcludePatterns: cfg.Paths.Exclude,
		Workers:         cfg.Performance.IndexWorkers,
		CacheSize:       cfg.Performance.CacheSize,
		NumHashes:       cfg.Similarity.NumHashes,
	}

	fi, fileErrs, err := indexer.Build(ctx, opts)
	if err != nil {
		return reportError(err)
	}

	stats := &model.Stats{
		DocCount:     len(fi.Files),
		AvgDocLength: fi.AvgDocLength,
		IndexedAt:    fi.IndexedAt,
		BuildID:      lock.BuildID(),
	}

	if err := store.Save(indexDir(cfg), fi, stats); err != nil {
		return reportError(err)
	}

	w := newWriter(cmd)
	w.Result(buildResult{
		DocCount:     stats.DocCount,
		AvgDocLength: stats.AvgDocLength,
		IndexedAt:    stats.IndexedAt,
		BuildID:      stats.BuildID,
		Errors:       len(fileErrs),
	}, func(out io.Writer, v any) {
		r := v.(buildResult)
		fmt.Fprintf(out, "indexed %d documents (avg length %.1f) in %s\n", r.DocCount, r.AvgDocLength, indexDir(cfg))
		if r.Errors > 0 {
			fmt.Fprintf(out, "  %d file(s) skipped due to errors\n", r.Errors)
		}
	})

	for _, ferr := range fileErrs {
		w.Warning(ferr.Error())
	}

	return nil
}

type buildResult struct {
	DocCount     int       `json:"doc_count"`
	AvgDocLength float64   `json:"avg_doc_length"`
	IndexedAt    time.Time `json:"indexed_at"`
	BuildID      string    `json:"build_id"`
	Errors       int       `json:"errors"`
}
