package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
)

func newCanonicalityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonicality",
		Short: "Score every document's authority",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonicality(cmd)
		},
	}
	return cmd
}

type canonicalityRow struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

func runCanonicality(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	graph := linkgraph.Build(fi)
	scores := linkgraph.AllCanonicality(fi, graph, time.Now().UTC())

	rows := make([]canonicalityRow, 0, len(scores))
	for p, s := range scores {
		rows = append(rows, canonicalityRow{Path: p, Score: s})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Path < rows[j].Path
	})

	w := newWriter(cmd)
	w.Result(rows, func(out io.Writer, v any) {
		for _, r := range v.([]canonicalityRow) {
			fmt.Fprintf(out, "%.3f  %s\n", r.Score, r.Path)
		}
	})
	return nil
}

func newStaleCmd() *cobra.Command {
	var days, minInlinks int

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List documents past an age threshold with few inbound links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStale(cmd, days, minInlinks)
		},
	}
	cmd.Flags().IntVar(&days, "days", 180, "age threshold in days")
	cmd.Flags().IntVar(&minInlinks, "min-inlinks", 1, "documents with at most this many inbound links qualify")
	return cmd
}

func runStale(cmd *cobra.Command, days, minInlinks int) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	graph := linkgraph.Build(fi)
	stale := linkgraph.Stale(fi, graph, time.Now().UTC(), days, minInlinks)

	w := newWriter(cmd)
	w.Result(stale, func(out io.Writer, v any) {
		paths := v.([]string)
		if len(paths) == 0 {
			fmt.Fprintln(out, "no stale documents")
			return
		}
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
	})
	return nil
}
