package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

func newQueryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query <terms>",
		Short: "Rank documents by BM25 relevance to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 uses the configured default)")
	return cmd
}

func runQuery(cmd *cobra.Command, query string, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	rankCfg := rank.Config{K1: cfg.Rank.K1, B: cfg.Rank.B, TopK: cfg.Rank.TopK, TopMDocs: cfg.Rank.TopMDocs}
	if limit > 0 {
		rankCfg.TopK = limit
	}

	w := newWriter(cmd)

	if len(analyzer.TokenizeQuery(query)) == 0 {
		// Empty query after tokenization: empty result, exit 0.
		w.Result([]rank.DocScore{}, func(out io.Writer, _ any) {
			fmt.Fprintln(out, "(empty query, no results)")
		})
		return nil
	}

	results := rank.Query(rankCfg, fi, query)
	w.Result(results, func(out io.Writer, v any) {
		rs := v.([]rank.DocScore)
		if len(rs) == 0 {
			fmt.Fprintln(out, "no matches")
			return
		}
		for _, r := range rs {
			fmt.Fprintf(out, "%.4f  %s\n", r.Score, r.Path)
		}
	})
	return nil
}
