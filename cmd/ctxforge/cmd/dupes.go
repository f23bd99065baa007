package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/similarity"
)

func newDupesCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Find near-duplicate documents above a similarity threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDupes(cmd, threshold)
		},
	}
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "similarity threshold (0 uses the configured default)")
	return cmd
}

func runDupes(cmd *cobra.Command, threshold float64) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	if threshold <= 0 {
		threshold = cfg.Similarity.DocThreshold
	}

	pairs := similarity.DuplicatePairs(fi.Files, threshold, cfg.Similarity.LSHBands, cfg.Similarity.LSHRows)

	w := newWriter(cmd)
	w.Result(pairs, func(out io.Writer, v any) {
		ps := v.([]similarity.Pair)
		if len(ps) == 0 {
			fmt.Fprintln(out, "no duplicate pairs found")
			return
		}
		for _, p := range ps {
			fmt.Fprintf(out, "%.3f  %s  <->  %s\n", p.Similarity, p.PathA, p.PathB)
		}
	})
	return nil
}
