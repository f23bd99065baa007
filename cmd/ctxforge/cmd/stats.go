package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/model"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus and index aggregates",
		Long:  `Reports corpus-level aggregates (document count, average length) and index metadata (build ID, indexed-at timestamp) without touching core ranking logic.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd)
		},
	}
	return cmd
}

func runStats(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	_, stats, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	w := newWriter(cmd)
	w.Result(stats, func(out io.Writer, v any) {
		s := v.(*model.Stats)
		fmt.Fprintf(out, "documents:       %d\n", s.DocCount)
		fmt.Fprintf(out, "avg doc length:  %.1f\n", s.AvgDocLength)
		fmt.Fprintf(out, "indexed at:      %s\n", s.IndexedAt.Format("2006-01-02T15:04:05Z07:00"))
		fmt.Fprintf(out, "build id:        %s\n", s.BuildID)
		fmt.Fprintf(out, "version:         %d\n", s.Version)
	})
	return nil
}
