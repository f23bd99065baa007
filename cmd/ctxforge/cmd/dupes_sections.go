package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/similarity"
)

func newDupesSectionsCmd() *cobra.Command {
	var threshold float64
	var minFiles int

	cmd := &cobra.Command{
		Use:   "dupes-sections",
		Short: "Cluster near-duplicate sections across documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDupesSections(cmd, threshold, minFiles)
		},
	}
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "similarity threshold (0 uses the configured default)")
	cmd.Flags().IntVar(&minFiles, "min-files", 0, "minimum distinct files per cluster (0 uses the configured default)")
	return cmd
}

func runDupesSections(cmd *cobra.Command, threshold float64, minFiles int) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	if threshold <= 0 {
		threshold = cfg.Similarity.SectionThreshold
	}
	if minFiles <= 0 {
		minFiles = cfg.Similarity.MinFiles
	}

	clusters := similarity.ClusterSections(fi.Files, threshold, minFiles)

	w := newWriter(cmd)
	w.Result(clusters, func(out io.Writer, v any) {
		cs := v.([]similarity.Cluster)
		if len(cs) == 0 {
			fmt.Fprintln(out, "no section clusters found")
			return
		}
		for _, c := range cs {
			fmt.Fprintf(out, "%q (%d sections)\n", c.Label, len(c.Sections))
			for _, s := range c.Sections {
				fmt.Fprintf(out, "  - %s:%d %q\n", s.Path, s.Index, s.Heading)
			}
		}
	})
	return nil
}
