package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
)

func newExportGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-graph",
		Short: "Dump the full reference/duplicate graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportGraph(cmd)
		},
	}
	return cmd
}

func runExportGraph(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	export := linkgraph.ExportGraph(fi, cfg.Similarity.DocThreshold, cfg.Similarity.LSHBands, cfg.Similarity.LSHRows)

	w := newWriter(cmd)
	w.Result(export, func(out io.Writer, v any) {
		e := v.(linkgraph.Export)
		fmt.Fprintf(out, "%d nodes, %d edges\n", len(e.Nodes), len(e.Edges))
		for _, edge := range e.Edges {
			fmt.Fprintf(out, "  %s --[%s]--> %s\n", edge.From, edge.Kind, edge.To)
		}
	})
	return nil
}

func newSuggestConsolidationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest-consolidation",
		Short: "Suggest document/section groups to merge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggestConsolidation(cmd)
		},
	}
	return cmd
}

func runSuggestConsolidation(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	graph := linkgraph.Build(fi)
	suggestions := linkgraph.SuggestConsolidation(
		fi, graph, time.Now().UTC(),
		cfg.Similarity.DocThreshold, cfg.Similarity.SectionThreshold, cfg.Similarity.MinFiles,
		cfg.Similarity.LSHBands, cfg.Similarity.LSHRows,
	)

	w := newWriter(cmd)
	w.Result(suggestions, func(out io.Writer, v any) {
		ss := v.([]linkgraph.ConsolidationSuggestion)
		if len(ss) == 0 {
			fmt.Fprintln(out, "no consolidation suggestions")
			return
		}
		for _, s := range ss {
			fmt.Fprintf(out, "[%s] %v\n", s.Kind, s.Paths)
			for p, c := range s.Canonicality {
				fmt.Fprintf(out, "    %.3f  %s\n", c, p)
			}
		}
	})
	return nil
}
