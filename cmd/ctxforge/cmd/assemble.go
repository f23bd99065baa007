package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/assembler"
	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

func newAssembleCmd() *cobra.Command {
	var maxTokens, maxSections, expansionDepth int

	cmd := &cobra.Command{
		Use:   "assemble <query>",
		Short: "Assemble a bounded-size context digest for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd, strings.Join(args, " "), maxTokens, maxSections, expansionDepth)
		},
	}
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget (0 uses the configured default)")
	cmd.Flags().IntVar(&maxSections, "max-sections", 0, "maximum admitted sections (0 uses the configured default)")
	cmd.Flags().IntVar(&expansionDepth, "expansion-depth", -1, "cross-reference expansion depth, 0-2 (-1 uses the configured default)")
	return cmd
}

func runAssemble(cmd *cobra.Command, query string, maxTokens, maxSections, expansionDepth int) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	req := assembler.Request{
		Query:          query,
		MaxTokens:      cfg.Assembler.MaxTokens,
		MaxSections:    cfg.Assembler.MaxSections,
		ExpansionDepth: cfg.Assembler.ExpansionDepth,
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}
	if maxSections > 0 {
		req.MaxSections = maxSections
	}
	if expansionDepth >= 0 {
		req.ExpansionDepth = expansionDepth
	}

	rankCfg := rank.Config{K1: cfg.Rank.K1, B: cfg.Rank.B, TopK: cfg.Rank.TopK, TopMDocs: cfg.Rank.TopMDocs}
	a := assembler.New(rootDir, fi, rankCfg)

	digest, err := a.Assemble(req)
	if err != nil {
		if cferrors.GetCode(err) == cferrors.CodeEmptyQuery {
			w := newWriter(cmd)
			w.Result(&assembler.Digest{}, func(out io.Writer, _ any) {
				fmt.Fprintln(out, "(empty query, no digest)")
			})
			return nil
		}
		return reportError(err)
	}

	w := newWriter(cmd)
	w.Result(digest, func(out io.Writer, v any) {
		d := v.(*assembler.Digest)
		w.Raw(d.Markdown)
		if d.Partial {
			fmt.Fprintln(out, "\n(partial digest: no section was admitted)")
		}
	})
	return nil
}
