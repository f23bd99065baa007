package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/linkgraph"
)

func newCheckLinksCmd() *cobra.Command {
	var ci bool

	cmd := &cobra.Command{
		Use:   "check-links",
		Short: "Scan the corpus for broken cross-references",
		Long: `Reports every reference that fails to resolve: a missing file, a
missing anchor within an existing file, or a placeholder target like
"TODO" or "TBD".

With --ci, the command exits nonzero if any broken link of kind
missing_file or missing_anchor is found (placeholders alone do not
fail the build).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckLinks(cmd, ci)
		},
	}
	cmd.Flags().BoolVar(&ci, "ci", false, "exit nonzero on missing_file/missing_anchor broken links")
	return cmd
}

func runCheckLinks(cmd *cobra.Command, ci bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	broken := linkgraph.BrokenLinks(fi)

	w := newWriter(cmd)
	w.Result(broken, func(out io.Writer, v any) {
		bs := v.([]linkgraph.BrokenLink)
		if len(bs) == 0 {
			fmt.Fprintln(out, "no broken links")
			return
		}
		for _, b := range bs {
			fmt.Fprintf(out, "%s:%d  %q  [%s]\n", b.SourcePath, b.SourceLine, b.RawTarget, b.Reason)
		}
	})

	if ci {
		for _, b := range broken {
			if b.Reason == linkgraph.ReasonMissingFile || b.Reason == linkgraph.ReasonMissingAnchor {
				return fmt.Errorf("%d broken link(s) found", len(broken))
			}
		}
	}
	return nil
}

func newBacklinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backlinks <path>",
		Short: "List documents that reference the given path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBacklinks(cmd, args[0])
		},
	}
	return cmd
}

func runBacklinks(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	graph := linkgraph.Build(fi)
	backlinks := graph.Backlinks(path)

	w := newWriter(cmd)
	w.Result(backlinks, func(out io.Writer, v any) {
		bs := v.([]string)
		if len(bs) == 0 {
			fmt.Fprintln(out, "no inbound references")
			return
		}
		for _, b := range bs {
			fmt.Fprintln(out, b)
		}
	})
	return nil
}

func newOrphansCmd() *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List documents with zero inbound references",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrphans(cmd, exclude)
		},
	}
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "substrings of paths to exclude from the orphan scan (repeatable)")
	return cmd
}

func runOrphans(cmd *cobra.Command, exclude []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	graph := linkgraph.Build(fi)
	orphans := graph.Orphans(exclude)

	w := newWriter(cmd)
	w.Result(orphans, func(out io.Writer, v any) {
		paths := v.([]string)
		if len(paths) == 0 {
			fmt.Fprintln(out, "no orphans")
			return
		}
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
	})
	return nil
}
