package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/assembler"
	"github.com/Aman-CERP/ctxforge/internal/rank"
)

// evalCase is one line of the eval JSONL file.
type evalCase struct {
	ID      string   `json:"id"`
	Q       string   `json:"q"`
	Expect  []string `json:"expect"`
	MinHits int      `json:"min_hits"`
}

// evalResult is one case's pass/fail outcome.
type evalResult struct {
	ID     string `json:"id"`
	Q      string `json:"q"`
	Hits   int    `json:"hits"`
	Needed int    `json:"needed"`
	Pass   bool   `json:"pass"`
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <cases.jsonl>",
		Short: "Run assembled digests against expected-substring test cases",
		Long: `Reads a JSONL file where each line is {"id", "q", "expect": [...],
"min_hits"}. For each line, assembles a digest for q and passes iff at
least min_hits of the expect substrings appear in it, case-insensitive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args[0])
		},
	}
	return cmd
}

func runEval(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	fi, _, err := loadIndex(cfg)
	if err != nil {
		return reportError(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return reportError(err)
	}
	defer f.Close()

	rankCfg := rank.Config{K1: cfg.Rank.K1, B: cfg.Rank.B, TopK: cfg.Rank.TopK, TopMDocs: cfg.Rank.TopMDocs}
	a := assembler.New(rootDir, fi, rankCfg)

	var results []evalResult
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var tc evalCase
		if err := json.Unmarshal([]byte(line), &tc); err != nil {
			return reportError(fmt.Errorf("line %d: %w", lineNo, err))
		}

		digest, err := a.Assemble(assembler.DefaultRequest(tc.Q))
		hits := 0
		if err == nil {
			lower := strings.ToLower(digest.Markdown)
			for _, want := range tc.Expect {
				if strings.Contains(lower, strings.ToLower(want)) {
					hits++
				}
			}
		}

		results = append(results, evalResult{
			ID: tc.ID, Q: tc.Q, Hits: hits, Needed: tc.MinHits, Pass: hits >= tc.MinHits,
		})
	}
	if err := scanner.Err(); err != nil {
		return reportError(err)
	}

	failures := 0
	for _, r := range results {
		if !r.Pass {
			failures++
		}
	}

	w := newWriter(cmd)
	w.Result(results, func(out io.Writer, v any) {
		rs := v.([]evalResult)
		for _, r := range rs {
			status := "PASS"
			if !r.Pass {
				status = "FAIL"
			}
			fmt.Fprintf(out, "[%s] %s  (%d/%d hits)  %q\n", status, r.ID, r.Hits, r.Needed, r.Q)
		}
		fmt.Fprintf(out, "%d/%d passed\n", len(rs)-failures, len(rs))
	})

	if failures > 0 {
		return fmt.Errorf("%d eval case(s) failed", failures)
	}
	return nil
}
