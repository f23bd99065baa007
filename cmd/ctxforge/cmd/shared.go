package cmd

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ctxforge/internal/config"
	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/output"
	"github.com/Aman-CERP/ctxforge/internal/store"
)

// loadConfig resolves the project config relative to the --root flag.
func loadConfig() (*config.Config, error) {
	return config.Load(rootDir)
}

// indexDir returns the directory the on-disk index lives under.
func indexDir(cfg *config.Config) string {
	return filepath.Join(rootDir, cfg.Paths.IndexRoot)
}

// loadIndex loads the forward index for rootDir, logging (but not
// failing on) a version-mismatch warning.
func loadIndex(cfg *config.Config) (*model.ForwardIndex, *model.Stats, error) {
	fi, _, stats, warning, err := store.Load(indexDir(cfg))
	if err != nil {
		return nil, nil, err
	}
	if warning != "" {
		slog.Warn(warning)
	}
	return fi, stats, nil
}

// newWriter builds an output.Writer honoring the --json flag.
func newWriter(cmd *cobra.Command) *output.Writer {
	return output.New(cmd.OutOrStdout()).WithJSON(jsonOutput)
}

// reportError prints err to stderr as a structured record in JSON mode
// or a human-readable line otherwise, and returns it so the caller's
// RunE propagates a nonzero exit.
func reportError(err error) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]string{"error": string(cferrors.GetCode(err)), "message": err.Error()})
		return err
	}
	_, _ = os.Stderr.WriteString("✗ " + err.Error() + "\n")
	return err
}
