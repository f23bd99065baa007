package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	yamlContent := "rank:\n  k1: 2.0\n  top_k: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ctxforge.yaml"), []byte(yamlContent), 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	// Then: overridden fields take the file's value
	assert.Equal(t, 2.0, cfg.Rank.K1)
	assert.Equal(t, 5, cfg.Rank.TopK)
	// And: every other field keeps its default
	assert.Equal(t, Default().Rank.B, cfg.Rank.B)
	assert.Equal(t, Default().Paths.Include, cfg.Paths.Include)
	assert.Equal(t, Default().Assembler.MaxTokens, cfg.Assembler.MaxTokens)
}

func TestLoad_MalformedYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ctxforge.yaml"), []byte("rank: [this is not, valid: yaml"), 0o644))

	_, err := Load(dir)

	assert.Error(t, err)
}

func TestDefault_MatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1.5, cfg.Rank.K1)
	assert.Equal(t, 0.75, cfg.Rank.B)
	assert.Equal(t, 8000, cfg.Assembler.MaxTokens)
	assert.Equal(t, 16, cfg.Similarity.LSHBands)
	assert.Equal(t, 8, cfg.Similarity.LSHRows)
}
