// Package config loads the project configuration file (.ctxforge.yaml)
// layered over built-in defaults, following the same two-tier (defaults
// then file) merge the rest of the ambient stack uses.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the complete ctxforge configuration.
type Config struct {
	Version     int               `yaml:"version"`
	Paths       PathsConfig       `yaml:"paths"`
	Rank        RankConfig        `yaml:"rank"`
	Similarity  SimilarityConfig  `yaml:"similarity"`
	Assembler   AssemblerConfig   `yaml:"assembler"`
	Performance PerformanceConfig `yaml:"performance"`
}

// PathsConfig configures which files the indexer walks.
type PathsConfig struct {
	Include    []string `yaml:"include"`    // file extensions, e.g. "md", "txt", "rst"
	Exclude    []string `yaml:"exclude"`    // gitignore-style patterns, beyond .gitignore itself
	IndexRoot  string   `yaml:"index_root"` // directory the on-disk index lives under
}

// RankConfig configures the BM25 ranking engine.
type RankConfig struct {
	K1          float64 `yaml:"k1"`
	B           float64 `yaml:"b"`
	TopK        int     `yaml:"top_k"`
	TopMDocs    int     `yaml:"top_m_docs"`
}

// SimilarityConfig configures duplicate detection thresholds.
type SimilarityConfig struct {
	DocThreshold     float64 `yaml:"doc_threshold"`
	SectionThreshold float64 `yaml:"section_threshold"`
	MinFiles         int     `yaml:"min_files"`
	NumHashes        int     `yaml:"num_hashes"`
	LSHBands         int     `yaml:"lsh_bands"`
	LSHRows          int     `yaml:"lsh_rows"`
}

// AssemblerConfig configures the context assembler pipeline.
type AssemblerConfig struct {
	MaxTokens     int `yaml:"max_tokens"`
	MaxSections   int `yaml:"max_sections"`
	ExpansionDepth int `yaml:"expansion_depth"`
}

// PerformanceConfig configures resource usage during indexing.
type PerformanceConfig struct {
	IndexWorkers int `yaml:"index_workers"`
	CacheSize    int `yaml:"cache_size"`
}

// Default returns the built-in defaults specified for every knob.
func Default() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Include:   []string{"md", "txt", "rst"},
			Exclude:   nil,
			IndexRoot: ".ctxforge",
		},
		Rank: RankConfig{
			K1:       1.5,
			B:        0.75,
			TopK:     10,
			TopMDocs: 20,
		},
		Similarity: SimilarityConfig{
			DocThreshold:     0.5,
			SectionThreshold: 0.7,
			MinFiles:         2,
			NumHashes:        128,
			LSHBands:         16,
			LSHRows:          8,
		},
		Assembler: AssemblerConfig{
			MaxTokens:      8000,
			MaxSections:    20,
			ExpansionDepth: 1,
		},
		Performance: PerformanceConfig{
			IndexWorkers: 8,
			CacheSize:    1000,
		},
	}
}

// Load reads .ctxforge.yaml from dir (if present) merged over Default().
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".ctxforge.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.mergeWith(&parsed)
	return cfg, nil
}

// mergeWith overlays non-zero fields of other onto c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if len(other.Paths.Include) > 0 {
		c.Paths.Include = other.Paths.Include
	}
	if len(other.Paths.Exclude) > 0 {
		c.Paths.Exclude = other.Paths.Exclude
	}
	if other.Paths.IndexRoot != "" {
		c.Paths.IndexRoot = other.Paths.IndexRoot
	}
	if other.Rank.K1 != 0 {
		c.Rank.K1 = other.Rank.K1
	}
	if other.Rank.B != 0 {
		c.Rank.B = other.Rank.B
	}
	if other.Rank.TopK != 0 {
		c.Rank.TopK = other.Rank.TopK
	}
	if other.Rank.TopMDocs != 0 {
		c.Rank.TopMDocs = other.Rank.TopMDocs
	}
	if other.Similarity.DocThreshold != 0 {
		c.Similarity.DocThreshold = other.Similarity.DocThreshold
	}
	if other.Similarity.SectionThreshold != 0 {
		c.Similarity.SectionThreshold = other.Similarity.SectionThreshold
	}
	if other.Similarity.MinFiles != 0 {
		c.Similarity.MinFiles = other.Similarity.MinFiles
	}
	if other.Similarity.NumHashes != 0 {
		c.Similarity.NumHashes = other.Similarity.NumHashes
	}
	if other.Similarity.LSHBands != 0 {
		c.Similarity.LSHBands = other.Similarity.LSHBands
	}
	if other.Similarity.LSHRows != 0 {
		c.Similarity.LSHRows = other.Similarity.LSHRows
	}
	if other.Assembler.MaxTokens != 0 {
		c.Assembler.MaxTokens = other.Assembler.MaxTokens
	}
	if other.Assembler.MaxSections != 0 {
		c.Assembler.MaxSections = other.Assembler.MaxSections
	}
	if other.Assembler.ExpansionDepth != 0 {
		c.Assembler.ExpansionDepth = other.Assembler.ExpansionDepth
	}
	if other.Performance.IndexWorkers != 0 {
		c.Performance.IndexWorkers = other.Performance.IndexWorkers
	}
	if other.Performance.CacheSize != 0 {
		c.Performance.CacheSize = other.Performance.CacheSize
	}
}
