package indexer

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/ctxforge/internal/gitignore"
)

// discoverFiles walks root and returns the sorted list of paths (relative
// to root, slash-separated) that pass the extension include filter and are
// not excluded by any .gitignore found in the tree or by extraPatterns.
//
// A bounded LRU cache of per-path match decisions mirrors the indexer's
// directory-scan cache: repeated Match evaluations for paths under a
// frequently-revisited directory are served from cache rather than
// re-walking the gitignore rule set.
func discoverFiles(root string, includeExt, extraPatterns []string, cacheSize int) ([]string, error) {
	matcher := gitignore.New()
	matcher.AddPattern(".git/")
	for _, p := range extraPatterns {
		matcher.AddPattern(p)
	}

	// Gitignore files scope their patterns to their own directory and
	// below (AddPatternWithBase), so a single combined matcher correctly
	// models nested .gitignore files without per-directory chaining.
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}
		rel, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		base := filepath.ToSlash(rel)
		if base == "." {
			base = ""
		}
		_ = matcher.AddFromFile(path, base)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cacheSize <= 0 {
		cacheSize = 1000
	}
	decisions, _ := lru.New[string, bool](cacheSize)

	include := make(map[string]struct{}, len(includeExt))
	for _, e := range includeExt {
		include[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excluded, ok := decisions.Get(rel); ok {
			if excluded {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		} else {
			excluded := matcher.Match(rel, d.IsDir())
			decisions.Add(rel, excluded)
			if excluded {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := include[ext]; !ok {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
