// Package discover finds experiment result directories under a glob root
// pattern.
package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Discover expands shell-style wildcards in pattern into candidate roots and
// walks each recursively, collecting every directory that directly contains
// markerFile. The result is sorted lexicographically so repeated runs on an
// unchanged filesystem yield the same order. A pattern matching nothing
// yields an empty slice, not an error.
func Discover(pattern, markerFile string) ([]string, error) {
	if markerFile == "" {
		return nil, fmt.Errorf("marker file name must not be empty")
	}

	roots, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid directory pattern %q: %w", pattern, err)
	}
	if len(roots) == 0 {
		slog.Debug("pattern matched no roots", "pattern", pattern)
		return nil, nil
	}

	seen := make(map[string]bool)
	var leaves []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees contribute nothing; the scan
				// continues elsewhere.
				slog.Debug("skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if _, err := os.Stat(filepath.Join(path, markerFile)); err == nil {
				if !seen[path] {
					seen[path] = true
					leaves = append(leaves, path)
				}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, walkErr)
		}
	}

	sort.Strings(leaves)
	slog.Debug("discovery finished", "pattern", pattern, "leaves", len(leaves))
	return leaves, nil
}
