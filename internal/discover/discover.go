// Package discover finds the input files of a run.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPattern matches every CSV file.
const DefaultPattern = "*.csv"

// EnsureDir creates dir when it does not exist and reports whether it did.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("input path %s is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat input directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("failed to create input directory: %w", err)
	}
	return true, nil
}

// Files returns the regular files directly inside dir whose base name
// matches pattern, sorted by name.
func Files(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Matches reports whether path would be returned by Files(dir, pattern),
// ignoring whether it exists.
func Matches(dir, pattern, path string) bool {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(dir) {
		return false
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}
