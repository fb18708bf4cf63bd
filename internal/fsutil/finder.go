// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// enginePatterns are the file name prefixes of the Prisma engine binaries,
// each with its generic and RHEL-specific variant.
var enginePatterns = [...]string{
	"libquery_engine*",
	"libquery_engine-rhel*",
	"query-engine*",
	"query-engine-rhel*",
	"migration-engine*",
	"migration-engine-rhel*",
	"prisma-fmt*",
	"prisma-fmt-rhel*",
	"introspection-engine*",
	"introspection-engine-rhel*",
}

// EnginePatterns returns a copy of the engine file name patterns.
func EnginePatterns() []string {
	return append([]string(nil), enginePatterns[:]...)
}

// EngineGlob returns the doublestar pattern matching engine binaries at any
// depth below a root directory.
func EngineGlob() string {
	return "**/{" + strings.Join(enginePatterns[:], ",") + "}"
}

// FindEngineBinaries searches the node_modules directory below root for
// Prisma engine binaries. Only regular files are returned, sorted and free
// of duplicates. A missing node_modules directory yields no matches.
func FindEngineBinaries(root string) ([]string, error) {
	return FindFiles(filepath.Join(root, "node_modules"), EngineGlob())
}

// FindFiles returns the files below rootPath matching the doublestar
// pattern, as sorted, de-duplicated paths joined onto rootPath.
func FindFiles(rootPath string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootPath)
	}

	matches, err := doublestar.Glob(os.DirFS(rootPath), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", pattern, rootPath, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(rootPath, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return deduplicateSorted(files), nil
}

// deduplicateSorted removes duplicates from a sorted slice. A file matched
// by more than one brace alternative is reported once.
func deduplicateSorted(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}

	result := make([]string, 0, len(sorted))
	result = append(result, sorted[0])
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			result = append(result, sorted[i])
		}
	}
	return result
}
