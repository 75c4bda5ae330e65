// Package projectscan implements the `scan` command's project walker:
// finding every TypeScript/TSX file under a root directory, honoring
// .gitignore. Adapted from the teacher's internal/crawler/crawler.go
// WalkDir-with-skip-list shape, upgraded from a fixed ignore-name list
// to real .gitignore pattern matching.
package projectscan

import (
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnoredDirs is a hard-coded skip list (.git, node_modules,
// dist, build, coverage) for directories a .gitignore file typically
// doesn't bother naming but a scan should still never descend into.
var defaultIgnoredDirs = []string{".git", "node_modules", "dist", "build", "coverage"}

// Scanner walks a project root collecting .ts/.tsx files, skipping
// whatever .gitignore (if present at the root) excludes.
type Scanner struct {
	matcher *ignore.GitIgnore
}

// NewScanner returns a Scanner. If root/.gitignore exists it is
// compiled and consulted for every candidate path; its absence is not
// an error — a project without one is simply unfiltered.
func NewScanner(root string) *Scanner {
	gitignorePath := filepath.Join(root, ".gitignore")
	matcher, err := ignore.CompileIgnoreFile(gitignorePath)
	if err != nil {
		matcher = nil
	}
	return &Scanner{matcher: matcher}
}

// ScanProject walks root, streaming each relevant file's absolute path
// to onFile rather than building a single large slice, the same
// memory-conscious shape as the teacher's ScanProject callback.
func (s *Scanner) ScanProject(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != root && s.shouldSkipDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isTypeScriptSource(d.Name()) {
			return nil
		}
		if s.matcher != nil && s.matcher.MatchesPath(rel) {
			return nil
		}

		onFile(path)
		return nil
	})
}

func (s *Scanner) shouldSkipDir(name, rel string) bool {
	for _, ign := range defaultIgnoredDirs {
		if name == ign {
			return true
		}
	}
	return s.matcher != nil && s.matcher.MatchesPath(rel)
}

func isTypeScriptSource(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	return strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".tsx")
}
