// Package modresolve implements the Module Resolver Facade (spec.md
// §4.2): translating an import specifier plus a containing file path
// to an absolute path, using a TypeScript-style config file search and
// baseUrl/paths remapping when one is found.
package modresolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnresolvable signals a specifier could not be mapped to a file on
// disk. The export-graph resolver skips re-exports whose source is
// unresolvable; the orchestrator fails the load when a dependency that
// an exported declaration references is unresolvable (spec.md §7).
var ErrUnresolvable = fmt.Errorf("modresolve: unresolvable specifier")

// tsconfigOptions is the subset of tsconfig.json's compilerOptions this
// resolver understands.
type tsconfigOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

type tsconfigFile struct {
	CompilerOptions tsconfigOptions `json:"compilerOptions"`
}

// Resolver discovers the nearest config file per containing directory
// and caches the parsed result, mirroring the priority-ordered upward
// search `pkgmgr.GetCodeMapHome` performs over environment variables
// and platform defaults — here applied to directories instead.
type Resolver struct {
	// ConfigFileNames are tried, in priority order, at each directory
	// level while walking upward (spec.md §4.2 "discovers the nearest
	// config file").
	ConfigFileNames []string
	// Extensions are probed, in order, when a specifier resolves to a
	// path with no extension.
	Extensions []string

	cache map[string]*tsconfigOptions // dir -> nearest config's options (nil = none found)
}

// NewResolver returns a Resolver configured with the teacher-config's
// default search names and TypeScript's usual extension probe order.
func NewResolver(configFileNames []string) *Resolver {
	if len(configFileNames) == 0 {
		configFileNames = []string{"tsconfig.json", "jsconfig.json"}
	}
	return &Resolver{
		ConfigFileNames: configFileNames,
		Extensions:      []string{".ts", ".tsx", ".d.ts", "/index.ts", "/index.tsx"},
		cache:           make(map[string]*tsconfigOptions),
	}
}

// Resolve translates specifier, imported from containingFile, to an
// absolute path. Relative specifiers (`./`, `../`) are resolved
// directly against containingFile's directory; bare specifiers consult
// the nearest config's baseUrl/paths remap, falling back to "not
// found" (package-manager resolution of node_modules is explicitly out
// of scope, spec.md §1 — this facade never walks node_modules).
func (r *Resolver) Resolve(specifier, containingFile string) (string, error) {
	dir := filepath.Dir(containingFile)

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || specifier == "." || specifier == ".." {
		return r.probe(filepath.Join(dir, specifier))
	}

	opts := r.nearestConfig(dir)
	if opts != nil {
		if resolved, ok := r.remap(opts, specifier); ok {
			return r.probe(resolved)
		}
	}

	return "", fmt.Errorf("%w: %s (from %s)", ErrUnresolvable, specifier, containingFile)
}

// remap applies baseUrl/paths the way tsconfig.json's compilerOptions
// describe: an exact or trailing-`*` entry in paths wins over a plain
// baseUrl join.
func (r *Resolver) remap(opts *tsconfigOptions, specifier string) (string, bool) {
	if opts.BaseURL == "" {
		return "", false
	}
	for pattern, targets := range opts.Paths {
		if len(targets) == 0 {
			continue
		}
		if pattern == specifier {
			return filepath.Join(opts.BaseURL, targets[0]), true
		}
		if strings.HasSuffix(pattern, "*") {
			prefix := strings.TrimSuffix(pattern, "*")
			if strings.HasPrefix(specifier, prefix) {
				rest := strings.TrimPrefix(specifier, prefix)
				target := strings.Replace(targets[0], "*", rest, 1)
				return filepath.Join(opts.BaseURL, target), true
			}
		}
	}
	return filepath.Join(opts.BaseURL, specifier), true
}

// probe tries path as-is, then with each configured extension
// appended, returning the first that exists as a regular file.
func (r *Resolver) probe(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(path)
		return abs, err
	}
	for _, ext := range r.Extensions {
		candidate := path + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			return abs, err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolvable, path)
}

// nearestConfig walks upward from dir looking for the first of
// r.ConfigFileNames, caching per directory so repeated lookups in the
// same subtree don't re-walk the filesystem.
func (r *Resolver) nearestConfig(dir string) *tsconfigOptions {
	if cached, ok := r.cache[dir]; ok {
		return cached
	}

	for _, name := range r.ConfigFileNames {
		path := filepath.Join(dir, name)
		if data, err := os.ReadFile(path); err == nil {
			var parsed tsconfigFile
			if err := json.Unmarshal(data, &parsed); err == nil {
				opts := parsed.CompilerOptions
				if opts.BaseURL != "" {
					opts.BaseURL = filepath.Join(dir, opts.BaseURL)
				}
				r.cache[dir] = &opts
				return &opts
			}
		}
	}

	parent := filepath.Dir(dir)
	if parent == dir {
		r.cache[dir] = nil
		return nil
	}
	opts := r.nearestConfig(parent)
	r.cache[dir] = opts
	return opts
}
