package main

import (
	"os"
	"path/filepath"

	"tsdocgraph/internal/modresolve"
)

// fsHost is the concrete orchestrator.Host the CLI wires up: file
// contents come straight from disk, and specifiers resolve through
// the Module Resolver Facade's tsconfig-aware lookup.
type fsHost struct {
	resolver *modresolve.Resolver
}

func newFSHost(configFileNames []string) *fsHost {
	return &fsHost{resolver: modresolve.NewResolver(configFileNames)}
}

func (h *fsHost) GetSource(absPath string) ([]byte, error) {
	return os.ReadFile(absPath)
}

func (h *fsHost) Resolve(specifier, containingFile string) (string, error) {
	return h.resolver.Resolve(specifier, containingFile)
}

func absPath(path string) (string, error) {
	return filepath.Abs(path)
}
