package exportgraph

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tsdocgraph/internal/modresolve"
	"tsdocgraph/internal/tsast"
)

// fakeHost serves source from an in-memory map and resolves relative
// specifiers against it, the minimal Host a unit test needs without
// touching the filesystem.
type fakeHost struct {
	files map[string]string
}

func (h *fakeHost) GetSource(absPath string) ([]byte, error) {
	src, ok := h.files[absPath]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", absPath)
	}
	return []byte(src), nil
}

func (h *fakeHost) Resolve(specifier, containingFile string) (string, error) {
	dir := filepath.Dir(containingFile)
	candidate := filepath.Clean(filepath.Join(dir, specifier)) + ".ts"
	if _, ok := h.files[candidate]; ok {
		return candidate, nil
	}
	return "", modresolve.ErrUnresolvable
}

func TestBuildSimpleReExport(t *testing.T) {
	host := &fakeHost{files: map[string]string{
		"/proj/base.ts":  `export interface Base { value: number; }`,
		"/proj/index.ts": `export { Base } from "./base";`,
	}}
	r := New(host, tsast.NewParser())

	g, err := r.Build("/proj/index.ts", nil)
	require.NoError(t, err)
	require.Contains(t, g, "Base")
	require.Equal(t, "/proj/base.ts", g["Base"].File)
}

func TestBuildWildcardDoesNotOverwrite(t *testing.T) {
	host := &fakeHost{files: map[string]string{
		"/proj/base.ts": `export interface Base { value: number; }`,
		"/proj/other.ts": `export interface Base { value: string; }
export interface Extra {}`,
		"/proj/index.ts": `export * from "./other";
export { Base } from "./base";`,
	}}
	r := New(host, tsast.NewParser())

	g, err := r.Build("/proj/index.ts", nil)
	require.NoError(t, err)
	require.Equal(t, "/proj/base.ts", g["Base"].File, "explicit named re-export overwrites wildcard")
	require.Contains(t, g, "Extra")
}

func TestBuildUnresolvableReExportSkipsSilently(t *testing.T) {
	host := &fakeHost{files: map[string]string{
		"/proj/index.ts": `export { F } from "nonexistent";
export interface Base { value: number; }`,
	}}
	r := New(host, tsast.NewParser())

	g, err := r.Build("/proj/index.ts", nil)
	require.NoError(t, err)
	require.Contains(t, g, "Base")
}
