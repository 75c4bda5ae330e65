package modresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.ts"), "export interface Base {}")
	writeFile(t, filepath.Join(dir, "index.ts"), "export {Base} from './base';")

	r := NewResolver(nil)
	got, err := r.Resolve("./base", filepath.Join(dir, "index.ts"))
	require.NoError(t, err)
	want, _ := filepath.Abs(filepath.Join(dir, "base.ts"))
	require.Equal(t, want, got)
}

func TestResolveUnresolvableBareSpecifier(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.ts"), "import {F} from 'nonexistent';")

	r := NewResolver(nil)
	_, err := r.Resolve("nonexistent", filepath.Join(dir, "index.ts"))
	require.ErrorIs(t, err, ErrUnresolvable)
}

func TestResolveBaseURLPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tsconfig.json"), `{
		"compilerOptions": {
			"baseUrl": "./src",
			"paths": { "@lib/*": ["lib/*"] }
		}
	}`)
	writeFile(t, filepath.Join(dir, "src", "lib", "widget.ts"), "export interface Widget {}")
	writeFile(t, filepath.Join(dir, "src", "index.ts"), "export {Widget} from '@lib/widget';")

	r := NewResolver(nil)
	got, err := r.Resolve("@lib/widget", filepath.Join(dir, "src", "index.ts"))
	require.NoError(t, err)
	want, _ := filepath.Abs(filepath.Join(dir, "src", "lib", "widget.ts"))
	require.Equal(t, want, got)
}
