package orchestrator

import (
	"fmt"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// memHost is an in-memory Host fixture: files map absolute paths to
// source text, and Resolve joins relative specifiers against the
// containing file's directory the way a bundler's resolver would.
type memHost struct {
	files map[string]string
}

func (h *memHost) GetSource(absPath string) ([]byte, error) {
	src, ok := h.files[absPath]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", absPath)
	}
	return []byte(src), nil
}

func (h *memHost) Resolve(specifier, containingFile string) (string, error) {
	if _, ok := h.files[specifier]; ok {
		return specifier, nil
	}
	joined := path.Join(path.Dir(containingFile), specifier) + ".ts"
	if _, ok := h.files[joined]; ok {
		return joined, nil
	}
	return "", fmt.Errorf("cannot resolve %q from %s", specifier, containingFile)
}

func TestLoadSimpleReExport(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/base.ts": "export interface Base { foo: string; }",
		"/proj/index.ts": `export { Base } from "./base";`,
	}}
	o := New(host)

	asset, err := o.Load("/proj/index.ts", []string{"Base"})
	require.NoError(t, err)

	got, ok := asset.Exports["Base"]
	require.True(t, ok)
	require.Equal(t, "Base", got.Name)
	require.Equal(t, []string{"foo"}, got.Properties.Keys())
}

func TestLoadRenamedReExport(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/base.ts":  "export interface Base { foo: string; }",
		"/proj/index.ts": `export { Base as Foo } from "./base";`,
	}}
	o := New(host)

	asset, err := o.Load("/proj/index.ts", []string{"Foo"})
	require.NoError(t, err)

	got, ok := asset.Exports["Foo"]
	require.True(t, ok)
	require.Equal(t, "Base", got.Name)
}

func TestLoadCircularBarrelDoesNotHang(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/a.ts": `export * from "./b";
export interface A { x: string; }`,
		"/proj/b.ts": `export * from "./a";
export interface B { y: string; }`,
	}}
	o := New(host)

	asset, err := o.Load("/proj/a.ts", nil)
	require.NoError(t, err)

	_, ok := asset.Exports["A"]
	require.True(t, ok)
	_, ok = asset.Exports["B"]
	require.True(t, ok)
}

func TestLoadUnusedUnresolvableDependencySucceeds(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/index.ts": `import { Helper } from "./missing";
export interface Used { a: string; }`,
	}}
	o := New(host)

	asset, err := o.Load("/proj/index.ts", []string{"Used"})
	require.NoError(t, err)

	got, ok := asset.Exports["Used"]
	require.True(t, ok)
	require.Equal(t, []string{"a"}, got.Properties.Keys())
}

func TestLoadAllExportsWhenNoneRequested(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/index.ts": `export interface A { x: string; }
export interface B { y: string; }`,
	}}
	o := New(host)

	asset, err := o.Load("/proj/index.ts", nil)
	require.NoError(t, err)
	require.Len(t, asset.Exports, 2)
}

func TestLoadIsIdempotentAcrossCacheHit(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/index.ts": `export interface A { x: string; }`,
	}}
	o := New(host)

	first, err := o.Load("/proj/index.ts", []string{"A"})
	require.NoError(t, err)
	second, err := o.Load("/proj/index.ts", []string{"A"})
	require.NoError(t, err)

	require.Equal(t, first.Exports["A"].Name, second.Exports["A"].Name)
	require.Equal(t, first.Exports["A"].Properties.Keys(), second.Exports["A"].Properties.Keys())
}

func TestInvalidateForcesFreshLoad(t *testing.T) {
	host := &memHost{files: map[string]string{
		"/proj/index.ts": `export interface A { x: string; }`,
	}}
	o := New(host)

	_, err := o.Load("/proj/index.ts", []string{"A"})
	require.NoError(t, err)

	o.Invalidate("/proj/index.ts")

	host.files["/proj/index.ts"] = `export interface A { x: string; y: string; }`
	asset, err := o.Load("/proj/index.ts", []string{"A"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, asset.Exports["A"].Properties.Keys())
}
