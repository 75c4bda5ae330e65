package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tsdocgraph/internal/exportgraph"
	"tsdocgraph/internal/node"
	"tsdocgraph/internal/tsast"
)

type fakeHost struct{}

func (fakeHost) GetSource(string) ([]byte, error)       { return nil, nil }
func (fakeHost) Resolve(string, string) (string, error) { return "", nil }

func newTestCache() *Cache {
	parser := tsast.NewParser()
	resolver := exportgraph.New(fakeHost{}, parser)
	return New(parser, resolver)
}

func TestSetGetSymbol(t *testing.T) {
	c := newTestCache()
	c.SetSymbol("/proj/a.ts:Foo", &node.Node{Kind: node.KindInterface, Name: "Foo"})

	got, ok := c.GetSymbol("/proj/a.ts:Foo")
	require.True(t, ok)
	require.Equal(t, "Foo", got.Name)
}

func TestInvalidateFileEvictsMatchingSymbols(t *testing.T) {
	c := newTestCache()
	c.SetSymbol("/proj/a.ts:Foo", &node.Node{Kind: node.KindInterface})
	c.SetSymbol("/proj/b.ts:Bar", &node.Node{Kind: node.KindInterface})

	c.InvalidateFile("/proj/a.ts")

	_, ok := c.GetSymbol("/proj/a.ts:Foo")
	require.False(t, ok)
	_, ok = c.GetSymbol("/proj/b.ts:Bar")
	require.True(t, ok, "other files' symbols survive invalidation")
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestCache()
	c.SetSymbol("/proj/a.ts:Foo", &node.Node{Kind: node.KindInterface, Name: "Foo"})

	path := filepath.Join(t.TempDir(), "snap.db")
	require.NoError(t, c.Snapshot(path))

	fresh := newTestCache()
	require.NoError(t, fresh.LoadSnapshot(path))

	got, ok := fresh.GetSymbol("/proj/a.ts:Foo")
	require.True(t, ok)
	require.Equal(t, "Foo", got.Name)
}
