// Package cache implements the Loader Cache (spec.md §4.8): the three
// maps shared across every top-level load — parsed ASTs, per-file
// export-graph maps, and per-symbol linked results. The AST cache
// lives in tsast.Parser and the export-map cache lives in
// exportgraph.Resolver (each already owns the per-path locking its
// cache needs); Cache itself owns the bounded symbol cache and fans
// per-file invalidation out across all three, since spec.md §4.8
// requires a single coarse-grained "evict everything for this path"
// operation regardless of which map a given entry lives in.
package cache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"tsdocgraph/internal/exportgraph"
	"tsdocgraph/internal/node"
	"tsdocgraph/internal/tsast"
)

const defaultSymbolCacheSize = 4096

// ASTInvalidator and ExportInvalidator are the narrow interfaces Cache
// needs from tsast.Parser and exportgraph.Resolver to fan invalidation
// out; both types already satisfy them without changes.
type ASTInvalidator interface {
	Invalidate(absPath string)
}

type ExportInvalidator interface {
	Invalidate(file string)
}

// Cache is the Loader Cache. It owns the symbol cache directly and
// coordinates invalidation across the AST and export-map caches it
// does not itself store.
type Cache struct {
	asts    ASTInvalidator
	exports ExportInvalidator
	symbols *lru.Cache[string, *node.Node]
}

// New returns a Cache wired to parser and resolver's invalidation
// hooks, with a symbol cache bounded to defaultSymbolCacheSize entries.
func New(parser *tsast.Parser, resolver *exportgraph.Resolver) *Cache {
	return NewWithSymbolCapacity(parser, resolver, defaultSymbolCacheSize)
}

// NewWithSymbolCapacity is New with an explicit symbol cache bound.
func NewWithSymbolCapacity(parser *tsast.Parser, resolver *exportgraph.Resolver, capacity int) *Cache {
	symbols, err := lru.New[string, *node.Node](capacity)
	if err != nil {
		// Only returns an error for capacity <= 0, which we never pass.
		panic(err)
	}
	return &Cache{asts: parser, exports: resolver, symbols: symbols}
}

// GetSymbol returns the cached linked node for id (NodeId string form).
func (c *Cache) GetSymbol(id string) (*node.Node, bool) {
	return c.symbols.Get(id)
}

// SetSymbol stores the linked node for id.
func (c *Cache) SetSymbol(id string, n *node.Node) {
	c.symbols.Add(id, n)
}

// InvalidateFile evicts path's AST, its export map, and every symbol
// cache entry whose NodeId's file equals path. Re-exports originating
// from other files are unaffected (spec.md §3 "Lifecycles", §4.8).
func (c *Cache) InvalidateFile(path string) {
	if c.asts != nil {
		c.asts.Invalidate(path)
	}
	if c.exports != nil {
		c.exports.Invalidate(path)
	}

	prefix := path + ":"
	for _, key := range c.symbols.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.symbols.Remove(key)
		}
	}
}
