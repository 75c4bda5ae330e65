// Package linker implements the Linker / Partial Evaluator (spec.md
// §4.6–§4.7): it takes one file's unlinked transformed declarations
// plus its dependencies' already-linked Assets, resolves cross-file
// `reference` nodes, substitutes type-parameter applications, flattens
// interface inheritance, evaluates `Omit`/`keyof`, and emits a
// deduplicated `links` map alongside the final `exports` map.
package linker

import (
	"sort"

	"tsdocgraph/internal/node"
)

// Asset is the per-file bundle passed between orchestrator and linker
// (spec.md §3). Dependency assets arrive already linked (their Exports
// are concrete nodes or link placeholders, and Links holds whatever
// those exports reference); the primary asset's Exports holds the raw,
// unlinked nodes the transformer just produced for the file being
// loaded.
type Asset struct {
	File    string                `json:"id"`
	Exports map[string]*node.Node `json:"exports"`
	Links   map[string]*node.Node `json:"links"`
	Symbols map[string]string    `json:"symbols"`
}

// NewAsset returns an empty, initialized Asset for file.
func NewAsset(file string) *Asset {
	return &Asset{
		File:    file,
		Exports: make(map[string]*node.Node),
		Links:   make(map[string]*node.Node),
		Symbols: make(map[string]string),
	}
}

// Linker links one primary asset against its direct dependencies, keyed
// by the import specifier the primary file used to reach them (spec.md
// §4.6's "looking up specifier in the dependencies").
type Linker struct {
	primary *Asset
	deps    map[string]*Asset

	// table is Pass A's node-table: id string -> the merged/resolved
	// node stored there, populated as interfaces/aliases are flattened
	// and replaced with link placeholders (§4.6 step 6/7).
	table map[string]*node.Node
}

// New returns a Linker for primary against deps (specifier -> Asset).
func New(primary *Asset, deps map[string]*Asset) *Linker {
	return &Linker{
		primary: primary,
		deps:    deps,
		table:   make(map[string]*node.Node),
	}
}

// Link runs Pass A (code resolution) over every export of the primary
// asset, then Pass B (link collection), and returns the final
// {exports, links} result.
func (l *Linker) Link() *Asset {
	out := NewAsset(l.primary.File)
	out.Symbols = l.primary.Symbols

	names := make([]string, 0, len(l.primary.Exports))
	for name := range l.primary.Exports {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n := l.primary.Exports[name]
		inProgress := make(map[*node.Node]bool)
		out.Exports[name] = l.rewrite(n, nil, rootFrames(n), inProgress)
	}

	l.collectLinks(out)
	return out
}
