// Package exportgraph implements the Export-Graph Resolver (spec.md
// §4.4): recursively following re-exports across files to build, per
// entry file, a mapping publicName → SourceExport naming every symbol
// reachable from that file whether it's declared locally or reached
// transitively through barrels.
package exportgraph

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"tsdocgraph/internal/gatherer"
	"tsdocgraph/internal/tsast"
)

// NamespaceMarker is the special localName used for namespace
// re-exports (`export * as Foo from "x"`), which stay pointing at the
// defining file rather than being inlined (spec.md §4.4 step 3).
const NamespaceMarker = "*"

// SourceExport names where a public export's declaration actually
// lives.
type SourceExport struct {
	File            string
	LocalName       string
	DeclarationPath *sitter.Node
	Namespace       bool
}

// Graph is publicName → SourceExport for one file.
type Graph map[string]SourceExport

// ResolveStats mirrors the teacher's resolver-chain instrumentation
// (attempted/resolved/skipped) at the granularity of one file's
// re-export resolution. Build does not fill it in; no caller populates
// or reads it.
type ResolveStats struct {
	Attempted int
	Resolved  int
	Skipped   int
}

// Host supplies source text and module resolution; it is the subset of
// the Loader Orchestrator's Host interface (spec.md §6) this resolver
// needs.
type Host interface {
	GetSource(absPath string) ([]byte, error)
	Resolve(specifier, containingFile string) (string, error)
}

// Resolver builds and caches per-file export graphs.
type Resolver struct {
	host   Host
	parser *tsast.Parser

	mu    sync.Mutex
	cache map[string]Graph
	locks map[string]*sync.Mutex
}

// New returns a Resolver backed by host and parser.
func New(host Host, parser *tsast.Parser) *Resolver {
	return &Resolver{
		host:   host,
		parser: parser,
		cache:  make(map[string]Graph),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *Resolver) lockFor(file string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[file]
	if !ok {
		l = &sync.Mutex{}
		r.locks[file] = l
	}
	return l
}

// Build returns the export graph for file, following re-exports as
// needed. inProgress is the demand-driven cycle guard threaded through
// recursive calls within a single top-level request (spec.md §4.4
// "Cycle handling"): a file re-entered while already being built
// yields an empty temporary map for this pass rather than recursing
// forever, and the real entry (built by the call that is NOT
// re-entrant) still gets cached normally once it completes.
func (r *Resolver) Build(file string, inProgress map[string]bool) (Graph, error) {
	r.mu.Lock()
	if cached, ok := r.cache[file]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	if inProgress[file] {
		return Graph{}, nil
	}

	lock := r.lockFor(file)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	if cached, ok := r.cache[file]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	inProgress = withFile(inProgress, file)

	source, err := r.host.GetSource(file)
	if err != nil {
		return nil, fmt.Errorf("exportgraph: read %s: %w", file, err)
	}
	ast, err := r.parser.Parse(context.Background(), file, source)
	if err != nil {
		// A parse error is scoped to this file only (spec.md §4.1): it
		// yields no exports rather than aborting the whole build.
		return Graph{}, nil
	}

	gathered := gatherer.Gather(ast)
	result := make(Graph, len(gathered.Source))

	for _, se := range gathered.Source {
		if se.Namespace {
			// `export * as Foo from "x"` stays pointing at this file
			// under the namespace marker (spec.md §4.4 step 3) rather
			// than being inlined from its source file.
			result[se.PublicName] = SourceExport{File: file, LocalName: NamespaceMarker, Namespace: true}
			continue
		}
		result[se.PublicName] = SourceExport{File: file, LocalName: se.PublicName, DeclarationPath: se.Node}
	}

	for _, ext := range gathered.External {
		target, err := r.host.Resolve(ext.SourceFile, file)
		if err != nil {
			continue // unresolvable re-export source: skip silently (§4.4 step 4)
		}
		depGraph, err := r.Build(target, inProgress)
		if err != nil {
			continue
		}
		if entry, ok := depGraph[ext.SourceName]; ok {
			result[ext.ExportName] = entry
		}
	}

	for _, wc := range gathered.Wildcard {
		target, err := r.host.Resolve(wc.SourceFile, file)
		if err != nil {
			continue
		}
		depGraph, err := r.Build(target, inProgress)
		if err != nil {
			continue
		}
		for name, entry := range depGraph {
			if _, exists := result[name]; !exists {
				result[name] = entry
			}
		}
	}

	r.mu.Lock()
	r.cache[file] = result
	r.mu.Unlock()

	return result, nil
}

// Invalidate drops file's cached graph, e.g. on a file-change signal
// (spec.md §2 item 8, §6).
func (r *Resolver) Invalidate(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, file)
}

func withFile(set map[string]bool, file string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k := range set {
		out[k] = true
	}
	out[file] = true
	return out
}
