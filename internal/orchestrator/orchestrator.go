// Package orchestrator implements the Loader Orchestrator (spec.md
// §4.9, §5, §6): the top-level load(filePath, requestedSymbols?) entry
// point that drives the export-graph resolver, transformer, and linker
// against the cache, recursively loading whatever dependency files a
// request touches.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"tsdocgraph/internal/cache"
	"tsdocgraph/internal/exportgraph"
	"tsdocgraph/internal/linker"
	"tsdocgraph/internal/node"
	"tsdocgraph/internal/transformer"
	"tsdocgraph/internal/tsast"
)

// Host is the External Interfaces contract (spec.md §6): the loader's
// caller supplies file contents and module resolution; everything else
// — parsing, gathering, linking — is internal.
type Host interface {
	GetSource(absPath string) ([]byte, error)
	Resolve(specifier, containingFile string) (string, error)
}

// Orchestrator is the top-level Loader. One Orchestrator is shared
// across concurrent requests for different entry files (spec.md §5);
// its cache is the sole piece of shared mutable state.
type Orchestrator struct {
	host     Host
	parser   *tsast.Parser
	resolver *exportgraph.Resolver
	cache    *cache.Cache

	// group coalesces concurrent Load calls for the same (file,
	// requested) task into a single underlying traversal (spec.md §5:
	// "identical concurrent requests for the same task share one
	// in-flight load rather than duplicating work").
	group singleflight.Group
}

// New returns an Orchestrator backed by host.
func New(host Host) *Orchestrator {
	parser := tsast.NewParser()
	resolver := exportgraph.New(host, parser)
	return &Orchestrator{
		host:     host,
		parser:   parser,
		resolver: resolver,
		cache:    cache.New(parser, resolver),
	}
}

// Invalidate evicts filePath's AST, export map, and symbol cache
// entries (spec.md §4.8, wired to the host's optional invalidate
// signal per §6).
func (o *Orchestrator) Invalidate(filePath string) {
	o.cache.InvalidateFile(filePath)
}

// Load is the public entry point: spec.md §4.9's load(filePath,
// requestedSymbols?). A nil/empty requestedSymbols means "every public
// name this file exports".
func (o *Orchestrator) Load(filePath string, requestedSymbols []string) (*linker.Asset, error) {
	key := taskKey(filePath, requestedSymbols)
	v, err, _ := o.group.Do(key, func() (interface{}, error) {
		return o.load(filePath, requestedSymbols, map[string]bool{})
	})
	if err != nil {
		return nil, err
	}
	return v.(*linker.Asset), nil
}

// load is the recursive worker. inProgress is per top-level Load call,
// not shared globally (spec.md §5), and is threaded through every
// recursive invocation exactly like exportgraph.Resolver.Build's own
// cycle guard.
func (o *Orchestrator) load(filePath string, requested []string, inProgress map[string]bool) (*linker.Asset, error) {
	key := taskKey(filePath, requested)
	if inProgress[key] {
		// Circular-dependency cut (spec.md §4.9): a repeat entry gets an
		// empty stub instead of recursing; the cache never remembers a
		// stub, so a later request re-traverses and fills it in.
		return linker.NewAsset(filePath), nil
	}
	inProgress = withKey(inProgress, key)

	graph, err := o.resolver.Build(filePath, map[string]bool{})
	if err != nil {
		return nil, err
	}

	names := requested
	if len(names) == 0 {
		for name := range graph {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	out := linker.NewAsset(filePath)
	var unfoundLocal []string // public names whose declaration lives in filePath itself

	for _, name := range names {
		se, ok := graph[name]
		if !ok {
			continue // requested export not found: silently drop (spec.md §7)
		}
		if se.LocalName == exportgraph.NamespaceMarker {
			// A namespace re-export's "declaration" isn't a single AST
			// path — no variant in the closed Node sum type models a
			// module namespace object. Best-effort degrade to an
			// identifier rather than aborting (see DESIGN.md's Open
			// Question decision on this).
			out.Exports[name] = &node.Node{Kind: node.KindIdentifier, Name: name}
			out.Symbols[name] = exportgraph.NamespaceMarker
			continue
		}

		id := se.File + ":" + se.LocalName
		if cached, ok := o.cache.GetSymbol(id); ok {
			out.Exports[name] = cached
			out.Symbols[se.LocalName] = name
			continue
		}

		if se.File == filePath {
			unfoundLocal = append(unfoundLocal, name)
			continue
		}

		depAsset, err := o.load(se.File, []string{se.LocalName}, inProgress)
		if err != nil {
			return nil, err
		}
		if n, ok := depAsset.Exports[se.LocalName]; ok {
			o.cache.SetSymbol(id, n)
			out.Exports[name] = n
			out.Symbols[se.LocalName] = name
		}
	}

	if len(unfoundLocal) == 0 {
		return out, nil
	}

	linked, err := o.loadLocal(filePath, graph, unfoundLocal, inProgress)
	if err != nil {
		return nil, err
	}
	for publicName, n := range linked {
		out.Exports[publicName] = n
		if se, ok := graph[publicName]; ok {
			out.Symbols[se.LocalName] = publicName
			o.cache.SetSymbol(se.File+":"+se.LocalName, n)
		}
	}
	return out, nil
}

// loadLocal transforms and links the requested locally-declared public
// names of filePath, recursively loading whatever dependency files the
// transformer observes (spec.md §4.9 step 5).
func (o *Orchestrator) loadLocal(filePath string, graph exportgraph.Graph, publicNames []string, inProgress map[string]bool) (map[string]*node.Node, error) {
	source, err := o.host.GetSource(filePath)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read %s: %w", filePath, err)
	}
	ast, err := o.parser.Parse(context.Background(), filePath, source)
	if err != nil {
		return map[string]*node.Node{}, nil // parse error: no exports for this file (spec.md §7)
	}

	tr := transformer.New(filePath, ast)
	primary := linker.NewAsset(filePath)
	for _, publicName := range publicNames {
		se := graph[publicName]
		if se.DeclarationPath == nil {
			continue
		}
		primary.Exports[se.LocalName] = tr.Transform(se.DeclarationPath)
	}

	depsBySpecifier := make(map[string]*linker.Asset)
	var mu sync.Mutex
	g := new(errgroup.Group)
	for _, dep := range tr.Output().Dependencies {
		dep := dep
		target, err := o.host.Resolve(dep.Specifier, filePath)
		if err != nil {
			// Dependencies are recorded only when an exported declaration
			// references the import, so an unresolvable one fails the load.
			return nil, fmt.Errorf("orchestrator: resolve %q from %s: %w", dep.Specifier, filePath, err)
		}

		var subset []string
		forceFull := false
		for _, imp := range dep.Imports {
			if imp.Kind == node.ImportNamespace {
				forceFull = true
				break
			}
			subset = append(subset, imp.SourceName)
		}
		if forceFull {
			subset = nil
		}

		g.Go(func() error {
			depAsset, err := o.load(target, subset, inProgress)
			if err != nil {
				return err
			}
			mu.Lock()
			depsBySpecifier[dep.Specifier] = depAsset
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l := linker.New(primary, depsBySpecifier)
	linkedAsset := l.Link()

	result := make(map[string]*node.Node, len(publicNames))
	for _, publicName := range publicNames {
		se := graph[publicName]
		if n, ok := linkedAsset.Exports[se.LocalName]; ok {
			result[publicName] = n
		}
	}
	return result, nil
}

func taskKey(filePath string, requested []string) string {
	if len(requested) == 0 {
		return filePath + "|*"
	}
	sorted := append([]string(nil), requested...)
	sort.Strings(sorted)
	return filePath + "|" + strings.Join(sorted, ",")
}

func withKey(set map[string]bool, key string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k := range set {
		out[k] = true
	}
	out[key] = true
	return out
}
