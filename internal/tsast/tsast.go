// Package tsast wraps the external TypeScript parser (spec.md §4.1,
// the Parser Facade) behind a small interface the rest of the loader
// depends on instead of the tree-sitter API directly.
package tsast

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// AST is a parsed source file: its tree-sitter tree, the source bytes
// the tree's byte ranges index into, the absolute path it was parsed
// from, and whether it is an ambient declaration file (`.d.ts`).
type AST struct {
	Tree    *sitter.Tree
	Source  []byte
	Path    string
	Ambient bool

	scopes *ScopeTree
}

// Scope returns the lexical scope tree computed for this AST, building
// it on first access (cheap relative to parsing; not worth caching on
// its own beyond the AST that already sits in the cache).
func (a *AST) Scope() *ScopeTree {
	if a.scopes == nil {
		a.scopes = buildScopeTree(a.Tree.RootNode(), a.Source)
	}
	return a.scopes
}

// grammarFor picks the typescript or tsx grammar by file extension.
func grammarFor(path string) *sitter.Language {
	if strings.HasSuffix(path, ".tsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Parser is the facade over the external parser. It caches parsed ASTs
// keyed by absolute path (spec.md §4.1: "caches ASTs keyed by absolute
// path"), with one lock per path so unrelated files never block each
// other, the same lock-per-key shape the Loader Cache uses for its own
// maps (spec.md §5).
type Parser struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	cache map[string]*AST
}

// NewParser returns a ready-to-use Parser.
func NewParser() *Parser {
	return &Parser{
		locks: make(map[string]*sync.Mutex),
		cache: make(map[string]*AST),
	}
}

func (p *Parser) lockFor(path string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[path]
	if !ok {
		l = &sync.Mutex{}
		p.locks[path] = l
	}
	return l
}

// Parse returns the cached AST for absPath, parsing source on first
// request. source is supplied by the caller (via the Host's GetSource,
// spec.md §6) rather than read from disk here, keeping file I/O out of
// the facade's concern.
func (p *Parser) Parse(ctx context.Context, absPath string, source []byte) (*AST, error) {
	lock := p.lockFor(absPath)
	lock.Lock()
	defer lock.Unlock()

	p.mu.Lock()
	cached, ok := p.cache[absPath]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(absPath))
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tsast: parse %s: %w", absPath, err)
	}

	ast := &AST{
		Tree:    tree,
		Source:  source,
		Path:    absPath,
		Ambient: strings.HasSuffix(absPath, ".d.ts") || strings.HasSuffix(filepath.Base(absPath), ".d.tsx"),
	}

	p.mu.Lock()
	p.cache[absPath] = ast
	p.mu.Unlock()

	return ast, nil
}

// Invalidate drops absPath from the AST cache, honoring the Loader
// Cache's "coarse-grained invalidation by file path" contract
// (spec.md §2 item 8) at the parser layer.
func (p *Parser) Invalidate(absPath string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, absPath)
	delete(p.locks, absPath)
}

// Content returns the source text covered by a tree-sitter node.
func Content(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(source)
}

// DocComment walks backwards through contiguous leading comment
// siblings of node and joins/cleans them, the same prevSibling walk
// the teacher's Go extractor used for doc comments, generalized to
// JSDoc's `/** ... */` block-comment convention instead of Go's `//`
// line comments.
func DocComment(node *sitter.Node, source []byte) string {
	var lines []string
	current := node
	for {
		prev := current.PrevSibling()
		if prev == nil || current.StartPoint().Row-prev.EndPoint().Row > 1 {
			break
		}
		if prev.Type() != "comment" {
			break
		}
		lines = append([]string{prev.Content(source)}, lines...)
		current = prev
	}
	return cleanJSDoc(strings.Join(lines, "\n"))
}

// cleanJSDoc strips JSDoc comment syntax (`/**`, leading `*`, `*/`)
// down to the described prose, same normalization shape as the
// teacher's cleanDocComment but matching `/** ... * ... */` framing
// instead of Go's `//`-per-line convention.
func cleanJSDoc(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")
	lines := strings.Split(raw, "\n")
	var cleaned []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimSpace(l)
		if l != "" {
			cleaned = append(cleaned, l)
		}
	}
	return strings.Join(cleaned, "\n")
}
