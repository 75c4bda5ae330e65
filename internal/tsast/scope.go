package tsast

import sitter "github.com/smacker/go-tree-sitter"

// Scope is one lexical scope: the set of value bindings and type
// bindings introduced directly in it, plus a link to its parent. Value
// bindings come from the parser facade's own binding pass (variables,
// functions, classes used as values); Type bindings are the "type-scope
// table" spec.md §4.3 says the gatherer must build separately, since
// `type`/`interface`/`enum` identifiers are not value bindings.
type Scope struct {
	Parent     *Scope
	StartByte  uint32
	EndByte    uint32
	Values     map[string]*sitter.Node
	Types      map[string]*sitter.Node
	namePlaced bool
}

// Lookup walks s and its ancestors outward looking for a value binding
// named name.
func (s *Scope) Lookup(name string) (*sitter.Node, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if n, ok := cur.Values[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// LookupType walks s and its ancestors outward looking for a type
// binding named name — the type-scope table lookup spec.md §4.3
// describes as the fallback after the value-binding lookup fails.
func (s *Scope) LookupType(name string) (*sitter.Node, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if n, ok := cur.Types[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// ScopeTree indexes every Scope in a file by byte range so a caller
// holding any tree-sitter node can find its innermost enclosing scope.
type ScopeTree struct {
	root   *Scope
	scopes []*Scope // ordered by StartByte ascending, used for innermost lookup
}

// Root returns the file-level scope.
func (t *ScopeTree) Root() *Scope { return t.root }

// At returns the innermost scope containing byte offset pos.
func (t *ScopeTree) At(pos uint32) *Scope {
	best := t.root
	bestSpan := t.root.EndByte - t.root.StartByte
	for _, s := range t.scopes {
		if pos < s.StartByte || pos >= s.EndByte {
			continue
		}
		span := s.EndByte - s.StartByte
		if span <= bestSpan {
			best, bestSpan = s, span
		}
	}
	return best
}

// scopeIntroducingTypes are node types that open a new lexical scope.
// Function-like constructs and block bodies each get their own scope;
// everything else inherits its enclosing scope.
var scopeIntroducingTypes = map[string]bool{
	"program":              true,
	"statement_block":      true,
	"class_body":           true,
	"interface_body":       true,
	"function_declaration": true,
	"function_signature":   true,
	"method_definition":    true,
	"arrow_function":       true,
	"function_expression":  true,
	"enum_body":            true,
}

func buildScopeTree(root *sitter.Node, source []byte) *ScopeTree {
	t := &ScopeTree{}
	rootScope := newScope(nil, root)
	t.root = rootScope
	t.scopes = append(t.scopes, rootScope)
	walkScopes(root, rootScope, t, source, true)
	return t
}

func newScope(parent *Scope, n *sitter.Node) *Scope {
	return &Scope{
		Parent:    parent,
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		Values:    make(map[string]*sitter.Node),
		Types:     make(map[string]*sitter.Node),
	}
}

// walkScopes recurses the tree, opening a new Scope whenever it enters
// a scope-introducing node type. isRoot suppresses opening a second
// scope for the program node itself, since buildScopeTree already
// created its root scope before the walk starts.
func walkScopes(n *sitter.Node, scope *Scope, t *ScopeTree, source []byte, isRoot bool) {
	childScope := scope
	if !isRoot && scopeIntroducingTypes[n.Type()] {
		childScope = newScope(scope, n)
		t.scopes = append(t.scopes, childScope)
	}

	registerBinding(n, scope, source)

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		walkScopes(child, childScope, t, source, false)
	}
}

func registerBinding(n *sitter.Node, scope *Scope, source []byte) {
	switch n.Type() {
	case "function_declaration", "class_declaration":
		if id := n.ChildByFieldName("name"); id != nil {
			scope.Values[id.Content(source)] = n
		}
	case "variable_declarator":
		if id := n.ChildByFieldName("name"); id != nil && id.Type() == "identifier" {
			scope.Values[id.Content(source)] = n
		}
	case "interface_declaration", "type_alias_declaration", "enum_declaration":
		if id := n.ChildByFieldName("name"); id != nil {
			scope.Types[id.Content(source)] = n
		}
	}
}
