// Package gatherer implements the Export Gatherer (spec.md §4.3): a
// single-file pass over a parsed AST producing three classified export
// lists plus the type-scope table a reference-binding lookup falls
// back to.
package gatherer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"tsdocgraph/internal/tsast"
)

// SourceExport names a declaration defined in this file and exported
// under publicName. Namespace re-exports (`export * as Foo from "x"`)
// are also Source exports per spec.md §4.4 step 3 — they stay pointing
// at this file under the special namespace marker instead of being
// inlined from "x" — so Node is nil and SourceFile names "x" instead.
type SourceExport struct {
	PublicName string
	Node       *sitter.Node
	Namespace  bool
	SourceFile string
}

// ExternalExport is one renamed/plain re-export from another file.
type ExternalExport struct {
	ExportName string
	SourceName string
	SourceFile string // the raw specifier, resolved later by the caller
}

// WildcardExport is `export * from "x"`.
type WildcardExport struct {
	SourceFile string
}

// Result is the gatherer's full output for one file.
type Result struct {
	Source    []SourceExport
	External  []ExternalExport
	Wildcard  []WildcardExport
	TypeScope *tsast.ScopeTree
}

// dispatch table keyed by tree-sitter node type, per the §9 design
// note preferring an explicit table to a long if/else chain. Each
// handler receives the export_statement's declaration child (or the
// export_statement itself for clauses with no nested declaration) and
// appends to the in-progress Result.
type handler func(g *gathering, exportNode, declNode *sitter.Node)

var declarationHandlers = map[string]handler{
	"function_declaration":   handleNamedDeclaration,
	"class_declaration":      handleNamedDeclaration,
	"interface_declaration":  handleNamedDeclaration,
	"type_alias_declaration": handleNamedDeclaration,
	"enum_declaration":       handleNamedDeclaration,
	"lexical_declaration":    handleLexicalDeclaration,
	"variable_declaration":   handleLexicalDeclaration,
}

type gathering struct {
	ast    *tsast.AST
	result *Result
}

// Gather runs the Export Gatherer over a parsed file.
func Gather(ast *tsast.AST) *Result {
	g := &gathering{
		ast: ast,
		result: &Result{
			TypeScope: ast.Scope(),
		},
	}

	root := ast.Tree.RootNode()
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		g.visitTopLevel(root.Child(i))
	}

	return g.result
}

func (g *gathering) visitTopLevel(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "export_statement":
		g.visitExportStatement(n)
	}
}

func (g *gathering) visitExportStatement(n *sitter.Node) {
	// `export default ...` is recognized syntactically and produces no
	// entries — an explicit non-goal (spec.md §4.3, §9).
	if hasDefaultChild(n) {
		return
	}

	if spec := n.ChildByFieldName("source"); spec != nil {
		g.visitReExportStatement(n, spec)
		return
	}

	if decl := findChildOfTypes(n, declarationHandlers); decl != nil {
		if h, ok := declarationHandlers[decl.Type()]; ok {
			h(g, n, decl)
		}
		return
	}

	// `export { a, b as c }` with no source — local rebinding.
	if clause := findChildByType(n, "export_clause"); clause != nil {
		g.visitExportClause(clause, "")
	}
}

func hasDefaultChild(n *sitter.Node) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && c.Type() == "default" {
			return true
		}
	}
	return false
}

// namespaceAlias returns the bound name of `export * as Foo from "x"`,
// or "" for a plain `export * from "x"` with no alias.
func namespaceAlias(n *sitter.Node, source []byte) string {
	count := int(n.ChildCount())
	sawAs := false
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "as" {
			sawAs = true
			continue
		}
		if sawAs && c.Type() == "identifier" {
			return c.Content(source)
		}
	}
	return ""
}

func isWildcardExport(n *sitter.Node) bool {
	count := int(n.ChildCount())
	hasStar := false
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && c.Type() == "*" {
			hasStar = true
		}
	}
	return hasStar && findChildByType(n, "export_clause") == nil
}

func (g *gathering) visitReExportStatement(n, specNode *sitter.Node) {
	source := g.ast.Source
	specifier := unquote(specNode.Content(source))

	if isWildcardExport(n) {
		if alias := namespaceAlias(n, source); alias != "" {
			g.result.Source = append(g.result.Source, SourceExport{
				PublicName: alias,
				Namespace:  true,
				SourceFile: specifier,
			})
			return
		}
		g.result.Wildcard = append(g.result.Wildcard, WildcardExport{SourceFile: specifier})
		return
	}

	if clause := findChildByType(n, "export_clause"); clause != nil {
		g.visitExportClause(clause, specifier)
	}
}

func (g *gathering) visitExportClause(clause *sitter.Node, sourceFile string) {
	source := g.ast.Source
	count := int(clause.ChildCount())
	for i := 0; i < count; i++ {
		spec := clause.Child(i)
		if spec == nil || spec.Type() != "export_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		alias := spec.ChildByFieldName("alias")
		if name == nil {
			continue
		}
		sourceName := name.Content(source)
		exportName := sourceName
		if alias != nil {
			exportName = alias.Content(source)
		}

		if sourceFile == "" {
			// Local rebinding: `export { a as b }` with no `from`.
			decl, ok := g.ast.Scope().Root().Lookup(sourceName)
			if !ok {
				decl, ok = g.ast.Scope().Root().LookupType(sourceName)
			}
			if ok {
				g.result.Source = append(g.result.Source, SourceExport{PublicName: exportName, Node: decl})
			}
			continue
		}

		g.result.External = append(g.result.External, ExternalExport{
			ExportName: exportName,
			SourceName: sourceName,
			SourceFile: sourceFile,
		})
	}
}

func handleNamedDeclaration(g *gathering, exportNode, declNode *sitter.Node) {
	name := declNode.ChildByFieldName("name")
	if name == nil {
		return
	}
	g.result.Source = append(g.result.Source, SourceExport{
		PublicName: name.Content(g.ast.Source),
		Node:       declNode,
	})
}

func handleLexicalDeclaration(g *gathering, exportNode, declNode *sitter.Node) {
	count := int(declNode.ChildCount())
	for i := 0; i < count; i++ {
		d := declNode.Child(i)
		if d == nil || d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		// Variable declarators with no initializer produce an empty
		// node upstream (spec.md §4.5); the gatherer still records the
		// export so the transformer can make that determination.
		g.result.Source = append(g.result.Source, SourceExport{
			PublicName: name.Content(g.ast.Source),
			Node:       d,
		})
	}
}

func findChildOfTypes(n *sitter.Node, types map[string]handler) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if _, ok := types[c.Type()]; ok {
			return c
		}
	}
	return nil
}

func findChildByType(n *sitter.Node, t string) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && c.Type() == t {
			return c
		}
	}
	return nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
