// Package transformer implements the Transformer (spec.md §4.5):
// converting an AST declaration path into a documentation Node, while
// accumulating the per-file dependency list and globalTypes lookup two
// side channels the linker and later transforms consume.
package transformer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"tsdocgraph/internal/node"
	"tsdocgraph/internal/tsast"
)

// dependencyImport is one imported symbol recorded against a
// specifier, per spec.md §4.5's `dependencies` side channel shape.
type dependencyImport struct {
	Kind       node.ReferenceImportKind
	LocalName  string
	SourceName string
}

// Dependency groups a specifier with every symbol imported from it.
type Dependency struct {
	Specifier string
	Imports   []dependencyImport
}

type importBinding struct {
	specifier  string
	sourceName string
	kind       node.ReferenceImportKind
}

// context carries the per-file transformer state: the file path (for
// id synthesis), the source bytes, the scope tree (for qualified-name
// and import-binding lookups), and the two side channels.
type context struct {
	file   string
	source []byte
	scope  *tsast.ScopeTree

	imports map[string]importBinding // local name -> where it came from
	deps    map[string]*Dependency   // specifier -> aggregated dependency
	depOrd  []string                 // specifier insertion order

	globalTypes map[string]*sitter.Node // type-only declaration name -> AST path
	memo        map[*sitter.Node]*node.Node
}

// Output is one file's accumulated transformer state: the dependency
// list recorded by Transform calls so far, plus the globalTypes table.
// The lowered Nodes themselves are returned by Transform, not held here.
type Output struct {
	Dependencies []Dependency
	GlobalTypes  map[string]*sitter.Node
}

func newContext(file string, ast *tsast.AST) *context {
	c := &context{
		file:        file,
		source:      ast.Source,
		scope:       ast.Scope(),
		imports:     make(map[string]importBinding),
		deps:        make(map[string]*Dependency),
		globalTypes: make(map[string]*sitter.Node),
		memo:        make(map[*sitter.Node]*node.Node),
	}
	c.collectImports(ast.Tree.RootNode())
	c.collectGlobalTypes(ast.Tree.RootNode())
	return c
}

// New returns a Transformer bound to one file's AST, ready to lower any
// number of declaration paths from it. A fresh context is used per
// file (the transformer is "stateless per call but parameterized by
// the file path", spec.md §4.5) but shared across every declaration in
// that file so dependencies/globalTypes accumulate correctly.
type Transformer struct {
	ctx *context
}

// New builds a Transformer for the given file's parsed AST.
func New(file string, ast *tsast.AST) *Transformer {
	return &Transformer{ctx: newContext(file, ast)}
}

// Transform lowers one declaration path (as produced by the gatherer
// or export-graph resolver) into a documentation Node.
func (t *Transformer) Transform(declNode *sitter.Node) *node.Node {
	return t.ctx.transformDeclaration(declNode)
}

// Output returns the accumulated dependency list and globalTypes table
// after any number of Transform calls.
func (t *Transformer) Output() Output {
	deps := make([]Dependency, 0, len(t.ctx.depOrd))
	for _, spec := range t.ctx.depOrd {
		deps = append(deps, *t.ctx.deps[spec])
	}
	return Output{Dependencies: deps, GlobalTypes: t.ctx.globalTypes}
}

func (c *context) addDependency(specifier string, imp dependencyImport) {
	d, ok := c.deps[specifier]
	if !ok {
		d = &Dependency{Specifier: specifier}
		c.deps[specifier] = d
		c.depOrd = append(c.depOrd, specifier)
	}
	for _, existing := range d.Imports {
		if existing.LocalName == imp.LocalName {
			return
		}
	}
	d.Imports = append(d.Imports, imp)
}

func (c *context) lookupImport(localName string) (importBinding, bool) {
	b, ok := c.imports[localName]
	return b, ok
}

// collectImports walks top-level import_statements, recording each
// bound local name against its specifier and import kind (spec.md
// §4.5: "Imports become reference nodes... recorded as a dependency").
func (c *context) collectImports(root *sitter.Node) {
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		n := root.Child(i)
		if n == nil || n.Type() != "import_statement" {
			continue
		}
		source := n.ChildByFieldName("source")
		if source == nil {
			continue
		}
		specifier := unquote(source.Content(c.source))
		clause := findChildByType(n, "import_clause")
		if clause == nil {
			continue
		}
		c.collectImportClause(clause, specifier)
	}
}

func (c *context) collectImportClause(clause *sitter.Node, specifier string) {
	count := int(clause.ChildCount())
	for i := 0; i < count; i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			name := child.Content(c.source)
			c.imports[name] = importBinding{specifier: specifier, sourceName: name, kind: node.ImportDefault}
		case "namespace_import":
			if id := lastIdentifier(child); id != nil {
				name := id.Content(c.source)
				c.imports[name] = importBinding{specifier: specifier, sourceName: name, kind: node.ImportNamespace}
			}
		case "named_imports":
			c.collectNamedImports(child, specifier)
		}
	}
}

func (c *context) collectNamedImports(named *sitter.Node, specifier string) {
	count := int(named.ChildCount())
	for i := 0; i < count; i++ {
		spec := named.Child(i)
		if spec == nil || spec.Type() != "import_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		aliasNode := spec.ChildByFieldName("alias")
		if nameNode == nil {
			continue
		}
		sourceName := nameNode.Content(c.source)
		localName := sourceName
		if aliasNode != nil {
			localName = aliasNode.Content(c.source)
		}
		c.imports[localName] = importBinding{specifier: specifier, sourceName: sourceName, kind: node.ImportSymbol}
	}
}

func lastIdentifier(n *sitter.Node) *sitter.Node {
	var last *sitter.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && child.Type() == "identifier" {
			last = child
		}
	}
	return last
}

// collectGlobalTypes records every type/interface/enum/class/module
// identifier declared anywhere in the file (the whole tree is walked,
// not only the top level), keyed by name, so identifier references
// within this file can resolve to types the parser facade doesn't
// treat as value bindings (spec.md §4.5's globalTypes side channel).
func (c *context) collectGlobalTypes(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "interface_declaration", "type_alias_declaration", "enum_declaration", "class_declaration", "module", "ambient_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				c.globalTypes[name.Content(c.source)] = n
			}
		}
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(root)
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

// transformDeclaration is the top-level dispatch for a declaration
// path, memoized per node so re-entrant qualified-name lookups
// (lowerNestedTypeIdentifier) don't re-lower the same declaration.
func (c *context) transformDeclaration(n *sitter.Node) *node.Node {
	if n == nil {
		return &node.Node{}
	}
	if cached, ok := c.memo[n]; ok {
		return cached
	}
	// Guard against qualified-name re-entrancy before the real result is
	// memoized, by placing a placeholder first.
	c.memo[n] = &node.Node{}

	result := c.dispatchDeclaration(n)
	c.memo[n] = result
	return result
}

func (c *context) dispatchDeclaration(n *sitter.Node) *node.Node {
	switch n.Type() {
	case "interface_declaration":
		return c.transformInterface(n)
	case "type_alias_declaration":
		return c.transformTypeAlias(n)
	case "enum_declaration":
		return c.transformEnum(n)
	case "class_declaration":
		return c.transformClass(n)
	case "function_declaration":
		return c.transformFunctionDeclaration(n)
	case "variable_declarator":
		return c.transformVariableDeclarator(n)
	case "import_specifier":
		return c.transformImportReference(n)
	default:
		warnUnknownKind(n.Type())
		return &node.Node{}
	}
}

func (c *context) transformImportReference(n *sitter.Node) *node.Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return &node.Node{}
	}
	local := nameNode.Content(c.source)
	if aliasNode := n.ChildByFieldName("alias"); aliasNode != nil {
		local = aliasNode.Content(c.source)
	}
	bind, ok := c.lookupImport(local)
	if !ok {
		return &node.Node{Kind: node.KindIdentifier, Name: local}
	}
	c.addDependency(bind.specifier, dependencyImport{Kind: bind.kind, LocalName: local, SourceName: bind.sourceName})
	return &node.Node{Kind: node.KindReference, Local: local, Imported: bind.sourceName, Specifier: bind.specifier}
}

func (c *context) makeID(name string) node.Id {
	return node.Id{File: c.file, Symbol: name}
}

func nameOf(c *context, n *sitter.Node) string {
	if id := n.ChildByFieldName("name"); id != nil {
		return id.Content(c.source)
	}
	return ""
}

// transformInterface lowers an interface_declaration. Interfaces are
// emitted with their own properties only — the linker flattens
// inheritance later (spec.md §4.5).
func (c *context) transformInterface(n *sitter.Node) *node.Node {
	name := nameOf(c, n)
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	result := &node.Node{
		Kind: node.KindInterface,
		Id:   c.makeID(name),
		Name: name,
	}

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		result.TypeParameters = lowerTypeParameters(c, tp)
	}

	if heritage := findChildByType(n, "extends_type_clause"); heritage != nil {
		result.Extends = lowerExtendsClause(c, heritage)
	}

	if body := n.ChildByFieldName("body"); body != nil {
		obj := lowerObjectType(c, body)
		result.Properties = obj.Properties
	} else {
		result.Properties = node.NewPropertyMap()
	}

	applyShared(result, doc)
	return result
}

func lowerExtendsClause(c *context, n *sitter.Node) []node.Node {
	var out []node.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "type_identifier":
			out = append(out, *lowerTypeIdentifier(c, child))
		case "generic_type":
			out = append(out, *lowerGenericType(c, child))
		case "nested_type_identifier":
			out = append(out, *lowerNestedTypeIdentifier(c, child))
		}
	}
	return out
}

func lowerTypeParameters(c *context, n *sitter.Node) []node.Node {
	var out []node.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		tp := n.Child(i)
		if tp == nil || tp.Type() != "type_parameter" {
			continue
		}
		name := nameOf(c, tp)
		p := node.Node{Kind: node.KindTypeParameter, Name: name}
		if constraint := tp.ChildByFieldName("constraint"); constraint != nil {
			p.Constraint = lowerType(c, firstTypeChild(constraint))
		}
		if def := tp.ChildByFieldName("default"); def != nil {
			p.DefaultType = lowerType(c, firstTypeChild(def))
		}
		out = append(out, p)
	}
	return out
}

// firstTypeChild unwraps a `constraint`/`default` field, which the
// grammar wraps around the bare type node (e.g. `extends Foo`'s
// `constraint` field's own first child is the actual type), falling
// back to the field node itself if it is already a type.
func firstTypeChild(n *sitter.Node) *sitter.Node {
	if isTypeNode(n.Type()) {
		return n
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && isTypeNode(child.Type()) {
			return child
		}
	}
	return n
}

// transformTypeAlias lowers a type_alias_declaration into an `alias`
// node with a stable id (spec.md §4.5).
func (c *context) transformTypeAlias(n *sitter.Node) *node.Node {
	name := nameOf(c, n)
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	result := &node.Node{
		Kind: node.KindAlias,
		Id:   c.makeID(name),
		Name: name,
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		result.TypeParameters = lowerTypeParameters(c, tp)
	}
	if value := n.ChildByFieldName("value"); value != nil {
		result.ValueNode = lowerType(c, value)
	} else {
		result.ValueNode = &node.Node{Kind: node.KindAny}
	}
	applyShared(result, doc)
	return result
}

func (c *context) transformEnum(n *sitter.Node) *node.Node {
	name := nameOf(c, n)
	doc := parseJSDoc(tsast.DocComment(n, c.source))
	result := &node.Node{Kind: node.KindEnum, Name: name}

	if body := n.ChildByFieldName("body"); body != nil {
		count := int(body.ChildCount())
		for i := 0; i < count; i++ {
			member := body.Child(i)
			if member == nil {
				continue
			}
			switch member.Type() {
			case "property_identifier", "identifier":
				result.Members = append(result.Members, node.EnumMember{Name: member.Content(c.source)})
			case "enum_assignment":
				if id := member.ChildByFieldName("name"); id != nil {
					em := node.EnumMember{Name: id.Content(c.source)}
					if value := member.ChildByFieldName("value"); value != nil {
						em.Value = unquote(value.Content(c.source))
						em.HasValue = true
					}
					result.Members = append(result.Members, em)
				}
			}
		}
	}

	applyShared(result, doc)
	return result
}

// transformClass lowers a class_declaration into an `interface` node
// (spec.md §4.5: "Classes become interface nodes"). Only fields,
// methods, and declare-methods are collected.
func (c *context) transformClass(n *sitter.Node) *node.Node {
	name := nameOf(c, n)
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	result := &node.Node{Kind: node.KindInterface, Id: c.makeID(name), Name: name, Properties: node.NewPropertyMap()}

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		result.TypeParameters = lowerTypeParameters(c, tp)
	}

	if heritage := findChildByType(n, "class_heritage"); heritage != nil {
		if ext := findChildByType(heritage, "extends_clause"); ext != nil {
			result.Extends = append(result.Extends, lowerExtendsClause(c, ext)...)
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		c.collectClassMembers(body, result.Properties)
	}

	applyShared(result, doc)
	return result
}

func (c *context) collectClassMembers(body *sitter.Node, props *node.PropertyMap) {
	count := int(body.ChildCount())
	for i := 0; i < count; i++ {
		member := body.Child(i)
		if member == nil {
			continue
		}
		switch member.Type() {
		case "method_definition", "method_signature":
			name, entry := c.lowerMethodMember(member)
			if name != "" {
				props.Set(name, entry)
			}
		case "public_field_definition", "property_definition":
			name, entry := c.lowerFieldMember(member)
			if name != "" {
				props.Set(name, entry)
			}
		}
	}
}

func isAccessorKeyword(n *sitter.Node, keyword string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && c.Type() == keyword {
			return true
		}
	}
	return false
}

// lowerMethodMember implements spec.md §4.5's accessor rule: a `get`
// accessor yields a `property` typed by its return, a `set` accessor
// yields a `property` typed by its parameter, and any other method
// yields a `method` with a nested `function` value.
func (c *context) lowerMethodMember(n *sitter.Node) (string, node.PropertyEntry) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return "", node.PropertyEntry{}
	}
	name := nameNode.Content(c.source)
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	params := lowerFormalParameters(c, n.ChildByFieldName("parameters"))
	ret := lowerReturnTypeAnnotation(c, n.ChildByFieldName("return_type"))

	switch {
	case isAccessorKeyword(n, "get"):
		prop := &node.Node{Kind: node.KindProperty, Name: name, ValueNode: ret}
		applyShared(prop, doc)
		return name, node.PropertyEntry{Name: name, Property: prop}
	case isAccessorKeyword(n, "set"):
		var valueType *node.Node = &node.Node{Kind: node.KindAny}
		if len(params) > 0 {
			valueType = params[0].ValueNode
		}
		prop := &node.Node{Kind: node.KindProperty, Name: name, ValueNode: valueType}
		applyShared(prop, doc)
		return name, node.PropertyEntry{Name: name, Property: prop}
	default:
		fn := &node.Node{Kind: node.KindFunction, Parameters: params, Return: ret}
		if tp := n.ChildByFieldName("type_parameters"); tp != nil {
			fn.TypeParameters = lowerTypeParameters(c, tp)
		}
		distributeParamDocs(fn.Parameters, doc.Params)
		fn.ReturnDoc = doc.Return
		method := &node.Node{Kind: node.KindMethod, Name: name, ValueNode: fn}
		applyShared(method, doc)
		return name, node.PropertyEntry{Name: name, Method: method}
	}
}

func (c *context) lowerFieldMember(n *sitter.Node) (string, node.PropertyEntry) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return "", node.PropertyEntry{}
	}
	name := nameNode.Content(c.source)
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	var valueType *node.Node = &node.Node{Kind: node.KindAny}
	if typeAnn := n.ChildByFieldName("type"); typeAnn != nil {
		valueType = lowerType(c, firstTypeChild(typeAnn))
	}

	optional := hasChildOfType(n, "?")
	readonly := hasChildOfType(n, "readonly")

	prop := &node.Node{Kind: node.KindProperty, Name: name, ValueNode: valueType, Optional: optional, Readonly: readonly}
	applyShared(prop, doc)
	return name, node.PropertyEntry{Name: name, Property: prop}
}

func hasChildOfType(n *sitter.Node, t string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil && child.Type() == t {
			return true
		}
	}
	return false
}

func lowerPropertySignature(c *context, n *sitter.Node) (string, node.PropertyEntry) {
	return c.lowerFieldMember(n)
}

func lowerMethodSignature(c *context, n *sitter.Node) (string, node.PropertyEntry) {
	return c.lowerMethodMember(n)
}

// lowerIndexSignature handles `[key: string]: T` index signatures,
// stored as a property whose name is empty and whose indexType/value
// carry the key and element types (spec.md §3's property `indexType`
// attribute).
func lowerIndexSignature(c *context, n *sitter.Node) (string, node.PropertyEntry) {
	var keyType, valueType *node.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if isTypeNode(child.Type()) {
			if keyType == nil {
				keyType = lowerType(c, child)
			} else {
				valueType = lowerType(c, child)
			}
		}
	}
	if valueType == nil {
		valueType = &node.Node{Kind: node.KindAny}
	}
	prop := &node.Node{Kind: node.KindProperty, Name: "", ValueNode: valueType, IndexType: keyType}
	return "[index]", node.PropertyEntry{Name: "[index]", Property: prop}
}

func lowerFormalParameters(c *context, n *sitter.Node) []node.Node {
	if n == nil {
		return nil
	}
	var out []node.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		p := n.Child(i)
		if p == nil {
			continue
		}
		switch p.Type() {
		case "required_parameter", "optional_parameter":
			out = append(out, lowerParameter(c, p, p.Type() == "optional_parameter"))
		}
	}
	return out
}

func lowerParameter(c *context, n *sitter.Node, optional bool) node.Node {
	name := ""
	if id := n.ChildByFieldName("pattern"); id != nil {
		name = id.Content(c.source)
	}
	rest := hasChildOfType(n, "...")
	var valueType *node.Node = &node.Node{Kind: node.KindAny}
	if typeAnn := n.ChildByFieldName("type"); typeAnn != nil {
		valueType = lowerType(c, firstTypeChild(typeAnn))
	}
	return node.Node{Kind: node.KindParameter, Name: name, ValueNode: valueType, Optional: optional, Rest: rest}
}

func lowerReturnTypeAnnotation(c *context, n *sitter.Node) *node.Node {
	if n == nil {
		return &node.Node{Kind: node.KindAny}
	}
	return lowerType(c, firstTypeChild(n))
}

// transformFunctionDeclaration implements the component/function split
// of spec.md §4.5: a function that returns JSX, directly or via
// cloneElement/createPortal, or whose explicit return type is
// `JSX.Element`, becomes a `component`; forwardRef/
// createHideableComponent wrappers are transparently unwrapped first.
func (c *context) transformFunctionDeclaration(n *sitter.Node) *node.Node {
	return c.lowerFunctionLike(n, nameOf(c, n))
}

func (c *context) lowerFunctionLike(n *sitter.Node, name string) *node.Node {
	doc := parseJSDoc(tsast.DocComment(n, c.source))

	params := lowerFormalParameters(c, n.ChildByFieldName("parameters"))
	ret := lowerReturnTypeAnnotation(c, n.ChildByFieldName("return_type"))

	if isComponentLike(c, n) {
		result := &node.Node{Kind: node.KindComponent, Id: c.makeID(name), Name: name}
		if len(params) > 0 {
			result.Props = params[0].ValueNode
		}
		if len(params) > 1 {
			result.Ref = params[1].ValueNode
		}
		if tp := n.ChildByFieldName("type_parameters"); tp != nil {
			result.TypeParameters = lowerTypeParameters(c, tp)
		}
		applyShared(result, doc)
		return result
	}

	result := &node.Node{Kind: node.KindFunction, Id: c.makeID(name), Name: name, Parameters: params, Return: ret}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		result.TypeParameters = lowerTypeParameters(c, tp)
	}
	distributeParamDocs(result.Parameters, doc.Params)
	applyShared(result, doc)
	return result
}

// isComponentLike decides the function/component split described
// above by a syntactic, not type-checking, heuristic: an explicit
// `JSX.Element`-shaped return annotation, or a body containing a JSX
// element / cloneElement / createPortal return statement.
func isComponentLike(c *context, n *sitter.Node) bool {
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		text := ret.Content(c.source)
		if strings.Contains(text, "JSX.Element") || strings.Contains(text, "ReactElement") || strings.Contains(text, "ReactNode") {
			return true
		}
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return false
	}
	if body.Type() != "statement_block" {
		// Concise arrow body (`() => <jsx/>`): the body IS the return value.
		return returnValueIsJSX(body, c.source)
	}
	return bodyReturnsJSX(body, c.source)
}

func bodyReturnsJSX(n *sitter.Node, source []byte) bool {
	found := false
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found || n == nil {
			return
		}
		if n.Type() == "return_statement" {
			count := int(n.ChildCount())
			for i := 0; i < count; i++ {
				if child := n.Child(i); child != nil && returnValueIsJSX(child, source) {
					found = true
					return
				}
			}
		}
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(n)
	return found
}

func returnValueIsJSX(n *sitter.Node, source []byte) bool {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	case "call_expression":
		return callExpressionIsJSXFactory(n, source)
	case "parenthesized_expression":
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			if child := n.Child(i); child != nil && returnValueIsJSX(child, source) {
				return true
			}
		}
	}
	return false
}

func callExpressionIsJSXFactory(n *sitter.Node, source []byte) bool {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	text := fn.Content(source)
	return strings.Contains(text, "cloneElement") || strings.Contains(text, "createPortal")
}

// transformVariableDeclarator implements spec.md §4.5's variable rule:
// no initializer produces an empty node (the caller/upstream skips
// it); an object-literal initializer yields an `interface` node typed
// with the variable's own synthesized id.
func (c *context) transformVariableDeclarator(n *sitter.Node) *node.Node {
	name := nameOf(c, n)
	init := n.ChildByFieldName("value")
	if init == nil {
		return &node.Node{}
	}

	if unwrapped, ok := unwrapComponentFactory(init, c.source); ok {
		init = unwrapped
	}

	switch init.Type() {
	case "object":
		props := lowerObjectLiteral(c, init)
		return &node.Node{Kind: node.KindInterface, Id: c.makeID(name), Name: name, Properties: props}
	case "arrow_function", "function_expression":
		return c.lowerFunctionLike(init, name)
	default:
		return &node.Node{}
	}
}

// unwrapComponentFactory transparently unwraps `forwardRef(fn)` and
// `createHideableComponent(fn)` wrappers to their inner function
// (spec.md §4.5), returning the inner function expression when found.
func unwrapComponentFactory(n *sitter.Node, source []byte) (*sitter.Node, bool) {
	if n.Type() != "call_expression" {
		return n, false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return n, false
	}
	name := fn.Content(source)
	if !strings.Contains(name, "forwardRef") && !strings.Contains(name, "createHideableComponent") {
		return n, false
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return n, false
	}
	count := int(args.ChildCount())
	for i := 0; i < count; i++ {
		child := args.Child(i)
		if child != nil && (child.Type() == "arrow_function" || child.Type() == "function_expression") {
			return child, true
		}
	}
	return n, false
}

func lowerObjectLiteral(c *context, n *sitter.Node) *node.PropertyMap {
	props := node.NewPropertyMap()
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		pair := n.Child(i)
		if pair == nil || pair.Type() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		if keyNode == nil {
			continue
		}
		name := strings.Trim(keyNode.Content(c.source), `"'`)
		prop := &node.Node{Kind: node.KindProperty, Name: name, ValueNode: &node.Node{Kind: node.KindAny}}
		props.Set(name, node.PropertyEntry{Name: name, Property: prop})
	}
	return props
}
