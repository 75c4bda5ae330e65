package transformer

import (
	"log"
	"strconv"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"tsdocgraph/internal/node"
)

// warnedKinds suppresses repeated "unknown AST kind" log spam for the
// same node type within a process, per SPEC_FULL's ambient-stack
// logging convention (one warning per variant, not one per occurrence).
var warnedKinds sync.Map

func warnUnknownKind(kind string) {
	if _, loaded := warnedKinds.LoadOrStore(kind, true); !loaded {
		log.Printf("⚠️ tsdocgraph: unknown AST kind %q, producing empty node", kind)
	}
}

// typeExprHandlers dispatches a type-expression tree-sitter node to its
// documentation Node variant, keyed by node type — the explicit
// dispatch table the transformer's design note calls for (spec.md §9)
// instead of an if/else chain across ~20 syntactic forms.
var typeExprHandlers map[string]func(c *context, n *sitter.Node) *node.Node

func init() {
	typeExprHandlers = map[string]func(c *context, n *sitter.Node) *node.Node{
		"predefined_type":        lowerPredefinedType,
		"literal_type":           lowerLiteralType,
		"type_identifier":        lowerTypeIdentifier,
		"nested_type_identifier": lowerNestedTypeIdentifier,
		"generic_type":           lowerGenericType,
		"union_type":             lowerUnionType,
		"intersection_type":      lowerIntersectionType,
		"array_type":             lowerArrayType,
		"tuple_type":             lowerTupleType,
		"object_type":            lowerObjectType,
		"function_type":          lowerFunctionType,
		"constructor_type":       lowerFunctionType,
		"parenthesized_type":     lowerParenthesizedType,
		"template_literal_type":  lowerTemplateLiteralType,
		"conditional_type":       lowerConditionalType,
		"index_type_query":       lowerKeyofOperator,
		"type_query":             lowerTypeofOperator,
		"readonly_type":          lowerReadonlyOperator,
		"this_type":              lowerKeyword(node.KindThis),
		"undefined":              lowerKeyword(node.KindUndefined),
		"null":                   lowerKeyword(node.KindNull),
	}
}

// lowerType is the recursive entry point for any TypeScript type
// expression. Parentheses and `as` coercions are transparent (spec.md
// §4.5): "as_expression" unwraps to its operand type when one is
// present on the value side, but as a type-position node this function
// is only ever reached on the type side, so coercions never appear
// here directly.
func lowerType(c *context, n *sitter.Node) *node.Node {
	if n == nil {
		return &node.Node{Kind: node.KindAny}
	}
	if h, ok := typeExprHandlers[n.Type()]; ok {
		return h(c, n)
	}
	warnUnknownKind(n.Type())
	return &node.Node{}
}

func lowerKeyword(k node.Kind) func(c *context, n *sitter.Node) *node.Node {
	return func(c *context, n *sitter.Node) *node.Node {
		return &node.Node{Kind: k}
	}
}

var predefinedKinds = map[string]node.Kind{
	"any":       node.KindAny,
	"unknown":   node.KindUnknown,
	"never":     node.KindNever,
	"void":      node.KindVoid,
	"object":    node.KindObject,
	"symbol":    node.KindSymbol,
	"string":    node.KindString,
	"number":    node.KindNumber,
	"boolean":   node.KindBoolean,
	"undefined": node.KindUndefined,
	"null":      node.KindNull,
}

func lowerPredefinedType(c *context, n *sitter.Node) *node.Node {
	text := n.Content(c.source)
	if k, ok := predefinedKinds[text]; ok {
		return &node.Node{Kind: k}
	}
	return &node.Node{Kind: node.KindAny}
}

// lowerLiteralType handles literal-as-type forms (spec.md §4.5:
// "literals used as types yield the same variants as literal values").
func lowerLiteralType(c *context, n *sitter.Node) *node.Node {
	if n.ChildCount() == 0 {
		return &node.Node{Kind: node.KindAny}
	}
	inner := n.Child(0)
	text := inner.Content(c.source)
	switch inner.Type() {
	case "string":
		return &node.Node{Kind: node.KindString, LiteralValue: unquote(text), HasLiteralValue: true}
	case "number":
		return &node.Node{Kind: node.KindNumber, LiteralValue: text, HasLiteralValue: true}
	case "true", "false":
		return &node.Node{Kind: node.KindBoolean, LiteralValue: text, HasLiteralValue: true}
	case "null":
		return &node.Node{Kind: node.KindNull}
	case "undefined":
		return &node.Node{Kind: node.KindUndefined}
	default:
		return &node.Node{Kind: node.KindAny}
	}
}

// lowerTypeIdentifier resolves a bare type name against this file's
// imports first (emitting a `reference` and recording the dependency),
// then against globalTypes (spec.md §4.5's globalTypes side channel),
// otherwise emits a bare `identifier` for the linker to resolve or
// leave unresolved.
func lowerTypeIdentifier(c *context, n *sitter.Node) *node.Node {
	name := n.Content(c.source)
	if dep, ok := c.lookupImport(name); ok {
		c.addDependency(dep.specifier, dependencyImport{Kind: node.ImportSymbol, LocalName: name, SourceName: dep.sourceName})
		return &node.Node{Kind: node.KindReference, Local: name, Imported: dep.sourceName, Specifier: dep.specifier}
	}
	if decl, ok := c.globalTypes[name]; ok {
		return c.transformDeclaration(decl)
	}
	return &node.Node{Kind: node.KindIdentifier, Name: name}
}

// lowerNestedTypeIdentifier handles qualified names `A.B` (spec.md
// §4.5): if A resolves to an interface/object type declared in an
// enclosing scope and B names one of its properties, that property's
// value is inlined; otherwise an identifier with the joined name is
// produced for the linker to attempt later.
func lowerNestedTypeIdentifier(c *context, n *sitter.Node) *node.Node {
	text := n.Content(c.source)
	parts := strings.Split(text, ".")
	if len(parts) == 2 {
		if decl, ok := c.scope.At(n.StartByte()).LookupType(parts[0]); ok {
			target := c.transformDeclaration(decl)
			if target != nil && target.Kind == node.KindAlias {
				target = target.ValueNode
			}
			if target != nil && (target.Kind == node.KindInterface || target.Kind == node.KindObject) && target.Properties != nil {
				if entry, ok := target.Properties.Get(parts[1]); ok && entry.Property != nil {
					return entry.Property.ValueNode
				}
			}
		}
	}
	return &node.Node{Kind: node.KindIdentifier, Name: text}
}

// lowerGenericType handles `TSTypeReference` with type arguments
// (spec.md §4.5): `Foo<Bar>` becomes `application{base, typeParameters}`;
// bare `Foo` is just its base directly.
func lowerGenericType(c *context, n *sitter.Node) *node.Node {
	nameNode := n.ChildByFieldName("name")
	argsNode := n.ChildByFieldName("type_arguments")
	base := lowerNamedTypeRef(c, nameNode)
	if argsNode == nil {
		return base
	}
	var args []node.Node
	count := int(argsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := argsNode.Child(i)
		if child == nil || !isTypeNode(child.Type()) {
			continue
		}
		args = append(args, *lowerType(c, child))
	}
	return &node.Node{Kind: node.KindApplication, Base: base, TypeParameters: args}
}

func lowerNamedTypeRef(c *context, n *sitter.Node) *node.Node {
	if n == nil {
		return &node.Node{Kind: node.KindAny}
	}
	switch n.Type() {
	case "type_identifier":
		return lowerTypeIdentifier(c, n)
	case "nested_type_identifier":
		return lowerNestedTypeIdentifier(c, n)
	default:
		return lowerType(c, n)
	}
}

func lowerUnionType(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindUnion, Elements: lowerTypeChildren(c, n)}
}

func lowerIntersectionType(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindIntersection, Elements: lowerTypeChildren(c, n)}
}

func lowerTypeChildren(c *context, n *sitter.Node) []node.Node {
	var out []node.Node
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !isTypeNode(child.Type()) {
			continue
		}
		out = append(out, *lowerType(c, child))
	}
	return out
}

func lowerArrayType(c *context, n *sitter.Node) *node.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil && isTypeNode(child.Type()) {
			return &node.Node{Kind: node.KindArray, ElementType: lowerType(c, child)}
		}
	}
	return &node.Node{Kind: node.KindArray, ElementType: &node.Node{Kind: node.KindAny}}
}

func lowerTupleType(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindTuple, Elements: lowerTypeChildren(c, n)}
}

func lowerObjectType(c *context, n *sitter.Node) *node.Node {
	props := node.NewPropertyMap()
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		member := n.Child(i)
		if member == nil {
			continue
		}
		switch member.Type() {
		case "property_signature":
			name, entry := lowerPropertySignature(c, member)
			if name != "" {
				props.Set(name, entry)
			}
		case "method_signature":
			name, entry := lowerMethodSignature(c, member)
			if name != "" {
				props.Set(name, entry)
			}
		case "index_signature":
			name, entry := lowerIndexSignature(c, member)
			if name != "" {
				props.Set(name, entry)
			}
		}
	}
	return &node.Node{Kind: node.KindObject, Properties: props}
}

func lowerFunctionType(c *context, n *sitter.Node) *node.Node {
	paramsNode := n.ChildByFieldName("parameters")
	returnNode := n.ChildByFieldName("return_type")
	return &node.Node{
		Kind:       node.KindFunction,
		Parameters: lowerFormalParameters(c, paramsNode),
		Return:     lowerReturnTypeAnnotation(c, returnNode),
	}
}

func lowerParenthesizedType(c *context, n *sitter.Node) *node.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil && isTypeNode(child.Type()) {
			return lowerType(c, child)
		}
	}
	return &node.Node{Kind: node.KindAny}
}

// lowerTemplateLiteralType handles template literal types (spec.md
// §4.5): alternating string-literal pieces and embedded expressions.
func lowerTemplateLiteralType(c *context, n *sitter.Node) *node.Node {
	var elems []node.TemplateElement
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "`", "template_chars":
			if child.Type() == "template_chars" {
				elems = append(elems, node.TemplateElement{Literal: child.Content(c.source)})
			}
		case "string_fragment":
			elems = append(elems, node.TemplateElement{Literal: child.Content(c.source)})
		default:
			if isTypeNode(child.Type()) {
				elems = append(elems, node.TemplateElement{Node: lowerType(c, child)})
			}
		}
	}
	return &node.Node{Kind: node.KindTemplate, TemplateElements: elems}
}

func lowerConditionalType(c *context, n *sitter.Node) *node.Node {
	return &node.Node{
		Kind:        node.KindConditional,
		CheckType:   lowerType(c, n.ChildByFieldName("left")),
		ExtendsType: lowerType(c, n.ChildByFieldName("right")),
		TrueType:    lowerType(c, n.ChildByFieldName("consequence")),
		FalseType:   lowerType(c, n.ChildByFieldName("alternative")),
	}
}

func lowerKeyofOperator(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindTypeOperator, Operator: node.OperatorKeyof, ValueNode: lowerOperand(c, n)}
}

func lowerTypeofOperator(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindTypeOperator, Operator: node.OperatorTypeof, ValueNode: lowerOperand(c, n)}
}

func lowerReadonlyOperator(c *context, n *sitter.Node) *node.Node {
	return &node.Node{Kind: node.KindTypeOperator, Operator: node.OperatorReadonly, ValueNode: lowerOperand(c, n)}
}

// lowerOperand finds the first type-shaped child of a unary type
// operator node (`keyof T`, `typeof T`, `readonly T`), since these
// grammar productions carry their operand as an unnamed child rather
// than a documented field.
func lowerOperand(c *context, n *sitter.Node) *node.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil && isTypeNode(child.Type()) {
			return lowerType(c, child)
		}
	}
	return &node.Node{Kind: node.KindAny}
}

// isTypeNode reports whether t names a node type this dispatch table
// (or a constant like `identifier`) can lower, filtering out
// punctuation tokens encountered while iterating raw children.
func isTypeNode(t string) bool {
	if _, ok := typeExprHandlers[t]; ok {
		return true
	}
	switch t {
	case "identifier", "property_identifier":
		return true
	}
	return false
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

func parseNumberLiteral(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s, true
	}
	return s, false
}
