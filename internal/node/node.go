package node

// Node is the closed documentation sum type (spec.md §3). Every
// TypeScript declaration and type expression the transformer and
// linker touch ends up as one of these, discriminated by Kind. Fields
// below are grouped by the variant(s) that use them; a given Node only
// populates the fields that apply to its Kind, the rest stay zero.
type Node struct {
	Kind Kind

	// Shared doc fields, attached wherever JSDoc applies regardless of
	// Kind (interface, property, method, function, component, alias,
	// enum, enumMember, parameter, typeParameter). ReturnDoc/ParamDocs
	// are JSDoc prose (@returns / @param descriptions), distinct from
	// the function/method Kind's own structural Return/Parameters.
	Description string
	Access      Access
	Deprecated  bool
	Default     string
	Selector    string
	ReturnDoc   string
	ParamDocs   map[string]string

	// literal-ish primitives: boolean/string/number carry an optional
	// literal value (e.g. `"a"` the type, `42` the type). Rendered as a
	// string on the wire regardless of underlying kind ("1" not 1), see
	// marshal.go.
	LiteralValue    string
	HasLiteralValue bool

	// array: elementType
	ElementType *Node

	// tuple: elements (each slot may itself be named/optional/rest,
	// carried via nested parameter-shaped Nodes when the source names
	// tuple members); union/intersection: types
	Elements []Node

	// object/interface: ordered properties; interface additionally:
	// name, typeParameters, extends
	Properties *PropertyMap
	Name       string
	Extends    []Node // reference nodes pointing at base interfaces

	// interface/alias: the NodeId a link may target
	Id Id

	// union/intersection/typeParameter/application/function/method/
	// component: typeParameters (declaration) or type arguments
	// (application) — same field, disambiguated by Kind; see spec §3
	// note under `application`.
	TypeParameters []Node

	// template: ordered elements, each either a literal string piece or
	// an embedded type Node (TemplateElement.Node set vs zero).
	TemplateElements []TemplateElement

	// typeParameter: constraint/default (both optional, reuse Default
	// above for the default type expression serialized form is handled
	// in marshal.go via DefaultType instead of the string Default field
	// when the typeParameter's default is itself a type, not a value)
	Constraint  *Node
	DefaultType *Node

	// parameter: type, optional, rest, default value (string, a
	// literal/expression source snippet, not a Node — parameters don't
	// evaluate their default expressions)
	Optional bool
	Rest     bool

	// property: value (its type), optional, readonly, indexType (an
	// index-signature's key type, `[k: string]: T`) — reuses IndexType
	// below, which indexedAccess also populates for its own operand.
	Readonly bool

	// method/function/component: params, return
	Parameters []Node
	Return     *Node

	// property/method: inheritedFrom, set by merge-extensions when a
	// member's origin differs from the interface that now owns it
	InheritedFrom *Id

	// enum: members
	Members []EnumMember

	// component: props, ref (both optional references to their
	// respective interface/object nodes)
	Props *Node
	Ref   *Node

	// application: base (the generic being applied) plus TypeParameters
	// above carrying the argument list
	Base *Node

	// identifier: name (above) only
	// reference: local/imported/specifier/importKind
	Local      string
	Imported   string
	Specifier  string
	ImportKind ReferenceImportKind

	// alias: value (the aliased type expression)
	// typeOperator: operator, value (operand)
	// keyof (legacy variant): value (operand), synonym of
	// typeOperator{operator:"keyof"}
	Operator  TypeOperator
	ValueNode *Node

	// conditional: checkType, extendsType, trueType, falseType
	CheckType   *Node
	ExtendsType *Node
	TrueType    *Node
	FalseType   *Node

	// indexedAccess: objectType, indexType
	ObjectType *Node
	IndexType  *Node

	// link: the NodeId it targets, carried in Id above
}

// TemplateElement is one piece of a template literal type: either a
// literal string (Node nil) or an embedded type expression.
type TemplateElement struct {
	Literal string
	Node    *Node
}

// EnumMember is one member of an enum node.
type EnumMember struct {
	Name        string
	Value       string
	HasValue    bool
	Description string
}

// Clone returns a shallow copy of n. Nodes are otherwise treated as
// immutable once built by the transformer; the linker clones before
// mutating a shared subtree (e.g. substituting a type parameter into a
// property inherited from a generic base).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.ParamDocs != nil {
		c.ParamDocs = make(map[string]string, len(n.ParamDocs))
		for k, v := range n.ParamDocs {
			c.ParamDocs[k] = v
		}
	}
	if n.Properties != nil {
		c.Properties = n.Properties.Clone()
	}
	if n.Elements != nil {
		c.Elements = append([]Node(nil), n.Elements...)
	}
	if n.Extends != nil {
		c.Extends = append([]Node(nil), n.Extends...)
	}
	if n.TypeParameters != nil {
		c.TypeParameters = append([]Node(nil), n.TypeParameters...)
	}
	if n.Parameters != nil {
		c.Parameters = append([]Node(nil), n.Parameters...)
	}
	if n.Members != nil {
		c.Members = append([]EnumMember(nil), n.Members...)
	}
	if n.TemplateElements != nil {
		c.TemplateElements = append([]TemplateElement(nil), n.TemplateElements...)
	}
	return &c
}

// IsTypeOperator reports whether n is a typeOperator or the legacy
// keyof variant, treated as synonyms throughout the linker (spec.md §9).
func (n *Node) IsTypeOperator() bool {
	if n == nil {
		return false
	}
	return n.Kind == KindTypeOperator || n.Kind == KindKeyof
}

// OperatorOf returns n's operator, normalizing the legacy keyof variant
// to OperatorKeyof.
func (n *Node) OperatorOf() TypeOperator {
	if n.Kind == KindKeyof {
		return OperatorKeyof
	}
	return n.Operator
}

// Operand returns the operand of a typeOperator/keyof node.
func (n *Node) Operand() *Node {
	return n.ValueNode
}
