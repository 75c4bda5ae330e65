package node

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// objectWriter accumulates key/value pairs and renders them as a JSON
// object in call order. encoding/json's map[string]any marshaling
// alphabetizes keys; a hand-rolled builder is what keeps Node's own
// field order deterministic without resorting to a key-ordered map
// type just for this one struct.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("node: marshal field %q: %w", key, err)
		return
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	w.n++
	keyRaw, _ := json.Marshal(key)
	w.buf.Write(keyRaw)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
}

// fieldIf only writes the field when include is true — used for the
// "optional, omit when absent" wire fields (value, indexType,
// inheritedFrom, constraint, default, props, ref, id, name).
func (w *objectWriter) fieldIf(include bool, key string, value any) {
	if !include {
		return
	}
	w.field(key, value)
}

func (w *objectWriter) bytesResult() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// sharedDocFields writes the fields every variant optionally carries:
// description, access, default, selector, return, params, deprecated.
func (w *objectWriter) sharedDocFields(n *Node) {
	w.fieldIf(n.Description != "", "description", n.Description)
	w.fieldIf(n.Access != "", "access", n.Access)
	w.fieldIf(n.Deprecated, "deprecated", n.Deprecated)
	w.fieldIf(n.Default != "", "default", n.Default)
	w.fieldIf(n.Selector != "", "selector", n.Selector)
	w.fieldIf(n.ReturnDoc != "", "return", n.ReturnDoc)
	w.fieldIf(len(n.ParamDocs) > 0, "params", n.ParamDocs)
}

// idString renders an Id for the wire, or nil if zero.
func idString(id Id) any {
	if id.IsZero() {
		return nil
	}
	return id.String()
}

// MarshalJSON renders n per its Kind's wire shape (spec.md §3's variant
// table). Integers/literals are emitted as strings in `value` fields,
// property maps preserve source insertion order, and every Kind gets
// exactly the attributes the table lists for it plus the shared
// documentation fields when present.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	w := newObjectWriter()
	w.field("kind", n.Kind)

	switch n.Kind {
	case KindAny, KindNull, KindUndefined, KindVoid, KindUnknown, KindNever, KindThis, KindSymbol:
		// no attributes beyond kind

	case KindBoolean, KindString, KindNumber:
		w.fieldIf(n.HasLiteralValue, "value", n.LiteralValue)

	case KindArray:
		w.field("elementType", n.ElementType)

	case KindTuple:
		w.field("elements", nonNilNodes(n.Elements))

	case KindObject:
		w.field("properties", n.Properties)

	case KindUnion:
		w.field("elements", nonNilNodes(n.Elements))

	case KindIntersection:
		w.field("types", nonNilNodes(n.Elements))

	case KindTemplate:
		w.field("elements", n.TemplateElements)

	case KindTypeParameter:
		w.field("name", n.Name)
		w.fieldIf(n.Constraint != nil, "constraint", n.Constraint)
		w.fieldIf(n.DefaultType != nil, "default", n.DefaultType)

	case KindParameter:
		w.field("name", n.Name)
		w.field("value", n.ValueNode)
		w.field("optional", n.Optional)
		w.field("rest", n.Rest)

	case KindEnum:
		w.field("name", n.Name)
		w.field("members", n.Members)

	case KindEnumMember:
		w.field("name", n.Name)
		w.fieldIf(n.HasLiteralValue, "value", n.LiteralValue)

	case KindInterface:
		w.field("id", n.Id.String())
		w.field("name", n.Name)
		w.field("extends", nonNilNodes(n.Extends))
		w.field("properties", n.Properties)
		w.field("typeParameters", nonNilNodes(n.TypeParameters))

	case KindProperty:
		w.field("name", n.Name)
		w.field("value", n.ValueNode)
		w.field("optional", n.Optional)
		w.fieldIf(n.IndexType != nil, "indexType", n.IndexType)
		w.fieldIf(n.InheritedFrom != nil, "inheritedFrom", idOrNil(n.InheritedFrom))

	case KindMethod:
		w.field("name", n.Name)
		w.field("value", n.ValueNode)
		w.field("optional", n.Optional)
		w.fieldIf(n.InheritedFrom != nil, "inheritedFrom", idOrNil(n.InheritedFrom))

	case KindFunction:
		w.fieldIf(!n.Id.IsZero(), "id", n.Id.String())
		w.fieldIf(n.Name != "", "name", n.Name)
		w.field("parameters", nonNilNodes(n.Parameters))
		w.field("return", n.Return)
		w.field("typeParameters", nonNilNodes(n.TypeParameters))

	case KindComponent:
		w.field("id", n.Id.String())
		w.field("name", n.Name)
		w.fieldIf(n.Props != nil, "props", n.Props)
		w.fieldIf(n.Ref != nil, "ref", n.Ref)
		w.field("typeParameters", nonNilNodes(n.TypeParameters))

	case KindApplication:
		w.field("base", n.Base)
		w.field("typeParameters", nonNilNodes(n.TypeParameters))

	case KindIdentifier:
		w.field("name", n.Name)

	case KindReference:
		w.field("local", n.Local)
		w.field("imported", n.Imported)
		w.field("specifier", n.Specifier)

	case KindAlias:
		w.field("id", n.Id.String())
		w.field("name", n.Name)
		w.field("value", n.ValueNode)
		w.field("typeParameters", nonNilNodes(n.TypeParameters))

	case KindTypeOperator:
		w.field("operator", n.Operator)
		w.field("value", n.ValueNode)

	case KindKeyof:
		w.field("keyof", n.ValueNode)

	case KindConditional:
		w.field("checkType", n.CheckType)
		w.field("extendsType", n.ExtendsType)
		w.field("trueType", n.TrueType)
		w.field("falseType", n.FalseType)

	case KindIndexedAccess:
		w.field("objectType", n.ObjectType)
		w.field("indexType", n.IndexType)

	case KindLink:
		w.field("id", n.Id.String())

	default:
		w.field("name", n.Name)
	}

	w.sharedDocFields(n)
	return w.bytesResult()
}

func idOrNil(id *Id) any {
	if id == nil || id.IsZero() {
		return nil
	}
	return id.String()
}

// nonNilNodes returns an empty slice instead of nil so omitted/empty
// seq fields marshal as `[]`, matching "ordered seq of Node" fields
// that are simply empty rather than absent.
func nonNilNodes(ns []Node) []Node {
	if ns == nil {
		return []Node{}
	}
	return ns
}

// MarshalJSON for PropertyMap preserves insertion order — the tested
// invariant from spec.md §3/§8 — by writing a hand-built object
// instead of going through Go's alphabetizing map marshaling.
func (m *PropertyMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	w := newObjectWriter()
	for _, name := range m.order {
		e, _ := m.Get(name)
		w.field(name, e.Value())
	}
	return w.bytesResult()
}

// MarshalJSON for TemplateElement renders a bare string for literal
// pieces and the embedded node's own JSON for type pieces, matching
// "ordered seq of (string-literal | embedded Node)".
func (t TemplateElement) MarshalJSON() ([]byte, error) {
	if t.Node != nil {
		return json.Marshal(t.Node)
	}
	return json.Marshal(t.Literal)
}

// MarshalJSON for EnumMember renders {name, value?}.
func (e EnumMember) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("name", e.Name)
	w.fieldIf(e.HasValue, "value", e.Value)
	return w.bytesResult()
}
