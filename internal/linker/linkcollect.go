package linker

import "tsdocgraph/internal/node"

// collectLinks implements Pass B (spec.md §4.6): walk the final result
// once more; every link node's id is resolved via the Pass A node
// table (then dependency Links maps) and saved into out.Links. Any
// property/method with inheritedFrom set has its source id likewise
// saved. Already-saved ids are not re-expanded (cuts cycles).
func (l *Linker) collectLinks(out *Asset) {
	for _, n := range out.Exports {
		l.walkForLinks(n, out)
	}
}

func (l *Linker) walkForLinks(n *node.Node, out *Asset) {
	if n == nil {
		return
	}

	if n.Kind == node.KindLink {
		id := n.Id.String()
		if _, done := out.Links[id]; !done {
			target := l.lookupLink(id)
			if target != nil {
				out.Links[id] = target
				l.walkForLinks(target, out)
			}
		}
	}

	if n.InheritedFrom != nil {
		id := n.InheritedFrom.String()
		if _, done := out.Links[id]; !done {
			if target := l.lookupLink(id); target != nil {
				out.Links[id] = target
				l.walkForLinks(target, out)
			}
		}
	}

	switch n.Kind {
	case node.KindArray:
		l.walkForLinks(n.ElementType, out)
	case node.KindTuple, node.KindUnion, node.KindIntersection:
		for i := range n.Elements {
			l.walkForLinks(&n.Elements[i], out)
		}
	case node.KindObject, node.KindInterface:
		if n.Properties != nil {
			for _, entry := range n.Properties.Entries() {
				l.walkForLinks(entry.Value(), out)
			}
		}
		for i := range n.Extends {
			l.walkForLinks(&n.Extends[i], out)
		}
	case node.KindTemplate:
		for _, el := range n.TemplateElements {
			l.walkForLinks(el.Node, out)
		}
	case node.KindTypeParameter:
		l.walkForLinks(n.Constraint, out)
		l.walkForLinks(n.DefaultType, out)
	case node.KindParameter, node.KindProperty, node.KindMethod, node.KindAlias, node.KindTypeOperator, node.KindKeyof:
		l.walkForLinks(n.ValueNode, out)
		l.walkForLinks(n.IndexType, out)
	case node.KindFunction, node.KindComponent:
		for i := range n.Parameters {
			l.walkForLinks(&n.Parameters[i], out)
		}
		l.walkForLinks(n.Return, out)
		l.walkForLinks(n.Props, out)
		l.walkForLinks(n.Ref, out)
	case node.KindApplication:
		l.walkForLinks(n.Base, out)
		for i := range n.TypeParameters {
			l.walkForLinks(&n.TypeParameters[i], out)
		}
	case node.KindConditional:
		l.walkForLinks(n.CheckType, out)
		l.walkForLinks(n.ExtendsType, out)
		l.walkForLinks(n.TrueType, out)
		l.walkForLinks(n.FalseType, out)
	case node.KindIndexedAccess:
		l.walkForLinks(n.ObjectType, out)
		l.walkForLinks(n.IndexType, out)
	}
}
