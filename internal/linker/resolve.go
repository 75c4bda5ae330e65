package linker

import "tsdocgraph/internal/node"

// lookupExport resolves an exported name through the dependency asset
// named by specifier, falling back to the primary asset when no such
// dependency was recorded (spec.md §4.6 step 1: "falling back to the
// primary asset").
func (l *Linker) lookupExport(specifier, name string) (*node.Node, bool) {
	if asset, ok := l.deps[specifier]; ok {
		if n, ok := asset.Exports[name]; ok {
			return n, true
		}
		return nil, false
	}
	if n, ok := l.primary.Exports[name]; ok {
		return n, true
	}
	return nil, false
}

// resolveValue collapses link (via the node-table then dependency
// Links maps), application (to its base), and alias (to its value)
// transitively until a concrete node is reached or no further collapse
// is possible (spec.md §4.7).
func (l *Linker) resolveValue(n *node.Node) *node.Node {
	seen := map[*node.Node]bool{}
	for n != nil && !seen[n] {
		seen[n] = true
		switch n.Kind {
		case node.KindLink:
			target := l.lookupLink(n.Id.String())
			if target == nil {
				return n
			}
			n = target
		case node.KindApplication:
			n = n.Base
		case node.KindAlias:
			n = n.ValueNode
		default:
			return n
		}
	}
	return n
}

// lookupLink resolves id first against this linker's own Pass A
// node-table, then against every dependency asset's already-collected
// Links map.
func (l *Linker) lookupLink(id string) *node.Node {
	if n, ok := l.table[id]; ok {
		return n
	}
	for _, dep := range l.deps {
		if n, ok := dep.Links[id]; ok {
			return n
		}
	}
	return nil
}

// resolveUnionElements flattens nested unions reached via aliases and
// links into a flat sequence, leaving embedded non-string elements
// unchanged (spec.md §4.7).
func (l *Linker) resolveUnionElements(n *node.Node) []node.Node {
	resolved := l.resolveValue(n)
	if resolved == nil {
		return nil
	}
	if resolved.Kind != node.KindUnion {
		return []node.Node{*resolved}
	}
	var out []node.Node
	for i := range resolved.Elements {
		el := &resolved.Elements[i]
		sub := l.resolveValue(el)
		if sub != nil && sub.Kind == node.KindUnion {
			out = append(out, l.resolveUnionElements(sub)...)
			continue
		}
		out = append(out, *el)
	}
	return out
}
