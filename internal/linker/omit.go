package linker

import "tsdocgraph/internal/node"

// evalOmit implements Omit<T, K> (spec.md §4.6 step 4): T is resolved
// through link/application/alias chains; if it is not an interface or
// object, it's returned unchanged (§7's error table: "Omit applied to a
// non-object type: return the base type unchanged"). Otherwise the
// result is a fresh interface/object carrying T's properties minus
// every string-literal key found in K.
func (l *Linker) evalOmit(t, k *node.Node) *node.Node {
	resolved := l.resolveValue(t)
	if resolved == nil || (resolved.Kind != node.KindInterface && resolved.Kind != node.KindObject) {
		return t
	}

	omitKeys := map[string]bool{}
	for _, el := range l.resolveUnionElements(k) {
		if el.Kind == node.KindString && el.HasLiteralValue {
			omitKeys[el.LiteralValue] = true
		}
	}

	result := resolved.Clone()
	result.Properties = node.NewPropertyMap()
	for _, entry := range resolved.Properties.Entries() {
		if omitKeys[entry.Name] {
			continue
		}
		result.Properties.Set(entry.Name, entry)
	}
	return result
}
