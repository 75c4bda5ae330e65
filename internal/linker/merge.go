package linker

import "tsdocgraph/internal/node"

// shouldMerge implements spec.md §4.6's should-merge predicate: an
// alias/interface is merged inline (rather than linked) when it sits at
// the root of an export (empty key stack), is used as component props,
// appears in an extends position, or is the operand of keyof.
// Additionally, an application's base inherits merge eligibility from
// its own parent when that parent is props or extends.
func shouldMerge(keyStack []string) bool {
	if len(keyStack) == 0 {
		return true
	}
	top := keyStack[len(keyStack)-1]
	switch top {
	case "props", "extends", "keyof":
		return true
	case "base":
		if len(keyStack) >= 2 {
			parent := keyStack[len(keyStack)-2]
			return parent == "props" || parent == "extends"
		}
	}
	return false
}

// flattenInterface implements merge-extensions (spec.md §4.6): each
// extension that resolves to an interface has its (already flattened)
// properties copied in; properties already present in the result win
// (most-derived wins, achieved by PropertyMap.Set's keep-position-on-
// overwrite semantics). Extensions that do not resolve to an interface
// remain in the output's extends list. iface's own Extends/Properties
// are expected to have already been recursively rewritten by the
// caller.
func (l *Linker) flattenInterface(iface *node.Node) *node.Node {
	merged := iface.Clone()
	merged.Properties = node.NewPropertyMap()
	var remaining []node.Node

	for i := range iface.Extends {
		ext := &iface.Extends[i]
		resolved := l.resolveValue(ext)
		if resolved == nil || resolved.Kind != node.KindInterface {
			remaining = append(remaining, *ext)
			continue
		}
		base := resolved
		if resolved.Properties == nil {
			base = l.flattenInterface(resolved)
		}
		for _, entry := range base.Properties.Entries() {
			if merged.Properties.Has(entry.Name) {
				continue
			}
			merged.Properties.Set(entry.Name, taggedCopy(entry, base.Id))
		}
	}

	for _, entry := range iface.Properties.Entries() {
		merged.Properties.Set(entry.Name, entry)
	}

	merged.Extends = remaining
	return merged
}

// taggedCopy clones entry's value and sets InheritedFrom to owner
// unless it is already set (an ancestor two levels up already tagged
// it; the immediate parent must not overwrite a deeper provenance).
func taggedCopy(entry node.PropertyEntry, owner node.Id) node.PropertyEntry {
	v := entry.Value().Clone()
	if v.InheritedFrom == nil {
		id := owner
		v.InheritedFrom = &id
	}
	out := node.PropertyEntry{Name: entry.Name}
	if entry.Property != nil {
		out.Property = v
	} else {
		out.Method = v
	}
	return out
}
