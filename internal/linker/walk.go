package linker

import "tsdocgraph/internal/node"

// frame is one parameter-stack entry: type-parameter name -> the Node
// currently bound to it (spec.md §4.6's parameter stack).
type frame map[string]*node.Node

// rootFrames implements spec.md §4.6 step 3: a root-level alias,
// interface, or component with type parameters gets a frame binding
// each type parameter to its own constraint (when present), so
// unapplied generics still read naturally (`T extends DateValue`
// renders as `DateValue` wherever T appears undecorated).
func rootFrames(n *node.Node) []frame {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case node.KindAlias, node.KindInterface, node.KindComponent:
	default:
		return nil
	}
	if len(n.TypeParameters) == 0 {
		return nil
	}
	f := frame{}
	for _, tp := range n.TypeParameters {
		if tp.Constraint != nil {
			f[tp.Name] = tp.Constraint
		}
	}
	if len(f) == 0 {
		return nil
	}
	return []frame{f}
}

// pushKey returns keyStack with key appended, copying so sibling calls
// never share (and corrupt) a backing array.
func pushKey(keyStack []string, key string) []string {
	out := make([]string, len(keyStack)+1)
	copy(out, keyStack)
	out[len(keyStack)] = key
	return out
}

func topFrame(frames []frame) frame {
	if len(frames) == 0 {
		return nil
	}
	return frames[len(frames)-1]
}

// rewrite is the single generic walker (spec.md §4.6 "Walker
// contract"): it visits n with the current key stack and parameter
// stack, applying every Pass A rewrite in order, and returns the
// replacement node. inProgress is the per-invocation identity set that
// breaks cycles on link-able (interface/alias) nodes.
func (l *Linker) rewrite(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case node.KindReference:
		return l.rewriteReference(n, keyStack, frames, inProgress)
	case node.KindApplication:
		return l.rewriteApplication(n, keyStack, frames, inProgress)
	case node.KindIdentifier:
		if top := topFrame(frames); top != nil {
			if bound, ok := top[n.Name]; ok {
				return bound
			}
		}
		return n
	case node.KindInterface:
		if inProgress[n] {
			return &node.Node{Kind: node.KindLink, Id: n.Id}
		}
		inProgress[n] = true
		defer delete(inProgress, n)
		return l.rewriteInterface(n, keyStack, frames, inProgress)
	case node.KindAlias:
		if inProgress[n] {
			return &node.Node{Kind: node.KindLink, Id: n.Id}
		}
		inProgress[n] = true
		defer delete(inProgress, n)
		return l.rewriteAlias(n, keyStack, frames, inProgress)
	case node.KindTypeOperator, node.KindKeyof:
		return l.rewriteTypeOperator(n, keyStack, frames, inProgress)
	case node.KindArray:
		out := n.Clone()
		out.ElementType = l.rewrite(n.ElementType, pushKey(keyStack, "elementType"), frames, inProgress)
		return out
	case node.KindTuple, node.KindUnion, node.KindIntersection:
		out := n.Clone()
		out.Elements = l.rewriteNodeSlice(n.Elements, pushKey(keyStack, "elements"), frames, inProgress)
		return out
	case node.KindObject:
		out := n.Clone()
		out.Properties = l.rewriteProperties(n.Properties, keyStack, frames, inProgress)
		return out
	case node.KindTemplate:
		out := n.Clone()
		out.TemplateElements = make([]node.TemplateElement, len(n.TemplateElements))
		for i, el := range n.TemplateElements {
			out.TemplateElements[i] = el
			if el.Node != nil {
				out.TemplateElements[i].Node = l.rewrite(el.Node, pushKey(keyStack, "templateElements"), frames, inProgress)
			}
		}
		return out
	case node.KindTypeParameter:
		out := n.Clone()
		out.Constraint = l.rewrite(n.Constraint, pushKey(keyStack, "constraint"), frames, inProgress)
		out.DefaultType = l.rewrite(n.DefaultType, pushKey(keyStack, "default"), frames, inProgress)
		return out
	case node.KindParameter:
		out := n.Clone()
		out.ValueNode = l.rewrite(n.ValueNode, pushKey(keyStack, n.Name), frames, inProgress)
		return out
	case node.KindProperty:
		out := n.Clone()
		out.ValueNode = l.rewrite(n.ValueNode, pushKey(keyStack, n.Name), frames, inProgress)
		out.IndexType = l.rewrite(n.IndexType, pushKey(keyStack, "indexType"), frames, inProgress)
		return out
	case node.KindMethod:
		out := n.Clone()
		out.ValueNode = l.rewrite(n.ValueNode, pushKey(keyStack, n.Name), frames, inProgress)
		return out
	case node.KindFunction, node.KindComponent:
		return l.rewriteCallable(n, keyStack, frames, inProgress)
	case node.KindConditional:
		out := n.Clone()
		out.CheckType = l.rewrite(n.CheckType, pushKey(keyStack, "checkType"), frames, inProgress)
		out.ExtendsType = l.rewrite(n.ExtendsType, pushKey(keyStack, "extendsType"), frames, inProgress)
		out.TrueType = l.rewrite(n.TrueType, pushKey(keyStack, "trueType"), frames, inProgress)
		out.FalseType = l.rewrite(n.FalseType, pushKey(keyStack, "falseType"), frames, inProgress)
		return out
	case node.KindIndexedAccess:
		out := n.Clone()
		out.ObjectType = l.rewrite(n.ObjectType, pushKey(keyStack, "objectType"), frames, inProgress)
		out.IndexType = l.rewrite(n.IndexType, pushKey(keyStack, "indexType"), frames, inProgress)
		return out
	default:
		return n
	}
}

func (l *Linker) rewriteNodeSlice(elements []node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) []node.Node {
	if elements == nil {
		return nil
	}
	out := make([]node.Node, len(elements))
	for i := range elements {
		rewritten := l.rewrite(&elements[i], keyStack, frames, inProgress)
		if rewritten != nil {
			out[i] = *rewritten
		}
	}
	return out
}

func (l *Linker) rewriteProperties(props *node.PropertyMap, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.PropertyMap {
	if props == nil {
		return nil
	}
	out := node.NewPropertyMap()
	for _, entry := range props.Entries() {
		v := l.rewrite(entry.Value(), keyStack, frames, inProgress)
		newEntry := node.PropertyEntry{Name: entry.Name}
		if entry.Property != nil {
			newEntry.Property = v
		} else {
			newEntry.Method = v
		}
		out.Set(entry.Name, newEntry)
	}
	return out
}

func (l *Linker) rewriteCallable(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	out := n.Clone()
	out.Parameters = l.rewriteNodeSlice(n.Parameters, pushKey(keyStack, "parameters"), frames, inProgress)
	out.Return = l.rewrite(n.Return, pushKey(keyStack, "return"), frames, inProgress)
	out.Props = l.rewrite(n.Props, pushKey(keyStack, "props"), frames, inProgress)
	out.Ref = l.rewrite(n.Ref, pushKey(keyStack, "ref"), frames, inProgress)
	return out
}

// rewriteReference implements spec.md §4.6 step 1.
func (l *Linker) rewriteReference(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	target, ok := l.lookupExport(n.Specifier, n.Imported)
	if !ok {
		return &node.Node{Kind: node.KindIdentifier, Name: n.Local}
	}
	return l.rewrite(target, keyStack, frames, inProgress)
}

// rewriteTypeOperator implements spec.md §4.6 step 8 (keyof of an
// interface becomes a union of its property keys) and otherwise
// recurses into the operand transparently.
func (l *Linker) rewriteTypeOperator(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	operand := l.rewrite(n.Operand(), pushKey(keyStack, "keyof"), frames, inProgress)
	if n.OperatorOf() == node.OperatorKeyof {
		if resolved := l.resolveValue(operand); resolved != nil && resolved.Kind == node.KindInterface {
			keys := resolved.Properties.Keys()
			elements := make([]node.Node, len(keys))
			for i, k := range keys {
				elements[i] = node.Node{Kind: node.KindString, LiteralValue: k, HasLiteralValue: true}
			}
			return &node.Node{Kind: node.KindUnion, Elements: elements}
		}
	}
	out := n.Clone()
	out.ValueNode = operand
	return out
}

// rewriteInterface implements spec.md §4.6 step 6.
func (l *Linker) rewriteInterface(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	rewritten := n.Clone()
	rewritten.Extends = l.rewriteNodeSlice(n.Extends, pushKey(keyStack, "extends"), frames, inProgress)
	rewritten.Properties = l.rewriteProperties(n.Properties, keyStack, frames, inProgress)
	rewritten.TypeParameters = l.rewriteNodeSlice(n.TypeParameters, pushKey(keyStack, "typeParameters"), frames, inProgress)

	merged := l.flattenInterface(rewritten)
	if !merged.Id.IsZero() {
		l.table[merged.Id.String()] = merged
	}
	if shouldMerge(keyStack) {
		return merged
	}
	return &node.Node{Kind: node.KindLink, Id: merged.Id}
}

// rewriteAlias implements spec.md §4.6 step 7.
func (l *Linker) rewriteAlias(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	rewritten := n.Clone()
	rewritten.ValueNode = l.rewrite(n.ValueNode, pushKey(keyStack, "value"), frames, inProgress)
	rewritten.TypeParameters = l.rewriteNodeSlice(n.TypeParameters, pushKey(keyStack, "typeParameters"), frames, inProgress)

	if !rewritten.Id.IsZero() {
		l.table[rewritten.Id.String()] = rewritten
	}

	if len(keyStack) > 0 && keyStack[len(keyStack)-1] == "props" {
		return rewritten.ValueNode
	}
	if shouldMerge(keyStack) {
		return rewritten
	}
	return &node.Node{Kind: node.KindLink, Id: rewritten.Id}
}

// rewriteApplication implements spec.md §4.6 steps 2, 4 and 9.
func (l *Linker) rewriteApplication(n *node.Node, keyStack []string, frames []frame, inProgress map[*node.Node]bool) *node.Node {
	args := l.rewriteNodeSlice(n.TypeParameters, keyStack, frames, inProgress)

	target := l.peekTarget(n.Base)
	pushedFrame := false
	if target != nil && (target.Kind == node.KindAlias || target.Kind == node.KindInterface) &&
		len(target.TypeParameters) > 0 && shouldMerge(keyStack) {
		bind := frame{}
		for i, tp := range target.TypeParameters {
			if i < len(args) {
				bind[tp.Name] = &args[i]
			} else if tp.DefaultType != nil {
				bind[tp.Name] = tp.DefaultType
			}
		}
		frames = append(frames, bind)
		pushedFrame = true
	}

	base := l.rewrite(n.Base, pushKey(keyStack, "base"), frames, inProgress)
	if pushedFrame {
		frames = frames[:len(frames)-1]
	}

	if base != nil && base.Kind == node.KindIdentifier && base.Name == "Omit" && len(args) == 2 {
		return l.evalOmit(&args[0], &args[1])
	}

	out := n.Clone()
	out.Base = base
	out.TypeParameters = args

	if len(keyStack) > 0 && keyStack[len(keyStack)-1] == "props" {
		return base
	}
	return out
}

// peekTarget looks one hop ahead of an unrewritten base node to see
// whether it names an alias/interface with type parameters, without
// performing a full recursive rewrite (needed to decide whether to
// push a parameter-stack frame before actually visiting it).
func (l *Linker) peekTarget(n *node.Node) *node.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case node.KindReference:
		target, ok := l.lookupExport(n.Specifier, n.Imported)
		if !ok {
			return nil
		}
		return l.peekTarget(target)
	case node.KindAlias, node.KindInterface:
		return n
	default:
		return nil
	}
}
