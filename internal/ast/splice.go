package ast

// SpliceChild replaces old, a direct child of owner, with the nodes in
// replacement, preserving the position old occupied in whichever []Node body
// slice owns it. Unlike ReplaceChild, which only swaps one node for
// another of the same shape, this lets a pass collapse a control-flow node
// into the nodes that survive evaluating it (the optimizer folding
// `{if true}hi{/if}` down to its raw-text body, spec.md §8 scenario 1) or
// drop it entirely by passing a nil/empty replacement. It covers every node
// kind with an owned `[]Node` body; nodes whose children live in typed
// fields (BinaryExprNode.Left, CallNode.Params[i].Value, ...) are not
// splice targets, since a child there cannot be replaced by a list without
// changing the parent's own shape.
func SpliceChild(owner Node, old Node, replacement []Node) bool {
	switch o := owner.(type) {
	case *TemplateNode:
		return spliceInto(&o.Body, owner, old, replacement)
	case *ForNode:
		if spliceInto(&o.Body, owner, old, replacement) {
			return true
		}
		return spliceInto(&o.Empty, owner, old, replacement)
	case *IfNode:
		for i := range o.Branches {
			if spliceInto(&o.Branches[i].Body, owner, old, replacement) {
				return true
			}
		}
		return spliceInto(&o.Else, owner, old, replacement)
	case *SwitchNode:
		for i := range o.Cases {
			if spliceInto(&o.Cases[i].Body, owner, old, replacement) {
				return true
			}
		}
		return spliceInto(&o.Default, owner, old, replacement)
	case *VelogNode:
		return spliceInto(&o.Body, owner, old, replacement)
	case *CallNode:
		for i := range o.Params {
			if spliceInto(&o.Params[i].Content, owner, old, replacement) {
				return true
			}
		}
		return false
	case *LetNode:
		return spliceInto(&o.Content, owner, old, replacement)
	case *MsgNode:
		return spliceInto(&o.Body, owner, old, replacement)
	case *PlaceholderNode:
		return spliceInto(&o.Content, owner, old, replacement)
	case *AttrValueNode:
		return spliceInto(&o.Content, owner, old, replacement)
	case *FileNode:
		// Templates are *TemplateNode, never plain Node replacements; a
		// splice here would violate FileNode's child-type contract.
		return false
	default:
		return false
	}
}

func spliceInto(slice *[]Node, owner Node, old Node, replacement []Node) bool {
	s := *slice
	for i, c := range s {
		if c != old {
			continue
		}
		for _, r := range replacement {
			adopt(owner, r)
		}
		next := make([]Node, 0, len(s)-1+len(replacement))
		next = append(next, s[:i]...)
		next = append(next, replacement...)
		next = append(next, s[i+1:]...)
		*slice = next
		return true
	}
	return false
}
