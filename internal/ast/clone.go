package ast

import "soyc/internal/idgen"

// Clone deep-copies n and every descendant, allocating a fresh id from gen
// for each copy (spec.md §4.2: a cloned subtree must never share ids with
// its source, since both may go on to live in the same fileset, e.g. after
// delegate resolution duplicates a deltemplate body). The clone's parent is
// nil; the caller is expected to adopt it into its new owner. Resolved
// expression types carry over unchanged. No pass in internal/passes calls
// Clone.
func Clone(gen idgen.Generator, n Node) Node {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *FileNode:
		tpls := make([]*TemplateNode, len(v.Templates))
		for i, t := range v.Templates {
			tpls[i] = Clone(gen, t).(*TemplateNode)
		}
		c := NewFile(gen, v.Span(), v.Path, v.Namespace, tpls)
		c.Aliases = append([]Alias(nil), v.Aliases...)
		c.FileKind = v.FileKind
		return c
	case *TemplateNode:
		body := cloneList(gen, v.Body)
		c := NewTemplate(gen, v.Span(), v.Name, v.TplKind, body)
		c.Visibility = v.Visibility
		c.Autoescape = v.Autoescape
		c.ContentKind = v.ContentKind
		c.Params = append([]ParamDecl(nil), v.Params...)
		c.Props = append([]PropDecl(nil), v.Props...)
		c.RequiredCSS = append([]string(nil), v.RequiredCSS...)
		c.IsDelegate = v.IsDelegate
		c.DelegatePriority = v.DelegatePriority
		if v.DelegateVariant != nil {
			c.DelegateVariant = Clone(gen, v.DelegateVariant).(Expr)
			adopt(c, c.DelegateVariant)
		}
		return c
	case *RawTextNode:
		return NewRawText(gen, v.Span(), v.Text)
	case *TagOpenNode:
		attrs := cloneAttrs(gen, v.Attrs)
		c := NewTagOpen(gen, v.Span(), v.Name, attrs)
		c.SelfClosed = v.SelfClosed
		return c
	case *TagCloseNode:
		return NewTagClose(gen, v.Span(), v.Name)
	case *AttributeNode:
		var val *AttrValueNode
		if v.Value != nil {
			val = Clone(gen, v.Value).(*AttrValueNode)
		}
		return NewAttribute(gen, v.Span(), v.Name, val)
	case *AttrValueNode:
		return NewAttrValue(gen, v.Span(), cloneList(gen, v.Content))
	case *SelfClosedTagNode:
		return NewSelfClosedTag(gen, v.Span(), v.Name, cloneAttrs(gen, v.Attrs))
	case *MsgNode:
		c := NewMsg(gen, v.Span(), v.Desc, v.Meaning, cloneList(gen, v.Body))
		c.Hidden = v.Hidden
		return c
	case *CallNode:
		var data Expr
		if v.Data != nil {
			data = Clone(gen, v.Data).(Expr)
		}
		params := make([]CallParam, len(v.Params))
		for i, p := range v.Params {
			np := CallParam{Name: p.Name, Content: cloneList(gen, p.Content)}
			if p.Value != nil {
				np.Value = Clone(gen, p.Value).(Expr)
			}
			params[i] = np
		}
		return NewCall(gen, v.Span(), v.Callee, data, params)
	case *ForNode:
		var list Expr
		if v.List != nil {
			list = Clone(gen, v.List).(Expr)
		}
		return NewFor(gen, v.Span(), v.VarName, list, cloneList(gen, v.Body), cloneList(gen, v.Empty))
	case *IfNode:
		branches := make([]IfBranch, len(v.Branches))
		for i, b := range v.Branches {
			nb := IfBranch{Body: cloneList(gen, b.Body)}
			if b.Cond != nil {
				nb.Cond = Clone(gen, b.Cond).(Expr)
			}
			branches[i] = nb
		}
		return NewIf(gen, v.Span(), branches, cloneList(gen, v.Else))
	case *SwitchNode:
		var subject Expr
		if v.Subject != nil {
			subject = Clone(gen, v.Subject).(Expr)
		}
		cases := make([]SwitchCase, len(v.Cases))
		for i, c := range v.Cases {
			nc := SwitchCase{Body: cloneList(gen, c.Body)}
			nc.Values = make([]Expr, len(c.Values))
			for j, val := range c.Values {
				nc.Values[j] = Clone(gen, val).(Expr)
			}
			cases[i] = nc
		}
		return NewSwitch(gen, v.Span(), subject, cases, cloneList(gen, v.Default))
	case *LetNode:
		var val Expr
		if v.Value != nil {
			val = Clone(gen, v.Value).(Expr)
		}
		return NewLet(gen, v.Span(), v.Name, val, cloneList(gen, v.Content), v.ContentKind)
	case *PrintNode:
		var val Expr
		if v.Value != nil {
			val = Clone(gen, v.Value).(Expr)
		}
		directives := make([]PrintDirective, len(v.Directives))
		for i, d := range v.Directives {
			nd := PrintDirective{Name: d.Name, Args: make([]Expr, len(d.Args))}
			for j, a := range d.Args {
				nd.Args[j] = Clone(gen, a).(Expr)
			}
			directives[i] = nd
		}
		return NewPrint(gen, v.Span(), val, directives)
	case *VelogNode:
		var le Expr
		if v.LoggingExpr != nil {
			le = Clone(gen, v.LoggingExpr).(Expr)
		}
		return NewVelog(gen, v.Span(), le, cloneList(gen, v.Body))
	case *PlaceholderNode:
		return NewPlaceholder(gen, v.Span(), v.Name, v.ExampleText, cloneList(gen, v.Content))
	case *VarRefNode:
		c := NewVarRef(gen, v.Span(), v.Name)
		c.SetResolvedType(v.ResolvedType())
		c.Decl = v.Decl
		return c
	case *LiteralNode:
		c := NewLiteral(gen, v.Span(), v.LitKind, v.Raw)
		c.SetResolvedType(v.ResolvedType())
		return c
	case *GlobalRefNode:
		c := NewGlobalRef(gen, v.Span(), v.Name)
		c.SetResolvedType(v.ResolvedType())
		return c
	case *BinaryExprNode:
		c := NewBinaryExpr(gen, v.Span(), v.Op, Clone(gen, v.Left).(Expr), Clone(gen, v.Right).(Expr))
		c.SetResolvedType(v.ResolvedType())
		return c
	case *UnaryExprNode:
		c := NewUnaryExpr(gen, v.Span(), v.Op, Clone(gen, v.Operand).(Expr))
		c.SetResolvedType(v.ResolvedType())
		return c
	case *FieldAccessNode:
		c := NewFieldAccess(gen, v.Span(), Clone(gen, v.Base).(Expr), v.Field)
		c.SetResolvedType(v.ResolvedType())
		return c
	case *ListLiteralNode:
		items := make([]Expr, len(v.Items))
		for i, it := range v.Items {
			items[i] = Clone(gen, it).(Expr)
		}
		c := NewListLiteral(gen, v.Span(), items)
		c.SetResolvedType(v.ResolvedType())
		return c
	case *MapLiteralNode:
		entries := make([]MapEntry, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = MapEntry{Key: Clone(gen, e.Key).(Expr), Value: Clone(gen, e.Value).(Expr)}
		}
		c := NewMapLiteral(gen, v.Span(), entries)
		c.SetResolvedType(v.ResolvedType())
		return c
	default:
		return nil
	}
}

func cloneList(gen idgen.Generator, nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(gen, n)
	}
	return out
}

func cloneAttrs(gen idgen.Generator, attrs []*AttributeNode) []*AttributeNode {
	if attrs == nil {
		return nil
	}
	out := make([]*AttributeNode, len(attrs))
	for i, a := range attrs {
		out[i] = Clone(gen, a).(*AttributeNode)
	}
	return out
}
