// Package fixture loads a fileset from a small JSON AST format, standing in
// for the lexer/parser that spec.md §1 names as an external collaborator
// out of core scope. It exists so cmd/soyc can exercise the real pipeline
// end to end without pretending to be a Soy parser it was never asked to
// build: every node gets a zero source.Span, since nothing here tracks byte
// offsets into real template text.
package fixture

import (
	"encoding/json"
	"fmt"

	"soyc/internal/ast"
	"soyc/internal/idgen"
	"soyc/internal/source"
)

type fileJSON struct {
	Path      string         `json:"path"`
	Namespace string         `json:"namespace"`
	Kind      string         `json:"kind"` // "src" | "dep" | "indirect_dep"
	Templates []templateJSON `json:"templates"`
}

type templateJSON struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`         // "basic" | "element"
	ContentKind string     `json:"content_kind"` // "html" | "text" | "attributes" | "js" | "css" | "uri" | "trusted_resource_uri"
	Autoescape  string     `json:"autoescape"`   // "strict" | "contextual" | "false"
	Params      []declJSON `json:"params"`
	Props       []declJSON `json:"props"`
	Body        []nodeJSON `json:"body"`
}

type declJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

// nodeJSON is a tagged-union envelope for one template-body node; only
// "node" is inspected before dispatching to the matching *JSON payload.
type nodeJSON struct {
	Node string          `json:"node"`
	Raw  json.RawMessage `json:"-"`
}

// Load decodes data as one fileJSON document and returns the equivalent
// *ast.FileNode, minting every node id from gen.
func Load(gen idgen.Generator, data []byte) (*ast.FileNode, error) {
	var doc fileJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: decoding fileset: %w", err)
	}
	templates := make([]*ast.TemplateNode, 0, len(doc.Templates))
	for _, tj := range doc.Templates {
		t, err := buildTemplate(gen, tj)
		if err != nil {
			return nil, fmt.Errorf("fixture: template %q: %w", tj.Name, err)
		}
		templates = append(templates, t)
	}
	path := doc.Path
	if path == "" {
		path = "fixture.soy"
	}
	f := ast.NewFile(gen, source.Span{}, path, doc.Namespace, templates)
	f.FileKind = fileKindOf(doc.Kind)
	return f, nil
}

func fileKindOf(s string) ast.FileKind {
	switch s {
	case "dep":
		return ast.FileKindDep
	case "indirect_dep":
		return ast.FileKindIndirectDep
	default:
		return ast.FileKindSrc
	}
}

func buildTemplate(gen idgen.Generator, tj templateJSON) (*ast.TemplateNode, error) {
	kind := ast.TemplateKindBasic
	if tj.Kind == "element" {
		kind = ast.TemplateKindElement
	}
	body, err := buildNodes(gen, tj.Body)
	if err != nil {
		return nil, err
	}
	t := ast.NewTemplate(gen, source.Span{}, tj.Name, kind, body)
	t.ContentKind = contentKindOf(tj.ContentKind)
	t.Autoescape = autoescapeOf(tj.Autoescape)
	for _, p := range tj.Params {
		t.Params = append(t.Params, ast.ParamDecl{Name: p.Name, TypeName: p.Type, Optional: p.Optional})
	}
	for _, p := range tj.Props {
		t.Props = append(t.Props, ast.PropDecl{Name: p.Name, TypeName: p.Type, Optional: p.Optional})
	}
	return t, nil
}

func contentKindOf(s string) ast.ContentKind {
	switch s {
	case "text":
		return ast.ContentKindText
	case "attributes":
		return ast.ContentKindAttributes
	case "js":
		return ast.ContentKindJS
	case "css":
		return ast.ContentKindCSS
	case "uri":
		return ast.ContentKindURI
	case "trusted_resource_uri":
		return ast.ContentKindTrustedResourceURI
	default:
		return ast.ContentKindHTML
	}
}

func autoescapeOf(s string) ast.AutoescapeMode {
	switch s {
	case "contextual":
		return ast.AutoescapeContextual
	case "false":
		return ast.AutoescapeFalse
	default:
		return ast.AutoescapeStrict
	}
}

func buildNodes(gen idgen.Generator, raws []nodeJSON) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(raws))
	for _, r := range raws {
		n, err := buildNode(gen, r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func buildNode(gen idgen.Generator, r nodeJSON) (ast.Node, error) {
	switch r.Node {
	case "text":
		var p struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		return ast.NewRawText(gen, source.Span{}, p.Text), nil
	case "print":
		var p struct {
			Value      json.RawMessage `json:"value"`
			Directives []struct {
				Name string            `json:"name"`
				Args []json.RawMessage `json:"args"`
			} `json:"directives"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		value, err := buildExpr(gen, p.Value)
		if err != nil {
			return nil, err
		}
		dirs := make([]ast.PrintDirective, 0, len(p.Directives))
		for _, d := range p.Directives {
			args, err := buildExprs(gen, d.Args)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, ast.PrintDirective{Name: d.Name, Args: args})
		}
		return ast.NewPrint(gen, source.Span{}, value, dirs), nil
	case "if":
		var p struct {
			Branches []struct {
				Cond json.RawMessage `json:"cond"`
				Body []nodeJSON      `json:"body"`
			} `json:"branches"`
			Else []nodeJSON `json:"else"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		branches := make([]ast.IfBranch, 0, len(p.Branches))
		for _, b := range p.Branches {
			cond, err := buildExpr(gen, b.Cond)
			if err != nil {
				return nil, err
			}
			body, err := buildNodes(gen, b.Body)
			if err != nil {
				return nil, err
			}
			branches = append(branches, ast.IfBranch{Cond: cond, Body: body})
		}
		els, err := buildNodes(gen, p.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(gen, source.Span{}, branches, els), nil
	case "switch":
		var p struct {
			Subject json.RawMessage `json:"subject"`
			Cases   []struct {
				Values []json.RawMessage `json:"values"`
				Body   []nodeJSON        `json:"body"`
			} `json:"cases"`
			Default []nodeJSON `json:"default"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		subject, err := buildExpr(gen, p.Subject)
		if err != nil {
			return nil, err
		}
		cases := make([]ast.SwitchCase, 0, len(p.Cases))
		for _, c := range p.Cases {
			values, err := buildExprs(gen, c.Values)
			if err != nil {
				return nil, err
			}
			body, err := buildNodes(gen, c.Body)
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.SwitchCase{Values: values, Body: body})
		}
		def, err := buildNodes(gen, p.Default)
		if err != nil {
			return nil, err
		}
		return ast.NewSwitch(gen, source.Span{}, subject, cases, def), nil
	case "for":
		var p struct {
			Var   string          `json:"var"`
			List  json.RawMessage `json:"list"`
			Body  []nodeJSON      `json:"body"`
			Empty []nodeJSON      `json:"empty"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		list, err := buildExpr(gen, p.List)
		if err != nil {
			return nil, err
		}
		body, err := buildNodes(gen, p.Body)
		if err != nil {
			return nil, err
		}
		empty, err := buildNodes(gen, p.Empty)
		if err != nil {
			return nil, err
		}
		return ast.NewFor(gen, source.Span{}, p.Var, list, body, empty), nil
	case "let":
		var p struct {
			Name        string          `json:"name"`
			Value       json.RawMessage `json:"value"`
			Content     []nodeJSON      `json:"content"`
			ContentKind string          `json:"content_kind"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		var value ast.Expr
		if len(p.Value) > 0 {
			v, err := buildExpr(gen, p.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		content, err := buildNodes(gen, p.Content)
		if err != nil {
			return nil, err
		}
		return ast.NewLet(gen, source.Span{}, p.Name, value, content, contentKindOf(p.ContentKind)), nil
	case "call":
		var p struct {
			Callee string          `json:"callee"`
			Data   json.RawMessage `json:"data"`
			Params []struct {
				Name    string          `json:"name"`
				Value   json.RawMessage `json:"value"`
				Content []nodeJSON      `json:"content"`
			} `json:"params"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		var data ast.Expr
		if len(p.Data) > 0 {
			d, err := buildExpr(gen, p.Data)
			if err != nil {
				return nil, err
			}
			data = d
		}
		params := make([]ast.CallParam, 0, len(p.Params))
		for _, cp := range p.Params {
			var value ast.Expr
			if len(cp.Value) > 0 {
				v, err := buildExpr(gen, cp.Value)
				if err != nil {
					return nil, err
				}
				value = v
			}
			content, err := buildNodes(gen, cp.Content)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.CallParam{Name: cp.Name, Value: value, Content: content})
		}
		return ast.NewCall(gen, source.Span{}, p.Callee, data, params), nil
	case "msg":
		var p struct {
			Desc    string     `json:"desc"`
			Meaning string     `json:"meaning"`
			Body    []nodeJSON `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		body, err := buildNodes(gen, p.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewMsg(gen, source.Span{}, p.Desc, p.Meaning, body), nil
	case "velog":
		var p struct {
			LoggingExpr json.RawMessage `json:"logging_expr"`
			Body        []nodeJSON      `json:"body"`
		}
		if err := json.Unmarshal(r.Raw, &p); err != nil {
			return nil, err
		}
		le, err := buildExpr(gen, p.LoggingExpr)
		if err != nil {
			return nil, err
		}
		body, err := buildNodes(gen, p.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewVelog(gen, source.Span{}, le, body), nil
	default:
		return nil, fmt.Errorf("fixture: unknown node kind %q", r.Node)
	}
}

func buildExprs(gen idgen.Generator, raws []json.RawMessage) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(raws))
	for _, r := range raws {
		e, err := buildExpr(gen, r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func buildExpr(gen idgen.Generator, raw json.RawMessage) (ast.Expr, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("fixture: missing expression")
	}
	var head struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Expr {
	case "literal":
		var p struct {
			Kind string `json:"kind"`
			Raw  string `json:"raw"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return ast.NewLiteral(gen, source.Span{}, literalKindOf(p.Kind), p.Raw), nil
	case "var":
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return ast.NewVarRef(gen, source.Span{}, p.Name), nil
	case "global":
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return ast.NewGlobalRef(gen, source.Span{}, p.Name), nil
	case "binary":
		var p struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		left, err := buildExpr(gen, p.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(gen, p.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(gen, source.Span{}, p.Op, left, right), nil
	case "unary":
		var p struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		operand, err := buildExpr(gen, p.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(gen, source.Span{}, p.Op, operand), nil
	case "field":
		var p struct {
			Base  json.RawMessage `json:"base"`
			Field string          `json:"field"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		base, err := buildExpr(gen, p.Base)
		if err != nil {
			return nil, err
		}
		return ast.NewFieldAccess(gen, source.Span{}, base, p.Field), nil
	default:
		return nil, fmt.Errorf("fixture: unknown expression kind %q", head.Expr)
	}
}

func literalKindOf(s string) ast.LiteralKind {
	switch s {
	case "bool":
		return ast.LiteralBool
	case "int":
		return ast.LiteralInt
	case "float":
		return ast.LiteralFloat
	case "string":
		return ast.LiteralString
	default:
		return ast.LiteralNull
	}
}

// UnmarshalJSON captures the raw payload alongside the discriminator so
// buildNode can re-decode into the matching concrete shape.
func (n *nodeJSON) UnmarshalJSON(data []byte) error {
	var head struct {
		Node string `json:"node"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	n.Node = head.Node
	n.Raw = append([]byte(nil), data...)
	return nil
}
