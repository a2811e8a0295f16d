package model

import "strings"

// NodeKind classifies a PlasmicNode into the closed set of variants spec'd
// for the merge engine. Every walker in this module is expected to switch
// exhaustively over these.
type NodeKind string

const (
	KindTagOrComponent NodeKind = "tag-or-component"
	KindArg            NodeKind = "arg"
	KindCondStrCall    NodeKind = "cond-str-call"
	KindStringLit      NodeKind = "string-lit"
	KindText           NodeKind = "text"
	KindOpaque         NodeKind = "opaque"
)

// PlasmicNode is the tagged-variant AST node the merge algorithms walk.
type PlasmicNode interface {
	Kind() NodeKind
	RawExpr() *RawNode
}

// TagOrComponent is a markup element owned by the design tool.
type TagOrComponent struct {
	// Wrapper is the raw expression rooted at this node: either the
	// JSXElement itself, or (when a visibility gate is present) the
	// LogicalAndExpression wrapping it.
	Wrapper *RawNode
	Elem    *PlasmicJsxElement
}

func (t *TagOrComponent) Kind() NodeKind  { return KindTagOrComponent }
func (t *TagOrComponent) RawExpr() *RawNode { return t.Wrapper }

// Arg is a slot passed as a named argument, containing zero or more
// tag-or-component nodes reachable inside its raw expression.
type Arg struct {
	ArgName string
	Tags    []*TagOrComponent
	Raw     *RawNode
}

func (a *Arg) Kind() NodeKind  { return KindArg }
func (a *Arg) RawExpr() *RawNode { return a.Raw }

// CondStrCall is a tool-managed call yielding a conditional string, e.g. a
// dynamic class-name helper call appearing as a child expression.
type CondStrCall struct {
	Raw *RawNode
}

func (c *CondStrCall) Kind() NodeKind  { return KindCondStrCall }
func (c *CondStrCall) RawExpr() *RawNode { return c.Raw }

// StringLit is a string literal child.
type StringLit struct {
	Value string
	Raw   *RawNode
}

func (s *StringLit) Kind() NodeKind  { return KindStringLit }
func (s *StringLit) RawExpr() *RawNode { return s.Raw }

// Text is a raw text child.
type Text struct {
	Value string
	Raw   *RawNode
}

func (t *Text) Kind() NodeKind  { return KindText }
func (t *Text) RawExpr() *RawNode { return t.Raw }

// Opaque is any developer-owned expression the merger must not inspect.
type Opaque struct {
	Raw *RawNode
}

func (o *Opaque) Kind() NodeKind  { return KindOpaque }
func (o *Opaque) RawExpr() *RawNode { return o.Raw }

// JsxAttr is one entry in a PlasmicJsxElement's attribute list: either an
// opaque spread (developer-introduced, Name empty) or a named attribute
// whose value may itself be a managed expression container.
type JsxAttr struct {
	Spread bool
	Name   string
	Value  PlasmicNode // nil for opaque spreads; the raw expr lives on Raw
	Raw    *RawNode    // the JSXAttribute/JSXSpreadAttribute node itself
}

// PlasmicJsxElement is a view of a markup element carrying the stable
// identifier the tool embeds plus its ordered attrs and children.
type PlasmicJsxElement struct {
	NameInID string
	Element  *RawNode // the RawJSXElement node
	Attrs    []*JsxAttr
	Children []PlasmicNode
}

// Managed helper-call naming conventions (see GLOSSARY: helper object).

func ClsName(nameInID string) string   { return "cls" + nameInID }
func PropsName(nameInID string) string { return "props" + nameInID }
func ShowName(nameInID string) string  { return "show" + nameInID }

// OnMemberName builds the managed event-handler member name "on<X><Event>".
func OnMemberName(nameInID, event string) string { return "on" + nameInID + event }

// OnMemberSuffix returns the "<Event>" suffix of a managed event-handler
// member name if it is shaped "on<nameInID><Event>", and ok=false otherwise.
func OnMemberSuffix(member, nameInID string) (suffix string, ok bool) {
	prefix := "on" + nameInID
	if !strings.HasPrefix(member, prefix) {
		return "", false
	}
	return strings.TrimPrefix(member, prefix), true
}

// HasClassNameIDAttr reports whether the element carries shape B:
// className={rh.clsX()}.
func (e *PlasmicJsxElement) HasClassNameIDAttr() bool {
	want := ClsName(e.NameInID)
	for _, a := range e.Attrs {
		if !a.Spread && a.Name == "className" && managedCallName(a.Raw) == want {
			return true
		}
	}
	return false
}

// HasPropsIDSpreador reports whether the element carries shape A:
// {...rh.propsX()}.
func (e *PlasmicJsxElement) HasPropsIDSpreador() bool {
	want := PropsName(e.NameInID)
	for _, a := range e.Attrs {
		if a.Spread && managedCallName(a.Raw) == want {
			return true
		}
	}
	return false
}

// managedCallName returns the member name of a `rh.<name>(...)` call rooted
// at a JSXAttribute/JSXSpreadAttribute's value, or "" if it is not such a
// call (e.g. it's an opaque developer expression).
func managedCallName(attrRaw *RawNode) string {
	if attrRaw == nil {
		return ""
	}
	expr := attrRaw.Value
	if attrRaw.Kind == RawJSXAttribute && expr != nil && expr.Kind == RawJSXExpressionContainer {
		expr = expr.Value
	}
	if expr == nil || expr.Kind != RawCallExpression || expr.Value == nil {
		return ""
	}
	callee := expr.Value
	if callee.Kind != RawMemberExpression {
		return ""
	}
	return callee.Text2
}

// HasShowFuncCall reports whether raw contains a top-level call to
// rh.show<nameInID>() — either raw is itself a LogicalAndExpression whose
// left side is that call, or raw is the call itself.
func HasShowFuncCall(raw *RawNode, nameInID string) bool {
	want := ShowName(nameInID)
	if raw == nil {
		return false
	}
	if raw.Kind == RawLogicalAnd && len(raw.Children) == 2 {
		return showCallName(raw.Children[0]) == want
	}
	return showCallName(raw) == want
}

func showCallName(n *RawNode) string {
	if n == nil || n.Kind != RawCallExpression || n.Value == nil {
		return ""
	}
	if n.Value.Kind != RawMemberExpression {
		return ""
	}
	return n.Value.Text2
}
