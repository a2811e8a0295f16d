// Package fixture lowers a small HTML-shaped test vocabulary into the
// model.RawFile / model.PlasmicNode trees the merge engine operates on. It
// stands in for the real source-to-AST parser (out of scope), the same way
// the teacher's dom.go leaned on golang.org/x/net/html to get a DOM without
// writing its own HTML tokenizer.
//
// The vocabulary (all elements namespaced "pm-" so the permissive HTML5
// tree builder never tries to special-case them):
//
//	<pm-file>
//	  <pm-meta revision="3"></pm-meta>
//	  <pm-imports>
//	    <pm-import id="Button" type="component" module="./Button" default="Button"></pm-import>
//	  </pm-imports>
//	  <pm-managed>
//	    <div data-id="Root">...</div>
//	  </pm-managed>
//	</pm-file>
//
// Inside <pm-managed>, an element with a data-id attribute becomes a
// TagOrComponent; data-show/data-cls/data-props/data-on attributes
// synthesize the corresponding managed helper-call attribute or visibility
// wrapper; any other attribute becomes an ordinary developer attribute. An
// element without data-id, and its whole subtree, becomes an Opaque node.
// <pm-strlit value="..."/>, <pm-condcall/>, and <pm-arg name="...">...</pm-arg>
// produce the matching PlasmicNode variant.
package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/plasmerge/plasmerge/pkg/model"
)

// DOMParser implements the merge engine's Parser collaborator over the
// vocabulary above.
type DOMParser struct{}

type state struct {
	next int
}

func (s *state) start() int {
	s.next++
	return s.next
}

// Parse lowers source into a RawFile and its root managed PlasmicNode.
func (DOMParser) Parse(source string) (*model.RawFile, model.PlasmicNode, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: parsing fixture source: %w", err)
	}

	pmFile := findElement(doc, "pm-file")
	if pmFile == nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: source has no <pm-file> root")
	}
	pmMeta := findElement(pmFile, "pm-meta")
	if pmMeta == nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: <pm-file> has no <pm-meta>")
	}
	revision, err := strconv.Atoi(attr(pmMeta, "revision"))
	if err != nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: bad revision on <pm-meta>: %w", err)
	}

	st := &state{}

	var imports []*model.RawNode
	if pmImports := findElement(pmFile, "pm-imports"); pmImports != nil {
		for c := pmImports.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "pm-import" {
				imports = append(imports, lowerImport(c, st))
			}
		}
	}

	pmManaged := findElement(pmFile, "pm-managed")
	if pmManaged == nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: <pm-file> has no <pm-managed>")
	}
	rootEl := firstElementChild(pmManaged)
	if rootEl == nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: <pm-managed> has no root element")
	}
	managed := lowerNode(rootEl, st)
	if managed == nil {
		return nil, nil, fmt.Errorf("plasmerge/fixture: <pm-managed> root lowered to nothing")
	}

	program := &model.RawNode{
		Kind:     model.RawProgram,
		Start:    st.start(),
		Children: append(append([]*model.RawNode{}, imports...), managed.RawExpr()),
	}

	file := &model.RawFile{
		Program:          program,
		ManagedExprStart: managed.RawExpr().Start,
		ManagedComment:   fmt.Sprintf("plasmic-managed-jsx/%d", revision),
		ManagedRevision:  revision,
		Imports:          imports,
		Source:           deriveSource(source),
	}
	return file, managed, nil
}

// deriveSource turns the <pm-managed>...</pm-managed> tag boundaries into
// the plasmic-managed-start/end comment markers assemble.AssembleFile looks
// for, so the File Assembler's verbatim-region splice has something to find
// without requiring the fixture vocabulary to fake real JS syntax.
func deriveSource(source string) string {
	s := strings.Replace(source, "<pm-managed>", "// plasmic-managed-start\n", 1)
	s = strings.Replace(s, "</pm-managed>", "\n// plasmic-managed-end", 1)
	return s
}

func lowerImport(n *html.Node, st *state) *model.RawNode {
	id := attr(n, "id")
	typ := attr(n, "type")
	trailing := "// plasmic-import: " + id
	if typ != "" {
		trailing += "/" + typ
	}

	var specs []*model.RawNode
	if def := attr(n, "default"); def != "" {
		specs = append(specs, &model.RawNode{Kind: model.RawImportDefaultSpecifier, Start: st.start(), Text: def})
	}
	if ns := attr(n, "namespace"); ns != "" {
		specs = append(specs, &model.RawNode{Kind: model.RawImportNamespaceSpecifier, Start: st.start(), Text: ns})
	}
	if named := attr(n, "named"); named != "" {
		for _, part := range strings.Split(named, ",") {
			part = strings.TrimSpace(part)
			local, imported := part, part
			if i := strings.Index(part, "="); i != -1 {
				local, imported = part[:i], part[i+1:]
			}
			specs = append(specs, &model.RawNode{Kind: model.RawImportSpecifier, Start: st.start(), Text: local, Text2: imported})
		}
	}

	return &model.RawNode{
		Kind:            model.RawImportDeclaration,
		Start:           st.start(),
		Text:            attr(n, "module"),
		Children:        specs,
		TrailingComment: trailing,
	}
}

func lowerNode(n *html.Node, st *state) model.PlasmicNode {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		return &model.Text{Value: text, Raw: &model.RawNode{Kind: model.RawJSXText, Start: st.start(), Text: text}}
	case html.ElementNode:
		switch n.Data {
		case "pm-strlit":
			value := attr(n, "value")
			return &model.StringLit{Value: value, Raw: &model.RawNode{Kind: model.RawStringLiteral, Start: st.start(), Text: value}}
		case "pm-condcall":
			return &model.CondStrCall{Raw: rhCall(attr(n, "member"), st)}
		case "pm-opaque":
			return &model.Opaque{Raw: lowerOpaque(n, st)}
		case "pm-arg":
			return lowerArg(n, st)
		default:
			return lowerElement(n, st)
		}
	default:
		return nil
	}
}

func lowerChildren(n *html.Node, st *state) []model.PlasmicNode {
	var out []model.PlasmicNode
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pn := lowerNode(c, st); pn != nil {
			out = append(out, pn)
		}
	}
	return out
}

func lowerArg(n *html.Node, st *state) *model.Arg {
	argName := attr(n, "name")
	children := lowerChildren(n, st)

	var tags []*model.TagOrComponent
	var rawChildren []*model.RawNode
	for _, c := range children {
		if t, ok := c.(*model.TagOrComponent); ok {
			tags = append(tags, t)
		}
		rawChildren = append(rawChildren, c.RawExpr())
	}

	raw := &model.RawNode{Kind: model.RawOpaqueExpression, Start: st.start(), Text: argName, Children: rawChildren}
	return &model.Arg{ArgName: argName, Tags: tags, Raw: raw}
}

func lowerOpaque(n *html.Node, st *state) *model.RawNode {
	return &model.RawNode{Kind: model.RawOpaqueExpression, Start: st.start(), Text: renderOpaqueText(n)}
}

// renderOpaqueText captures a debug-only textual summary of an opaque
// subtree; the merger never inspects an Opaque node's contents, so fidelity
// beyond "something was here" is not required.
func renderOpaqueText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			b.WriteString("<" + n.Data + ">")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			b.WriteString("</" + n.Data + ">")
		case html.TextNode:
			b.WriteString(n.Data)
		}
	}
	walk(n)
	return b.String()
}

var managedAttrNames = map[string]bool{
	"data-id": true, "data-show": true, "data-cls": true, "data-props": true, "data-on": true,
}

func lowerElement(n *html.Node, st *state) model.PlasmicNode {
	nameInID := attr(n, "data-id")
	if nameInID == "" {
		return &model.Opaque{Raw: lowerOpaque(n, st)}
	}

	elementStart := st.start()
	childNodes := lowerChildren(n, st)

	var attrs []*model.JsxAttr
	for _, a := range n.Attr {
		if managedAttrNames[a.Key] {
			continue
		}
		attrs = append(attrs, ordinaryAttr(a.Key, a.Val, st))
	}
	if attr(n, "data-cls") == "1" {
		attrs = append(attrs, classAttr(nameInID, st))
	}
	if attr(n, "data-props") == "1" {
		attrs = append(attrs, propsSpreadAttr(nameInID, st))
	}
	if onEvents := attr(n, "data-on"); onEvents != "" {
		for _, ev := range strings.Split(onEvents, ",") {
			ev = strings.TrimSpace(ev)
			if ev != "" {
				attrs = append(attrs, onAttr(nameInID, ev, st))
			}
		}
	}

	elementRaw := &model.RawNode{
		Kind:        model.RawJSXElement,
		Start:       elementStart,
		Text:        n.Data,
		SelfClosing: len(childNodes) == 0,
	}
	for _, a := range attrs {
		elementRaw.Attrs = append(elementRaw.Attrs, a.Raw)
	}
	for _, c := range childNodes {
		elementRaw.Children = append(elementRaw.Children, c.RawExpr())
	}

	elem := &model.PlasmicJsxElement{NameInID: nameInID, Element: elementRaw, Attrs: attrs, Children: childNodes}

	wrapper := elementRaw
	if attr(n, "data-show") == "1" {
		wrapper = &model.RawNode{
			Kind:     model.RawLogicalAnd,
			Start:    st.start(),
			Children: []*model.RawNode{rhCall(model.ShowName(nameInID), st), elementRaw},
		}
	}

	return &model.TagOrComponent{Wrapper: wrapper, Elem: elem}
}

func ordinaryAttr(name, value string, st *state) *model.JsxAttr {
	raw := &model.RawNode{
		Kind:  model.RawJSXAttribute,
		Start: st.start(),
		Text:  name,
		Value: &model.RawNode{Kind: model.RawStringLiteral, Start: st.start(), Text: value},
	}
	return &model.JsxAttr{Name: name, Raw: raw}
}

func classAttr(nameInID string, st *state) *model.JsxAttr {
	call := rhCall(model.ClsName(nameInID), st)
	container := &model.RawNode{Kind: model.RawJSXExpressionContainer, Start: st.start(), Value: call}
	raw := &model.RawNode{Kind: model.RawJSXAttribute, Start: st.start(), Text: "className", Value: container}
	return &model.JsxAttr{Name: "className", Raw: raw}
}

func propsSpreadAttr(nameInID string, st *state) *model.JsxAttr {
	call := rhCall(model.PropsName(nameInID), st)
	raw := &model.RawNode{Kind: model.RawJSXSpreadAttribute, Start: st.start(), Value: call}
	return &model.JsxAttr{Spread: true, Raw: raw}
}

func onAttr(nameInID, event string, st *state) *model.JsxAttr {
	member := &model.RawNode{Kind: model.RawMemberExpression, Start: st.start(), Text: "rh", Text2: model.OnMemberName(nameInID, event)}
	container := &model.RawNode{Kind: model.RawJSXExpressionContainer, Start: st.start(), Value: member}
	name := "on" + event
	raw := &model.RawNode{Kind: model.RawJSXAttribute, Start: st.start(), Text: name, Value: container}
	return &model.JsxAttr{Name: name, Raw: raw}
}

func rhCall(member string, st *state) *model.RawNode {
	m := &model.RawNode{Kind: model.RawMemberExpression, Start: st.start(), Text: "rh", Text2: member}
	return &model.RawNode{Kind: model.RawCallExpression, Start: st.start(), Value: m}
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
