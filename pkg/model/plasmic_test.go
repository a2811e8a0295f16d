package model

import "testing"

func TestHasClassNameIDAttr(t *testing.T) {
	call := &RawNode{Kind: RawCallExpression, Value: &RawNode{Kind: RawMemberExpression, Text: "rh", Text2: "clsRoot"}}
	container := &RawNode{Kind: RawJSXExpressionContainer, Value: call}
	attrRaw := &RawNode{Kind: RawJSXAttribute, Text: "className", Value: container}

	elem := &PlasmicJsxElement{
		NameInID: "Root",
		Attrs:    []*JsxAttr{{Name: "className", Raw: attrRaw}},
	}
	if !elem.HasClassNameIDAttr() {
		t.Errorf("expected HasClassNameIDAttr to detect rh.clsRoot()")
	}
	if elem.HasPropsIDSpreador() {
		t.Errorf("did not expect HasPropsIDSpreador to match a className attr")
	}
}

func TestHasPropsIDSpreador(t *testing.T) {
	call := &RawNode{Kind: RawCallExpression, Value: &RawNode{Kind: RawMemberExpression, Text: "rh", Text2: "propsRoot"}}
	attrRaw := &RawNode{Kind: RawJSXSpreadAttribute, Value: call}

	elem := &PlasmicJsxElement{
		NameInID: "Root",
		Attrs:    []*JsxAttr{{Spread: true, Raw: attrRaw}},
	}
	if !elem.HasPropsIDSpreador() {
		t.Errorf("expected HasPropsIDSpreador to detect rh.propsRoot()")
	}
}

func TestHasShowFuncCallDirectAndWrapped(t *testing.T) {
	call := &RawNode{Kind: RawCallExpression, Value: &RawNode{Kind: RawMemberExpression, Text: "rh", Text2: "showRoot"}}
	if !HasShowFuncCall(call, "Root") {
		t.Errorf("expected direct call to match")
	}

	elem := &RawNode{Kind: RawJSXElement, Text: "div"}
	wrapped := &RawNode{Kind: RawLogicalAnd, Children: []*RawNode{call, elem}}
	if !HasShowFuncCall(wrapped, "Root") {
		t.Errorf("expected wrapped call to match")
	}

	if HasShowFuncCall(elem, "Root") {
		t.Errorf("a bare element should never match HasShowFuncCall")
	}
}

func TestOnMemberNameRoundTrip(t *testing.T) {
	member := OnMemberName("Root", "Click")
	if member != "onRootClick" {
		t.Errorf("got %q, want %q", member, "onRootClick")
	}
	suffix, ok := OnMemberSuffix(member, "Root")
	if !ok || suffix != "Click" {
		t.Errorf("got suffix=%q ok=%v, want Click/true", suffix, ok)
	}
	if _, ok := OnMemberSuffix(member, "Other"); ok {
		t.Errorf("expected OnMemberSuffix to reject a non-matching nameInID")
	}
}
