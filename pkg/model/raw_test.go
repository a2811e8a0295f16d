package model

import "testing"

func TestCloneCopiesStartVerbatim(t *testing.T) {
	n := &RawNode{Kind: RawStringLiteral, Start: 42, Text: "hi"}
	clone := Clone(n, nil)
	if clone.Start != 42 {
		t.Errorf("Start not preserved across Clone: got %d, want 42", clone.Start)
	}
	if clone == n {
		t.Errorf("Clone returned the same pointer, want a fresh copy")
	}
}

func TestCloneHookReplacesWithoutDescending(t *testing.T) {
	inner := &RawNode{Kind: RawStringLiteral, Start: 2, Text: "old"}
	root := &RawNode{Kind: RawJSXExpressionContainer, Start: 1, Value: inner}

	replacement := &RawNode{Kind: RawStringLiteral, Start: 2, Text: "new"}
	got := Clone(root, func(n *RawNode) (*RawNode, bool) {
		if n.Start == 2 {
			return replacement, true
		}
		return nil, false
	})

	if got.Value != replacement {
		t.Errorf("hook replacement not used verbatim")
	}
	if got.Value.Text != "new" {
		t.Errorf("got %q, want %q", got.Value.Text, "new")
	}
}

func TestCloneDeepCopiesChildrenAndAttrs(t *testing.T) {
	attr := &RawNode{Kind: RawJSXAttribute, Start: 2, Text: "id"}
	child := &RawNode{Kind: RawJSXText, Start: 3, Text: "hello"}
	elem := &RawNode{Kind: RawJSXElement, Start: 1, Text: "div", Attrs: []*RawNode{attr}, Children: []*RawNode{child}}

	clone := Clone(elem, nil)
	clone.Attrs[0].Text = "mutated"
	clone.Children[0].Text = "mutated"

	if attr.Text != "id" {
		t.Errorf("original attr mutated through clone: %q", attr.Text)
	}
	if child.Text != "hello" {
		t.Errorf("original child mutated through clone: %q", child.Text)
	}
}

func TestFindByStart(t *testing.T) {
	target := &RawNode{Kind: RawJSXText, Start: 5, Text: "target"}
	root := &RawNode{Kind: RawJSXElement, Start: 1, Children: []*RawNode{
		{Kind: RawJSXText, Start: 2, Text: "other"},
		target,
	}}

	found := FindByStart(root, 5)
	if found != target {
		t.Errorf("FindByStart did not locate the node at Start=5")
	}

	if FindByStart(root, 999) != nil {
		t.Errorf("FindByStart should return nil for an absent Start")
	}
}
