package childmerge

import (
	"testing"

	"github.com/plasmerge/plasmerge/pkg/model"
)

func sameName(a, b string) bool { return a == b }

func passthroughSerialize(n model.PlasmicNode) (*model.RawNode, bool, error) {
	return n.RawExpr(), true, nil
}

func textNode(v string) *model.Text {
	return &model.Text{Value: v, Raw: &model.RawNode{Kind: model.RawJSXText, Text: v}}
}

func opaqueNode(tag string) *model.Opaque {
	return &model.Opaque{Raw: &model.RawNode{Kind: model.RawOpaqueExpression, Text: tag}}
}

func tagNode(nameInID string) *model.TagOrComponent {
	elem := &model.PlasmicJsxElement{NameInID: nameInID, Element: &model.RawNode{Kind: model.RawJSXElement, Text: nameInID}}
	return &model.TagOrComponent{Wrapper: elem.Element, Elem: elem}
}

func TestMergePreservesDeveloperInsertedText(t *testing.T) {
	newElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("Hello")}}
	editedElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("Hello"), textNode("World")}}

	out, err := Merge(newElem, editedElem, nil, sameName, passthroughSerialize)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d children, want 2 (Hello, World)", len(out))
	}
	if out[1].Text != "World" {
		t.Errorf("got %q, want %q", out[1].Text, "World")
	}
}

func TestMergeHonorsToolDeletionOfDeveloperText(t *testing.T) {
	newElem := &model.PlasmicJsxElement{Children: nil}
	editedElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("Stale")}}
	baseElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("Stale")}}

	out, err := Merge(newElem, editedElem, baseElem, sameName, passthroughSerialize)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected the tool's deletion to be honored, got %+v", out)
	}
}

func TestMergePrependsAtStartWithNoPredecessor(t *testing.T) {
	newElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("Existing")}}
	editedElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{opaqueNode("<img/>"), textNode("Existing")}}

	out, err := Merge(newElem, editedElem, nil, sameName, passthroughSerialize)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(out) != 2 || out[0].Text != "<img/>" {
		t.Fatalf("expected the opaque node prepended at index 0, got %+v", out)
	}
}

// Anchoring searches for the predecessor's match "at or after the cursor",
// preferring a perfect match but falling back to any candidate of the same
// variant. A predecessor that was already consumed by an earlier text match
// sits behind the cursor by the time the anchor search runs, so the search
// falls back to the next same-kind node (B) instead of finding A. Because
// that fallback is not an identity match, the insert lands immediately
// before B rather than after it, and the cursor only advances past the
// freshly inserted node — so B itself is still found (and not duplicated)
// when its own turn in the edited list comes up. Net result: A, <br/>, B,
// with <br/> correctly anchored between its real neighbors.
func TestMergeAnchorFallsBackToSameKindNodeAtOrAfterCursor(t *testing.T) {
	newElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("A"), textNode("B")}}
	editedElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{textNode("A"), opaqueNode("<br/>"), textNode("B")}}

	out, err := Merge(newElem, editedElem, nil, sameName, passthroughSerialize)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d children, want 3 (no duplicate B), got %+v", len(out), out)
	}
	if out[0].Text != "A" || out[1].Text != "<br/>" || out[2].Text != "B" {
		t.Fatalf("expected A, <br/>, B in order, got %v, %v, %v", out[0].Text, out[1].Text, out[2].Text)
	}
}

// Tag-or-component children don't advance the cursor through Merge's own
// loop (they flow through recursive serialization instead), so anchoredInsert
// locating a tag predecessor is the only thing standing between an opaque
// sibling and the wrong position. A tag probe that truly matches (Perfect)
// must still be skipped past, same as the text case, leaving the opaque
// sibling right after it rather than before it.
func TestMergeAnchorAfterPerfectTagMatch(t *testing.T) {
	card := tagNode("Card")
	newElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{card}}
	editedElem := &model.PlasmicJsxElement{Children: []model.PlasmicNode{card, opaqueNode("<hr/>")}}

	out, err := Merge(newElem, editedElem, nil, sameName, passthroughSerialize)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d children, want 2 (Card, then hr), got %+v", len(out), out)
	}
	if out[1].Text != "<hr/>" {
		t.Fatalf("expected <hr/> anchored right after Card, got %v", out[1].Text)
	}
}
