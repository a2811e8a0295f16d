package serialize

import (
	"testing"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/pkg/model"
	"github.com/plasmerge/plasmerge/pkg/version"
)

// rootElem builds a minimal tag-or-component shaped with the managed
// className attribute (shape B) and the given text children.
func rootElem(nameInID string, children ...model.PlasmicNode) *model.TagOrComponent {
	call := &model.RawNode{Kind: model.RawCallExpression, Value: &model.RawNode{Kind: model.RawMemberExpression, Text: "rh", Text2: model.ClsName(nameInID)}}
	attrRaw := &model.RawNode{Kind: model.RawJSXAttribute, Text: "className", Value: &model.RawNode{Kind: model.RawJSXExpressionContainer, Value: call}}
	var rawChildren []*model.RawNode
	for _, c := range children {
		rawChildren = append(rawChildren, c.RawExpr())
	}
	elemRaw := &model.RawNode{Kind: model.RawJSXElement, Start: 1000, Text: "div", Attrs: []*model.RawNode{attrRaw}, Children: rawChildren}
	elem := &model.PlasmicJsxElement{
		NameInID: nameInID,
		Element:  elemRaw,
		Attrs:    []*model.JsxAttr{{Name: "className", Raw: attrRaw}},
		Children: children,
	}
	return &model.TagOrComponent{Wrapper: elemRaw, Elem: elem}
}

func textChild(v string) *model.Text {
	return &model.Text{Value: v, Raw: &model.RawNode{Kind: model.RawJSXText, Text: v}}
}

func TestSerializeNodePreservesDeveloperTextEdit(t *testing.T) {
	rootID := uuid.New()
	ids := map[string]uuid.UUID{"Root": rootID}

	base := rootElem("Root")
	edited := rootElem("Root", textChild("Hello from a developer"))
	newTag := rootElem("Root")

	baseVer, err := version.New(nil, base, ids)
	if err != nil {
		t.Fatalf("base version error: %v", err)
	}
	editedVer, err := version.New(nil, edited, ids)
	if err != nil {
		t.Fatalf("edited version error: %v", err)
	}
	newVer, err := version.New(nil, newTag, ids)
	if err != nil {
		t.Fatalf("new version error: %v", err)
	}

	s := New(newVer, editedVer, baseVer)
	raw, ok, err := s.SerializeNode(newTag)
	if err != nil {
		t.Fatalf("SerializeNode error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true, the root node is never deleted in this scenario")
	}
	if len(raw.Children) != 1 || raw.Children[0].Text != "Hello from a developer" {
		t.Fatalf("expected the developer's text child preserved, got %+v", raw.Children)
	}
}

func TestSerializeNodeDropsNodeDeletedByDeveloper(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	ids := map[string]uuid.UUID{"Root": rootID, "Child": childID}

	childTag := rootElem("Child")
	base := rootElem("Root", childTag)
	edited := rootElem("Root") // developer deleted Child
	newTag := rootElem("Root", rootElem("Child"))

	baseVer, _ := version.New(nil, base, ids)
	editedVer, _ := version.New(nil, edited, ids)
	newVer, _ := version.New(nil, newTag, ids)

	s := New(newVer, editedVer, baseVer)
	raw, ok, err := s.SerializeNode(newTag)
	if err != nil {
		t.Fatalf("SerializeNode error: %v", err)
	}
	if !ok {
		t.Fatalf("expected the root itself to survive")
	}
	if len(raw.Children) != 0 {
		t.Fatalf("expected the deleted child to be dropped, got %+v", raw.Children)
	}
}
