package importmerge

import (
	"testing"

	"github.com/plasmerge/plasmerge/pkg/model"
)

func managedImport(module, id, typ string, named ...[2]string) *model.RawNode {
	trailing := "// plasmic-import: " + id
	if typ != "" {
		trailing += "/" + typ
	}
	var specs []*model.RawNode
	for _, n := range named {
		specs = append(specs, &model.RawNode{Kind: model.RawImportSpecifier, Text: n[0], Text2: n[1]})
	}
	return &model.RawNode{Kind: model.RawImportDeclaration, Text: module, TrailingComment: trailing, Children: specs}
}

func TestParseManaged(t *testing.T) {
	info, ok := ParseManaged("// plasmic-import: Button/component")
	if !ok || info.ID != "Button" || info.Type != "component" || !info.HasType {
		t.Fatalf("got %+v ok=%v", info, ok)
	}

	info, ok = ParseManaged("// plasmic-import: Button")
	if !ok || info.ID != "Button" || info.HasType {
		t.Fatalf("got %+v ok=%v", info, ok)
	}

	if _, ok := ParseManaged("// just a comment"); ok {
		t.Fatalf("expected no match for an unrelated comment")
	}
}

func TestPartition(t *testing.T) {
	managed := managedImport("./Button", "Button", "component")
	unmanaged := &model.RawNode{Kind: model.RawImportDeclaration, Text: "react"}

	gotManaged, gotUnmanaged := Partition([]*model.RawNode{managed, unmanaged})
	if len(gotManaged) != 1 || len(gotUnmanaged) != 1 {
		t.Fatalf("got managed=%d unmanaged=%d, want 1 and 1", len(gotManaged), len(gotUnmanaged))
	}
}

func TestMergeDedupesSameIDAndType(t *testing.T) {
	edited := []*model.RawNode{managedImport("./Button", "Button", "component", [2]string{"Label", "Label"})}
	incoming := []*model.RawNode{managedImport("./Button", "Button", "component", [2]string{"Icon", "Icon"})}

	out := Merge(edited, incoming)
	if len(out) != 1 {
		t.Fatalf("expected the two declarations to merge into one, got %d", len(out))
	}
	if len(out[0].Children) != 2 {
		t.Fatalf("expected both named specifiers to survive the merge, got %+v", out[0].Children)
	}
}

func TestMergeKeepsDistinctIDsSeparate(t *testing.T) {
	edited := []*model.RawNode{managedImport("./Button", "Button", "component")}
	incoming := []*model.RawNode{managedImport("./Card", "Card", "component")}

	out := Merge(edited, incoming)
	if len(out) != 2 {
		t.Fatalf("expected two distinct declarations, got %d", len(out))
	}
	if out[0].TrailingComment > out[1].TrailingComment {
		t.Errorf("expected declarations sorted by id ascending")
	}
}

func TestMergeOrdersUntypedBeforeTyped(t *testing.T) {
	edited := []*model.RawNode{managedImport("./a.css", "Button", "css")}
	incoming := []*model.RawNode{managedImport("./Button", "Button", "")}

	out := Merge(edited, incoming)
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
	first, _ := ParseManaged(out[0].TrailingComment)
	if first.HasType {
		t.Errorf("expected the untyped import to sort first, got %+v", first)
	}
}
