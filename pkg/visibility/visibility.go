// Package visibility reconciles the tool-managed "visibility gate" wrapping
// a markup subtree (rh.show<X>() && <markup>), per spec §4.4.
package visibility

import "github.com/plasmerge/plasmerge/pkg/model"

// Reconcile applies the add/remove/rename table from spec §4.4.
//
// editedHasShow/newHasShow are the E/N booleans from the table.
// editedWrapperClone is the already-built clone of the edited version's
// wrapper expression with the merged element spliced in at the position of
// the original edited JSXElement (mergedElementStart). editedNameInID and
// newNameInID are used to build/rewrite the managed show<X> member name.
func Reconcile(editedHasShow, newHasShow bool, editedWrapperClone *model.RawNode, mergedElementStart int, editedNameInID, newNameInID string) *model.RawNode {
	switch {
	case editedHasShow && newHasShow:
		return model.RewriteExactMemberName(editedWrapperClone, model.ShowName(editedNameInID), model.ShowName(newNameInID))
	case editedHasShow && !newHasShow:
		return replaceShowCallWithTrue(editedWrapperClone, editedNameInID)
	case !editedHasShow && newHasShow:
		return wrapAt(editedWrapperClone, mergedElementStart, model.ShowName(newNameInID))
	default:
		return editedWrapperClone
	}
}

func replaceShowCallWithTrue(raw *model.RawNode, nameInID string) *model.RawNode {
	want := model.ShowName(nameInID)
	return model.Clone(raw, func(n *model.RawNode) (*model.RawNode, bool) {
		if n.Kind == model.RawCallExpression && n.Value != nil && n.Value.Kind == model.RawMemberExpression && n.Value.Text2 == want {
			return &model.RawNode{Kind: model.RawBooleanLiteral, Text: "true"}, true
		}
		return nil, false
	})
}

// wrapAt wraps the node at targetStart (found by source-position identity)
// in a LogicalAndExpression gated by rh.<showMember>(). If root itself is
// the target (the edited node had no wrapper at all), it is wrapped
// directly; otherwise the target is located and replaced in place.
func wrapAt(root *model.RawNode, targetStart int, showMember string) *model.RawNode {
	if root != nil && root.Start == targetStart {
		return buildShowWrap(showMember, root)
	}
	return model.Clone(root, func(n *model.RawNode) (*model.RawNode, bool) {
		if n.Start == targetStart {
			return buildShowWrap(showMember, n), true
		}
		return nil, false
	})
}

func buildShowWrap(showMember string, markup *model.RawNode) *model.RawNode {
	callee := &model.RawNode{Kind: model.RawMemberExpression, Text: "rh", Text2: showMember}
	call := &model.RawNode{Kind: model.RawCallExpression, Value: callee}
	return &model.RawNode{Kind: model.RawLogicalAnd, Children: []*model.RawNode{call, markup}}
}
