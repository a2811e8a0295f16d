// Package attrmerge reconciles the attribute list of a paired node across
// the three versions of a merge, applying the conflict-resolution table and
// the shape-A/shape-B rewrites from spec §4.2.
package attrmerge

import "github.com/plasmerge/plasmerge/pkg/model"

// resolution is the outcome of the conflict table for a single named
// attribute present in both new and edited.
type resolution int

const (
	emitEdited resolution = iota
	emitNew
	emitBoth
)

// resolve implements the conflict table. base may be nil (attribute absent
// from the base version).
func resolve(name string, base, edited, newAttr *model.RawNode) resolution {
	if model.DeepEqualIgnoringComments(edited, newAttr) {
		return emitEdited
	}
	if base == nil {
		return emitBoth
	}
	if model.DeepEqualIgnoringComments(base, edited) {
		return emitNew
	}
	if hasOnPrefix(name) || model.DeepEqualIgnoringComments(base, newAttr) {
		return emitEdited
	}
	return emitBoth
}

func hasOnPrefix(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n'
}

func attrByName(elem *model.PlasmicJsxElement, name string) *model.JsxAttr {
	if elem == nil {
		return nil
	}
	for _, a := range elem.Attrs {
		if !a.Spread && a.Name == name {
			return a
		}
	}
	return nil
}

// Merge reconciles newElem, editedElem, and (optionally nil) baseElem's
// attribute lists into the merged node's output attribute list.
// editedNameInID and newNameInID are the respective elements' NameInID;
// they differ exactly when the node was renamed between base and new.
func Merge(newElem, editedElem, baseElem *model.PlasmicJsxElement) []*model.JsxAttr {
	var out []*model.JsxAttr

	editedNameInID := editedElem.NameInID
	newNameInID := newElem.NameInID

	// Step 1 — insert new-only attributes.
	for _, na := range newElem.Attrs {
		if na.Spread || na.Name == "className" {
			continue
		}
		ea := attrByName(editedElem, na.Name)
		if ea != nil {
			ba := attrByName(baseElem, na.Name)
			var baseRaw *model.RawNode
			if ba != nil {
				baseRaw = ba.Raw
			}
			switch resolve(na.Name, baseRaw, ea.Raw, na.Raw) {
			case emitNew, emitBoth:
				out = append(out, cloneAttr(na))
			}
			continue
		}
		if attrByName(baseElem, na.Name) != nil {
			// Developer deleted it; preserve the deletion.
			continue
		}
		// Newly added by the tool.
		out = append(out, cloneAttr(na))
	}

	// Step 2 — walk edited attributes in order.
	for _, ea := range editedElem.Attrs {
		switch {
		case ea.Spread && isManagedPropsSpread(ea, editedNameInID):
			out = append(out, mergeSpreadAttr(ea, newElem, editedNameInID, newNameInID)...)
		case !ea.Spread && ea.Name == "className" && isManagedClassAttr(ea, editedNameInID):
			out = append(out, mergeClassAttr(newElem, editedNameInID, newNameInID))
		case ea.Spread:
			// Developer opaque spread: preserved as-is.
			out = append(out, cloneAttr(ea))
		default:
			if merged := emitAttrInEditedNode(ea, newElem, baseElem, editedNameInID, newNameInID); merged != nil {
				out = append(out, merged)
			}
		}
	}

	return out
}

func isManagedPropsSpread(a *model.JsxAttr, nameInID string) bool {
	return a.Spread && spreadCallName(a.Raw) == model.PropsName(nameInID)
}

func isManagedClassAttr(a *model.JsxAttr, nameInID string) bool {
	return !a.Spread && a.Name == "className" && classCallName(a.Raw) == model.ClsName(nameInID)
}

func spreadCallName(raw *model.RawNode) string {
	if raw == nil || raw.Value == nil || raw.Value.Kind != model.RawCallExpression || raw.Value.Value == nil {
		return ""
	}
	return raw.Value.Value.Text2
}

func classCallName(raw *model.RawNode) string {
	if raw == nil || raw.Value == nil {
		return ""
	}
	expr := raw.Value
	if expr.Kind == model.RawJSXExpressionContainer {
		expr = expr.Value
	}
	if expr == nil || expr.Kind != model.RawCallExpression || expr.Value == nil {
		return ""
	}
	return expr.Value.Text2
}

// mergeSpreadAttr handles an edited shape-A ({...rh.propsX()}) attribute.
func mergeSpreadAttr(ea *model.JsxAttr, newElem *model.PlasmicJsxElement, editedNameInID, newNameInID string) []*model.JsxAttr {
	if newElem.HasPropsIDSpreador() {
		rewritten := model.RewriteExactMemberName(ea.Raw, model.PropsName(editedNameInID), model.PropsName(newNameInID))
		return []*model.JsxAttr{{Spread: true, Raw: rewritten}}
	}
	// New uses shape B: downgrade to className, but keep the old spread
	// alongside if the developer appended extra call arguments, forcing a
	// compile error that surfaces the divergence for human review.
	replacement := buildClassAttr(newNameInID)
	if spreadHasArgs(ea.Raw) {
		return []*model.JsxAttr{replacement, cloneAttr(ea)}
	}
	return []*model.JsxAttr{replacement}
}

func spreadHasArgs(raw *model.RawNode) bool {
	if raw == nil || raw.Value == nil || raw.Value.Kind != model.RawCallExpression {
		return false
	}
	return len(raw.Value.Children) > 0
}

// mergeClassAttr handles an edited shape-B (className={rh.clsX()}) attribute.
func mergeClassAttr(newElem *model.PlasmicJsxElement, editedNameInID, newNameInID string) *model.JsxAttr {
	if newElem.HasPropsIDSpreador() {
		return buildPropsSpreadAttr(newNameInID)
	}
	return buildClassAttr(newNameInID)
}

func buildClassAttr(nameInID string) *model.JsxAttr {
	member := &model.RawNode{Kind: model.RawMemberExpression, Text: "rh", Text2: model.ClsName(nameInID)}
	call := &model.RawNode{Kind: model.RawCallExpression, Value: member}
	container := &model.RawNode{Kind: model.RawJSXExpressionContainer, Value: call}
	raw := &model.RawNode{Kind: model.RawJSXAttribute, Text: "className", Value: container}
	return &model.JsxAttr{Name: "className", Raw: raw}
}

func buildPropsSpreadAttr(nameInID string) *model.JsxAttr {
	member := &model.RawNode{Kind: model.RawMemberExpression, Text: "rh", Text2: model.PropsName(nameInID)}
	call := &model.RawNode{Kind: model.RawCallExpression, Value: member}
	raw := &model.RawNode{Kind: model.RawJSXSpreadAttribute, Value: call}
	return &model.JsxAttr{Spread: true, Raw: raw}
}

// emitAttrInEditedNode decides the fate of an ordinary (non-managed) named
// attribute found in the edited node, per spec §4.2's third bullet.
func emitAttrInEditedNode(ea *model.JsxAttr, newElem *model.PlasmicJsxElement, baseElem *model.PlasmicJsxElement, editedNameInID, newNameInID string) *model.JsxAttr {
	na := attrByName(newElem, ea.Name)
	var emit bool
	if na != nil {
		ba := attrByName(baseElem, ea.Name)
		var baseRaw *model.RawNode
		if ba != nil {
			baseRaw = ba.Raw
		}
		switch resolve(ea.Name, baseRaw, ea.Raw, na.Raw) {
		case emitEdited, emitBoth:
			emit = true
		}
	} else if attrByName(baseElem, ea.Name) == nil {
		// Developer-added; new version never had it.
		emit = true
	} else {
		// Tool deleted it; drop.
		emit = false
	}
	if !emit {
		return nil
	}
	out := cloneAttr(ea)
	if hasOnPrefix(ea.Name) && editedNameInID != newNameInID {
		out.Raw = model.RewritePrefixedMemberNames(out.Raw, "on"+editedNameInID, "on"+newNameInID)
	}
	return out
}

func cloneAttr(a *model.JsxAttr) *model.JsxAttr {
	return &model.JsxAttr{
		Spread: a.Spread,
		Name:   a.Name,
		Value:  a.Value,
		Raw:    model.Clone(a.Raw, nil),
	}
}
