// Package childmerge interleaves the children list of the new version with
// extra children from the edited version, per spec §4.3.
package childmerge

import (
	"github.com/plasmerge/plasmerge/pkg/match"
	"github.com/plasmerge/plasmerge/pkg/model"
)

// SerializeChild recursively serializes a from-new child node (arg,
// tag-or-component, cond-str-call, text, string-lit) into its final raw
// form. ok=false means the node was deleted by the developer and must be
// omitted entirely from the children list.
type SerializeChild func(model.PlasmicNode) (raw *model.RawNode, ok bool, err error)

// Merge builds the final ordered list of raw child nodes for a merged
// element. baseElem may be nil when the node has no base-version
// counterpart.
func Merge(newElem, editedElem, baseElem *model.PlasmicJsxElement, equiv match.EquivFunc, serialize SerializeChild) ([]*model.RawNode, error) {
	mergedNodes := append([]model.PlasmicNode(nil), newElem.Children...)
	fromEdited := make([]bool, len(mergedNodes))

	var baseChildren []model.PlasmicNode
	if baseElem != nil {
		baseChildren = baseElem.Children
	}

	cursor := 0
	for i, ec := range editedElem.Children {
		switch ec.Kind() {
		case model.KindText, model.KindStringLit:
			if res := match.FindMatch(mergedNodes, cursor, equiv, ec); res.Kind == match.Perfect {
				cursor = res.Index + 1
				continue
			}
			if res := match.FindMatch(baseChildren, 0, equiv, ec); res.Kind == match.Perfect {
				// Tool deleted it; honor the deletion.
				continue
			}
			mergedNodes, fromEdited, cursor = anchoredInsert(mergedNodes, fromEdited, cursor, predecessorOf(editedElem.Children, i), ec, equiv)
		case model.KindOpaque:
			mergedNodes, fromEdited, cursor = anchoredInsert(mergedNodes, fromEdited, cursor, predecessorOf(editedElem.Children, i), ec, equiv)
		default:
			// tag-or-component, arg, cond-str-call: contents flow through
			// recursive serialization of the matching new-list child.
		}
	}

	out := make([]*model.RawNode, 0, len(mergedNodes))
	for j, n := range mergedNodes {
		if fromEdited[j] || n.Kind() == model.KindOpaque {
			out = append(out, n.RawExpr())
			continue
		}
		raw, ok, err := serialize(n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, model.WrapAsJSXChild(raw))
	}
	return out, nil
}

func predecessorOf(children []model.PlasmicNode, i int) model.PlasmicNode {
	if i == 0 {
		return nil
	}
	return children[i-1]
}

// anchoredInsert finds predecessor's match in nodes at or after cursor and
// inserts toInsert immediately after it, or prepends/falls back to cursor
// per spec §4.3's anchoring rule.
//
// A Perfect match means the candidate really is predecessor's counterpart:
// it has already been (or is hereby) consumed, so it is safe to insert
// after it and advance cursor past both. A Type match only means "nothing
// better was found nearby" — the candidate is not actually identity-linked
// to predecessor and may still be the correct match for some later edited
// sibling, so toInsert goes immediately before it instead, and cursor only
// advances past the freshly inserted node, leaving the candidate itself at
// or after cursor for the next lookup to find.
func anchoredInsert(nodes []model.PlasmicNode, fromEdited []bool, cursor int, predecessor, toInsert model.PlasmicNode, equiv match.EquivFunc) ([]model.PlasmicNode, []bool, int) {
	if predecessor == nil {
		nodes, fromEdited = insertAt(nodes, fromEdited, 0, toInsert)
		return nodes, fromEdited, 1
	}
	res := match.FindMatch(nodes, cursor, equiv, predecessor)
	switch res.Kind {
	case match.Perfect:
		nodes, fromEdited = insertAt(nodes, fromEdited, res.Index+1, toInsert)
		return nodes, fromEdited, res.Index + 2
	case match.Type:
		nodes, fromEdited = insertAt(nodes, fromEdited, res.Index, toInsert)
		return nodes, fromEdited, res.Index + 1
	default:
		nodes, fromEdited = insertAt(nodes, fromEdited, cursor, toInsert)
		return nodes, fromEdited, cursor + 1
	}
}

func insertAt(nodes []model.PlasmicNode, fromEdited []bool, idx int, n model.PlasmicNode) ([]model.PlasmicNode, []bool) {
	nodes = append(nodes, nil)
	copy(nodes[idx+1:], nodes[idx:])
	nodes[idx] = n

	fromEdited = append(fromEdited, false)
	copy(fromEdited[idx+1:], fromEdited[idx:])
	fromEdited[idx] = true

	return nodes, fromEdited
}
