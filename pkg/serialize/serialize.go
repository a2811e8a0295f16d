// Package serialize orchestrates the attribute merger, children merger, and
// visibility reconciler per node, deciding per spec §4.5 whether to emit
// the new version verbatim, the edited version (possibly transformed), a
// merged hybrid, or nothing.
package serialize

import (
	"github.com/plasmerge/plasmerge/pkg/attrmerge"
	"github.com/plasmerge/plasmerge/pkg/childmerge"
	"github.com/plasmerge/plasmerge/pkg/match"
	"github.com/plasmerge/plasmerge/pkg/model"
	"github.com/plasmerge/plasmerge/pkg/version"
	"github.com/plasmerge/plasmerge/pkg/visibility"
)

// Serializer walks the new version's tree, reconciling each node against
// its edited/base counterparts.
type Serializer struct {
	newVer, editedVer, baseVer *version.CodeVersion
	equiv                      match.EquivFunc
}

// New builds a Serializer over the three version trees of a single merge.
func New(newVer, editedVer, baseVer *version.CodeVersion) *Serializer {
	return &Serializer{
		newVer:    newVer,
		editedVer: editedVer,
		baseVer:   baseVer,
		equiv:     match.DirectOrUUID(newVer.GetUUID, editedVer.GetUUID),
	}
}

// SerializeNode dispatches a node from the new tree to the appropriate
// variant handler. ok=false means the node was deleted by the developer.
func (s *Serializer) SerializeNode(n model.PlasmicNode) (raw *model.RawNode, ok bool, err error) {
	switch t := n.(type) {
	case *model.Opaque:
		return t.Raw, true, nil
	case *model.Text:
		return t.Raw, true, nil
	case *model.StringLit:
		return t.Raw, true, nil
	case *model.CondStrCall:
		return t.Raw, true, nil
	case *model.Arg:
		return s.serializeArg(t)
	case *model.TagOrComponent:
		return s.serializeTagOrComponent(t)
	default:
		return nil, false, nil
	}
}

func (s *Serializer) serializeArg(newArg *model.Arg) (*model.RawNode, bool, error) {
	subs := make(map[int]*model.RawNode, len(newArg.Tags))
	for _, tag := range newArg.Tags {
		raw, ok, err := s.serializeTagOrComponent(tag)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			raw = &model.RawNode{Kind: model.RawNullLiteral, Text: "null"}
		}
		subs[tag.Wrapper.Start] = raw
	}
	result := model.Clone(newArg.Raw, func(n *model.RawNode) (*model.RawNode, bool) {
		if r, found := subs[n.Start]; found {
			return r, true
		}
		return nil, false
	})
	return result, true, nil
}

func (s *Serializer) serializeTagOrComponent(newTag *model.TagOrComponent) (*model.RawNode, bool, error) {
	nameInID := newTag.Elem.NameInID
	editedTag := s.editedVer.FindByIdentity(nameInID, s.newVer.GetUUID)
	baseTag := s.baseVer.FindByIdentity(nameInID, s.newVer.GetUUID)

	if editedTag == nil && baseTag != nil {
		// Developer deleted it.
		return nil, false, nil
	}
	if editedTag == nil && baseTag == nil {
		// Brand new node from the tool.
		return model.Clone(newTag.Wrapper, nil), true, nil
	}
	return s.mergeTagOrComponent(newTag, editedTag, baseTag)
}

func (s *Serializer) mergeTagOrComponent(newTag, editedTag, baseTag *model.TagOrComponent) (*model.RawNode, bool, error) {
	var baseElem *model.PlasmicJsxElement
	if baseTag != nil {
		baseElem = baseTag.Elem
	}

	attrs := attrmerge.Merge(newTag.Elem, editedTag.Elem, baseElem)
	rawAttrs := make([]*model.RawNode, 0, len(attrs))
	for _, a := range attrs {
		rawAttrs = append(rawAttrs, a.Raw)
	}

	children, err := childmerge.Merge(newTag.Elem, editedTag.Elem, baseElem, s.equiv, s.SerializeNode)
	if err != nil {
		return nil, false, err
	}

	editedRawElem := editedTag.Elem.Element
	selfClosing := editedRawElem.SelfClosing && len(children) == 0

	mergedElement := &model.RawNode{
		Kind:        model.RawJSXElement,
		Start:       editedRawElem.Start,
		Text:        editedRawElem.Text,
		SelfClosing: selfClosing,
		Attrs:       rawAttrs,
		Children:    children,
	}

	editedWrapperClone := model.Clone(editedTag.Wrapper, func(n *model.RawNode) (*model.RawNode, bool) {
		if n.Start == editedRawElem.Start {
			return mergedElement, true
		}
		return nil, false
	})

	editedHasShow := model.HasShowFuncCall(editedTag.Wrapper, editedTag.Elem.NameInID)
	newHasShow := model.HasShowFuncCall(newTag.Wrapper, newTag.Elem.NameInID)

	final := visibility.Reconcile(editedHasShow, newHasShow, editedWrapperClone, mergedElement.Start, editedTag.Elem.NameInID, newTag.Elem.NameInID)
	return final, true, nil
}
