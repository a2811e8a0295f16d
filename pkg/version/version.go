// Package version holds the per-version indices the merge engine consults
// to resolve node identity across the base, edited, and new files.
package version

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/pkg/model"
)

// CodeVersion is one of the three inputs to a merge: the parsed file, its
// root managed expression, and the indices derived from it. All three
// version trees are read-only for the duration of a merge.
type CodeVersion struct {
	File *model.RawNode // the parsed Program
	Root model.PlasmicNode

	// nameInIDToUUID maps the stable identifier embedded in generated markup
	// to the cross-version entity UUID. Equality of uuid is only defined
	// when both versions being compared provide an entry for the name in
	// question.
	nameInIDToUUID map[string]uuid.UUID

	// byNameInID indexes tag-or-component nodes by their nameInId for O(1)
	// lookup during serialization.
	byNameInID map[string]*model.TagOrComponent
}

// New builds a CodeVersion from a classified root node and its identifier
// map. It asserts the shape invariant from spec §3 on ingest: every
// tag-or-component node must satisfy HasClassNameIDAttr XOR
// HasPropsIDSpreador.
func New(file *model.RawNode, root model.PlasmicNode, nameInIDToUUID map[string]uuid.UUID) (*CodeVersion, error) {
	v := &CodeVersion{
		File:           file,
		Root:           root,
		nameInIDToUUID: nameInIDToUUID,
		byNameInID:     make(map[string]*model.TagOrComponent),
	}
	if err := v.index(root); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *CodeVersion) index(n model.PlasmicNode) error {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *model.TagOrComponent:
		classB := t.Elem.HasClassNameIDAttr()
		classA := t.Elem.HasPropsIDSpreador()
		if classA == classB {
			return fmt.Errorf("plasmerge/version: invariant violation on node %q: hasClassNameIdAttr=%v hasPropsIdSpreador=%v, want exactly one",
				t.Elem.NameInID, classB, classA)
		}
		v.byNameInID[t.Elem.NameInID] = t
		for _, child := range t.Elem.Children {
			if err := v.index(child); err != nil {
				return err
			}
		}
	case *model.Arg:
		for _, tag := range t.Tags {
			if err := v.index(tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindByNameInID looks up a tag-or-component node by its stable name.
func (v *CodeVersion) FindByNameInID(nameInID string) *model.TagOrComponent {
	return v.byNameInID[nameInID]
}

// FindByIdentity looks up the tag-or-component node in this version that
// corresponds to nameInID in another version: first by direct name match,
// falling back to a uuid-equivalence scan (getProbeUUID resolves nameInID's
// uuid in the probing version) so a node renamed between versions is still
// found by its stable entity identity.
func (v *CodeVersion) FindByIdentity(nameInID string, getProbeUUID func(string) (uuid.UUID, bool)) *model.TagOrComponent {
	if t := v.byNameInID[nameInID]; t != nil {
		return t
	}
	probeID, ok := getProbeUUID(nameInID)
	if !ok {
		return nil
	}
	for candidateName, t := range v.byNameInID {
		if candidateID, ok := v.nameInIDToUUID[candidateName]; ok && candidateID == probeID {
			return t
		}
	}
	return nil
}

// GetUUID returns the entity UUID registered for nameInID and whether an
// entry exists.
func (v *CodeVersion) GetUUID(nameInID string) (uuid.UUID, bool) {
	id, ok := v.nameInIDToUUID[nameInID]
	return id, ok
}

// HasClassNameIDAttr reports whether the node with the given nameInId in
// this version carries the managed className shape.
func (v *CodeVersion) HasClassNameIDAttr(nameInID string) bool {
	t := v.byNameInID[nameInID]
	return t != nil && t.Elem.HasClassNameIDAttr()
}

// HasPropsIDSpreador reports whether the node with the given nameInId in
// this version carries the managed spread-properties shape.
func (v *CodeVersion) HasPropsIDSpreador(nameInID string) bool {
	t := v.byNameInID[nameInID]
	return t != nil && t.Elem.HasPropsIDSpreador()
}

// HasShowFuncCall reports whether the node with the given nameInId in this
// version is wrapped by (or is) a call to rh.show<nameInId>().
func (v *CodeVersion) HasShowFuncCall(nameInID string) bool {
	t := v.byNameInID[nameInID]
	if t == nil {
		return false
	}
	return model.HasShowFuncCall(t.Wrapper, nameInID)
}
