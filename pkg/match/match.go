// Package match implements cross-version node identity resolution: whether
// a node in one version corresponds to a node in another, either by direct
// equality of the stable nameInId or equality of the underlying entity uuid.
package match

import (
	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/pkg/model"
)

// ResultKind classifies how a candidate list matched a probe node.
type ResultKind int

const (
	// None means no candidate of the same variant was found.
	None ResultKind = iota
	// Type means a candidate of the same variant was found but it is not
	// identity-equivalent to the probe.
	Type
	// Perfect means the matched candidate is identity-equivalent to the
	// probe (same value/argName/nameInId-or-uuid, as appropriate to variant).
	Perfect
)

// Result is the outcome of FindMatch: the kind of match found and, when
// found, its index in the candidate slice.
type Result struct {
	Kind  ResultKind
	Index int
}

// EquivFunc decides whether two tag-or-component nodes from different
// versions are the same logical node, given their nameInId strings. Callers
// parameterize this per version pair (new<->edited, edited<->base, ...) so
// it can consult the right pair of uuid maps.
type EquivFunc func(nameInIDCandidate, nameInIDProbe string) bool

// FindMatch scans nodes starting at index start for the best match to probe,
// per the per-variant rules in spec §4.1.
func FindMatch(nodes []model.PlasmicNode, start int, equiv EquivFunc, probe model.PlasmicNode) Result {
	if start < 0 {
		start = 0
	}
	typeIdx := -1
	for i := start; i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind() != probe.Kind() {
			continue
		}
		switch probe.Kind() {
		case model.KindText:
			if n.(*model.Text).Value == probe.(*model.Text).Value {
				return Result{Kind: Perfect, Index: i}
			}
			if typeIdx == -1 {
				typeIdx = i
			}
		case model.KindStringLit:
			if n.(*model.StringLit).Value == probe.(*model.StringLit).Value {
				return Result{Kind: Perfect, Index: i}
			}
			if typeIdx == -1 {
				typeIdx = i
			}
		case model.KindArg:
			if n.(*model.Arg).ArgName == probe.(*model.Arg).ArgName {
				return Result{Kind: Perfect, Index: i}
			}
			if typeIdx == -1 {
				typeIdx = i
			}
		case model.KindCondStrCall:
			// At most one expected per sibling list: first occurrence of
			// the same variant is always a perfect match.
			return Result{Kind: Perfect, Index: i}
		case model.KindTagOrComponent:
			nt := n.(*model.TagOrComponent)
			pt := probe.(*model.TagOrComponent)
			if equiv(nt.Elem.NameInID, pt.Elem.NameInID) {
				return Result{Kind: Perfect, Index: i}
			}
			if typeIdx == -1 {
				typeIdx = i
			}
		case model.KindOpaque:
			if typeIdx == -1 {
				typeIdx = i
			}
		}
	}
	if typeIdx != -1 {
		return Result{Kind: Type, Index: typeIdx}
	}
	return Result{Kind: None}
}

// UUIDLookup resolves a version's nameInId->uuid map.
type UUIDLookup func(nameInID string) (uuid.UUID, bool)

// DirectOrUUID builds an EquivFunc from two nameInId->uuid lookups: nodes
// are equivalent when their nameInId strings match directly, or when both
// sides have a uuid entry and those uuids match.
func DirectOrUUID(getCandidateUUID, getProbeUUID UUIDLookup) EquivFunc {
	return func(nameInIDCandidate, nameInIDProbe string) bool {
		if nameInIDCandidate == nameInIDProbe {
			return true
		}
		cu, ok1 := getCandidateUUID(nameInIDCandidate)
		pu, ok2 := getProbeUUID(nameInIDProbe)
		if !ok1 || !ok2 {
			return false
		}
		return cu == pu
	}
}
