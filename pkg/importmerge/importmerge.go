// Package importmerge unions the import declarations of the new and edited
// files, per spec §4.6.
package importmerge

import (
	"regexp"
	"sort"

	"github.com/plasmerge/plasmerge/pkg/model"
)

var managedPattern = regexp.MustCompile(`plasmic-import:\s+([\w-]+)(?:/(component|css|render|globalVariant|projectcss|defaultcss))?`)

// ManagedInfo is the parsed form of a plasmic-import trailing comment.
type ManagedInfo struct {
	ID      string
	Type    string
	HasType bool
}

// ParseManaged extracts the managed-import marker from an import
// declaration's trailing comment, if present.
func ParseManaged(trailingComment string) (ManagedInfo, bool) {
	m := managedPattern.FindStringSubmatch(trailingComment)
	if m == nil {
		return ManagedInfo{}, false
	}
	return ManagedInfo{ID: m[1], Type: m[2], HasType: m[2] != ""}, true
}

// Partition splits an import list into tool-managed and developer-owned
// declarations, preserving relative order within each group.
func Partition(imports []*model.RawNode) (managed, unmanaged []*model.RawNode) {
	for _, imp := range imports {
		if _, ok := ParseManaged(imp.TrailingComment); ok {
			managed = append(managed, imp)
		} else {
			unmanaged = append(unmanaged, imp)
		}
	}
	return managed, unmanaged
}

// less implements the total order over managed imports: primary by id
// ascending, secondary by type ascending with absent type sorting first.
func less(a, b *model.RawNode) bool {
	ia, _ := ParseManaged(a.TrailingComment)
	ib, _ := ParseManaged(b.TrailingComment)
	if ia.ID != ib.ID {
		return ia.ID < ib.ID
	}
	if ia.HasType != ib.HasType {
		return !ia.HasType
	}
	return ia.Type < ib.Type
}

func sameKey(a, b *model.RawNode) bool {
	ia, _ := ParseManaged(a.TrailingComment)
	ib, _ := ParseManaged(b.TrailingComment)
	return ia.ID == ib.ID && ia.HasType == ib.HasType && ia.Type == ib.Type
}

// Merge unions editedManaged and newManaged declarations, deduplicating by
// (id, type) and re-sorting by the total order above. The returned nodes
// have their leading comments stripped and keep the trailing marker comment
// of the declaration they were cloned from; when two declarations merge,
// the one that sorts first supplies the module path and trailing comment.
func Merge(editedManaged, newManaged []*model.RawNode) []*model.RawNode {
	combined := make([]*model.RawNode, 0, len(editedManaged)+len(newManaged))
	for _, imp := range editedManaged {
		combined = append(combined, stripLeadingComments(imp))
	}
	for _, imp := range newManaged {
		combined = append(combined, stripLeadingComments(imp))
	}
	sort.SliceStable(combined, func(i, j int) bool { return less(combined[i], combined[j]) })

	var out []*model.RawNode
	for _, imp := range combined {
		if len(out) > 0 && sameKey(out[len(out)-1], imp) {
			out[len(out)-1] = mergeSpecifiers(out[len(out)-1], imp)
			continue
		}
		out = append(out, imp)
	}
	return out
}

func stripLeadingComments(n *model.RawNode) *model.RawNode {
	clone := model.Clone(n, nil)
	clone.LeadingComments = nil
	return clone
}

// mergeSpecifiers merges b's specifiers into a (a clone, left unmodified),
// per spec §4.6's default/named/namespace rules.
func mergeSpecifiers(a, b *model.RawNode) *model.RawNode {
	merged := model.Clone(a, nil)
	for _, spec := range b.Children {
		switch spec.Kind {
		case model.RawImportDefaultSpecifier:
			if !hasDefault(merged, spec.Text) {
				merged.Children = append(merged.Children, model.Clone(spec, nil))
			}
		case model.RawImportSpecifier:
			if !hasNamed(merged, spec.Text, spec.Text2) {
				merged.Children = append(merged.Children, model.Clone(spec, nil))
			}
		case model.RawImportNamespaceSpecifier:
			merged.Children = append(merged.Children, model.Clone(spec, nil))
		}
	}
	return merged
}

func hasDefault(imp *model.RawNode, local string) bool {
	for _, spec := range imp.Children {
		if spec.Kind == model.RawImportDefaultSpecifier && spec.Text == local {
			return true
		}
	}
	return false
}

func hasNamed(imp *model.RawNode, local, imported string) bool {
	for _, spec := range imp.Children {
		if spec.Kind == model.RawImportSpecifier && spec.Text == local && spec.Text2 == imported {
			return true
		}
	}
	return false
}
