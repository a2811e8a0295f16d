// Package assemble substitutes the merged markup expression into a clone of
// the edited file, merges imports, and splices in the new version's
// verbatim managed region, per spec §4.7.
package assemble

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/plasmerge/plasmerge/pkg/importmerge"
	"github.com/plasmerge/plasmerge/pkg/model"
)

// ErrMissingManagedRegion is returned when the new version's file does not
// carry the plasmic-managed-start/plasmic-managed-end bracketing comments.
var ErrMissingManagedRegion = errors.New("plasmerge/assemble: new file has no managed verbatim region markers")

// DefaultStartMarker and DefaultEndMarker bracket the verbatim managed
// region when the caller's config.Options doesn't override them.
const (
	DefaultStartMarker = "// plasmic-managed-start"
	DefaultEndMarker   = "// plasmic-managed-end"
)

// Printer renders a merged Program back to source text. The real
// pretty-printer is an external collaborator; this package only depends on
// the interface.
type Printer interface {
	Print(program *model.RawNode) (string, error)
}

// Formatter is a final source-text formatting pass (e.g. an opinionated
// code formatter), applied after the managed region splice. It is an
// external collaborator; a no-op Formatter is valid.
type Formatter interface {
	Format(source string) (string, error)
}

// IdentityFormatter is a Formatter that returns its input unchanged — used
// when no external formatter is wired in.
type IdentityFormatter struct{}

func (IdentityFormatter) Format(source string) (string, error) { return source, nil }

var revisionPattern = regexp.MustCompile(`plasmic-managed-jsx/(\d+)`)

// AssembleFile performs spec §4.7 steps 1-6: substitute the merged markup,
// bump the revision marker, merge imports, print, splice the new file's
// managed region in verbatim, and run the formatter. startMarker/endMarker
// bracket that verbatim region; an empty string falls back to
// DefaultStartMarker/DefaultEndMarker.
func AssembleFile(newFile, editedFile *model.RawFile, mergedMarkup *model.RawNode, printer Printer, formatter Formatter, startMarker, endMarker string) (string, error) {
	if formatter == nil {
		formatter = IdentityFormatter{}
	}
	if startMarker == "" {
		startMarker = DefaultStartMarker
	}
	if endMarker == "" {
		endMarker = DefaultEndMarker
	}

	newRevisionComment := revisionPattern.ReplaceAllString(editedFile.ManagedComment, fmt.Sprintf("plasmic-managed-jsx/%d", newFile.ManagedRevision))
	mergedMarkup = withLeadingComment(mergedMarkup, newRevisionComment)

	clonedProgram := model.Clone(editedFile.Program, func(n *model.RawNode) (*model.RawNode, bool) {
		if n.Start == editedFile.ManagedExprStart {
			return mergedMarkup, true
		}
		return nil, false
	})

	editedManaged, _ := importmerge.Partition(editedFile.Imports)
	newManaged, _ := importmerge.Partition(newFile.Imports)
	mergedImports := importmerge.Merge(editedManaged, newManaged)
	clonedProgram = spliceImports(clonedProgram, editedFile, mergedImports)

	printed, err := printer.Print(clonedProgram)
	if err != nil {
		return "", fmt.Errorf("plasmerge/assemble: printing merged file: %w", err)
	}

	spliced, err := spliceManagedRegion(printed, newFile.Source, startMarker, endMarker)
	if err != nil {
		return "", err
	}

	formatted, err := formatter.Format(spliced)
	if err != nil {
		return "", fmt.Errorf("plasmerge/assemble: formatting merged file: %w", err)
	}
	return formatted, nil
}

func withLeadingComment(n *model.RawNode, comment string) *model.RawNode {
	clone := model.Clone(n, nil)
	clone.LeadingComments = append([]string{comment}, nonMarkerComments(clone.LeadingComments)...)
	return clone
}

func nonMarkerComments(comments []string) []string {
	var out []string
	for _, c := range comments {
		if !revisionPattern.MatchString(c) {
			out = append(out, c)
		}
	}
	return out
}

// spliceImports removes the original managed imports from the cloned
// program's top-level statement list and reinserts mergedImports at the
// position of the first managed import in the edited file (falling back to
// the first import, then file start).
func spliceImports(program *model.RawNode, editedFile *model.RawFile, mergedImports []*model.RawNode) *model.RawNode {
	managedStarts := make(map[int]bool)
	for _, imp := range editedFile.Imports {
		if _, ok := importmerge.ParseManaged(imp.TrailingComment); ok {
			managedStarts[imp.Start] = true
		}
	}

	insertAt := 0
	foundManaged := false
	for i, stmt := range program.Children {
		if managedStarts[stmt.Start] {
			insertAt = i
			foundManaged = true
			break
		}
	}
	if !foundManaged {
		for i, stmt := range program.Children {
			if stmt.Kind == model.RawImportDeclaration {
				insertAt = i
				break
			}
		}
	}

	var kept []*model.RawNode
	inserted := false
	for i, stmt := range program.Children {
		if i == insertAt && !inserted {
			kept = append(kept, mergedImports...)
			inserted = true
		}
		if managedStarts[stmt.Start] {
			continue
		}
		kept = append(kept, stmt)
	}
	if !inserted {
		kept = append(mergedImports, kept...)
	}

	clone := model.Clone(program, nil)
	clone.Children = kept
	return clone
}

// spliceManagedRegion replaces the bracketed verbatim region in printed with
// the corresponding region from newSource.
func spliceManagedRegion(printed, newSource, startMarker, endMarker string) (string, error) {
	newRegion, ok := extractRegion(newSource, startMarker, endMarker)
	if !ok {
		return "", ErrMissingManagedRegion
	}
	start, end, ok := regionBounds(printed, startMarker, endMarker)
	if !ok {
		// The edited file predates the managed region convention; append it.
		return printed + "\n" + newRegion + "\n", nil
	}
	return printed[:start] + newRegion + printed[end:], nil
}

func extractRegion(source, startMarker, endMarker string) (string, bool) {
	start, end, ok := regionBounds(source, startMarker, endMarker)
	if !ok {
		return "", false
	}
	return source[start:end], true
}

func regionBounds(source, startMarker, endMarker string) (start, end int, ok bool) {
	s := strings.Index(source, startMarker)
	if s == -1 {
		return 0, 0, false
	}
	e := strings.Index(source[s:], endMarker)
	if e == -1 {
		return 0, 0, false
	}
	e = s + e + len(endMarker)
	return s, e, true
}

// ParseRevision extracts the decimal revision from a plasmic-managed-jsx
// comment, e.g. "plasmic-managed-jsx/3" -> 3.
func ParseRevision(comment string) (int, bool) {
	m := revisionPattern.FindStringSubmatch(comment)
	if m == nil {
		return 0, false
	}
	rev, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return rev, true
}
