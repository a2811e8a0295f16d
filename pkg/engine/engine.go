// Package engine implements the single entry point, mergeFiles, that ties
// the AST model, version index, and the five reconciliation stages together
// into the three-way merge described in spec §§5-7.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/internal/logging"
	"github.com/plasmerge/plasmerge/internal/xerrors"
	"github.com/plasmerge/plasmerge/pkg/assemble"
	"github.com/plasmerge/plasmerge/pkg/model"
	"github.com/plasmerge/plasmerge/pkg/serialize"
	"github.com/plasmerge/plasmerge/pkg/version"
)

// Parser is the out-of-scope source-to-AST parser collaborator: given a
// file's source text, it yields the parsed file (imports, managed-expr
// location) and the classified PlasmicNode tree rooted at the managed
// markup expression.
type Parser interface {
	Parse(source string) (*model.RawFile, model.PlasmicNode, error)
}

// ComponentInput is one entry of the mergeFiles input contract (spec §6).
type ComponentInput struct {
	EditedFile        string
	NewFile           string
	NewNameInIDToUUID map[string]uuid.UUID
}

// ComponentSkeleton is one component's base-revision snapshot, as returned
// by a BaseProvider.
type ComponentSkeleton struct {
	UUID           uuid.UUID
	NameInIDToUUID map[string]uuid.UUID
	FileContent    string
}

// ProjectSyncMetadata is the per-(project,revision) payload a BaseProvider
// returns.
type ProjectSyncMetadata struct {
	Components []ComponentSkeleton
}

// BaseProvider fetches base metadata for a project at a given revision. It
// is the engine's only suspension point (spec §5).
type BaseProvider func(ctx context.Context, projectID string, revision int) (*ProjectSyncMetadata, error)

// Options bundles the collaborators MergeFiles needs beyond the pure
// algorithm: the parser, the (optionally caching) base provider, and the
// printer/formatter used by the File Assembler.
type Options struct {
	Parser       Parser
	BaseProvider BaseProvider
	Printer      assemble.Printer
	Formatter    assemble.Formatter

	// StartMarker/EndMarker override the verbatim managed-region
	// bracketing comments the File Assembler splices around. Empty
	// strings fall back to assemble.DefaultStartMarker/DefaultEndMarker.
	StartMarker string
	EndMarker   string
}

// MergeFiles runs the three-way merge for every component in
// componentByUUID and returns the mapping from uuid to merged, formatted
// file text. Components whose edited file carries no managed marker are
// skipped silently. Any fatal condition (parse failure, missing base
// metadata, missing managed-region markers, invariant violation) aborts the
// whole call — spec §7 is explicit that a partial result is not meaningful.
func MergeFiles(ctx context.Context, componentByUUID map[uuid.UUID]ComponentInput, projectID string, opts Options) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(componentByUUID))

	for id, input := range componentByUUID {
		text, skip, err := mergeOne(ctx, id, input, projectID, opts)
		if err != nil {
			logging.Error("merge aborted", "component", id, "err", err)
			return nil, err
		}
		if skip {
			logging.Debug("component skipped: no managed marker", "component", id)
			continue
		}
		out[id] = text
	}
	return out, nil
}

func mergeOne(ctx context.Context, id uuid.UUID, input ComponentInput, projectID string, opts Options) (text string, skip bool, err error) {
	editedFile, editedRoot, err := opts.Parser.Parse(input.EditedFile)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s edited file: %v", xerrors.ErrParseFailure, id, err)
	}
	if editedFile.ManagedComment == "" {
		return "", true, nil
	}

	newFile, newRoot, err := opts.Parser.Parse(input.NewFile)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s new file: %v", xerrors.ErrParseFailure, id, err)
	}

	meta, err := opts.BaseProvider(ctx, projectID, editedFile.ManagedRevision)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s revision %d: %v", xerrors.ErrMissingBaseMetadata, id, editedFile.ManagedRevision, err)
	}
	skeleton, ok := findSkeleton(meta, id)
	if !ok {
		return "", false, fmt.Errorf("%w: component %s not present in revision %d metadata", xerrors.ErrMissingBaseMetadata, id, editedFile.ManagedRevision)
	}
	baseFile, baseRoot, err := opts.Parser.Parse(skeleton.FileContent)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s base file: %v", xerrors.ErrParseFailure, id, err)
	}

	newVer, err := version.New(newFile.Program, newRoot, input.NewNameInIDToUUID)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s new version: %v", xerrors.ErrInvariantViolation, id, err)
	}
	// The edited file retains the identifiers assigned when it was last
	// synced; its identity map is the base skeleton's map.
	editedVer, err := version.New(editedFile.Program, editedRoot, skeleton.NameInIDToUUID)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s edited version: %v", xerrors.ErrInvariantViolation, id, err)
	}
	baseVer, err := version.New(baseFile.Program, baseRoot, skeleton.NameInIDToUUID)
	if err != nil {
		return "", false, fmt.Errorf("%w: component %s base version: %v", xerrors.ErrInvariantViolation, id, err)
	}

	s := serialize.New(newVer, editedVer, baseVer)
	mergedMarkup, ok, err := s.SerializeNode(newRoot)
	if err != nil {
		return "", false, err
	}
	if !ok {
		// The root markup node itself cannot be "deleted" in a well-formed
		// sync; treat as an invariant violation rather than an empty file.
		return "", false, fmt.Errorf("%w: component %s: root markup resolved to deletion", xerrors.ErrInvariantViolation, id)
	}

	text, err = assemble.AssembleFile(newFile, editedFile, mergedMarkup, opts.Printer, opts.Formatter, opts.StartMarker, opts.EndMarker)
	if err != nil {
		if errors.Is(err, assemble.ErrMissingManagedRegion) {
			return "", false, fmt.Errorf("%w: component %s: %v", xerrors.ErrMissingManagedRegion, id, err)
		}
		return "", false, err
	}
	return text, false, nil
}

func findSkeleton(meta *ProjectSyncMetadata, id uuid.UUID) (ComponentSkeleton, bool) {
	for _, c := range meta.Components {
		if c.UUID == id {
			return c, true
		}
	}
	return ComponentSkeleton{}, false
}
