// Package xerrors names the fatal error taxonomy from spec §7. Every
// producer wraps one of these sentinels with %w plus component/attribute
// context, matching the teacher's own "failed to apply op %d (%s): %w"
// wrapping style.
package xerrors

import "errors"

var (
	// ErrParseFailure: parsing one of the three inputs failed.
	ErrParseFailure = errors.New("plasmerge: parse failure")
	// ErrMissingBaseMetadata: the baseProvider has no record for the
	// component's uuid at the stated revision.
	ErrMissingBaseMetadata = errors.New("plasmerge: missing base metadata")
	// ErrMissingManagedRegion: the new file lacks the plasmic-managed-start
	// / plasmic-managed-end bracketing comments.
	ErrMissingManagedRegion = errors.New("plasmerge: missing managed region markers")
	// ErrInvariantViolation: an upstream invariant (shape xor, consistent
	// uuid lookups) was violated.
	ErrInvariantViolation = errors.New("plasmerge: invariant violation")
)

// IsFatal reports whether err represents one of the fatal conditions in
// spec §7 (as opposed to a resolvable conflict, which is never surfaced as
// a Go error at all — conflicts are resolved by the conflict table or by
// emit-both).
func IsFatal(err error) bool {
	return errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrMissingBaseMetadata) ||
		errors.Is(err, ErrMissingManagedRegion) ||
		errors.Is(err, ErrInvariantViolation)
}
