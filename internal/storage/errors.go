// ABOUTME: Error taxonomy shared by every Repository implementation.
// ABOUTME: NotFound and InvariantViolation are sentinels; anything else is a collaborator failure.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced user, routine, day, exercise or weight does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation means a write would break a uniqueness rule.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrAmbiguousPrefix means an ID prefix matched more than one record.
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")
)

// IsCollaboratorFailure reports whether err came from the storage engine itself
// (I/O, driver, lock) rather than from a missing record or a uniqueness rule.
func IsCollaboratorFailure(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrInvariantViolation) &&
		!errors.Is(err, ErrAmbiguousPrefix)
}

func notFound(what, idOrPrefix string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, idOrPrefix)
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
