/*
errors.go - Centralized error types for the tip engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP status codes.

ERROR CATEGORIES:
  1. Input errors - Bad amounts, weights, dates, empty selections
  2. Registry errors - Name collisions, reserved names, missing staff
  3. Ledger errors - Corrupt snapshots

All errors are recoverable at the calling boundary: the operation
aborts with persisted state unchanged and the caller may retry with
corrected input.

SEE ALSO:
  - allocation.go, registry.go, ledger.go: Producers of these errors
  - api/handlers.go: HTTP status mapping
*/
package tips

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned for a non-numeric or negative tip total.
	ErrInvalidAmount = errors.New("invalid tip amount")

	// ErrInvalidWeight is returned for a non-numeric or negative point value.
	ErrInvalidWeight = errors.New("invalid point weight")

	// ErrInvalidDate is returned for a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a range ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrNoParticipants is returned when a save or edit selects no staff.
	ErrNoParticipants = errors.New("no staff selected")

	// ErrDuplicateName is returned when adding a staff name that exists.
	ErrDuplicateName = errors.New("staff name already exists")

	// ErrReservedName is returned when adding a staff name that would
	// collide with the stored summary-row tag.
	ErrReservedName = errors.New("staff name is reserved")

	// ErrEmptyName is returned when adding a staff member with no name.
	ErrEmptyName = errors.New("staff name is empty")

	// ErrStaffNotFound is returned when a referenced staff member doesn't exist.
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrCorruptSnapshot is returned when a date has staff rows but no
	// summary row. This signals a prior partial write or external
	// tampering and is surfaced, never silently repaired.
	ErrCorruptSnapshot = errors.New("corrupt snapshot: summary row missing")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CorruptSnapshotError reports which date failed the summary-row check.
type CorruptSnapshotError struct {
	Date     Date
	RowCount int
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot for %s: %d staff rows but no summary row", e.Date, e.RowCount)
}

func (e *CorruptSnapshotError) Unwrap() error { return ErrCorruptSnapshot }

// UnknownStaffError reports a selected name with no registry record.
type UnknownStaffError struct {
	Name string
}

func (e *UnknownStaffError) Error() string {
	return fmt.Sprintf("staff member not found: %q", e.Name)
}

func (e *UnknownStaffError) Unwrap() error { return ErrStaffNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrNoParticipants) ||
		errors.Is(err, ErrReservedName) ||
		errors.Is(err, ErrEmptyName)
}

// IsConflict returns true if the error is a uniqueness collision.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStaffNotFound)
}
