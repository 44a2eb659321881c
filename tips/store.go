/*
store.go - Persistence interfaces

PURPOSE:
  Defines what the tip engine needs from storage. Implementations live
  in store/sqlite (production) and store/memory (tests/dev); the domain
  services in this package are written against these interfaces only.

ATOMICITY CONTRACT:
  ReplaceDay must delete-then-insert inside a single transaction so a
  reader never observes a partial snapshot. This is the load-bearing
  guarantee behind the overwrite-on-save semantics.

SEE ALSO:
  - store/sqlite/sqlite.go: SQLite implementation
  - store/memory/memory.go: In-memory implementation
*/
package tips

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STAFF STORE
// =============================================================================

// StaffStore persists registry records.
type StaffStore interface {
	// InsertStaff adds a new member. Returns ErrDuplicateName when the
	// exact (case-sensitive) name already exists.
	InsertStaff(ctx context.Context, name string, points decimal.Decimal) (StaffMember, error)

	// DeleteStaff removes members by name. Missing names are skipped.
	DeleteStaff(ctx context.Context, names []string) error

	// UpdatePoints sets a member's current weight. Returns
	// ErrStaffNotFound when the id is unknown.
	UpdatePoints(ctx context.Context, id int64, points decimal.Decimal) error

	// ListStaff returns all members ordered points desc, name asc.
	ListStaff(ctx context.Context) ([]StaffMember, error)
}

// =============================================================================
// ROW STORE
// =============================================================================

// RowStore persists daily snapshot rows.
type RowStore interface {
	// ReplaceDay atomically deletes all rows for the date and inserts
	// the given rows. No partial state is ever observable.
	ReplaceDay(ctx context.Context, date Date, rows []LedgerRow) error

	// DayRows returns all rows for a date, staff rows first in stored
	// order. Empty result when nothing is stored for the date.
	DayRows(ctx context.Context, date Date) ([]LedgerRow, error)

	// DeleteDay removes all rows for a date. No-op when none exist.
	DeleteDay(ctx context.Context, date Date) error

	// RowsInRange returns all rows with dates in [from, to] inclusive,
	// ordered by date ascending.
	RowsInRange(ctx context.Context, from, to Date) ([]LedgerRow, error)
}
