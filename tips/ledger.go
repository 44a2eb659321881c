/*
ledger.go - Daily snapshot persistence with overwrite semantics

PURPOSE:
  The Ledger owns the one-consistent-snapshot-per-date invariant.
  Saving a date computes a fresh allocation and atomically replaces
  whatever was stored before; editing IS saving (one code path), so
  the invariants hold identically for both entry points.

CRITICAL INVARIANTS:
  1. At most one snapshot per date, with exactly one summary row
  2. A save fully replaces the date; no residue from earlier saves
  3. Replacement is atomic: readers never see a partial snapshot

CORRUPTION:
  Staff rows without a summary row mean a prior partial write or
  external tampering. Day() surfaces this as CorruptSnapshotError and
  never repairs it; the fix is an explicit re-save or delete.

SEE ALSO:
  - allocation.go: Share computation
  - store.go: RowStore atomicity contract
  - aggregate.go: Read-only consumers of stored snapshots
*/
package tips

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger persists and retrieves daily allocation snapshots.
type Ledger struct {
	rows RowStore
}

func NewLedger(rows RowStore) *Ledger {
	return &Ledger{rows: rows}
}

// SaveDay computes the allocation for the date and atomically replaces
// any existing snapshot. Overwriting is unconditional. The returned
// Allocation carries the point value for caller display.
func (l *Ledger) SaveDay(ctx context.Context, date Date, total decimal.Decimal, participants []Participant) (Allocation, error) {
	alloc, err := Allocate(total, participants)
	if err != nil {
		return Allocation{}, err
	}

	if err := l.rows.ReplaceDay(ctx, date, alloc.Rows(date)); err != nil {
		return Allocation{}, fmt.Errorf("failed to save snapshot for %s: %w", date, err)
	}
	return alloc, nil
}

// EditDay re-derives the full snapshot from scratch and replaces it.
// There is no incremental patch path; edit and save share one code
// path so the snapshot invariants cannot diverge between them.
func (l *Ledger) EditDay(ctx context.Context, date Date, total decimal.Decimal, participants []Participant) (Allocation, error) {
	return l.SaveDay(ctx, date, total, participants)
}

// Day returns the stored snapshot for a date, or nil when none exists.
func (l *Ledger) Day(ctx context.Context, date Date) (*DaySnapshot, error) {
	rows, err := l.rows.DayRows(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", date, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	snap := DaySnapshot{Date: date}
	haveSummary := false
	for _, r := range rows {
		if r.Kind == RowSummary {
			snap.Summary = r
			haveSummary = true
			continue
		}
		snap.Staff = append(snap.Staff, r)
	}

	if !haveSummary {
		return nil, &CorruptSnapshotError{Date: date, RowCount: len(rows)}
	}
	return &snap, nil
}

// DeleteDay removes the snapshot for a date. Deleting a date with no
// snapshot is a no-op, not an error.
func (l *Ledger) DeleteDay(ctx context.Context, date Date) error {
	if err := l.rows.DeleteDay(ctx, date); err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", date, err)
	}
	return nil
}
