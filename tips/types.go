/*
Package tips provides the core tip-allocation and ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for splitting a
  daily pool of gratuities among staff by weight ("points"), persisting
  the result as a per-date snapshot, and aggregating stored snapshots
  over arbitrary date ranges.

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A calendar date (day granularity, used as snapshot keys)
  - StaffMember: An identity with a current point weight
  - LedgerRow: One persisted row of a daily snapshot (staff or summary)
  - DaySnapshot: The complete set of rows for a single date

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Tagged rows: The summary row is a row kind, never a magic name
  3. Historical decoupling: Rows store the points as of save time;
     the live registry is never consulted when reading history

SEE ALSO:
  - allocation.go: Cut and per-staff share computation
  - ledger.go: Snapshot save/edit/delete with overwrite semantics
  - aggregate.go: Range summaries replayed from stored rows
*/
package tips

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Calendar date (day granularity)
// =============================================================================

// DateLayout is the wire and storage format for dates.
const DateLayout = "2006-01-02"

// Date is a calendar date at UTC midnight. Snapshots are keyed by Date.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }
func (d Date) IsZero() bool                  { return d.Time.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }

func (d Date) String() string { return d.normalize().Format(DateLayout) }

// =============================================================================
// MONEY HELPERS
// =============================================================================

// currencyPlaces is the rounding granularity for all monetary values.
const currencyPlaces = 2

// RoundCurrency rounds to 2 decimal places, half away from zero.
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(currencyPlaces)
}

// ParseAmount parses a currency amount. Accepts a comma as the decimal
// separator ("12,50") since that is how amounts are commonly keyed in.
func ParseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParsePoints parses a point weight with the same separator tolerance.
func ParsePoints(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	return v, nil
}

// =============================================================================
// STAFF MEMBER
// =============================================================================

// StaffMember is a registry record. Name is the natural key; Points is
// the member's current weight, not date-stamped.
type StaffMember struct {
	ID     int64
	Name   string
	Points decimal.Decimal
}

// Participant is one (name, points) input to the allocation engine.
// The points are captured at save time and written to the ledger as-is.
type Participant struct {
	Name   string
	Points decimal.Decimal
}

// =============================================================================
// LEDGER ROW - One persisted row of a daily snapshot
// =============================================================================

// RowKind tags a ledger row as either a staff share or the singleton
// per-date summary. The summary is a kind, not a reserved staff name;
// the storage layer alone decides how to encode the tag.
type RowKind int

const (
	RowStaff RowKind = iota
	RowSummary
)

// LedgerRow is one row of a daily snapshot.
//
// Staff rows:   Name/Points/Share set, cuts zero.
// Summary rows: Share holds the net staff pool, KitchenCut/DamageCut
//               hold the cut amounts, Name empty, Points zero.
type LedgerRow struct {
	Kind       RowKind
	Date       Date
	Name       string
	Points     decimal.Decimal
	Share      decimal.Decimal
	KitchenCut decimal.Decimal
	DamageCut  decimal.Decimal
}

// GrossTips reconstructs the day's total tips from a summary row.
func (r LedgerRow) GrossTips() decimal.Decimal {
	return r.Share.Add(r.KitchenCut).Add(r.DamageCut)
}

// =============================================================================
// DAY SNAPSHOT - Complete row set for one date
// =============================================================================

// DaySnapshot is everything stored for a single date: the staff rows in
// stored order plus exactly one summary row.
type DaySnapshot struct {
	Date    Date
	Staff   []LedgerRow
	Summary LedgerRow
}

// GrossTips returns the day's original tip total.
func (s DaySnapshot) GrossTips() decimal.Decimal { return s.Summary.GrossTips() }

// Net returns the staff pool after cuts.
func (s DaySnapshot) Net() decimal.Decimal { return s.Summary.Share }

// StaffNames returns the names of the staff recorded for the date, in
// stored order. Used to pre-fill an edit of the day.
func (s DaySnapshot) StaffNames() []string {
	names := make([]string, len(s.Staff))
	for i, r := range s.Staff {
		names[i] = r.Name
	}
	return names
}

// TotalPoints sums the point weights recorded on the staff rows.
func (s DaySnapshot) TotalPoints() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Staff {
		total = total.Add(r.Points)
	}
	return total
}
