/*
aggregate.go - Range summaries replayed from stored snapshots

PURPOSE:
  Answers "how much did X earn between A and B" and the per-day and
  per-staff report views. Everything here is read-only replay of stored
  rows: shares are NEVER recomputed from current registry weights,
  because a member's points may have changed since the rows were saved.

SEE ALSO:
  - ledger.go: Writes the snapshots this package replays
  - report.go: Formats these results into report-ready tables
  - period.go: WeekBounds/MonthBounds feeding the week/month views
*/
package tips

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// StaffTotal is one staff member's summed share over a range.
type StaffTotal struct {
	Name  string
	Share decimal.Decimal
}

// RangeSummary is the week/month view: per-staff share totals plus the
// summed cuts over the range.
type RangeSummary struct {
	Period      Period
	PerStaff    []StaffTotal // name asc
	KitchenCut  decimal.Decimal
	DamageCut   decimal.Decimal
	StaffShare  decimal.Decimal // sum of all staff shares in range
}

// DailyTotal is one date's summary-row figures for the per-day report.
type DailyTotal struct {
	Date       Date
	GrossTips  decimal.Decimal
	StaffShare decimal.Decimal
	KitchenCut decimal.Decimal
	DamageCut  decimal.Decimal
}

// =============================================================================
// SUMMARIZER
// =============================================================================

// Summarizer computes range aggregates from stored rows.
type Summarizer struct {
	rows RowStore
}

func NewSummarizer(rows RowStore) *Summarizer {
	return &Summarizer{rows: rows}
}

// SummarizeRange groups staff rows in [from, to] by name and sums
// shares, and sums kitchen/damage across the range's summary rows.
func (s *Summarizer) SummarizeRange(ctx context.Context, from, to Date) (RangeSummary, error) {
	period, err := NewPeriod(from, to)
	if err != nil {
		return RangeSummary{}, err
	}

	rows, err := s.rows.RowsInRange(ctx, from, to)
	if err != nil {
		return RangeSummary{}, fmt.Errorf("failed to load rows in %s: %w", period, err)
	}

	summary := RangeSummary{
		Period:     period,
		KitchenCut: decimal.Zero,
		DamageCut:  decimal.Zero,
		StaffShare: decimal.Zero,
	}

	perStaff := make(map[string]decimal.Decimal)
	for _, r := range rows {
		if r.Kind == RowSummary {
			summary.KitchenCut = summary.KitchenCut.Add(r.KitchenCut)
			summary.DamageCut = summary.DamageCut.Add(r.DamageCut)
			continue
		}
		perStaff[r.Name] = perStaff[r.Name].Add(r.Share)
		summary.StaffShare = summary.StaffShare.Add(r.Share)
	}

	summary.PerStaff = sortedTotals(perStaff)
	return summary, nil
}

// DailyTotals returns one entry per date with a snapshot in [from, to],
// date ascending. Gross tips are reconstructed from the summary row.
func (s *Summarizer) DailyTotals(ctx context.Context, from, to Date) ([]DailyTotal, error) {
	period, err := NewPeriod(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.rows.RowsInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows in %s: %w", period, err)
	}

	var totals []DailyTotal
	for _, r := range rows {
		if r.Kind != RowSummary {
			continue
		}
		totals = append(totals, DailyTotal{
			Date:       r.Date,
			GrossTips:  r.GrossTips(),
			StaffShare: r.Share,
			KitchenCut: r.KitchenCut,
			DamageCut:  r.DamageCut,
		})
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	return totals, nil
}

// PerStaffRange groups staff rows in [from, to] by name and sums
// shares, sorted by name. The grand total is the sum of the entries;
// report.go appends it as the table's TOTAL row.
func (s *Summarizer) PerStaffRange(ctx context.Context, from, to Date) ([]StaffTotal, decimal.Decimal, error) {
	period, err := NewPeriod(from, to)
	if err != nil {
		return nil, decimal.Zero, err
	}

	rows, err := s.rows.RowsInRange(ctx, from, to)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load rows in %s: %w", period, err)
	}

	perStaff := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, r := range rows {
		if r.Kind == RowSummary {
			continue
		}
		perStaff[r.Name] = perStaff[r.Name].Add(r.Share)
		grand = grand.Add(r.Share)
	}

	return sortedTotals(perStaff), grand, nil
}

func sortedTotals(perStaff map[string]decimal.Decimal) []StaffTotal {
	totals := make([]StaffTotal, 0, len(perStaff))
	for name, share := range perStaff {
		totals = append(totals, StaffTotal{Name: name, Share: share})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Name < totals[j].Name })
	return totals
}
