/*
allocation.go - Pure tip allocation computation

PURPOSE:
  Turns (tip total, weighted participants) into per-staff shares plus a
  summary of the fixed cuts. No side effects; persistence lives in
  ledger.go.

ALGORITHM:
  kitchen = round(total * 0.20, 2)
  damage  = round(total * 0.05, 2)
  net     = round(total - kitchen - damage, 2)
  share_i = round(points_i / totalPoints * net, 2)

ROUNDING:
  decimal.Round is half away from zero. Shares are rounded per
  participant independently; the residue against net is NOT
  redistributed. This matches the historical ledgers exactly, so any
  correction here would change observable output. Allocation.Residue
  exposes the drift to callers that want to display it.

ZERO TOTAL POINTS:
  When every participant has zero points there is no per-point value;
  every share is zero and the whole net pool is left unallocated
  (Allocation.Unallocated). Preserved as-is from the historical
  behavior rather than silently "fixed".
*/
package tips

import "github.com/shopspring/decimal"

// =============================================================================
// CUT RATES - Engine-level constants, not per-call configuration
// =============================================================================

var (
	// KitchenRate is the fixed kitchen cut taken off the top.
	KitchenRate = decimal.RequireFromString("0.20")

	// DamageRate is the fixed damage/breakage cut taken off the top.
	DamageRate = decimal.RequireFromString("0.05")
)

// =============================================================================
// ALLOCATION RESULT
// =============================================================================

// StaffShare is one computed (name, points, share) triple.
type StaffShare struct {
	Name   string
	Points decimal.Decimal
	Share  decimal.Decimal
}

// Allocation is the complete result of splitting one day's tips.
type Allocation struct {
	Total       decimal.Decimal // gross tips as supplied
	KitchenCut  decimal.Decimal
	DamageCut   decimal.Decimal
	Net         decimal.Decimal // staff pool after cuts
	TotalPoints decimal.Decimal
	PointValue  decimal.Decimal // round(net / totalPoints, 2), 0 when no points
	Shares      []StaffShare    // in participant order
}

// SharesTotal sums the rounded per-staff shares.
func (a Allocation) SharesTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range a.Shares {
		sum = sum.Add(s.Share)
	}
	return sum
}

// Residue is net minus the sum of rounded shares. Bounded by
// 0.01 * len(Shares) when points are positive.
func (a Allocation) Residue() decimal.Decimal {
	return a.Net.Sub(a.SharesTotal())
}

// Unallocated reports whether the net pool was left entirely
// undistributed (the zero-total-points edge case).
func (a Allocation) Unallocated() bool {
	return a.TotalPoints.IsZero() && a.Net.IsPositive()
}

// Rows converts the allocation into the ledger rows for a date: one
// staff row per participant plus the summary row.
func (a Allocation) Rows(date Date) []LedgerRow {
	rows := make([]LedgerRow, 0, len(a.Shares)+1)
	for _, s := range a.Shares {
		rows = append(rows, LedgerRow{
			Kind:   RowStaff,
			Date:   date,
			Name:   s.Name,
			Points: s.Points,
			Share:  s.Share,
		})
	}
	rows = append(rows, LedgerRow{
		Kind:       RowSummary,
		Date:       date,
		Share:      a.Net,
		KitchenCut: a.KitchenCut,
		DamageCut:  a.DamageCut,
	})
	return rows
}

// =============================================================================
// ALLOCATION ENGINE
// =============================================================================

// Allocate computes the cuts and per-staff shares for one day.
//
// Preconditions: total >= 0, at least one participant, no negative
// point weights. Pure function; the same input always yields the same
// output.
func Allocate(total decimal.Decimal, participants []Participant) (Allocation, error) {
	if total.IsNegative() {
		return Allocation{}, ErrInvalidAmount
	}
	if len(participants) == 0 {
		return Allocation{}, ErrNoParticipants
	}

	totalPoints := decimal.Zero
	for _, p := range participants {
		if p.Points.IsNegative() {
			return Allocation{}, ErrInvalidWeight
		}
		totalPoints = totalPoints.Add(p.Points)
	}

	kitchen := RoundCurrency(total.Mul(KitchenRate))
	damage := RoundCurrency(total.Mul(DamageRate))
	net := RoundCurrency(total.Sub(kitchen).Sub(damage))

	alloc := Allocation{
		Total:       total,
		KitchenCut:  kitchen,
		DamageCut:   damage,
		Net:         net,
		TotalPoints: totalPoints,
		PointValue:  decimal.Zero,
		Shares:      make([]StaffShare, 0, len(participants)),
	}

	for _, p := range participants {
		share := decimal.Zero
		if totalPoints.IsPositive() {
			share = RoundCurrency(p.Points.Div(totalPoints).Mul(net))
		}
		alloc.Shares = append(alloc.Shares, StaffShare{
			Name:   p.Name,
			Points: p.Points,
			Share:  share,
		})
	}

	if totalPoints.IsPositive() {
		alloc.PointValue = RoundCurrency(net.Div(totalPoints))
	}

	return alloc, nil
}
