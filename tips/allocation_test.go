package tips_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mnemes/tip-engine/tips"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func participants(pairs ...any) []tips.Participant {
	var ps []tips.Participant
	for i := 0; i < len(pairs); i += 2 {
		ps = append(ps, tips.Participant{
			Name:   pairs[i].(string),
			Points: dec(pairs[i+1].(string)),
		})
	}
	return ps
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got)
	}
}

// =============================================================================
// CUT COMPUTATION
// =============================================================================

func TestAllocate_Cuts_TwentyAndFivePercent(t *testing.T) {
	// GIVEN: 100.00 in tips
	// WHEN: Allocating across any staff
	// THEN: Kitchen takes 20.00, damage takes 5.00, net is 75.00

	alloc, err := tips.Allocate(dec("100"), participants("A", "2", "B", "1", "C", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "20.00", alloc.KitchenCut, "kitchen cut")
	assertDecimal(t, "5.00", alloc.DamageCut, "damage cut")
	assertDecimal(t, "75.00", alloc.Net, "net")
}

func TestAllocate_WeightedShares(t *testing.T) {
	// GIVEN: 100 tips, participants A(2), B(1), C(1)
	// WHEN: Allocating
	// THEN: A=37.50, B=18.75, C=18.75, sum exactly 75.00

	alloc, err := tips.Allocate(dec("100"), participants("A", "2", "B", "1", "C", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "4", alloc.TotalPoints, "total points")
	assertDecimal(t, "37.50", alloc.Shares[0].Share, "A's share")
	assertDecimal(t, "18.75", alloc.Shares[1].Share, "B's share")
	assertDecimal(t, "18.75", alloc.Shares[2].Share, "C's share")
	assertDecimal(t, "75.00", alloc.SharesTotal(), "shares total")
	assertDecimal(t, "0", alloc.Residue(), "residue")
}

func TestAllocate_HalfCent_RoundsAwayFromZero(t *testing.T) {
	// GIVEN: 100.01 tips (damage cut lands exactly on a half cent)
	// WHEN: Allocating
	// THEN: 0.05 * 100.01 = 5.0005 rounds up to 5.01

	alloc, err := tips.Allocate(dec("100.01"), participants("A", "2", "B", "1", "C", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "20.00", alloc.KitchenCut, "kitchen cut")
	assertDecimal(t, "5.01", alloc.DamageCut, "damage cut")
	assertDecimal(t, "75.00", alloc.Net, "net")
}

// =============================================================================
// ROUNDING RESIDUE
// =============================================================================

func TestAllocate_Residue_NotRedistributed(t *testing.T) {
	// GIVEN: 100 tips split equally among 7 staff
	// WHEN: Allocating (75 / 7 = 10.714285... rounds to 10.71 each)
	// THEN: Shares sum to 74.97; the 0.03 residue stays unassigned

	ps := participants("A", "1", "B", "1", "C", "1", "D", "1", "E", "1", "F", "1", "G", "1")
	alloc, err := tips.Allocate(dec("100"), ps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, s := range alloc.Shares {
		if !s.Share.Equal(dec("10.71")) {
			t.Errorf("share %d: expected 10.71, got %s", i, s.Share)
		}
	}
	assertDecimal(t, "74.97", alloc.SharesTotal(), "shares total")
	assertDecimal(t, "0.03", alloc.Residue(), "residue")

	// Residue bound: |sum - net| <= 0.01 * participant count
	bound := dec("0.01").Mul(decimal.NewFromInt(int64(len(ps))))
	if alloc.Residue().Abs().GreaterThan(bound) {
		t.Errorf("residue %s exceeds bound %s", alloc.Residue(), bound)
	}
}

func TestAllocate_PointValue(t *testing.T) {
	// GIVEN: 100 tips, 4 total points
	// THEN: Point value is 75 / 4 = 18.75

	alloc, err := tips.Allocate(dec("100"), participants("A", "2", "B", "1", "C", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "18.75", alloc.PointValue, "point value")
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestAllocate_ZeroTotalPoints_NothingDistributed(t *testing.T) {
	// GIVEN: All participants have zero points
	// WHEN: Allocating 100
	// THEN: Every share is 0, point value is 0, the net pool is
	//       reported unallocated (documented edge case, not repaired)

	alloc, err := tips.Allocate(dec("100"), participants("A", "0", "B", "0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range alloc.Shares {
		if !s.Share.IsZero() {
			t.Errorf("expected zero share for %s, got %s", s.Name, s.Share)
		}
	}
	assertDecimal(t, "0", alloc.PointValue, "point value")
	if !alloc.Unallocated() {
		t.Error("expected allocation to be flagged unallocated")
	}
}

func TestAllocate_ZeroTips(t *testing.T) {
	// Zero is a valid total: all cuts and shares are zero.
	alloc, err := tips.Allocate(dec("0"), participants("A", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "0.00", alloc.KitchenCut, "kitchen cut")
	assertDecimal(t, "0.00", alloc.Net, "net")
	assertDecimal(t, "0.00", alloc.Shares[0].Share, "share")
	if alloc.Unallocated() {
		t.Error("zero net should not be flagged unallocated")
	}
}

func TestAllocate_NegativeTotal_Rejected(t *testing.T) {
	_, err := tips.Allocate(dec("-1"), participants("A", "1"))
	if !errors.Is(err, tips.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAllocate_NoParticipants_Rejected(t *testing.T) {
	_, err := tips.Allocate(dec("100"), nil)
	if !errors.Is(err, tips.ErrNoParticipants) {
		t.Errorf("expected ErrNoParticipants, got %v", err)
	}
}

func TestAllocate_NegativePoints_Rejected(t *testing.T) {
	_, err := tips.Allocate(dec("100"), participants("A", "1", "B", "-1"))
	if !errors.Is(err, tips.ErrInvalidWeight) {
		t.Errorf("expected ErrInvalidWeight, got %v", err)
	}
}

func TestAllocate_Pure_SameInputSameOutput(t *testing.T) {
	ps := participants("A", "2.5", "B", "1.5")
	a1, err := tips.Allocate(dec("123.45"), ps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, err := tips.Allocate(dec("123.45"), ps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a1.Net.Equal(a2.Net) || !a1.PointValue.Equal(a2.PointValue) {
		t.Error("allocation is not deterministic")
	}
	for i := range a1.Shares {
		if !a1.Shares[i].Share.Equal(a2.Shares[i].Share) {
			t.Errorf("share %d differs between runs", i)
		}
	}
}

// =============================================================================
// ROW CONVERSION
// =============================================================================

func TestAllocation_Rows_OneSummaryLast(t *testing.T) {
	// GIVEN: An allocation for two staff
	// WHEN: Converting to ledger rows
	// THEN: Two staff rows in order plus one summary row carrying cuts

	alloc, err := tips.Allocate(dec("100"), participants("A", "3", "B", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	date := tips.NewDate(2025, 3, 10)
	rows := alloc.Rows(date)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Kind != tips.RowStaff || rows[0].Name != "A" {
		t.Errorf("row 0: expected staff row for A, got %+v", rows[0])
	}
	if rows[1].Kind != tips.RowStaff || rows[1].Name != "B" {
		t.Errorf("row 1: expected staff row for B, got %+v", rows[1])
	}

	summary := rows[2]
	if summary.Kind != tips.RowSummary {
		t.Fatalf("row 2: expected summary row, got %+v", summary)
	}
	assertDecimal(t, "75.00", summary.Share, "summary net")
	assertDecimal(t, "20.00", summary.KitchenCut, "summary kitchen")
	assertDecimal(t, "5.00", summary.DamageCut, "summary damage")
	assertDecimal(t, "100.00", summary.GrossTips(), "summary gross")

	// Staff rows carry zero cuts
	for _, r := range rows[:2] {
		if !r.KitchenCut.IsZero() || !r.DamageCut.IsZero() {
			t.Errorf("staff row %s carries cuts", r.Name)
		}
	}
}
