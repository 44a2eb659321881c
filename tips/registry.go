/*
registry.go - Staff registry service

PURPOSE:
  CRUD over staff identity and weight. The registry holds each member's
  CURRENT points only; historical ledger rows carry the points recorded
  at save time and are never re-joined against the registry.

VALIDATION:
  - Names are case-sensitive exact-match unique and non-empty
  - The stored summary-row tag is rejected as a staff name, so a real
    person can never collide with the summary sentinel on disk
  - Points must be non-negative

SEE ALSO:
  - store.go: StaffStore interface
  - ledger.go: Captures registry points into snapshots at save time
*/
package tips

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SummaryTag is the staff-name sentinel used by the storage schema to
// mark the per-date summary row. It exists so the registry can refuse
// it; domain code identifies summary rows by RowKind, never by name.
const SummaryTag = "TOTAL"

// Registry manages staff identity and weights.
type Registry struct {
	staff StaffStore
}

func NewRegistry(staff StaffStore) *Registry {
	return &Registry{staff: staff}
}

// Add creates a staff member with the given name and weight.
func (r *Registry) Add(ctx context.Context, name string, points decimal.Decimal) (StaffMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StaffMember{}, ErrEmptyName
	}
	if name == SummaryTag {
		return StaffMember{}, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if points.IsNegative() {
		return StaffMember{}, ErrInvalidWeight
	}
	return r.staff.InsertStaff(ctx, name, points)
}

// Remove deletes the named members. Removing a name that does not
// exist is a no-op, so batch removals never half-fail on stale input.
// Historical ledger rows for removed staff are left untouched.
func (r *Registry) Remove(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return r.staff.DeleteStaff(ctx, names)
}

// UpdatePoints sets a member's current weight.
func (r *Registry) UpdatePoints(ctx context.Context, id int64, points decimal.Decimal) error {
	if points.IsNegative() {
		return ErrInvalidWeight
	}
	return r.staff.UpdatePoints(ctx, id, points)
}

// List returns all members ordered points desc, name asc. This is the
// canonical display and selection order.
func (r *Registry) List(ctx context.Context) ([]StaffMember, error) {
	return r.staff.ListStaff(ctx)
}

// Resolve maps selected names to Participants using current registry
// weights. Selection order is preserved. Returns UnknownStaffError for
// a name with no registry record.
func (r *Registry) Resolve(ctx context.Context, names []string) ([]Participant, error) {
	if len(names) == 0 {
		return nil, ErrNoParticipants
	}

	members, err := r.staff.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]StaffMember, len(members))
	for _, m := range members {
		byName[m.Name] = m
	}

	participants := make([]Participant, 0, len(names))
	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return nil, &UnknownStaffError{Name: name}
		}
		participants = append(participants, Participant{Name: m.Name, Points: m.Points})
	}
	return participants, nil
}
