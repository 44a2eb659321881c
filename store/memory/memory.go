// Package memory provides in-memory store implementations (tests/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mnemes/tip-engine/tips"
)

// =============================================================================
// MEMORY STORE - Implements tips.StaffStore and tips.RowStore
// =============================================================================

type Store struct {
	mu     sync.RWMutex
	nextID int64
	staff  []tips.StaffMember
	days   map[string][]tips.LedgerRow // keyed by date string
}

func New() *Store {
	return &Store{
		nextID: 1,
		days:   make(map[string][]tips.LedgerRow),
	}
}

// =============================================================================
// STAFF STORE
// =============================================================================

func (s *Store) InsertStaff(_ context.Context, name string, points decimal.Decimal) (tips.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.staff {
		if m.Name == name {
			return tips.StaffMember{}, tips.ErrDuplicateName
		}
	}

	member := tips.StaffMember{ID: s.nextID, Name: name, Points: points}
	s.nextID++
	s.staff = append(s.staff, member)
	return member, nil
}

func (s *Store) DeleteStaff(_ context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	kept := s.staff[:0]
	for _, m := range s.staff {
		if !drop[m.Name] {
			kept = append(kept, m)
		}
	}
	s.staff = kept
	return nil
}

func (s *Store) UpdatePoints(_ context.Context, id int64, points decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.staff {
		if s.staff[i].ID == id {
			s.staff[i].Points = points
			return nil
		}
	}
	return tips.ErrStaffNotFound
}

func (s *Store) ListStaff(_ context.Context) ([]tips.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tips.StaffMember, len(s.staff))
	copy(result, s.staff)
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Points.Equal(result[j].Points) {
			return result[i].Points.GreaterThan(result[j].Points)
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// =============================================================================
// ROW STORE
// =============================================================================

func (s *Store) ReplaceDay(_ context.Context, date tips.Date, rows []tips.LedgerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]tips.LedgerRow, len(rows))
	copy(stored, rows)
	s.days[date.String()] = stored
	return nil
}

func (s *Store) DayRows(_ context.Context, date tips.Date) ([]tips.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.days[date.String()]
	result := make([]tips.LedgerRow, len(rows))
	copy(result, rows)
	return result, nil
}

func (s *Store) DeleteDay(_ context.Context, date tips.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.days, date.String())
	return nil
}

func (s *Store) RowsInRange(_ context.Context, from, to tips.Date) ([]tips.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result []tips.LedgerRow
	for _, k := range keys {
		d, err := tips.ParseDate(k)
		if err != nil {
			continue
		}
		if d.AfterOrEqual(from) && d.BeforeOrEqual(to) {
			result = append(result, s.days[k]...)
		}
	}
	return result, nil
}

// CorruptDay strips the summary row for a date. Test hook for the
// corrupt-snapshot detection path; never called by production code.
func (s *Store) CorruptDay(date tips.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.days[date.String()]
	kept := rows[:0]
	for _, r := range rows {
		if r.Kind != tips.RowSummary {
			kept = append(kept, r)
		}
	}
	s.days[date.String()] = kept
}
