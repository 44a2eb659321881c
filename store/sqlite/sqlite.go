/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements tips.StaffStore and tips.RowStore using SQLite. The schema
  matches the historical tip database, so existing ledgers open as-is.

ATOMIC REPLACE:
  ReplaceDay runs DELETE + INSERTs inside a single BeginTx transaction.
  A crash between delete and insert rolls back, so a reader never sees
  a snapshot with staff rows but no summary row (short of external
  tampering, which the ledger surfaces as a corrupt snapshot).

SUMMARY SENTINEL:
  The tip_log table marks the per-date summary row with staff_name =
  "TOTAL", as the historical schema did. The mapping between that
  sentinel and tips.RowSummary happens only here; domain code never
  sees the string.

KEY TABLES:
  staff:   (id autoincrement, name unique, points)
  tip_log: (id autoincrement, date, staff_name, points, share,
            kitchen, damage)

WAL MODE:
  SQLite is opened with WAL for better crash recovery and so readers
  don't block the single writer.

USAGE:
  store, err := sqlite.New("./data/tips.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tips/store.go: Interface definitions and atomicity contract
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/mnemes/tip-engine/tips"
)

// Store implements tips.StaffStore and tips.RowStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Staff registry (current weights only; history lives in tip_log)
	CREATE TABLE IF NOT EXISTS staff (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		points TEXT NOT NULL
	);

	-- Daily snapshot rows. At most one row per (date, staff_name) is
	-- guaranteed by the delete-then-insert replace protocol.
	CREATE TABLE IF NOT EXISTS tip_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		points TEXT NOT NULL,
		share TEXT NOT NULL,
		kitchen TEXT NOT NULL,
		damage TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tip_log_date ON tip_log(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STAFF STORE (tips.StaffStore interface)
// =============================================================================

// InsertStaff adds a new staff member.
func (s *Store) InsertStaff(ctx context.Context, name string, points decimal.Decimal) (tips.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO staff (name, points) VALUES (?, ?)",
		name, points.String(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return tips.StaffMember{}, tips.ErrDuplicateName
		}
		return tips.StaffMember{}, fmt.Errorf("failed to insert staff: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return tips.StaffMember{}, fmt.Errorf("failed to read staff id: %w", err)
	}

	return tips.StaffMember{ID: id, Name: name, Points: points}, nil
}

// DeleteStaff removes staff by name; missing names are skipped.
func (s *Store) DeleteStaff(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, "DELETE FROM staff WHERE name = ?", name); err != nil {
			return fmt.Errorf("failed to delete staff %q: %w", name, err)
		}
	}

	return tx.Commit()
}

// UpdatePoints sets a member's current weight.
func (s *Store) UpdatePoints(ctx context.Context, id int64, points decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE staff SET points = ? WHERE id = ?",
		points.String(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update points: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tips.ErrStaffNotFound
	}
	return nil
}

// ListStaff returns all staff ordered points desc, name asc.
func (s *Store) ListStaff(ctx context.Context) ([]tips.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, points FROM staff ORDER BY CAST(points AS REAL) DESC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []tips.StaffMember
	for rows.Next() {
		var m tips.StaffMember
		var points string
		if err := rows.Scan(&m.ID, &m.Name, &points); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		m.Points = mustDecimal(points)
		members = append(members, m)
	}
	return members, rows.Err()
}

// =============================================================================
// ROW STORE (tips.RowStore interface)
// =============================================================================

// ReplaceDay atomically replaces all rows for a date.
func (s *Store) ReplaceDay(ctx context.Context, date tips.Date, ledgerRows []tips.LedgerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tip_log WHERE date = ?", date.String()); err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}

	for _, r := range ledgerRows {
		name := r.Name
		if r.Kind == tips.RowSummary {
			name = tips.SummaryTag
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tip_log (date, staff_name, points, share, kitchen, damage) VALUES (?, ?, ?, ?, ?, ?)",
			date.String(), name, r.Points.String(), r.Share.String(),
			r.KitchenCut.String(), r.DamageCut.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	return tx.Commit()
}

// DayRows returns all rows for a date in stored order.
func (s *Store) DayRows(ctx context.Context, date tips.Date) ([]tips.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT date, staff_name, points, share, kitchen, damage
		FROM tip_log
		WHERE date = ?
		ORDER BY id ASC
	`
	return s.queryRows(ctx, query, date.String())
}

// DeleteDay removes all rows for a date. No-op when none exist.
func (s *Store) DeleteDay(ctx context.Context, date tips.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM tip_log WHERE date = ?", date.String())
	if err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}
	return nil
}

// RowsInRange returns all rows with dates in [from, to], date asc.
func (s *Store) RowsInRange(ctx context.Context, from, to tips.Date) ([]tips.LedgerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT date, staff_name, points, share, kitchen, damage
		FROM tip_log
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`
	return s.queryRows(ctx, query, from.String(), to.String())
}

func (s *Store) queryRows(ctx context.Context, query string, args ...any) ([]tips.LedgerRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tip_log: %w", err)
	}
	defer rows.Close()

	var result []tips.LedgerRow
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func scanRow(rows *sql.Rows) (tips.LedgerRow, error) {
	var (
		r                              tips.LedgerRow
		dateStr, name                  string
		points, share, kitchen, damage string
	)

	if err := rows.Scan(&dateStr, &name, &points, &share, &kitchen, &damage); err != nil {
		return r, fmt.Errorf("failed to scan tip_log row: %w", err)
	}

	date, err := tips.ParseDate(dateStr)
	if err != nil {
		return r, err
	}

	r.Date = date
	r.Points = mustDecimal(points)
	r.Share = mustDecimal(share)
	r.KitchenCut = mustDecimal(kitchen)
	r.DamageCut = mustDecimal(damage)

	if name == tips.SummaryTag {
		r.Kind = tips.RowSummary
	} else {
		r.Kind = tips.RowStaff
		r.Name = name
	}
	return r, nil
}

// Helper functions

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
