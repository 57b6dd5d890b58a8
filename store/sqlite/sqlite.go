/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists work entries, the active configuration and the gross/net history
  using SQLite. The engine itself never touches storage: the Ledger and the
  Estimator borrow data through the interfaces below and price it on every
  call, so nothing computed is ever stored.

INTERFACES IMPLEMENTED:
  earnings.EntryStore:    One work entry per calendar day
  earnings.ConfigStore:   Active configuration bundle
  netincome.HistoryStore: Observed gross/net pairs

KEY TABLES:
  work_entries:  date (YYYY-MM-DD) primary key, entry as JSON
  settings:      append-only revisions; the newest row is active
  net_history:   one row per recorded payslip

SETTINGS REVISIONS:
  SaveConfig never overwrites. Each save appends a revision with a fresh
  UUID, so earlier configurations stay inspectable with Revisions().

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block the
  single writer.

USAGE:
  store, err := sqlite.New("./data/earnings.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger := earnings.NewLedger(store)
  estimator := netincome.NewEstimator(store, netincome.TaxParams{})

SEE ALSO:
  - earnings/store.go: Entry and config interfaces
  - netincome/estimate.go: HistoryStore interface
  - earnings/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
	"github.com/warp/earnings-engine/netincome"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ earnings.Store         = (*Store)(nil)
	_ netincome.HistoryStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every new connection would get its own empty database.
		db.SetMaxOpenConns(1)
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
	-- Work entries, one per calendar day
	CREATE TABLE IF NOT EXISTS work_entries (
		date TEXT PRIMARY KEY,
		day_type TEXT NOT NULL,
		entry_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Settings revisions (append-only, newest is active)
	CREATE TABLE IF NOT EXISTS settings (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		revision TEXT NOT NULL UNIQUE,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Observed gross/net pairs
	CREATE TABLE IF NOT EXISTS net_history (
		id TEXT PRIMARY KEY,
		month TEXT NOT NULL,
		gross TEXT NOT NULL,
		net TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_net_history_month
		ON net_history(month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENTRY STORE (earnings.EntryStore interface)
// =============================================================================

// SaveEntry inserts or replaces the entry of entry.Date.
func (s *Store) SaveEntry(ctx context.Context, entry earnings.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	query := `
		INSERT INTO work_entries (date, day_type, entry_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			day_type = excluded.day_type,
			entry_json = excluded.entry_json,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		entry.Date.String(),
		string(entry.EffectiveDayType()),
		string(entryJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.Date, err)
	}
	return nil
}

// Entry returns the entry of date.
func (s *Store) Entry(ctx context.Context, date generic.Date) (earnings.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entryJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT entry_json FROM work_entries WHERE date = ?",
		date.String(),
	).Scan(&entryJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return earnings.WorkEntry{}, generic.ErrEntryNotFound
	}
	if err != nil {
		return earnings.WorkEntry{}, err
	}
	return decodeEntry(entryJSON)
}

// EntriesInRange returns entries in [from, to], ordered by date.
func (s *Store) EntriesInRange(ctx context.Context, from, to generic.Date) ([]earnings.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// ISO dates sort lexically.
	rows, err := s.db.QueryContext(ctx,
		"SELECT entry_json FROM work_entries WHERE date >= ? AND date <= ? ORDER BY date ASC",
		from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []earnings.WorkEntry
	for rows.Next() {
		var entryJSON string
		if err := rows.Scan(&entryJSON); err != nil {
			return nil, err
		}
		entry, err := decodeEntry(entryJSON)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteEntry removes the entry of date.
func (s *Store) DeleteEntry(ctx context.Context, date generic.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM work_entries WHERE date = ?", date.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return generic.ErrEntryNotFound
	}
	return nil
}

func decodeEntry(entryJSON string) (earnings.WorkEntry, error) {
	var entry earnings.WorkEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return earnings.WorkEntry{}, fmt.Errorf("failed to decode entry: %w", err)
	}
	return entry, nil
}

// =============================================================================
// CONFIG STORE (earnings.ConfigStore interface)
// =============================================================================

// Revision is one stored configuration.
type Revision struct {
	ID        uuid.UUID
	Config    earnings.Config
	CreatedAt time.Time
}

// SaveConfig appends a new settings revision.
func (s *Store) SaveConfig(ctx context.Context, cfg earnings.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (revision, config_json, created_at) VALUES (?, ?, ?)",
		uuid.New().String(),
		string(configJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Config returns the newest revision.
func (s *Store) Config(ctx context.Context) (earnings.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT config_json FROM settings ORDER BY seq DESC LIMIT 1",
	).Scan(&configJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return earnings.Config{}, generic.ErrConfigNotFound
	}
	if err != nil {
		return earnings.Config{}, err
	}
	return decodeConfig(configJSON)
}

// Revisions returns every stored configuration, newest first.
func (s *Store) Revisions(ctx context.Context) ([]Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT revision, config_json, created_at FROM settings ORDER BY seq DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var id, configJSON, createdAt string
		if err := rows.Scan(&id, &configJSON, &createdAt); err != nil {
			return nil, err
		}
		r := Revision{}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid revision id %q: %w", id, err)
		}
		if r.Config, err = decodeConfig(configJSON); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

func decodeConfig(configJSON string) (earnings.Config, error) {
	var cfg earnings.Config
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return earnings.Config{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// NET HISTORY (netincome.HistoryStore interface)
// =============================================================================

// SaveRecord stores an observed gross/net pair.
func (s *Store) SaveRecord(ctx context.Context, r netincome.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO net_history (id, month, gross, net, created_at) VALUES (?, ?, ?, ?, ?)",
		r.ID.String(),
		r.Month.String(),
		r.Gross.String(),
		r.Net.String(),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("record %s already stored: %w", r.ID, err)
		}
		return fmt.Errorf("failed to save net record: %w", err)
	}
	return nil
}

// Records returns every stored pair, oldest month first.
func (s *Store) Records(ctx context.Context) ([]netincome.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, month, gross, net, created_at FROM net_history ORDER BY month ASC, created_at ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query net history: %w", err)
	}
	defer rows.Close()

	var records []netincome.Record
	for rows.Next() {
		var id, month, gross, net, createdAt string
		if err := rows.Scan(&id, &month, &gross, &net, &createdAt); err != nil {
			return nil, err
		}
		r, err := parseRecord(id, month, gross, net)
		if err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func parseRecord(id, month, gross, net string) (netincome.Record, error) {
	var (
		r   netincome.Record
		err error
	)
	if r.ID, err = uuid.Parse(id); err != nil {
		return r, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	if r.Month, err = generic.ParseDate(month); err != nil {
		return r, err
	}
	if r.Gross, err = decimal.NewFromString(gross); err != nil {
		return r, fmt.Errorf("invalid gross %q: %w", gross, err)
	}
	if r.Net, err = decimal.NewFromString(net); err != nil {
		return r, fmt.Errorf("invalid net %q: %w", net, err)
	}
	return r, nil
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset deletes every row. Used by tests and the demo reset endpoint.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"work_entries", "settings", "net_history"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
