/*
store.go - Persistence interfaces for entries and settings

PURPOSE:
  Defines the interface between the engine and the persistence layer. The
  engine never reads storage itself; the Ledger borrows entries and the
  active configuration from a Store and prices them on every call.

KEY INTERFACES:
  EntryStore:  one WorkEntry per calendar day, keyed by date
  ConfigStore: the active configuration bundle

ONE ENTRY PER DAY:
  SaveEntry replaces the entry stored for the same date. Dates are calendar
  days with no time component.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - earnings/store/memory.go: In-memory for testing

SEE ALSO:
  - ledger.go: Summaries over stored entries
*/
package earnings

import (
	"context"

	"github.com/warp/earnings-engine/generic"
)

// EntryStore persists work entries.
type EntryStore interface {
	// SaveEntry inserts or replaces the entry of entry.Date.
	SaveEntry(ctx context.Context, entry WorkEntry) error

	// Entry returns the entry of date, or generic.ErrEntryNotFound.
	Entry(ctx context.Context, date generic.Date) (WorkEntry, error)

	// EntriesInRange returns entries in [from, to], ordered by date.
	EntriesInRange(ctx context.Context, from, to generic.Date) ([]WorkEntry, error)

	// DeleteEntry removes the entry of date. Deleting a missing entry
	// returns generic.ErrEntryNotFound.
	DeleteEntry(ctx context.Context, date generic.Date) error
}

// ConfigStore persists the active configuration.
type ConfigStore interface {
	// SaveConfig replaces the active configuration.
	SaveConfig(ctx context.Context, cfg Config) error

	// Config returns the active configuration, or generic.ErrConfigNotFound
	// when none was ever saved.
	Config(ctx context.Context) (Config, error)
}

// Store is everything the Ledger needs.
type Store interface {
	EntryStore
	ConfigStore
}
