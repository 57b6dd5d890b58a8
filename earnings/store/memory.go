// Package store provides earnings.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries []earnings.WorkEntry // sorted by date
	config  *earnings.Config
}

func NewMemory() *Memory {
	return &Memory{}
}

// SaveEntry inserts the entry in date order, replacing one with the same date.
func (m *Memory) SaveEntry(_ context.Context, entry earnings.WorkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Binary search for insertion point
	i := sort.Search(len(m.entries), func(i int) bool {
		return !m.entries[i].Date.Before(entry.Date)
	})
	if i < len(m.entries) && m.entries[i].Date.Equal(entry.Date) {
		m.entries[i] = entry
		return nil
	}

	m.entries = append(m.entries, earnings.WorkEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry
	return nil
}

func (m *Memory) Entry(_ context.Context, date generic.Date) (earnings.WorkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i, ok := m.indexLocked(date); ok {
		return m.entries[i], nil
	}
	return earnings.WorkEntry{}, generic.ErrEntryNotFound
}

func (m *Memory) EntriesInRange(_ context.Context, from, to generic.Date) ([]earnings.WorkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []earnings.WorkEntry
	for _, e := range m.entries {
		if from.BeforeOrEqual(e.Date) && e.Date.BeforeOrEqual(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *Memory) DeleteEntry(_ context.Context, date generic.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.indexLocked(date)
	if !ok {
		return generic.ErrEntryNotFound
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

func (m *Memory) indexLocked(date generic.Date) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return !m.entries[i].Date.Before(date)
	})
	return i, i < len(m.entries) && m.entries[i].Date.Equal(date)
}

func (m *Memory) SaveConfig(_ context.Context, cfg earnings.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
	return nil
}

func (m *Memory) Config(_ context.Context) (earnings.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return earnings.Config{}, generic.ErrConfigNotFound
	}
	return *m.config, nil
}

// Ensure Memory implements the interface
var _ earnings.Store = (*Memory)(nil)
