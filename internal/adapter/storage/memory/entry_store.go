// Package memory provides the in-process EntryStore used by tests and
// single-node deployments.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"compliance-audit-trail/internal/core/domain"
)

// EntryStore keeps entries in an append-only slice guarded by an RWMutex.
// Entries are stored by value so callers can never mutate a stored row
// through a retained pointer.
type EntryStore struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
	index   map[string]int
}

// NewEntryStore creates an empty store.
func NewEntryStore() *EntryStore {
	return &EntryStore{index: make(map[string]int)}
}

// Append adds an entry at the tail.
func (s *EntryStore) Append(_ context.Context, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[entry.ID]; exists {
		return fmt.Errorf("duplicate entry id %s", entry.ID)
	}
	s.index[entry.ID] = len(s.entries)
	s.entries = append(s.entries, *entry)
	return nil
}

// All returns a snapshot of every entry in insertion order.
func (s *EntryStore) All(_ context.Context) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Update rewrites an existing entry in place.
func (s *EntryStore) Update(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[entry.ID]
	if !ok {
		return fmt.Errorf("entry %s not found", entry.ID)
	}
	s.entries[i] = entry
	return nil
}

// DeleteBefore removes entries older than cutoff, preserving the order of
// the survivors.
func (s *EntryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept

	s.index = make(map[string]int, len(s.entries))
	for i := range s.entries {
		s.index[s.entries[i].ID] = i
	}
	return removed, nil
}

// Len returns the number of stored entries.
func (s *EntryStore) Len(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// Tamper overwrites a stored entry without any validation. It exists for
// integrity tests that need to corrupt the chain behind the writer's back.
func (s *EntryStore) Tamper(id string, mutate func(*domain.AuditEntry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	mutate(&s.entries[i])
	return true
}
