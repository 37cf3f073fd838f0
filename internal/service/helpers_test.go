package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"compliance-audit-trail/internal/adapter/storage/memory"
	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newTestTrail builds a trail on a fresh in-memory store, no bus, no
// metrics. The store is returned so tests can inspect or corrupt it.
func newTestTrail(t *testing.T) (*TrailService, *memory.EntryStore) {
	t.Helper()
	store := memory.NewEntryStore()
	trail, err := NewTrailService(context.Background(), store, nil, newTestLogger(), nil, domain.DefaultTrailConfig())
	require.NoError(t, err)
	return trail, store
}

// logN appends n INFO entries for the given user, returning them in order.
func logN(t *testing.T, trail *TrailService, n int, userID string) []*domain.AuditEntry {
	t.Helper()
	out := make([]*domain.AuditEntry, n)
	for i := 0; i < n; i++ {
		e, err := trail.LogCreate(context.Background(), domain.EntityInvoice,
			fmt.Sprintf("INV-%03d", i), userID, "Test User", nil)
		require.NoError(t, err)
		out[i] = e
	}
	return out
}

var _ ports.AuditTrail = (*TrailService)(nil)
