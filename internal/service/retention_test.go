package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
)

func TestPurgeOldEntries(t *testing.T) {
	trail, store := newTestTrail(t)
	ctx := context.Background()

	logged := logN(t, trail, 3, "u-1")

	// Age the first two past the retention horizon.
	ancient := time.Now().UTC().AddDate(-11, 0, 0)
	for _, e := range logged[:2] {
		require.True(t, store.Tamper(e.ID, func(entry *domain.AuditEntry) {
			entry.Timestamp = ancient
		}))
	}

	removed, err := trail.PurgeOldEntries(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPurgeOldEntries_NothingToPurge(t *testing.T) {
	trail, _ := newTestTrail(t)

	logN(t, trail, 3, "u-1")

	removed, err := trail.PurgeOldEntries(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}

func TestAnonymizeUser(t *testing.T) {
	trail, store := newTestTrail(t)
	ctx := context.Background()

	_, err := trail.LogCreate(ctx, domain.EntityInvoice, "INV-1", "u-gdpr", "Maria Pop",
		&ports.LogParams{IPAddress: "10.0.0.7", UserAgent: "Mozilla/5.0"})
	require.NoError(t, err)
	_, err = trail.LogUpdate(ctx, domain.EntityInvoice, "INV-1", "u-gdpr", "Maria Pop", nil, nil)
	require.NoError(t, err)
	_, err = trail.LogCreate(ctx, domain.EntityInvoice, "INV-2", "u-other", "Dan", nil)
	require.NoError(t, err)

	count, err := trail.AnonymizeUser(ctx, "u-gdpr")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := store.All(ctx)
	require.NoError(t, err)

	pseudonym := Pseudonym("u-gdpr", trail.GetConfig().AnonymizationSalt)
	anonymized := 0
	for _, e := range entries {
		if e.EntityID == "INV-2" {
			assert.Equal(t, "u-other", e.UserID, "other users are untouched")
			continue
		}
		anonymized++
		assert.Equal(t, pseudonym, e.UserID)
		assert.Equal(t, AnonymousLabel, e.UserName)
		assert.Empty(t, e.IPAddress)
		assert.Empty(t, e.UserAgent)
	}
	assert.Equal(t, 2, anonymized)
}

func TestAnonymizeUser_Disabled(t *testing.T) {
	trail, _ := newTestTrail(t)
	ctx := context.Background()

	logN(t, trail, 1, "u-1")

	cfg := trail.GetConfig()
	cfg.EnableAnonymization = false
	require.NoError(t, trail.Configure(ctx, cfg))

	_, err := trail.AnonymizeUser(ctx, "u-1")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUD_003", appErr.Code)

	// No partial mutation.
	activity, err := trail.GetUserActivity(ctx, "u-1", 10)
	require.NoError(t, err)
	assert.Len(t, activity, 1)
}

func TestAnonymizeUser_UnknownUser(t *testing.T) {
	trail, _ := newTestTrail(t)

	count, err := trail.AnonymizeUser(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPseudonym_DeterministicPerSalt(t *testing.T) {
	a := Pseudonym("u-1", "salt-a")
	b := Pseudonym("u-1", "salt-a")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "anon-")

	other := Pseudonym("u-2", "salt-a")
	assert.NotEqual(t, a, other)

	resalted := Pseudonym("u-1", "salt-b")
	assert.NotEqual(t, a, resalted)
}
