package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compliance-audit-trail/internal/core/domain"
)

func TestGenesisHash_Stable(t *testing.T) {
	// sha256("GENESIS"), hex. Anchors every chain ever written, so it must
	// never change.
	assert.Equal(t,
		"901131d838b17aac0f7885b81e03cbdc9f5157a00343d30ab22083685ed1416a",
		GenesisHash())
	assert.Len(t, GenesisHash(), 64)
}

func TestEntryHash_Recomputable(t *testing.T) {
	e := &domain.AuditEntry{
		Timestamp:    time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
		Action:       domain.ActionCreate,
		EntityType:   domain.EntityInvoice,
		EntityID:     "INV-001",
		UserID:       "u-1",
		PreviousHash: GenesisHash(),
	}
	h1 := EntryHash(e)
	h2 := EntryHash(e)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestEntryHash_CanonicalSubset(t *testing.T) {
	base := domain.AuditEntry{
		Timestamp:    time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
		Action:       domain.ActionUpdate,
		EntityType:   domain.EntityCustomer,
		EntityID:     "C-9",
		UserID:       "u-2",
		PreviousHash: GenesisHash(),
	}
	ref := EntryHash(&base)

	// Non-canonical fields do not feed the digest.
	freeform := base
	freeform.EntityName = "Acme SRL"
	freeform.UserName = "Ana"
	freeform.Metadata = map[string]any{"k": "v"}
	assert.Equal(t, ref, EntryHash(&freeform))

	// Every canonical field does.
	for name, mutate := range map[string]func(*domain.AuditEntry){
		"timestamp":     func(e *domain.AuditEntry) { e.Timestamp = e.Timestamp.Add(time.Second) },
		"action":        func(e *domain.AuditEntry) { e.Action = domain.ActionDelete },
		"entity_type":   func(e *domain.AuditEntry) { e.EntityType = domain.EntityInvoice },
		"entity_id":     func(e *domain.AuditEntry) { e.EntityID = "C-10" },
		"user_id":       func(e *domain.AuditEntry) { e.UserID = "u-3" },
		"previous_hash": func(e *domain.AuditEntry) { e.PreviousHash = "0000" },
	} {
		mutated := base
		mutate(&mutated)
		assert.NotEqual(t, ref, EntryHash(&mutated), "mutating %s must change the hash", name)
	}
}

func TestEntryHash_TimezoneInsensitive(t *testing.T) {
	utc := domain.AuditEntry{
		Timestamp:  time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
		Action:     domain.ActionRead,
		EntityType: domain.EntityReport,
		EntityID:   "R-1",
		UserID:     "u-1",
	}
	bucharest := utc
	bucharest.Timestamp = utc.Timestamp.In(time.FixedZone("EET", 2*3600))
	assert.Equal(t, EntryHash(&utc), EntryHash(&bucharest))
}
