package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
)

func TestExportJSON(t *testing.T) {
	trail, _ := newTestTrail(t)
	ctx := context.Background()

	logN(t, trail, 3, "u-1")

	data, err := trail.ExportJSON(ctx, ports.QueryFilter{})
	require.NoError(t, err)

	var entries []domain.AuditEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 3)
	assert.NotEmpty(t, entries[0].Hash)
}

func TestExportJSON_FilterApplies(t *testing.T) {
	trail, _ := newTestTrail(t)
	ctx := context.Background()

	logN(t, trail, 2, "u-1")
	logN(t, trail, 1, "u-2")

	data, err := trail.ExportJSON(ctx, ports.QueryFilter{UserID: "u-2"})
	require.NoError(t, err)

	var entries []domain.AuditEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 1)
}

func TestExportCSV(t *testing.T) {
	trail, _ := newTestTrail(t)
	ctx := context.Background()

	_, err := trail.LogDelete(ctx, domain.EntityInvoice, "INV-1", "u-1", "Ana Pop",
		&ports.LogParams{EntityName: "Factura 001", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	out, err := trail.ExportCSV(ctx, ports.QueryFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"ID;Timestamp;Action;ActionLabel(RO);EntityType;EntityTypeLabel(RO);EntityId;EntityName;UserId;UserName;IpAddress;Severity",
		lines[0])

	row := lines[1]
	assert.Contains(t, row, "DELETE")
	assert.Contains(t, row, "Ștergere")
	assert.Contains(t, row, "INVOICE")
	assert.Contains(t, row, "Factură")
	assert.Contains(t, row, "Ana Pop")
	assert.Contains(t, row, "10.0.0.1")
	assert.Contains(t, row, "CRITICAL")
}

func TestExportCSV_Empty(t *testing.T) {
	trail, _ := newTestTrail(t)

	out, err := trail.ExportCSV(context.Background(), ports.QueryFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestExport_CappedAtQueryMaximum(t *testing.T) {
	trail, _ := newTestTrail(t)
	ctx := context.Background()

	cfg := trail.GetConfig()
	cfg.MaxEntriesPerQuery = 5
	require.NoError(t, trail.Configure(ctx, cfg))

	logN(t, trail, 8, "u-1")

	data, err := trail.ExportJSON(ctx, ports.QueryFilter{})
	require.NoError(t, err)

	var entries []domain.AuditEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 5)
}
