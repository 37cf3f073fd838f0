package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"compliance-audit-trail/internal/core/domain"
)

// entryColumns is the canonical column list, kept in one place so INSERT
// and SELECT can never drift apart.
const entryColumns = `id, ts, action, entity_type, entity_id, entity_name,
	user_id, user_name, user_role, ip_address, user_agent, session_id, tenant_id,
	changes, previous_value, new_value, metadata, severity, hash, previous_hash`

// EntryStore implements ports.EntryStore on PostgreSQL. A bigserial seq
// column preserves insertion order independently of timestamps.
type EntryStore struct {
	pool Pool
}

// NewEntryStore creates a PostgreSQL-backed EntryStore.
func NewEntryStore(pool Pool) *EntryStore {
	return &EntryStore{pool: pool}
}

// Append inserts an entry at the tail of the trail.
func (s *EntryStore) Append(ctx context.Context, e *domain.AuditEntry) error {
	// Empty collections map to SQL NULL rather than JSON "null".
	var changesVal, metaVal any
	if len(e.Changes) > 0 {
		changesVal = e.Changes
	}
	if len(e.Metadata) > 0 {
		metaVal = e.Metadata
	}

	changes, err := marshalJSON(changesVal)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	prev, err := marshalJSON(e.PreviousValue)
	if err != nil {
		return fmt.Errorf("marshal previous value: %w", err)
	}
	next, err := marshalJSON(e.NewValue)
	if err != nil {
		return fmt.Errorf("marshal new value: %w", err)
	}
	meta, err := marshalJSON(metaVal)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `INSERT INTO audit_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err = s.pool.Exec(ctx, query,
		e.ID, e.Timestamp, string(e.Action), string(e.EntityType), e.EntityID, e.EntityName,
		e.UserID, e.UserName, e.UserRole, e.IPAddress, e.UserAgent, e.SessionID, e.TenantID,
		changes, prev, next, meta, string(e.Severity), e.Hash, e.PreviousHash,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// All returns every entry in insertion order.
func (s *EntryStore) All(ctx context.Context) ([]domain.AuditEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM audit_entries ORDER BY seq`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e                       domain.AuditEntry
			action, entityType, sev string
			changes, prev, next, md []byte
		)
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &action, &entityType, &e.EntityID, &e.EntityName,
			&e.UserID, &e.UserName, &e.UserRole, &e.IPAddress, &e.UserAgent, &e.SessionID, &e.TenantID,
			&changes, &prev, &next, &md, &sev, &e.Hash, &e.PreviousHash,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = domain.Action(action)
		e.EntityType = domain.EntityType(entityType)
		e.Severity = domain.Severity(sev)
		if err := unmarshalJSON(changes, &e.Changes); err != nil {
			return nil, fmt.Errorf("unmarshal changes: %w", err)
		}
		if err := unmarshalJSON(prev, &e.PreviousValue); err != nil {
			return nil, fmt.Errorf("unmarshal previous value: %w", err)
		}
		if err := unmarshalJSON(next, &e.NewValue); err != nil {
			return nil, fmt.Errorf("unmarshal new value: %w", err)
		}
		if err := unmarshalJSON(md, &e.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

// Update rewrites the actor-identity fields of one entry. Hash columns are
// deliberately not in the statement.
func (s *EntryStore) Update(ctx context.Context, e domain.AuditEntry) error {
	query := `UPDATE audit_entries
		SET user_id = $2, user_name = $3, ip_address = $4, user_agent = $5
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, e.ID, e.UserID, e.UserName, e.IPAddress, e.UserAgent)
	if err != nil {
		return fmt.Errorf("update audit entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s not found", e.ID)
	}
	return nil
}

// DeleteBefore removes entries with a timestamp strictly older than cutoff.
func (s *EntryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM audit_entries WHERE ts < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete audit entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Len returns the number of stored entries.
func (s *EntryStore) Len(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return n, nil
}

// marshalJSON maps nil to a SQL NULL instead of the JSON literal "null".
func marshalJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
