package ports

import (
	"context"
	"time"

	"compliance-audit-trail/internal/core/domain"
)

// EntryStore defines persistence for audit entries. The log is append-only:
// Update exists solely for the sanctioned anonymization mutation and
// DeleteBefore solely for the retention purge. All must return entries in
// insertion order.
type EntryStore interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	All(ctx context.Context) ([]domain.AuditEntry, error)
	// Update rewrites an existing entry by ID. Only actor-identity fields
	// (UserID, UserName, IPAddress, UserAgent) may differ from the stored
	// row; hash fields are never touched.
	Update(ctx context.Context, entry domain.AuditEntry) error
	// DeleteBefore removes every entry with a timestamp strictly older than
	// cutoff and returns the number removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Len(ctx context.Context) (int64, error)
}
