package ports

import (
	"context"
	"time"

	"compliance-audit-trail/internal/core/domain"
)

// EventPublisher hands trail notifications to the platform event bus.
// Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// LogParams holds the optional fields of a log call. A nil *LogParams is
// equivalent to an empty one.
type LogParams struct {
	EntityName    string
	UserRole      string
	IPAddress     string
	UserAgent     string
	SessionID     string
	TenantID      string
	Changes       []domain.Change
	PreviousValue any
	NewValue      any
	Metadata      map[string]any
}

// QueryFilter holds filter + sort + pagination for querying the trail.
// All predicates are optional and AND-combined.
type QueryFilter struct {
	From *time.Time
	To   *time.Time

	Actions     []domain.Action
	EntityTypes []domain.EntityType
	EntityID    string
	UserID      string
	Severities  []domain.Severity

	// SearchText matches case-insensitively against entity name, user name
	// and the localized action/entity labels (both languages).
	SearchText string

	// SortField selects the entry field to sort on; empty means timestamp.
	// Ties keep insertion order.
	SortField string
	SortAsc   bool

	Page     int // 1-indexed; values < 1 mean page 1
	PageSize int // capped at the configured maximum
}

// QueryResult is one page of a trail query.
type QueryResult struct {
	Entries    []domain.AuditEntry
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// IntegrityResult reports a hash-chain verification pass. Failures are data,
// not errors: the verifier always completes and callers decide escalation.
type IntegrityResult struct {
	Valid          bool
	CheckedCount   int
	InvalidEntries []string
}

// ComplianceReport aggregates a date-bounded slice of the trail for
// auditors. Entries carries the full matching list alongside the summary.
type ComplianceReport struct {
	Name             string
	GeneratedAt      time.Time
	PeriodStart      time.Time
	PeriodEnd        time.Time
	TotalActions     int
	CriticalActions  int
	DistinctUsers    int
	DistinctEntities int
	Entries          []domain.AuditEntry
}

// UserCount pairs an actor with an activity count.
type UserCount struct {
	UserID   string
	UserName string
	Count    int
}

// TrailStats is the operator-facing snapshot of trail activity.
type TrailStats struct {
	TotalEntries int
	Last24h      int
	Last7d       int
	Last30d      int

	ByAction     map[domain.Action]int
	ByEntityType map[domain.EntityType]int
	BySeverity   map[domain.Severity]int

	DistinctUsers int
	TopUsers      []UserCount

	// Browsers counts entries by browser family parsed from the stored
	// user-agent strings; entries without one are omitted.
	Browsers map[string]int
}

// AuditTrail is the full surface exposed to the other business modules.
// Log and its convenience wrappers are the only write entry point.
type AuditTrail interface {
	Log(ctx context.Context, action domain.Action, entityType domain.EntityType, entityID, userID, userName string, p *LogParams) (*domain.AuditEntry, error)

	LogCreate(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, p *LogParams) (*domain.AuditEntry, error)
	LogUpdate(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, changes []domain.Change, p *LogParams) (*domain.AuditEntry, error)
	LogDelete(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, p *LogParams) (*domain.AuditEntry, error)
	LogLogin(ctx context.Context, userID, userName string, p *LogParams) (*domain.AuditEntry, error)
	LogLogout(ctx context.Context, userID, userName string, p *LogParams) (*domain.AuditEntry, error)
	LogApproval(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, approved bool, p *LogParams) (*domain.AuditEntry, error)
	LogExport(ctx context.Context, entityType domain.EntityType, userID, userName string, recordCount int, format string) (*domain.AuditEntry, error)
	LogImport(ctx context.Context, entityType domain.EntityType, userID, userName string, recordCount int, format string) (*domain.AuditEntry, error)

	GetEntry(ctx context.Context, id string) (*domain.AuditEntry, error)
	Query(ctx context.Context, filter QueryFilter) (*QueryResult, error)
	GetEntityHistory(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.AuditEntry, error)
	GetUserActivity(ctx context.Context, userID string, limit int) ([]domain.AuditEntry, error)

	VerifyIntegrity(ctx context.Context, startID, endID string) (*IntegrityResult, error)

	GenerateComplianceReport(ctx context.Context, start, end time.Time, name string) (*ComplianceReport, error)
	GenerateANAFAuditReport(ctx context.Context, year int, month int) (*ComplianceReport, error)

	GetStats(ctx context.Context) (*TrailStats, error)

	PurgeOldEntries(ctx context.Context) (int64, error)
	AnonymizeUser(ctx context.Context, userID string) (int, error)

	ExportJSON(ctx context.Context, filter QueryFilter) ([]byte, error)
	ExportCSV(ctx context.Context, filter QueryFilter) (string, error)

	Configure(ctx context.Context, cfg domain.TrailConfig) error
	GetConfig() domain.TrailConfig
}
