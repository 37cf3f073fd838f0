package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
	"compliance-audit-trail/pkg/metrics"
)

// TrailService is the tamper-evident audit trail. All writes are serialized
// through one mutex so the hash chain has a single, unambiguous tip.
type TrailService struct {
	store   ports.EntryStore
	pub     ports.EventPublisher
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu         sync.Mutex
	cfg        domain.TrailConfig
	sanitizer  *Sanitizer
	classifier *SeverityClassifier
	tipHash    string
}

// NewTrailService wires the trail. If the store already holds entries the
// chain tip is resumed from the last one, so restarts keep the chain
// unbroken. pub and m may be nil.
func NewTrailService(ctx context.Context, store ports.EntryStore, pub ports.EventPublisher, log zerolog.Logger, m *metrics.Metrics, cfg domain.TrailConfig) (*TrailService, error) {
	s := &TrailService{
		store:      store,
		pub:        pub,
		log:        log,
		metrics:    m,
		cfg:        cfg,
		sanitizer:  NewSanitizer(cfg.ExcludedFields),
		classifier: NewSeverityClassifier(cfg.CriticalActions),
		tipHash:    GenesisHash(),
	}

	entries, err := store.All(ctx)
	if err != nil {
		return nil, apperror.ErrStoreError(err)
	}
	if n := len(entries); n > 0 {
		if last := entries[n-1].Hash; last != "" {
			s.tipHash = last
		}
		log.Info().Int("entries", n).Msg("audit trail resumed from existing store")
	}
	return s, nil
}

// Log appends one audit entry. The candidate is sanitized, classified,
// stamped and chained under the write lock; notifications go out after the
// append and never fail the write.
func (s *TrailService) Log(ctx context.Context, action domain.Action, entityType domain.EntityType, entityID, userID, userName string, p *ports.LogParams) (*domain.AuditEntry, error) {
	if action == "" || entityType == "" {
		return nil, apperror.ErrValidation("action and entity type are required")
	}
	if entityID == "" {
		return nil, apperror.ErrValidation("entity id is required")
	}
	if userID == "" {
		return nil, apperror.ErrValidation("user id is required")
	}
	if p == nil {
		p = &ports.LogParams{}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	s.mu.Lock()
	entry := domain.AuditEntry{
		ID:         id.String(),
		Timestamp:  time.Now().UTC(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: p.EntityName,

		UserID:   userID,
		UserName: userName,
		UserRole: p.UserRole,

		IPAddress: p.IPAddress,
		UserAgent: p.UserAgent,
		SessionID: p.SessionID,
		TenantID:  p.TenantID,

		Changes:       s.sanitizer.SanitizeChanges(p.Changes),
		PreviousValue: s.sanitizer.Sanitize(p.PreviousValue),
		NewValue:      s.sanitizer.Sanitize(p.NewValue),
		Metadata:      sanitizeMetadata(s.sanitizer, p.Metadata),

		Severity: s.classifier.Classify(action, entityType),
	}

	if s.cfg.EnableHashing {
		entry.PreviousHash = s.tipHash
		entry.Hash = EntryHash(&entry)
	}

	if err := s.store.Append(ctx, &entry); err != nil {
		s.mu.Unlock()
		return nil, apperror.ErrStoreError(err)
	}
	if s.cfg.EnableHashing {
		s.tipHash = entry.Hash
	}
	s.mu.Unlock()

	s.log.Info().
		Str("entry_id", entry.ID).
		Str("action", string(entry.Action)).
		Str("entity_type", string(entry.EntityType)).
		Str("entity_id", entry.EntityID).
		Str("user_id", entry.UserID).
		Str("severity", string(entry.Severity)).
		Msg("audit entry logged")
	s.metrics.LogEntry(string(entry.Severity))

	s.publish(ctx, domain.Notification{
		Kind:      domain.NotificationEntryLogged,
		Timestamp: entry.Timestamp,
		Entry:     &entry,
	})
	if entry.Severity == domain.SeverityCritical {
		s.publish(ctx, domain.Notification{
			Kind:      domain.NotificationCriticalAction,
			Timestamp: entry.Timestamp,
			Summary:   criticalSummary(&entry),
			Entry:     &entry,
		})
	}

	return &entry, nil
}

// criticalSummary renders the operator-facing alert line in Romanian.
func criticalSummary(e *domain.AuditEntry) string {
	who := e.UserName
	if who == "" {
		who = e.UserID
	}
	return fmt.Sprintf("Acțiune critică: %s pe %s %s de către %s",
		e.Action.LabelRo(), e.EntityType.LabelRo(), e.EntityID, who)
}

func sanitizeMetadata(san *Sanitizer, md map[string]any) map[string]any {
	if len(md) == 0 {
		return nil
	}
	out, _ := san.Sanitize(md).(map[string]any)
	return out
}

// publish hands a notification to the bus. Failures are logged and counted,
// never surfaced to the caller.
func (s *TrailService) publish(ctx context.Context, n domain.Notification) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, n); err != nil {
		s.metrics.NotifyFailure()
		s.log.Warn().Err(apperror.ErrPublishError(err)).Str("kind", string(n.Kind)).Msg("failed to publish audit notification")
	}
}

// LogCreate records the creation of an entity.
func (s *TrailService) LogCreate(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, p *ports.LogParams) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionCreate, entityType, entityID, userID, userName, p)
}

// LogUpdate records a field-level update of an entity.
func (s *TrailService) LogUpdate(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, changes []domain.Change, p *ports.LogParams) (*domain.AuditEntry, error) {
	if p == nil {
		p = &ports.LogParams{}
	}
	p.Changes = changes
	return s.Log(ctx, domain.ActionUpdate, entityType, entityID, userID, userName, p)
}

// LogDelete records the deletion of an entity.
func (s *TrailService) LogDelete(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, p *ports.LogParams) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionDelete, entityType, entityID, userID, userName, p)
}

// LogLogin records a user sign-in. The user is both actor and target.
func (s *TrailService) LogLogin(ctx context.Context, userID, userName string, p *ports.LogParams) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionLogin, domain.EntityUser, userID, userID, userName, p)
}

// LogLogout records a user sign-out.
func (s *TrailService) LogLogout(ctx context.Context, userID, userName string, p *ports.LogParams) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionLogout, domain.EntityUser, userID, userID, userName, p)
}

// LogApproval records an approval decision: APPROVE when approved is true,
// REJECT otherwise.
func (s *TrailService) LogApproval(ctx context.Context, entityType domain.EntityType, entityID, userID, userName string, approved bool, p *ports.LogParams) (*domain.AuditEntry, error) {
	action := domain.ActionApprove
	if !approved {
		action = domain.ActionReject
	}
	return s.Log(ctx, action, entityType, entityID, userID, userName, p)
}

// LogExport records a bulk data export.
func (s *TrailService) LogExport(ctx context.Context, entityType domain.EntityType, userID, userName string, recordCount int, format string) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionExport, entityType, domain.BulkEntityID, userID, userName, &ports.LogParams{
		Metadata: map[string]any{"record_count": recordCount, "format": format},
	})
}

// LogImport records a bulk data import.
func (s *TrailService) LogImport(ctx context.Context, entityType domain.EntityType, userID, userName string, recordCount int, format string) (*domain.AuditEntry, error) {
	return s.Log(ctx, domain.ActionImport, entityType, domain.BulkEntityID, userID, userName, &ports.LogParams{
		Metadata: map[string]any{"record_count": recordCount, "format": format},
	})
}

// Configure replaces the runtime configuration. Existing entries are not
// rewritten; the new settings apply from the next operation on.
func (s *TrailService) Configure(ctx context.Context, cfg domain.TrailConfig) error {
	if cfg.RetentionYears < 1 {
		return apperror.ErrInvalidConfig("retention must be at least one year")
	}
	if cfg.MaxEntriesPerQuery < 1 {
		return apperror.ErrInvalidConfig("max entries per query must be positive")
	}

	s.mu.Lock()
	s.cfg = cfg
	s.sanitizer = NewSanitizer(cfg.ExcludedFields)
	s.classifier = NewSeverityClassifier(cfg.CriticalActions)
	s.mu.Unlock()

	s.log.Info().
		Int("retention_years", cfg.RetentionYears).
		Bool("hashing", cfg.EnableHashing).
		Bool("anonymization", cfg.EnableAnonymization).
		Msg("audit trail reconfigured")

	s.publish(ctx, domain.Notification{
		Kind:      domain.NotificationConfigured,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"retention_years":       cfg.RetentionYears,
			"enable_hashing":        cfg.EnableHashing,
			"enable_anonymization":  cfg.EnableAnonymization,
			"max_entries_per_query": cfg.MaxEntriesPerQuery,
		},
	})
	return nil
}

// GetConfig returns a copy of the current configuration.
func (s *TrailService) GetConfig() domain.TrailConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}
