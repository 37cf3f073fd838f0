package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
)

const defaultPageSize = 50

// GetEntry returns a single entry by ID.
func (s *TrailService) GetEntry(ctx context.Context, id string) (*domain.AuditEntry, error) {
	if id == "" {
		return nil, apperror.ErrValidation("entry id is required")
	}
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, apperror.ErrStoreError(err)
	}
	for i := range entries {
		if entries[i].ID == id {
			e := entries[i]
			return &e, nil
		}
	}
	return nil, apperror.ErrNotFound("audit entry")
}

// Query returns one page of entries matching the filter. Unknown IDs and
// users simply produce an empty page.
func (s *TrailService) Query(ctx context.Context, filter ports.QueryFilter) (*ports.QueryResult, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveQuery(time.Since(started).Seconds()) }()

	matched, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortEntries(matched, filter.SortField, filter.SortAsc)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if max := s.GetConfig().MaxEntriesPerQuery; size > max {
		size = max
	}

	total := len(matched)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &ports.QueryResult{
		Entries:    matched[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

// GetEntityHistory returns every entry for one entity, newest first.
func (s *TrailService) GetEntityHistory(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.AuditEntry, error) {
	matched, err := s.filtered(ctx, ports.QueryFilter{
		EntityTypes: []domain.EntityType{entityType},
		EntityID:    entityID,
	})
	if err != nil {
		return nil, err
	}
	sortEntries(matched, "timestamp", false)
	return matched, nil
}

// GetUserActivity returns a user's most recent entries, newest first,
// capped at limit (default and ceiling: the configured query maximum).
func (s *TrailService) GetUserActivity(ctx context.Context, userID string, limit int) ([]domain.AuditEntry, error) {
	matched, err := s.filtered(ctx, ports.QueryFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	sortEntries(matched, "timestamp", false)

	max := s.GetConfig().MaxEntriesPerQuery
	if limit < 1 || limit > max {
		limit = max
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// filtered loads the store and applies every predicate of the filter.
func (s *TrailService) filtered(ctx context.Context, f ports.QueryFilter) ([]domain.AuditEntry, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, apperror.ErrStoreError(err)
	}
	out := make([]domain.AuditEntry, 0, len(entries))
	for _, e := range entries {
		if matches(&e, &f) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e *domain.AuditEntry, f *ports.QueryFilter) bool {
	if f.From != nil && e.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Timestamp.After(*f.To) {
		return false
	}
	if len(f.Actions) > 0 && !containsAction(f.Actions, e.Action) {
		return false
	}
	if len(f.EntityTypes) > 0 && !containsEntityType(f.EntityTypes, e.EntityType) {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if len(f.Severities) > 0 && !containsSeverity(f.Severities, e.Severity) {
		return false
	}
	if f.SearchText != "" && !matchesSearch(e, f.SearchText) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match over the
// human-readable fields, including both label languages so operators can
// search in Romanian.
func matchesSearch(e *domain.AuditEntry, text string) bool {
	needle := strings.ToLower(text)
	for _, hay := range []string{
		e.EntityName, e.UserName, e.EntityID,
		e.Action.Label(), e.Action.LabelRo(),
		e.EntityType.Label(), e.EntityType.LabelRo(),
	} {
		if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// sortEntries orders in place. Stable, so equal keys keep insertion order.
func sortEntries(entries []domain.AuditEntry, field string, asc bool) {
	var less func(a, b *domain.AuditEntry) bool
	switch field {
	case "action":
		less = func(a, b *domain.AuditEntry) bool { return a.Action < b.Action }
	case "entity_type":
		less = func(a, b *domain.AuditEntry) bool { return a.EntityType < b.EntityType }
	case "user_name":
		less = func(a, b *domain.AuditEntry) bool { return a.UserName < b.UserName }
	case "severity":
		less = func(a, b *domain.AuditEntry) bool { return severityRank(a.Severity) < severityRank(b.Severity) }
	default: // timestamp
		less = func(a, b *domain.AuditEntry) bool { return a.Timestamp.Before(b.Timestamp) }
		if field == "" {
			// Unsorted queries read newest-first.
			asc = false
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if asc {
			return less(&entries[i], &entries[j])
		}
		return less(&entries[j], &entries[i])
	})
}

func severityRank(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 2
	case domain.SeverityWarning:
		return 1
	default:
		return 0
	}
}

func containsAction(list []domain.Action, a domain.Action) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}

func containsEntityType(list []domain.EntityType, t domain.EntityType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsSeverity(list []domain.Severity, s domain.Severity) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
