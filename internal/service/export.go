package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
)

// csvHeader is the fixed column set of CSV exports. Localized label columns
// sit next to their raw codes so the file reads for both auditors and tools.
var csvHeader = []string{
	"ID", "Timestamp",
	"Action", "ActionLabel(RO)",
	"EntityType", "EntityTypeLabel(RO)",
	"EntityId", "EntityName",
	"UserId", "UserName",
	"IpAddress", "Severity",
}

// ExportJSON serializes the matching entries as a flat JSON array.
func (s *TrailService) ExportJSON(ctx context.Context, filter ports.QueryFilter) ([]byte, error) {
	entries, err := s.exportEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, apperror.ErrExportFailure(err)
	}
	s.log.Info().Int("entries", len(entries)).Msg("audit trail exported as JSON")
	return data, nil
}

// ExportCSV serializes the matching entries as a semicolon-delimited table.
// Semicolons match the locale convention of the spreadsheets the files are
// opened with.
func (s *TrailService) ExportCSV(ctx context.Context, filter ports.QueryFilter) (string, error) {
	entries, err := s.exportEntries(ctx, filter)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return "", apperror.ErrExportFailure(err)
	}
	for i := range entries {
		e := &entries[i]
		record := []string{
			e.ID,
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			string(e.Action), e.Action.LabelRo(),
			string(e.EntityType), e.EntityType.LabelRo(),
			e.EntityID, e.EntityName,
			e.UserID, e.UserName,
			e.IPAddress, string(e.Severity),
		}
		if err := w.Write(record); err != nil {
			return "", apperror.ErrExportFailure(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperror.ErrExportFailure(err)
	}

	s.log.Info().Int("entries", len(entries)).Msg("audit trail exported as CSV")
	return sb.String(), nil
}

// exportEntries runs the filter without pagination, bounded only by the
// configured hard maximum.
func (s *TrailService) exportEntries(ctx context.Context, filter ports.QueryFilter) ([]domain.AuditEntry, error) {
	matched, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortEntries(matched, filter.SortField, filter.SortAsc)
	if max := s.GetConfig().MaxEntriesPerQuery; len(matched) > max {
		matched = matched[:max]
	}
	return matched, nil
}
