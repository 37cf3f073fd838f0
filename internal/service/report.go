package service

import (
	"context"
	"fmt"
	"time"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
)

// anafEntityTypes is the regulator-facing scope of the ANAF report: the
// fiscal document types the Romanian tax authority audits.
var anafEntityTypes = []domain.EntityType{
	domain.EntityInvoice,
	domain.EntityDeclaration,
	domain.EntityTransaction,
	domain.EntityPayment,
}

// GenerateComplianceReport summarizes the trail over [start, end].
func (s *TrailService) GenerateComplianceReport(ctx context.Context, start, end time.Time, name string) (*ports.ComplianceReport, error) {
	return s.buildReport(ctx, start, end, name, nil)
}

// GenerateANAFAuditReport builds a compliance report scoped to fiscal
// entity types over the given month, or the whole year when month is 0.
func (s *TrailService) GenerateANAFAuditReport(ctx context.Context, year int, month int) (*ports.ComplianceReport, error) {
	if year < 1 {
		return nil, apperror.ErrValidation("year is required")
	}
	if month < 0 || month > 12 {
		return nil, apperror.ErrValidation("month must be between 1 and 12")
	}

	var start, end time.Time
	var name string
	if month == 0 {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		name = fmt.Sprintf("Raport audit ANAF %d", year)
	} else {
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		name = fmt.Sprintf("Raport audit ANAF %02d/%d", month, year)
	}

	return s.buildReport(ctx, start, end, name, anafEntityTypes)
}

func (s *TrailService) buildReport(ctx context.Context, start, end time.Time, name string, entityTypes []domain.EntityType) (*ports.ComplianceReport, error) {
	if end.Before(start) {
		return nil, apperror.ErrInvalidRange()
	}
	if name == "" {
		name = fmt.Sprintf("Compliance report %s - %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	matched, err := s.filtered(ctx, ports.QueryFilter{
		From:        &start,
		To:          &end,
		EntityTypes: entityTypes,
	})
	if err != nil {
		return nil, err
	}
	sortEntries(matched, "timestamp", true)
	if max := s.GetConfig().MaxEntriesPerQuery; len(matched) > max {
		matched = matched[:max]
	}

	report := &ports.ComplianceReport{
		Name:         name,
		GeneratedAt:  time.Now().UTC(),
		PeriodStart:  start,
		PeriodEnd:    end,
		TotalActions: len(matched),
		Entries:      matched,
	}

	users := make(map[string]struct{})
	entities := make(map[string]struct{})
	for i := range matched {
		e := &matched[i]
		if e.Severity == domain.SeverityCritical {
			report.CriticalActions++
		}
		users[e.UserID] = struct{}{}
		entities[string(e.EntityType)+"/"+e.EntityID] = struct{}{}
	}
	report.DistinctUsers = len(users)
	report.DistinctEntities = len(entities)

	s.log.Info().
		Str("report", report.Name).
		Int("total_actions", report.TotalActions).
		Int("critical_actions", report.CriticalActions).
		Msg("compliance report generated")

	return report, nil
}
