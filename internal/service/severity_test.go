package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compliance-audit-trail/internal/core/domain"
)

func TestSeverityClassifier_Classify(t *testing.T) {
	c := NewSeverityClassifier(domain.DefaultTrailConfig().CriticalActions)

	tests := []struct {
		name       string
		action     domain.Action
		entityType domain.EntityType
		want       domain.Severity
	}{
		{"delete is always critical", domain.ActionDelete, domain.EntityProduct, domain.SeverityCritical},
		{"approve is critical", domain.ActionApprove, domain.EntityInvoice, domain.SeverityCritical},
		{"reject is critical", domain.ActionReject, domain.EntityDeclaration, domain.SeverityCritical},
		{"submit is critical", domain.ActionSubmit, domain.EntityDeclaration, domain.SeverityCritical},
		{"update on setting is warning", domain.ActionUpdate, domain.EntitySetting, domain.SeverityWarning},
		{"update on role is warning", domain.ActionUpdate, domain.EntityRole, domain.SeverityWarning},
		{"update on permission is warning", domain.ActionUpdate, domain.EntityPermission, domain.SeverityWarning},
		{"update on user is warning", domain.ActionUpdate, domain.EntityUser, domain.SeverityWarning},
		{"update on invoice is info", domain.ActionUpdate, domain.EntityInvoice, domain.SeverityInfo},
		{"create on product is info", domain.ActionCreate, domain.EntityProduct, domain.SeverityInfo},
		// CREATE on ROLE stays INFO: only UPDATE is escalated for these
		// entity types.
		{"create on role is info", domain.ActionCreate, domain.EntityRole, domain.SeverityInfo},
		{"read is info", domain.ActionRead, domain.EntityUser, domain.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.action, tt.entityType))
		})
	}
}

func TestSeverityClassifier_ConfiguredCriticalSet(t *testing.T) {
	c := NewSeverityClassifier([]domain.Action{domain.ActionExport})

	assert.Equal(t, domain.SeverityCritical, c.Classify(domain.ActionExport, domain.EntityInvoice))
	// DELETE is only critical through the configured set.
	assert.Equal(t, domain.SeverityInfo, c.Classify(domain.ActionDelete, domain.EntityInvoice))
}
