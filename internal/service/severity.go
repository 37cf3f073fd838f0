package service

import "compliance-audit-trail/internal/core/domain"

// warningUpdateTargets are the entity types whose UPDATE is escalated to
// WARNING. The rule is deliberately narrow: other combinations one might
// expect here (CREATE on ROLE, for instance) are not escalated, matching
// the platform's established triage behavior.
var warningUpdateTargets = map[domain.EntityType]struct{}{
	domain.EntitySetting:    {},
	domain.EntityRole:       {},
	domain.EntityPermission: {},
	domain.EntityUser:       {},
}

// SeverityClassifier derives the triage severity of an entry from its
// action and entity type. Pure and deterministic.
type SeverityClassifier struct {
	critical map[domain.Action]struct{}
}

// NewSeverityClassifier builds a classifier with the given critical-action
// set.
func NewSeverityClassifier(critical []domain.Action) *SeverityClassifier {
	set := make(map[domain.Action]struct{}, len(critical))
	for _, a := range critical {
		set[a] = struct{}{}
	}
	return &SeverityClassifier{critical: set}
}

// Classify applies the rules in order: critical action set first, then the
// UPDATE-on-sensitive-entity escalation, then INFO.
func (c *SeverityClassifier) Classify(action domain.Action, entityType domain.EntityType) domain.Severity {
	if _, ok := c.critical[action]; ok {
		return domain.SeverityCritical
	}
	if action == domain.ActionUpdate {
		if _, ok := warningUpdateTargets[entityType]; ok {
			return domain.SeverityWarning
		}
	}
	return domain.SeverityInfo
}
