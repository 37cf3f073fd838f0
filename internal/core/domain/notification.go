package domain

import "time"

// NotificationKind identifies the audit trail notifications consumed by the
// platform event bus.
type NotificationKind string

const (
	NotificationEntryLogged    NotificationKind = "entry-logged"
	NotificationCriticalAction NotificationKind = "critical-action"
	NotificationPurged         NotificationKind = "purged"
	NotificationAnonymized     NotificationKind = "anonymized"
	NotificationConfigured     NotificationKind = "configured"
)

// Notification is the payload handed to the event bus. Delivery is
// best-effort; the trail never fails a write because a notification could
// not be published.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Timestamp time.Time        `json:"timestamp"`
	// Summary is a human-readable description, Romanian for critical
	// actions so operators read alerts in their own language.
	Summary string         `json:"summary,omitempty"`
	Entry   *AuditEntry    `json:"entry,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}
