package domain

import "time"

// Action is the closed set of audited operations.
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionRead     Action = "READ"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionLogin    Action = "LOGIN"
	ActionLogout   Action = "LOGOUT"
	ActionExport   Action = "EXPORT"
	ActionImport   Action = "IMPORT"
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
	ActionSubmit   Action = "SUBMIT"
	ActionCancel   Action = "CANCEL"
	ActionArchive  Action = "ARCHIVE"
	ActionRestore  Action = "RESTORE"
	ActionPrint    Action = "PRINT"
	ActionEmail    Action = "EMAIL"
	ActionDownload Action = "DOWNLOAD"
)

// EntityType is the closed set of business objects an action can target.
type EntityType string

const (
	EntityInvoice     EntityType = "INVOICE"
	EntityCustomer    EntityType = "CUSTOMER"
	EntityEmployee    EntityType = "EMPLOYEE"
	EntityUser        EntityType = "USER"
	EntityDocument    EntityType = "DOCUMENT"
	EntityTransaction EntityType = "TRANSACTION"
	EntityReport      EntityType = "REPORT"
	EntityDeclaration EntityType = "DECLARATION"
	EntityContract    EntityType = "CONTRACT"
	EntityPayment     EntityType = "PAYMENT"
	EntityWorkflow    EntityType = "WORKFLOW"
	EntitySetting     EntityType = "SETTING"
	EntityRole        EntityType = "ROLE"
	EntityPermission  EntityType = "PERMISSION"
	EntityProduct     EntityType = "PRODUCT"
)

// Severity is the triage label derived for every entry. It drives alerting,
// it is never supplied by the caller.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// BulkEntityID marks entries that describe a batch operation (export/import)
// rather than a single record.
const BulkEntityID = "BULK"

// Change records a single field mutation captured on an UPDATE.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// AuditEntry is one record of the tamper-evident trail. Entries are immutable
// once appended; the single sanctioned exception is actor anonymization,
// which rewrites UserID/UserName and clears IPAddress/UserAgent without
// touching Hash or PreviousHash.
type AuditEntry struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Action     Action     `json:"action"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	EntityName string     `json:"entity_name,omitempty"`

	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	UserRole string `json:"user_role,omitempty"`

	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	TenantID  string `json:"tenant_id,omitempty"`

	Changes       []Change       `json:"changes,omitempty"`
	PreviousValue any            `json:"previous_value,omitempty"`
	NewValue      any            `json:"new_value,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`

	Severity Severity `json:"severity"`

	// Hash is the SHA-256 digest of the canonical field subset
	// {Timestamp, Action, EntityType, EntityID, UserID, PreviousHash},
	// hex-encoded. PreviousHash is the Hash of the preceding entry, or the
	// genesis digest for the first one.
	Hash         string `json:"hash"`
	PreviousHash string `json:"previous_hash"`
}

// Actions returns every member of the closed action set.
func Actions() []Action {
	return []Action{
		ActionCreate, ActionRead, ActionUpdate, ActionDelete,
		ActionLogin, ActionLogout, ActionExport, ActionImport,
		ActionApprove, ActionReject, ActionSubmit, ActionCancel,
		ActionArchive, ActionRestore, ActionPrint, ActionEmail,
		ActionDownload,
	}
}

// EntityTypes returns every member of the closed entity-type set.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityInvoice, EntityCustomer, EntityEmployee, EntityUser,
		EntityDocument, EntityTransaction, EntityReport, EntityDeclaration,
		EntityContract, EntityPayment, EntityWorkflow, EntitySetting,
		EntityRole, EntityPermission, EntityProduct,
	}
}
