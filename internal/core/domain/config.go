package domain

// TrailConfig is the runtime-tunable behavior of the audit trail. Every
// field can be changed through Configure while the trail is live.
type TrailConfig struct {
	// RetentionYears is the purge horizon. Ten years matches Romanian
	// financial/tax record-keeping requirements.
	RetentionYears int

	// EnableHashing controls hash-chain assignment on new entries. Entries
	// appended while disabled carry empty digests and will be reported by
	// integrity verification.
	EnableHashing bool

	// EnableAnonymization gates AnonymizeUser.
	EnableAnonymization bool

	// CriticalActions are escalated to CRITICAL severity regardless of
	// entity type.
	CriticalActions []Action

	// ExcludedFields are field names (matched case-insensitively) whose
	// values are replaced with the redaction sentinel before storage.
	ExcludedFields []string

	// MaxEntriesPerQuery caps the page size of any query or export.
	MaxEntriesPerQuery int

	// AnonymizationSalt feeds the deterministic pseudonym derivation. It
	// must stay stable across restarts or pseudonyms stop being consistent.
	AnonymizationSalt string
}

// DefaultTrailConfig returns the configuration the trail starts with.
func DefaultTrailConfig() TrailConfig {
	return TrailConfig{
		RetentionYears:      10,
		EnableHashing:       true,
		EnableAnonymization: true,
		CriticalActions: []Action{
			ActionDelete, ActionApprove, ActionReject, ActionSubmit,
		},
		ExcludedFields:     []string{"password", "token", "secret", "apikey"},
		MaxEntriesPerQuery: 1000,
		AnonymizationSalt:  "compliance-audit-trail",
	}
}
