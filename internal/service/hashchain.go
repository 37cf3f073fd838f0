package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"compliance-audit-trail/internal/core/domain"
)

// genesisSeed anchors the chain: the first entry's PreviousHash is
// sha256(genesisSeed).
const genesisSeed = "GENESIS"

// GenesisHash returns the fixed digest that anchors the hash chain.
func GenesisHash() string {
	sum := sha256.Sum256([]byte(genesisSeed))
	return hex.EncodeToString(sum[:])
}

// canonicalString serializes the canonical field subset of an entry. Only
// these six fields feed the digest: Changes, Metadata and snapshots may
// legitimately vary in shape and are deliberately excluded.
//
// Format: timestamp|action|entityType|entityId|userId|previousHash
func canonicalString(e *domain.AuditEntry) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Action, e.EntityType, e.EntityID, e.UserID, e.PreviousHash)
}

// EntryHash computes the SHA-256 digest of an entry's canonical fields,
// hex-encoded. PreviousHash must already be assigned.
func EntryHash(e *domain.AuditEntry) string {
	sum := sha256.Sum256([]byte(canonicalString(e)))
	return hex.EncodeToString(sum[:])
}
