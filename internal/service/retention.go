package service

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/argon2"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/pkg/apperror"
)

// AnonymousLabel replaces the user name on anonymized entries.
const AnonymousLabel = "Utilizator anonimizat"

// PurgeOldEntries deletes every entry older than the retention horizon and
// returns the number removed.
func (s *TrailService) PurgeOldEntries(ctx context.Context) (int64, error) {
	cfg := s.GetConfig()
	cutoff := time.Now().UTC().AddDate(-cfg.RetentionYears, 0, 0)

	removed, err := s.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, apperror.ErrStoreError(err)
	}

	s.log.Info().
		Int64("removed", removed).
		Time("cutoff", cutoff).
		Int("retention_years", cfg.RetentionYears).
		Msg("retention purge completed")
	s.metrics.Purged(float64(removed))

	s.publish(ctx, domain.Notification{
		Kind:      domain.NotificationPurged,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		},
	})
	return removed, nil
}

// AnonymizeUser rewrites every entry of the given user with a deterministic
// pseudonym and strips IP address and user agent. The stored hashes are left
// untouched, so anonymized entries will fail integrity verification from
// then on; the anonymized notification carries the original-to-pseudonym
// mapping as the caller's own compliance record of the operation.
//
// The rewrite holds the write lock so it never interleaves with appends.
func (s *TrailService) AnonymizeUser(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, apperror.ErrValidation("user id is required")
	}

	s.mu.Lock()
	if !s.cfg.EnableAnonymization {
		s.mu.Unlock()
		return 0, apperror.ErrAnonymizationDisabled()
	}
	pseudonym := Pseudonym(userID, s.cfg.AnonymizationSalt)

	entries, err := s.store.All(ctx)
	if err != nil {
		s.mu.Unlock()
		return 0, apperror.ErrStoreError(err)
	}

	count := 0
	for _, e := range entries {
		if e.UserID != userID {
			continue
		}
		e.UserID = pseudonym
		e.UserName = AnonymousLabel
		e.IPAddress = ""
		e.UserAgent = ""
		if err := s.store.Update(ctx, e); err != nil {
			s.mu.Unlock()
			return count, apperror.ErrStoreError(err)
		}
		count++
	}
	s.mu.Unlock()

	s.log.Info().
		Str("pseudonym", pseudonym).
		Int("entries", count).
		Msg("user anonymized in audit trail")
	s.metrics.Anonymized(float64(count))

	s.publish(ctx, domain.Notification{
		Kind:      domain.NotificationAnonymized,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"original_user_id": userID,
			"pseudonym":        pseudonym,
			"entries":          count,
		},
	})
	return count, nil
}

// Pseudonym derives the stable anonymous id for a user. Argon2id keeps the
// original id non-recoverable while the same input always maps to the same
// pseudonym, so entries of one (former) user stay correlated.
func Pseudonym(userID, salt string) string {
	key := argon2.IDKey([]byte(userID), []byte(salt), 1, 64*1024, 4, 12)
	return "anon-" + hex.EncodeToString(key)
}
