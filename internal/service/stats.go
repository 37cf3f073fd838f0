package service

import (
	"context"
	"sort"
	"time"

	"github.com/mssola/useragent"

	"compliance-audit-trail/internal/core/domain"
	"compliance-audit-trail/internal/core/ports"
	"compliance-audit-trail/pkg/apperror"
)

const topUsersLimit = 10

// GetStats computes the operator dashboard snapshot over the whole trail.
func (s *TrailService) GetStats(ctx context.Context) (*ports.TrailStats, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, apperror.ErrStoreError(err)
	}

	now := time.Now().UTC()
	stats := &ports.TrailStats{
		TotalEntries: len(entries),
		ByAction:     make(map[domain.Action]int),
		ByEntityType: make(map[domain.EntityType]int),
		BySeverity:   make(map[domain.Severity]int),
		Browsers:     make(map[string]int),
	}

	perUser := make(map[string]*ports.UserCount)
	for i := range entries {
		e := &entries[i]

		switch {
		case now.Sub(e.Timestamp) <= 24*time.Hour:
			stats.Last24h++
			fallthrough
		case now.Sub(e.Timestamp) <= 7*24*time.Hour:
			stats.Last7d++
			fallthrough
		case now.Sub(e.Timestamp) <= 30*24*time.Hour:
			stats.Last30d++
		}

		stats.ByAction[e.Action]++
		stats.ByEntityType[e.EntityType]++
		stats.BySeverity[e.Severity]++

		uc, ok := perUser[e.UserID]
		if !ok {
			uc = &ports.UserCount{UserID: e.UserID, UserName: e.UserName}
			perUser[e.UserID] = uc
		}
		uc.Count++

		if e.UserAgent != "" {
			ua := useragent.New(e.UserAgent)
			if name, _ := ua.Browser(); name != "" {
				stats.Browsers[name]++
			}
		}
	}

	stats.DistinctUsers = len(perUser)
	top := make([]ports.UserCount, 0, len(perUser))
	for _, uc := range perUser {
		top = append(top, *uc)
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].UserID < top[j].UserID
	})
	if len(top) > topUsersLimit {
		top = top[:topUsersLimit]
	}
	stats.TopUsers = top

	return stats, nil
}
