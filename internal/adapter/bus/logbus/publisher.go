// Package logbus is the fallback event bus: notifications go to the
// structured log. Used when no Redis is configured.
package logbus

import (
	"context"

	"github.com/rs/zerolog"

	"compliance-audit-trail/internal/core/domain"
)

// Publisher writes every notification as one log event.
type Publisher struct {
	log zerolog.Logger
}

// NewPublisher creates a log-backed publisher.
func NewPublisher(log zerolog.Logger) *Publisher {
	return &Publisher{log: log}
}

// Publish logs the notification. It never fails.
func (p *Publisher) Publish(_ context.Context, n domain.Notification) error {
	ev := p.log.Info().
		Str("kind", string(n.Kind)).
		Time("at", n.Timestamp)
	if n.Summary != "" {
		ev = ev.Str("summary", n.Summary)
	}
	if n.Entry != nil {
		ev = ev.Str("entry_id", n.Entry.ID).Str("severity", string(n.Entry.Severity))
	}
	if len(n.Data) > 0 {
		ev = ev.Interface("data", n.Data)
	}
	ev.Msg("audit notification")
	return nil
}
