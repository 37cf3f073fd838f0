package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"compliance-audit-trail/internal/core/domain"
)

// Publisher sends notifications to one Redis channel per notification kind:
// <prefix>:<kind>. Subscribers pick the kinds they care about; critical
// alerting only needs <prefix>:critical-action.
type Publisher struct {
	client *goredis.Client
	prefix string
}

// NewPublisher creates a pub/sub publisher with the given channel prefix.
func NewPublisher(client *goredis.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = "audit"
	}
	return &Publisher{client: client, prefix: prefix}
}

// Publish serializes the notification as JSON and publishes it.
func (p *Publisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	channel := p.prefix + ":" + string(n.Kind)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}
