package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-audit-trail/internal/core/domain"
)

func TestPublisher_Publish(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	pub := NewPublisher(client, "audit")
	ctx := context.Background()

	sub := client.Subscribe(ctx, "audit:critical-action")
	defer sub.Close()
	_, err := sub.Receive(ctx) // wait for subscription confirmation
	require.NoError(t, err)

	sent := domain.Notification{
		Kind:      domain.NotificationCriticalAction,
		Timestamp: time.Now().UTC(),
		Summary:   "Acțiune critică: Ștergere pe Factură INV-1 de către Ana",
	}
	require.NoError(t, pub.Publish(ctx, sent))

	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, sent.Kind, got.Kind)
		assert.Equal(t, sent.Summary, got.Summary)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered in time")
	}
}

func TestPublisher_ChannelPerKind(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	pub := NewPublisher(client, "trail")
	ctx := context.Background()

	sub := client.Subscribe(ctx, "trail:purged")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	// Wrong-kind notifications never land on the purged channel.
	require.NoError(t, pub.Publish(ctx, domain.Notification{Kind: domain.NotificationEntryLogged}))
	require.NoError(t, pub.Publish(ctx, domain.Notification{Kind: domain.NotificationPurged}))

	select {
	case msg := <-sub.Channel():
		var got domain.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, domain.NotificationPurged, got.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered in time")
	}
}

func TestPublisher_DefaultPrefix(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	pub := NewPublisher(client, "")

	assert.Equal(t, "audit", pub.prefix)
}

func TestPublisher_ConnectionClosed(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	pub := NewPublisher(client, "audit")

	require.NoError(t, client.Close())

	err := pub.Publish(context.Background(), domain.Notification{Kind: domain.NotificationEntryLogged})
	assert.Error(t, err)
}
