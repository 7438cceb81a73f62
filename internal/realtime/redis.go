package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisBridge publishes events on a Redis channel and relays everything
// received on it to the local hub, so every instance reaches its own clients.
type RedisBridge struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
	log     logrus.FieldLogger
}

func NewRedisBridge(rdb *redis.Client, channel string, hub *Hub, log logrus.FieldLogger) *RedisBridge {
	return &RedisBridge{rdb: rdb, channel: channel, hub: hub, log: log}
}

// Publish falls back to local delivery when Redis is unreachable.
func (b *RedisBridge) Publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.log.WithError(err).Error("Failed to marshal realtime event")
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		b.log.WithError(err).Warn("Redis publish failed, delivering locally")
		b.hub.Publish(ctx, ev)
	}
}

// Run relays channel messages to the hub until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.WithError(err).Warn("Ignoring malformed realtime payload")
				continue
			}
			b.hub.Publish(ctx, ev)
		}
	}
}
