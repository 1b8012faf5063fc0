package bus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"github.com/hpa153/private-chat/internal/app"
)

type Redis struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewRedis connects to redis and verifies connectivity
func NewRedis(ctx context.Context, cfg app.Config, log *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.OpTimeout,
		ReadTimeout:  cfg.OpTimeout,
		WriteTimeout: cfg.OpTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb, log: log}, nil
}

// Publish sends an event to the redis channel for its room
func (b *Redis) Publish(ctx context.Context, ev Event) error {
	raw, _ := json.Marshal(ev)
	return b.rdb.Publish(ctx, channel(ev.RoomID), raw).Err()
}

// Subscribe listens to all room channels and invokes fn for each event
func (b *Redis) Subscribe(ctx context.Context, fn func(Event)) {
	pubsub := b.rdb.PSubscribe(ctx, channel("*"))
	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			_ = pubsub.Close()
			return
		case msg := <-ch:
			var ev Event
			_ = json.Unmarshal([]byte(msg.Payload), &ev)
			if ev.RoomID != "" {
				fn(ev)
			}
		}
	}
}

// Close shuts down the redis connection
func (b *Redis) Close() error { return b.rdb.Close() }

// channel namespacing for room pub/sub
func channel(roomID string) string { return "room:" + roomID }
