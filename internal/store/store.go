package store

import (
	"context"
	"time"
)

// AppendStatus is the outcome of a conditional list-field append.
type AppendStatus int

const (
	AppendMissing       AppendStatus = iota // key does not exist
	AppendAlreadyMember                     // value already in the list
	AppendFull                              // list at max length
	AppendOK                                // value appended
)

// KV is the minimal key-value surface the chat core needs: hashes with TTL,
// ordered lists with TTL, and one conditional append primitive.
type KV interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	// HGetAll returns nil when the key is absent or expired.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGet(ctx context.Context, key, field string) (string, bool, error)
	// HAppendListField appends value to the JSON list stored in field,
	// atomically against concurrent appends: read, membership check,
	// capacity check, and write happen as one step.
	HAppendListField(ctx context.Context, key, field, value string, max int) (AppendStatus, error)

	Expire(ctx context.Context, key string, ttl time.Duration) error
	// TTL returns 0 for absent or already-expired keys, never negative.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error

	RPush(ctx context.Context, key, value string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}
