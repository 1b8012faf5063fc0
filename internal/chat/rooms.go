package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hpa153/private-chat/pkg/metrics"
)

// RoomMeta is the per-room metadata record.
type RoomMeta struct {
	CreatedAt time.Time
	Connected []string // membership tokens, len never exceeds capacity
}

// CreateRoom writes an empty-membership metadata record with the configured
// initial TTL and returns the fresh room id.
func (s *Service) CreateRoom(ctx context.Context) (string, error) {
	roomID := uuid.NewString()

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	err := s.kv.HSet(ctx, metaKey(roomID), map[string]string{
		"createdAt": strconv.FormatInt(time.Now().UnixMilli(), 10),
		"connected": "[]",
	})
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	if err := s.kv.Expire(ctx, metaKey(roomID), s.roomTTL); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}

	s.log.Info("room.created", "roomId", roomID, "ttl", s.roomTTL)
	metrics.RoomsCreated.Inc()
	return roomID, nil
}

// Meta reads a room's metadata. ErrRoomNotFound when the room never existed
// or its TTL elapsed; store failures come back wrapped and distinct.
func (s *Service) Meta(ctx context.Context, roomID string) (RoomMeta, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	fields, err := s.kv.HGetAll(ctx, metaKey(roomID))
	if err != nil {
		return RoomMeta{}, fmt.Errorf("room meta: %w", err)
	}
	if fields == nil {
		return RoomMeta{}, ErrRoomNotFound
	}
	return parseMeta(fields)
}

// RemainingTTL reports the room's remaining lifetime, 0 when the room is
// gone. Never negative.
func (s *Service) RemainingTTL(ctx context.Context, roomID string) (time.Duration, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	d, err := s.kv.TTL(ctx, metaKey(roomID))
	if err != nil {
		return 0, fmt.Errorf("room ttl: %w", err)
	}
	return d, nil
}

// Destroy announces chat.destroy and deletes the room's records. The event
// is always attempted first: connected clients have no other way to learn
// the room is gone before their own countdown runs out. Partial failures
// are joined and reported, never swallowed.
func (s *Service) Destroy(ctx context.Context, roomID string) error {
	pubErr := s.announceDestroy(ctx, roomID)

	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	delErr := s.kv.Del(ctx, metaKey(roomID), messagesKey(roomID))

	if err := errors.Join(pubErr, delErr); err != nil {
		return fmt.Errorf("destroy room %s: %w", roomID, err)
	}
	s.log.Info("room.destroyed", "roomId", roomID)
	metrics.RoomsDestroyed.Inc()
	return nil
}

func parseMeta(fields map[string]string) (RoomMeta, error) {
	var meta RoomMeta
	if ms, err := strconv.ParseInt(fields["createdAt"], 10, 64); err == nil {
		meta.CreatedAt = time.UnixMilli(ms)
	}
	if raw := fields["connected"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta.Connected); err != nil {
			return RoomMeta{}, fmt.Errorf("room meta: decode connected: %w", err)
		}
	}
	return meta, nil
}
