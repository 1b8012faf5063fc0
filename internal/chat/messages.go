package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpa153/private-chat/pkg/metrics"
)

// messageInput bounds untrusted client input before any store call.
type messageInput struct {
	Sender string `validate:"required,max=100"`
	Text   string `validate:"required,max=1000"`
}

// Append validates and writes a message to the room's log, announces it,
// and re-synchronizes the log's expiry to the room's remaining lifetime.
// The room is re-checked first: its TTL may have elapsed since the sender
// was admitted, and an expired room must never grow an orphaned log.
func (s *Service) Append(ctx context.Context, auth AuthContext, sender, text string) (Message, error) {
	if err := s.validate.Struct(messageInput{Sender: sender, Text: text}); err != nil {
		return Message{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	exists, err := s.kv.Exists(ctx, metaKey(auth.RoomID))
	if err != nil {
		return Message{}, fmt.Errorf("append: %w", err)
	}
	if !exists {
		return Message{}, ErrRoomNotFound
	}

	msg := Message{
		ID:        ulid.Make().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
		RoomID:    auth.RoomID,
		AuthToken: auth.Token,
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return Message{}, fmt.Errorf("append: %w", err)
	}
	if err := s.kv.RPush(ctx, messagesKey(auth.RoomID), string(raw)); err != nil {
		return Message{}, fmt.Errorf("append: %w", err)
	}

	// Notify only after the write landed; subscribers re-read the log.
	s.announceMessage(ctx, msg)

	// Cascading TTL: the store expires each record independently, so every
	// send re-pins the log's expiry to the metadata's. A room that vanished
	// mid-send takes its log with it.
	ttl, err := s.kv.TTL(ctx, metaKey(auth.RoomID))
	if err != nil {
		return Message{}, fmt.Errorf("append: %w", err)
	}
	if ttl > 0 {
		if err := s.kv.Expire(ctx, messagesKey(auth.RoomID), ttl); err != nil {
			return Message{}, fmt.Errorf("append: %w", err)
		}
	} else {
		_ = s.kv.Del(ctx, messagesKey(auth.RoomID))
	}

	metrics.MessagesSent.Inc()
	return msg, nil
}

// List returns the room's messages in append order, with each message's
// authToken blanked unless it matches the requesting token.
func (s *Service) List(ctx context.Context, auth AuthContext) ([]Message, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	exists, err := s.kv.Exists(ctx, metaKey(auth.RoomID))
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	raws, err := s.kv.LRange(ctx, messagesKey(auth.RoomID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	out := make([]Message, 0, len(raws))
	for _, raw := range raws {
		var msg Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			s.log.Warn("messages.decode", "roomId", auth.RoomID, "err", err)
			continue
		}
		out = append(out, msg.redactFor(auth.Token))
	}
	return out, nil
}
