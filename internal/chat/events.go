package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/pkg/metrics"
)

// The dispatcher is the sole writer of chat.message and chat.destroy.
// Delivery is a best-effort nudge; clients fall back to polling the log and
// their own TTL countdown.

// announceMessage publishes the full, unredacted message to the room
// channel. Publish failures are logged, not propagated: the append already
// succeeded and subscribers will catch up on their next fetch.
func (s *Service) announceMessage(ctx context.Context, msg Message) {
	payload, _ := json.Marshal(msg)
	err := s.bus.Publish(ctx, bus.Event{RoomID: msg.RoomID, Name: bus.EventMessage, Payload: payload})
	if err != nil {
		s.log.Warn("event.publish", "event", bus.EventMessage, "roomId", msg.RoomID, "err", err)
		return
	}
	metrics.EventsPublished.Inc()
}

// announceDestroy publishes chat.destroy. The caller reports the error;
// destruction proceeds regardless.
func (s *Service) announceDestroy(ctx context.Context, roomID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	payload, _ := json.Marshal(map[string]bool{"isDestroyed": true})
	err := s.bus.Publish(ctx, bus.Event{RoomID: roomID, Name: bus.EventDestroy, Payload: payload})
	if err != nil {
		return fmt.Errorf("announce destroy: %w", err)
	}
	metrics.EventsPublished.Inc()
	return nil
}
