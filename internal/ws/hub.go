package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"log/slog"

	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/internal/chat"
)

// frame is what subscribers receive on the wire.
type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Hub bridges the broadcast bus to local websocket subscribers. It is a
// delivery nudge only; clients re-fetch the log over HTTP after a
// chat.message frame.
type Hub struct {
	log  *slog.Logger
	bus  bus.Bus
	chat *chat.Service

	mu    sync.RWMutex
	rooms map[string]*room // active rooms by roomID
}

// NewHub sets up the hub with the bus + chat core + logger
func NewHub(logger *slog.Logger, b bus.Bus, svc *chat.Service) *Hub {
	return &Hub{log: logger, bus: b, chat: svc, rooms: map[string]*room{}}
}

// Run listens to the bus and forwards events to local room subscribers.
// A destroy event also disconnects the room's subscribers.
func (h *Hub) Run(ctx context.Context) {
	go h.bus.Subscribe(ctx, func(ev bus.Event) {
		h.mu.RLock()
		rm := h.rooms[ev.RoomID]
		h.mu.RUnlock()
		if rm == nil {
			return
		}

		b, _ := json.Marshal(frame{Event: ev.Name, Payload: ev.Payload})
		rm.broadcast(b)

		if ev.Name == bus.EventDestroy {
			rm.closeAll()
			h.mu.Lock()
			delete(h.rooms, ev.RoomID)
			h.mu.Unlock()
		}
	})
	<-ctx.Done()
}

// room returns the local room, creating it if needed
func (h *Hub) room(roomID string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	rm := h.rooms[roomID]
	if rm == nil {
		rm = newRoom()
		h.rooms[roomID] = rm
	}
	return rm
}

// ServeWS handles a new /ws subscription for a room. The request passes the
// same access gate as the message endpoints before the upgrade.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := r.URL.Query().Get("roomId")
	token := ""
	if c, err := r.Cookie("x-auth-token"); err == nil {
		token = c.Value
	}

	if _, err := h.chat.Authorize(ctx, roomID, token); err != nil {
		if errors.Is(err, chat.ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		} else {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		}
		return
	}

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	rm := h.room(roomID)
	c := NewConn(conn)
	rm.join(c)

	go c.WriteLoop(ctx)
	c.Wait(ctx)

	rm.leave(c)
	_ = c.Close()
}
