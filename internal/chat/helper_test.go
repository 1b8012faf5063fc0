package chat_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/internal/chat"
	"github.com/hpa153/private-chat/internal/store"
)

type fixture struct {
	svc *chat.Service
	kv  *store.Memory
	bus *bus.Memory
}

func newFixture(t *testing.T, cfg app.Config) *fixture {
	t.Helper()
	if cfg.RoomTTL == 0 {
		cfg.RoomTTL = time.Minute
	}
	if cfg.RoomCapacity == 0 {
		cfg.RoomCapacity = 2
	}
	if cfg.OpTimeout == 0 {
		cfg.OpTimeout = time.Second
	}

	kv := store.NewMemory()
	b := bus.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{svc: chat.NewService(kv, b, logger, cfg), kv: kv, bus: b}
}

// collectEvents subscribes to the bus and returns a channel of everything
// published until the test ends.
func (f *fixture) collectEvents(t *testing.T) <-chan bus.Event {
	t.Helper()
	events := make(chan bus.Event, 32)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go f.bus.Subscribe(ctx, func(ev bus.Event) { events <- ev })
	// let the subscriber register before the test publishes
	time.Sleep(10 * time.Millisecond)
	return events
}
