package chat

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"log/slog"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/internal/store"
)

// Service is the chat core: room lifecycle, admission, the access gate,
// the message log, and event dispatch. It holds no state of its own;
// everything lives in the store, keyed per room.
type Service struct {
	kv  store.KV
	bus bus.Bus
	log *slog.Logger

	roomTTL   time.Duration
	capacity  int
	opTimeout time.Duration

	validate *validator.Validate
}

func NewService(kv store.KV, b bus.Bus, logger *slog.Logger, cfg app.Config) *Service {
	return &Service{
		kv:        kv,
		bus:       b,
		log:       logger,
		roomTTL:   cfg.RoomTTL,
		capacity:  cfg.RoomCapacity,
		opTimeout: cfg.OpTimeout,
		validate:  validator.New(),
	}
}

// opCtx bounds a single collaborator call; no store or bus operation may
// block past the configured deadline.
func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}
