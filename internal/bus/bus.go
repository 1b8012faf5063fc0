package bus

import "context"

// Event names published by the chat core.
const (
	EventMessage = "chat.message"
	EventDestroy = "chat.destroy"
)

// Event is one named notification on a room's channel.
type Event struct {
	RoomID  string `json:"roomId"`
	Name    string `json:"event"`
	Payload []byte `json:"payload"`
}

// Bus is the publish/subscribe collaborator. Delivery is best-effort and
// at-most-once per subscriber snapshot; the message log stays the system of
// record.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe invokes fn for every event on any room channel until ctx
	// is cancelled.
	Subscribe(ctx context.Context, fn func(Event))
	Close() error
}
