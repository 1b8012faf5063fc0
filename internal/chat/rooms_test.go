package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/internal/chat"
)

func TestCreateRoom(t *testing.T) {
	f := newFixture(t, app.Config{RoomTTL: time.Minute})
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, roomID)

	meta, err := f.svc.Meta(ctx, roomID)
	require.NoError(t, err)
	require.Empty(t, meta.Connected)
	require.WithinDuration(t, time.Now(), meta.CreatedAt, 5*time.Second)

	ttl, err := f.svc.RemainingTTL(ctx, roomID)
	require.NoError(t, err)
	require.Greater(t, ttl, 50*time.Second)
	require.LessOrEqual(t, ttl, time.Minute)
}

func TestRoomExpiry(t *testing.T) {
	f := newFixture(t, app.Config{RoomTTL: 40 * time.Millisecond})
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = f.svc.Meta(ctx, roomID)
	require.ErrorIs(t, err, chat.ErrRoomNotFound)

	ttl, err := f.svc.RemainingTTL(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), ttl)
}

func TestRemainingTTLNeverNegative(t *testing.T) {
	f := newFixture(t, app.Config{})
	ctx := context.Background()

	ttl, err := f.svc.RemainingTTL(ctx, "never-existed")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), ttl)
}

func TestDestroyIsTerminal(t *testing.T) {
	f := newFixture(t, app.Config{})
	events := f.collectEvents(t)
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)
	adm, err := f.svc.Admit(ctx, roomID, "")
	require.NoError(t, err)
	auth := chat.AuthContext{RoomID: roomID, Token: adm.Token}
	_, err = f.svc.Append(ctx, auth, "alice", "doomed")
	require.NoError(t, err)

	require.NoError(t, f.svc.Destroy(ctx, roomID))

	_, err = f.svc.Meta(ctx, roomID)
	require.ErrorIs(t, err, chat.ErrRoomNotFound)
	_, err = f.svc.Append(ctx, auth, "alice", "after the end")
	require.ErrorIs(t, err, chat.ErrRoomNotFound)
	_, err = f.svc.List(ctx, auth)
	require.ErrorIs(t, err, chat.ErrRoomNotFound)

	// Exactly one chat.destroy on the room channel.
	destroys := 0
	deadline := time.After(200 * time.Millisecond)
drain:
	for {
		select {
		case ev := <-events:
			if ev.Name == bus.EventDestroy {
				require.Equal(t, roomID, ev.RoomID)
				destroys++
			}
		case <-deadline:
			break drain
		}
	}
	require.Equal(t, 1, destroys)
}

func TestDestroyMissingRoomStillAnnounces(t *testing.T) {
	f := newFixture(t, app.Config{})
	events := f.collectEvents(t)
	ctx := context.Background()

	// Destroying an already-expired room is harmless and still nudges any
	// straggling subscribers.
	require.NoError(t, f.svc.Destroy(ctx, "long-gone"))

	select {
	case ev := <-events:
		require.Equal(t, bus.EventDestroy, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("no chat.destroy event published")
	}
}
