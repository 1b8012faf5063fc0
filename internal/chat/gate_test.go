package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/chat"
)

func TestAuthorizeMember(t *testing.T) {
	f := newFixture(t, app.Config{})
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)
	adm, err := f.svc.Admit(ctx, roomID, "")
	require.NoError(t, err)

	auth, err := f.svc.Authorize(ctx, roomID, adm.Token)
	require.NoError(t, err)
	require.Equal(t, roomID, auth.RoomID)
	require.Equal(t, adm.Token, auth.Token)
}

func TestAuthorizeCollapsesAllFailures(t *testing.T) {
	f := newFixture(t, app.Config{})
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)
	adm, err := f.svc.Admit(ctx, roomID, "")
	require.NoError(t, err)

	// Every rejection looks identical: no hint of which check failed.
	cases := map[string]struct{ room, token string }{
		"missing room id":  {"", adm.Token},
		"missing token":    {roomID, ""},
		"unknown room":     {"ghost", adm.Token},
		"token not member": {roomID, "not-a-member"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Authorize(ctx, tc.room, tc.token)
			require.ErrorIs(t, err, chat.ErrUnauthorized)
		})
	}
}

func TestAuthorizeExpiredRoom(t *testing.T) {
	f := newFixture(t, app.Config{RoomTTL: 30 * time.Millisecond})
	ctx := context.Background()

	roomID, err := f.svc.CreateRoom(ctx)
	require.NoError(t, err)
	adm, err := f.svc.Admit(ctx, roomID, "")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = f.svc.Authorize(ctx, roomID, adm.Token)
	require.ErrorIs(t, err, chat.ErrUnauthorized)
}
