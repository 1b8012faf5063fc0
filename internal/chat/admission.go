package chat

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/hpa153/private-chat/internal/store"
)

// Admission is the result of a successful admit call.
type Admission struct {
	Token         string
	AlreadyMember bool
}

// Admit converts a visitor into a room member. A returning member (token
// already listed) gets its token back unchanged; otherwise a fresh token is
// minted and appended to the membership list, atomically against concurrent
// admissions, so two callers can never both take the last seat. This is the
// only path that grows the membership list.
func (s *Service) Admit(ctx context.Context, roomID, existingToken string) (Admission, error) {
	if roomID == "" {
		return Admission{}, ErrRoomNotFound
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Idempotent re-entry (page reload). Membership is never revoked, so a
	// plain read suffices here; capacity is what needs the atomic step.
	if existingToken != "" {
		raw, ok, err := s.kv.HGet(ctx, metaKey(roomID), "connected")
		if err != nil {
			return Admission{}, fmt.Errorf("admit: %w", err)
		}
		if !ok {
			return Admission{}, ErrRoomNotFound
		}
		if slices.Contains(decodeTokens(raw), existingToken) {
			return Admission{Token: existingToken, AlreadyMember: true}, nil
		}
	}

	token := uuid.NewString()
	status, err := s.kv.HAppendListField(ctx, metaKey(roomID), "connected", token, s.capacity)
	if err != nil {
		return Admission{}, fmt.Errorf("admit: %w", err)
	}
	switch status {
	case store.AppendMissing:
		return Admission{}, ErrRoomNotFound
	case store.AppendFull:
		return Admission{}, ErrRoomFull
	case store.AppendAlreadyMember:
		// freshly minted token colliding is not a real outcome; treat as joined
		return Admission{Token: token, AlreadyMember: true}, nil
	}

	s.log.Debug("room.admitted", "roomId", roomID)
	return Admission{Token: token}, nil
}
