package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// AuthContext proves a (room, token) pair was a connected member when the
// gate checked it.
type AuthContext struct {
	RoomID string
	Token  string
}

// Authorize admits a request to the message log and destroy operations.
// Every failure mode collapses to ErrUnauthorized; callers must not be able
// to probe which check failed. Store failures stay distinct so transient
// outages don't masquerade as rejections.
func (s *Service) Authorize(ctx context.Context, roomID, token string) (AuthContext, error) {
	if roomID == "" || token == "" {
		return AuthContext{}, ErrUnauthorized
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	raw, ok, err := s.kv.HGet(ctx, metaKey(roomID), "connected")
	if err != nil {
		return AuthContext{}, fmt.Errorf("authorize: %w", err)
	}
	if !ok || !slices.Contains(decodeTokens(raw), token) {
		return AuthContext{}, ErrUnauthorized
	}
	return AuthContext{RoomID: roomID, Token: token}, nil
}

// decodeTokens parses a stored membership list, treating malformed data as
// empty membership.
func decodeTokens(raw string) []string {
	var tokens []string
	_ = json.Unmarshal([]byte(raw), &tokens)
	return tokens
}
