package chat

import "errors"

var (
	// ErrUnauthorized covers every failed room/token check: missing
	// parameters, unknown room, token not a member. Callers learn nothing
	// about which condition failed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRoomNotFound means the room is absent or its TTL elapsed.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull means the room already holds its maximum members.
	ErrRoomFull = errors.New("room full")

	// ErrValidation means the input was rejected before any store call.
	ErrValidation = errors.New("invalid input")
)
