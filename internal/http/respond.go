package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hpa153/private-chat/internal/chat"
)

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeChatError maps core error kinds onto status codes. Anything outside
// the taxonomy is a transient infrastructure failure and retryable.
func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, chat.ErrUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, chat.ErrRoomNotFound):
		writeJSONError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, chat.ErrRoomFull):
		writeJSONError(w, http.StatusConflict, "room full")
	default:
		writeJSONError(w, http.StatusServiceUnavailable, "temporarily unavailable")
	}
}
