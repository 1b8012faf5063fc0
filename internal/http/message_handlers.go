package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/hpa153/private-chat/internal/chat"
)

type MessagesAPI struct {
	Chat *chat.Service
}

type sendMessageReq struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type messageDTO struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	RoomID    string `json:"roomId"`
	AuthToken string `json:"authToken,omitempty"`
}

// Send appends a message to the caller's room.
func (a *MessagesAPI) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid input")
		return
	}

	auth := AuthFrom(r.Context())
	if _, err := a.Chat.Append(r.Context(), auth, req.Sender, req.Text); err != nil {
		writeChatError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns the room's messages in append order, redacted per reader.
func (a *MessagesAPI) List(w http.ResponseWriter, r *http.Request) {
	auth := AuthFrom(r.Context())
	msgs, err := a.Chat.List(r.Context(), auth)
	if err != nil {
		writeChatError(w, err)
		return
	}

	resp := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageDTO{
			ID: m.ID, Sender: m.Sender, Text: m.Text,
			Timestamp: m.Timestamp, RoomID: m.RoomID, AuthToken: m.AuthToken,
		})
	}
	writeJSON(w, map[string][]messageDTO{"messages": resp})
}
