package httpx

import (
	"net/http"

	"github.com/hpa153/private-chat/internal/chat"
)

type RoomsAPI struct {
	Chat   *chat.Service
	Secure bool // mark the token cookie Secure (prod)
}

// Create makes a fresh room with the configured initial TTL.
func (a *RoomsAPI) Create(w http.ResponseWriter, r *http.Request) {
	roomID, err := a.Chat.CreateRoom(r.Context())
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, map[string]string{"roomId": roomID})
}

// Join runs admission for the roomId in the query. A returning member's
// cookie token is honored unchanged; a newcomer gets a fresh token set as
// an HttpOnly cookie. 404 when the room is gone, 409 when it is full.
func (a *RoomsAPI) Join(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomId")
	existing := ""
	if c, err := r.Cookie(TokenCookie); err == nil {
		existing = c.Value
	}

	adm, err := a.Chat.Admit(r.Context(), roomID, existing)
	if err != nil {
		writeChatError(w, err)
		return
	}

	if !adm.AlreadyMember {
		http.SetCookie(w, &http.Cookie{
			Name:     TokenCookie,
			Value:    adm.Token,
			Path:     "/",
			HttpOnly: true,
			Secure:   a.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
	writeJSON(w, map[string]bool{"joined": true})
}

// TTL reports the room's remaining lifetime in whole seconds, 0 once gone.
func (a *RoomsAPI) TTL(w http.ResponseWriter, r *http.Request) {
	auth := AuthFrom(r.Context())
	d, err := a.Chat.RemainingTTL(r.Context(), auth.RoomID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, map[string]int64{"ttl": int64(d.Seconds())})
}

// Destroy tears the room down ahead of its TTL.
func (a *RoomsAPI) Destroy(w http.ResponseWriter, r *http.Request) {
	auth := AuthFrom(r.Context())
	if err := a.Chat.Destroy(r.Context(), auth.RoomID); err != nil {
		writeChatError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
