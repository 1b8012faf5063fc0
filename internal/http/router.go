package httpx

import (
	"net/http"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/chat"
	"github.com/hpa153/private-chat/internal/ws"
	"github.com/hpa153/private-chat/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, svc *chat.Service, hub *ws.Hub) http.Handler {
	mw := NewMiddleware(cfg, svc)
	rooms := &RoomsAPI{Chat: svc, Secure: cfg.Env == "prod"}
	msgs := &MessagesAPI{Chat: svc}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint (gate runs inside ServeWS after the upgrade check)
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Room lifecycle; create and join are the token-issuing steps and stay
	// outside the gate
	mux.Handle("/api/room/create", http.HandlerFunc(rooms.Create))
	mux.Handle("/api/room/join", http.HandlerFunc(rooms.Join))
	mux.Handle("/api/room/ttl", mw.Gate(http.HandlerFunc(rooms.TTL)))
	mux.Handle("/api/room", mw.Gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			rooms.Destroy(w, r)
			return
		}
		http.NotFound(w, r)
	})))

	// Message log
	mux.Handle("/api/messages", mw.Gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			msgs.Send(w, r)
			return
		}
		if r.Method == http.MethodGet {
			msgs.List(w, r)
			return
		}
		http.NotFound(w, r)
	})))

	return mw.Wrap(mux)
}
