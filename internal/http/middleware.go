package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/cors"

	"github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/chat"
	"github.com/hpa153/private-chat/pkg/ratelimit"
)

// TokenCookie carries the membership token; HttpOnly so the capability
// never leaks into page scripts.
const TokenCookie = "x-auth-token"

type ctxKey int

const authKey ctxKey = 1

// AuthFrom returns the gate-checked auth context for the request.
func AuthFrom(ctx context.Context) chat.AuthContext {
	v, _ := ctx.Value(authKey).(chat.AuthContext)
	return v
}

type Middleware struct {
	cors   *cors.Cors
	chat   *chat.Service
	rlimit *ratelimit.Limiter
}

// NewMiddleware builds the shared middleware stack from config
func NewMiddleware(cfg app.Config, svc *chat.Service) *Middleware {
	return &Middleware{
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllow,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
		chat:   svc,
		rlimit: ratelimit.New(cfg.RateMax, cfg.RateWindow),
	}
}

// Wrap applies CORS + rate limiting to a handler
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return m.cors.Handler(m.rlimit.Middleware(h))
}

// Gate requires a valid (roomId, token) membership pair before the wrapped
// handler runs. Any failure is a bare 401; which check failed is not
// disclosed. Room creation and join are never wrapped.
func (m *Middleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomId")
		token := ""
		if c, err := r.Cookie(TokenCookie); err == nil {
			token = c.Value
		}

		auth, err := m.chat.Authorize(r.Context(), roomID, token)
		if err != nil {
			if errors.Is(err, chat.ErrUnauthorized) {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			} else {
				writeJSONError(w, http.StatusServiceUnavailable, "temporarily unavailable")
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authKey, auth)))
	})
}
