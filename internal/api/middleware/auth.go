package middleware

import (
	"log/slog"
	"net/http"

	"github.com/yodaslang/yodas-api/internal/api/shared"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
)

// AuthMiddleware guards routes behind a logged in session.
type AuthMiddleware struct {
	sessions *SessionManager
	enabled  bool
}

// NewAuthMiddleware creates an AuthMiddleware. When enabled is false every
// request is let through, for local use without users.
func NewAuthMiddleware(sessions *SessionManager, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, enabled: enabled}
}

// RequireAuth rejects requests without a logged in session and stores the
// user id in the request context for the rest.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		userID := m.sessions.UserID(r)
		if userID <= 0 {
			logger.FromContextOrDefault(r.Context(), nil).Debug("unauthenticated request",
				slog.String("path", r.URL.Path),
				slog.String("method", r.Method))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
	})
}
