package api

import (
	"log/slog"
	"net/http"

	"github.com/yodaslang/yodas-api/internal/api/middleware"
	"github.com/yodaslang/yodas-api/internal/api/shared"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/service"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	auth     service.AuthService
	sessions *middleware.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth service.AuthService, sessions *middleware.SessionManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password required")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Internal server error")
		return
	}

	if err := h.sessions.Login(r, user.ID, user.Username); err != nil {
		HandleAPIError(w, r, err, "Internal server error")
		return
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Success: true})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r); err != nil {
		HandleAPIError(w, r, err, "Could not log out")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Success: true})
}

// Me handles GET /me and reports the logged in user id.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.GetUserID(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int64{"userId": id})
}
