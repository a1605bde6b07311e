package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ptotracker/internal/domain/auth"
	"ptotracker/internal/transport/http/api"
	"ptotracker/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Store     *auth.Store
	JWTSecret string
}

func NewHandler(store *auth.Store, jwtSecret string) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password are required", requestID)
		return
	}

	manager, err := h.Store.FindManagerByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, auth.ErrManagerNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestID)
		return
	}
	if err := auth.CheckPassword(manager.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		ManagerID: manager.ID,
		Username:  manager.Username,
		FullName:  manager.FullName,
		Role:      manager.Role,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token":   token,
		"manager": manager,
	}, requestID)
}

// Tokens are stateless; logout exists so clients have a uniform endpoint to
// call when discarding a session.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged out"}, middleware.GetRequestID(r.Context()))
}
