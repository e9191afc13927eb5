package http

import (
	"net/http"
	"strings"

	"log/slog"

	"bookreview/internal/auth"
	"bookreview/internal/metrics"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	service   *auth.Service
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewAuthHandler creates a handler.
func NewAuthHandler(service *auth.Service, collector *metrics.Collector, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, collector: collector, logger: logger}
}

type tokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	User        userResponse `json:"user"`
}

// Register creates a local-password account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload.Email, payload.Username, payload.Password)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login authenticates email/password credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	token, user, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.recordLogin("local", false)
		handleServiceError(w, err, h.logger)
		return
	}

	h.recordLogin("local", true)
	h.logger.Info("login successful", "user_id", user.ID)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// GoogleToken authenticates a Google ID token obtained by the SPA and returns
// a session token for the reconciled user.
func (h *AuthHandler) GoogleToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDToken string `json:"idToken"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}
	if strings.TrimSpace(payload.IDToken) == "" {
		writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	token, user, err := h.service.LoginExternal(r.Context(), payload.IDToken)
	if err != nil {
		h.recordLogin("google", false)
		handleServiceError(w, err, h.logger)
		return
	}

	h.recordLogin("google", true)
	h.logger.Info("google login successful", "user_id", user.ID)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) recordLogin(method string, success bool) {
	if h.collector != nil {
		h.collector.RecordLogin(method, success)
	}
}
