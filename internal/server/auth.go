package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"beemo-api/internal/constants"
	"beemo-api/internal/domain"
	"beemo-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type AuthService interface {
	Enabled() bool
	NewState() (string, error)
	AuthCodeURL(state string) string
	HandleCallback(ctx context.Context, p service.CallbackParams) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/discord/redirect", h.Redirect)
		r.Get("/discord/callback", h.Callback)
		r.Get("/", h.Callback)
		r.Get("/me", h.Me)
	})
}

func (h *AuthHandler) stateCookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.OAuthStateCookie,
		Value:    value,
		Path:     "/auth",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		writeError(w, r, http.StatusServiceUnavailable, "discord_disabled", "Discord login is not configured")
		return
	}

	state, err := h.auth.NewState()
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to generate oauth state")
		writeError(w, r, http.StatusInternalServerError, "server_error", "An error occurred during authentication")
		return
	}

	http.SetCookie(w, h.stateCookie(r, state, int(constants.OAuthStateTTL.Seconds())))
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		writeError(w, r, http.StatusServiceUnavailable, "discord_disabled", "Discord login is not configured")
		return
	}

	q := r.URL.Query()
	params := service.CallbackParams{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	}
	if c, err := r.Cookie(constants.OAuthStateCookie); err == nil {
		params.ExpectedState = c.Value
	}
	http.SetCookie(w, h.stateCookie(r, "", -1))

	redirect, err := h.auth.HandleCallback(r.Context(), params)
	switch {
	case err == nil:
		http.Redirect(w, r, redirect, http.StatusFound)
	case errors.Is(err, service.ErrAccessDenied):
		writeError(w, r, http.StatusForbidden, "access_denied", "Discord access was denied")
	case errors.Is(err, service.ErrStateMismatch):
		writeError(w, r, http.StatusBadRequest, "state_mismatch", "Request state validation failed")
	case errors.Is(err, service.ErrAuthProvider):
		writeError(w, r, http.StatusBadRequest, "authentication_error", "An error occurred during authentication")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("discord callback failed")
		writeError(w, r, http.StatusInternalServerError, "server_error", "An error occurred during authentication")
	}
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), token)
	if errors.Is(err, service.ErrUnauthorized) {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to authenticate token")
		writeError(w, r, http.StatusInternalServerError, "server_error", "An error occurred during authentication")
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}
