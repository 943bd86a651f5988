package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"beemo-api/internal/domain"
	"beemo-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	msgUsernameRequired = "Le nom d'utilisateur est requis"
	msgUsernameTooLong  = "Le nom d'utilisateur est trop long"
	msgReasonTooLong    = "La raison est trop longue"
	msgInvalidRequest   = "Requête invalide"
	msgServerError      = "Une erreur est survenue"
)

var validationMessages = map[service.FieldError]string{
	{Field: "username", Rule: "required"}: msgUsernameRequired,
	{Field: "username", Rule: "max"}:      msgUsernameTooLong,
	{Field: "reason", Rule: "max"}:        msgReasonTooLong,
}

func validationMessage(fields []service.FieldError) string {
	for _, f := range fields {
		if msg, ok := validationMessages[service.FieldError{Field: f.Field, Rule: f.Rule}]; ok {
			return msg
		}
	}
	return msgInvalidRequest
}

var awardGivenMessages = map[domain.AwardKind]string{
	domain.AwardShroom:  "Shroom donné avec succès",
	domain.AwardRespect: "Respect donné avec succès",
}

type GameService interface {
	Give(ctx context.Context, kind domain.AwardKind, in service.GiveAwardInput) (*domain.Award, error)
	UserStats(ctx context.Context, username string) (*domain.UserStats, error)
	Top(ctx context.Context, kind domain.AwardKind) ([]domain.AwardCount, error)
}

type GameHandler struct {
	game GameService
}

func NewGameHandler(game GameService) *GameHandler {
	return &GameHandler{game: game}
}

func (h *GameHandler) Register(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/shroom", h.give(domain.AwardShroom))
		r.Post("/respect", h.give(domain.AwardRespect))
		r.Get("/stats/{username}", h.Stats)
		r.Get("/top/shrooms", h.top(domain.AwardShroom))
		r.Get("/top/respects", h.top(domain.AwardRespect))
	})
}

type giveRequest struct {
	Username string  `json:"username"`
	Reason   *string `json:"reason"`
}

// readGiveRequest accepts a JSON or form body; username may also come from the query string.
func readGiveRequest(r *http.Request) giveRequest {
	var req giveRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("ignoring malformed json body")
		}
	} else if err := r.ParseForm(); err == nil {
		req.Username = r.Form.Get("username")
		if reason := r.Form.Get("reason"); reason != "" {
			req.Reason = &reason
		}
	}

	if req.Username == "" {
		req.Username = r.URL.Query().Get("username")
	}
	return req
}

func (h *GameHandler) give(kind domain.AwardKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := readGiveRequest(r)

		award, err := h.game.Give(r.Context(), kind, service.GiveAwardInput{Username: req.Username, Reason: req.Reason})
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, r, http.StatusBadRequest, statusResponse{Status: "error", Message: validationMessage(verr.Fields), Data: verr.Fields})
				return
			}
			zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", string(kind)).Msg("failed to give award")
			writeJSON(w, r, http.StatusInternalServerError, statusResponse{Status: "error", Message: msgServerError})
			return
		}

		writeJSON(w, r, http.StatusCreated, statusResponse{Status: "success", Message: awardGivenMessages[kind], Data: award})
	}
}

func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.game.UserStats(r.Context(), pathParam(r, "username"))
	if err != nil {
		writeJSON(w, r, http.StatusInternalServerError, statusResponse{Status: "error", Message: msgServerError})
		return
	}
	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success", Data: stats})
}

func (h *GameHandler) top(kind domain.AwardKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top, err := h.game.Top(r.Context(), kind)
		if err != nil {
			writeJSON(w, r, http.StatusInternalServerError, statusResponse{Status: "error", Message: msgServerError})
			return
		}

		data := make([]map[string]any, 0, len(top))
		for _, entry := range top {
			data = append(data, map[string]any{"username": entry.Username, string(kind): entry.Total})
		}
		writeJSON(w, r, http.StatusOK, statusResponse{Status: "success", Data: data})
	}
}
