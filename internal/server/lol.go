package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"beemo-api/internal/constants"
	"beemo-api/internal/domain"
	"beemo-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type LolService interface {
	Resolve(ctx context.Context, identifier, tagLine, region string) (*domain.ResolvedSummoner, error)
	Ranks(ctx context.Context, summoner *domain.ResolvedSummoner) ([]domain.RankEntry, error)
	Masteries(ctx context.Context, summoner *domain.ResolvedSummoner, top int) ([]domain.EnrichedMastery, error)
	Profile(ctx context.Context, summoner *domain.ResolvedSummoner, opts service.ProfileOptions) (*domain.Profile, error)
	MatchIDs(ctx context.Context, summoner *domain.ResolvedSummoner, routing string, count int) ([]string, error)
	Match(ctx context.Context, routing, matchID string) (map[string]any, error)
}

type CatalogService interface {
	LatestVersion(ctx context.Context) (string, error)
	Champions(ctx context.Context) (map[string]domain.Champion, error)
	ChampionDetails(ctx context.Context, championName string) (map[string]any, error)
	Items(ctx context.Context) (map[string]domain.Item, error)
}

type LolHandler struct {
	lol     LolService
	catalog CatalogService
}

func NewLolHandler(lol LolService, catalog CatalogService) *LolHandler {
	return &LolHandler{lol: lol, catalog: catalog}
}

func (h *LolHandler) Register(r chi.Router) {
	r.Route("/lol", func(r chi.Router) {
		r.Route("/summoner/{summonerName}", func(r chi.Router) {
			r.Get("/", h.Summoner)
			r.Get("/rank", h.Rank)
			r.Get("/masteries", h.Masteries)
			r.Get("/profile", h.Profile)
			r.Get("/matches", h.Matches)
		})
		r.Get("/match/{matchId}", h.Match)
		r.Get("/champions", h.Champions)
		r.Get("/champion/{championName}", h.Champion)
		r.Get("/items", h.Items)
		r.Get("/version", h.Version)
	})
}

type summonerResponse struct {
	domain.Summoner
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type summonerRef struct {
	Puuid    string `json:"puuid,omitempty"`
	Name     string `json:"name,omitempty"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Level    int64  `json:"level,omitempty"`
}

// pathParam decodes the value only when chi routed on the escaped RawPath;
// otherwise it already comes from the decoded Path.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func queryString(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}

// queryInt falls back on absent or malformed values.
func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func (h *LolHandler) fail(w http.ResponseWriter, r *http.Request, err error, status int, code string) {
	if errors.Is(err, service.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Str("code", code).Int("status", status).Msg("lol request failed")
	writeError(w, r, status, code, err.Error())
}

func (h *LolHandler) resolve(r *http.Request) (*domain.ResolvedSummoner, error) {
	return h.lol.Resolve(r.Context(),
		pathParam(r, "summonerName"),
		r.URL.Query().Get("tagLine"),
		queryString(r, "region", constants.DefaultRegion),
	)
}

func (h *LolHandler) Summoner(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r)
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound, "summoner_not_found")
		return
	}
	writeJSON(w, r, http.StatusOK, summonerResponse{Summoner: s.Summoner, GameName: s.Account.GameName, TagLine: s.Account.TagLine})
}

func (h *LolHandler) Rank(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r)
	if err == nil {
		var ranks []domain.RankEntry
		if ranks, err = h.lol.Ranks(r.Context(), s); err == nil {
			writeJSON(w, r, http.StatusOK, map[string]any{
				"summoner": summonerRef{Name: s.Summoner.Name, GameName: s.Account.GameName, TagLine: s.Account.TagLine, Level: s.Summoner.SummonerLevel},
				"ranks":    ranks,
			})
			return
		}
	}
	h.fail(w, r, err, http.StatusNotFound, "rank_not_found")
}

func (h *LolHandler) Masteries(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r)
	if err == nil {
		var masteries []domain.EnrichedMastery
		top := queryInt(r, "top", constants.DefaultTopMasteries)
		if masteries, err = h.lol.Masteries(r.Context(), s, top); err == nil {
			writeJSON(w, r, http.StatusOK, map[string]any{
				"summoner":  summonerRef{Name: s.Summoner.Name, GameName: s.Account.GameName, TagLine: s.Account.TagLine, Level: s.Summoner.SummonerLevel},
				"masteries": masteries,
			})
			return
		}
	}
	h.fail(w, r, err, http.StatusNotFound, "masteries_not_found")
}

func (h *LolHandler) Profile(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r)
	if err == nil {
		var profile *domain.Profile
		opts := service.ProfileOptions{
			Routing:      queryString(r, "platform", constants.DefaultRouting),
			TopChampions: queryInt(r, "topChampions", constants.DefaultTopChampions),
			MatchCount:   queryInt(r, "matchCount", constants.DefaultMatchCount),
		}
		if profile, err = h.lol.Profile(r.Context(), s, opts); err == nil {
			writeJSON(w, r, http.StatusOK, profile)
			return
		}
	}
	h.fail(w, r, err, http.StatusNotFound, "profile_not_found")
}

func (h *LolHandler) Matches(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r)
	if err == nil {
		var ids []string
		routing := queryString(r, "platform", constants.DefaultRouting)
		count := queryInt(r, "count", constants.DefaultMatchCount)
		if ids, err = h.lol.MatchIDs(r.Context(), s, routing, count); err == nil {
			writeJSON(w, r, http.StatusOK, map[string]any{
				"summoner": summonerRef{Puuid: s.Summoner.Puuid, Name: s.Summoner.Name, GameName: s.Account.GameName, TagLine: s.Account.TagLine},
				"matchIds": ids,
				"count":    len(ids),
			})
			return
		}
	}
	h.fail(w, r, err, http.StatusNotFound, "matches_not_found")
}

func (h *LolHandler) Match(w http.ResponseWriter, r *http.Request) {
	routing := queryString(r, "platform", constants.DefaultRouting)
	match, err := h.lol.Match(r.Context(), routing, pathParam(r, "matchId"))
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound, "match_not_found")
		return
	}
	writeJSON(w, r, http.StatusOK, match)
}

func (h *LolHandler) Champions(w http.ResponseWriter, r *http.Request) {
	champions, err := h.catalog.Champions(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, "champions_fetch_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"champions": champions, "count": len(champions)})
}

func (h *LolHandler) Champion(w http.ResponseWriter, r *http.Request) {
	champion, err := h.catalog.ChampionDetails(r.Context(), pathParam(r, "championName"))
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound, "champion_not_found")
		return
	}
	writeJSON(w, r, http.StatusOK, champion)
}

func (h *LolHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Items(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, "items_fetch_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *LolHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.catalog.LatestVersion(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, "version_fetch_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"version": version})
}
