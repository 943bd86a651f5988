package api

import (
	"context"
	"fmt"
	"net/url"

	"beemo-api/internal/config"
	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const riotSource = "Riot API"

type RiotClient struct {
	apiKey       string
	hostTemplate string
	client       *fasthttp.Client
	logger       zerolog.Logger
}

func NewRiotClient(cfg *config.Config, logger zerolog.Logger) *RiotClient {
	return &RiotClient{
		apiKey:       cfg.RiotAPIKey,
		hostTemplate: cfg.RiotAPIHost,
		client:       newHTTPClient(),
		logger:       logger.With().Str("component", "riot").Logger(),
	}
}

// host is either a platform region (euw1, kr) or a routing value (europe, asia).
func (c *RiotClient) url(host, path string) string {
	return fmt.Sprintf(c.hostTemplate, host) + path
}

func (c *RiotClient) headers() map[string]string {
	return map[string]string{"X-Riot-Token": c.apiKey}
}

func riotGet[T any](ctx context.Context, c *RiotClient, host, path string) (*T, error) {
	u := c.url(host, path)
	c.logger.Debug().Str("host", host).Str("path", path).Msg("riot request")
	return doRequest[T](ctx, c.client, riotSource, u, c.headers())
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*domain.Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(gameName), url.PathEscape(tagLine))
	return riotGet[domain.Account](ctx, c, routing, path)
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, region, puuid string) (*domain.Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))
	return riotGet[domain.Summoner](ctx, c, region, path)
}

// GetSummonerByName hits the legacy by-name endpoint, which Riot no longer serves on most platforms.
func (c *RiotClient) GetSummonerByName(ctx context.Context, region, summonerName string) (*domain.Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-name/%s", url.PathEscape(summonerName))
	return riotGet[domain.Summoner](ctx, c, region, path)
}

func (c *RiotClient) GetLeagueEntriesByPUUID(ctx context.Context, region, puuid string) ([]domain.RankEntry, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))
	entries, err := riotGet[[]domain.RankEntry](ctx, c, region, path)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// GetLeagueEntriesBySummonerID is the legacy rank endpoint, kept as a fallback.
func (c *RiotClient) GetLeagueEntriesBySummonerID(ctx context.Context, region, summonerID string) ([]domain.RankEntry, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-summoner/%s", url.PathEscape(summonerID))
	entries, err := riotGet[[]domain.RankEntry](ctx, c, region, path)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetChampionMasteries(ctx context.Context, region, puuid string) ([]domain.ChampionMastery, error) {
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", url.PathEscape(puuid))
	masteries, err := riotGet[[]domain.ChampionMastery](ctx, c, region, path)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) GetTopChampionMasteries(ctx context.Context, region, puuid string, count int) ([]domain.ChampionMastery, error) {
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d", url.PathEscape(puuid), count)
	masteries, err := riotGet[[]domain.ChampionMastery](ctx, c, region, path)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, routing, puuid string, start, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d", url.PathEscape(puuid), start, count)
	ids, err := riotGet[[]string](ctx, c, routing, path)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// GetMatch returns the match payload untouched; callers decode the parts they need.
func (c *RiotClient) GetMatch(ctx context.Context, routing, matchID string) (map[string]any, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))
	match, err := riotGet[map[string]any](ctx, c, routing, path)
	if err != nil {
		return nil, err
	}
	return *match, nil
}
