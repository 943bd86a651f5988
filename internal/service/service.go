package service

import (
	"context"
	"time"

	"beemo-api/internal/api"
	"beemo-api/internal/domain"
)

// RiotAPI is the subset of the Riot client the services call.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*domain.Account, error)
	GetSummonerByPUUID(ctx context.Context, region, puuid string) (*domain.Summoner, error)
	GetSummonerByName(ctx context.Context, region, summonerName string) (*domain.Summoner, error)
	GetLeagueEntriesByPUUID(ctx context.Context, region, puuid string) ([]domain.RankEntry, error)
	GetLeagueEntriesBySummonerID(ctx context.Context, region, summonerID string) ([]domain.RankEntry, error)
	GetChampionMasteries(ctx context.Context, region, puuid string) ([]domain.ChampionMastery, error)
	GetTopChampionMasteries(ctx context.Context, region, puuid string, count int) ([]domain.ChampionMastery, error)
	GetMatchIDs(ctx context.Context, routing, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, routing, matchID string) (map[string]any, error)
}

// StaticDataAPI is the subset of the Data Dragon client the catalog calls.
type StaticDataAPI interface {
	GetVersions(ctx context.Context) ([]string, error)
	GetChampions(ctx context.Context, version string) (map[string]domain.Champion, error)
	GetChampionDetails(ctx context.Context, version, championName string) (map[string]any, error)
	GetItems(ctx context.Context, version string) (map[string]domain.Item, error)
	ChampionIconURL(version, championID string) string
	ItemIconURL(version string, itemID int) string
	ChampionSplashURL(championID string, skinNum int) string
}

type DiscordAPI interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*api.DiscordUser, error)
}

type AwardStore interface {
	Create(ctx context.Context, kind domain.AwardKind, username string, reason *string) (*domain.Award, error)
	CountByUsername(ctx context.Context, kind domain.AwardKind, username string) (int64, error)
	Top(ctx context.Context, kind domain.AwardKind, limit int) ([]domain.AwardCount, error)
}

type UserStore interface {
	UpsertByDiscordID(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenStore interface {
	Create(ctx context.Context, token *domain.AccessToken) error
	GetByHash(ctx context.Context, hash string) (*domain.AccessToken, error)
	Touch(ctx context.Context, id int64, at time.Time) error
}
