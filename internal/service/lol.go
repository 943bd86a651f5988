package service

import (
	"context"
	"fmt"
	"math"

	"beemo-api/internal/api"
	"beemo-api/internal/constants"
	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const unknownChampion = "Unknown"

type LolService struct {
	riot      RiotAPI
	summoners *SummonerService
	catalog   *CatalogService
	logger    zerolog.Logger
}

func NewLolService(riot RiotAPI, summoners *SummonerService, catalog *CatalogService, logger zerolog.Logger) *LolService {
	return &LolService{riot: riot, summoners: summoners, catalog: catalog, logger: logger}
}

func (s *LolService) Resolve(ctx context.Context, identifier, tagLine, region string) (*domain.ResolvedSummoner, error) {
	return s.summoners.Resolve(ctx, identifier, tagLine, region)
}

// Ranks tries the puuid endpoint first and falls back to the legacy
// by-summoner endpoint with the same value.
func (s *LolService) Ranks(ctx context.Context, summoner *domain.ResolvedSummoner) ([]domain.RankEntry, error) {
	puuid := summoner.Summoner.Puuid

	entries, err := s.riot.GetLeagueEntriesByPUUID(ctx, summoner.Region, puuid)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("rank lookup by puuid failed, trying legacy endpoint")
		entries, err = s.riot.GetLeagueEntriesBySummonerID(ctx, summoner.Region, puuid)
		if err != nil {
			s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch ranks")
			return nil, fmt.Errorf("failed to fetch ranks: %w", err)
		}
	}
	if entries == nil {
		entries = []domain.RankEntry{}
	}
	return entries, nil
}

// Masteries returns the top masteries enriched with champion display data.
// A non-positive top returns every mastery.
func (s *LolService) Masteries(ctx context.Context, summoner *domain.ResolvedSummoner, top int) ([]domain.EnrichedMastery, error) {
	masteries, err := s.fetchMasteries(ctx, summoner, top)
	if err != nil {
		return nil, err
	}
	return s.enrichMasteries(ctx, masteries), nil
}

func (s *LolService) fetchMasteries(ctx context.Context, summoner *domain.ResolvedSummoner, top int) ([]domain.ChampionMastery, error) {
	puuid := summoner.Summoner.Puuid

	var masteries []domain.ChampionMastery
	var err error
	if top > 0 {
		masteries, err = s.riot.GetTopChampionMasteries(ctx, summoner.Region, puuid, top)
	} else {
		masteries, err = s.riot.GetChampionMasteries(ctx, summoner.Region, puuid)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Int("top", top).Msg("failed to fetch masteries")
		return nil, fmt.Errorf("failed to fetch masteries: %w", err)
	}
	return masteries, nil
}

func (s *LolService) enrichMasteries(ctx context.Context, masteries []domain.ChampionMastery) []domain.EnrichedMastery {
	results := settleAll(ctx, constants.EnrichmentConcurrency, masteries, func(ctx context.Context, m domain.ChampionMastery) (domain.EnrichedMastery, error) {
		champion, err := s.catalog.ChampionByID(ctx, m.ChampionID)
		if err != nil {
			return domain.EnrichedMastery{}, err
		}
		if champion == nil {
			return domain.EnrichedMastery{}, fmt.Errorf("champion %d: %w", m.ChampionID, ErrChampionNotFound)
		}
		icon, err := s.catalog.ChampionIconURL(ctx, champion.ID)
		if err != nil {
			return domain.EnrichedMastery{}, err
		}
		return domain.EnrichedMastery{ChampionMastery: m, ChampionName: champion.Name, ChampionImage: &icon}, nil
	})

	enriched := make([]domain.EnrichedMastery, len(masteries))
	for i, r := range results {
		if r.OK() {
			enriched[i] = r.Value
			continue
		}
		s.logger.Debug().Err(r.Err).Int("champion_id", masteries[i].ChampionID).Msg("champion not resolved")
		enriched[i] = domain.EnrichedMastery{ChampionMastery: masteries[i], ChampionName: unknownChampion}
	}
	return enriched
}

func clampMatchCount(count int) int {
	if count <= 0 {
		return constants.DefaultMatchCount
	}
	return min(count, constants.MaxMatchCount)
}

func validateRouting(routing string) error {
	if api.IsKnownRouting(routing) {
		return nil
	}
	return newValidationError([]FieldError{{Field: "platform", Message: fmt.Sprintf("unknown routing value %q", routing)}})
}

func (s *LolService) MatchIDs(ctx context.Context, summoner *domain.ResolvedSummoner, routing string, count int) ([]string, error) {
	if err := validateRouting(routing); err != nil {
		return nil, err
	}
	puuid := summoner.Summoner.Puuid

	ids, err := s.riot.GetMatchIDs(ctx, routing, puuid, 0, clampMatchCount(count))
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Str("routing", routing).Msg("failed to fetch match ids")
		return nil, fmt.Errorf("failed to fetch match ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Match returns the upstream match document unchanged.
func (s *LolService) Match(ctx context.Context, routing, matchID string) (map[string]any, error) {
	if err := validateRouting(routing); err != nil {
		return nil, err
	}

	match, err := s.riot.GetMatch(ctx, routing, matchID)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to fetch match")
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	return match, nil
}

type ProfileOptions struct {
	Routing      string
	TopChampions int
	MatchCount   int
}

// Profile aggregates summoner, ranks, top champions and recent matches.
// Ranks, masteries and the match list are required; individual match
// details and champion lookups are best effort.
func (s *LolService) Profile(ctx context.Context, summoner *domain.ResolvedSummoner, opts ProfileOptions) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if err := validateRouting(opts.Routing); err != nil {
		return nil, err
	}
	if opts.TopChampions <= 0 {
		opts.TopChampions = constants.DefaultTopChampions
	}
	puuid := summoner.Summoner.Puuid
	s.logger.Info().Str("puuid", puuid).Str("region", summoner.Region).Msg("building profile")

	var (
		ranks     []domain.RankEntry
		masteries []domain.ChampionMastery
		matchIDs  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ranks, err = s.Ranks(gctx, summoner)
		return err
	})
	g.Go(func() error {
		var err error
		masteries, err = s.fetchMasteries(gctx, summoner, opts.TopChampions)
		return err
	})
	g.Go(func() error {
		var err error
		matchIDs, err = s.MatchIDs(gctx, summoner, opts.Routing, opts.MatchCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		champions []domain.EnrichedMastery
		matches   []domain.MatchSummary
	)
	var enrich errgroup.Group
	enrich.Go(func() error {
		champions = s.enrichMasteries(ctx, masteries)
		return nil
	})
	enrich.Go(func() error {
		matches = s.recentMatches(ctx, puuid, opts.Routing, matchIDs)
		return nil
	})
	_ = enrich.Wait()

	profile := &domain.Profile{
		Summoner: domain.ProfileSummoner{
			Puuid:         puuid,
			Name:          summoner.Summoner.Name,
			GameName:      summoner.Account.GameName,
			TagLine:       summoner.Account.TagLine,
			ProfileIconID: summoner.Summoner.ProfileIconID,
			SummonerLevel: summoner.Summoner.SummonerLevel,
			RevisionDate:  summoner.Summoner.RevisionDate,
		},
		Ranks:         make([]domain.ProfileRank, 0, len(ranks)),
		TopChampions:  make([]domain.ProfileChampion, 0, len(champions)),
		RecentMatches: matches,
		TotalMatches:  len(matchIDs),
	}
	for _, r := range ranks {
		profile.Ranks = append(profile.Ranks, domain.ProfileRank{
			QueueType:    r.QueueType,
			Tier:         r.Tier,
			Rank:         r.Rank,
			LeaguePoints: r.LeaguePoints,
			Wins:         r.Wins,
			Losses:       r.Losses,
			WinRate:      WinRate(r.Wins, r.Losses),
			HotStreak:    r.HotStreak,
			Veteran:      r.Veteran,
			FreshBlood:   r.FreshBlood,
		})
	}
	for _, c := range champions {
		profile.TopChampions = append(profile.TopChampions, domain.ProfileChampion{
			ChampionID:     c.ChampionID,
			ChampionName:   c.ChampionName,
			ChampionImage:  c.ChampionImage,
			ChampionLevel:  c.ChampionLevel,
			ChampionPoints: c.ChampionPoints,
			ChestGranted:   c.ChestGranted,
			LastPlayTime:   c.LastPlayTime,
		})
	}

	s.logger.Info().
		Str("puuid", puuid).
		Int("ranks", len(profile.Ranks)).
		Int("champions", len(profile.TopChampions)).
		Int("matches", len(profile.RecentMatches)).
		Msg("profile built")
	return profile, nil
}

func (s *LolService) recentMatches(ctx context.Context, puuid, routing string, matchIDs []string) []domain.MatchSummary {
	ids := matchIDs[:min(constants.ProfileMatchDetails, len(matchIDs))]

	results := settleAll(ctx, constants.EnrichmentConcurrency, ids, func(ctx context.Context, id string) (domain.MatchSummary, error) {
		raw, err := s.riot.GetMatch(ctx, routing, id)
		if err != nil {
			return domain.MatchSummary{}, err
		}
		return summarizeMatch(id, puuid, raw)
	})
	for i, r := range results {
		if !r.OK() {
			s.logger.Warn().Err(r.Err).Str("match_id", ids[i]).Msg("skipping match")
		}
	}
	return successes(results)
}

// WinRate is the percentage of wins rounded to one decimal, nil without games.
func WinRate(wins, losses int) *float64 {
	total := wins + losses
	if total <= 0 {
		return nil
	}
	rate := math.Round(float64(wins)/float64(total)*1000) / 10
	return &rate
}
