package service

import (
	"context"
	"fmt"
	"strings"

	"beemo-api/internal/api"
	"beemo-api/internal/constants"
	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
)

type SummonerService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewSummonerService(riot RiotAPI, logger zerolog.Logger) *SummonerService {
	return &SummonerService{riot: riot, logger: logger}
}

// SplitRiotID turns a free-form identifier into a game name and tag line.
// Without an explicit tag, "Name-Tag" is split on the first '-', so game
// names that contain '-' cannot be looked up that way. A bare name gets the
// region's default tag.
func SplitRiotID(identifier, tagLine, region string) (string, string) {
	gameName := identifier
	if tagLine == "" {
		if name, tag, ok := strings.Cut(identifier, "-"); ok {
			gameName, tagLine = name, tag
		}
	}
	if tagLine == "" {
		tagLine = api.DefaultTagLine(region)
	}
	return gameName, tagLine
}

// Resolve looks up the account on the regional routing host and the summoner
// on the platform host. A bare name that has no Riot ID under the region's
// default tag is retried as a legacy summoner name. Every failure is reported
// as ErrSummonerNotFound.
func (s *SummonerService) Resolve(ctx context.Context, identifier, tagLine, region string) (*domain.ResolvedSummoner, error) {
	if region == "" {
		region = constants.DefaultRegion
	}
	bareName := tagLine == "" && !strings.Contains(identifier, "-")
	gameName, tagLine := SplitRiotID(identifier, tagLine, region)
	routing := api.RoutingForRegion(region)

	log := s.logger.With().Str("game_name", gameName).Str("tag_line", tagLine).Str("region", region).Logger()
	if !api.IsKnownRegion(region) {
		log.Warn().Strs("known_regions", api.Regions()).Msg("unknown region, using europe routing and EUW tag")
	}
	log.Debug().Str("routing", routing).Msg("resolving summoner")

	if gameName == "" {
		return nil, fmt.Errorf("%w: empty game name", ErrSummonerNotFound)
	}

	account, err := s.riot.GetAccountByRiotID(ctx, routing, gameName, tagLine)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch account")
		if bareName {
			if resolved, lerr := s.resolveLegacyName(ctx, gameName, tagLine, region); lerr == nil {
				return resolved, nil
			}
		}
		return nil, fmt.Errorf("%w: %s#%s: %w", ErrSummonerNotFound, gameName, tagLine, err)
	}

	summoner, err := s.riot.GetSummonerByPUUID(ctx, region, account.Puuid)
	if err != nil {
		log.Warn().Err(err).Str("puuid", account.Puuid).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("%w: %s#%s: %w", ErrSummonerNotFound, gameName, tagLine, err)
	}

	return &domain.ResolvedSummoner{Account: *account, Summoner: *summoner, Region: region}, nil
}

func (s *SummonerService) resolveLegacyName(ctx context.Context, name, tagLine, region string) (*domain.ResolvedSummoner, error) {
	summoner, err := s.riot.GetSummonerByName(ctx, region, name)
	if err != nil {
		s.logger.Debug().Err(err).Str("name", name).Str("region", region).Msg("legacy name lookup failed")
		return nil, err
	}

	gameName := summoner.Name
	if gameName == "" {
		gameName = name
	}
	s.logger.Info().Str("name", name).Str("puuid", summoner.Puuid).Msg("resolved summoner by legacy name")
	return &domain.ResolvedSummoner{
		Account:  domain.Account{Puuid: summoner.Puuid, GameName: gameName, TagLine: tagLine},
		Summoner: *summoner,
		Region:   region,
	}, nil
}
