package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beemo-api/internal/constants"
	"beemo-api/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Both columns are VARCHAR(255) on postgres.
type GiveAwardInput struct {
	Username string  `validate:"required,max=255"`
	Reason   *string `validate:"omitempty,max=255"`
}

type GameService struct {
	awards   AwardStore
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewGameService(awards AwardStore, logger zerolog.Logger) *GameService {
	return &GameService{awards: awards, validate: validator.New(), logger: logger}
}

func (s *GameService) Give(ctx context.Context, kind domain.AwardKind, in GiveAwardInput) (*domain.Award, error) {
	if in.Reason != nil && *in.Reason == "" {
		in.Reason = nil
	}
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	award, err := s.awards.Create(ctx, kind, in.Username, in.Reason)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Str("username", in.Username).Msg("failed to give award")
		return nil, err
	}

	s.logger.Info().Str("kind", string(kind)).Str("username", in.Username).Int64("id", award.ID).Msg("award given")
	return award, nil
}

func (s *GameService) validateInput(in GiveAwardInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Rule:    fe.Tag(),
			Message: fmt.Sprintf("failed on %s", fe.Tag()),
		})
	}
	return newValidationError(fields)
}

func (s *GameService) UserStats(ctx context.Context, username string) (*domain.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	stats := &domain.UserStats{Username: username}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.Shrooms, err = s.awards.CountByUsername(gctx, domain.AwardShroom, username)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Respects, err = s.awards.CountByUsername(gctx, domain.AwardRespect, username)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to count awards")
		return nil, err
	}
	return stats, nil
}

func (s *GameService) Top(ctx context.Context, kind domain.AwardKind) ([]domain.AwardCount, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	top, err := s.awards.Top(ctx, kind, constants.LeaderboardLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to load leaderboard")
		return nil, err
	}
	return top, nil
}
