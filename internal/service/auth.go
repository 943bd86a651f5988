package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"beemo-api/internal/config"
	"beemo-api/internal/constants"
	"beemo-api/internal/domain"
	"beemo-api/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

type AuthService struct {
	oauth       *oauth2.Config
	enabled     bool
	frontendURL string
	discord     DiscordAPI
	users       UserStore
	tokens      TokenStore
	logger      zerolog.Logger
}

func NewAuthService(cfg *config.Config, discord DiscordAPI, users UserStore, tokens TokenStore, logger zerolog.Logger) *AuthService {
	return &AuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordCallbackURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.DiscordAPIURL + "/oauth2/authorize",
				TokenURL:  cfg.DiscordAPIURL + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		enabled:     cfg.DiscordEnabled(),
		frontendURL: cfg.FrontendURL,
		discord:     discord,
		users:       users,
		tokens:      tokens,
		logger:      logger,
	}
}

func (s *AuthService) Enabled() bool { return s.enabled }

func (s *AuthService) NewState() (string, error) {
	return gonanoid.New(constants.OAuthStateLength)
}

func (s *AuthService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// CallbackParams carries what Discord sent back plus the state we issued.
type CallbackParams struct {
	Code          string
	State         string
	ExpectedState string
	Error         string
}

// HandleCallback exchanges the code, upserts the Discord user and returns the
// frontend URL carrying a fresh access token.
func (s *AuthService) HandleCallback(ctx context.Context, p CallbackParams) (string, error) {
	switch {
	case p.Error == "access_denied":
		return "", ErrAccessDenied
	case p.State == "" || p.State != p.ExpectedState:
		return "", ErrStateMismatch
	case p.Error != "" || p.Code == "":
		s.logger.Warn().Str("error", p.Error).Msg("discord returned an error")
		return "", ErrAuthProvider
	}

	tok, err := s.oauth.Exchange(ctx, p.Code)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to exchange discord code")
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}

	discordUser, err := s.discord.GetCurrentUser(ctx, tok.AccessToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch discord user")
		return "", fmt.Errorf("failed to fetch discord user: %w", err)
	}

	user, err := s.users.UpsertByDiscordID(ctx, &domain.User{
		DiscordID: discordUser.ID,
		Username:  discordUser.Username,
		Email:     discordUser.Email,
		AvatarURL: discordUser.AvatarURL(),
	})
	if err != nil {
		return "", err
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("discord_id", user.DiscordID).Msg("discord login")
	return s.frontendURL + "?token=" + url.QueryEscape(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IssueToken creates an opaque access token. Only its hash is stored.
func (s *AuthService) IssueToken(ctx context.Context, userID int64) (string, error) {
	secret, err := gonanoid.New(constants.AccessTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := constants.AccessTokenPrefix + secret

	now := time.Now().UTC()
	if err := s.tokens.Create(ctx, &domain.AccessToken{
		UserID:    userID,
		Hash:      hashToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(constants.AccessTokenTTL),
	}); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate returns the owner of a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if !strings.HasPrefix(token, constants.AccessTokenPrefix) {
		return nil, ErrUnauthorized
	}

	stored, err := s.tokens.GetByHash(ctx, hashToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !now.Before(stored.ExpiresAt) {
		return nil, ErrUnauthorized
	}
	if err := s.tokens.Touch(ctx, stored.ID, now); err != nil {
		s.logger.Warn().Err(err).Int64("token_id", stored.ID).Msg("failed to record token use")
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	return user, err
}
