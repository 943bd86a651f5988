package api

import (
	"context"
	"fmt"
	"strings"

	"beemo-api/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	discordSource = "Discord API"
	discordCDN    = "https://cdn.discordapp.com"
)

type DiscordUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Email      *string `json:"email"`
	Avatar     *string `json:"avatar"`
}

// AvatarURL is nil for users still on the default avatar.
func (u *DiscordUser) AvatarURL() *string {
	if u.Avatar == nil || *u.Avatar == "" {
		return nil
	}
	ext := "png"
	if strings.HasPrefix(*u.Avatar, "a_") {
		ext = "gif"
	}
	avatar := fmt.Sprintf("%s/avatars/%s/%s.%s", discordCDN, u.ID, *u.Avatar, ext)
	return &avatar
}

type DiscordClient struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewDiscordClient(cfg *config.Config, logger zerolog.Logger) *DiscordClient {
	return &DiscordClient{
		baseURL: cfg.DiscordAPIURL,
		client:  newHTTPClient(),
		logger:  logger.With().Str("component", "discord").Logger(),
	}
}

func (c *DiscordClient) GetCurrentUser(ctx context.Context, accessToken string) (*DiscordUser, error) {
	c.logger.Debug().Msg("fetching current discord user")
	return doRequest[DiscordUser](ctx, c.client, discordSource, c.baseURL+"/users/@me", map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
}
