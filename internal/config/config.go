package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"beemo-api/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey     string `validate:"required"`
	RiotAPIHost    string `validate:"required,contains=%s"`
	DDragonBaseURL string `validate:"required,url"`
	DDragonLocale  string `validate:"required"`
	StaticDataTTL  time.Duration

	DBDriver string `validate:"oneof=sqlite3 pgx"`
	DBDSN    string `validate:"required"`

	ServerPort         string `validate:"required,numeric"`
	LogLevel           string `validate:"oneof=trace debug info warn error"`
	CORSAllowedOrigins []string

	DiscordClientID     string
	DiscordClientSecret string
	DiscordCallbackURL  string `validate:"omitempty,url"`
	DiscordAPIURL       string `validate:"required,url"`
	FrontendURL         string `validate:"required,url"`
}

// DiscordEnabled reports whether the OAuth routes have the credentials they need.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != "" && c.DiscordCallbackURL != ""
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	ttl, err := time.ParseDuration(getEnv("STATIC_DATA_TTL", constants.StaticDataTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid STATIC_DATA_TTL: %w", err)
	}

	cfg := &Config{
		RiotAPIKey:          getEnv("RIOT_API_KEY", ""),
		RiotAPIHost:         getEnv("RIOT_API_HOST", "https://%s.api.riotgames.com"),
		DDragonBaseURL:      strings.TrimRight(getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"), "/"),
		DDragonLocale:       getEnv("DDRAGON_LOCALE", "fr_FR"),
		StaticDataTTL:       ttl,
		DBDriver:            getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:               getEnv("DB_DSN", "beemo.db"),
		ServerPort:          getEnv("SERVER_PORT", "3333"),
		LogLevel:            getEnv("LOG_LEVEL", "debug"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		DiscordCallbackURL:  getEnv("DISCORD_CALLBACK_URL", ""),
		DiscordAPIURL:       strings.TrimRight(getEnv("DISCORD_API_URL", "https://discord.com/api"), "/"),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:4321"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info().
		Str("db_driver", cfg.DBDriver).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("ddragon_locale", cfg.DDragonLocale).
		Dur("static_data_ttl", cfg.StaticDataTTL).
		Bool("discord_enabled", cfg.DiscordEnabled()).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
