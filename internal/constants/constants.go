package constants

import "time"

const (
	StaticDataTTL      = 1 * time.Hour
	StaticDataCleanup  = 10 * time.Minute
	OAuthStateTTL      = 10 * time.Minute
	AccessTokenTTL     = 30 * 24 * time.Hour
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultRegion         = "euw1"
	DefaultRouting        = "europe"
	DefaultTopMasteries   = 10
	DefaultTopChampions   = 5
	DefaultMatchCount     = 10
	MaxMatchCount         = 100
	ProfileMatchDetails   = 5
	LeaderboardLimit      = 10
	EnrichmentConcurrency = 5
)

const (
	AccessTokenPrefix = "oat_"
	AccessTokenLength = 40
	OAuthStateLength  = 32
	OAuthStateCookie  = "discord_oauth_state"
)
