package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
)

const userColumns = `id, discord_id, username, email, avatar_url, riot_puuid, riot_game_name, riot_tag_line, created_at, updated_at`

type UserRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserRepository(sqlDB *sql.DB, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:     sqlDB,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var discordID sql.NullString
	err := row.Scan(
		&u.ID,
		&discordID,
		&u.Username,
		&u.Email,
		&u.AvatarURL,
		&u.RiotPuuid,
		&u.RiotGameName,
		&u.RiotTagLine,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.DiscordID = discordID.String
	return &u, nil
}

// UpsertByDiscordID creates the user or refreshes its profile fields, keyed on the Discord id.
func (r *UserRepository) UpsertByDiscordID(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (discord_id, username, email, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (discord_id) DO UPDATE SET
			username = excluded.username,
			email = excluded.email,
			avatar_url = excluded.avatar_url,
			updated_at = excluded.updated_at
		RETURNING id`,
		user.DiscordID, user.Username, user.Email, user.AvatarURL, now, now,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		r.logger.Error().Err(err).Str("discord_id", user.DiscordID).Msg("failed to upsert user")
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.DiscordID, err)
	}

	saved, err := r.GetByID(ctx, id)
	if err != nil {
		r.logger.Error().Err(err).Str("discord_id", user.DiscordID).Msg("failed to upsert user")
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.DiscordID, err)
	}

	r.logger.Debug().Int64("user_id", saved.ID).Str("discord_id", saved.DiscordID).Msg("user upserted")
	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}
