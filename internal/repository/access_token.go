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

// AccessTokenRepository stores opaque bearer tokens by their hash only.
type AccessTokenRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAccessTokenRepository(sqlDB *sql.DB, logger zerolog.Logger) *AccessTokenRepository {
	return &AccessTokenRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *AccessTokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO access_tokens (user_id, hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		token.UserID, token.Hash, token.CreatedAt.UTC(), token.ExpiresAt.UTC(),
	)
	if err := row.Scan(&token.ID); err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	return nil
}

func (r *AccessTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.AccessToken, error) {
	var t domain.AccessToken
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, hash, created_at, expires_at, last_used_at
		FROM access_tokens WHERE hash = $1`, hash,
	).Scan(&t.ID, &t.UserID, &t.Hash, &t.CreatedAt, &t.ExpiresAt, &t.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *AccessTokenRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE access_tokens SET last_used_at = $1 WHERE id = $2`, at.UTC(), id); err != nil {
		r.logger.Warn().Err(err).Int64("token_id", id).Msg("failed to touch access token")
		return err
	}
	return nil
}
