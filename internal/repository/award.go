package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"beemo-api/internal/domain"

	"github.com/rs/zerolog"
)

// AwardRepository serves the shrooms and respects tables, which share one shape.
type AwardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAwardRepository(sqlDB *sql.DB, logger zerolog.Logger) *AwardRepository {
	return &AwardRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func table(kind domain.AwardKind) (string, error) {
	switch kind {
	case domain.AwardShroom, domain.AwardRespect:
		return string(kind), nil
	}
	return "", fmt.Errorf("unknown award kind %q", kind)
}

func (r *AwardRepository) Create(ctx context.Context, kind domain.AwardKind, username string, reason *string) (*domain.Award, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	award := &domain.Award{
		Username:  username,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO `+tbl+` (username, reason, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, reason, now, now,
	)
	if err := row.Scan(&award.ID); err != nil {
		r.logger.Error().Err(err).Str("kind", tbl).Str("username", username).Msg("failed to insert award")
		return nil, fmt.Errorf("failed to insert into %s: %w", tbl, err)
	}

	r.logger.Debug().Str("kind", tbl).Str("username", username).Int64("id", award.ID).Msg("award inserted")
	return award, nil
}

func (r *AwardRepository) CountByUsername(ctx context.Context, kind domain.AwardKind, username string) (int64, error) {
	tbl, err := table(kind)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tbl+` WHERE username = $1`, username).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s for %s: %w", tbl, username, err)
	}
	return total, nil
}

// Top returns usernames ordered by award count, highest first; ties break by username.
func (r *AwardRepository) Top(ctx context.Context, kind domain.AwardKind, limit int) ([]domain.AwardCount, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT username, COUNT(*) AS total
		FROM `+tbl+`
		GROUP BY username
		ORDER BY total DESC, username ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s: %w", tbl, err)
	}
	defer rows.Close()

	result := make([]domain.AwardCount, 0, limit)
	for rows.Next() {
		var c domain.AwardCount
		if err := rows.Scan(&c.Username, &c.Total); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
