package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

// RefreshTokenRepositoryPostgres implements repository.RefreshTokenRepository.
type RefreshTokenRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewRefreshTokenRepositoryPostgres(pool *pgxpool.Pool) *RefreshTokenRepositoryPostgres {
	return &RefreshTokenRepositoryPostgres{pool: pool}
}

func (r *RefreshTokenRepositoryPostgres) Create(ctx context.Context, userID int64, token string) (*models.RefreshToken, error) {
	query := `
		INSERT INTO refresh_tokens (user_id, token)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	rt := &models.RefreshToken{UserID: userID, Token: token}
	err := r.pool.QueryRow(ctx, query, userID, token).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepositoryPostgres) Find(ctx context.Context, token string, userID int64) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, created_at, updated_at
		FROM refresh_tokens
		WHERE token = $1 AND ($2::bigint = 0 OR user_id = $2)
		ORDER BY updated_at DESC
		LIMIT 1
	`
	rt := &models.RefreshToken{}
	err := r.pool.QueryRow(ctx, query, token, userID).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return rt, nil
}

// Replace is the rotation write. The condition on the old token value makes
// it a compare-and-swap: of two requests racing on the same pre-rotation
// token, the second sees zero affected rows and loses cleanly.
func (r *RefreshTokenRepositoryPostgres) Replace(ctx context.Context, id uuid.UUID, oldToken, newToken string) error {
	query := `
		UPDATE refresh_tokens
		SET token = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND token = $3
	`
	result, err := r.pool.Exec(ctx, query, newToken, id, oldToken)
	if err != nil {
		return fmt.Errorf("failed to replace refresh token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *RefreshTokenRepositoryPostgres) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	// Deleting an absent token is a successful no-op.
	if _, err := r.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepositoryPostgres) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens for user: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.RefreshTokenRepository = (*RefreshTokenRepositoryPostgres)(nil)
