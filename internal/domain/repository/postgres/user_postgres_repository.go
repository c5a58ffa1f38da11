package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

// UserRepositoryPostgres implements repository.UserRepository.
type UserRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewUserRepositoryPostgres(pool *pgxpool.Pool) *UserRepositoryPostgres {
	return &UserRepositoryPostgres{pool: pool}
}

func (r *UserRepositoryPostgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, nickname, grade, gender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_completed, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Nickname, user.Grade, user.Gender,
	).Scan(&user.ID, &user.IsCompleted, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domainErrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryPostgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, grade, gender, is_completed, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepositoryPostgres) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, grade, gender, is_completed, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepositoryPostgres) scanOne(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nickname, &u.Grade, &u.Gender,
		&u.IsCompleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepositoryPostgres)(nil)
