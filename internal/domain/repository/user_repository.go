package repository

import (
	"context"

	"github.com/studytrack-io/studytrack/internal/domain/models"
)

// UserRepository persists identity records.
type UserRepository interface {
	// Create inserts the user and fills ID and timestamps.
	Create(ctx context.Context, user *models.User) error
	// FindByEmail returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}
