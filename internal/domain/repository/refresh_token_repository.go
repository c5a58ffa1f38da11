package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/studytrack-io/studytrack/internal/domain/models"
)

// RefreshTokenRepository is the session store behind refresh rotation.
// Replace must be a single conditional write: two requests racing on the
// same stale token value cannot both win.
type RefreshTokenRepository interface {
	// Create inserts a new row for the user and fills ID and timestamps.
	Create(ctx context.Context, userID int64, token string) (*models.RefreshToken, error)
	// Find returns the most recently updated row holding token. When
	// userID is non-zero the row must also belong to that user. Misses
	// return ErrNotFound.
	Find(ctx context.Context, token string, userID int64) (*models.RefreshToken, error)
	// Replace overwrites the row's token value only while it still holds
	// oldToken. A lost race surfaces as ErrNotFound.
	Replace(ctx context.Context, id uuid.UUID, oldToken, newToken string) error
	// DeleteByToken removes the row(s) holding token. Absence is not an
	// error.
	DeleteByToken(ctx context.Context, token string) error
	// DeleteAllForUser removes every row owned by the user and reports
	// how many were removed.
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}
