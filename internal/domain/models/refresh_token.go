package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one row per active refresh credential. The token value
// is overwritten in place on every successful rotation, so a pre-rotation
// value never matches a row again. The row is deleted at logout.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TokenPair is a freshly issued access/refresh credential pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}
