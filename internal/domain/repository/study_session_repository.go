package repository

import (
	"context"
	"time"

	"github.com/studytrack-io/studytrack/internal/domain/models"
)

// StudySessionRepository persists study sessions.
type StudySessionRepository interface {
	Create(ctx context.Context, session *models.StudySession) error
	FindByID(ctx context.Context, userID, id int64) (*models.StudySession, error)
	// Stop closes an open session, recording end time and duration.
	Stop(ctx context.Context, userID, id int64, endAt time.Time, durationSec int) (*models.StudySession, error)
	// FindBetween returns the user's sessions with start_at in [start, end),
	// ordered by start_at.
	FindBetween(ctx context.Context, userID int64, start, end time.Time) ([]models.StudySession, error)
	// FindRangeWithSubject is FindBetween joined with subject names,
	// restricted to finished sessions; the unit report aggregation uses.
	FindRangeWithSubject(ctx context.Context, userID int64, start, end time.Time) ([]models.ReportSession, error)
}
