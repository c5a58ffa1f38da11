package service

import (
	"context"
	"time"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

// StudySessionService records study time, either through the live timer
// (Start/Stop) or as a manual after-the-fact entry.
type StudySessionService struct {
	sessionRepo repository.StudySessionRepository
	subjectRepo repository.SubjectRepository
	now         func() time.Time
}

func NewStudySessionService(sessionRepo repository.StudySessionRepository, subjectRepo repository.SubjectRepository) *StudySessionService {
	return &StudySessionService{
		sessionRepo: sessionRepo,
		subjectRepo: subjectRepo,
		now:         time.Now,
	}
}

// Start opens a timer session on the subject.
func (s *StudySessionService) Start(ctx context.Context, userID int64, req models.StartSessionRequest) (*models.StudySession, error) {
	if _, err := s.subjectRepo.FindByID(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	session := &models.StudySession{
		UserID:    userID,
		SubjectID: req.SubjectID,
		StartAt:   s.now().UTC(),
		Source:    models.SessionSourceTimer,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Stop closes an open timer session. Duration is the whole seconds elapsed
// since the session started; stopping an already closed session fails with
// ErrSessionNotFound.
func (s *StudySessionService) Stop(ctx context.Context, userID, sessionID int64) (*models.StudySession, error) {
	session, err := s.sessionRepo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndAt != nil {
		return nil, domainErrors.ErrSessionNotFound
	}

	endAt := s.now().UTC()
	durationSec := int(endAt.Sub(session.StartAt) / time.Second)
	if durationSec < 0 {
		durationSec = 0
	}
	return s.sessionRepo.Stop(ctx, userID, sessionID, endAt, durationSec)
}

// CreateManual records a finished session from explicit start and end
// times. Request binding guarantees end is after start.
func (s *StudySessionService) CreateManual(ctx context.Context, userID int64, req models.ManualSessionRequest) (*models.StudySession, error) {
	if _, err := s.subjectRepo.FindByID(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	startAt := req.StartAt.UTC()
	endAt := req.EndAt.UTC()
	durationSec := int(endAt.Sub(startAt) / time.Second)

	session := &models.StudySession{
		UserID:      userID,
		SubjectID:   req.SubjectID,
		StartAt:     startAt,
		EndAt:       &endAt,
		DurationSec: &durationSec,
		Source:      models.SessionSourceManual,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByDate returns the user's sessions started on the given calendar day.
func (s *StudySessionService) GetByDate(ctx context.Context, userID int64, date time.Time) ([]models.StudySession, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)
	return s.sessionRepo.FindBetween(ctx, userID, start, end)
}
