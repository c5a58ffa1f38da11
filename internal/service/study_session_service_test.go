package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
)

func newTestStudyService(now time.Time) (*StudySessionService, *MockStudySessionRepository, *MockSubjectRepository) {
	sessionRepo := new(MockStudySessionRepository)
	subjectRepo := new(MockSubjectRepository)
	svc := NewStudySessionService(sessionRepo, subjectRepo)
	svc.now = func() time.Time { return now }
	return svc, sessionRepo, subjectRepo
}

func TestStudySessionService_Start(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, sessionRepo, subjectRepo := newTestStudyService(now)

	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).
		Return(&models.Subject{ID: 10, UserID: 1}, nil).Once()
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.StudySession")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.StudySession).ID = 7
		}).Return(nil).Once()

	session, err := svc.Start(context.Background(), 1, models.StartSessionRequest{SubjectID: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.ID)
	assert.Equal(t, models.SessionSourceTimer, session.Source)
	assert.Equal(t, now, session.StartAt)
	assert.Nil(t, session.EndAt)
}

// Duration is whole elapsed seconds, fractions dropped.
func TestStudySessionService_Stop_FloorsDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	now := start.Add(25*time.Minute + 59*time.Second + 900*time.Millisecond)
	svc, sessionRepo, _ := newTestStudyService(now)

	open := &models.StudySession{ID: 7, UserID: 1, SubjectID: 10, StartAt: start}
	sessionRepo.On("FindByID", mock.Anything, int64(1), int64(7)).Return(open, nil).Once()
	sessionRepo.On("Stop", mock.Anything, int64(1), int64(7), now, 25*60+59).
		Return(&models.StudySession{ID: 7}, nil).Once()

	_, err := svc.Stop(context.Background(), 1, 7)
	require.NoError(t, err)
	sessionRepo.AssertExpectations(t)
}

func TestStudySessionService_Stop_AlreadyStopped(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, sessionRepo, _ := newTestStudyService(now)

	endAt := now.Add(-time.Hour)
	closed := &models.StudySession{ID: 7, UserID: 1, EndAt: &endAt}
	sessionRepo.On("FindByID", mock.Anything, int64(1), int64(7)).Return(closed, nil).Once()

	_, err := svc.Stop(context.Background(), 1, 7)
	assert.ErrorIs(t, err, domainErrors.ErrSessionNotFound)
	sessionRepo.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStudySessionService_CreateManual(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	svc, sessionRepo, subjectRepo := newTestStudyService(now)

	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).
		Return(&models.Subject{ID: 10, UserID: 1}, nil).Once()
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.StudySession")).Return(nil).Once()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	session, err := svc.CreateManual(context.Background(), 1, models.ManualSessionRequest{
		SubjectID: 10,
		StartAt:   start,
		EndAt:     end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionSourceManual, session.Source)
	require.NotNil(t, session.DurationSec)
	assert.Equal(t, 90*60, *session.DurationSec)
}

func TestStudySessionService_GetByDate_DayBounds(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	svc, sessionRepo, _ := newTestStudyService(now)

	date := time.Date(2026, 3, 10, 17, 45, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	sessionRepo.On("FindBetween", mock.Anything, int64(1), dayStart, dayStart.Add(24*time.Hour)).
		Return([]models.StudySession{{ID: 1}}, nil).Once()

	sessions, err := svc.GetByDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	sessionRepo.AssertExpectations(t)
}
