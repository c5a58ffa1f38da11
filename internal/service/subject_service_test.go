package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
)

func newTestSubjectService() (*SubjectService, *MockSubjectRepository, *MockTaskRepository) {
	subjectRepo := new(MockSubjectRepository)
	taskRepo := new(MockTaskRepository)
	svc := NewSubjectService(subjectRepo, taskRepo, zap.NewNop())
	return svc, subjectRepo, taskRepo
}

func TestSubjectService_Create_Defaults(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService()

	subjectRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Subject")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Subject).ID = 10
		}).Return(nil).Once()

	subject, err := svc.Create(context.Background(), 1, models.CreateSubjectRequest{Name: "Calculus"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), subject.ID)
	assert.Equal(t, 0, subject.Credit)
	assert.Equal(t, models.DifficultyNormal, subject.Difficulty)
	// Normal difficulty, no credit, empty workload: every factor neutral.
	assert.InDelta(t, 1.0, subject.Weight, 1e-9)
	subjectRepo.AssertExpectations(t)
}

func TestSubjectService_Create_ExplicitWeightWins(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService()

	weight := 2.5
	subjectRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Subject")).Return(nil).Once()

	subject, err := svc.Create(context.Background(), 1, models.CreateSubjectRequest{
		Name:   "Physics",
		Weight: &weight,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, subject.Weight)
}

func TestSubjectService_List_Pagination(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService()

	// Repo returns limit+1 rows, signalling another page.
	rows := []models.Subject{{ID: 1}, {ID: 2}, {ID: 3}}
	subjectRepo.On("List", mock.Anything, int64(1), mock.MatchedBy(func(q models.ListSubjectsQuery) bool {
		return q.Limit == 3
	})).Return(rows, nil).Once()

	list, err := svc.List(context.Background(), 1, models.ListSubjectsQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	require.NotNil(t, list.NextCursor)
	assert.Equal(t, int64(2), *list.NextCursor)
}

func TestSubjectService_List_LastPage(t *testing.T) {
	svc, subjectRepo, _ := newTestSubjectService()

	subjectRepo.On("List", mock.Anything, int64(1), mock.Anything).
		Return([]models.Subject{{ID: 1}}, nil).Once()

	list, err := svc.List(context.Background(), 1, models.ListSubjectsQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Nil(t, list.NextCursor)
}

func TestSubjectService_CreateTask_RecalculatesWeight(t *testing.T) {
	svc, subjectRepo, taskRepo := newTestSubjectService()

	subject := &models.Subject{ID: 10, UserID: 1, Difficulty: models.DifficultyNormal, Credit: 0, Weight: 1.0}
	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).Return(subject, nil).Once()
	taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.SubjectTask")).Return(nil).Once()
	taskRepo.On("OpenWorkload", mock.Anything, int64(1), int64(10), mock.Anything).
		Return(&models.SubjectWorkload{OpenEstimatedMin: 300}, nil).Once()
	// 1.0 * 1.5 load factor.
	subjectRepo.On("UpdateWeight", mock.Anything, int64(1), int64(10), 1.5).Return(nil).Once()

	estimated := 300
	task, err := svc.CreateTask(context.Background(), 1, 10, models.CreateTaskRequest{
		Title:        "Problem set 4",
		EstimatedMin: &estimated,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, 300, task.EstimatedMin)
	subjectRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}

func TestSubjectService_CreateTask_UnknownSubject(t *testing.T) {
	svc, subjectRepo, taskRepo := newTestSubjectService()

	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(99)).
		Return(nil, domainErrors.ErrSubjectNotFound).Once()

	_, err := svc.CreateTask(context.Background(), 1, 99, models.CreateTaskRequest{Title: "x"})
	assert.ErrorIs(t, err, domainErrors.ErrSubjectNotFound)
	taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubjectService_UpdateTaskStatus_RecalculatesWeight(t *testing.T) {
	svc, subjectRepo, taskRepo := newTestSubjectService()

	task := &models.SubjectTask{ID: 5, UserID: 1, SubjectID: 10, Status: models.TaskStatusDone}
	subject := &models.Subject{ID: 10, UserID: 1, Difficulty: models.DifficultyNormal, Credit: 0, Weight: 1.5}

	taskRepo.On("UpdateStatus", mock.Anything, int64(1), int64(5), models.TaskStatusDone).Return(task, nil).Once()
	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).Return(subject, nil).Once()
	taskRepo.On("OpenWorkload", mock.Anything, int64(1), int64(10), mock.Anything).
		Return(&models.SubjectWorkload{}, nil).Once()
	subjectRepo.On("UpdateWeight", mock.Anything, int64(1), int64(10), 1.0).Return(nil).Once()

	got, err := svc.UpdateTaskStatus(context.Background(), 1, 5, models.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, got.Status)
	subjectRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}

func TestSubjectService_RecalcWeight_UrgencyHorizonIsSevenDays(t *testing.T) {
	svc, subjectRepo, taskRepo := newTestSubjectService()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task := &models.SubjectTask{ID: 5, UserID: 1, SubjectID: 10, Status: models.TaskStatusTodo}
	subject := &models.Subject{ID: 10, UserID: 1, Difficulty: models.DifficultyNormal, Credit: 0, Weight: 1.0}

	taskRepo.On("UpdateStatus", mock.Anything, int64(1), int64(5), models.TaskStatusTodo).Return(task, nil).Once()
	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).Return(subject, nil).Once()
	// A task due in six days is urgent, so the urgency window handed to the
	// workload query must reach a full week out.
	taskRepo.On("OpenWorkload", mock.Anything, int64(1), int64(10), now.Add(7*24*time.Hour)).
		Return(&models.SubjectWorkload{UrgentCount: 1}, nil).Once()
	subjectRepo.On("UpdateWeight", mock.Anything, int64(1), int64(10), 1.1).Return(nil).Once()

	_, err := svc.UpdateTaskStatus(context.Background(), 1, 5, models.TaskStatusTodo)
	require.NoError(t, err)
	taskRepo.AssertExpectations(t)
	subjectRepo.AssertExpectations(t)
}

func TestSubjectService_UpdateTaskStatus_SkipsWriteWhenWeightUnchanged(t *testing.T) {
	svc, subjectRepo, taskRepo := newTestSubjectService()

	task := &models.SubjectTask{ID: 5, UserID: 1, SubjectID: 10, Status: models.TaskStatusInProgress}
	subject := &models.Subject{ID: 10, UserID: 1, Difficulty: models.DifficultyNormal, Credit: 0, Weight: 1.0}

	taskRepo.On("UpdateStatus", mock.Anything, int64(1), int64(5), models.TaskStatusInProgress).Return(task, nil).Once()
	subjectRepo.On("FindByID", mock.Anything, int64(1), int64(10)).Return(subject, nil).Once()
	taskRepo.On("OpenWorkload", mock.Anything, int64(1), int64(10), mock.Anything).
		Return(&models.SubjectWorkload{}, nil).Once()

	_, err := svc.UpdateTaskStatus(context.Background(), 1, 5, models.TaskStatusInProgress)
	require.NoError(t, err)
	subjectRepo.AssertNotCalled(t, "UpdateWeight", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
