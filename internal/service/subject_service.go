package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

// urgencyHorizon is how far ahead a task due date counts as urgent for
// the weight calculation.
const urgencyHorizon = 7 * 24 * time.Hour

const defaultDifficulty = models.DifficultyNormal

// SubjectService manages a user's subjects and their tasks. Task writes
// trigger a weight recalculation for the owning subject.
type SubjectService struct {
	subjectRepo repository.SubjectRepository
	taskRepo    repository.TaskRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewSubjectService(subjectRepo repository.SubjectRepository, taskRepo repository.TaskRepository, logger *zap.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		taskRepo:    taskRepo,
		logger:      logger.Named("subject_service"),
		now:         time.Now,
	}
}

func (s *SubjectService) Create(ctx context.Context, userID int64, req models.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		UserID:     userID,
		Name:       req.Name,
		Color:      req.Color,
		Difficulty: defaultDifficulty,
	}
	if req.TargetWeeklyMin != nil {
		subject.TargetWeeklyMin = *req.TargetWeeklyMin
	}
	if req.Credit != nil {
		subject.Credit = *req.Credit
	}
	if req.Difficulty != nil {
		subject.Difficulty = *req.Difficulty
	}
	if req.Weight != nil {
		subject.Weight = *req.Weight
	} else {
		subject.Weight = computeWeight(subject, &models.SubjectWorkload{})
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Get(ctx context.Context, userID, id int64) (*models.Subject, error) {
	return s.subjectRepo.FindByID(ctx, userID, id)
}

func (s *SubjectService) List(ctx context.Context, userID int64, q models.ListSubjectsQuery) (*models.SubjectList, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}
	// Fetch one past the page to learn whether another page exists.
	fetch := q
	fetch.Limit = q.Limit + 1
	items, err := s.subjectRepo.List(ctx, userID, fetch)
	if err != nil {
		return nil, err
	}

	list := &models.SubjectList{Items: items}
	if len(items) > q.Limit {
		list.Items = items[:q.Limit]
		last := list.Items[len(list.Items)-1].ID
		list.NextCursor = &last
	}
	return list, nil
}

// Update applies the non-nil fields of req. An explicit weight in req
// overrides the computed value until the next task-driven recalculation.
func (s *SubjectService) Update(ctx context.Context, userID, id int64, req models.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Color != nil {
		subject.Color = req.Color
	}
	if req.TargetWeeklyMin != nil {
		subject.TargetWeeklyMin = *req.TargetWeeklyMin
	}
	if req.Credit != nil {
		subject.Credit = *req.Credit
	}
	if req.Difficulty != nil {
		subject.Difficulty = *req.Difficulty
	}
	if req.Weight != nil {
		subject.Weight = *req.Weight
	} else if req.Credit != nil || req.Difficulty != nil {
		// Weight inputs changed; recompute against the current workload.
		workload, err := s.taskRepo.OpenWorkload(ctx, userID, id, s.now().Add(urgencyHorizon))
		if err != nil {
			return nil, err
		}
		subject.Weight = computeWeight(subject, workload)
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) SetArchived(ctx context.Context, userID, id int64, archived bool) (*models.Subject, error) {
	return s.subjectRepo.SetArchived(ctx, userID, id, archived)
}

func (s *SubjectService) CreateTask(ctx context.Context, userID, subjectID int64, req models.CreateTaskRequest) (*models.SubjectTask, error) {
	// The subject must exist and belong to the caller.
	subject, err := s.subjectRepo.FindByID(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}

	task := &models.SubjectTask{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     req.Title,
		Status:    models.TaskStatusTodo,
		DueAt:     req.DueAt,
	}
	if req.EstimatedMin != nil {
		task.EstimatedMin = *req.EstimatedMin
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if err := s.recalcWeight(ctx, subject); err != nil {
		s.logger.Error("weight recalculation failed",
			zap.Int64("subject_id", subjectID), zap.Error(err))
	}
	return task, nil
}

func (s *SubjectService) UpdateTaskStatus(ctx context.Context, userID, taskID int64, status string) (*models.SubjectTask, error) {
	task, err := s.taskRepo.UpdateStatus(ctx, userID, taskID, status)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.FindByID(ctx, userID, task.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := s.recalcWeight(ctx, subject); err != nil {
		s.logger.Error("weight recalculation failed",
			zap.Int64("subject_id", task.SubjectID), zap.Error(err))
	}
	return task, nil
}

func (s *SubjectService) ListTasks(ctx context.Context, userID, subjectID int64) ([]models.SubjectTask, error) {
	if _, err := s.subjectRepo.FindByID(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListBySubject(ctx, userID, subjectID)
}

func (s *SubjectService) recalcWeight(ctx context.Context, subject *models.Subject) error {
	workload, err := s.taskRepo.OpenWorkload(ctx, subject.UserID, subject.ID, s.now().Add(urgencyHorizon))
	if err != nil {
		return err
	}
	weight := computeWeight(subject, workload)
	if weight == subject.Weight {
		return nil
	}
	return s.subjectRepo.UpdateWeight(ctx, subject.UserID, subject.ID, weight)
}
