package repository

import (
	"context"
	"time"

	"github.com/studytrack-io/studytrack/internal/domain/models"
)

// SubjectRepository persists a user's subjects. Every method is scoped to
// a user id; rows owned by another user behave as absent.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	FindByID(ctx context.Context, userID, id int64) (*models.Subject, error)
	// Update persists the mutable columns of the given subject.
	Update(ctx context.Context, subject *models.Subject) error
	SetArchived(ctx context.Context, userID, id int64, archived bool) (*models.Subject, error)
	UpdateWeight(ctx context.Context, userID, id int64, weight float64) error
	List(ctx context.Context, userID int64, q models.ListSubjectsQuery) ([]models.Subject, error)
	// ListActive returns the user's unarchived subjects.
	ListActive(ctx context.Context, userID int64) ([]models.Subject, error)
}

// TaskRepository persists subject tasks, the inputs to the weight model.
type TaskRepository interface {
	Create(ctx context.Context, task *models.SubjectTask) error
	FindByID(ctx context.Context, userID, id int64) (*models.SubjectTask, error)
	UpdateStatus(ctx context.Context, userID, id int64, status string) (*models.SubjectTask, error)
	ListBySubject(ctx context.Context, userID, subjectID int64) ([]models.SubjectTask, error)
	// OpenWorkload aggregates open tasks: total estimated minutes plus the
	// count due before urgentBefore.
	OpenWorkload(ctx context.Context, userID, subjectID int64, urgentBefore time.Time) (*models.SubjectWorkload, error)
}
