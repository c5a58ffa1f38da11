package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

const taskColumns = `id, user_id, subject_id, title, status, estimated_min, due_at, created_at, updated_at`

// TaskRepositoryPostgres implements repository.TaskRepository.
type TaskRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewTaskRepositoryPostgres(pool *pgxpool.Pool) *TaskRepositoryPostgres {
	return &TaskRepositoryPostgres{pool: pool}
}

func (r *TaskRepositoryPostgres) Create(ctx context.Context, task *models.SubjectTask) error {
	query := `
		INSERT INTO subject_tasks (user_id, subject_id, title, status, estimated_min, due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		task.UserID, task.SubjectID, task.Title, task.Status, task.EstimatedMin, task.DueAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepositoryPostgres) FindByID(ctx context.Context, userID, id int64) (*models.SubjectTask, error) {
	query := fmt.Sprintf(`SELECT %s FROM subject_tasks WHERE id = $1 AND user_id = $2`, taskColumns)
	return scanTask(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *TaskRepositoryPostgres) UpdateStatus(ctx context.Context, userID, id int64, status string) (*models.SubjectTask, error) {
	query := fmt.Sprintf(`
		UPDATE subject_tasks
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, taskColumns)
	return scanTask(r.pool.QueryRow(ctx, query, status, id, userID))
}

func (r *TaskRepositoryPostgres) ListBySubject(ctx context.Context, userID, subjectID int64) ([]models.SubjectTask, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subject_tasks
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY id ASC
	`, taskColumns)
	rows, err := r.pool.Query(ctx, query, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.SubjectTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepositoryPostgres) OpenWorkload(ctx context.Context, userID, subjectID int64, urgentBefore time.Time) (*models.SubjectWorkload, error) {
	query := `
		SELECT
			COALESCE(SUM(estimated_min), 0),
			COUNT(*) FILTER (WHERE due_at IS NOT NULL AND due_at >= CURRENT_TIMESTAMP AND due_at <= $3)
		FROM subject_tasks
		WHERE user_id = $1 AND subject_id = $2 AND status IN ('todo', 'in_progress')
	`
	w := &models.SubjectWorkload{}
	err := r.pool.QueryRow(ctx, query, userID, subjectID, urgentBefore).Scan(&w.OpenEstimatedMin, &w.UrgentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open workload: %w", err)
	}
	return w, nil
}

func scanTask(row pgx.Row) (*models.SubjectTask, error) {
	t := &models.SubjectTask{}
	err := row.Scan(
		&t.ID, &t.UserID, &t.SubjectID, &t.Title, &t.Status,
		&t.EstimatedMin, &t.DueAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return t, nil
}

var _ repository.TaskRepository = (*TaskRepositoryPostgres)(nil)
