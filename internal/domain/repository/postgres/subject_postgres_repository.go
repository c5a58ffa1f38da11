package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
	"github.com/studytrack-io/studytrack/internal/domain/models"
	"github.com/studytrack-io/studytrack/internal/domain/repository"
)

const subjectColumns = `id, user_id, name, color, target_weekly_min, weight, credit, difficulty, archived, created_at, updated_at`

// SubjectRepositoryPostgres implements repository.SubjectRepository.
type SubjectRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewSubjectRepositoryPostgres(pool *pgxpool.Pool) *SubjectRepositoryPostgres {
	return &SubjectRepositoryPostgres{pool: pool}
}

func (r *SubjectRepositoryPostgres) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (user_id, name, color, target_weekly_min, weight, credit, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, archived, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		subject.UserID, subject.Name, subject.Color, subject.TargetWeeklyMin,
		subject.Weight, subject.Credit, subject.Difficulty,
	).Scan(&subject.ID, &subject.Archived, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (r *SubjectRepositoryPostgres) FindByID(ctx context.Context, userID, id int64) (*models.Subject, error) {
	query := fmt.Sprintf(`SELECT %s FROM subjects WHERE id = $1 AND user_id = $2`, subjectColumns)
	return scanSubject(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *SubjectRepositoryPostgres) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, color = $2, target_weekly_min = $3, weight = $4,
		    credit = $5, difficulty = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
	`
	result, err := r.pool.Exec(ctx, query,
		subject.Name, subject.Color, subject.TargetWeeklyMin, subject.Weight,
		subject.Credit, subject.Difficulty, subject.ID, subject.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepositoryPostgres) SetArchived(ctx context.Context, userID, id int64, archived bool) (*models.Subject, error) {
	query := fmt.Sprintf(`
		UPDATE subjects
		SET archived = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, subjectColumns)
	return scanSubject(r.pool.QueryRow(ctx, query, archived, id, userID))
}

func (r *SubjectRepositoryPostgres) UpdateWeight(ctx context.Context, userID, id int64, weight float64) error {
	query := `
		UPDATE subjects
		SET weight = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`
	result, err := r.pool.Exec(ctx, query, weight, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update subject weight: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectRepositoryPostgres) List(ctx context.Context, userID int64, q models.ListSubjectsQuery) ([]models.Subject, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM subjects
		WHERE user_id = $1
		  AND ($2::boolean OR archived = false)
		  AND ($3 = '' OR name ILIKE '%%' || $3 || '%%')
		  AND ($4::bigint = 0 OR id > $4)
		ORDER BY id ASC
		LIMIT $5
	`, subjectColumns)

	var cursor int64
	if q.Cursor != nil {
		cursor = *q.Cursor
	}
	rows, err := r.pool.Query(ctx, query, userID, q.IncludeArchived, q.Q, cursor, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepositoryPostgres) ListActive(ctx context.Context, userID int64) ([]models.Subject, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subjects
		WHERE user_id = $1 AND archived = false
		ORDER BY id ASC
	`, subjectColumns)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	s := &models.Subject{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Color, &s.TargetWeeklyMin, &s.Weight,
		&s.Credit, &s.Difficulty, &s.Archived, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to scan subject: %w", err)
	}
	return s, nil
}

var _ repository.SubjectRepository = (*SubjectRepositoryPostgres)(nil)
