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

const sessionColumns = `id, user_id, subject_id, start_at, end_at, duration_sec, source, created_at`

// StudySessionRepositoryPostgres implements repository.StudySessionRepository.
type StudySessionRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepositoryPostgres(pool *pgxpool.Pool) *StudySessionRepositoryPostgres {
	return &StudySessionRepositoryPostgres{pool: pool}
}

func (r *StudySessionRepositoryPostgres) Create(ctx context.Context, session *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (user_id, subject_id, start_at, end_at, duration_sec, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		session.UserID, session.SubjectID, session.StartAt,
		session.EndAt, session.DurationSec, session.Source,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create study session: %w", err)
	}
	return nil
}

func (r *StudySessionRepositoryPostgres) FindByID(ctx context.Context, userID, id int64) (*models.StudySession, error) {
	query := fmt.Sprintf(`SELECT %s FROM study_sessions WHERE id = $1 AND user_id = $2`, sessionColumns)
	return scanSession(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *StudySessionRepositoryPostgres) Stop(ctx context.Context, userID, id int64, endAt time.Time, durationSec int) (*models.StudySession, error) {
	query := fmt.Sprintf(`
		UPDATE study_sessions
		SET end_at = $1, duration_sec = $2
		WHERE id = $3 AND user_id = $4 AND end_at IS NULL
		RETURNING %s
	`, sessionColumns)
	return scanSession(r.pool.QueryRow(ctx, query, endAt, durationSec, id, userID))
}

func (r *StudySessionRepositoryPostgres) FindBetween(ctx context.Context, userID int64, start, end time.Time) ([]models.StudySession, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM study_sessions
		WHERE user_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at ASC
	`, sessionColumns)
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to find study sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *StudySessionRepositoryPostgres) FindRangeWithSubject(ctx context.Context, userID int64, start, end time.Time) ([]models.ReportSession, error) {
	query := `
		SELECT s.subject_id, sub.name, s.start_at, s.duration_sec
		FROM study_sessions s
		JOIN subjects sub ON sub.id = s.subject_id
		WHERE s.user_id = $1 AND s.start_at >= $2 AND s.start_at < $3
		  AND s.duration_sec IS NOT NULL
		ORDER BY s.start_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions for report: %w", err)
	}
	defer rows.Close()

	var sessions []models.ReportSession
	for rows.Next() {
		var s models.ReportSession
		if err := rows.Scan(&s.SubjectID, &s.SubjectName, &s.StartAt, &s.DurationSec); err != nil {
			return nil, fmt.Errorf("failed to scan report session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row pgx.Row) (*models.StudySession, error) {
	s := &models.StudySession{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.SubjectID, &s.StartAt, &s.EndAt,
		&s.DurationSec, &s.Source, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan study session: %w", err)
	}
	return s, nil
}

var _ repository.StudySessionRepository = (*StudySessionRepositoryPostgres)(nil)
