package models

import "time"

// Study session sources: started by the live timer or entered manually.
const (
	SessionSourceTimer  = "timer"
	SessionSourceManual = "manual"
)

type StudySession struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	SubjectID   int64      `json:"subject_id" db:"subject_id"`
	StartAt     time.Time  `json:"start_at" db:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty" db:"end_at"`
	DurationSec *int       `json:"duration_sec,omitempty" db:"duration_sec"`
	Source      string     `json:"source" db:"source"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type StartSessionRequest struct {
	SubjectID int64 `json:"subject_id" binding:"required"`
}

type StopSessionRequest struct {
	SessionID int64 `json:"session_id" binding:"required"`
}

type ManualSessionRequest struct {
	SubjectID int64     `json:"subject_id" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required,gtfield=StartAt"`
}

// ReportSession is a finished session joined with its subject name, the
// unit the report aggregation consumes.
type ReportSession struct {
	SubjectID   int64     `json:"subject_id" db:"subject_id"`
	SubjectName string    `json:"subject_name" db:"subject_name"`
	StartAt     time.Time `json:"start_at" db:"start_at"`
	DurationSec int       `json:"duration_sec" db:"duration_sec"`
}
