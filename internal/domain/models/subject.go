package models

import "time"

// Subject difficulty levels, factored into the weight calculation.
const (
	DifficultyEasy   = "Easy"
	DifficultyNormal = "Normal"
	DifficultyHard   = "Hard"
)

type Subject struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Color           *string   `json:"color,omitempty" db:"color"`
	TargetWeeklyMin int       `json:"target_weekly_min" db:"target_weekly_min"`
	Weight          float64   `json:"weight" db:"weight"`
	Credit          int       `json:"credit" db:"credit"`
	Difficulty      string    `json:"difficulty" db:"difficulty"`
	Archived        bool      `json:"archived" db:"archived"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type CreateSubjectRequest struct {
	Name            string   `json:"name" binding:"required,max=100"`
	Color           *string  `json:"color" binding:"omitempty,max=20"`
	TargetWeeklyMin *int     `json:"target_weekly_min" binding:"omitempty,min=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,min=0.5,max=3"`
	Credit          *int     `json:"credit" binding:"omitempty,min=0,max=10"`
	Difficulty      *string  `json:"difficulty" binding:"omitempty,oneof=Easy Normal Hard"`
}

// UpdateSubjectRequest carries a partial update; nil fields are untouched.
type UpdateSubjectRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Color           *string  `json:"color" binding:"omitempty,max=20"`
	TargetWeeklyMin *int     `json:"target_weekly_min" binding:"omitempty,min=0"`
	Weight          *float64 `json:"weight" binding:"omitempty,min=0.5,max=3"`
	Credit          *int     `json:"credit" binding:"omitempty,min=0,max=10"`
	Difficulty      *string  `json:"difficulty" binding:"omitempty,oneof=Easy Normal Hard"`
}

type ArchiveSubjectRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

// ListSubjectsQuery drives id-cursor pagination over a user's subjects.
type ListSubjectsQuery struct {
	Q               string
	IncludeArchived bool
	Limit           int
	Cursor          *int64
}

type SubjectList struct {
	Items      []Subject `json:"items"`
	NextCursor *int64    `json:"nextCursor"`
}
