package models

import "time"

// Task statuses. Open tasks (todo, in_progress) feed the subject weight
// calculation.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

type SubjectTask struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	SubjectID    int64      `json:"subject_id" db:"subject_id"`
	Title        string     `json:"title" db:"title"`
	Status       string     `json:"status" db:"status"`
	EstimatedMin int        `json:"estimated_min" db:"estimated_min"`
	DueAt        *time.Time `json:"due_at,omitempty" db:"due_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	EstimatedMin *int       `json:"estimated_min" binding:"omitempty,min=0"`
	DueAt        *time.Time `json:"due_at"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}

// SubjectWorkload aggregates a subject's open tasks for weight
// recalculation.
type SubjectWorkload struct {
	OpenEstimatedMin int
	UrgentCount      int
}
