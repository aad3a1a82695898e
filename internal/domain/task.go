package domain

import "time"

// Task is a unit of work owned by exactly one user. Status is a free-form
// string with no enforced transitions.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskOwner is the owner projection embedded in task views.
type TaskOwner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskView is the projection used by the task list and get endpoints.
type TaskView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	User        TaskOwner `json:"user"`
}
