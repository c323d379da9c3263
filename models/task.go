package models

import "time"

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   *int       `json:"project_id"`
	AssignedTo  string     `json:"assigned_to"`
	UserID      int        `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
