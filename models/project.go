package models

import "time"

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
