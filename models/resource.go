package models

import "time"

// Resource is a planning resource (a person/role with weekly capacity in hours).
type Resource struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}
