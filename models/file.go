package models

import "time"

// File is an uploaded-file record. ObjectKey points at the stored object in the
// bucket; it is empty for rows created through the metadata-only endpoint.
type File struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	Status    string    `json:"status"`
	ObjectKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
