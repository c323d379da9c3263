package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type FilesRepository struct {
	db *sql.DB
}

func NewFilesRepository(db *sql.DB) *FilesRepository {
	return &FilesRepository{db: db}
}

const fileColumns = "id, user_id, name, type, size, status, object_key, created_at"

func scanFile(row interface{ Scan(...interface{}) error }) (*models.File, error) {
	var f models.File
	var objectKey sql.NullString
	err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Type, &f.Size, &f.Status, &objectKey, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.ObjectKey = objectKey.String
	return &f, nil
}

func (r *FilesRepository) List(userID int) ([]*models.File, error) {
	rows, err := r.db.Query(`
		SELECT `+fileColumns+` FROM files
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *FilesRepository) GetByID(id, userID int) (*models.File, error) {
	return scanFile(r.db.QueryRow(`
		SELECT `+fileColumns+` FROM files WHERE id = $1 AND user_id = $2
	`, id, userID))
}

// Create records file metadata only (the SPA's virtual file list).
func (r *FilesRepository) Create(userID int, name, fileType string, size int64) (*models.File, error) {
	return scanFile(r.db.QueryRow(`
		INSERT INTO files (user_id, name, type, size, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+fileColumns+`
	`, userID, name, fileType, size))
}

// CreateUploaded records a file whose content was stored in the bucket.
func (r *FilesRepository) CreateUploaded(userID int, name, fileType string, size int64, objectKey string) (*models.File, error) {
	return scanFile(r.db.QueryRow(`
		INSERT INTO files (user_id, name, type, size, object_key, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING `+fileColumns+`
	`, userID, name, fileType, size, objectKey))
}

func (r *FilesRepository) UpdateStatus(id, userID int, status string) (*models.File, error) {
	return scanFile(r.db.QueryRow(`
		UPDATE files SET status = $1 WHERE id = $2 AND user_id = $3
		RETURNING `+fileColumns+`
	`, status, id, userID))
}

// Delete removes the row and reports the object key (empty for metadata-only
// rows) so the caller can clean up the bucket.
func (r *FilesRepository) Delete(id, userID int) (string, bool, error) {
	var objectKey sql.NullString
	err := r.db.QueryRow(`
		DELETE FROM files WHERE id = $1 AND user_id = $2 RETURNING object_key
	`, id, userID).Scan(&objectKey)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return objectKey.String, true, nil
}
