package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type DocumentsRepository struct {
	db *sql.DB
}

func NewDocumentsRepository(db *sql.DB) *DocumentsRepository {
	return &DocumentsRepository{db: db}
}

const documentColumns = "id, user_id, title, content, folder, created_at, updated_at"

func scanDocument(row interface{ Scan(...interface{}) error }) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.Folder, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentsRepository) List(userID int) ([]*models.Document, error) {
	rows, err := r.db.Query(`
		SELECT `+documentColumns+` FROM documents
		WHERE user_id = $1 ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *DocumentsRepository) Create(userID int, title, content, folder string) (*models.Document, error) {
	return scanDocument(r.db.QueryRow(`
		INSERT INTO documents (user_id, title, content, folder, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+documentColumns+`
	`, userID, title, content, folder))
}

func (r *DocumentsRepository) Update(id, userID int, title, content, folder string) (*models.Document, error) {
	return scanDocument(r.db.QueryRow(`
		UPDATE documents SET title = $1, content = $2, folder = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING `+documentColumns+`
	`, title, content, folder, id, userID))
}

func (r *DocumentsRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM documents WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
