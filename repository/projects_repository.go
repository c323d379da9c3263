package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type ProjectsRepository struct {
	db *sql.DB
}

func NewProjectsRepository(db *sql.DB) *ProjectsRepository {
	return &ProjectsRepository{db: db}
}

const projectColumns = "id, name, description, color, user_id, created_at"

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.UserID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectsRepository) List(userID int) ([]*models.Project, error) {
	rows, err := r.db.Query(`
		SELECT `+projectColumns+` FROM projects
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// GetByID is scoped by owner: a row that exists but belongs to another user
// is reported as absent (nil, nil).
func (r *ProjectsRepository) GetByID(id, userID int) (*models.Project, error) {
	return scanProject(r.db.QueryRow(`
		SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *ProjectsRepository) Create(userID int, name, description, color string) (*models.Project, error) {
	return scanProject(r.db.QueryRow(`
		INSERT INTO projects (name, description, color, user_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+projectColumns+`
	`, name, description, color, userID))
}

// Update addresses the row by (id, user_id); nil, nil means no row matched.
func (r *ProjectsRepository) Update(id, userID int, name, description, color string) (*models.Project, error) {
	return scanProject(r.db.QueryRow(`
		UPDATE projects SET name = $1, description = $2, color = $3
		WHERE id = $4 AND user_id = $5
		RETURNING `+projectColumns+`
	`, name, description, color, id, userID))
}

// Delete reports whether a row matched (id, user_id) and was removed.
func (r *ProjectsRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM projects WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
