package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type ResourcesRepository struct {
	db *sql.DB
}

func NewResourcesRepository(db *sql.DB) *ResourcesRepository {
	return &ResourcesRepository{db: db}
}

const resourceColumns = "id, user_id, name, role, capacity, created_at"

func scanResource(row interface{ Scan(...interface{}) error }) (*models.Resource, error) {
	var res models.Resource
	err := row.Scan(&res.ID, &res.UserID, &res.Name, &res.Role, &res.Capacity, &res.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourcesRepository) List(userID int) ([]*models.Resource, error) {
	rows, err := r.db.Query(`
		SELECT `+resourceColumns+` FROM resources
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, rows.Err()
}

func (r *ResourcesRepository) Create(userID int, name, role string, capacity int) (*models.Resource, error) {
	return scanResource(r.db.QueryRow(`
		INSERT INTO resources (user_id, name, role, capacity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+resourceColumns+`
	`, userID, name, role, capacity))
}

func (r *ResourcesRepository) Update(id, userID int, name, role string, capacity int) (*models.Resource, error) {
	return scanResource(r.db.QueryRow(`
		UPDATE resources SET name = $1, role = $2, capacity = $3
		WHERE id = $4 AND user_id = $5
		RETURNING `+resourceColumns+`
	`, name, role, capacity, id, userID))
}

func (r *ResourcesRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM resources WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
