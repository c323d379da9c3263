package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamMemberColumns = "id, user_id, name, email, role, avatar, created_at"

func scanTeamMember(row interface{ Scan(...interface{}) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.Role, &m.Avatar, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) List(userID int) ([]*models.TeamMember, error) {
	rows, err := r.db.Query(`
		SELECT `+teamMemberColumns+` FROM team_members
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *TeamRepository) Create(userID int, name, email, role, avatar string) (*models.TeamMember, error) {
	return scanTeamMember(r.db.QueryRow(`
		INSERT INTO team_members (user_id, name, email, role, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING `+teamMemberColumns+`
	`, userID, name, email, role, avatar))
}

func (r *TeamRepository) Update(id, userID int, name, email, role, avatar string) (*models.TeamMember, error) {
	return scanTeamMember(r.db.QueryRow(`
		UPDATE team_members SET name = $1, email = $2, role = $3, avatar = $4
		WHERE id = $5 AND user_id = $6
		RETURNING `+teamMemberColumns+`
	`, name, email, role, avatar, id, userID))
}

func (r *TeamRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM team_members WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
