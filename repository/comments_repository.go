package repository

import (
	"database/sql"

	"github.com/Hrafn1377/prosjektravn/models"
)

type CommentsRepository struct {
	db *sql.DB
}

func NewCommentsRepository(db *sql.DB) *CommentsRepository {
	return &CommentsRepository{db: db}
}

const commentColumns = "id, user_id, task_id, author, content, created_at"

func scanComment(row interface{ Scan(...interface{}) error }) (*models.Comment, error) {
	var cm models.Comment
	err := row.Scan(&cm.ID, &cm.UserID, &cm.TaskID, &cm.Author, &cm.Content, &cm.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *CommentsRepository) List(userID int) ([]*models.Comment, error) {
	return r.list(`
		SELECT `+commentColumns+` FROM comments
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

// ListByTask returns a task's comments oldest first, the order a thread reads in.
func (r *CommentsRepository) ListByTask(taskID, userID int) ([]*models.Comment, error) {
	return r.list(`
		SELECT `+commentColumns+` FROM comments
		WHERE task_id = $1 AND user_id = $2 ORDER BY created_at ASC
	`, taskID, userID)
}

func (r *CommentsRepository) list(query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Comment, 0)
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cm)
	}
	return items, rows.Err()
}

func (r *CommentsRepository) Create(userID, taskID int, author, content string) (*models.Comment, error) {
	return scanComment(r.db.QueryRow(`
		INSERT INTO comments (user_id, task_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+commentColumns+`
	`, userID, taskID, author, content))
}

func (r *CommentsRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM comments WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
