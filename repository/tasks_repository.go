package repository

import (
	"database/sql"
	"time"

	"github.com/Hrafn1377/prosjektravn/models"
)

type TasksRepository struct {
	db *sql.DB
}

func NewTasksRepository(db *sql.DB) *TasksRepository {
	return &TasksRepository{db: db}
}

const taskColumns = "id, title, description, status, priority, due_date, project_id, assigned_to, user_id, created_at"

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	var t models.Task
	var dueDate sql.NullTime
	var projectID sql.NullInt64
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&dueDate, &projectID, &t.AssignedTo, &t.UserID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if projectID.Valid {
		pid := int(projectID.Int64)
		t.ProjectID = &pid
	}
	return &t, nil
}

func (r *TasksRepository) list(query string, args ...interface{}) ([]*models.Task, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *TasksRepository) List(userID int) ([]*models.Task, error) {
	return r.list(`
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

func (r *TasksRepository) ListByProject(projectID, userID int) ([]*models.Task, error) {
	return r.list(`
		SELECT `+taskColumns+` FROM tasks
		WHERE project_id = $1 AND user_id = $2 ORDER BY created_at DESC
	`, projectID, userID)
}

func (r *TasksRepository) GetByID(id, userID int) (*models.Task, error) {
	return scanTask(r.db.QueryRow(`
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *TasksRepository) Create(userID int, title, description, status, priority string,
	dueDate *time.Time, projectID *int, assignedTo string) (*models.Task, error) {
	return scanTask(r.db.QueryRow(`
		INSERT INTO tasks (title, description, status, priority, due_date, project_id, assigned_to, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING `+taskColumns+`
	`, title, description, status, priority, dueDate, projectID, assignedTo, userID))
}

func (r *TasksRepository) Update(id, userID int, title, description, status, priority string,
	dueDate *time.Time, assignedTo string) (*models.Task, error) {
	return scanTask(r.db.QueryRow(`
		UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, assigned_to = $6
		WHERE id = $7 AND user_id = $8
		RETURNING `+taskColumns+`
	`, title, description, status, priority, dueDate, assignedTo, id, userID))
}

func (r *TasksRepository) Delete(id, userID int) (bool, error) {
	var deleted int
	err := r.db.QueryRow(`
		DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING id
	`, id, userID).Scan(&deleted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
