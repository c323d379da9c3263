package tests

import (
	"database/sql"
	"os"
	"testing"

	"github.com/Hrafn1377/prosjektravn/repository"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

// IntegrationTestSuite exercises the repositories against a real database.
// It needs DATABASE_URL and wipes the schema, so it only runs when that env
// var is set.
type IntegrationTestSuite struct {
	suite.Suite
	db      *sql.DB
	ownerID int
	otherID int
}

func TestIntegrationTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	dsn := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())
	s.db = db

	_, err = db.Exec("DROP SCHEMA public CASCADE; CREATE SCHEMA public;")
	s.Require().NoError(err)

	m, err := migrate.New("file://../migrations", dsn)
	s.Require().NoError(err)
	s.Require().NoError(m.Up())

	users := repository.NewUsersRepository(db)
	owner, err := users.CreateUser("owner@example.com", "Owner", "ownerpass1")
	s.Require().NoError(err)
	other, err := users.CreateUser("other@example.com", "Other", "otherpass1")
	s.Require().NoError(err)
	s.ownerID = owner.ID
	s.otherID = other.ID
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.db.Close()
}

func (s *IntegrationTestSuite) TestDuplicateEmailRejected() {
	users := repository.NewUsersRepository(s.db)
	_, err := users.CreateUser("owner@example.com", "Owner Again", "anotherpass")
	s.Error(err)
}

func (s *IntegrationTestSuite) TestProjectOwnershipScoping() {
	projects := repository.NewProjectsRepository(s.db)

	created, err := projects.Create(s.ownerID, "Ravn", "first project", "#336699")
	s.Require().NoError(err)
	s.Equal(s.ownerID, created.UserID)

	// The other user cannot see, update, or delete the row; all paths report
	// it as absent rather than forbidden.
	got, err := projects.GetByID(created.ID, s.otherID)
	s.NoError(err)
	s.Nil(got)

	updated, err := projects.Update(created.ID, s.otherID, "hijack", "", "")
	s.NoError(err)
	s.Nil(updated)

	deleted, err := projects.Delete(created.ID, s.otherID)
	s.NoError(err)
	s.False(deleted)

	// The owner can.
	updated, err = projects.Update(created.ID, s.ownerID, "Ravn 2", "renamed", "#000000")
	s.Require().NoError(err)
	s.Equal("Ravn 2", updated.Name)

	deleted, err = projects.Delete(created.ID, s.ownerID)
	s.NoError(err)
	s.True(deleted)
}

func (s *IntegrationTestSuite) TestTaskDefaultsAndProjectCascade() {
	projects := repository.NewProjectsRepository(s.db)
	tasks := repository.NewTasksRepository(s.db)

	project, err := projects.Create(s.ownerID, "Cascade", "", "")
	s.Require().NoError(err)

	task, err := tasks.Create(s.ownerID, "write spec", "", "pending", "high", nil, &project.ID, "")
	s.Require().NoError(err)
	s.Equal("pending", task.Status)
	s.Require().NotNil(task.ProjectID)
	s.Equal(project.ID, *task.ProjectID)

	deleted, err := projects.Delete(project.ID, s.ownerID)
	s.Require().NoError(err)
	s.True(deleted)

	// Deleting the project takes its tasks with it.
	got, err := tasks.GetByID(task.ID, s.ownerID)
	s.NoError(err)
	s.Nil(got)
}

func (s *IntegrationTestSuite) TestCommentsThreadOrder() {
	tasks := repository.NewTasksRepository(s.db)
	comments := repository.NewCommentsRepository(s.db)

	task, err := tasks.Create(s.ownerID, "discuss", "", "pending", "", nil, nil, "")
	s.Require().NoError(err)

	_, err = comments.Create(s.ownerID, task.ID, "Owner", "first")
	s.Require().NoError(err)
	_, err = comments.Create(s.ownerID, task.ID, "Owner", "second")
	s.Require().NoError(err)

	thread, err := comments.ListByTask(task.ID, s.ownerID)
	s.Require().NoError(err)
	s.Require().Len(thread, 2)
	s.Equal("first", thread[0].Content)
	s.Equal("second", thread[1].Content)
}

func (s *IntegrationTestSuite) TestDeviceTokenUpsert() {
	devices := repository.NewDevicesRepository(s.db)
	s.NoError(devices.RegisterToken(s.ownerID, "fcm-token-1"))
	s.NoError(devices.RegisterToken(s.ownerID, "fcm-token-1"))

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM fcm_tokens WHERE user_id = $1`, s.ownerID).Scan(&count)
	s.NoError(err)
	s.Equal(1, count)
}
