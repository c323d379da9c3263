package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Hrafn1377/prosjektravn/pkg/events"
	"github.com/Hrafn1377/prosjektravn/pkg/notify"
	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

type TasksHandler struct {
	repo         *repository.TasksRepository
	projectsRepo *repository.ProjectsRepository
	notifier     notify.Notifier
}

func NewTasksHandler(repo *repository.TasksRepository, projectsRepo *repository.ProjectsRepository, notifier notify.Notifier) *TasksHandler {
	return &TasksHandler{repo: repo, projectsRepo: projectsRepo, notifier: notifier}
}

func (h *TasksHandler) List(c *gin.Context) {
	tasks, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListByProject verifies the project belongs to the caller before listing,
// returning the same collapsed 404 as every other owner-scoped read.
func (h *TasksHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid project id"))
		return
	}
	userID := c.GetInt("userId")
	project, err := h.projectsRepo.GetByID(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Project not found"))
		return
	}
	tasks, err := h.repo.ListByProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TasksHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid task id"))
		return
	}
	task, err := h.repo.GetByID(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Task not found"))
		return
	}
	c.JSON(http.StatusOK, task)
}

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   *int       `json:"project_id"`
	AssignedTo  string     `json:"assigned_to"`
}

func (h *TasksHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Title is required"))
		return
	}
	if req.Status == "" {
		req.Status = "pending"
	}
	userID := c.GetInt("userId")
	if req.ProjectID != nil {
		project, err := h.projectsRepo.GetByID(*req.ProjectID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		if project == nil {
			c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Project not found"))
			return
		}
	}
	task, err := h.repo.Create(userID, req.Title, req.Description, req.Status, req.Priority,
		req.DueDate, req.ProjectID, req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	h.notifier.NotifyUser(userID, events.New(events.TaskCreated, task))
	c.JSON(http.StatusCreated, task)
}

func (h *TasksHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid task id"))
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	userID := c.GetInt("userId")
	task, err := h.repo.Update(id, userID, req.Title, req.Description, req.Status, req.Priority,
		req.DueDate, req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Task not found"))
		return
	}
	h.notifier.NotifyUser(userID, events.New(events.TaskUpdated, task))
	c.JSON(http.StatusOK, task)
}

func (h *TasksHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid task id"))
		return
	}
	userID := c.GetInt("userId")
	deleted, err := h.repo.Delete(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Task not found"))
		return
	}
	h.notifier.NotifyUser(userID, events.Deleted(events.TaskDeleted, id))
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
