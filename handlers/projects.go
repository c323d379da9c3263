package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hrafn1377/prosjektravn/pkg/events"
	"github.com/Hrafn1377/prosjektravn/pkg/notify"
	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

// ProjectsHandler persists project mutations and relays a change event to the
// acting user's other open connections. Persistence always happens first; the
// relay is fire-and-forget, so a mutation never fails because no one was
// listening.
type ProjectsHandler struct {
	repo     *repository.ProjectsRepository
	notifier notify.Notifier
}

func NewProjectsHandler(repo *repository.ProjectsRepository, notifier notify.Notifier) *ProjectsHandler {
	return &ProjectsHandler{repo: repo, notifier: notifier}
}

func (h *ProjectsHandler) List(c *gin.Context) {
	projects, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid project id"))
		return
	}
	project, err := h.repo.GetByID(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Project not found"))
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Name is required"))
		return
	}
	userID := c.GetInt("userId")
	project, err := h.repo.Create(userID, req.Name, req.Description, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	h.notifier.NotifyUser(userID, events.New(events.ProjectCreated, project))
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectsHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid project id"))
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	userID := c.GetInt("userId")
	project, err := h.repo.Update(id, userID, req.Name, req.Description, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if project == nil {
		// Missing and not-owned are indistinguishable on purpose.
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Project not found"))
		return
	}
	h.notifier.NotifyUser(userID, events.New(events.ProjectUpdated, project))
	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid project id"))
		return
	}
	userID := c.GetInt("userId")
	deleted, err := h.repo.Delete(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Project not found"))
		return
	}
	h.notifier.NotifyUser(userID, events.Deleted(events.ProjectDeleted, id))
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
