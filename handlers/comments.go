package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

type CommentsHandler struct {
	repo      *repository.CommentsRepository
	tasksRepo *repository.TasksRepository
}

func NewCommentsHandler(repo *repository.CommentsRepository, tasksRepo *repository.TasksRepository) *CommentsHandler {
	return &CommentsHandler{repo: repo, tasksRepo: tasksRepo}
}

func (h *CommentsHandler) List(c *gin.Context) {
	comments, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentsHandler) ListByTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid task id"))
		return
	}
	comments, err := h.repo.ListByTask(taskID, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentsHandler) Create(c *gin.Context) {
	var req struct {
		TaskID  int    `json:"task_id"`
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Content is required"))
		return
	}
	userID := c.GetInt("userId")
	task, err := h.tasksRepo.GetByID(req.TaskID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Task not found"))
		return
	}
	comment, err := h.repo.Create(userID, req.TaskID, req.Author, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentsHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid comment id"))
		return
	}
	deleted, err := h.repo.Delete(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Comment not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
