package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

// DocumentsHandler is plain CRUD. Documents are not wired into the realtime
// relay; only projects and tasks are.
type DocumentsHandler struct {
	repo *repository.DocumentsRepository
}

func NewDocumentsHandler(repo *repository.DocumentsRepository) *DocumentsHandler {
	return &DocumentsHandler{repo: repo}
}

func (h *DocumentsHandler) List(c *gin.Context) {
	docs, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentsHandler) Create(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Folder  string `json:"folder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Title is required"))
		return
	}
	if req.Folder == "" {
		req.Folder = "General"
	}
	doc, err := h.repo.Create(c.GetInt("userId"), req.Title, req.Content, req.Folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentsHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid document id"))
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Folder  string `json:"folder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	doc, err := h.repo.Update(id, c.GetInt("userId"), req.Title, req.Content, req.Folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Document not found"))
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid document id"))
		return
	}
	deleted, err := h.repo.Delete(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Document not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
