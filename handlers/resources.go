package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

const defaultCapacity = 40 // hours per week

type ResourcesHandler struct {
	repo *repository.ResourcesRepository
}

func NewResourcesHandler(repo *repository.ResourcesRepository) *ResourcesHandler {
	return &ResourcesHandler{repo: repo}
}

func (h *ResourcesHandler) List(c *gin.Context) {
	resources, err := h.repo.List(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourcesHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Capacity int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Name is required"))
		return
	}
	if req.Capacity <= 0 {
		req.Capacity = defaultCapacity
	}
	resource, err := h.repo.Create(c.GetInt("userId"), req.Name, req.Role, req.Capacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *ResourcesHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid resource id"))
		return
	}
	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Capacity int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	resource, err := h.repo.Update(id, c.GetInt("userId"), req.Name, req.Role, req.Capacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if resource == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Resource not found"))
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourcesHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid resource id"))
		return
	}
	deleted, err := h.repo.Delete(id, c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Resource not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}
