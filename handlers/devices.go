package handlers

import (
	"net/http"

	"github.com/Hrafn1377/prosjektravn/repository"
	"github.com/Hrafn1377/prosjektravn/types"

	"github.com/gin-gonic/gin"
)

// DevicesHandler collects push-notification device tokens. This service only
// stores them; delivery through the push provider happens elsewhere.
type DevicesHandler struct {
	repo *repository.DevicesRepository
}

func NewDevicesHandler(repo *repository.DevicesRepository) *DevicesHandler {
	return &DevicesHandler{repo: repo}
}

func (h *DevicesHandler) RegisterToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "token is required"))
		return
	}
	if err := h.repo.RegisterToken(c.GetInt("userId"), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token registered"})
}
