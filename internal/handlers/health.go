package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health godoc
// @Summary Liveness probe
// @Tags    health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
