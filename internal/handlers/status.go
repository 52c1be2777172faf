package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

type StatusHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewStatusHandler(dbClient *supabase.DatabaseClient) *StatusHandler {
	return &StatusHandler{
		dbClient: dbClient,
	}
}

// GetStatus godoc
// @Summary     Poll conversion status
// @Description Returns the project's current lifecycle state. error_message is set when the status is failed.
// @Tags        status
// @Security    Bearer
func (h *StatusHandler) GetStatus(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	resp := models.StatusResponse{
		ProjectID: projectID.String(),
		Status:    project.Status,
		UpdatedAt: project.UpdatedAt,
	}
	if project.ErrorMessage.Valid {
		resp.ErrorMessage = project.ErrorMessage.String
	}

	c.JSON(http.StatusOK, resp)
}
