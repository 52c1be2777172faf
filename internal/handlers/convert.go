package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
)

// ConvertHandler is the function-style pipeline entry point. It runs the
// conversion synchronously and returns the packaged asset URL, poster URL
// and derived stats in one response.
type ConvertHandler struct {
	orchestrator *pipeline.Orchestrator
}

func NewConvertHandler(orchestrator *pipeline.Orchestrator) *ConvertHandler {
	return &ConvertHandler{
		orchestrator: orchestrator,
	}
}

// Convert godoc
// @Summary     Convert an uploaded model
// @Description Runs the full pipeline for a stored upload: download, convert to GLB, derive stats, store model and poster, finalize the project row.
// @Tags        convert
// @Security    Bearer
func (h *ConvertHandler) Convert(c *gin.Context) {
	var req models.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	job := pipeline.ConversionJob{
		ProjectID:      projectID,
		OriginalFormat: req.OriginalFormat,
		UploadPath:     req.UploadPath,
		RunID:          uuid.New(),
	}

	result, err := h.orchestrator.Run(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ConvertResponse{
		Success:   true,
		GLBURL:    result.GLBURL,
		PosterURL: result.PosterURL,
		Stats:     result.Stats,
	})
}
