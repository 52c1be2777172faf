package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

type UploadHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	orchestrator  *pipeline.Orchestrator
}

func NewUploadHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, orchestrator *pipeline.Orchestrator) *UploadHandler {
	return &UploadHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		orchestrator:  orchestrator,
	}
}

// Upload godoc
// @Summary     Upload the source model file
// @Description Stores the raw file in the uploads bucket, moves the project to processing and starts the conversion pipeline in the background. The dashboard polls the status endpoint for the outcome.
// @Tags        upload
// @Accept      multipart/form-data
// @Security    Bearer
func (h *UploadHandler) Upload(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file is required",
			Message: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open uploaded file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read uploaded file",
			Message: err.Error(),
		})
		return
	}

	uploadPath, err := h.storageClient.UploadSource(userID, projectID, project.OriginalFilename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store upload",
			Message: err.Error(),
		})
		return
	}

	// Quota accounting failure must not block the conversion.
	_ = h.dbClient.IncrementUploadsThisMonth(userID)

	job := pipeline.ConversionJob{
		ProjectID:      projectID,
		OriginalFormat: project.OriginalFormat,
		UploadPath:     uploadPath,
		RunID:          uuid.New(),
	}

	go h.orchestrator.Run(context.Background(), job)

	c.JSON(http.StatusOK, models.UploadResponse{
		ProjectID: projectID.String(),
		Status:    models.StatusProcessing,
		Filename:  fileHeader.Filename,
		Size:      int64(len(data)),
	})
}
