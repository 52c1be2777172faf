package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
	"github.com/ertugcetrefli-afk/3dcloud/internal/middleware"
	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

// APIHandler serves the public, API-key gated surface: project listing,
// URL-referenced conversion submission and embed analytics. Every call is
// usage-logged.
type APIHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	orchestrator  *pipeline.Orchestrator
	httpClient    *http.Client
}

func NewAPIHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, orchestrator *pipeline.Orchestrator) *APIHandler {
	return &APIHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		orchestrator:  orchestrator,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (h *APIHandler) apiUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.APIUserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "API key required"})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid API key"})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *APIHandler) logAPICall(userID uuid.UUID, projectID uuid.NullUUID, endpoint, method string) {
	_ = h.dbClient.InsertUsageLog(userID, projectID, "api_call", map[string]interface{}{
		"endpoint": endpoint,
		"method":   method,
	})
}

func (h *APIHandler) ListProjects(c *gin.Context) {
	userID, ok := h.apiUserID(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = projectResponse(&projects[i])
	}

	h.logAPICall(userID, uuid.NullUUID{}, "projects", "GET")
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

// Convert godoc
// @Summary     Submit a URL-referenced file for conversion
// @Description Downloads the file, stores it, creates a project and starts the pipeline asynchronously. Poll the projects endpoint for the outcome.
// @Tags        public-api
func (h *APIHandler) Convert(c *gin.Context) {
	userID, ok := h.apiUserID(c)
	if !ok {
		return
	}

	var req models.PublicConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "file_url and name are required",
		})
		return
	}

	filename := path.Base(req.FileURL)
	if filename == "" || filename == "." || filename == "/" {
		filename = "model"
	}
	extension := strings.TrimPrefix(path.Ext(filename), ".")

	format, err := converter.ParseFormat(extension)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	// The referenced file lives on a third-party host; transient fetch
	// failures get the same backoff treatment as other external calls.
	var data []byte
	err = converter.RetryWithBackoff(func() error {
		var downloadErr error
		data, downloadErr = h.downloadFile(c.Request.Context(), req.FileURL)
		return downloadErr
	}, 3)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to download file from URL",
			Message: err.Error(),
		})
		return
	}

	projectID := uuid.New()
	uploadPath, err := h.storageClient.UploadSource(userID, projectID, filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store upload",
			Message: err.Error(),
		})
		return
	}

	project, err := h.dbClient.CreateProject(&models.Project{
		ID:               projectID,
		UserID:           userID,
		Name:             req.Name,
		OriginalFilename: filename,
		OriginalFormat:   format.String(),
		FileSize:         int64(len(data)),
		Status:           models.StatusProcessing,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	job := pipeline.ConversionJob{
		ProjectID:      project.ID,
		OriginalFormat: format.String(),
		UploadPath:     uploadPath,
		RunID:          uuid.New(),
	}

	go h.orchestrator.Run(context.Background(), job)

	h.logAPICall(userID, uuid.NullUUID{UUID: project.ID, Valid: true}, "convert", "POST")
	c.JSON(http.StatusOK, models.PublicConvertResponse{
		Success:   true,
		ProjectID: project.ID.String(),
		Status:    models.StatusProcessing,
		Message:   "Conversion started. Check project status using the projects endpoint.",
	})
}

func (h *APIHandler) GetAnalytics(c *gin.Context) {
	userID, ok := h.apiUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project_id parameter required"})
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Project not found"})
		return
	}

	views, err := h.dbClient.GetProjectViews(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load views",
			Message: err.Error(),
		})
		return
	}

	h.logAPICall(userID, uuid.NullUUID{UUID: projectID, Valid: true}, "analytics", "GET")
	c.JSON(http.StatusOK, aggregateViews(projectID, views))
}

func (h *APIHandler) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
