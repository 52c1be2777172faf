package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
	"github.com/ertugcetrefli-afk/3dcloud/internal/middleware"
	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

// Per-plan upload limits, matching the product's pricing tiers.
type planLimits struct {
	MonthlyUploads int
	MaxFileSize    int64
}

func limitsForPlan(plan string) planLimits {
	switch plan {
	case "Pro":
		return planLimits{MonthlyUploads: 50, MaxFileSize: 200 << 20}
	case "Studio":
		return planLimits{MonthlyUploads: -1, MaxFileSize: 1000 << 20}
	default: // Free
		return planLimits{MonthlyUploads: 5, MaxFileSize: 50 << 20}
	}
}

type ProjectsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	orchestrator  *pipeline.Orchestrator
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, orchestrator *pipeline.Orchestrator) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		orchestrator:  orchestrator,
	}
}

func projectResponse(p *models.Project) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		OriginalFilename: p.OriginalFilename,
		OriginalFormat:   p.OriginalFormat,
		FileSize:         p.FileSize,
		Status:           p.Status,
		TriangleCount:    p.TriangleCount,
		VertexCount:      p.VertexCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.GLBURL.Valid {
		resp.GLBURL = p.GLBURL.String
	}
	if p.PosterURL.Valid {
		resp.PosterURL = p.PosterURL.String
	}
	if p.ErrorMessage.Valid {
		resp.ErrorMessage = p.ErrorMessage.String
	}
	return resp
}

// CreateProject godoc
// @Summary     Create a conversion project
// @Description Registers an upload: validates the declared format against the supported set and the caller's plan limits, then creates the project in the uploading state.
// @Tags        projects
// @Security    Bearer
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	format, err := converter.ParseFormat(req.OriginalFormat)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load profile",
			Message: err.Error(),
		})
		return
	}

	limits := limitsForPlan(profile.Plan)
	if limits.MonthlyUploads >= 0 && profile.UploadedThisMonth >= limits.MonthlyUploads {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error: "monthly upload limit reached for plan " + profile.Plan,
		})
		return
	}
	if req.FileSize > limits.MaxFileSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "file too large for plan " + profile.Plan,
		})
		return
	}

	project, err := h.dbClient.CreateProject(&models.Project{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             req.Name,
		OriginalFilename: req.OriginalFilename,
		OriginalFormat:   format.String(),
		FileSize:         req.FileSize,
		Status:           models.StatusUploading,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

// ListProjects godoc
// @Summary     List the caller's projects
// @Description Soft-deleted projects are excluded.
// @Tags        projects
// @Security    Bearer
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
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

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
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

	c.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) RenameProject(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req models.RenameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	if err := h.dbClient.RenameProject(projectID, userID, strings.TrimSpace(req.Name)); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project renamed"})
}

// DeleteProject godoc
// @Summary     Soft-delete a project
// @Description Sets deleted_at so the project disappears from listings. Storage objects are removed best-effort; the row is kept.
// @Tags        projects
// @Security    Bearer
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	if err := h.dbClient.SoftDeleteProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	// Storage cleanup is best-effort; the soft delete already hides the project.
	_ = h.storageClient.DeleteProjectFiles(userID, projectID)

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

// Reconvert godoc
// @Summary     Re-run the conversion pipeline
// @Description Starts a fresh pipeline run for the stored source file. May overwrite a terminal completed or failed state.
// @Tags        projects
// @Security    Bearer
func (h *ProjectsHandler) Reconvert(c *gin.Context) {
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

	job := pipeline.ConversionJob{
		ProjectID:      project.ID,
		OriginalFormat: project.OriginalFormat,
		UploadPath:     supabase.SourcePath(userID, project.ID, project.OriginalFilename),
		RunID:          uuid.New(),
	}

	// Detach from the request context: the run outlives this response.
	go h.orchestrator.Run(context.Background(), job)

	c.JSON(http.StatusOK, models.StatusResponse{
		ProjectID: project.ID.String(),
		Status:    models.StatusProcessing,
		UpdatedAt: project.UpdatedAt,
	})
}

// requestIDs pulls the authenticated user id and the project_id path
// parameter, writing the error response itself when either is invalid.
func requestIDs(c *gin.Context) (userID, projectID uuid.UUID, ok bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, uuid.Nil, false
	}

	projectID, err = uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, projectID, true
}
