package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

// ConfigsHandler serves the viewer designer: versioned display-settings
// snapshots with a single active version per project.
type ConfigsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewConfigsHandler(dbClient *supabase.DatabaseClient) *ConfigsHandler {
	return &ConfigsHandler{
		dbClient: dbClient,
	}
}

func configResponse(cfg *models.ViewerConfig) models.ConfigResponse {
	// Config comes from a JSONB column populated only by SaveConfig, so it
	// always decodes; a failure here would mean column corruption and
	// surfaces as a null config rather than a 500.
	var config map[string]interface{}
	if len(cfg.Config) > 0 {
		json.Unmarshal(cfg.Config, &config)
	}

	return models.ConfigResponse{
		ID:        cfg.ID.String(),
		ProjectID: cfg.ProjectID.String(),
		Config:    config,
		Version:   cfg.Version,
		IsActive:  cfg.IsActive,
		CreatedAt: cfg.CreatedAt,
	}
}

func (h *ConfigsHandler) GetActiveConfig(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	cfg, err := h.dbClient.GetActiveConfig(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no active config",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, configResponse(cfg))
}

// SaveConfig godoc
// @Summary     Save a viewer configuration
// @Description Inserts the next config version for the project and deactivates the previous active one.
// @Tags        configs
// @Security    Bearer
func (h *ConfigsHandler) SaveConfig(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	var req models.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	raw, err := json.Marshal(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid config",
			Message: err.Error(),
		})
		return
	}

	cfg, err := h.dbClient.SaveConfig(projectID, userID, raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save config",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, configResponse(cfg))
}
