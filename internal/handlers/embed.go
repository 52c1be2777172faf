package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/embed"
	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

type EmbedHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewEmbedHandler(dbClient *supabase.DatabaseClient) *EmbedHandler {
	return &EmbedHandler{
		dbClient: dbClient,
	}
}

// GetEmbedCode godoc
// @Summary     Generate embed code
// @Description Renders a copy-paste snippet (html, react or javascript) for a completed project, applying its active viewer configuration.
// @Tags        embed
// @Security    Bearer
func (h *EmbedHandler) GetEmbedCode(c *gin.Context) {
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

	if project.Status != models.StatusCompleted || !project.GLBURL.Valid {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "project is not converted yet",
		})
		return
	}

	var settings embed.Settings
	if cfg, err := h.dbClient.GetActiveConfig(projectID, userID); err == nil {
		settings = embed.ParseSettings(cfg.Config)
	} else {
		settings = embed.ParseSettings(json.RawMessage(nil))
	}

	posterURL := ""
	if project.PosterURL.Valid {
		posterURL = project.PosterURL.String
	}

	codeType := c.DefaultQuery("type", "html")
	var code string
	switch codeType {
	case "html":
		code = embed.HTML(project.GLBURL.String, posterURL, settings)
	case "react":
		code = embed.React(project.GLBURL.String, posterURL, settings)
	case "javascript":
		code = embed.JavaScript(project.GLBURL.String, settings)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "type must be html, react or javascript",
		})
		return
	}

	c.JSON(http.StatusOK, models.EmbedResponse{
		ProjectID: projectID.String(),
		Type:      codeType,
		Code:      code,
	})
}

// TrackView records one viewer impression for a public embed. No auth: the
// embed runs on third-party pages.
func (h *EmbedHandler) TrackView(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	if _, err := h.dbClient.GetProjectByID(projectID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	country := c.GetHeader("CF-IPCountry")
	if err := h.dbClient.InsertProjectView(projectID, c.ClientIP(), country); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to record view",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
