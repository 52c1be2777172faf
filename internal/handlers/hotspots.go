package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

type HotspotsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewHotspotsHandler(dbClient *supabase.DatabaseClient) *HotspotsHandler {
	return &HotspotsHandler{
		dbClient: dbClient,
	}
}

func hotspotResponse(h *models.Hotspot) models.HotspotResponse {
	resp := models.HotspotResponse{
		ID:        h.ID.String(),
		ProjectID: h.ProjectID.String(),
		Title:     h.Title,
		CreatedAt: h.CreatedAt,
	}
	// Position and Style are JSONB columns written only from validated
	// requests, so they always decode; corruption degrades to null fields.
	if len(h.Position) > 0 {
		json.Unmarshal(h.Position, &resp.Position)
	}
	if len(h.Style) > 0 {
		json.Unmarshal(h.Style, &resp.Style)
	}
	if h.Description.Valid {
		resp.Description = h.Description.String
	}
	if h.IconURL.Valid {
		resp.IconURL = h.IconURL.String
	}
	if h.LinkURL.Valid {
		resp.LinkURL = h.LinkURL.String
	}
	return resp
}

func hotspotFromRequest(projectID uuid.UUID, req *models.HotspotRequest) *models.Hotspot {
	position, _ := json.Marshal(req.Position)
	style, _ := json.Marshal(req.Style)

	return &models.Hotspot{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Position:    position,
		Title:       req.Title,
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
		IconURL:     sql.NullString{String: req.IconURL, Valid: req.IconURL != ""},
		LinkURL:     sql.NullString{String: req.LinkURL, Valid: req.LinkURL != ""},
		Style:       style,
	}
}

func (h *HotspotsHandler) ListHotspots(c *gin.Context) {
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

	hotspots, err := h.dbClient.ListHotspots(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list hotspots",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.HotspotResponse, len(hotspots))
	for i := range hotspots {
		responses[i] = hotspotResponse(&hotspots[i])
	}

	c.JSON(http.StatusOK, gin.H{"hotspots": responses})
}

func (h *HotspotsHandler) CreateHotspot(c *gin.Context) {
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

	var req models.HotspotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	created, err := h.dbClient.CreateHotspot(hotspotFromRequest(projectID, &req))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create hotspot",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, hotspotResponse(created))
}

func (h *HotspotsHandler) UpdateHotspot(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	hotspotID, err := uuid.Parse(c.Param("hotspot_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid hotspot id"})
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	var req models.HotspotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	hotspot := hotspotFromRequest(projectID, &req)
	hotspot.ID = hotspotID

	if err := h.dbClient.UpdateHotspot(hotspot); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "hotspot not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "hotspot updated"})
}

func (h *HotspotsHandler) DeleteHotspot(c *gin.Context) {
	userID, projectID, ok := requestIDs(c)
	if !ok {
		return
	}

	hotspotID, err := uuid.Parse(c.Param("hotspot_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid hotspot id"})
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return
	}

	if err := h.dbClient.DeleteHotspot(hotspotID, projectID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete hotspot",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "hotspot deleted"})
}
