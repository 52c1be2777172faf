package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

const recentViewsLimit = 10

type AnalyticsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewAnalyticsHandler(dbClient *supabase.DatabaseClient) *AnalyticsHandler {
	return &AnalyticsHandler{
		dbClient: dbClient,
	}
}

// GetAnalytics godoc
// @Summary     Embed view analytics
// @Description Aggregates recorded embed views for a project: totals, unique visitor IPs and a by-country breakdown.
// @Tags        analytics
// @Security    Bearer
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
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

	views, err := h.dbClient.GetProjectViews(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load views",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, aggregateViews(projectID, views))
}

func aggregateViews(projectID uuid.UUID, views []models.ProjectView) models.AnalyticsResponse {
	uniqueIPs := make(map[string]bool)
	byCountry := make(map[string]int)
	recent := make([]models.ViewEntry, 0, recentViewsLimit)

	for _, v := range views {
		uniqueIPs[v.ViewerIP] = true
		if v.Country.Valid {
			byCountry[v.Country.String]++
		}
		if len(recent) < recentViewsLimit {
			entry := models.ViewEntry{ViewerIP: v.ViewerIP, ViewedAt: v.ViewedAt}
			if v.Country.Valid {
				entry.Country = v.Country.String
			}
			recent = append(recent, entry)
		}
	}

	return models.AnalyticsResponse{
		ProjectID:      projectID.String(),
		TotalViews:     len(views),
		UniqueVisitors: len(uniqueIPs),
		ViewsByCountry: byCountry,
		RecentViews:    recent,
	}
}
