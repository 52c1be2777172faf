package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

const (
	APIUserIDKey = "api_user_id"

	// PlanStudio is the only subscription tier with public API access.
	PlanStudio = "Studio"
)

// APIKeyMiddleware authenticates public API calls by the X-API-Key header.
// The key maps to a profile; only Studio-plan profiles may call the API.
func APIKeyMiddleware(dbClient *supabase.DatabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			c.Abort()
			return
		}

		profile, err := dbClient.GetProfileByAPIKey(apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		if profile.Plan != PlanStudio {
			c.JSON(http.StatusForbidden, gin.H{"error": "API access requires Studio plan"})
			c.Abort()
			return
		}

		c.Set(APIUserIDKey, profile.ID.String())
		c.Next()
	}
}
