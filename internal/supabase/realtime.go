package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"github.com/ertugcetrefli-afk/3dcloud/internal/config"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(cfg *config.Config) (*RealtimeClient, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	return &RealtimeClient{
		client: client,
	}, nil
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish. Project row updates
	// trigger Realtime change events automatically, so the dashboard sees
	// status transitions without an explicit publish. This remains the hook
	// for explicit event publishing via the Realtime REST API.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func ConversionStartedPayload(projectID uuid.UUID, originalFormat string) map[string]interface{} {
	return map[string]interface{}{
		"project_id":      projectID.String(),
		"status":          "processing",
		"original_format": originalFormat,
	}
}

func ConversionCompletedPayload(projectID uuid.UUID, glbURL, posterURL string, triangleCount, vertexCount int) map[string]interface{} {
	return map[string]interface{}{
		"project_id":     projectID.String(),
		"status":         "completed",
		"glb_url":        glbURL,
		"poster_url":     posterURL,
		"triangle_count": triangleCount,
		"vertex_count":   vertexCount,
	}
}

func ConversionFailedPayload(projectID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "failed",
		"error":      errorMsg,
	}
}
