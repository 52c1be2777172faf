package models

import (
	"time"

	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ProjectResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"original_filename"`
	OriginalFormat   string    `json:"original_format"`
	FileSize         int64     `json:"file_size"`
	Status           string    `json:"status"`
	GLBURL           string    `json:"glb_url,omitempty"`
	PosterURL        string    `json:"poster_url,omitempty"`
	TriangleCount    int       `json:"triangle_count"`
	VertexCount      int       `json:"vertex_count"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type StatusResponse struct {
	ProjectID    string    `json:"project_id"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ConvertResponse struct {
	Success   bool       `json:"success"`
	GLBURL    string     `json:"glbUrl"`
	PosterURL string     `json:"posterUrl"`
	Stats     gltf.Stats `json:"stats"`
}

type UploadResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
}

type ConfigResponse struct {
	ID        string                 `json:"id"`
	ProjectID string                 `json:"project_id"`
	Config    map[string]interface{} `json:"config"`
	Version   int                    `json:"version"`
	IsActive  bool                   `json:"is_active"`
	CreatedAt time.Time              `json:"created_at"`
}

type HotspotResponse struct {
	ID          string                 `json:"id"`
	ProjectID   string                 `json:"project_id"`
	Position    map[string]float64     `json:"position"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	IconURL     string                 `json:"icon_url,omitempty"`
	LinkURL     string                 `json:"link_url,omitempty"`
	Style       map[string]interface{} `json:"style,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type EmbedResponse struct {
	ProjectID string `json:"project_id"`
	Type      string `json:"type"`
	Code      string `json:"code"`
}

type AnalyticsResponse struct {
	ProjectID      string         `json:"project_id"`
	TotalViews     int            `json:"total_views"`
	UniqueVisitors int            `json:"unique_visitors"`
	ViewsByCountry map[string]int `json:"views_by_country"`
	RecentViews    []ViewEntry    `json:"recent_views"`
}

type ViewEntry struct {
	ViewerIP string    `json:"viewer_ip"`
	Country  string    `json:"country,omitempty"`
	ViewedAt time.Time `json:"viewed_at"`
}

type PublicConvertResponse struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
