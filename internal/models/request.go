package models

type CreateProjectRequest struct {
	Name             string `json:"name" binding:"required"`
	OriginalFilename string `json:"original_filename" binding:"required"`
	OriginalFormat   string `json:"original_format" binding:"required"`
	FileSize         int64  `json:"file_size"`
}

type RenameProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ConvertRequest is the function-style pipeline entry payload.
type ConvertRequest struct {
	ProjectID      string `json:"projectId" binding:"required"`
	OriginalFormat string `json:"originalFormat" binding:"required"`
	UploadPath     string `json:"uploadPath" binding:"required"`
}

type SaveConfigRequest struct {
	Config map[string]interface{} `json:"config" binding:"required"`
}

type HotspotRequest struct {
	Position    map[string]float64     `json:"position" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description,omitempty"`
	IconURL     string                 `json:"icon_url,omitempty"`
	LinkURL     string                 `json:"link_url,omitempty"`
	Style       map[string]interface{} `json:"style,omitempty"`
}

// PublicConvertRequest submits a URL-referenced file through the public API.
type PublicConvertRequest struct {
	FileURL string `json:"file_url" binding:"required"`
	Name    string `json:"name" binding:"required"`
}
