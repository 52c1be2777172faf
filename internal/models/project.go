package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Project lifecycle states. Completed and failed are terminal; a reconversion
// starts a new pipeline run that may overwrite them.
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Project struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	OriginalFilename string
	OriginalFormat   string
	FileSize         int64
	Status           string
	GLBURL           sql.NullString
	PosterURL        sql.NullString
	TriangleCount    int
	VertexCount      int
	ErrorMessage     sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        sql.NullTime
}

type Profile struct {
	ID                uuid.UUID
	Email             string
	FullName          sql.NullString
	Plan              string
	APIKey            sql.NullString
	UploadedThisMonth int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ViewerConfig is a versioned snapshot of display settings for a project.
// Exactly one version per project is active at a time.
type ViewerConfig struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Config    json.RawMessage
	Version   int
	IsActive  bool
	CreatedAt time.Time
}

type Hotspot struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Position    json.RawMessage
	Title       string
	Description sql.NullString
	IconURL     sql.NullString
	LinkURL     sql.NullString
	Style       json.RawMessage
	CreatedAt   time.Time
}
