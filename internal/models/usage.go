package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UsageLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.NullUUID
	EventType string
	Metadata  json.RawMessage
	CreatedAt time.Time
}

type ProjectView struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	ViewerIP  string
	Country   sql.NullString
	ViewedAt  time.Time
}
