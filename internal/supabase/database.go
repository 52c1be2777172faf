package supabase

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const projectColumns = `id, user_id, name, original_filename, original_format, file_size, status,
		glb_url, poster_url, triangle_count, vertex_count, error_message, created_at, updated_at, deleted_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.OriginalFilename, &p.OriginalFormat, &p.FileSize, &p.Status,
		&p.GLBURL, &p.PosterURL, &p.TriangleCount, &p.VertexCount, &p.ErrorMessage,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) CreateProject(p *models.Project) (*models.Project, error) {
	row := d.db.QueryRow(`
		INSERT INTO projects (id, user_id, name, original_filename, original_format, file_size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+projectColumns+`
	`, p.ID, p.UserID, p.Name, p.OriginalFilename, p.OriginalFormat, p.FileSize, p.Status)

	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	row := d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, projectID, userID)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// GetProjectByID looks a project up without user scoping. Used by the
// pipeline, which runs under the caller's already-verified identity.
func (d *DatabaseClient) GetProjectByID(projectID uuid.UUID) (*models.Project, error) {
	row := d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND deleted_at IS NULL
	`, projectID)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}

	return projects, rows.Err()
}

func (d *DatabaseClient) RenameProject(projectID, userID uuid.UUID, name string) error {
	res, err := d.db.Exec(`
		UPDATE projects
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`, name, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDeleteProject sets deleted_at; rows are never hard-deleted here.
func (d *DatabaseClient) SoftDeleteProject(projectID, userID uuid.UUID) error {
	res, err := d.db.Exec(`
		UPDATE projects
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) MarkProcessing(projectID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET status = $1, error_message = NULL, updated_at = NOW()
		WHERE id = $2
	`, models.StatusProcessing, projectID)
	return err
}

// CompleteProject finalizes one pipeline run as a single conditional update
// guarded on the processing state, so a stale or duplicate finalizer cannot
// double-apply. Returns false when the guard did not match.
func (d *DatabaseClient) CompleteProject(projectID uuid.UUID, glbURL, posterURL string, triangleCount, vertexCount int) (bool, error) {
	res, err := d.db.Exec(`
		UPDATE projects
		SET status = $1, glb_url = $2, poster_url = $3, triangle_count = $4, vertex_count = $5,
		    error_message = NULL, updated_at = NOW()
		WHERE id = $6 AND status = $7
	`, models.StatusCompleted, glbURL, posterURL, triangleCount, vertexCount, projectID, models.StatusProcessing)
	if err != nil {
		return false, fmt.Errorf("failed to complete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *DatabaseClient) FailProject(projectID uuid.UUID, errorMsg string) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE id = $3
	`, models.StatusFailed, errorMsg, projectID)
	return err
}

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := d.db.QueryRow(`
		SELECT id, email, full_name, plan, api_key, uploaded_this_month, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, userID).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Plan, &p.APIKey, &p.UploadedThisMonth, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (d *DatabaseClient) GetProfileByAPIKey(apiKey string) (*models.Profile, error) {
	var p models.Profile
	err := d.db.QueryRow(`
		SELECT id, email, full_name, plan, api_key, uploaded_this_month, created_at, updated_at
		FROM profiles
		WHERE api_key = $1
	`, apiKey).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Plan, &p.APIKey, &p.UploadedThisMonth, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by api key: %w", err)
	}
	return &p, nil
}

func (d *DatabaseClient) IncrementUploadsThisMonth(userID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET uploaded_this_month = uploaded_this_month + 1, updated_at = NOW()
		WHERE id = $1
	`, userID)
	return err
}

func (d *DatabaseClient) GetActiveConfig(projectID, userID uuid.UUID) (*models.ViewerConfig, error) {
	var c models.ViewerConfig
	err := d.db.QueryRow(`
		SELECT id, project_id, user_id, config, version, is_active, created_at
		FROM viewer_configs
		WHERE project_id = $1 AND user_id = $2 AND is_active = TRUE
	`, projectID, userID).Scan(
		&c.ID, &c.ProjectID, &c.UserID, &c.Config, &c.Version, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get active config: %w", err)
	}
	return &c, nil
}

// SaveConfig inserts the next config version and deactivates the prior one
// in a single transaction.
func (d *DatabaseClient) SaveConfig(projectID, userID uuid.UUID, config json.RawMessage) (*models.ViewerConfig, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE viewer_configs SET is_active = FALSE
		WHERE project_id = $1 AND is_active = TRUE
	`, projectID); err != nil {
		return nil, fmt.Errorf("failed to deactivate config: %w", err)
	}

	var version int
	if err := tx.QueryRow(`
		SELECT COALESCE(MAX(version), 0) + 1 FROM viewer_configs WHERE project_id = $1
	`, projectID).Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to allocate config version: %w", err)
	}

	var c models.ViewerConfig
	if err := tx.QueryRow(`
		INSERT INTO viewer_configs (id, project_id, user_id, config, version, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, project_id, user_id, config, version, is_active, created_at
	`, uuid.New(), projectID, userID, config, version).Scan(
		&c.ID, &c.ProjectID, &c.UserID, &c.Config, &c.Version, &c.IsActive, &c.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit config: %w", err)
	}
	return &c, nil
}

func (d *DatabaseClient) ListHotspots(projectID uuid.UUID) ([]models.Hotspot, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, position, title, description, icon_url, link_url, style, created_at
		FROM hotspots
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotspots: %w", err)
	}
	defer rows.Close()

	var hotspots []models.Hotspot
	for rows.Next() {
		var h models.Hotspot
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.Position, &h.Title, &h.Description,
			&h.IconURL, &h.LinkURL, &h.Style, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hotspot: %w", err)
		}
		hotspots = append(hotspots, h)
	}

	return hotspots, rows.Err()
}

func (d *DatabaseClient) CreateHotspot(h *models.Hotspot) (*models.Hotspot, error) {
	var created models.Hotspot
	err := d.db.QueryRow(`
		INSERT INTO hotspots (id, project_id, position, title, description, icon_url, link_url, style)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, project_id, position, title, description, icon_url, link_url, style, created_at
	`, h.ID, h.ProjectID, h.Position, h.Title, h.Description, h.IconURL, h.LinkURL, h.Style).Scan(
		&created.ID, &created.ProjectID, &created.Position, &created.Title, &created.Description,
		&created.IconURL, &created.LinkURL, &created.Style, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hotspot: %w", err)
	}
	return &created, nil
}

func (d *DatabaseClient) UpdateHotspot(h *models.Hotspot) error {
	res, err := d.db.Exec(`
		UPDATE hotspots
		SET position = $1, title = $2, description = $3, icon_url = $4, link_url = $5, style = $6
		WHERE id = $7 AND project_id = $8
	`, h.Position, h.Title, h.Description, h.IconURL, h.LinkURL, h.Style, h.ID, h.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to update hotspot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) DeleteHotspot(hotspotID, projectID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM hotspots
		WHERE id = $1 AND project_id = $2
	`, hotspotID, projectID)
	return err
}

func (d *DatabaseClient) InsertUsageLog(userID uuid.UUID, projectID uuid.NullUUID, eventType string, metadata map[string]interface{}) error {
	metadataJSON, _ := json.Marshal(metadata)
	_, err := d.db.Exec(`
		INSERT INTO usage_logs (id, user_id, project_id, event_type, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), userID, projectID, eventType, metadataJSON)
	return err
}

func (d *DatabaseClient) InsertProjectView(projectID uuid.UUID, viewerIP, country string) error {
	_, err := d.db.Exec(`
		INSERT INTO project_views (id, project_id, viewer_ip, country)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`, uuid.New(), projectID, viewerIP, country)
	return err
}

func (d *DatabaseClient) GetProjectViews(projectID uuid.UUID) ([]models.ProjectView, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, viewer_ip, country, viewed_at
		FROM project_views
		WHERE project_id = $1
		ORDER BY viewed_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project views: %w", err)
	}
	defer rows.Close()

	var views []models.ProjectView
	for rows.Next() {
		var v models.ProjectView
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.ViewerIP, &v.Country, &v.ViewedAt); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
