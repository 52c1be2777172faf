// Package pipeline owns the per-project conversion lifecycle: download the
// source, convert it to the packaged format, derive stats, store the outputs
// and finalize the project row. Any failure after the processing transition
// lands the project in the failed state with a human-readable message; a
// project never stays processing after an error escapes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

var (
	// ErrStaleRun is returned when the finalize guard does not match: another
	// run (or a user action) moved the project out of processing first.
	ErrStaleRun = errors.New("project is no longer processing, finalize skipped")

	// ErrSourceUnavailable marks a failed download of the uploaded source.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrStorageWriteFailed marks a failed write of the packaged model or poster.
	ErrStorageWriteFailed = errors.New("storage write failed")
)

type ProjectStore interface {
	GetProjectByID(projectID uuid.UUID) (*models.Project, error)
	MarkProcessing(projectID uuid.UUID) error
	CompleteProject(projectID uuid.UUID, glbURL, posterURL string, triangleCount, vertexCount int) (bool, error)
	FailProject(projectID uuid.UUID, errorMsg string) error
	InsertUsageLog(userID uuid.UUID, projectID uuid.NullUUID, eventType string, metadata map[string]interface{}) error
}

type ObjectStore interface {
	DownloadSource(path string) ([]byte, error)
	UploadModel(userID, projectID uuid.UUID, data []byte) (string, error)
	UploadPoster(userID, projectID uuid.UUID, data []byte) (string, error)
}

type PosterGenerator interface {
	Generate(projectName string) ([]byte, error)
}

type EventPublisher interface {
	PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error
}

// ConversionJob is the transient input tuple for one pipeline run. RunID
// identifies the run in usage logs and diagnostics.
type ConversionJob struct {
	ProjectID      uuid.UUID
	OriginalFormat string
	UploadPath     string
	RunID          uuid.UUID
}

type Result struct {
	GLBURL    string
	PosterURL string
	Stats     gltf.Stats
}

type Orchestrator struct {
	store     ProjectStore
	objects   ObjectStore
	converter converter.Converter
	posters   PosterGenerator
	events    EventPublisher
}

func NewOrchestrator(store ProjectStore, objects ObjectStore, conv converter.Converter, posters PosterGenerator, events EventPublisher) *Orchestrator {
	return &Orchestrator{
		store:     store,
		objects:   objects,
		converter: conv,
		posters:   posters,
		events:    events,
	}
}

// Run executes the conversion pipeline synchronously. The caller must already
// be authenticated; Run trusts the job it is handed.
func (o *Orchestrator) Run(ctx context.Context, job ConversionJob) (result *Result, err error) {
	if job.RunID == uuid.Nil {
		job.RunID = uuid.New()
	}

	if err := o.store.MarkProcessing(job.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to mark project processing: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion panicked: %v", r)
			o.fail(job.ProjectID, err)
			result = nil
		}
	}()

	project, err := o.store.GetProjectByID(job.ProjectID)
	if err != nil {
		err = fmt.Errorf("project lookup failed: %w", err)
		o.fail(job.ProjectID, err)
		return nil, err
	}

	o.publish(job.ProjectID, "conversion_started",
		supabase.ConversionStartedPayload(job.ProjectID, job.OriginalFormat))

	format, err := converter.ParseFormat(job.OriginalFormat)
	if err != nil {
		o.fail(job.ProjectID, err)
		return nil, err
	}

	source, err := o.objects.DownloadSource(job.UploadPath)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		o.fail(job.ProjectID, err)
		return nil, err
	}

	packaged, err := o.converter.Convert(ctx, source, format)
	if err != nil {
		o.fail(job.ProjectID, err)
		return nil, err
	}

	// Fail-soft: malformed output degrades to zero counts, never aborts.
	stats := gltf.ExtractStats(packaged)
	if !stats.Reliable {
		log.Printf("project %s: stats could not be derived, storing zero counts", job.ProjectID)
	}

	glbURL, err := o.objects.UploadModel(project.UserID, job.ProjectID, packaged)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
		o.fail(job.ProjectID, err)
		return nil, err
	}

	posterPNG, err := o.posters.Generate(project.Name)
	if err != nil {
		err = fmt.Errorf("poster generation failed: %w", err)
		o.fail(job.ProjectID, err)
		return nil, err
	}

	posterURL, err := o.objects.UploadPoster(project.UserID, job.ProjectID, posterPNG)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
		o.fail(job.ProjectID, err)
		return nil, err
	}

	finalized, err := o.store.CompleteProject(job.ProjectID, glbURL, posterURL, stats.TriangleCount, stats.VertexCount)
	if err != nil {
		o.fail(job.ProjectID, err)
		return nil, err
	}
	if !finalized {
		return nil, ErrStaleRun
	}

	if err := o.store.InsertUsageLog(project.UserID,
		uuid.NullUUID{UUID: job.ProjectID, Valid: true},
		"conversion",
		map[string]interface{}{
			"run_id":          job.RunID.String(),
			"original_format": job.OriginalFormat,
			"file_size":       len(source),
			"triangle_count":  stats.TriangleCount,
			"vertex_count":    stats.VertexCount,
			"stats_reliable":  stats.Reliable,
		}); err != nil {
		// Usage accounting must not undo a finished conversion.
		log.Printf("project %s: failed to record usage: %v", job.ProjectID, err)
	}

	o.publish(job.ProjectID, "conversion_completed",
		supabase.ConversionCompletedPayload(job.ProjectID, glbURL, posterURL, stats.TriangleCount, stats.VertexCount))

	return &Result{GLBURL: glbURL, PosterURL: posterURL, Stats: stats}, nil
}

func (o *Orchestrator) fail(projectID uuid.UUID, cause error) {
	if err := o.store.FailProject(projectID, cause.Error()); err != nil {
		log.Printf("project %s: failed to record failure %q: %v", projectID, cause, err)
	}
	o.publish(projectID, "conversion_failed",
		supabase.ConversionFailedPayload(projectID, cause.Error()))
}

func (o *Orchestrator) publish(projectID uuid.UUID, event string, payload map[string]interface{}) {
	if o.events == nil {
		return
	}
	if err := o.events.PublishProjectEvent(projectID, event, payload); err != nil {
		log.Printf("project %s: failed to publish %s: %v", projectID, event, err)
	}
}
