package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
	"github.com/ertugcetrefli-afk/3dcloud/internal/models"
	"github.com/ertugcetrefli-afk/3dcloud/internal/pipeline"
)

type fakeStore struct {
	project *models.Project

	markedProcessing bool
	completed        bool
	completeResult   bool
	completeGLBURL   string
	completePoster   string
	triangleCount    int
	vertexCount      int

	failedMessage string
	usageEvents   []string
	usageMetadata map[string]interface{}
}

func (f *fakeStore) GetProjectByID(projectID uuid.UUID) (*models.Project, error) {
	if f.project == nil {
		return nil, errors.New("no rows")
	}
	return f.project, nil
}

func (f *fakeStore) MarkProcessing(projectID uuid.UUID) error {
	f.markedProcessing = true
	return nil
}

func (f *fakeStore) CompleteProject(projectID uuid.UUID, glbURL, posterURL string, triangleCount, vertexCount int) (bool, error) {
	f.completed = true
	f.completeGLBURL = glbURL
	f.completePoster = posterURL
	f.triangleCount = triangleCount
	f.vertexCount = vertexCount
	return f.completeResult, nil
}

func (f *fakeStore) FailProject(projectID uuid.UUID, errorMsg string) error {
	f.failedMessage = errorMsg
	return nil
}

func (f *fakeStore) InsertUsageLog(userID uuid.UUID, projectID uuid.NullUUID, eventType string, metadata map[string]interface{}) error {
	f.usageEvents = append(f.usageEvents, eventType)
	f.usageMetadata = metadata
	return nil
}

type fakeObjects struct {
	source      []byte
	sourceErr   error
	uploadedGLB []byte
	uploadErr   error
}

func (f *fakeObjects) DownloadSource(path string) ([]byte, error) {
	return f.source, f.sourceErr
}

func (f *fakeObjects) UploadModel(userID, projectID uuid.UUID, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedGLB = data
	return "https://cdn.test/models/converted.glb", nil
}

func (f *fakeObjects) UploadPoster(userID, projectID uuid.UUID, data []byte) (string, error) {
	return "https://cdn.test/posters/poster.png", nil
}

type fakeConverter struct {
	out   []byte
	err   error
	panic bool
}

func (f *fakeConverter) Convert(ctx context.Context, data []byte, format converter.Format) ([]byte, error) {
	if f.panic {
		panic("converter blew up")
	}
	return f.out, f.err
}

type fakePosters struct{}

func (fakePosters) Generate(projectName string) ([]byte, error) {
	return []byte("png-bytes"), nil
}

type fakeEvents struct {
	events []string
}

func (f *fakeEvents) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	f.events = append(f.events, event)
	return nil
}

func sceneWithCounts(t *testing.T, vertices, indices int) []byte {
	t.Helper()
	one := 1
	body, err := json.Marshal(gltf.Document{
		Meshes: []gltf.Mesh{
			{Primitives: []gltf.Primitive{{Attributes: map[string]int{"POSITION": 0}, Indices: &one}}},
		},
		Accessors: []gltf.Accessor{{Count: vertices}, {Count: indices}},
	})
	require.NoError(t, err)
	return gltf.Encode(body)
}

func testProject() *models.Project {
	return &models.Project{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Turbine Blade",
		Status: models.StatusUploading,
	}
}

func newJob(project *models.Project) pipeline.ConversionJob {
	return pipeline.ConversionJob{
		ProjectID:      project.ID,
		OriginalFormat: "fbx",
		UploadPath:     project.UserID.String() + "/" + project.ID.String() + "/model.fbx",
		RunID:          uuid.New(),
	}
}

func TestRun_Success(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project, completeResult: true}
	objects := &fakeObjects{source: []byte("fbx-bytes")}
	conv := &fakeConverter{out: sceneWithCounts(t, 2000, 5400)}
	events := &fakeEvents{}

	orch := pipeline.NewOrchestrator(store, objects, conv, fakePosters{}, events)

	result, err := orch.Run(context.Background(), newJob(project))
	require.NoError(t, err)

	assert.True(t, store.markedProcessing)
	assert.Equal(t, "https://cdn.test/models/converted.glb", result.GLBURL)
	assert.Equal(t, "https://cdn.test/posters/poster.png", result.PosterURL)
	assert.Equal(t, 2000, result.Stats.VertexCount)
	assert.Equal(t, 1800, result.Stats.TriangleCount)
	assert.True(t, result.Stats.Reliable)

	assert.Equal(t, 2000, store.vertexCount)
	assert.Equal(t, 1800, store.triangleCount)
	assert.Empty(t, store.failedMessage)
	assert.Equal(t, []string{"conversion"}, store.usageEvents)
	assert.Equal(t, []string{"conversion_started", "conversion_completed"}, events.events)
}

func TestRun_UnparseableOutputStillCompletes(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project, completeResult: true}
	objects := &fakeObjects{source: []byte("fbx-bytes")}
	conv := &fakeConverter{out: []byte("not a container at all")}

	orch := pipeline.NewOrchestrator(store, objects, conv, fakePosters{}, &fakeEvents{})

	result, err := orch.Run(context.Background(), newJob(project))
	require.NoError(t, err)

	assert.False(t, result.Stats.Reliable)
	assert.Zero(t, store.vertexCount)
	assert.Zero(t, store.triangleCount)
	assert.True(t, store.completed)
	assert.Equal(t, false, store.usageMetadata["stats_reliable"])
}

func TestRun_ConverterFailure(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project}
	objects := &fakeObjects{source: []byte("stl-bytes")}
	conv := &fakeConverter{err: &converter.ConversionFailedError{Format: converter.FormatSTL, Reason: "upstream 503"}}
	events := &fakeEvents{}

	orch := pipeline.NewOrchestrator(store, objects, conv, fakePosters{}, events)

	_, err := orch.Run(context.Background(), newJob(project))
	require.Error(t, err)

	assert.False(t, store.completed)
	assert.NotEmpty(t, store.failedMessage)
	assert.Contains(t, store.failedMessage, "upstream 503")
	assert.Equal(t, []string{"conversion_started", "conversion_failed"}, events.events)
}

func TestRun_SourceUnavailable(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project}
	objects := &fakeObjects{sourceErr: errors.New("object not found")}

	orch := pipeline.NewOrchestrator(store, objects, &fakeConverter{}, fakePosters{}, &fakeEvents{})

	_, err := orch.Run(context.Background(), newJob(project))
	require.ErrorIs(t, err, pipeline.ErrSourceUnavailable)
	assert.Contains(t, store.failedMessage, "source unavailable")
}

func TestRun_StorageWriteFailure(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project}
	objects := &fakeObjects{source: []byte("fbx-bytes"), uploadErr: errors.New("bucket quota exceeded")}
	conv := &fakeConverter{out: sceneWithCounts(t, 30, 30)}

	orch := pipeline.NewOrchestrator(store, objects, conv, fakePosters{}, &fakeEvents{})

	_, err := orch.Run(context.Background(), newJob(project))
	require.ErrorIs(t, err, pipeline.ErrStorageWriteFailed)
	assert.Contains(t, store.failedMessage, "bucket quota exceeded")
	assert.False(t, store.completed)
}

func TestRun_UnsupportedFormat(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project}

	orch := pipeline.NewOrchestrator(store, &fakeObjects{}, &fakeConverter{}, fakePosters{}, &fakeEvents{})

	job := newJob(project)
	job.OriginalFormat = "exe"

	_, err := orch.Run(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, store.failedMessage, "unsupported format")
}

func TestRun_PanicLandsInFailed(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project}
	objects := &fakeObjects{source: []byte("fbx-bytes")}

	orch := pipeline.NewOrchestrator(store, objects, &fakeConverter{panic: true}, fakePosters{}, &fakeEvents{})

	_, err := orch.Run(context.Background(), newJob(project))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversion panicked")
	assert.Contains(t, store.failedMessage, "converter blew up")
}

func TestRun_StaleFinalize(t *testing.T) {
	project := testProject()
	store := &fakeStore{project: project, completeResult: false}
	objects := &fakeObjects{source: []byte("fbx-bytes")}
	conv := &fakeConverter{out: sceneWithCounts(t, 30, 30)}

	orch := pipeline.NewOrchestrator(store, objects, conv, fakePosters{}, &fakeEvents{})

	_, err := orch.Run(context.Background(), newJob(project))
	assert.ErrorIs(t, err, pipeline.ErrStaleRun)
	// A stale run lost the race; it must not overwrite the winner's outcome.
	assert.Empty(t, store.failedMessage)
	assert.Empty(t, store.usageEvents)
}
