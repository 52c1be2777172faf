package supabase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps the three object stores the pipeline touches: raw
// uploads, packaged models, and preview posters.
type StorageClient struct {
	client        *storage.Client
	uploadsBucket string
	modelsBucket  string
	postersBucket string
	baseURL       string
}

func NewStorageClient(supabaseURL, serviceKey, uploadsBucket, modelsBucket, postersBucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &StorageClient{
		client:        client,
		uploadsBucket: uploadsBucket,
		modelsBucket:  modelsBucket,
		postersBucket: postersBucket,
		baseURL:       baseURL,
	}, nil
}

// SourcePath builds the storage path for an uploaded source file:
// {user_id}/{project_id}/{filename}.
func SourcePath(userID, projectID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", userID.String(), projectID.String(), filename)
}

func (s *StorageClient) UploadSource(userID, projectID uuid.UUID, filename string, data []byte) (string, error) {
	path := SourcePath(userID, projectID, filename)
	contentType := "application/octet-stream"
	upsert := true
	_, err := s.client.UploadFile(s.uploadsBucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload source: %w", err)
	}
	return path, nil
}

func (s *StorageClient) DownloadSource(path string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.uploadsBucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download source: %w", err)
	}
	return data, nil
}

// UploadModel stores packaged GLB bytes at {user_id}/{project_id}/converted.glb
// and returns the public URL.
func (s *StorageClient) UploadModel(userID, projectID uuid.UUID, data []byte) (string, error) {
	path := fmt.Sprintf("%s/%s/converted.glb", userID.String(), projectID.String())
	contentType := "model/gltf-binary"
	cacheControl := "3600"
	upsert := true
	_, err := s.client.UploadFile(s.modelsBucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload model: %w", err)
	}
	return s.publicURL(s.modelsBucket, path), nil
}

// UploadPoster stores a preview PNG at {user_id}/{project_id}/poster.png and
// returns the public URL.
func (s *StorageClient) UploadPoster(userID, projectID uuid.UUID, data []byte) (string, error) {
	path := fmt.Sprintf("%s/%s/poster.png", userID.String(), projectID.String())
	contentType := "image/png"
	cacheControl := "3600"
	upsert := true
	_, err := s.client.UploadFile(s.postersBucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload poster: %w", err)
	}
	return s.publicURL(s.postersBucket, path), nil
}

func (s *StorageClient) publicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

// DeleteProjectFiles removes everything a project wrote across all three
// buckets. Best-effort per bucket.
func (s *StorageClient) DeleteProjectFiles(userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("%s/%s/", userID.String(), projectID.String())

	var firstErr error
	for _, bucket := range []string{s.uploadsBucket, s.modelsBucket, s.postersBucket} {
		files, err := s.client.ListFiles(bucket, prefix, storage.FileSearchOptions{Limit: 1000})
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to list %s: %w", bucket, err)
			}
			continue
		}
		if len(files) == 0 {
			continue
		}

		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Name
		}
		if _, err := s.client.RemoveFile(bucket, paths); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to delete from %s: %w", bucket, err)
		}
	}

	return firstErr
}
