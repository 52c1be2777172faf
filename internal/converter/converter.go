// Package converter normalizes uploaded model files into the packaged
// binary-scene (GLB) format. GLB input passes through untouched, glTF JSON is
// structurally repackaged, and every other supported format is delegated to
// an external conversion service.
package converter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
)

// Converter produces packaged binary-scene bytes from raw source bytes.
type Converter interface {
	Convert(ctx context.Context, data []byte, format Format) ([]byte, error)
}

// ConversionFailedError wraps a delegated conversion failure, preserving the
// upstream error text for user visibility.
type ConversionFailedError struct {
	Format Format
	Reason string
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("conversion of %s failed: %s", e.Format, e.Reason)
}

// HTTPConverter dispatches on source format, delegating non-GLB/glTF formats
// to a remote conversion endpoint.
type HTTPConverter struct {
	client *Client
}

func New(client *Client) *HTTPConverter {
	return &HTTPConverter{client: client}
}

func (c *HTTPConverter) Convert(ctx context.Context, data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatGLB:
		// Identity path. Well-formedness is not checked here; the stats
		// pass downstream tolerates malformed containers.
		return data, nil

	case FormatGLTF:
		return repackageGLTF(data)

	default:
		out, err := c.client.ConvertToGLB(ctx, data, format)
		if err != nil {
			return nil, &ConversionFailedError{Format: format, Reason: err.Error()}
		}
		return out, nil
	}
}

// repackageGLTF wraps a glTF JSON scene in a minimal binary container with a
// single structured-data chunk. This is a structural repackaging only: no
// binary buffer chunk is embedded.
func repackageGLTF(data []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ConversionFailedError{Format: FormatGLTF, Reason: fmt.Sprintf("invalid glTF JSON: %v", err)}
	}
	return gltf.Encode(data), nil
}
