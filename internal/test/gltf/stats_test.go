package gltf_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
)

func encodeScene(t *testing.T, doc gltf.Document) []byte {
	t.Helper()
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	return gltf.Encode(body)
}

func intPtr(v int) *int { return &v }

func TestExtractStats_IndexedMesh(t *testing.T) {
	data := encodeScene(t, gltf.Document{
		Meshes: []gltf.Mesh{
			{
				Name: "hull",
				Primitives: []gltf.Primitive{
					{
						Attributes: map[string]int{"POSITION": 0},
						Indices:    intPtr(1),
					},
				},
			},
		},
		Accessors: []gltf.Accessor{
			{Count: 2000, Type: "VEC3"},
			{Count: 5400, Type: "SCALAR"},
		},
	})

	stats := gltf.ExtractStats(data)
	assert.True(t, stats.Reliable)
	assert.Equal(t, 2000, stats.VertexCount)
	assert.Equal(t, 1800, stats.TriangleCount)
}

func TestExtractStats_SumsAcrossPrimitives(t *testing.T) {
	data := encodeScene(t, gltf.Document{
		Meshes: []gltf.Mesh{
			{
				Primitives: []gltf.Primitive{
					{Attributes: map[string]int{"POSITION": 0}, Indices: intPtr(1)},
				},
			},
			{
				Primitives: []gltf.Primitive{
					{Attributes: map[string]int{"POSITION": 2}, Indices: intPtr(3)},
					{Attributes: map[string]int{"POSITION": 2}},
				},
			},
		},
		Accessors: []gltf.Accessor{
			{Count: 100},
			{Count: 300},
			{Count: 50},
			{Count: 60},
		},
	})

	stats := gltf.ExtractStats(data)
	assert.True(t, stats.Reliable)
	assert.Equal(t, 200, stats.VertexCount)
	// 300/3 + 60/3; the non-indexed primitive contributes no triangles.
	assert.Equal(t, 120, stats.TriangleCount)
}

func TestExtractStats_EmptyScene(t *testing.T) {
	stats := gltf.ExtractStats(encodeScene(t, gltf.Document{}))

	assert.True(t, stats.Reliable)
	assert.Zero(t, stats.VertexCount)
	assert.Zero(t, stats.TriangleCount)
}

func TestExtractStats_AccessorOutOfRange(t *testing.T) {
	data := encodeScene(t, gltf.Document{
		Meshes: []gltf.Mesh{
			{
				Primitives: []gltf.Primitive{
					{Attributes: map[string]int{"POSITION": 7}, Indices: intPtr(-1)},
				},
			},
		},
	})

	stats := gltf.ExtractStats(data)
	assert.True(t, stats.Reliable)
	assert.Zero(t, stats.VertexCount)
	assert.Zero(t, stats.TriangleCount)
}

func TestExtractStats_NegativeAccessorCount(t *testing.T) {
	data := encodeScene(t, gltf.Document{
		Meshes: []gltf.Mesh{
			{
				Primitives: []gltf.Primitive{
					{Attributes: map[string]int{"POSITION": 0}, Indices: intPtr(1)},
				},
			},
		},
		Accessors: []gltf.Accessor{
			{Count: -2000},
			{Count: -5400},
		},
	})

	stats := gltf.ExtractStats(data)
	assert.False(t, stats.Reliable)
	assert.Zero(t, stats.VertexCount)
	assert.Zero(t, stats.TriangleCount)
}

func TestExtractStats_MalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":                        nil,
		"not a container":              []byte("just some bytes"),
		"json chunk is not a document": gltf.Encode([]byte(`"hello"`)),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			stats := gltf.ExtractStats(data)
			assert.False(t, stats.Reliable)
			assert.Zero(t, stats.VertexCount)
			assert.Zero(t, stats.TriangleCount)
			assert.Equal(t, [3]float64{-0.5, -0.5, -0.5}, stats.BoundingBox.Min)
			assert.Equal(t, [3]float64{0.5, 0.5, 0.5}, stats.BoundingBox.Max)
		})
	}
}
