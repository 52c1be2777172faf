package gltf_test

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertugcetrefli-afk/3dcloud/internal/gltf"
)

func TestEncode_HeaderAndPadding(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"}}`)
	out := gltf.Encode(doc)

	assert.Equal(t, gltf.Magic, binary.LittleEndian.Uint32(out[0:4]))
	assert.Equal(t, gltf.Version, binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, uint32(len(out)), binary.LittleEndian.Uint32(out[8:12]))
	assert.Zero(t, len(out)%4, "container length must be 4-byte aligned")

	chunkLen := binary.LittleEndian.Uint32(out[12:16])
	assert.Zero(t, chunkLen%4, "chunk body must be 4-byte aligned")
	assert.Equal(t, gltf.ChunkTypeJSON, binary.LittleEndian.Uint32(out[16:20]))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"},"meshes":[]}`)

	container, err := gltf.Decode(gltf.Encode(doc))
	require.NoError(t, err)

	assert.Equal(t, gltf.Version, container.Version)
	require.Len(t, container.Chunks, 1)

	// Padding is whitespace, so the body still unmarshals to the same document.
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(container.JSONChunk(), &got))
	assert.Contains(t, got, "asset")
	assert.Contains(t, got, "meshes")
}

func TestDecode_BadMagic(t *testing.T) {
	data := gltf.Encode([]byte(`{}`))
	binary.LittleEndian.PutUint32(data[0:4], 0xDEADBEEF)

	_, err := gltf.Decode(data)
	assert.ErrorContains(t, err, "bad magic")
}

func TestDecode_TooShort(t *testing.T) {
	_, err := gltf.Decode([]byte("glTF"))
	assert.ErrorContains(t, err, "too short")
}

func TestDecode_ChunkOverrun(t *testing.T) {
	data := gltf.Encode([]byte(`{"asset":{"version":"2.0"}}`))
	// Declare a chunk body longer than the container.
	binary.LittleEndian.PutUint32(data[12:16], uint32(len(data)))

	_, err := gltf.Decode(data)
	assert.ErrorContains(t, err, "overruns container")
}

func TestJSONChunk_MissingChunk(t *testing.T) {
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], gltf.Magic)
	binary.LittleEndian.PutUint32(header[4:8], gltf.Version)
	binary.LittleEndian.PutUint32(header[8:12], 12)

	container, err := gltf.Decode(header)
	require.NoError(t, err)
	assert.Nil(t, container.JSONChunk())
}
