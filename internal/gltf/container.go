// Package gltf implements the packaged binary-scene (GLB) container codec:
// a 12-byte header followed by length-prefixed chunks, the first of which is
// normally the JSON scene description.
package gltf

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic is the GLB magic number ("glTF" little-endian).
	Magic uint32 = 0x46546C67

	// Version is the container format version this codec produces.
	Version uint32 = 2

	// ChunkTypeJSON marks the structured-data (JSON) chunk.
	ChunkTypeJSON uint32 = 0x4E4F534A

	// ChunkTypeBIN marks the binary buffer chunk.
	ChunkTypeBIN uint32 = 0x004E4942

	headerSize      = 12
	chunkHeaderSize = 8
)

type Chunk struct {
	Type uint32
	Body []byte
}

type Container struct {
	Version uint32
	Length  uint32
	Chunks  []Chunk
}

// JSONChunk returns the body of the first structured-data chunk, or nil if
// the container has none.
func (c *Container) JSONChunk() []byte {
	for _, ch := range c.Chunks {
		if ch.Type == ChunkTypeJSON {
			return ch.Body
		}
	}
	return nil
}

// Encode packages a JSON scene document into a minimal binary container with
// a single structured-data chunk. The chunk body is space-padded to a 4-byte
// boundary as the format requires. No binary buffer chunk is emitted.
func Encode(doc []byte) []byte {
	padded := len(doc)
	if rem := padded % 4; rem != 0 {
		padded += 4 - rem
	}

	total := headerSize + chunkHeaderSize + padded
	out := make([]byte, total)

	binary.LittleEndian.PutUint32(out[0:4], Magic)
	binary.LittleEndian.PutUint32(out[4:8], Version)
	binary.LittleEndian.PutUint32(out[8:12], uint32(total))

	binary.LittleEndian.PutUint32(out[12:16], uint32(padded))
	binary.LittleEndian.PutUint32(out[16:20], ChunkTypeJSON)

	copy(out[20:], doc)
	for i := headerSize + chunkHeaderSize + len(doc); i < total; i++ {
		out[i] = ' '
	}

	return out
}

// Decode parses a binary container, validating the header and walking every
// chunk. It returns an error for malformed input; callers that must degrade
// gracefully use ExtractStats instead.
func Decode(data []byte) (*Container, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("container too short: %d bytes", len(data))
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("bad magic number 0x%08X", magic)
	}

	c := &Container{
		Version: binary.LittleEndian.Uint32(data[4:8]),
		Length:  binary.LittleEndian.Uint32(data[8:12]),
	}

	declared := int(c.Length)
	if declared > len(data) {
		declared = len(data)
	}

	offset := headerSize
	for offset+chunkHeaderSize <= declared {
		length := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		ctype := binary.LittleEndian.Uint32(data[offset+4 : offset+8])

		body := offset + chunkHeaderSize
		if body+length > declared {
			return nil, fmt.Errorf("chunk 0x%08X overruns container: %d bytes at offset %d", ctype, length, offset)
		}

		c.Chunks = append(c.Chunks, Chunk{Type: ctype, Body: data[body : body+length]})
		offset = body + length
	}

	return c, nil
}
