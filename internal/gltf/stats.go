package gltf

import "encoding/json"

// BoundingBox is an axis-aligned min/max corner pair.
type BoundingBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Stats summarizes the geometry of a packaged container. Reliable is false
// when the counts could not be derived from the input, in which case both
// counts are zero rather than fabricated.
type Stats struct {
	VertexCount   int         `json:"vertexCount"`
	TriangleCount int         `json:"triangleCount"`
	BoundingBox   BoundingBox `json:"boundingBox"`
	Reliable      bool        `json:"statsReliable"`
}

// placeholderBox is a centered unit cube. True bounds would require decoding
// the binary buffer chunk, which the stats pass does not do.
func placeholderBox() BoundingBox {
	return BoundingBox{
		Min: [3]float64{-0.5, -0.5, -0.5},
		Max: [3]float64{0.5, 0.5, 0.5},
	}
}

// ExtractStats derives vertex and triangle counts from a packaged container.
// It never fails: malformed input of any kind degrades to zero counts with
// Reliable set to false.
func ExtractStats(data []byte) Stats {
	unknown := Stats{BoundingBox: placeholderBox()}

	container, err := Decode(data)
	if err != nil {
		return unknown
	}

	body := container.JSONChunk()
	if body == nil {
		return unknown
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return unknown
	}

	stats := Stats{BoundingBox: placeholderBox(), Reliable: true}
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if idx, ok := prim.Attributes["POSITION"]; ok {
				if acc, ok := accessorAt(doc.Accessors, idx); ok {
					// A negative declared count is malformed metadata; the
					// counts cannot be trusted, so degrade to the sentinel.
					if acc.Count < 0 {
						return unknown
					}
					stats.VertexCount += acc.Count
				}
			}
			if prim.Indices != nil {
				if acc, ok := accessorAt(doc.Accessors, *prim.Indices); ok {
					if acc.Count < 0 {
						return unknown
					}
					stats.TriangleCount += acc.Count / 3
				}
			}
		}
	}

	return stats
}

func accessorAt(accessors []Accessor, idx int) (Accessor, bool) {
	if idx < 0 || idx >= len(accessors) {
		return Accessor{}, false
	}
	return accessors[idx], true
}
