package gltf

// Document is the subset of the scene-description JSON the stats pass reads.
type Document struct {
	Asset     Asset      `json:"asset"`
	Meshes    []Mesh     `json:"meshes"`
	Accessors []Accessor `json:"accessors"`
}

type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive references vertex attributes and indices by accessor index.
// Attributes maps attribute names (POSITION, NORMAL, ...) to accessors.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

// Accessor describes a typed array of elements with a declared count.
type Accessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ComponentType int       `json:"componentType,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type,omitempty"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}
