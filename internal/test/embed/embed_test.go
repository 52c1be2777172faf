package embed_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ertugcetrefli-afk/3dcloud/internal/embed"
)

const (
	glbURL    = "https://cdn.test/models/converted.glb"
	posterURL = "https://cdn.test/posters/poster.png"
)

func TestParseSettings_EmptyConfig(t *testing.T) {
	s := embed.ParseSettings(nil)
	assert.False(t, s.Camera.AutoRotate)

	s = embed.ParseSettings(json.RawMessage(`{}`))
	assert.Empty(t, s.Scene.Background)
}

func TestHTML_Defaults(t *testing.T) {
	snippet := embed.HTML(glbURL, posterURL, embed.Settings{})

	assert.Contains(t, snippet, "<model-viewer")
	assert.Contains(t, snippet, `src="`+glbURL+`"`)
	assert.Contains(t, snippet, `poster="`+posterURL+`"`)
	assert.Contains(t, snippet, "camera-controls")
	assert.Contains(t, snippet, `shadow-intensity="0.5"`)
	assert.Contains(t, snippet, `exposure="1"`)
	assert.Contains(t, snippet, "model-viewer.min.js")
	assert.NotContains(t, snippet, "ar-modes")
	assert.NotContains(t, snippet, "auto-rotate")
}

func TestHTML_ARAndCamera(t *testing.T) {
	raw := json.RawMessage(`{
		"scene": {"background": "#101820", "shadowIntensity": 0.8},
		"camera": {"autoRotate": true},
		"ar": {"quickLook": true, "webXR": true}
	}`)
	snippet := embed.HTML(glbURL, posterURL, embed.ParseSettings(raw))

	assert.Contains(t, snippet, `ar ar-modes="quick-look webxr"`)
	assert.Contains(t, snippet, "auto-rotate")
	assert.Contains(t, snippet, `shadow-intensity="0.8"`)
	assert.Contains(t, snippet, `background-color="#101820"`)
}

func TestReact_Component(t *testing.T) {
	snippet := embed.React(glbURL, posterURL, embed.Settings{})

	assert.Contains(t, snippet, "import '@google/model-viewer';")
	assert.Contains(t, snippet, "function ModelViewer()")
	assert.Contains(t, snippet, "export default ModelViewer;")
	assert.Contains(t, snippet, `src="`+glbURL+`"`)
}

func TestJavaScript_ThreeLoader(t *testing.T) {
	speed := 2.5
	s := embed.Settings{}
	s.Camera.AutoRotate = true
	s.Camera.AutoRotateSpeed = &speed

	snippet := embed.JavaScript(glbURL, s)

	assert.Contains(t, snippet, "GLTFLoader")
	assert.Contains(t, snippet, "OrbitControls")
	assert.Contains(t, snippet, "loader.load('"+glbURL+"'")
	assert.Contains(t, snippet, "controls.autoRotate = true;")
	assert.Contains(t, snippet, "controls.autoRotateSpeed = 2.5;")
	// No background configured: the default dark scene color applies.
	assert.Contains(t, snippet, "new THREE.Color('#1e293b')")
}
