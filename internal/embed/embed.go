// Package embed generates copy-paste viewer snippets for completed projects,
// driven by the project's active viewer configuration.
package embed

import (
	"encoding/json"
	"fmt"
	"strings"
)

const viewerScriptURL = "https://unpkg.com/@google/model-viewer/dist/model-viewer.min.js"

// Settings mirrors the viewer configuration JSON the designer stores.
type Settings struct {
	Scene  SceneSettings  `json:"scene"`
	Camera CameraSettings `json:"camera"`
	AR     ARSettings     `json:"ar"`
	Theme  ThemeSettings  `json:"theme"`
}

type SceneSettings struct {
	Background       string   `json:"background,omitempty"`
	EnvironmentImage string   `json:"environmentImage,omitempty"`
	ShadowIntensity  *float64 `json:"shadowIntensity,omitempty"`
	Exposure         *float64 `json:"exposure,omitempty"`
}

type CameraSettings struct {
	InitialYaw      *float64 `json:"initialYaw,omitempty"`
	InitialPitch    *float64 `json:"initialPitch,omitempty"`
	InitialZoom     *float64 `json:"initialZoom,omitempty"`
	MinZoom         *float64 `json:"minZoom,omitempty"`
	MaxZoom         *float64 `json:"maxZoom,omitempty"`
	AutoRotate      bool     `json:"autoRotate,omitempty"`
	AutoRotateSpeed *float64 `json:"autoRotateSpeed,omitempty"`
}

type ARSettings struct {
	QuickLook   bool     `json:"quickLook,omitempty"`
	SceneViewer bool     `json:"sceneViewer,omitempty"`
	WebXR       bool     `json:"webXR,omitempty"`
	Scale       *float64 `json:"scale,omitempty"`
	Placement   string   `json:"placement,omitempty"`
}

type ThemeSettings struct {
	Mode         string `json:"mode,omitempty"`
	PrimaryColor string `json:"primaryColor,omitempty"`
	ShowControls *bool  `json:"showControls,omitempty"`
	ShowLogo     *bool  `json:"showLogo,omitempty"`
}

// ParseSettings decodes stored config JSON, tolerating an empty document.
func ParseSettings(raw json.RawMessage) Settings {
	var s Settings
	if len(raw) > 0 {
		json.Unmarshal(raw, &s)
	}
	return s
}

func (s Settings) arModes() []string {
	var modes []string
	if s.AR.QuickLook {
		modes = append(modes, "quick-look")
	}
	if s.AR.SceneViewer {
		modes = append(modes, "scene-viewer")
	}
	if s.AR.WebXR {
		modes = append(modes, "webxr")
	}
	return modes
}

func (s Settings) shadowIntensity() float64 {
	if s.Scene.ShadowIntensity != nil {
		return *s.Scene.ShadowIntensity
	}
	return 0.5
}

func (s Settings) exposure() float64 {
	if s.Scene.Exposure != nil {
		return *s.Scene.Exposure
	}
	return 1
}

// HTML renders a <model-viewer> tag plus its script include.
func HTML(glbURL, posterURL string, s Settings) string {
	attributes := []string{
		fmt.Sprintf("src=%q", glbURL),
		fmt.Sprintf("poster=%q", posterURL),
	}

	if modes := s.arModes(); len(modes) > 0 {
		attributes = append(attributes, fmt.Sprintf("ar ar-modes=%q", strings.Join(modes, " ")))
	}

	attributes = append(attributes, "camera-controls")
	if s.Camera.AutoRotate {
		attributes = append(attributes, "auto-rotate")
	}

	attributes = append(attributes,
		fmt.Sprintf("shadow-intensity=%q", trimFloat(s.shadowIntensity())),
		fmt.Sprintf("exposure=%q", trimFloat(s.exposure())),
		`style="width: 100%; height: 500px;"`,
	)

	if s.Scene.Background != "" {
		attributes = append(attributes, fmt.Sprintf("background-color=%q", s.Scene.Background))
	}

	return fmt.Sprintf("<model-viewer\n  %s\n></model-viewer>\n\n<!-- Include model-viewer script -->\n<script type=\"module\" src=%q></script>",
		strings.Join(attributes, "\n  "), viewerScriptURL)
}

// React renders a component wrapping <model-viewer>.
func React(glbURL, posterURL string, s Settings) string {
	var b strings.Builder

	b.WriteString("import '@google/model-viewer';\n\n")
	b.WriteString("function ModelViewer() {\n  return (\n    <model-viewer\n")
	fmt.Fprintf(&b, "      src=%q\n", glbURL)
	fmt.Fprintf(&b, "      poster=%q\n", posterURL)

	if modes := s.arModes(); len(modes) > 0 {
		b.WriteString("      ar\n")
		fmt.Fprintf(&b, "      ar-modes=%q\n", strings.Join(modes, " "))
	}

	b.WriteString("      camera-controls\n")
	if s.Camera.AutoRotate {
		b.WriteString("      auto-rotate\n")
	}

	fmt.Fprintf(&b, "      shadow-intensity=%q\n", trimFloat(s.shadowIntensity()))
	fmt.Fprintf(&b, "      exposure=%q\n", trimFloat(s.exposure()))
	b.WriteString("      style={{ width: '100%', height: '500px' }}\n")

	if s.Scene.Background != "" {
		fmt.Fprintf(&b, "      background-color=%q\n", s.Scene.Background)
	}

	b.WriteString("    />\n  );\n}\n\nexport default ModelViewer;")
	return b.String()
}

// JavaScript renders a plain three.js loader snippet.
func JavaScript(glbURL string, s Settings) string {
	background := s.Scene.Background
	if background == "" {
		background = "#1e293b"
	}

	var b strings.Builder
	b.WriteString("import * as THREE from 'three';\n")
	b.WriteString("import { GLTFLoader } from 'three/examples/jsm/loaders/GLTFLoader';\n")
	b.WriteString("import { OrbitControls } from 'three/examples/jsm/controls/OrbitControls';\n\n")
	fmt.Fprintf(&b, "const scene = new THREE.Scene();\nscene.background = new THREE.Color('%s');\n\n", background)
	b.WriteString("const camera = new THREE.PerspectiveCamera(75, window.innerWidth / window.innerHeight, 0.1, 1000);\ncamera.position.z = 5;\n\n")
	b.WriteString("const renderer = new THREE.WebGLRenderer({ antialias: true });\n")
	b.WriteString("renderer.setSize(window.innerWidth, window.innerHeight);\n")
	fmt.Fprintf(&b, "renderer.toneMappingExposure = %s;\n", trimFloat(s.exposure()))
	b.WriteString("document.body.appendChild(renderer.domElement);\n\n")
	b.WriteString("const controls = new OrbitControls(camera, renderer.domElement);\n")
	if s.Camera.AutoRotate {
		b.WriteString("controls.autoRotate = true;\n")
		if s.Camera.AutoRotateSpeed != nil {
			fmt.Fprintf(&b, "controls.autoRotateSpeed = %s;\n", trimFloat(*s.Camera.AutoRotateSpeed))
		}
	}
	b.WriteString("\nconst light = new THREE.DirectionalLight(0xffffff, 1);\nlight.position.set(5, 5, 5);\nscene.add(light);\n\n")
	fmt.Fprintf(&b, "const loader = new GLTFLoader();\nloader.load('%s', (gltf) => {\n  scene.add(gltf.scene);\n});\n\n", glbURL)
	b.WriteString("function animate() {\n  requestAnimationFrame(animate);\n  controls.update();\n  renderer.render(scene, camera);\n}\nanimate();")
	return b.String()
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
