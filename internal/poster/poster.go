// Package poster renders static preview images for converted models. It is a
// best-effort stand-in, not a 3D renderer: the output is a deterministic
// gradient card carrying the project name.
package poster

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	posterWidth  = 800
	posterHeight = 600
)

type Generator struct {
	fallbackURL string
	httpClient  *http.Client
}

func NewGenerator(fallbackURL string) *Generator {
	return &Generator{
		fallbackURL: fallbackURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Generate renders a preview PNG for the named project. On render failure it
// falls back to fetching a stock placeholder image.
func (g *Generator) Generate(projectName string) ([]byte, error) {
	data, err := render(projectName)
	if err == nil {
		return data, nil
	}

	return g.fetchFallback()
}

func render(title string) ([]byte, error) {
	dc := gg.NewContext(posterWidth, posterHeight)

	grad := gg.NewLinearGradient(0, 0, 0, posterHeight)
	grad.AddColorStop(0, color.NRGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF})
	grad.AddColorStop(1, color.NRGBA{R: 0x1E, G: 0x29, B: 0x3B, A: 0xFF})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, posterWidth, posterHeight)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)

	if title == "" {
		title = "3D Model"
	}
	tw, th := dc.MeasureString(title)
	dc.DrawString(title, posterWidth/2-tw/2, posterHeight/2+th/2)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode poster: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) fetchFallback() ([]byte, error) {
	resp, err := g.httpClient.Get(g.fallbackURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback poster returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback poster: %w", err)
	}

	return data, nil
}
