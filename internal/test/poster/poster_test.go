package poster_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertugcetrefli-afk/3dcloud/internal/poster"
)

func TestGenerate_ValidPNG(t *testing.T) {
	gen := poster.NewGenerator("https://posters.test/fallback.png")

	data, err := gen.Generate("Turbine Blade")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestGenerate_EmptyNameStillRenders(t *testing.T) {
	gen := poster.NewGenerator("https://posters.test/fallback.png")

	data, err := gen.Generate("")
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := poster.NewGenerator("https://posters.test/fallback.png")

	first, err := gen.Generate("Showroom Chair")
	require.NoError(t, err)
	second, err := gen.Generate("Showroom Chair")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
