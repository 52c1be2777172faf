package converter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertugcetrefli-afk/3dcloud/internal/converter"
)

func TestParseFormat_Normalizes(t *testing.T) {
	cases := map[string]converter.Format{
		"glb":   converter.FormatGLB,
		"GLB":   converter.FormatGLB,
		".fbx":  converter.FormatFBX,
		" obj ": converter.FormatOBJ,
		"USDZ":  converter.FormatUSDZ,
		"3ds":   converter.Format3DS,
	}

	for tag, want := range cases {
		got, err := converter.ParseFormat(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got)
	}
}

func TestParseFormat_Rejected(t *testing.T) {
	for _, tag := range []string{"", "exe", "blend", "gltf2", "glb.zip"} {
		_, err := converter.ParseFormat(tag)
		assert.ErrorContains(t, err, "unsupported format", tag)
	}
}
