package converter

import (
	"fmt"
	"strings"
)

// Format is a closed enumeration of supported source model formats.
type Format string

const (
	FormatGLB  Format = "glb"
	FormatGLTF Format = "gltf"
	FormatFBX  Format = "fbx"
	FormatOBJ  Format = "obj"
	FormatSTL  Format = "stl"
	Format3DS  Format = "3ds"
	FormatDAE  Format = "dae"
	FormatPLY  Format = "ply"
	FormatUSD  Format = "usd"
	FormatUSDA Format = "usda"
	FormatUSDC Format = "usdc"
	FormatUSDZ Format = "usdz"
)

var supportedFormats = map[Format]bool{
	FormatGLB:  true,
	FormatGLTF: true,
	FormatFBX:  true,
	FormatOBJ:  true,
	FormatSTL:  true,
	Format3DS:  true,
	FormatDAE:  true,
	FormatPLY:  true,
	FormatUSD:  true,
	FormatUSDA: true,
	FormatUSDC: true,
	FormatUSDZ: true,
}

// ParseFormat normalizes a free-form format tag (file extension) into a
// Format, rejecting anything outside the supported set.
func ParseFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), ".")))
	if !supportedFormats[f] {
		return "", fmt.Errorf("unsupported format %q", tag)
	}
	return f, nil
}

func (f Format) String() string {
	return string(f)
}
