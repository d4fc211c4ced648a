package texatlas

import (
	"fmt"
	"strings"
)

// ImageData is a flat, row-major pixel buffer.
type ImageData struct {
	Width, Height int
	Channels      int // 1 (gray), 3 (RGB) or 4 (RGBA)
	Pix           []byte
}

// Validate checks the channel count and that Pix holds exactly
// Width*Height*Channels bytes.
func (d ImageData) Validate() error {
	const op = "validate image"
	if d.Width <= 0 || d.Height <= 0 {
		return invalidf(op, "non-positive size %dx%d", d.Width, d.Height)
	}
	switch d.Channels {
	case 1, 3, 4:
	default:
		return invalidf(op, "unsupported channel count %d", d.Channels)
	}
	if want := d.Width * d.Height * d.Channels; len(d.Pix) != want {
		return invalidf(op, "pixel buffer is %d bytes, want %d", len(d.Pix), want)
	}
	return nil
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (d ImageData) PixOffset(x, y int) int {
	return (y*d.Width + x) * d.Channels
}

// PixelFormat selects the texture's pixel encoding.
type PixelFormat int

const (
	PixelFormatDXT1 PixelFormat = 0
	PixelFormatDXT3 PixelFormat = 1
	PixelFormatDXT5 PixelFormat = 2
	PixelFormatARGB PixelFormat = 4
)

// TextureType selects the texture dimensionality.
type TextureType int

const (
	TextureType1D         TextureType = 1
	TextureType2D         TextureType = 2
	TextureType3D         TextureType = 3
	TextureTypeCubeMapped TextureType = 4
)

// MipmapFilter selects the filter used when generating mipmaps.
type MipmapFilter int

const (
	MipmapFilterNearestNeighbor     MipmapFilter = 1
	MipmapFilterBilinear            MipmapFilter = 2
	MipmapFilterBicubic             MipmapFilter = 3
	MipmapFilterHighQualityBilinear MipmapFilter = 4
	MipmapFilterHighQualityBicubic  MipmapFilter = 5

	MipmapFilterDefault = MipmapFilterBilinear
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatDXT1: "DXT1",
	PixelFormatDXT3: "DXT3",
	PixelFormatDXT5: "DXT5",
	PixelFormatARGB: "ARGB",
}

var textureTypeNames = map[TextureType]string{
	TextureType1D:         "1D",
	TextureType2D:         "2D",
	TextureType3D:         "3D",
	TextureTypeCubeMapped: "Cube Mapped",
}

var mipmapFilterNames = map[MipmapFilter]string{
	MipmapFilterNearestNeighbor:     "Nearest Neighbor",
	MipmapFilterBilinear:            "Bilinear",
	MipmapFilterBicubic:             "Bicubic",
	MipmapFilterHighQualityBilinear: "High Quality Bilinear",
	MipmapFilterHighQualityBicubic:  "High Quality Bicubic",
}

// Extra names accepted by ParseMipmapFilter.
var mipmapFilterAliases = map[string]MipmapFilter{
	"default": MipmapFilterDefault,
	"low":     MipmapFilterBilinear,
	"high":    MipmapFilterHighQualityBicubic,
}

func (f PixelFormat) String() string {
	if s, ok := pixelFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

func (t TextureType) String() string {
	if s, ok := textureTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TextureType(%d)", int(t))
}

func (f MipmapFilter) String() string {
	if s, ok := mipmapFilterNames[f]; ok {
		return s
	}
	return fmt.Sprintf("MipmapFilter(%d)", int(f))
}

// ParsePixelFormat accepts the names printed by PixelFormat.String,
// case-insensitively.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for f, name := range pixelFormatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, invalidf("parse pixel format", "unknown pixel format %q", s)
}

// ParseTextureType accepts "1D", "2D", "3D" and "Cube Mapped" (also "cube"),
// case-insensitively.
func ParseTextureType(s string) (TextureType, error) {
	if strings.EqualFold(s, "cube") {
		return TextureTypeCubeMapped, nil
	}
	for t, name := range textureTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, invalidf("parse texture type", "unknown texture type %q", s)
}

// ParseMipmapFilter accepts the names printed by MipmapFilter.String plus
// "Default", "Low" and "High", case-insensitively.
func ParseMipmapFilter(s string) (MipmapFilter, error) {
	if f, ok := mipmapFilterAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	for f, name := range mipmapFilterNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, invalidf("parse mipmap filter", "unknown mipmap filter %q", s)
}

// EncodeOptions controls texture encoding. Use DefaultEncodeOptions as the
// starting point; the zero value is not valid.
type EncodeOptions struct {
	PixelFormat      PixelFormat
	TextureType      TextureType
	MipmapFilter     MipmapFilter
	GenerateMipmaps  bool
	PreMultiplyAlpha bool
}

// DefaultEncodeOptions returns DXT5, 1D, the default mipmap filter, no
// mipmaps and straight alpha.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		PixelFormat:  PixelFormatDXT5,
		TextureType:  TextureType1D,
		MipmapFilter: MipmapFilterDefault,
	}
}

// Validate rejects enumeration values outside the known sets.
func (o EncodeOptions) Validate() error {
	const op = "validate encode options"
	if _, ok := pixelFormatNames[o.PixelFormat]; !ok {
		return invalidf(op, "unknown pixel format %d", int(o.PixelFormat))
	}
	if _, ok := textureTypeNames[o.TextureType]; !ok {
		return invalidf(op, "unknown texture type %d", int(o.TextureType))
	}
	if _, ok := mipmapFilterNames[o.MipmapFilter]; !ok {
		return invalidf(op, "unknown mipmap filter %d", int(o.MipmapFilter))
	}
	return nil
}
