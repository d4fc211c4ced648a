package texatlas

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"
)

// ExtractedRegion is a sprite recovered from a packed texture. Bounds are in
// texture pixel space with a top-left origin: columns [Left, Right) and rows
// [Top, Bottom).
type ExtractedRegion struct {
	Name string
	ImageData
	Left, Right, Bottom, Top int
}

// ImportResult is the outcome of ImportTex.
type ImportResult struct {
	Name          string // document name, texture base name with DocumentExt
	Width, Height int    // texture size
	Manifest      *Manifest
	// Regions holds one region per manifest entry, or a single region
	// covering the whole texture when no manifest was used.
	Regions []ExtractedRegion
}

// Whole reports whether the result is the whole-texture fallback.
func (r *ImportResult) Whole() bool {
	return r.Manifest == nil
}

// coordEpsilon absorbs float noise in u*W before truncating to a pixel
// index, so 0.29*100 lands on 29 rather than 28.
const coordEpsilon = 1e-6

// uvToPixel converts a normalized coordinate to a pixel index in [0, size].
func uvToPixel(uv float64, size int) int {
	p := int(math.Floor(uv*float64(size) + coordEpsilon))
	return min(max(p, 0), size)
}

// ImportTex decodes the texture at texturePath and slices it into regions.
//
// With a manifest each entry becomes a region: left = u1*W, right = u2*W,
// bottom = H - v1*H, top = H - v2*H, undoing the export flip. Pixels are
// copied row-major from rows [top, bottom) and columns [left, right) as four
// channels, so the texture must decode to RGBA. Coordinates are clamped to
// the texture.
//
// When manifestPath is empty, or the manifest cannot be read or parsed, the
// whole texture is returned as one region with the decoded bytes unchanged.
// That fallback is not an error; it is reported on the debug log.
func (e *Env) ImportTex(texturePath, manifestPath string) (res *ImportResult, err error) {
	const op = "import texture"
	defer guard(op, &err)

	if texturePath == "" {
		return nil, invalidf(op, "empty texture path")
	}
	img, err := e.codec().Decode(texturePath)
	if err != nil {
		if Kind(err) == nil {
			err = newError(ErrDecode, op, texturePath, err)
		}
		return nil, err
	}

	base := filepath.Base(texturePath)
	res = &ImportResult{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)) + DocumentExt,
		Width:  img.Width,
		Height: img.Height,
	}

	var m *Manifest
	if manifestPath == "" {
		e.debugf("import %s: no manifest, using whole texture", texturePath)
	} else if m, err = LoadManifest(manifestPath); err != nil {
		e.debugf("import %s: manifest unusable, using whole texture: %v", texturePath, err)
		m = nil
	}

	if m == nil {
		whole := ExtractedRegion{
			Name:      strings.TrimSuffix(res.Name, DocumentExt),
			ImageData: ImageData{Width: img.Width, Height: img.Height, Channels: img.Channels, Pix: append([]byte(nil), img.Pix...)},
			Right:     img.Width,
			Bottom:    img.Height,
		}
		res.Regions = []ExtractedRegion{whole}
		return res, nil
	}

	if img.Channels != 4 {
		return nil, newError(ErrInvalidInput, op, texturePath,
			fmt.Errorf("manifest slicing needs a 4-channel texture, got %d channels", img.Channels))
	}
	res.Manifest = m
	res.Regions = make([]ExtractedRegion, 0, len(m.Entries))
	for _, entry := range m.Entries {
		res.Regions = append(res.Regions, ExtractRegion(img, entry))
	}
	return res, nil
}

// PixelBounds returns the texture pixel rectangle of e on a w x h texture,
// top-left origin, clamped to the texture. Inverted entries give an empty
// rectangle anchored at Min.
func (e Entry) PixelBounds(w, h int) image.Rectangle {
	r := image.Rectangle{
		Min: image.Pt(uvToPixel(e.U1, w), h-uvToPixel(e.V2, h)),
		Max: image.Pt(uvToPixel(e.U2, w), h-uvToPixel(e.V1, h)),
	}
	r.Max.X = max(r.Max.X, r.Min.X)
	r.Max.Y = max(r.Max.Y, r.Min.Y)
	return r
}

// ExtractRegion copies the pixels of entry out of a four-channel image.
func ExtractRegion(img ImageData, entry Entry) ExtractedRegion {
	r := entry.PixelBounds(img.Width, img.Height)
	w, h := r.Dx(), r.Dy()

	pix := make([]byte, 0, w*h*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := img.At(x, y)
			pix = append(pix, px.R, px.G, px.B, px.A)
		}
	}
	return ExtractedRegion{
		Name:      entry.Name,
		ImageData: ImageData{Width: w, Height: h, Channels: 4, Pix: pix},
		Left:      r.Min.X,
		Right:     r.Max.X,
		Bottom:    r.Max.Y,
		Top:       r.Min.Y,
	}
}
