package texatlas

import (
	"fmt"
	"path/filepath"
)

// Result describes a file written by an export operation.
type Result struct {
	Path    string // file written
	Message string // human readable summary
	Entries int    // atlas entries written, 0 for textures
}

func exportedResult(path string, entries int) Result {
	return Result{Path: path, Message: fmt.Sprintf("Successfully exported %s.", path), Entries: entries}
}

// BuildManifest maps every leaf of doc to UV space without writing anything.
// See Env.ExportAtlas for the transform.
func BuildManifest(doc *Document) *Manifest {
	return buildManifest(nil, doc, doc.Grid)
}

func buildManifest(env *Env, doc *Document, grid *Extent) *Manifest {
	w, h := doc.Width, doc.Height
	m := &Manifest{TextureFileName: doc.NameWithoutExt() + TextureExt}
	for r := range doc.Leaves() {
		b := r.Bounds.FlipY(h)
		if grid != nil && !IsGridAligned(b, *grid) {
			snapped := SnapToGrid(b, *grid)
			env.debugf("snap %q %+v -> %+v (grid %gx%g)", r.Name, b, snapped, grid.W, grid.H)
			b = snapped
		}
		m.Entries = append(m.Entries, Entry{
			Name: r.Name,
			U1:   b.Left / w,
			U2:   b.Right / w,
			V1:   b.Bottom / h,
			V2:   b.Top / h,
		})
	}
	return m
}

// ExportAtlas writes the atlas manifest for doc to
// <outputDir>/<name without extension>.xml.
//
// Each leaf's bounds are flipped into a bottom-left origin, snapped outward to
// the document grid when one is declared and the flipped box is off-grid, and
// divided by the document size to give u1/u2 (columns) and v1/v2 (rows).
// The manifest references the texture <name without extension>.tex.
func (e *Env) ExportAtlas(doc *Document, outputDir string) (res Result, err error) {
	const op = "export atlas"
	defer guard(op, &err)

	if err := doc.Validate(); err != nil {
		return Result{}, err
	}
	if outputDir == "" {
		return Result{}, invalidf(op, "empty output directory")
	}
	return e.exportAtlas(doc, outputDir, doc.Grid)
}

func (e *Env) exportAtlas(doc *Document, outputDir string, grid *Extent) (Result, error) {
	m := buildManifest(e, doc, grid)
	path := filepath.Join(outputDir, doc.NameWithoutExt()+ManifestExt)
	if err := SaveManifest(path, m); err != nil {
		return Result{}, err
	}
	e.debugf("wrote %s (%d entries)", path, len(m.Entries))
	return exportedResult(path, len(m.Entries)), nil
}

// ExportTexture encodes img as the texture <outputDir>/<name without
// extension>.tex using the environment's codec.
func (e *Env) ExportTexture(doc *Document, outputDir string, img ImageData, opts EncodeOptions) (res Result, err error) {
	const op = "export texture"
	defer guard(op, &err)

	if err := doc.Validate(); err != nil {
		return Result{}, err
	}
	if outputDir == "" {
		return Result{}, invalidf(op, "empty output directory")
	}
	return e.exportTexture(doc, outputDir, img, opts)
}

func (e *Env) exportTexture(doc *Document, outputDir string, img ImageData, opts EncodeOptions) (Result, error) {
	const op = "export texture"
	if err := img.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	path := filepath.Join(outputDir, doc.NameWithoutExt()+TextureExt)
	if _, builtin := e.codec().(ImageCodec); builtin {
		e.debugf("built-in codec ignores pixel format %s, texture type %s, mipmaps %t (%s)",
			opts.PixelFormat, opts.TextureType, opts.GenerateMipmaps, opts.MipmapFilter)
	}
	if err := e.codec().Encode(img, path, opts); err != nil {
		if Kind(err) == nil {
			err = newError(ErrIO, op, path, err)
		}
		return Result{}, err
	}
	e.debugf("wrote %s (%dx%d, %d channels, %s)", path, img.Width, img.Height, img.Channels, opts.PixelFormat)
	return exportedResult(path, 0), nil
}

// ExportOptions drives Export.
type ExportOptions struct {
	Encode EncodeOptions
	Atlas  bool    // also write the manifest
	Grid   *Extent // overrides the document grid for the manifest when set
}

// Export writes the texture and, when opts.Atlas is set, the manifest. The
// texture is written first; a failure stops the export. Results are returned
// in the order the files were written.
func (e *Env) Export(doc *Document, outputDir string, img ImageData, opts ExportOptions) (res []Result, err error) {
	const op = "export"
	defer guard(op, &err)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if outputDir == "" {
		return nil, invalidf(op, "empty output directory")
	}
	grid := doc.Grid
	if opts.Grid != nil {
		if opts.Grid.W < 1 || opts.Grid.H < 1 {
			return nil, invalidf(op, "grid %gx%g must be at least 1x1", opts.Grid.W, opts.Grid.H)
		}
		grid = opts.Grid
	}

	tex, err := e.exportTexture(doc, outputDir, img, opts.Encode)
	if err != nil {
		return nil, err
	}
	res = append(res, tex)
	if !opts.Atlas {
		return res, nil
	}
	atlas, err := e.exportAtlas(doc, outputDir, grid)
	if err != nil {
		return res, err
	}
	return append(res, atlas), nil
}
