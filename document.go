package texatlas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Document is the typed view of a layered source document. It is built once
// at the boundary (ParseDocument or by hand) and validated with Validate; the
// rest of the package only reads it.
type Document struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Grid   *Extent `json:"grid,omitempty"`
	Layers []Layer `json:"layers"`
}

// Layer is a node of the document's layer tree. A layer with a non-nil
// Layers slice is a group, even when the slice is empty; everything else is
// a leaf that becomes an atlas region.
type Layer struct {
	Name   string  `json:"name"`
	Bounds Bounds  `json:"bounds"`
	Layers []Layer `json:"layers"`
}

// NewLayer returns a leaf layer. Bounds use the top-left origin.
func NewLayer(name string, left, top, right, bottom float64) Layer {
	return Layer{Name: name, Bounds: Bounds{Left: left, Right: right, Bottom: bottom, Top: top}}
}

// NewGroup returns a group layer holding children.
func NewGroup(name string, children ...Layer) Layer {
	if children == nil {
		children = []Layer{}
	}
	return Layer{Name: name, Layers: children}
}

// IsGroup reports whether l has children.
func (l *Layer) IsGroup() bool {
	return l.Layers != nil
}

// Size returns the document's pixel size.
func (d *Document) Size() Extent {
	return Extent{W: d.Width, H: d.Height}
}

// NameWithoutExt returns Name with a trailing DocumentExt removed.
func (d *Document) NameWithoutExt() string {
	return strings.TrimSuffix(d.Name, DocumentExt)
}

// Validate checks the fields the exporter relies on. It returns an *Error of
// kind ErrInvalidInput describing the first problem found.
func (d *Document) Validate() error {
	const op = "validate document"
	if d == nil {
		return invalidf(op, "nil document")
	}
	if d.Name == "" {
		return invalidf(op, "empty document name")
	}
	if !(d.Width > 0) || !(d.Height > 0) {
		return invalidf(op, "document %q has non-positive size %gx%g", d.Name, d.Width, d.Height)
	}
	if g := d.Grid; g != nil && (g.W < 1 || g.H < 1) {
		return invalidf(op, "document %q grid %gx%g must be at least 1x1", d.Name, g.W, g.H)
	}
	seen := make(map[string]struct{})
	return d.WalkLeaves(func(_ *Document, r Region) error {
		if r.Name == "" {
			return invalidf(op, "layer with empty name in %q", d.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return invalidf(op, "duplicate layer name %q in %q", r.Name, d.Name)
		}
		seen[r.Name] = struct{}{}
		b := r.Bounds
		if b.Left > b.Right || b.Top > b.Bottom {
			return invalidf(op, "layer %q has malformed bounds %+v", r.Name, b)
		}
		return nil
	})
}

// ParseDocument decodes a document from its JSON form and validates it:
//
//	{"name": "hero.psd", "width": 256, "height": 256, "grid": {"w": 16, "h": 16},
//	 "layers": [{"name": "idle", "bounds": {"left": 0, "top": 0, "right": 32, "bottom": 32}},
//	            {"name": "fx", "layers": [...]}]}
//
// A "layers" key that is present and not null marks a group.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, newError(ErrInvalidInput, "parse document", "", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadDocument reads and parses a JSON document file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIO, "load document", path, err)
	}
	defer f.Close()
	doc, err := ParseDocument(f)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return doc, nil
}

func (d *Document) String() string {
	return fmt.Sprintf("%s (%gx%g)", d.Name, d.Width, d.Height)
}
