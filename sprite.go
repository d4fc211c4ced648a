package texatlas

import (
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// WriteRegionPNG encodes r as <dir>/<sanitized name>.png and returns the
// path written.
func WriteRegionPNG(dir string, r ExtractedRegion) (string, error) {
	const op = "write region"
	if r.Width == 0 || r.Height == 0 {
		return "", invalidf(op, "region %q is empty", r.Name)
	}
	path := filepath.Join(dir, sanitizeName(r.Name)+".png")
	img := r.Image()
	if err := writeFileAtomic(path, func(w io.Writer) error { return png.Encode(w, img) }); err != nil {
		return "", newError(ErrIO, op, path, err)
	}
	return path, nil
}

// Summary returns a one-line description of r.
func (r ExtractedRegion) Summary() string {
	return fmt.Sprintf("%s %dx%d at [%d,%d)x[%d,%d)", r.Name, r.Width, r.Height, r.Left, r.Right, r.Top, r.Bottom)
}

// sanitizeName replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
