package ebitenatlas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/texatlas"
)

// TextureRegion describes a sprite rectangle on the atlas page, top-left
// origin, in pixels.
type TextureRegion struct {
	Page          uint16 // 0 for the atlas page, PlaceholderPage for the magenta fallback
	X, Y          uint16
	Width, Height uint16
}

// Rect returns r as an image rectangle.
func (r TextureRegion) Rect() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// PlaceholderPage is the sentinel page index of the magenta placeholder.
const PlaceholderPage = 0xFFFF

// Atlas is a texture page with the named regions of its manifest.
type Atlas struct {
	Page            *ebiten.Image
	TextureFileName string
	regions         map[string]TextureRegion
	names           []string
}

var debug bool

// SetDebug toggles logging of missing region lookups.
func SetDebug(enabled bool) {
	debug = enabled
}

// LoadAtlas parses manifest XML and maps every entry onto page. Region
// rectangles follow the same reconstruction as texatlas.ImportTex.
func LoadAtlas(manifestXML []byte, page *ebiten.Image) (*Atlas, error) {
	if page == nil {
		return nil, fmt.Errorf("ebitenatlas: nil atlas page")
	}
	m, err := texatlas.ParseManifest(bytes.NewReader(manifestXML))
	if err != nil {
		return nil, fmt.Errorf("ebitenatlas: failed to parse manifest: %w", err)
	}

	b := page.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > PlaceholderPage || h > PlaceholderPage {
		return nil, fmt.Errorf("ebitenatlas: page %dx%d too large", w, h)
	}
	atlas := &Atlas{
		Page:            page,
		TextureFileName: m.TextureFileName,
		regions:         make(map[string]TextureRegion, len(m.Entries)),
	}
	for _, e := range m.Entries {
		if _, dup := atlas.regions[e.Name]; dup {
			return nil, fmt.Errorf("ebitenatlas: duplicate region %q", e.Name)
		}
		atlas.regions[e.Name] = entryToRegion(e, w, h)
		atlas.names = append(atlas.names, e.Name)
	}
	slices.Sort(atlas.names)
	return atlas, nil
}

func entryToRegion(e texatlas.Entry, w, h int) TextureRegion {
	r := e.PixelBounds(w, h)
	return TextureRegion{
		X:      uint16(r.Min.X),
		Y:      uint16(r.Min.Y),
		Width:  uint16(r.Dx()),
		Height: uint16(r.Dy()),
	}
}

// Region returns the TextureRegion for name. Unknown names log a warning in
// debug mode and return a 1x1 magenta placeholder on PlaceholderPage.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if debug {
		log.Printf("ebitenatlas: atlas region %q not found, using magenta placeholder", name)
	}
	return TextureRegion{Page: PlaceholderPage, Width: 1, Height: 1}
}

// Has reports whether the atlas defines name.
func (a *Atlas) Has(name string) bool {
	_, ok := a.regions[name]
	return ok
}

// SubImage returns the page sub-image for name, or the magenta placeholder
// image when the name is unknown.
func (a *Atlas) SubImage(name string) *ebiten.Image {
	r := a.Region(name)
	if r.Page == PlaceholderPage {
		return placeholderImage()
	}
	return a.Page.SubImage(r.Rect()).(*ebiten.Image)
}

// Names returns all region names in sorted order.
func (a *Atlas) Names() []string {
	return slices.Clone(a.names)
}

// Frames returns the region names starting with prefix in natural order, so
// "run_2" sorts before "run_10".
func (a *Atlas) Frames(prefix string) []string {
	var out []string
	for _, n := range a.names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, naturalCompare)
	return out
}

// naturalCompare orders strings with embedded digit runs compared by value.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, ra := splitDigits(a)
			db, rb := splitDigits(b)
			if c := compareNumeric(da, db); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return int(a[0]) - int(b[0])
		}
		a, b = a[1:], b[1:]
	}
	return len(a) - len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareNumeric compares two digit runs by value, then by length so that
// "01" sorts after "1".
func compareNumeric(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) - len(tb)
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	return len(a) - len(b)
}

// magenta placeholder singleton (no sync.Once, ebiten images are used from
// the game goroutine only)
var magentaImage *ebiten.Image

func placeholderImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
