package texatlas

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func spriteDocument() *Document {
	return &Document{
		Name:   "sheet.psd",
		Width:  100,
		Height: 100,
		Layers: []Layer{NewLayer("Sprite", 10, 70, 30, 90)},
	}
}

func TestBuildManifest_Scenario(t *testing.T) {
	m := BuildManifest(spriteDocument())
	want := &Manifest{
		TextureFileName: "sheet.tex",
		Entries:         []Entry{{Name: "Sprite", U1: 0.1, U2: 0.3, V1: 0.1, V2: 0.3}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildManifest_GridSnap(t *testing.T) {
	// After the flip this box is [5,20]x[27,44], which is off the 16px grid.
	doc := &Document{
		Name: "g.psd", Width: 64, Height: 64,
		Grid:   &Extent{W: 16, H: 16},
		Layers: []Layer{NewLayer("s", 5, 20, 20, 37)},
	}
	m := BuildManifest(doc)
	want := Entry{Name: "s", U1: 0, U2: 0.25, V1: 0.25, V2: 0.75}
	if diff := cmp.Diff(want, m.Entries[0]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildManifest_GridAlignedKept(t *testing.T) {
	doc := &Document{
		Name: "g.psd", Width: 64, Height: 64,
		Grid:   &Extent{W: 16, H: 16},
		Layers: []Layer{NewLayer("s", 16, 0, 48, 32)},
	}
	m := BuildManifest(doc)
	want := Entry{Name: "s", U1: 0.25, U2: 0.75, V1: 0.5, V2: 1}
	if diff := cmp.Diff(want, m.Entries[0]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildManifest_NestedGroups(t *testing.T) {
	doc := &Document{Name: "n", Width: 10, Height: 10, Layers: []Layer{
		NewGroup("g", NewLayer("a", 0, 0, 5, 5), NewGroup("h", NewLayer("b", 5, 5, 10, 10))),
	}}
	m := BuildManifest(doc)
	if m.TextureFileName != "n.tex" {
		t.Errorf("TextureFileName = %q, want n.tex", m.TextureFileName)
	}
	want := []Entry{
		{Name: "a", U1: 0, U2: 0.5, V1: 0.5, V2: 1},
		{Name: "b", U1: 0.5, U2: 1, V1: 0, V2: 0.5},
	}
	if diff := cmp.Diff(want, m.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAtlas(t *testing.T) {
	dir := t.TempDir()
	var env Env
	res, err := env.ExportAtlas(spriteDocument(), dir)
	if err != nil {
		t.Fatalf("ExportAtlas: %v", err)
	}
	wantPath := filepath.Join(dir, "sheet.xml")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	if res.Message != "Successfully exported "+wantPath+"." {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Entries != 1 {
		t.Errorf("Entries = %d, want 1", res.Entries)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="utf-8"?>
<Atlas>
  <Texture filename="sheet.tex" />
  <Elements>
    <Element name="Sprite.tex" u1="0.1" u2="0.3" v1="0.1" v2="0.3" />
  </Elements>
</Atlas>
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAtlas_DebugLogsSnap(t *testing.T) {
	var log bytes.Buffer
	env := Env{Debug: true, Stderr: &log}
	doc := &Document{
		Name: "g.psd", Width: 64, Height: 64,
		Grid:   &Extent{W: 16, H: 16},
		Layers: []Layer{NewLayer("s", 5, 20, 20, 37)},
	}
	if _, err := env.ExportAtlas(doc, t.TempDir()); err != nil {
		t.Fatalf("ExportAtlas: %v", err)
	}
	out := log.String()
	if !strings.Contains(out, `[texatlas] snap "s"`) {
		t.Errorf("debug log missing snap line:\n%s", out)
	}
	if !strings.Contains(out, "g.xml (1 entries)") {
		t.Errorf("debug log missing write line:\n%s", out)
	}
}

func TestExportAtlas_Errors(t *testing.T) {
	var env Env
	if _, err := env.ExportAtlas(&Document{Name: "x"}, t.TempDir()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("invalid doc err = %v, want ErrInvalidInput", err)
	}
	if _, err := env.ExportAtlas(spriteDocument(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty dir err = %v, want ErrInvalidInput", err)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := env.ExportAtlas(spriteDocument(), missing); !errors.Is(err, ErrIO) {
		t.Errorf("missing dir err = %v, want ErrIO", err)
	}
}

func TestExportTexture(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage(8, 4)
	var env Env
	res, err := env.ExportTexture(spriteDocument(), dir, img, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("ExportTexture: %v", err)
	}
	if want := filepath.Join(dir, "sheet.tex"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}

	got, err := ImageCodec{}.Decode(res.Path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(img, got); diff != "" {
		t.Errorf("decoded texture mismatch (-want +got):\n%s", diff)
	}
}

func TestExportTexture_InvalidInput(t *testing.T) {
	var env Env
	dir := t.TempDir()
	bad := ImageData{Width: 2, Height: 2, Channels: 4, Pix: make([]byte, 3)}
	if _, err := env.ExportTexture(spriteDocument(), dir, bad, DefaultEncodeOptions()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short buffer err = %v, want ErrInvalidInput", err)
	}
	if _, err := env.ExportTexture(spriteDocument(), dir, gradientImage(2, 2), EncodeOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero options err = %v, want ErrInvalidInput", err)
	}
}

// failingCodec records calls and fails every encode.
type failingCodec struct {
	encodes int
}

func (c *failingCodec) Decode(string) (ImageData, error) { return ImageData{}, errors.New("boom") }

func (c *failingCodec) Encode(ImageData, string, EncodeOptions) error {
	c.encodes++
	return errors.New("disk full")
}

func TestExport_TextureFailureStops(t *testing.T) {
	codec := &failingCodec{}
	env := Env{Codec: codec}
	dir := t.TempDir()
	_, err := env.Export(spriteDocument(), dir, gradientImage(2, 2), ExportOptions{
		Encode: DefaultEncodeOptions(),
		Atlas:  true,
	})
	if !errors.Is(err, ErrIO) {
		t.Errorf("err = %v, want ErrIO", err)
	}
	if codec.encodes != 1 {
		t.Errorf("encodes = %d, want 1", codec.encodes)
	}
	if _, err := os.Stat(filepath.Join(dir, "sheet.xml")); !os.IsNotExist(err) {
		t.Errorf("manifest should not exist after texture failure, stat err = %v", err)
	}
}

func TestExport_WithAtlasAndGridOverride(t *testing.T) {
	dir := t.TempDir()
	var env Env
	doc := &Document{Name: "g.psd", Width: 64, Height: 64, Layers: []Layer{NewLayer("s", 5, 20, 20, 37)}}
	res, err := env.Export(doc, dir, gradientImage(64, 64), ExportOptions{
		Encode: DefaultEncodeOptions(),
		Atlas:  true,
		Grid:   &Extent{W: 16, H: 16},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("results = %d, want 2", len(res))
	}
	if filepath.Ext(res[0].Path) != ".tex" || filepath.Ext(res[1].Path) != ".xml" {
		t.Errorf("result order = %s, %s; want texture then manifest", res[0].Path, res[1].Path)
	}

	m, err := LoadManifest(res[1].Path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	want := Entry{Name: "s", U1: 0, U2: 0.25, V1: 0.25, V2: 0.75}
	if diff := cmp.Diff(want, m.Entries[0]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_TextureOnly(t *testing.T) {
	dir := t.TempDir()
	var env Env
	res, err := env.Export(spriteDocument(), dir, gradientImage(4, 4), ExportOptions{Encode: DefaultEncodeOptions()})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res) != 1 {
		t.Errorf("results = %d, want 1", len(res))
	}
	if _, err := os.Stat(filepath.Join(dir, "sheet.xml")); !os.IsNotExist(err) {
		t.Errorf("manifest should not be written, stat err = %v", err)
	}
}

func TestExport_BadGridOverride(t *testing.T) {
	var env Env
	_, err := env.Export(spriteDocument(), t.TempDir(), gradientImage(2, 2), ExportOptions{
		Encode: DefaultEncodeOptions(),
		Atlas:  true,
		Grid:   &Extent{W: 0, H: 16},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
