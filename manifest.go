package texatlas

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Manifest maps region names to normalized texture coordinates on one
// packed texture.
type Manifest struct {
	TextureFileName string
	Entries         []Entry
}

// Entry is one named region in UV space. Names are stored without the
// TextureExt suffix the manifest file carries.
type Entry struct {
	Name           string
	U1, U2, V1, V2 float64
}

// Lookup returns the entry with the given name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// WriteManifest writes m as atlas XML:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<Atlas>
//	  <Texture filename="hero.tex" />
//	  <Elements>
//	    <Element name="idle.tex" u1="0" u2="0.25" v1="0.75" v2="1" />
//	  </Elements>
//	</Atlas>
func WriteManifest(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"+
		"<Atlas>\n"+
		"  <Texture filename=\"%s\" />\n"+
		"  <Elements>\n", escapeAttr(m.TextureFileName))
	for _, e := range m.Entries {
		fmt.Fprintf(bw, "    <Element name=\"%s\" u1=\"%s\" u2=\"%s\" v1=\"%s\" v2=\"%s\" />\n",
			escapeAttr(e.Name+TextureExt),
			formatFloat(e.U1), formatFloat(e.U2),
			formatFloat(e.V1), formatFloat(e.V2))
	}
	bw.WriteString("  </Elements>\n")
	bw.WriteString("</Atlas>\n")
	return bw.Flush()
}

// SaveManifest writes m to path. The file is replaced atomically, so a failed
// write never leaves a truncated manifest behind.
func SaveManifest(path string, m *Manifest) error {
	if err := writeFileAtomic(path, func(w io.Writer) error { return WriteManifest(w, m) }); err != nil {
		return newError(ErrIO, "save manifest", path, err)
	}
	return nil
}

// --- XML structure types ---

type xmlAtlas struct {
	XMLName  xml.Name     `xml:"Atlas"`
	Texture  xmlTexture   `xml:"Texture"`
	Elements []xmlElement `xml:"Elements>Element"`
}

type xmlTexture struct {
	Filename string `xml:"filename,attr"`
}

type xmlElement struct {
	Name string  `xml:"name,attr"`
	U1   float64 `xml:"u1,attr"`
	U2   float64 `xml:"u2,attr"`
	V1   float64 `xml:"v1,attr"`
	V2   float64 `xml:"v2,attr"`
}

// ParseManifest reads atlas XML. Documents declaring a non-UTF-8 encoding are
// transcoded. Missing coordinate attributes read as 0; malformed ones, or a
// root element other than <Atlas>, fail with ErrManifestParse.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc xmlAtlas
	if err := dec.Decode(&doc); err != nil {
		return nil, newError(ErrManifestParse, "parse manifest", "", err)
	}

	m := &Manifest{
		TextureFileName: doc.Texture.Filename,
		Entries:         make([]Entry, 0, len(doc.Elements)),
	}
	for _, el := range doc.Elements {
		m.Entries = append(m.Entries, Entry{
			Name: strings.TrimSuffix(el.Name, TextureExt),
			U1:   el.U1,
			U2:   el.U2,
			V1:   el.V1,
			V2:   el.V2,
		})
	}
	return m, nil
}

// LoadManifest reads and parses the manifest at path. A missing or unreadable
// file is ErrIO; bad content is ErrManifestParse.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIO, "load manifest", path, err)
	}
	defer f.Close()
	m, err := ParseManifest(f)
	if err != nil {
		err.(*Error).Path = path
		return nil, err
	}
	return m, nil
}

// formatFloat prints f in its shortest round-trip form, choosing plain or
// exponent notation by length (plain on ties).
func formatFloat(f float64) string {
	plain := strconv.FormatFloat(f, 'f', -1, 64)
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	if len(exp) < len(plain) {
		return exp
	}
	return plain
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
