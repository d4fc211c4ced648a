package texatlas

import (
	"fmt"
	"io"
	"os"
)

// File extensions used when deriving output names.
const (
	DocumentExt = ".psd" // layered source document
	TextureExt  = ".tex" // packed texture
	ManifestExt = ".xml" // atlas manifest
)

// Env is the host handle passed explicitly to every operation. The zero value
// is usable: it decodes and encodes with ImageCodec and logs nothing.
type Env struct {
	// Codec decodes and encodes texture files. Nil means ImageCodec{}.
	Codec Codec

	// Debug enables "[texatlas] ..." diagnostic lines on Stderr.
	Debug bool

	// Stderr receives debug output. Nil means os.Stderr.
	Stderr io.Writer
}

func (e *Env) codec() Codec {
	if e == nil || e.Codec == nil {
		return ImageCodec{}
	}
	return e.Codec
}

// debugf prints a diagnostic line when debug mode is on.
func (e *Env) debugf(format string, args ...any) {
	if e == nil || !e.Debug {
		return
	}
	w := e.Stderr
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "[texatlas] "+format+"\n", args...)
}
