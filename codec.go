package texatlas

import (
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoding
)

// Codec reads and writes texture files. Hosts with a native texture library
// supply their own; ImageCodec covers the common raster formats.
type Codec interface {
	// Decode reads the image at path. Failing to open the file is ErrIO,
	// failing to parse it is ErrDecode.
	Decode(path string) (ImageData, error)

	// Encode writes img to path.
	Encode(img ImageData, path string, opts EncodeOptions) error
}

// ImageCodec is the built-in Codec. Decode sniffs PNG, JPEG, GIF, BMP, TIFF
// and WebP content regardless of the file extension. Encode writes BMP for
// .bmp, TIFF for .tif/.tiff and PNG for everything else, including .tex.
// Of the EncodeOptions only PreMultiplyAlpha affects the output.
type ImageCodec struct{}

// Decode implements Codec.
func (ImageCodec) Decode(path string) (ImageData, error) {
	const op = "decode image"
	f, err := os.Open(path)
	if err != nil {
		return ImageData{}, newError(ErrIO, op, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return ImageData{}, newError(ErrDecode, op, path, err)
	}
	return FromImage(img), nil
}

// Encode implements Codec.
func (ImageCodec) Encode(img ImageData, path string, opts EncodeOptions) error {
	const op = "encode image"
	if err := img.Validate(); err != nil {
		return err
	}
	if opts.PreMultiplyAlpha {
		img = premultiply(img)
	}
	src := img.Image()

	var encode func(w io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		encode = func(w io.Writer) error { return bmp.Encode(w, src) }
	case ".tif", ".tiff":
		encode = func(w io.Writer) error {
			return tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		encode = func(w io.Writer) error { return png.Encode(w, src) }
	}
	if err := writeFileAtomic(path, encode); err != nil {
		return newError(ErrIO, op, path, err)
	}
	return nil
}

// FromImage copies img into a tightly packed buffer: gray images keep one
// channel, opaque YCbCr and CMYK images get three, everything else four
// channels of straight-alpha RGBA.
func FromImage(img image.Image) ImageData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch src := img.(type) {
	case *image.Gray:
		return ImageData{Width: w, Height: h, Channels: 1, Pix: copyRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), w, h)}
	case *image.NRGBA:
		return ImageData{Width: w, Height: h, Channels: 4, Pix: copyRows(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), w*4, h)}
	case *image.Gray16:
		dst := image.NewGray(image.Rect(0, 0, w, h))
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
		return ImageData{Width: w, Height: h, Channels: 1, Pix: dst.Pix}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	switch img.(type) {
	case *image.YCbCr, *image.CMYK:
		rgb := make([]byte, 0, w*h*3)
		for i := 0; i < len(dst.Pix); i += 4 {
			rgb = append(rgb, dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
		return ImageData{Width: w, Height: h, Channels: 3, Pix: rgb}
	}
	return ImageData{Width: w, Height: h, Channels: 4, Pix: dst.Pix}
}

// copyRows packs h rows of rowLen bytes, starting at off and stride apart.
func copyRows(pix []byte, stride, off, rowLen, h int) []byte {
	out := make([]byte, 0, rowLen*h)
	for y := 0; y < h; y++ {
		start := off + y*stride
		out = append(out, pix[start:start+rowLen]...)
	}
	return out
}

// Image returns d as an image.Image: *image.Gray for one channel, otherwise
// *image.NRGBA. Four-channel buffers are shared, not copied.
func (d ImageData) Image() image.Image {
	r := image.Rect(0, 0, d.Width, d.Height)
	switch d.Channels {
	case 1:
		return &image.Gray{Pix: d.Pix, Stride: d.Width, Rect: r}
	case 4:
		return &image.NRGBA{Pix: d.Pix, Stride: d.Width * 4, Rect: r}
	}
	dst := image.NewNRGBA(r)
	for i, j := 0, 0; i+2 < len(d.Pix) && j < len(dst.Pix); i, j = i+3, j+4 {
		dst.Pix[j], dst.Pix[j+1], dst.Pix[j+2], dst.Pix[j+3] = d.Pix[i], d.Pix[i+1], d.Pix[i+2], 0xff
	}
	return dst
}

// At returns the pixel at (x, y) as straight-alpha RGBA.
func (d ImageData) At(x, y int) color.NRGBA {
	i := d.PixOffset(x, y)
	switch d.Channels {
	case 1:
		v := d.Pix[i]
		return color.NRGBA{R: v, G: v, B: v, A: 0xff}
	case 3:
		return color.NRGBA{R: d.Pix[i], G: d.Pix[i+1], B: d.Pix[i+2], A: 0xff}
	}
	return color.NRGBA{R: d.Pix[i], G: d.Pix[i+1], B: d.Pix[i+2], A: d.Pix[i+3]}
}

// premultiply returns a copy of a four-channel buffer with color channels
// scaled by alpha. Other channel counts have no alpha and are returned as is.
func premultiply(d ImageData) ImageData {
	if d.Channels != 4 {
		return d
	}
	out := d
	out.Pix = make([]byte, len(d.Pix))
	for i := 0; i+3 < len(d.Pix); i += 4 {
		a := uint32(d.Pix[i+3])
		out.Pix[i] = uint8(uint32(d.Pix[i]) * a / 0xff)
		out.Pix[i+1] = uint8(uint32(d.Pix[i+1]) * a / 0xff)
		out.Pix[i+2] = uint8(uint32(d.Pix[i+2]) * a / 0xff)
		out.Pix[i+3] = d.Pix[i+3]
	}
	return out
}
