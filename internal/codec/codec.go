// Package codec turns files into pixel buffers and back. Decoding accepts
// any registered format (png, jpeg, gif, bmp, tiff, webp); encoding picks the
// format from the destination extension. The engine never touches the
// filesystem itself.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode-only

	"github.com/darrenk196/image-analyzer/internal/engine"
)

// ErrDecode and ErrEncode classify every codec failure; callers branch with
// errors.Is and display the message text.
var (
	ErrDecode = errors.New("image decode failed")
	ErrEncode = errors.New("image encode failed")
)

// ErrBadBuffer reports a data length inconsistent with the declared
// dimensions. Raised before any file is created.
var ErrBadBuffer = fmt.Errorf("%w: failed to construct image from buffer", ErrEncode)

// DefaultJPEGQuality matches the encoder default used elsewhere in this tool.
const DefaultJPEGQuality = 85

// EncodeOptions tunes lossy output formats.
type EncodeOptions struct {
	JPEGQuality int // 1-100, 0 means DefaultJPEGQuality
}

// Decode reads and decodes the image at path into an RGBA8 pixel buffer with
// straight (non-premultiplied) alpha.
func Decode(path string) (*engine.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrDecode, path, err)
	}
	return fromImage(img), nil
}

// fromImage flattens any image.Image into interleaved RGBA bytes.
func fromImage(img image.Image) *engine.PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) || nrgba.Stride != w*4 {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return &engine.PixelBuffer{
		Width:  uint32(w),
		Height: uint32(h),
		Data:   engine.PixelData(nrgba.Pix),
		Format: engine.FormatRGBA,
	}
}

// toImage wraps a buffer in an image.Image without copying. The buffer must
// already have passed the length check.
func toImage(buf *engine.PixelBuffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf.Data,
		Stride: int(buf.Width) * 4,
		Rect:   image.Rect(0, 0, int(buf.Width), int(buf.Height)),
	}
}

// Encode writes buf to path, inferring the format from the extension
// (.png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff). The buffer length is checked
// against the dimensions before anything is written.
func Encode(buf *engine.PixelBuffer, path string, opts EncodeOptions) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w (%v)", ErrBadBuffer, err)
	}

	format := normalizeExt(filepath.Ext(path))
	if format == "" {
		return fmt.Errorf("%w: unsupported output format %q", ErrEncode, filepath.Ext(path))
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer f.Close()

	img := toImage(buf)
	switch format {
	case "png":
		err = png.Encode(f, img)
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "gif":
		err = gif.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrEncode, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// normalizeExt maps a file extension to an encoder name, or "" if no encoder
// exists for it (webp is decode-only).
func normalizeExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return ""
	}
}

// Info describes an image file without fully decoding it.
type Info struct {
	Width    int
	Height   int
	Format   string
	FileSize int64
}

// Inspect reads just enough of the file at path to report its dimensions and
// container format.
func Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDecode, path, err)
	}

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &Info{Width: cfg.Width, Height: cfg.Height, Format: format, FileSize: st.Size()}, nil
}
