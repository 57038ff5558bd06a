package codec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/darrenk196/image-analyzer/internal/engine"
)

func testBuffer(t *testing.T) *engine.PixelBuffer {
	t.Helper()
	buf := engine.NewPixelBuffer(2, 2)
	copy(buf.Data, []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
		255, 255, 255, 255,
	})
	return buf
}

func TestPNGRoundTrip(t *testing.T) {
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Encode(buf, path, EncodeOptions{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Width != buf.Width || back.Height != buf.Height {
		t.Fatalf("dimensions %dx%d, want %dx%d", back.Width, back.Height, buf.Width, buf.Height)
	}
	if back.Format != engine.FormatRGBA {
		t.Errorf("format %q, want %q", back.Format, engine.FormatRGBA)
	}
	if !bytes.Equal(back.Data, buf.Data) {
		t.Errorf("PNG round trip changed pixels:\n got %v\nwant %v", back.Data, buf.Data)
	}
}

func TestJPEGEncode(t *testing.T) {
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "out.jpg")

	if err := Encode(buf, path, EncodeOptions{JPEGQuality: 90}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Lossy, so just check it decodes to the same size.
	back, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Width != 2 || back.Height != 2 {
		t.Errorf("dimensions %dx%d, want 2x2", back.Width, back.Height)
	}
}

func TestEncodeRejectsBadBufferBeforeIO(t *testing.T) {
	buf := testBuffer(t)
	buf.Data = buf.Data[:len(buf.Data)-4] // one pixel short
	path := filepath.Join(t.TempDir(), "out.png")

	err := Encode(buf, path, EncodeOptions{})
	if !errors.Is(err, ErrBadBuffer) {
		t.Fatalf("err = %v, want ErrBadBuffer", err)
	}
	if !errors.Is(err, ErrEncode) {
		t.Error("ErrBadBuffer should classify as an encode error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("output file was created despite the failed length check")
	}
}

func TestEncodeUnsupportedExtension(t *testing.T) {
	err := Encode(testBuffer(t), filepath.Join(t.TempDir(), "out.webp"), EncodeOptions{})
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode for webp output", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestDecodeNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestInspect(t *testing.T) {
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "probe.png")
	if err := Encode(buf, path, EncodeOptions{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Width != 2 || info.Height != 2 || info.Format != "png" {
		t.Errorf("info = %+v", info)
	}
	if info.FileSize <= 0 {
		t.Errorf("file size %d", info.FileSize)
	}
}

func TestBMPRoundTrip(t *testing.T) {
	// BMP has no alpha; use opaque pixels only.
	buf := testBuffer(t)
	path := filepath.Join(t.TempDir(), "out.bmp")

	if err := Encode(buf, path, EncodeOptions{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Width != 2 || back.Height != 2 {
		t.Errorf("dimensions %dx%d, want 2x2", back.Width, back.Height)
	}
}
