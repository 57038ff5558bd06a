package engine

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// FormatRGBA is the only pixel layout the engine understands: 4 bytes per
// pixel, R,G,B,A interleaved, row-major, no row padding.
const FormatRGBA = "rgba"

// PixelData is a flat RGBA byte buffer. On the wire it is a JSON array of
// unsigned 8-bit integers, matching what presentation layers send; a base64
// string is also accepted on decode for callers that prefer Go's default
// []byte encoding.
type PixelData []byte

// PixelBuffer is the intermediate representation passed between the codec,
// the engine and the presentation layer. Data holds interleaved R,G,B,A
// bytes (4 bytes per pixel, row-major order); len(Data) must equal
// Width*Height*4. A short or oversized buffer is a caller error, not a
// condition the engine recovers from.
type PixelBuffer struct {
	Width  uint32    `json:"width"`
	Height uint32    `json:"height"`
	Data   PixelData `json:"data"`
	Format string    `json:"format"`
}

// NewPixelBuffer allocates a zeroed buffer for the given dimensions.
func NewPixelBuffer(width, height uint32) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Data:   make(PixelData, int(width)*int(height)*4),
		Format: FormatRGBA,
	}
}

// Clone returns a deep copy. Transforms never touch their input, so callers
// only need this when they want to mutate a buffer they do not own.
func (b *PixelBuffer) Clone() *PixelBuffer {
	data := make(PixelData, len(b.Data))
	copy(data, b.Data)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Data: data, Format: b.Format}
}

// Validate reports whether the data length is consistent with the declared
// dimensions.
func (b *PixelBuffer) Validate() error {
	want := int(b.Width) * int(b.Height) * 4
	if len(b.Data) != want {
		return fmt.Errorf("pixel buffer: %d data bytes for %dx%d, want %d",
			len(b.Data), b.Width, b.Height, want)
	}
	return nil
}

// MarshalJSON encodes the buffer as a JSON array of integers 0-255.
func (d PixelData) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(d)*4+2)
	out = append(out, '[')
	for i, v := range d {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	out = append(out, ']')
	return out, nil
}

// UnmarshalJSON accepts either a JSON array of integers or a base64 string.
func (d *PixelData) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("pixel data: %w", err)
		}
		*d = raw
		return nil
	}
	var ints []uint16
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	raw := make(PixelData, len(ints))
	for i, v := range ints {
		if v > 255 {
			return fmt.Errorf("pixel data: value %d out of byte range at index %d", v, i)
		}
		raw[i] = byte(v)
	}
	*d = raw
	return nil
}
