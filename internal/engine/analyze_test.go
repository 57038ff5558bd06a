package engine

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

// bufferOf builds a PixelBuffer from whole pixels given as {R,G,B,A} groups.
func bufferOf(t *testing.T, width, height uint32, pixels ...[4]byte) *PixelBuffer {
	t.Helper()
	buf := NewPixelBuffer(width, height)
	if len(pixels) != int(width)*int(height) {
		t.Fatalf("bufferOf: %d pixels for %dx%d", len(pixels), width, height)
	}
	for i, p := range pixels {
		copy(buf.Data[i*4:], p[:])
	}
	return buf
}

func sumHistogram(h [256]uint32) uint64 {
	var total uint64
	for _, c := range h {
		total += uint64(c)
	}
	return total
}

func TestAnalyzeKnownPixels(t *testing.T) {
	buf := bufferOf(t, 2, 2,
		[4]byte{255, 0, 0, 255},
		[4]byte{0, 255, 0, 255},
		[4]byte{0, 0, 255, 255},
		[4]byte{255, 255, 255, 255},
	)

	res := Analyze(buf)

	// Truncated BT.601 lumas of the four pixels.
	for _, lum := range []int{76, 149, 29, 255} {
		if got := res.Histogram.Luminosity[lum]; got != 1 {
			t.Errorf("luminosity[%d] = %d, want 1", lum, got)
		}
	}

	wantBrightness := float64(76+149+29+255) / 4 / 255
	if math.Abs(res.AverageBrightness-wantBrightness) > 1e-9 {
		t.Errorf("average brightness = %.6f, want %.6f", res.AverageBrightness, wantBrightness)
	}
	if res.Contrast <= 0 {
		t.Errorf("contrast = %f, want > 0 for a mixed image", res.Contrast)
	}

	// Red channel: two pixels at 255, two at 0.
	if res.Histogram.Red[255] != 2 || res.Histogram.Red[0] != 2 {
		t.Errorf("red histogram: [255]=%d [0]=%d, want 2 and 2",
			res.Histogram.Red[255], res.Histogram.Red[0])
	}

	t.Logf("brightness=%.4f contrast=%.4f", res.AverageBrightness, res.Contrast)
}

func TestAnalyzeHistogramSums(t *testing.T) {
	buf := bufferOf(t, 3, 1,
		[4]byte{10, 20, 30, 255},
		[4]byte{40, 50, 60, 0}, // fully transparent, excluded everywhere
		[4]byte{70, 80, 90, 128},
	)

	res := Analyze(buf)

	const opaque = 2
	for name, h := range map[string][256]uint32{
		"red":        res.Histogram.Red,
		"green":      res.Histogram.Green,
		"blue":       res.Histogram.Blue,
		"luminosity": res.Histogram.Luminosity,
	} {
		if got := sumHistogram(h); got != opaque {
			t.Errorf("sum(%s) = %d, want %d", name, got, opaque)
		}
	}
}

// Transparent pixels are excluded from the luminosity sum but still appear in
// the denominator, so they dilute the average. That asymmetry is part of the
// contract.
func TestAnalyzeTransparentPixelsDiluteBrightness(t *testing.T) {
	opaque := bufferOf(t, 1, 1, [4]byte{200, 200, 200, 255})
	half := bufferOf(t, 2, 1,
		[4]byte{200, 200, 200, 255},
		[4]byte{200, 200, 200, 0},
	)

	full := Analyze(opaque).AverageBrightness
	diluted := Analyze(half).AverageBrightness

	if math.Abs(diluted-full/2) > 1e-9 {
		t.Errorf("diluted brightness = %f, want half of %f", diluted, full)
	}
}

func TestAnalyzeZeroAreaYieldsNaN(t *testing.T) {
	res := Analyze(NewPixelBuffer(0, 0))
	if !math.IsNaN(res.AverageBrightness) {
		t.Errorf("average brightness = %f, want NaN for a zero-area buffer", res.AverageBrightness)
	}
	if !math.IsNaN(res.Contrast) {
		t.Errorf("contrast = %f, want NaN for a zero-area buffer", res.Contrast)
	}
}

func TestAnalysisResultMarshalsNaNAsNull(t *testing.T) {
	res := Analyze(NewPixelBuffer(0, 0))

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal with NaN statistics: %v", err)
	}
	if !bytes.Contains(out, []byte(`"average_brightness":null`)) {
		t.Errorf("average_brightness not null: %s", out)
	}
	if !bytes.Contains(out, []byte(`"contrast":null`)) {
		t.Errorf("contrast not null: %s", out)
	}
}

func TestAnalysisResultMarshalsFiniteNumbers(t *testing.T) {
	res := Analyze(bufferOf(t, 1, 1, [4]byte{255, 255, 255, 255}))

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(out, []byte(`"average_brightness":1`)) {
		t.Errorf("finite brightness mangled: %s", out)
	}
}

func TestAnalyzeIgnoresTrailingPartialGroup(t *testing.T) {
	buf := bufferOf(t, 1, 1, [4]byte{100, 100, 100, 255})
	buf.Data = append(buf.Data, 255, 255) // half a pixel

	res := Analyze(buf)
	if got := sumHistogram(res.Histogram.Red); got != 1 {
		t.Errorf("sum(red) = %d, want 1 after dropping partial group", got)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	buf := bufferOf(t, 2, 1,
		[4]byte{13, 57, 211, 255},
		[4]byte{250, 3, 77, 9},
	)
	first := Analyze(buf)
	second := Analyze(buf)
	if !reflect.DeepEqual(first, second) {
		t.Error("two analyses of the same buffer differ")
	}
}

func TestAnalyzeDominantColorsPlaceholder(t *testing.T) {
	res := Analyze(bufferOf(t, 1, 1, [4]byte{255, 0, 0, 255}))
	want := []ColorSample{{R: 128, G: 128, B: 128, Hex: "#808080"}}
	if !reflect.DeepEqual(res.DominantColors, want) {
		t.Errorf("dominant colors = %+v, want fixed placeholder %+v", res.DominantColors, want)
	}
}

func TestAnalyzeLuminosityClamp(t *testing.T) {
	// 255,255,255 sums to 254.999... with BT.601 weights; make sure a pixel
	// can never index past the last bin whatever rounding does.
	res := Analyze(bufferOf(t, 1, 1, [4]byte{255, 255, 255, 255}))
	if res.Histogram.Luminosity[255] != 1 {
		t.Errorf("white pixel not counted in luminosity[255]")
	}
}
