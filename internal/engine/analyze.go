package engine

import (
	"encoding/json"
	"math"
)

// HistogramData holds per-channel value counts, indexed by channel value
// 0-255. Only pixels with non-zero alpha are counted, so the sum of any one
// channel equals the number of visible pixels.
type HistogramData struct {
	Red        [256]uint32 `json:"red"`
	Green      [256]uint32 `json:"green"`
	Blue       [256]uint32 `json:"blue"`
	Luminosity [256]uint32 `json:"luminosity"`
}

// ColorSample is one RGB swatch with its lowercase #rrggbb form.
type ColorSample struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// AnalysisResult aggregates everything Analyze derives from one buffer.
type AnalysisResult struct {
	Histogram         HistogramData `json:"histogram"`
	DominantColors    []ColorSample `json:"dominant_colors"`
	AverageBrightness float64       `json:"average_brightness"`
	Contrast          float64       `json:"contrast"`
}

// MarshalJSON writes non-finite brightness/contrast as null instead of
// failing the whole encode. A zero-area buffer legitimately produces NaN for
// both statistics, and the wire format has no way to say NaN.
func (r *AnalysisResult) MarshalJSON() ([]byte, error) {
	type plain AnalysisResult
	aux := struct {
		*plain
		AverageBrightness any `json:"average_brightness"`
		Contrast          any `json:"contrast"`
	}{plain: (*plain)(r)}
	if isFinite(r.AverageBrightness) {
		aux.AverageBrightness = r.AverageBrightness
	}
	if isFinite(r.Contrast) {
		aux.Contrast = r.Contrast
	}
	return json.Marshal(aux)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BT.601 luma weights, shared by Analyze and Grayscale.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// luma is the truncated BT.601 weighted sum of one pixel. Single precision
// on purpose: the float32 mapping sends every gray level at or below itself
// and is stable under repetition, which keeps Grayscale idempotent; float64
// drifts a handful of gray levels down by one per pass.
func luma(r, g, b byte) int {
	return int(lumaR*float32(r) + lumaG*float32(g) + lumaB*float32(b))
}

// Analyze computes the channel histograms, average brightness and contrast of
// a buffer. Fully transparent pixels are skipped; a trailing partial pixel
// group (buffer length not a multiple of 4) is ignored.
//
// Two quirks are kept on purpose:
//   - brightness and contrast divide by the total pixel count, not the opaque
//     count, so transparent pixels pull the average toward zero;
//   - a zero-area buffer divides by zero and yields NaN for both statistics.
//
// The dominant-color list is a fixed mid-gray placeholder. See the palette
// package for real extraction.
func Analyze(buf *PixelBuffer) *AnalysisResult {
	res := &AnalysisResult{}
	data := buf.Data

	for i := 0; i+3 < len(data); i += 4 {
		r, g, b, a := data[i], data[i+1], data[i+2], data[i+3]
		if a == 0 {
			continue
		}
		res.Histogram.Red[r]++
		res.Histogram.Green[g]++
		res.Histogram.Blue[b]++

		lum := luma(r, g, b)
		if lum > 255 {
			lum = 255
		}
		res.Histogram.Luminosity[lum]++
	}

	totalPixels := float64(buf.Width) * float64(buf.Height)

	var weighted float64
	for i, count := range res.Histogram.Luminosity {
		weighted += float64(i) * float64(count)
	}
	res.AverageBrightness = weighted / totalPixels / 255.0

	mean := res.AverageBrightness * 255.0
	var variance float64
	for i, count := range res.Histogram.Luminosity {
		diff := float64(i) - mean
		variance += diff * diff * float64(count)
	}
	res.Contrast = math.Sqrt(variance/totalPixels) / 255.0

	res.DominantColors = []ColorSample{{R: 128, G: 128, B: 128, Hex: "#808080"}}
	return res
}
