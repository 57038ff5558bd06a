// Package palette extracts representative colors from a pixel buffer. This is
// the real implementation of the dominant-colors feature; the engine's
// analysis result still carries its historical fixed-gray placeholder, so
// existing callers keep seeing the output they always have.
package palette

import (
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/darrenk196/image-analyzer/internal/engine"
)

// maxSample bounds the number of pixels inspected; larger buffers are
// downsampled first.
const maxSample = 64

// Lab distance below which two buckets count as the same color.
const mergeThreshold = 0.12

type bucket struct {
	count            uint32
	sumR, sumG, sumB float64
}

// Extract returns up to n colors ordered by how much of the image they cover.
// Fully transparent pixels are ignored. A zero-area or fully transparent
// buffer yields an empty slice, as does one whose data length does not match
// its declared dimensions.
func Extract(buf *engine.PixelBuffer, n int) []engine.ColorSample {
	if n <= 0 || buf.Width == 0 || buf.Height == 0 {
		return nil
	}
	if err := buf.Validate(); err != nil {
		return nil
	}

	pix, stride, w, h := samplePixels(buf)

	// Quantize to a 4-bit-per-channel cube and average within each cell.
	buckets := make(map[uint16]*bucket)
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			r, g, b, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			if a == 0 {
				continue
			}
			key := uint16(r>>4)<<8 | uint16(g>>4)<<4 | uint16(b>>4)
			cell := buckets[key]
			if cell == nil {
				cell = &bucket{}
				buckets[key] = cell
			}
			cell.count++
			cell.sumR += float64(r)
			cell.sumG += float64(g)
			cell.sumB += float64(b)
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	type candidate struct {
		color colorful.Color
		count uint32
	}
	ranked := make([]candidate, 0, len(buckets))
	for _, cell := range buckets {
		total := float64(cell.count)
		ranked = append(ranked, candidate{
			color: colorful.Color{
				R: cell.sumR / total / 255,
				G: cell.sumG / total / 255,
				B: cell.sumB / total / 255,
			},
			count: cell.count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].color.Hex() < ranked[j].color.Hex()
	})

	// Greedy merge: fold each candidate into the first kept color it is
	// perceptually close to, so near-identical shades don't crowd out the rest
	// of the palette.
	kept := make([]candidate, 0, n)
	for _, c := range ranked {
		merged := false
		for k := range kept {
			if kept[k].color.DistanceLab(c.color) < mergeThreshold {
				kept[k].count += c.count
				merged = true
				break
			}
		}
		if !merged && len(kept) < n {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].count > kept[j].count })

	out := make([]engine.ColorSample, len(kept))
	for i, c := range kept {
		r, g, b := c.color.Clamped().RGB255()
		out[i] = engine.ColorSample{R: r, G: g, B: b, Hex: c.color.Clamped().Hex()}
	}
	return out
}

// samplePixels returns the pixel bytes to scan, downsampling through
// nfnt/resize when the buffer exceeds maxSample in either dimension.
func samplePixels(buf *engine.PixelBuffer) (pix []byte, stride, w, h int) {
	w, h = int(buf.Width), int(buf.Height)
	if w <= maxSample && h <= maxSample {
		return buf.Data, w * 4, w, h
	}

	src := &image.NRGBA{
		Pix:    buf.Data,
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	small := resize.Thumbnail(maxSample, maxSample, src, resize.Bilinear)

	nrgba, ok := small.(*image.NRGBA)
	if !ok {
		b := small.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				nrgba.Set(x, y, small.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}
	b := nrgba.Bounds()
	return nrgba.Pix, nrgba.Stride, b.Dx(), b.Dy()
}
