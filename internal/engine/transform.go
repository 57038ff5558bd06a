package engine

// clampByte folds a float channel value into 0-255 before the byte cast.
// Clamping both ends in float space keeps negative multipliers from wrapping.
func clampByte(v float32) uint8 {
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

// AdjustBrightness scales R, G and B by amount, clamping each channel to
// 0-255. Alpha passes through. A fresh buffer is returned; the input is never
// written to. amount is not validated: values outside the usual 0-2 range
// just clamp harder, and a non-finite amount gives meaningless (but safe)
// channel values.
func AdjustBrightness(buf *PixelBuffer, amount float64) *PixelBuffer {
	am := float32(amount)
	out := buf.Clone()
	data := out.Data
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = clampByte(float32(data[i]) * am)
		data[i+1] = clampByte(float32(data[i+1]) * am)
		data[i+2] = clampByte(float32(data[i+2]) * am)
	}
	return out
}

// AdjustContrast stretches R, G and B away from (or toward) the fixed pivot
// 128 by amount. A channel sitting exactly at 128 never moves. Alpha passes
// through; the input buffer is untouched.
func AdjustContrast(buf *PixelBuffer, amount float64) *PixelBuffer {
	const center = 128.0
	am := float32(amount)
	out := buf.Clone()
	data := out.Data
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = clampByte((float32(data[i])-center)*am + center)
		data[i+1] = clampByte((float32(data[i+1])-center)*am + center)
		data[i+2] = clampByte((float32(data[i+2])-center)*am + center)
	}
	return out
}

// Grayscale replaces R, G and B with the truncated BT.601 luma of the pixel,
// the same weighting Analyze uses for its luminosity histogram. Alpha passes
// through; the input buffer is untouched.
func Grayscale(buf *PixelBuffer) *PixelBuffer {
	out := buf.Clone()
	data := out.Data
	for i := 0; i+3 < len(data); i += 4 {
		gray := uint8(luma(data[i], data[i+1], data[i+2]))
		data[i] = gray
		data[i+1] = gray
		data[i+2] = gray
	}
	return out
}
