package reverb

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// Height of each channel strip in the waveform image.
const waveChannelHeight = 256

// SaveWaveformPNG renders the buffer as a 16-bit PNG waveform: one column
// per frame, left channel in the top strip, right in the bottom,
// amplitudes scaled to the buffer peak. Lossless PNG, like the volume
// slice output this replaces.
func SaveWaveformPNG(buf StereoBuffer, path string) error {
	frames := buf.Frames()
	if frames == 0 {
		return fmt.Errorf("cannot render an empty buffer")
	}
	scale := 1.0
	if p := buf.Peak(); p > 0 {
		scale = 1 / p
	}

	img := image.NewNRGBA64(image.Rect(0, 0, frames, 2*waveChannelHeight))
	const pxBytes = 8 // 4 channels * 2 bytes/channel

	// Opaque black background.
	for p := 0; p < len(img.Pix); p += pxBytes {
		img.Pix[p+6] = 0xFF
		img.Pix[p+7] = 0xFF
	}

	const mid = waveChannelHeight / 2
	for i := 0; i < frames; i++ {
		l, r := buf.At(i)
		drawColumn(img, i, mid, l*scale)
		drawColumn(img, i, waveChannelHeight+mid, r*scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// drawColumn fills the span between the strip midline and the scaled
// amplitude (positive up) with white samples.
func drawColumn(img *image.NRGBA64, x, mid int, v Real) {
	span := int(math.Round(v * Real(waveChannelHeight/2-1)))
	y0, y1 := mid-span, mid
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		p := y*img.Stride + x*8
		for k := 0; k < 6; k++ {
			img.Pix[p+k] = 0xFF
		}
	}
}
