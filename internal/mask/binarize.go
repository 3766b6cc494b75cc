package mask

import (
	"image"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// pixelMask is a transient binary foreground buffer. It lives only for the
// duration of one extraction and is discarded once the outline is traced.
type pixelMask struct {
	w, h int
	fg   []bool
}

func (m *pixelMask) at(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.fg[y*m.w+x]
}

// binarize classifies each pixel as foreground or background. Two strategies
// are auto-selected: when the alpha channel is not flat, opaque pixels are
// foreground; otherwise the outermost pixel ring decides by brightness —
// a dark border means a bright shape, a bright border means a dark shape,
// so black-on-transparent, black-on-white and white-on-black inputs all work
// without configuration. Returns the mask and the strategy name for logging.
//
// Known limitation: a shape touching the image border skews the ring average
// and can invert the classification.
func binarize(img image.Image, opts Options) (*pixelMask, string) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &pixelMask{w: w, h: h, fg: make([]bool, w*h)}

	alpha := make([]uint8, w*h)
	luma := make([]float64, w*h)
	minA, maxA := uint8(255), uint8(0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			a8 := uint8(a >> 8)
			alpha[y*w+x] = a8
			if a8 < minA {
				minA = a8
			}
			if a8 > maxA {
				maxA = a8
			}
			// Un-premultiply so transparent pixels keep their color weight.
			if a > 0 {
				r = r * 0xffff / a
				g = g * 0xffff / a
				bl = bl * 0xffff / a
			}
			luma[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
		}
	}

	if maxA-minA > opts.AlphaRange {
		for i, a := range alpha {
			m.fg[i] = a > opts.AlphaThreshold
		}
		return m, "alpha"
	}

	// Alpha is flat: decide polarity from the border pixel ring.
	var border []float64
	for x := 0; x < w; x++ {
		border = append(border, luma[x], luma[(h-1)*w+x])
	}
	for y := 1; y < h-1; y++ {
		border = append(border, luma[y*w], luma[y*w+w-1])
	}
	mean := stat.Mean(border, nil)
	spread := stat.StdDev(border, nil)
	slog.Debug("mask: border ring sampled", "mean", mean, "stddev", spread)

	darkBorder := mean < opts.LumaThreshold
	for i, l := range luma {
		if darkBorder {
			m.fg[i] = l > opts.LumaThreshold
		} else {
			m.fg[i] = l < opts.LumaThreshold
		}
	}
	return m, "brightness"
}
