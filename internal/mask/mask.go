// Package mask extracts a closed, normalized polygon from an uploaded raster
// image. The pipeline is decode → downscale → binarize → boundary trace →
// simplify → normalize, entirely offline and deterministic: the same input
// bytes and options always produce the same shape.
package mask

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	// Stdlib decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extra decoders, registered the same way.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"

	"maquette/pkg/geometry"
)

// ErrNoShape is returned when a decodable image yields no usable shape:
// nothing classified as foreground, a contour too short to be a region, or a
// simplified outline below the minimum vertex count. Callers surface it as a
// generic "could not extract shape" condition; partial recovery is not
// attempted.
var ErrNoShape = errors.New("mask: no usable shape found")

// Shape is the pipeline output: a closed polygon in normalized [0,1]×[0,1]
// space plus the source image's width/height ratio. Immutable once produced.
type Shape struct {
	Points []geometry.Point2D
	Aspect float64
}

// Options configures mask extraction.
type Options struct {
	MaxDimension      int     // Longest image side after downscaling
	SimplifyTolerance float64 // Douglas-Peucker tolerance in downscaled pixels
	AlphaThreshold    uint8   // Alpha above this is opaque (alpha mode)
	AlphaRange        uint8   // Minimum alpha spread for alpha mode to engage
	LumaThreshold     float64 // Brightness split point (brightness mode)
}

// DefaultOptions returns sensible defaults for extraction.
func DefaultOptions() Options {
	return Options{
		MaxDimension:      150, // Bounds tracing cost independent of input size
		SimplifyTolerance: 0.8,
		AlphaThreshold:    128,
		AlphaRange:        16,
		LumaThreshold:     128,
	}
}

// Extract runs the pipeline with default options.
func Extract(r io.Reader) (*Shape, error) {
	return ExtractWithOptions(r, DefaultOptions())
}

// ExtractWithOptions decodes an image and extracts its normalized outline.
// A broken image returns the wrapped decode error; a readable image with no
// usable shape returns ErrNoShape.
func ExtractWithOptions(r io.Reader, opts Options) (*Shape, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("mask: decode image: %w", err)
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return nil, ErrNoShape
	}

	img = downscale(img, opts.MaxDimension)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	pm, mode := binarize(img, opts)
	outline := traceBoundary(pm)
	if len(outline) < 6 {
		slog.Debug("mask: contour too short",
			"format", format, "mode", mode, "points", len(outline))
		return nil, ErrNoShape
	}

	simplified := geometry.Simplify(outline, opts.SimplifyTolerance)
	if len(simplified) < 3 {
		return nil, ErrNoShape
	}

	normalized := make([]geometry.Point2D, len(simplified))
	for i, p := range simplified {
		normalized[i] = geometry.Point2D{
			X: p.X / float64(w),
			Y: p.Y / float64(h),
		}
	}
	normalized = geometry.CloseRing(normalized)
	if len(normalized) < 4 {
		return nil, ErrNoShape
	}

	slog.Debug("mask: shape extracted",
		"format", format, "mode", mode,
		"traced", len(outline), "vertices", len(normalized))

	return &Shape{
		Points: normalized,
		Aspect: float64(origW) / float64(origH),
	}, nil
}

// downscale shrinks the image so its longer side does not exceed maxDim,
// preserving aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxDim <= 0 || longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
