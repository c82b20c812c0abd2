package canny

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// ColorRaster is an RGBA pixel buffer with 8 bits per channel.
//
// Pixels are stored row-major without padding, four bytes per pixel in the
// order R, G, B, A. A valid raster has len(Pix) == Width*Height*4.
type ColorRaster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewColorRaster allocates a zeroed raster of the given size.
func NewColorRaster(width, height int) *ColorRaster {
	return &ColorRaster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// GrayRaster is a single-channel luminance buffer with values in [0,255].
type GrayRaster struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the value at (x, y).
func (g *GrayRaster) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

func newGrayRaster(width, height int) *GrayRaster {
	return &GrayRaster{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// GradientField holds per-pixel Sobel gradient magnitude and direction.
//
// Magnitude is not limited to the 8-bit range. Direction is in radians,
// within (-π, π].
type GradientField struct {
	Width     int
	Height    int
	Magnitude []float64
	Direction []float64
}

// SuppressedField holds gradient magnitudes that survived non-maximum
// suppression. Every other pixel is 0.
type SuppressedField struct {
	Width  int
	Height int
	Values []float64
}

// Classification values.
const (
	None   uint8 = 0
	Weak   uint8 = 75
	Strong uint8 = 255
)

// Classification holds the hysteresis class of each pixel: None, Weak or
// Strong after classification, and only None or Strong after linking.
type Classification struct {
	Width  int
	Height int
	Pix    []uint8
}

// Count returns the number of pixels with class v.
func (c *Classification) Count(v uint8) int {
	n := 0
	for _, p := range c.Pix {
		if p == v {
			n++
		}
	}
	return n
}

// forRows calls fn over the row range [0, height), either once or split into
// contiguous chunks running on separate goroutines.
func forRows(height int, concurrent bool, fn func(start, end int)) {
	if concurrent {
		parallel.Line(height, fn)
		return
	}
	fn(0, height)
}

// interiorRows clips a row chunk to rows that are at least margin away from
// the top and bottom edges.
func interiorRows(start, end, height, margin int) (int, int) {
	return max(start, margin), min(end, height-margin)
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func round8(v float64) uint8 {
	return clampUint8(math.Round(v))
}
