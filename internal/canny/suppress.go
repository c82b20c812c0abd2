package canny

import "math"

// sector is a gradient direction quantized to one of four axes.
type sector int

const (
	sector0   sector = iota // compare (x-1,y) and (x+1,y)
	sector45                // compare (x-1,y-1) and (x+1,y+1)
	sector90                // compare (x,y-1) and (x,y+1)
	sector135               // compare (x+1,y-1) and (x-1,y+1)
)

// quantize maps a direction in radians onto a sector. The angle is folded into
// [0,180] degrees first; 180 and values just below it belong to sector0.
func quantize(direction float64) sector {
	deg := direction * 180 / math.Pi
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return sector0
	case deg < 67.5:
		return sector45
	case deg < 112.5:
		return sector90
	default:
		return sector135
	}
}

// sectorOffsets holds the (dx, dy) of one of the two neighbors along each
// sector; the other neighbor is the mirror image.
var sectorOffsets = [4][2]int{
	sector0:   {1, 0},
	sector45:  {1, 1},
	sector90:  {0, 1},
	sector135: {-1, 1},
}

// Suppress thins gradient ridges to one pixel.
//
// An interior pixel keeps its magnitude only when it is at least as large as
// both neighbors along its quantized gradient direction; otherwise it becomes
// 0. Border pixels are always 0.
func Suppress(f *GradientField) *SuppressedField {
	return suppress(f, false)
}

func suppress(f *GradientField, concurrent bool) *SuppressedField {
	w, h := f.Width, f.Height
	dst := &SuppressedField{Width: w, Height: h, Values: make([]float64, w*h)}

	forRows(h, concurrent, func(start, end int) {
		y0, y1 := interiorRows(start, end, h, 1)
		for y := y0; y < y1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				off := sectorOffsets[quantize(f.Direction[i])]
				dx, dy := off[0], off[1]

				mag := f.Magnitude[i]
				n1 := f.Magnitude[(y+dy)*w+x+dx]
				n2 := f.Magnitude[(y-dy)*w+x-dx]
				if mag >= n1 && mag >= n2 {
					dst.Values[i] = mag
				}
			}
		}
	})
	return dst
}
