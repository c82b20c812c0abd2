package canny

import "math"

var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// gradientMargin is the distance from the edge of the raster inside which the
// gradient is left at zero. Smooth leaves a one-pixel border unwritten, so a
// Sobel window is only fully backed by smoothed data two pixels in.
const gradientMargin = 2

// Gradient applies the Sobel operators to a smoothed raster.
//
// For each pixel whose 3x3 window lies entirely on smoothed (interior) data:
//
//	magnitude = sqrt(Gx² + Gy²)
//	direction = atan2(Gy, Gx)
//
// All other pixels, including the border, get magnitude 0 and direction 0.
func Gradient(src *GrayRaster) *GradientField {
	return gradient(src, false)
}

func gradient(src *GrayRaster, concurrent bool) *GradientField {
	w, h := src.Width, src.Height
	dst := &GradientField{
		Width:     w,
		Height:    h,
		Magnitude: make([]float64, w*h),
		Direction: make([]float64, w*h),
	}

	forRows(h, concurrent, func(start, end int) {
		y0, y1 := interiorRows(start, end, h, gradientMargin)
		for y := y0; y < y1; y++ {
			for x := gradientMargin; x < w-gradientMargin; x++ {
				var sumX, sumY int
				for ky := -1; ky <= 1; ky++ {
					row := (y + ky) * w
					for kx := -1; kx <= 1; kx++ {
						v := int(src.Pix[row+x+kx])
						sumX += v * sobelX[ky+1][kx+1]
						sumY += v * sobelY[ky+1][kx+1]
					}
				}
				gx, gy := float64(sumX), float64(sumY)
				i := y*w + x
				dst.Magnitude[i] = math.Sqrt(gx*gx + gy*gy)
				dst.Direction[i] = math.Atan2(gy, gx)
			}
		}
	})
	return dst
}
