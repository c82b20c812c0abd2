package canny

// gaussianKernel is a 3x3 approximation of a Gaussian, normalised by
// gaussianKernelSum.
var gaussianKernel = [3][3]int{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const gaussianKernelSum = 16

// Smooth blurs a grayscale raster with a fixed 3x3 Gaussian kernel.
//
// Only interior pixels are written. The outermost rows and columns of the
// result are 0, not copied from the input. Rasters narrower or shorter than
// 3 pixels produce an all-zero result.
func Smooth(src *GrayRaster) *GrayRaster {
	return smooth(src, false)
}

func smooth(src *GrayRaster, concurrent bool) *GrayRaster {
	w, h := src.Width, src.Height
	dst := newGrayRaster(w, h)

	forRows(h, concurrent, func(start, end int) {
		y0, y1 := interiorRows(start, end, h, 1)
		for y := y0; y < y1; y++ {
			for x := 1; x < w-1; x++ {
				sum := 0
				for ky := -1; ky <= 1; ky++ {
					row := (y + ky) * w
					for kx := -1; kx <= 1; kx++ {
						sum += int(src.Pix[row+x+kx]) * gaussianKernel[ky+1][kx+1]
					}
				}
				dst.Pix[y*w+x] = round8(float64(sum) / gaussianKernelSum)
			}
		}
	})
	return dst
}
