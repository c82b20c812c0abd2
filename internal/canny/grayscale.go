package canny

// Luminance weights applied to R, G and B.
const (
	lumaR = 0.2989
	lumaG = 0.587
	lumaB = 0.114
)

// Grayscale reduces an RGBA raster to luminance. Alpha is ignored.
func Grayscale(src *ColorRaster) *GrayRaster {
	return grayscale(src, false)
}

func grayscale(src *ColorRaster, concurrent bool) *GrayRaster {
	w := src.Width
	dst := newGrayRaster(w, src.Height)

	forRows(src.Height, concurrent, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				p := src.Pix[i*4 : i*4+4 : i*4+4]
				lum := lumaR*float64(p[0]) + lumaG*float64(p[1]) + lumaB*float64(p[2])
				dst.Pix[i] = round8(lum)
			}
		}
	})
	return dst
}
