package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/render-edges-mcp/internal/canny"
)

// ToRaster copies any image into a canny.ColorRaster.
//
// The image is converted to non-premultiplied RGBA with its origin moved to
// (0,0), so pixel (x, y) of the raster is pixel (Min.X+x, Min.Y+y) of img.
func ToRaster(img image.Image) *canny.ColorRaster {
	nrgba := imaging.Clone(img)
	return &canny.ColorRaster{
		Width:  nrgba.Rect.Dx(),
		Height: nrgba.Rect.Dy(),
		Pix:    nrgba.Pix,
	}
}

// FromRaster wraps a raster as an *image.NRGBA without copying.
func FromRaster(r *canny.ColorRaster) *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}
