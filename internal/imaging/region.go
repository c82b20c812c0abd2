package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the inclusive top-left corner and (X2, Y2) the exclusive
// bottom-right corner.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// PrepareInput crops img to region (if non-nil) and rescales the result by
// scale. A scale of 0 or 1 leaves the size unchanged.
//
// Cropped or resized results have their origin at (0,0). With neither, img is
// returned as is.
func PrepareInput(img image.Image, region *Region, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	out := img

	if region != nil {
		x1, y1, x2, y2 := region.X1, region.Y1, region.X2, region.Y2
		if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if x1 >= x2 || y1 >= y2 {
			return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
		}
		out = imaging.Crop(img, region.Rect())
	}

	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %v: must not be negative", scale)
	}
	if scale != 0 && scale != 1 {
		b := out.Bounds()
		w := int(float64(b.Dx()) * scale)
		h := int(float64(b.Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("scale %v reduces %dx%d to nothing", scale, b.Dx(), b.Dy())
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	return out, nil
}
