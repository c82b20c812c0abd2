package canny

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimensions is returned when a raster is smaller than 3x3 or its
	// pixel buffer length does not match width*height*4.
	ErrInvalidDimensions = errors.New("invalid raster dimensions")

	// ErrInvalidThreshold is returned when the low threshold exceeds the high
	// threshold, or either threshold is NaN.
	ErrInvalidThreshold = errors.New("invalid threshold")
)

// MinDimension is the smallest width or height that has an interior pixel.
const MinDimension = 3

func validateRaster(src *ColorRaster) error {
	if src == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidDimensions)
	}
	if src.Width < MinDimension || src.Height < MinDimension {
		return fmt.Errorf("%w: %dx%d, width and height must be at least %d",
			ErrInvalidDimensions, src.Width, src.Height, MinDimension)
	}
	if src.Width > math.MaxInt/4/src.Height {
		return fmt.Errorf("%w: %dx%d is too large", ErrInvalidDimensions, src.Width, src.Height)
	}
	if want := src.Width * src.Height * 4; len(src.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes of pixel data, got %d",
			ErrInvalidDimensions, src.Width, src.Height, want, len(src.Pix))
	}
	return nil
}

func validateThresholds(low, high float64) error {
	if math.IsNaN(low) || math.IsNaN(high) {
		return fmt.Errorf("%w: low=%v high=%v, thresholds must be numbers", ErrInvalidThreshold, low, high)
	}
	if low > high {
		return fmt.Errorf("%w: low=%v is greater than high=%v", ErrInvalidThreshold, low, high)
	}
	return nil
}
