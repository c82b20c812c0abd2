package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/ironsheep/render-edges-mcp/internal/canny"
)

// EdgeOptions controls EdgeDetect.
type EdgeOptions struct {
	// ThresholdLow and ThresholdHigh are hysteresis thresholds as fractions
	// of full intensity (0-1). ThresholdLow must not exceed ThresholdHigh.
	ThresholdLow  float64
	ThresholdHigh float64

	// Region restricts detection to part of the image. Nil means the whole
	// image.
	Region *Region

	// Scale resizes the (cropped) input before detection. 0 or 1 means no
	// resize.
	Scale float64

	// PresmoothSigma applies an extra Gaussian blur with this radius before
	// the pipeline's own 3x3 smoothing. Useful for noisy renders. 0 disables.
	PresmoothSigma float64

	// Parallel runs the row-independent pipeline stages on multiple
	// goroutines.
	Parallel bool
}

// DefaultEdgeOptions returns the reference thresholds with no crop, scale or
// pre-smoothing.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		ThresholdLow:  canny.DefaultLow,
		ThresholdHigh: canny.DefaultHigh,
	}
}

// EdgeDetectResult contains an edge-detected image encoded as base64 PNG.
//
// White pixels (255) are edges and black pixels (0) are not.
type EdgeDetectResult struct {
	// Width of the output image in pixels (the prepared input's width).
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the edge image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png" for edge detection results.
	MimeType string `json:"mime_type"`

	// Stats describes how many edges were found and where.
	Stats *EdgeStats `json:"stats"`

	// OutputPath is set when the edge map was also written to disk.
	OutputPath string `json:"output_path,omitempty"`
}

// DetectEdges runs the Canny pipeline on an image and returns the edge raster
// along with every intermediate stage.
//
// The input is first cropped, scaled and pre-smoothed according to opts, then
// converted to an RGBA raster. Errors from the pipeline wrap
// canny.ErrInvalidDimensions or canny.ErrInvalidThreshold.
func DetectEdges(img image.Image, opts EdgeOptions) (*canny.Stages, error) {
	prepared, err := PrepareInput(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}
	return detectPrepared(prepared, opts)
}

// detectPrepared runs the pipeline on an already cropped and scaled image.
func detectPrepared(prepared image.Image, opts EdgeOptions) (*canny.Stages, error) {
	if opts.PresmoothSigma > 0 {
		prepared = blur.Gaussian(prepared, opts.PresmoothSigma)
	}

	return canny.Run(ToRaster(prepared), canny.Options{
		Low:      opts.ThresholdLow,
		High:     opts.ThresholdHigh,
		Parallel: opts.Parallel,
	})
}

// EdgeDetect performs Canny edge detection on an image.
//
// This function identifies edges (boundaries between regions) in an image,
// producing a binary output where edges are white and non-edges are black.
//
// # Algorithm
//
//  1. Grayscale conversion: 0.2989*R + 0.587*G + 0.114*B
//  2. Gaussian blur: fixed 3x3 kernel, border left black
//  3. Gradient computation: Sobel operators, magnitude and direction
//  4. Non-maximum suppression along the gradient direction
//  5. Hysteresis: pixels >= high*255 are strong, pixels between low*255 and
//     high*255 are weak and kept only when next to a strong pixel
//
// # Threshold Selection
//
// Recommended starting points:
//   - Clean renders: low=0.1, high=0.3 (the defaults)
//   - Noisy renders: low=0.2, high=0.5 with PresmoothSigma=1.5
func EdgeDetect(img image.Image, opts EdgeOptions) (*EdgeDetectResult, error) {
	stages, err := DetectEdges(img, opts)
	if err != nil {
		return nil, err
	}
	return NewEdgeDetectResult(stages.Edges)
}

// NewEdgeDetectResult encodes an edge raster and measures it.
func NewEdgeDetectResult(edges *canny.ColorRaster) (*EdgeDetectResult, error) {
	encoded, err := encodePNGBase64(FromRaster(edges))
	if err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	return &EdgeDetectResult{
		Width:       edges.Width,
		Height:      edges.Height,
		ImageBase64: encoded,
		MimeType:    "image/png",
		Stats:       MeasureEdges(edges),
	}, nil
}
