package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/ironsheep/render-edges-mcp/internal/canny"
	"github.com/lucasb-eyer/go-colorful"
)

// Stage names accepted by RenderStage.
const (
	StageGrayscale  = "grayscale"
	StageSmoothed   = "smoothed"
	StageMagnitude  = "magnitude"
	StageDirection  = "direction"
	StageSuppressed = "suppressed"
	StageClassified = "classified"
	StageEdges      = "edges"
)

// StageNames lists every stage RenderStage understands, in pipeline order.
var StageNames = []string{
	StageGrayscale,
	StageSmoothed,
	StageMagnitude,
	StageDirection,
	StageSuppressed,
	StageClassified,
	StageEdges,
}

// StageResult contains a visualisation of one intermediate pipeline buffer.
type StageResult struct {
	Stage       string  `json:"stage"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
	MaxValue    float64 `json:"max_value,omitempty"` // scale used for real-valued stages
}

// RenderStage turns one buffer of a pipeline run into an image.
//
//   - grayscale, smoothed: the 8-bit buffer as is
//   - magnitude, suppressed: scaled so the largest value is white
//   - direction: hue encodes the angle, brightness the magnitude
//   - classified: 0 / 75 / 255 before linking
//   - edges: the final binary raster
//
// The second return value is the scale used for real-valued stages.
func RenderStage(st *canny.Stages, stage string) (image.Image, float64, error) {
	switch stage {
	case StageGrayscale:
		return grayImage(st.Gray.Width, st.Gray.Height, st.Gray.Pix), 0, nil
	case StageSmoothed:
		return grayImage(st.Smoothed.Width, st.Smoothed.Height, st.Smoothed.Pix), 0, nil
	case StageMagnitude:
		img, peak := scaledImage(st.Gradient.Width, st.Gradient.Height, st.Gradient.Magnitude)
		return img, peak, nil
	case StageDirection:
		img, peak := directionImage(st.Gradient)
		return img, peak, nil
	case StageSuppressed:
		img, peak := scaledImage(st.Suppressed.Width, st.Suppressed.Height, st.Suppressed.Values)
		return img, peak, nil
	case StageClassified:
		return grayImage(st.Classified.Width, st.Classified.Height, st.Classified.Pix), 0, nil
	case StageEdges:
		return FromRaster(st.Edges), 0, nil
	default:
		return nil, 0, fmt.Errorf("unknown stage: %s", stage)
	}
}

// ValidateStage reports an error unless stage is one of StageNames.
func ValidateStage(stage string) error {
	if !slices.Contains(StageNames, stage) {
		return fmt.Errorf("unknown stage: %s (want one of %s)", stage, strings.Join(StageNames, ", "))
	}
	return nil
}

// EdgeStage runs the pipeline and returns the named stage as base64 PNG.
func EdgeStage(img image.Image, opts EdgeOptions, stage string) (*StageResult, error) {
	if err := ValidateStage(stage); err != nil {
		return nil, err
	}
	st, err := DetectEdges(img, opts)
	if err != nil {
		return nil, err
	}

	out, peak, err := RenderStage(st, stage)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stage image: %w", err)
	}

	return &StageResult{
		Stage:       stage,
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		MaxValue:    math.Round(peak*100) / 100,
	}, nil
}

func grayImage(w, h int, pix []uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

func scaledImage(w, h int, values []float64) (*image.Gray, float64) {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	if peak == 0 {
		return img, 0
	}
	for i, v := range values {
		img.Pix[i] = uint8(math.Round(v / peak * 255))
	}
	return img, peak
}

func directionImage(f *canny.GradientField) (*image.NRGBA, float64) {
	peak := 0.0
	for _, m := range f.Magnitude {
		peak = max(peak, m)
	}

	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, d := range f.Direction {
		v := 0.0
		if peak > 0 {
			v = f.Magnitude[i] / peak
		}
		hue := d * 180 / math.Pi
		if hue < 0 {
			hue += 360
		}
		r, g, b := colorful.Hsv(hue, 1, v).Clamped().RGB255()
		img.SetNRGBA(i%f.Width, i/f.Width, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return img, peak
}
