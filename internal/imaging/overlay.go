package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/render-edges-mcp/internal/canny"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultOverlayColor is the edge colour used when none is given.
const DefaultOverlayColor = "#FF0000"

// OverlayResult contains the source image with detected edges painted on it.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Color       string `json:"color"`
	EdgePixels  int    `json:"edge_pixels"`
}

// parseEdgeColor parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func parseEdgeColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RGB or #RRGGBB", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// PaintEdges composites edge pixels onto background in the given colour.
//
// edges must have the same size as background. opacity is clamped to [0,1].
func PaintEdges(background image.Image, edges *canny.ColorRaster, edgeColor color.NRGBA, opacity float64) (*image.NRGBA, error) {
	b := background.Bounds()
	if b.Dx() != edges.Width || b.Dy() != edges.Height {
		return nil, fmt.Errorf("edge map %dx%d does not match image %dx%d",
			edges.Width, edges.Height, b.Dx(), b.Dy())
	}

	layer := image.NewNRGBA(image.Rect(0, 0, edges.Width, edges.Height))
	for i := 0; i < len(edges.Pix); i += 4 {
		if edges.Pix[i] == canny.Strong {
			layer.Pix[i], layer.Pix[i+1], layer.Pix[i+2], layer.Pix[i+3] =
				edgeColor.R, edgeColor.G, edgeColor.B, edgeColor.A
		}
	}

	opacity = max(0, min(1, opacity))
	return imaging.Overlay(background, layer, b.Min, opacity), nil
}

// EdgeOverlay detects edges and paints them over the (cropped, scaled) source
// image, which makes it easy to check detected outlines against the render.
func EdgeOverlay(img image.Image, opts EdgeOptions, colorHex string, opacity float64) (*OverlayResult, error) {
	if colorHex == "" {
		colorHex = DefaultOverlayColor
	}
	edgeColor, err := parseEdgeColor(colorHex)
	if err != nil {
		return nil, err
	}

	prepared, err := PrepareInput(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}
	stages, err := detectPrepared(prepared, opts)
	if err != nil {
		return nil, err
	}

	painted, err := PaintEdges(prepared, stages.Edges, edgeColor, opacity)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNGBase64(painted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	return &OverlayResult{
		Width:       painted.Rect.Dx(),
		Height:      painted.Rect.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Color:       colorHex,
		EdgePixels:  stages.Linked.Count(canny.Strong),
	}, nil
}
