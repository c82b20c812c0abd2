package imaging

import (
	"math"

	"github.com/ironsheep/render-edges-mcp/internal/canny"
)

// EdgeStats summarises an edge raster.
type EdgeStats struct {
	EdgePixels  int     `json:"edge_pixels"`
	TotalPixels int     `json:"total_pixels"`
	Density     float64 `json:"density"` // edge pixels / total pixels, rounded to 4 places
	Bounds      *Region `json:"bounds,omitempty"`

	// Segments is the number of separate 8-connected outlines. Largest lists
	// up to maxReportedSegments of them, biggest first.
	Segments int           `json:"segments"`
	Largest  []EdgeSegment `json:"largest_segments,omitempty"`
}

const maxReportedSegments = 5

// MeasureEdges counts edge pixels and finds the smallest region containing
// all of them. Bounds is nil when there are no edges.
func MeasureEdges(edges *canny.ColorRaster) *EdgeStats {
	w, h := edges.Width, edges.Height
	stats := &EdgeStats{TotalPixels: w * h}

	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[(y*w+x)*4] != canny.Strong {
				continue
			}
			stats.EdgePixels++
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}

	if stats.TotalPixels > 0 {
		stats.Density = math.Round(float64(stats.EdgePixels)/float64(stats.TotalPixels)*10000) / 10000
	}
	if stats.EdgePixels > 0 {
		stats.Bounds = &Region{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}

		segments := FindSegments(edges, 1)
		stats.Segments = len(segments)
		stats.Largest = segments[:min(len(segments), maxReportedSegments)]
	}
	return stats
}
