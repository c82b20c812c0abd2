package imaging

import (
	"sort"

	"github.com/ironsheep/render-edges-mcp/internal/canny"
)

// EdgeSegment is one 8-connected group of edge pixels, usually a single
// outline in the render.
type EdgeSegment struct {
	Pixels int    `json:"pixels"`
	Bounds Region `json:"bounds"`
}

// FindSegments groups the edge pixels of a raster into 8-connected segments,
// dropping those with fewer than minPixels pixels. Segments are ordered
// largest first.
func FindSegments(edges *canny.ColorRaster, minPixels int) []EdgeSegment {
	w, h := edges.Width, edges.Height
	visited := make([]bool, w*h)
	segments := make([]EdgeSegment, 0)

	for i := 0; i < w*h; i++ {
		if visited[i] || edges.Pix[i*4] != canny.Strong {
			continue
		}
		seg := floodSegment(edges, visited, i)
		if seg.Pixels >= minPixels {
			segments = append(segments, seg)
		}
	}

	sort.SliceStable(segments, func(a, b int) bool {
		return segments[a].Pixels > segments[b].Pixels
	})
	return segments
}

// floodSegment marks and measures the segment containing pixel start.
// Iterative so long outlines cannot overflow the stack.
func floodSegment(edges *canny.ColorRaster, visited []bool, start int) EdgeSegment {
	w, h := edges.Width, edges.Height
	sx, sy := start%w, start/w
	seg := EdgeSegment{Bounds: Region{X1: sx, Y1: sy, X2: sx + 1, Y2: sy + 1}}

	visited[start] = true
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := i%w, i/w
		seg.Pixels++
		seg.Bounds.X1, seg.Bounds.Y1 = min(seg.Bounds.X1, x), min(seg.Bounds.Y1, y)
		seg.Bounds.X2, seg.Bounds.Y2 = max(seg.Bounds.X2, x+1), max(seg.Bounds.Y2, y+1)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if visited[n] || edges.Pix[n*4] != canny.Strong {
					continue
				}
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return seg
}
