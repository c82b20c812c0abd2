package imaging

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/render-edges-mcp/internal/canny"
)

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "edges.png")

	src := canny.Expand(&canny.Classification{Width: 3, Height: 3, Pix: []uint8{0, 0, 0, 0, 255, 0, 0, 0, 0}})
	if err := Export(FromRaster(src), path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	cache := NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("reloading export failed: %v", err)
	}
	r, _, _, _ := img.At(1, 1).RGBA()
	if r>>8 != 255 {
		t.Errorf("center pixel: got %d, want 255", r>>8)
	}
}

func TestExport_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.unknown")
	img := createInMemoryImage(3, 3, color.White)

	if err := Export(img, path); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("nothing should be written for an unsupported extension")
	}
}

func TestRasterRoundTrip(t *testing.T) {
	img := createPatternImage(6, 4)

	r := ToRaster(img)
	if r.Width != 6 || r.Height != 4 || len(r.Pix) != 6*4*4 {
		t.Fatalf("raster: %dx%d with %d bytes", r.Width, r.Height, len(r.Pix))
	}
	// Top-left is red.
	if r.Pix[0] != 255 || r.Pix[1] != 0 || r.Pix[2] != 0 || r.Pix[3] != 255 {
		t.Errorf("pixel 0: got %v", r.Pix[:4])
	}

	back := FromRaster(r)
	if got := back.NRGBAAt(5, 3); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("bottom-right: got %v, want white", got)
	}
}
