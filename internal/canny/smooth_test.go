package canny

import "testing"

func TestSmooth_UniformInterior(t *testing.T) {
	src := newGrayUniform(6, 5, 200)
	out := Smooth(src)

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			border := x == 0 || y == 0 || x == out.Width-1 || y == out.Height-1
			got := out.At(x, y)
			if border && got != 0 {
				t.Errorf("border (%d,%d): got %d, want 0", x, y, got)
			}
			if !border && got != 200 {
				t.Errorf("interior (%d,%d): got %d, want 200", x, y, got)
			}
		}
	}
}

func TestSmooth_Spot(t *testing.T) {
	tests := []struct {
		name                 string
		spot                 uint8
		center, side, corner uint8
	}{
		{"exact", 160, 40, 20, 10},
		{"rounded", 255, 64, 32, 16}, // 63.75, 31.875, 15.9375
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newGrayUniform(5, 5, 0)
			src.Pix[2*5+2] = tt.spot

			out := Smooth(src)

			if got := out.At(2, 2); got != tt.center {
				t.Errorf("center: got %d, want %d", got, tt.center)
			}
			for _, p := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
				if got := out.At(p[0], p[1]); got != tt.side {
					t.Errorf("side (%d,%d): got %d, want %d", p[0], p[1], got, tt.side)
				}
			}
			for _, p := range [][2]int{{1, 1}, {3, 1}, {1, 3}, {3, 3}} {
				if got := out.At(p[0], p[1]); got != tt.corner {
					t.Errorf("corner (%d,%d): got %d, want %d", p[0], p[1], got, tt.corner)
				}
			}
		})
	}
}

func TestSmooth_BorderNotCopied(t *testing.T) {
	src := newGrayUniform(4, 4, 90)
	out := Smooth(src)

	for x := 0; x < 4; x++ {
		if out.At(x, 0) != 0 || out.At(x, 3) != 0 {
			t.Fatalf("column %d: border rows should be 0", x)
		}
	}
	if src.At(0, 0) != 90 {
		t.Error("Smooth modified its input")
	}
}

func TestSmooth_TooSmall(t *testing.T) {
	out := Smooth(newGrayUniform(2, 2, 255))
	for i, v := range out.Pix {
		if v != 0 {
			t.Errorf("Pix[%d]: got %d, want 0", i, v)
		}
	}
}

func newGrayUniform(width, height int, v uint8) *GrayRaster {
	g := newGrayRaster(width, height)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}
