package canny

import (
	"bytes"
	"testing"
)

func TestGrayscale_Weights(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
		want       uint8
	}{
		{"black", 0, 0, 0, 255, 0},
		{"white", 255, 255, 255, 255, 255},
		{"red", 255, 0, 0, 255, 76},
		{"green", 0, 255, 0, 255, 150},
		{"blue", 0, 0, 255, 255, 29},
		{"mid gray", 128, 128, 128, 255, 128},
		{"alpha ignored", 128, 128, 128, 0, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newUniformRaster(3, 3, tt.r, tt.g, tt.b, tt.a)
			gray := Grayscale(src)

			if gray.Width != 3 || gray.Height != 3 {
				t.Fatalf("dimensions: got %dx%d, want 3x3", gray.Width, gray.Height)
			}
			for i, v := range gray.Pix {
				if v != tt.want {
					t.Fatalf("Pix[%d]: got %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestGrayscale_DoesNotModifyInput(t *testing.T) {
	src := newNoiseRaster(8, 6, 1)
	before := append([]uint8(nil), src.Pix...)

	Grayscale(src)

	if !bytes.Equal(before, src.Pix) {
		t.Error("Grayscale modified its input")
	}
}

func TestGrayscale_PerPixel(t *testing.T) {
	src := NewColorRaster(3, 1)
	copy(src.Pix, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
		10, 20, 30, 255,
	})

	gray := Grayscale(src)

	// 0.2989*10 + 0.587*20 + 0.114*30 = 18.149
	want := []uint8{76, 150, 18}
	if !bytes.Equal(gray.Pix, want) {
		t.Errorf("Pix: got %v, want %v", gray.Pix, want)
	}
}
