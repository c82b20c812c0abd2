package canny

import (
	"bytes"
	"testing"
)

func TestClassify_Tiers(t *testing.T) {
	// low=0.25 -> 63.75, high=0.5 -> 127.5
	f := &SuppressedField{Width: 7, Height: 3, Values: make([]float64, 21)}
	row := []float64{200, 200, 127.5, 127.4, 63.75, 63.7, 200}
	copy(f.Values[7:14], row)
	f.Values[3] = 500 // border

	c := Classify(f, 0.25, 0.5)

	want := []uint8{None, Strong, Strong, Weak, Weak, None, None}
	if !bytes.Equal(c.Pix[7:14], want) {
		t.Errorf("interior row: got %v, want %v", c.Pix[7:14], want)
	}
	if c.Pix[3] != None {
		t.Errorf("border: got %d, want None", c.Pix[3])
	}
}

func TestClassify_Degenerate(t *testing.T) {
	f := &SuppressedField{Width: 4, Height: 4, Values: make([]float64, 16)}

	tests := []struct {
		name      string
		low, high float64
		want      uint8
	}{
		{"everything strong", -1, 0, Strong},
		{"everything weak", 0, 2, Weak},
		{"nothing", 2, 3, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(f, tt.low, tt.high)
			for _, i := range []int{5, 6, 9, 10} {
				if c.Pix[i] != tt.want {
					t.Errorf("interior Pix[%d]: got %d, want %d", i, c.Pix[i], tt.want)
				}
			}
		})
	}
}

func TestLink_SingleSweep(t *testing.T) {
	tests := []struct {
		name string
		row  []uint8
		want []uint8
	}{
		{
			"chain after strong is promoted",
			[]uint8{None, Strong, Weak, Weak, Weak, Weak, None},
			[]uint8{None, Strong, Strong, Strong, Strong, Strong, None},
		},
		{
			"chain before strong is only promoted next to it",
			[]uint8{None, Weak, Weak, Weak, Weak, Strong, None},
			[]uint8{None, None, None, None, Strong, Strong, None},
		},
		{
			"isolated weak is dropped",
			[]uint8{None, Weak, None, None, None, None, None},
			[]uint8{None, None, None, None, None, None, None},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classification{Width: 7, Height: 3, Pix: make([]uint8, 21)}
			copy(c.Pix[7:14], tt.row)
			before := append([]uint8(nil), c.Pix...)

			out := Link(c)

			if !bytes.Equal(out.Pix[7:14], tt.want) {
				t.Errorf("got %v, want %v", out.Pix[7:14], tt.want)
			}
			if !bytes.Equal(c.Pix, before) {
				t.Error("Link modified its input")
			}
		})
	}
}

func TestLink_DiagonalNeighbor(t *testing.T) {
	c := &Classification{Width: 5, Height: 5, Pix: make([]uint8, 25)}
	c.Pix[1*5+1] = Strong
	c.Pix[2*5+2] = Weak
	c.Pix[3*5+1] = Weak // down-left of (2,2)

	out := Link(c)

	if out.Pix[2*5+2] != Strong {
		t.Error("(2,2) should be promoted by diagonal strong neighbor")
	}
	if out.Pix[3*5+1] != Strong {
		t.Error("(1,3) should be promoted by (2,2) promoted earlier in the sweep")
	}
}

func TestLink_BinaryResult(t *testing.T) {
	src := newNoiseRaster(20, 20, 3)
	st, err := Run(src, Options{Low: 0.05, High: 0.4})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n := st.Linked.Count(Weak); n != 0 {
		t.Errorf("weak pixels after linking: got %d, want 0", n)
	}
	if st.Linked.Count(None)+st.Linked.Count(Strong) != 400 {
		t.Error("linked buffer contains values other than None and Strong")
	}
}

func TestHysteresis(t *testing.T) {
	f := &SuppressedField{Width: 5, Height: 3, Values: make([]float64, 15)}
	f.Values[6] = 200 // strong
	f.Values[7] = 50  // weak, next to strong
	f.Values[8] = 1   // none

	c := Hysteresis(f, 0.1, 0.3)

	want := []uint8{Strong, Strong, None}
	if !bytes.Equal(c.Pix[6:9], want) {
		t.Errorf("got %v, want %v", c.Pix[6:9], want)
	}
}
