package canny

// Classify performs the double threshold.
//
// low and high are fractions of full intensity and are scaled by 255. Interior
// pixels become Strong when value >= high*255, Weak when
// low*255 <= value < high*255, and None otherwise. Border pixels are always
// None. Thresholds outside [0,1] are not rejected; they produce all-Strong or
// all-None results.
func Classify(f *SuppressedField, low, high float64) *Classification {
	return classify(f, low, high, false)
}

func classify(f *SuppressedField, low, high float64, concurrent bool) *Classification {
	w, h := f.Width, f.Height
	dst := &Classification{Width: w, Height: h, Pix: make([]uint8, w*h)}
	lowCut, highCut := low*255, high*255

	forRows(h, concurrent, func(start, end int) {
		y0, y1 := interiorRows(start, end, h, 1)
		for y := y0; y < y1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				switch v := f.Values[i]; {
				case v >= highCut:
					dst.Pix[i] = Strong
				case v >= lowCut:
					dst.Pix[i] = Weak
				}
			}
		}
	})
	return dst
}

// Link resolves Weak pixels in one row-major sweep over the interior.
//
// A Weak pixel becomes Strong if any of its 8 neighbors is Strong at the
// moment it is visited, and None otherwise. The sweep works in place on a copy
// of c, so a promotion can enable later pixels but never revisits earlier ones.
// Chains of weak pixels leading up or left to a strong pixel are therefore only
// partly promoted.
func Link(c *Classification) *Classification {
	w, h := c.Width, c.Height
	dst := &Classification{Width: w, Height: h, Pix: make([]uint8, len(c.Pix))}
	copy(dst.Pix, c.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if dst.Pix[i] != Weak {
				continue
			}
			if hasStrongNeighbor(dst.Pix, w, x, y) {
				dst.Pix[i] = Strong
			} else {
				dst.Pix[i] = None
			}
		}
	}
	return dst
}

// Hysteresis classifies and links in one call.
func Hysteresis(f *SuppressedField, low, high float64) *Classification {
	return Link(Classify(f, low, high))
}

func hasStrongNeighbor(pix []uint8, w, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		row := (y + dy) * w
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && pix[row+x+dx] == Strong {
				return true
			}
		}
	}
	return false
}
