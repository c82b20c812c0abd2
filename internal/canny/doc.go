// Package canny implements a five-stage Canny-style edge detector over
// in-memory RGBA rasters.
//
// The pipeline runs strictly in order, each stage consuming the complete output
// of the previous one and allocating a new buffer of the same dimensions:
//
//  1. Grayscale: RGBA -> luminance (0.2989*R + 0.587*G + 0.114*B)
//  2. Smooth: fixed 3x3 Gaussian kernel [1,2,1; 2,4,2; 1,2,1] / 16
//  3. Gradient: Sobel operators, magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  4. Suppress: non-maximum suppression along the quantized gradient direction
//  5. Hysteresis: strong/weak classification and single-sweep 8-neighbor linking
//
// Detect composes all five stages and repacks the binary result as an RGBA
// raster with R=G=B and A=255.
//
// # Border Policy
//
// Convolution stages never write the outermost rows and columns of their
// output. Those pixels are 0, and a window that reaches into an unwritten
// pixel is itself treated as border. No edge is ever reported on the border.
//
// # Hysteresis
//
// Linking is one row-major sweep over the classified buffer. A weak pixel is
// promoted when one of its 8 neighbors is strong at the moment it is visited,
// so promotions propagate forward (right and down) within the sweep but never
// back to pixels that were already visited. This is not a full flood fill and
// output depends on it.
//
// # Thread Safety
//
// Every function is pure: inputs are never mutated and nothing is retained
// between calls, so concurrent calls on different rasters need no locking.
// With Options.Parallel the row-independent stages are split across goroutines;
// the result is identical to a sequential run.
//
// # Errors
//
// Detect and Run validate before allocating anything. Failures wrap
// ErrInvalidDimensions or ErrInvalidThreshold; use errors.Is to test for them.
package canny
