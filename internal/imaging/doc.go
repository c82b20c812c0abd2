// Package imaging connects image files and image.Image values to the canny
// edge detection pipeline.
//
// It loads render outputs from disk, prepares them (crop, scale, optional
// pre-blur), converts them to RGBA rasters, runs the detector and turns the
// results back into images: the binary edge map, an overlay of the edges on
// the source, or a visualisation of any intermediate stage.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Results always describe the prepared image: after a crop, pixel (0,0) of
// the edge map is pixel (x1,y1) of the source.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and can be called concurrently.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or empty regions
//   - Images smaller than 3x3 after preparation (wraps canny.ErrInvalidDimensions)
//   - Low threshold above high threshold (wraps canny.ErrInvalidThreshold)
//   - File I/O and encoding errors
package imaging
