package canny

// Reference thresholds, as fractions of full intensity.
const (
	DefaultLow  = 0.1
	DefaultHigh = 0.3
)

// Options configures a pipeline run.
type Options struct {
	// Low and High are the hysteresis thresholds in [0,1]. Low must not
	// exceed High.
	Low  float64
	High float64

	// Parallel splits the row-independent stages across goroutines. Linking
	// always runs sequentially, so the output does not change.
	Parallel bool
}

// DefaultOptions returns Options with the reference thresholds.
func DefaultOptions() Options {
	return Options{Low: DefaultLow, High: DefaultHigh}
}

// Stages holds every intermediate buffer of one pipeline run.
type Stages struct {
	Gray       *GrayRaster
	Smoothed   *GrayRaster
	Gradient   *GradientField
	Suppressed *SuppressedField
	Classified *Classification // before linking: None, Weak or Strong
	Linked     *Classification // after linking: None or Strong
	Edges      *ColorRaster
}

// Detect runs the full pipeline and returns the edge raster.
//
// The result has the dimensions of src. Every pixel has R=G=B, either 0 or
// 255, and A=255. src is not modified.
//
// Errors wrap ErrInvalidDimensions when src is smaller than 3x3 or its buffer
// length is wrong, and ErrInvalidThreshold when low > high. Both are checked
// before any work is done.
func Detect(src *ColorRaster, low, high float64) (*ColorRaster, error) {
	st, err := Run(src, Options{Low: low, High: high})
	if err != nil {
		return nil, err
	}
	return st.Edges, nil
}

// Run is Detect with options, returning every intermediate stage.
func Run(src *ColorRaster, opts Options) (*Stages, error) {
	if err := validateRaster(src); err != nil {
		return nil, err
	}
	if err := validateThresholds(opts.Low, opts.High); err != nil {
		return nil, err
	}

	st := &Stages{}
	st.Gray = grayscale(src, opts.Parallel)
	st.Smoothed = smooth(st.Gray, opts.Parallel)
	st.Gradient = gradient(st.Smoothed, opts.Parallel)
	st.Suppressed = suppress(st.Gradient, opts.Parallel)
	st.Classified = classify(st.Suppressed, opts.Low, opts.High, opts.Parallel)
	st.Linked = Link(st.Classified)
	st.Edges = Expand(st.Linked)
	return st, nil
}

// Expand writes each class value into the R, G and B channels of a new raster
// and sets A to 255.
func Expand(c *Classification) *ColorRaster {
	dst := NewColorRaster(c.Width, c.Height)
	for i, v := range c.Pix {
		p := dst.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = v, v, v, 255
	}
	return dst
}
