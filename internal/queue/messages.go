package queue

// JobMessage asks a worker to run edge detection on one rendered file.
type JobMessage struct {
	ID            string  `json:"id"`
	InputPath     string  `json:"input_path"`
	OutputPath    string  `json:"output_path"`
	ThresholdLow  float64 `json:"threshold_low"`
	ThresholdHigh float64 `json:"threshold_high"`
	Parallel      bool    `json:"parallel"`
}

// ResultMessage reports the outcome of a JobMessage. Error is empty on
// success; on failure only JobID, Error and WorkerID are meaningful.
type ResultMessage struct {
	JobID          string  `json:"job_id"`
	OutputPath     string  `json:"output_path"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	EdgePixels     int     `json:"edge_pixels"`
	Error          string  `json:"error,omitempty"`
	WorkerID       string  `json:"worker_id"`
	ProcessSeconds float64 `json:"process_seconds"`
}
