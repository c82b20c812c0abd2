// Package worker runs edge detection jobs taken from a queue and publishes
// one result per job.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/render-edges-mcp/internal/imaging"
	"github.com/ironsheep/render-edges-mcp/internal/queue"
)

// Queue is the part of queue.RedisStreams a Processor uses.
type Queue interface {
	ReadJob(ctx context.Context, consumer string, block time.Duration) (string, *queue.JobMessage, error)
	AckJob(ctx context.Context, id string) error
	ClaimStaleJobs(ctx context.Context, consumer string, minIdle time.Duration, count int) ([]queue.ClaimedJob, error)
	AddResult(ctx context.Context, res *queue.ResultMessage) (string, error)
}

// claimBatch bounds how many stale jobs are taken over per loop iteration.
const claimBatch = 50

// Processor reads jobs for one consumer name.
type Processor struct {
	Queue    Queue
	Consumer string

	// Block is how long one ReadJob waits for new work.
	Block time.Duration

	// Visibility is how long a job may stay unacked before another
	// consumer claims it.
	Visibility time.Duration

	// RetryDelay is the pause after a failed queue call. Zero means one
	// second.
	RetryDelay time.Duration
}

// pause waits RetryDelay or until ctx is done.
func (p *Processor) pause(ctx context.Context) {
	d := p.RetryDelay
	if d <= 0 {
		d = time.Second
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Run processes jobs until ctx is cancelled. It only returns ctx's error.
func (p *Processor) Run(ctx context.Context) error {
	log.Printf("Worker %s ready - waiting for jobs on %s", p.Consumer, queue.JobsStream)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		claimed, err := p.Queue.ClaimStaleJobs(ctx, p.Consumer, p.Visibility, claimBatch)
		if err != nil && ctx.Err() == nil {
			log.Printf("claim stale: %v", err)
			p.pause(ctx)
			continue
		}
		for _, c := range claimed {
			p.Handle(ctx, c.ID, c.Job, c.Err)
		}

		id, job, err := p.Queue.ReadJob(ctx, p.Consumer, p.Block)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// An entry we cannot decode is answered and acked like any
			// other bad job so it does not stay pending forever.
			if id != "" {
				p.Handle(ctx, id, nil, err)
				continue
			}
			log.Printf("read job: %v", err)
			p.pause(ctx)
			continue
		}
		if job == nil {
			continue
		}
		p.Handle(ctx, id, job, nil)
	}
}

// Handle processes one delivered stream entry, publishes its result and
// acks it. A job that fails still gets a result, with Error set. The entry
// is left pending when the result cannot be published, so it is retried.
func (p *Processor) Handle(ctx context.Context, id string, job *queue.JobMessage, decodeErr error) {
	var res *queue.ResultMessage
	switch {
	case decodeErr != nil:
		res = &queue.ResultMessage{Error: decodeErr.Error()}
	case job == nil:
		res = &queue.ResultMessage{Error: "empty job"}
	default:
		res = Process(job)
		res.JobID = job.ID
	}
	res.WorkerID = p.Consumer

	if res.Error != "" {
		log.Printf("job %s (%s): %s", res.JobID, id, res.Error)
	} else {
		log.Printf("job %s: %dx%d, %d edge pixels in %.3fs -> %s",
			res.JobID, res.Width, res.Height, res.EdgePixels, res.ProcessSeconds, res.OutputPath)
	}

	if _, err := p.Queue.AddResult(ctx, res); err != nil {
		log.Printf("push result: %v", err)
		return
	}
	if err := p.Queue.AckJob(ctx, id); err != nil {
		log.Printf("ack job: %v", err)
	}
}

// Process runs one job: load the input, detect edges and write the edge map.
// Zero thresholds fall back to the defaults. Errors are reported in the
// result rather than returned.
func Process(job *queue.JobMessage) *queue.ResultMessage {
	start := time.Now()
	res := &queue.ResultMessage{JobID: job.ID}

	if err := process(job, res); err != nil {
		res.Error = err.Error()
	}
	res.ProcessSeconds = time.Since(start).Seconds()
	return res
}

var errMissingPath = errors.New("job needs input_path and output_path")

func process(job *queue.JobMessage, res *queue.ResultMessage) error {
	if job.InputPath == "" || job.OutputPath == "" {
		return errMissingPath
	}

	opts := imaging.DefaultEdgeOptions()
	if job.ThresholdLow != 0 || job.ThresholdHigh != 0 {
		opts.ThresholdLow = job.ThresholdLow
		opts.ThresholdHigh = job.ThresholdHigh
	}
	opts.Parallel = job.Parallel

	img, err := imaging.LoadFile(job.InputPath)
	if err != nil {
		return err
	}
	stages, err := imaging.DetectEdges(img, opts)
	if err != nil {
		return fmt.Errorf("detect %s: %w", job.InputPath, err)
	}
	if err := imaging.Export(imaging.FromRaster(stages.Edges), job.OutputPath); err != nil {
		return err
	}

	res.OutputPath = job.OutputPath
	res.Width = stages.Edges.Width
	res.Height = stages.Edges.Height
	res.EdgePixels = imaging.MeasureEdges(stages.Edges).EdgePixels
	return nil
}
