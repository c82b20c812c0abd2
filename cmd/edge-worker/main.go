package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/render-edges-mcp/internal/queue"
	"github.com/ironsheep/render-edges-mcp/internal/worker"
)

func main() {
	defaultAddr := "localhost:6379"
	if env := os.Getenv("EDGE_REDIS_ADDR"); env != "" {
		defaultAddr = env
	}
	hostname, _ := os.Hostname()

	var (
		redisAddr  = flag.String("redis", defaultAddr, "Redis address (env EDGE_REDIS_ADDR)")
		block      = flag.Duration("block", 5*time.Second, "Stream read block timeout")
		visTimeout = flag.Duration("visibility", 30*time.Second, "Visibility timeout for retries")
		consumer   = flag.String("consumer", fmt.Sprintf("worker-%s", hostname), "Consumer name within the group")

		// Submit mode: enqueue one job instead of running the worker loop.
		submit   = flag.String("submit", "", "Enqueue a job for this input image and exit")
		output   = flag.String("output", "", "Edge map path for -submit")
		low      = flag.Float64("low", 0, "Low threshold for -submit (0 means 0.1)")
		high     = flag.Float64("high", 0, "High threshold for -submit (0 means 0.3)")
		parallel = flag.Bool("parallel", false, "Run the job's pipeline in parallel")
		wait     = flag.Duration("wait", 0, "With -submit, wait this long for the result")
	)
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rs, err := queue.NewRedisStreams(ctx, *redisAddr)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rs.Close()
	if err := rs.EnsureGroups(ctx); err != nil {
		log.Printf("ensure groups: %v", err)
	}

	if *submit != "" {
		job := &queue.JobMessage{
			ID:            fmt.Sprintf("%s-%d", hostname, time.Now().UnixNano()),
			InputPath:     *submit,
			OutputPath:    *output,
			ThresholdLow:  *low,
			ThresholdHigh: *high,
			Parallel:      *parallel,
		}
		if err := runSubmit(ctx, rs, job, *wait); err != nil {
			log.Fatalf("submit: %v", err)
		}
		return
	}

	p := &worker.Processor{
		Queue:      rs,
		Consumer:   *consumer,
		Block:      *block,
		Visibility: *visTimeout,
	}
	if err := p.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("worker: %v", err)
	}
	log.Printf("Worker %s stopped", *consumer)
}

func runSubmit(ctx context.Context, rs *queue.RedisStreams, job *queue.JobMessage, wait time.Duration) error {
	entry, err := rs.AddJob(ctx, job)
	if err != nil {
		return err
	}
	log.Printf("Enqueued job %s (%s) for %s", job.ID, entry, job.InputPath)
	if wait <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	res, err := rs.WaitResult(ctx, job.ID, entry, time.Second)
	if err != nil {
		return fmt.Errorf("waiting for job %s: %w", job.ID, err)
	}
	if res.Error != "" {
		return fmt.Errorf("job %s failed on %s: %s", job.ID, res.WorkerID, res.Error)
	}
	fmt.Printf("%s: %dx%d, %d edge pixels -> %s\n", job.ID, res.Width, res.Height, res.EdgePixels, res.OutputPath)
	return nil
}
