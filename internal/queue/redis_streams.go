// Package queue carries edge detection jobs and their results over Redis
// Streams. Each stream entry holds one JSON document in its "data" field.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	JobsStream    = "edges:jobs"
	ResultsStream = "edges:results"
	WorkerGroup   = "edge-workers"

	dataField = "data"
)

type RedisStreams struct {
	client *redis.Client
}

// NewRedisStreams connects to addr and pings it.
func NewRedisStreams(ctx context.Context, addr string) (*RedisStreams, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &RedisStreams{client: client}, nil
}

func (r *RedisStreams) Close() error { return r.client.Close() }

// EnsureGroups creates the worker consumer group, and the jobs stream with
// it. It is idempotent.
func (r *RedisStreams) EnsureGroups(ctx context.Context) error {
	// "$" means only jobs added after the group exists are delivered.
	err := r.client.XGroupCreateMkStream(ctx, JobsStream, WorkerGroup, "$").Err()
	if err != nil && !isBusyGroup(err) {
		return err
	}
	return nil
}

func isBusyGroup(err error) bool {
	return strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Producer APIs

func (r *RedisStreams) AddJob(ctx context.Context, job *JobMessage) (string, error) {
	return r.add(ctx, JobsStream, job)
}

func (r *RedisStreams) AddResult(ctx context.Context, res *ResultMessage) (string, error) {
	return r.add(ctx, ResultsStream, res)
}

func (r *RedisStreams) add(ctx context.Context, stream string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{dataField: b},
	}).Result()
}

// Consumer APIs

// ReadJob blocks up to block for the next undelivered job. It returns a nil
// job and no error when the wait times out.
func (r *RedisStreams) ReadJob(ctx context.Context, consumer string, block time.Duration) (string, *JobMessage, error) {
	res, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    WorkerGroup,
		Consumer: consumer,
		Streams:  []string{JobsStream, ">"},
		Count:    1,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	if len(res) == 0 || len(res[0].Messages) == 0 {
		return "", nil, nil
	}
	msg := res[0].Messages[0]
	job, err := decodeJob(msg)
	return msg.ID, job, err
}

func (r *RedisStreams) AckJob(ctx context.Context, id string) error {
	return r.client.XAck(ctx, JobsStream, WorkerGroup, id).Err()
}

// Pending and claim for retries

// ClaimStaleJobs takes over up to count jobs that another consumer read but
// has not acked within minIdle. Entries whose payload cannot be decoded are
// returned with a nil job so the caller can still ack them.
func (r *RedisStreams) ClaimStaleJobs(ctx context.Context, consumer string, minIdle time.Duration, count int) ([]ClaimedJob, error) {
	pend, err := r.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: JobsStream,
		Group:  WorkerGroup,
		Idle:   minIdle,
		Start:  "-",
		End:    "+",
		Count:  int64(count),
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(pend) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(pend))
	for _, p := range pend {
		ids = append(ids, p.ID)
	}
	claimed, err := r.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   JobsStream,
		Group:    WorkerGroup,
		Consumer: consumer,
		MinIdle:  minIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return nil, err
	}

	out := make([]ClaimedJob, 0, len(claimed))
	for _, msg := range claimed {
		job, err := decodeJob(msg)
		out = append(out, ClaimedJob{ID: msg.ID, Job: job, Err: err})
	}
	return out, nil
}

// ClaimedJob is one entry taken over by ClaimStaleJobs.
type ClaimedJob struct {
	ID  string
	Job *JobMessage
	Err error
}

func decodeJob(msg redis.XMessage) (*JobMessage, error) {
	v, ok := msg.Values[dataField]
	if !ok {
		return nil, fmt.Errorf("job %s: no %q field", msg.ID, dataField)
	}
	raw := bytesFromAny(v)
	var jm JobMessage
	if err := json.Unmarshal(raw, &jm); err != nil {
		return nil, fmt.Errorf("job %s: %w", msg.ID, err)
	}
	return &jm, nil
}

// WaitResult scans the results stream for the result of jobID, starting
// from the time of stream entry afterID. Use the entry ID AddJob returned.
// It gives up when ctx is done.
func (r *RedisStreams) WaitResult(ctx context.Context, jobID, afterID string, block time.Duration) (*ResultMessage, error) {
	last := resultsCursor(afterID)
	for {
		res, err := r.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{ResultsStream, last},
			Count:   100,
			Block:   block,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				last = msg.ID
				rm, err := decodeResult(msg)
				if err != nil {
					continue
				}
				if rm.JobID == jobID {
					return rm, nil
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

// resultsCursor turns a jobs stream entry ID into an exclusive XREAD start
// on the results stream. IDs are per stream, so a result written in the same
// millisecond as its job can have a smaller sequence number; the cursor
// therefore starts at the end of the previous millisecond.
func resultsCursor(entryID string) string {
	msPart, _, _ := strings.Cut(entryID, "-")
	ms, err := strconv.ParseUint(msPart, 10, 64)
	if err != nil || ms == 0 {
		return "0-0"
	}
	return fmt.Sprintf("%d-%d", ms-1, uint64(math.MaxUint64))
}

func decodeResult(msg redis.XMessage) (*ResultMessage, error) {
	var rm ResultMessage
	if err := json.Unmarshal(bytesFromAny(msg.Values[dataField]), &rm); err != nil {
		return nil, fmt.Errorf("result %s: %w", msg.ID, err)
	}
	return &rm, nil
}

// helper: handle Redis returning either string or []byte
func bytesFromAny(v any) []byte {
	switch t := v.(type) {
	case string:
		return []byte(t)
	case []byte:
		return t
	default:
		b, _ := json.Marshal(t)
		return b
	}
}
