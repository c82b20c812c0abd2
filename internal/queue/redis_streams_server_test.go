package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestStreams starts an in-process Redis and connects to it. The server
// clock is frozen so idle times can be advanced explicitly.
func newTestStreams(t *testing.T) (*RedisStreams, *miniredis.Miniredis) {
	t.Helper()

	m := miniredis.RunT(t)
	m.SetTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	rs, err := NewRedisStreams(context.Background(), m.Addr())
	if err != nil {
		t.Fatalf("NewRedisStreams: %v", err)
	}
	t.Cleanup(func() { rs.Close() })

	if err := rs.EnsureGroups(context.Background()); err != nil {
		t.Fatalf("EnsureGroups: %v", err)
	}
	return rs, m
}

func pendingCount(t *testing.T, rs *RedisStreams) int64 {
	t.Helper()

	p, err := rs.client.XPending(context.Background(), JobsStream, WorkerGroup).Result()
	if err != nil {
		t.Fatalf("XPending: %v", err)
	}
	return p.Count
}

func TestNewRedisStreams_Unreachable(t *testing.T) {
	m := miniredis.RunT(t)
	addr := m.Addr()
	m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisStreams(ctx, addr); err == nil {
		t.Fatal("expected an error for a closed server")
	}
}

func TestEnsureGroups_Idempotent(t *testing.T) {
	rs, _ := newTestStreams(t)
	ctx := context.Background()

	// newTestStreams already created the group once.
	for i := 0; i < 2; i++ {
		if err := rs.EnsureGroups(ctx); err != nil {
			t.Fatalf("EnsureGroups call %d: %v", i+2, err)
		}
	}

	groups, err := rs.client.XInfoGroups(ctx, JobsStream).Result()
	if err != nil {
		t.Fatalf("XInfoGroups: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != WorkerGroup {
		t.Errorf("groups: got %+v, want only %s", groups, WorkerGroup)
	}
}

func TestReadJob_TimeoutReturnsNoJob(t *testing.T) {
	rs, _ := newTestStreams(t)

	id, job, err := rs.ReadJob(context.Background(), "worker-a", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("ReadJob: %v", err)
	}
	if id != "" || job != nil {
		t.Errorf("got id=%q job=%+v, want nothing", id, job)
	}
}

func TestAddJob_ReadJob_AckJob(t *testing.T) {
	rs, _ := newTestStreams(t)
	ctx := context.Background()

	want := JobMessage{ID: "frame-12", InputPath: "/r/12.png", OutputPath: "/e/12.png", ThresholdLow: 0.15, ThresholdHigh: 0.35}
	entry, err := rs.AddJob(ctx, &want)
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}

	id, job, err := rs.ReadJob(ctx, "worker-a", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("ReadJob: %v", err)
	}
	if id != entry {
		t.Errorf("entry id: got %q, want %q", id, entry)
	}
	if job == nil || *job != want {
		t.Fatalf("job: got %+v, want %+v", job, want)
	}
	if n := pendingCount(t, rs); n != 1 {
		t.Errorf("pending before ack: got %d, want 1", n)
	}

	// Delivered jobs are not handed out again.
	if _, again, _ := rs.ReadJob(ctx, "worker-b", 20*time.Millisecond); again != nil {
		t.Errorf("job delivered twice: %+v", again)
	}

	if err := rs.AckJob(ctx, id); err != nil {
		t.Fatalf("AckJob: %v", err)
	}
	if n := pendingCount(t, rs); n != 0 {
		t.Errorf("pending after ack: got %d, want 0", n)
	}
}

func TestReadJob_UndecodableReturnsEntryID(t *testing.T) {
	rs, _ := newTestStreams(t)
	ctx := context.Background()

	entry, err := rs.client.XAdd(ctx, &redis.XAddArgs{
		Stream: JobsStream,
		Values: map[string]any{dataField: "render finished"},
	}).Result()
	if err != nil {
		t.Fatalf("XAdd: %v", err)
	}

	id, job, err := rs.ReadJob(ctx, "worker-a", 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if id != entry || job != nil {
		t.Errorf("got id=%q job=%+v, want id=%q and no job", id, job, entry)
	}
}

func TestClaimStaleJobs(t *testing.T) {
	rs, m := newTestStreams(t)
	ctx := context.Background()

	if _, err := rs.AddJob(ctx, &JobMessage{ID: "frame-1", InputPath: "/r/1.png", OutputPath: "/e/1.png"}); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if _, err := rs.client.XAdd(ctx, &redis.XAddArgs{
		Stream: JobsStream,
		Values: map[string]any{dataField: "{broken"},
	}).Result(); err != nil {
		t.Fatalf("XAdd: %v", err)
	}

	// worker-a takes both and never acks.
	rs.ReadJob(ctx, "worker-a", 20*time.Millisecond)
	rs.ReadJob(ctx, "worker-a", 20*time.Millisecond)

	claimed, err := rs.ClaimStaleJobs(ctx, "worker-b", 30*time.Second, 10)
	if err != nil {
		t.Fatalf("ClaimStaleJobs: %v", err)
	}
	if len(claimed) != 0 {
		t.Fatalf("claimed %d fresh jobs, want 0", len(claimed))
	}

	m.SetTime(time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC))

	claimed, err = rs.ClaimStaleJobs(ctx, "worker-b", 30*time.Second, 10)
	if err != nil {
		t.Fatalf("ClaimStaleJobs: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("claimed %d jobs, want 2", len(claimed))
	}
	if claimed[0].Err != nil || claimed[0].Job == nil || claimed[0].Job.ID != "frame-1" {
		t.Errorf("first claim: got %+v", claimed[0])
	}
	if claimed[1].Err == nil || claimed[1].Job != nil {
		t.Errorf("undecodable claim: got %+v, want Err set and no job", claimed[1])
	}

	for _, c := range claimed {
		if err := rs.AckJob(ctx, c.ID); err != nil {
			t.Fatalf("AckJob: %v", err)
		}
	}
	if n := pendingCount(t, rs); n != 0 {
		t.Errorf("pending after acking claims: got %d, want 0", n)
	}
}

func TestWaitResult_SkipsOtherJobs(t *testing.T) {
	rs, _ := newTestStreams(t)
	ctx := context.Background()

	// The clock is frozen, so the job and both results share a millisecond.
	entry, err := rs.AddJob(ctx, &JobMessage{ID: "mine"})
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if _, err := rs.AddResult(ctx, &ResultMessage{JobID: "other", Width: 3}); err != nil {
		t.Fatalf("AddResult: %v", err)
	}
	if _, err := rs.AddResult(ctx, &ResultMessage{JobID: "mine", Width: 7, WorkerID: "worker-a"}); err != nil {
		t.Fatalf("AddResult: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	res, err := rs.WaitResult(ctx, "mine", entry, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitResult: %v", err)
	}
	if res.JobID != "mine" || res.Width != 7 || res.WorkerID != "worker-a" {
		t.Errorf("got %+v", res)
	}
}

func TestWaitResult_GivesUp(t *testing.T) {
	rs, _ := newTestStreams(t)

	entry, err := rs.AddJob(context.Background(), &JobMessage{ID: "lonely"})
	if err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if _, err := rs.AddResult(context.Background(), &ResultMessage{JobID: "other"}); err != nil {
		t.Fatalf("AddResult: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if res, err := rs.WaitResult(ctx, "lonely", entry, 20*time.Millisecond); err == nil {
		t.Errorf("expected an error, got %+v", res)
	}
}
