package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/adapter"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// fakeAdapter serves a fixed sequence of FetchJobs results, then reports
// caught-up forever, letting tests drive the machine through
// CheckForUpdates -> Processing -> Waiting deterministically.
type fakeAdapter struct {
	pages      []adapter.FetchResult
	nextPage   int
	processErr error
	payloads   []webhook.PushPayload
	// perJob, keyed by LogReference.BlockNumber, lets a test assert
	// per-job delivery order instead of just a delivered count.
	perJob map[uint64][]webhook.PushPayload
}

func (f *fakeAdapter) FetchJobs(ctx context.Context, cursor job.Cursor) (adapter.FetchResult, error) {
	if f.nextPage >= len(f.pages) {
		return adapter.FetchResult{Cursor: cursor}, nil
	}
	page := f.pages[f.nextPage]
	f.nextPage++
	return page, nil
}

func (f *fakeAdapter) ProcessJob(ctx context.Context, j job.Job, net webhook.NetworkData, indexerID uuid.UUID) ([]webhook.PushPayload, error) {
	if f.processErr != nil {
		return nil, f.processErr
	}
	if f.perJob != nil {
		return f.perJob[j.Log.BlockNumber], nil
	}
	return f.payloads, nil
}

// fakePusher counts delivered payloads and heartbeats instead of making any
// HTTP calls.
type fakePusher struct {
	delivered    int
	heartbeats   int
	deliverErr   error
	heartbeatErr error
	order        []string
}

func (p *fakePusher) Deliver(ctx context.Context, payload webhook.PushPayload) error {
	if p.deliverErr != nil {
		return p.deliverErr
	}
	p.delivered++
	p.order = append(p.order, payload.Event.TxHash)
	return nil
}

func (p *fakePusher) Heartbeat(ctx context.Context, payload webhook.HeartbeatPayload) error {
	if p.heartbeatErr != nil {
		return p.heartbeatErr
	}
	p.heartbeats++
	return nil
}

func newTestMachine(t *testing.T, a adapter.Adapter, pusher Pusher, waitInterval time.Duration) (*Machine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cursor.json")
	store := NewCursorStore(path)
	m := NewMachine(webhook.NetworkData{Network: "ethereum"}, uuid.New(), a, store, pusher, waitInterval)
	return m, path
}

// TestMachineNoCursorNoJobsStops covers the "fresh deployment, adapter
// reports nothing" edge case (§7): no prior progress and nothing found
// means there is nothing useful this process can do, so it stops rather
// than spinning forever.
func TestMachineNoCursorNoJobsStops(t *testing.T) {
	a := &fakeAdapter{pages: nil}
	pusher := &fakePusher{}
	m, _ := newTestMachine(t, a, pusher, time.Millisecond)

	final := m.Run(context.Background())
	if final.Phase != PhaseStopped {
		t.Fatalf("expected Stopped, got %v", final)
	}
}

// TestMachineProcessesJobsThenWaits covers the common path: a page of jobs
// is fetched, each is processed and delivered, the cursor advances, then
// once the adapter reports caught-up the machine moves to Waiting.
func TestMachineProcessesJobsThenWaits(t *testing.T) {
	a := &fakeAdapter{
		pages: []adapter.FetchResult{
			{
				Jobs: []job.Job{
					job.NewLogJob(job.LogReference{BlockNumber: 1}),
					job.NewLogJob(job.LogReference{BlockNumber: 2}),
				},
				Cursor: job.BlockCursor(2),
			},
		},
		payloads: []webhook.PushPayload{{}},
	}
	pusher := &fakePusher{}
	m, path := newTestMachine(t, a, pusher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for machine to reach Waiting")
		case <-time.After(5 * time.Millisecond):
			if m.state.Phase == PhaseWaiting {
				cancel()
				<-done
				if pusher.delivered != 2 {
					t.Errorf("expected 2 delivered payloads, got %d", pusher.delivered)
				}
				store := NewCursorStore(path)
				if got := store.Load(); got != job.BlockCursor(2) {
					t.Errorf("persisted cursor = %v, want Block(2)", got)
				}
				return
			}
		}
	}
}

// TestMachineDeliversOldestFirst covers P3: payloads produced from jobs
// enqueued in positions i < j within the same fetch_jobs batch POST in
// that same order.
func TestMachineDeliversOldestFirst(t *testing.T) {
	a := &fakeAdapter{
		pages: []adapter.FetchResult{
			{
				Jobs: []job.Job{
					job.NewLogJob(job.LogReference{BlockNumber: 1}),
					job.NewLogJob(job.LogReference{BlockNumber: 2}),
					job.NewLogJob(job.LogReference{BlockNumber: 3}),
				},
				Cursor: job.BlockCursor(3),
			},
		},
		perJob: map[uint64][]webhook.PushPayload{
			1: {{Event: webhook.PushEvent{TxHash: "first"}}},
			2: {{Event: webhook.PushEvent{TxHash: "second"}}},
			3: {{Event: webhook.PushEvent{TxHash: "third"}}},
		},
	}
	pusher := &fakePusher{}
	m, _ := newTestMachine(t, a, pusher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for machine to reach Waiting")
		case <-time.After(5 * time.Millisecond):
			if m.state.Phase == PhaseWaiting {
				cancel()
				<-done
				want := []string{"first", "second", "third"}
				if len(pusher.order) != len(want) {
					t.Fatalf("delivered %v, want %v", pusher.order, want)
				}
				for i := range want {
					if pusher.order[i] != want[i] {
						t.Errorf("delivery order = %v, want %v", pusher.order, want)
						break
					}
				}
				return
			}
		}
	}
}

// TestMachineDeliveryFailureStops covers the at-least-once delivery
// contract (§4.5, §7): exhausting delivery drives the machine to Stopped
// rather than silently dropping the payload or looping forever.
func TestMachineDeliveryFailureStops(t *testing.T) {
	a := &fakeAdapter{
		pages: []adapter.FetchResult{
			{
				Jobs:   []job.Job{job.NewLogJob(job.LogReference{BlockNumber: 1})},
				Cursor: job.BlockCursor(1),
			},
		},
		payloads: []webhook.PushPayload{{}},
	}
	pusher := &fakePusher{deliverErr: errors.New("webhook unreachable")}
	m, _ := newTestMachine(t, a, pusher, time.Millisecond)

	final := m.Run(context.Background())
	if final.Phase != PhaseStopped {
		t.Fatalf("expected Stopped after delivery failure, got %v", final)
	}
}

// TestMachineContextCancellationStopsCleanly covers graceful shutdown: a
// cancelled context returns promptly instead of blocking.
func TestMachineContextCancellationStopsCleanly(t *testing.T) {
	a := &fakeAdapter{}
	pusher := &fakePusher{}
	m, _ := newTestMachine(t, a, pusher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return promptly after context cancellation")
	}
}
