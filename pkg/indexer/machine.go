package indexer

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/adapter"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// Pusher is the subset of webhook.Client the machine needs, kept as an
// interface here so tests can fake delivery without standing up an HTTP
// server.
type Pusher interface {
	Deliver(ctx context.Context, payload webhook.PushPayload) error
	Heartbeat(ctx context.Context, payload webhook.HeartbeatPayload) error
}

// Machine drives one network's Indexer State Machine end to end, grounded
// on logic.rs's Indexer::run/next and on pkg/intent/discovery.go's
// ticker+select+stopCh monitoringLoop for the cooperative-cancellation
// shape.
type Machine struct {
	Network      webhook.NetworkData
	IndexerID    uuid.UUID
	Adapter      adapter.Adapter
	Store        *CursorStore
	Pusher       Pusher
	WaitInterval time.Duration

	log *log.Logger

	state State
	queue queue
}

func NewMachine(network webhook.NetworkData, indexerID uuid.UUID, a adapter.Adapter, store *CursorStore, pusher Pusher, waitInterval time.Duration) *Machine {
	return &Machine{
		Network:      network,
		IndexerID:    indexerID,
		Adapter:      a,
		Store:        store,
		Pusher:       pusher,
		WaitInterval: waitInterval,
		log:          log.New(log.Writer(), "[indexer:"+network.Network+"] ", log.LstdFlags),
	}
}

// Run drives the state machine until ctx is cancelled or it reaches
// Stopped, returning the final State.
func (m *Machine) Run(ctx context.Context) State {
	m.state = InitState()
	m.log.Printf("🔄 starting indexer state machine")

	ticker := time.NewTicker(m.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Printf("⚠️ context cancelled, stopping")
			return m.state
		default:
		}

		if m.state.IsTerminal() {
			m.log.Printf("❌ stopped: %s", m.state.Message)
			return m.state
		}

		m.state = m.step(ctx)

		if m.state.Phase == PhaseWaiting {
			select {
			case <-ctx.Done():
				return m.state
			case <-ticker.C:
			}
		}
	}
}

func (m *Machine) tickInterval() time.Duration {
	if m.WaitInterval <= 0 {
		return time.Second
	}
	return m.WaitInterval
}

// step performs exactly one state transition, mirroring logic.rs's next().
func (m *Machine) step(ctx context.Context) State {
	switch m.state.Phase {
	case PhaseInit:
		return m.handleInit()
	case PhaseCheckForUpdates:
		return m.handleCheckForUpdates(ctx)
	case PhaseProcessing:
		return m.handleProcessing(ctx)
	case PhaseWaiting:
		return m.handleWaiting(ctx)
	default:
		return m.state
	}
}

func (m *Machine) handleInit() State {
	cursor := m.Store.Load()
	m.log.Printf("✅ loaded persisted cursor %s", cursor)
	return CheckForUpdatesState(cursor)
}

func (m *Machine) handleCheckForUpdates(ctx context.Context) State {
	m.log.Printf("🔄 [Phase 1] checking for updates since %s", m.state.Cursor)

	result, err := m.Adapter.FetchJobs(ctx, m.state.Cursor)
	if err != nil {
		return StoppedState("fetch jobs: " + err.Error())
	}

	if len(result.Jobs) == 0 {
		if m.state.Cursor.Kind == job.CursorNone {
			return StoppedState("no valid transactions found on the contract address")
		}
		if err := m.Store.Save(result.Cursor); err != nil {
			return StoppedState("persist cursor: " + err.Error())
		}
		m.log.Printf("🎉 caught up at %s, waiting", result.Cursor)
		return WaitingState(result.Cursor, time.Now().Add(m.WaitInterval).Unix())
	}

	m.log.Printf("✅ [Phase 2] found %d jobs", len(result.Jobs))
	m.queue.push(result.Jobs)
	return ProcessingState(result.Cursor)
}

func (m *Machine) handleProcessing(ctx context.Context) State {
	j, ok := m.queue.pop()
	if !ok {
		return CheckForUpdatesState(m.state.Cursor)
	}

	payloads, err := m.Adapter.ProcessJob(ctx, j, m.Network, m.IndexerID)
	if err != nil {
		return StoppedState("process job: " + err.Error())
	}

	for _, payload := range payloads {
		if err := m.Pusher.Deliver(ctx, payload); err != nil {
			return StoppedState("deliver webhook: " + err.Error())
		}
	}

	newCursor := j.Cursor()
	if err := m.Store.Save(newCursor); err != nil {
		return StoppedState("persist cursor: " + err.Error())
	}
	m.log.Printf("✅ [Phase 3] processed job, cursor now %s", newCursor)

	return ProcessingState(newCursor)
}

func (m *Machine) handleWaiting(ctx context.Context) State {
	heartbeat := webhook.HeartbeatPayload{ID: m.IndexerID, NetworkData: m.Network}
	heartbeat.Event.Name = "heartbeat"
	heartbeat.Event.Timestamp = uint64(time.Now().Unix())
	cursorJSON, err := m.state.Cursor.MarshalJSON()
	if err == nil {
		heartbeat.Cursor = cursorJSON
	}

	if err := m.Pusher.Heartbeat(ctx, heartbeat); err != nil {
		return StoppedState("heartbeat: " + err.Error())
	}

	if time.Now().Unix() > m.state.Until {
		return CheckForUpdatesState(m.state.Cursor)
	}
	return m.state
}
