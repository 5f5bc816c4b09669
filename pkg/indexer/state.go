// Package indexer drives one network's Indexer State Machine: poll an
// Adapter for jobs, process them into webhook push payloads, deliver them,
// and persist a cursor once each job is acknowledged (§4.2, §4.3).
// Grounded on original_source/indexer/src/indexer/logic.rs.
package indexer

import (
	"fmt"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
)

// Phase tags which variant of State is populated.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseCheckForUpdates
	PhaseProcessing
	PhaseWaiting
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseCheckForUpdates:
		return "CheckForUpdates"
	case PhaseProcessing:
		return "Processing"
	case PhaseWaiting:
		return "Waiting"
	case PhaseStopped:
		return "Stopped"
	default:
		return "Init"
	}
}

// State is the tagged union of every state the machine can be in (§9):
// Init -> CheckForUpdates{cursor} -> Processing{cursor} ->
// Waiting{until, cursor} -> (loops back to CheckForUpdates) or Stopped{message}.
// Stopped is terminal.
type State struct {
	Phase   Phase
	Cursor  job.Cursor
	Until   int64 // unix seconds, meaningful only when Phase == PhaseWaiting
	Message string
}

func InitState() State { return State{Phase: PhaseInit} }

func CheckForUpdatesState(cursor job.Cursor) State {
	return State{Phase: PhaseCheckForUpdates, Cursor: cursor}
}

func ProcessingState(cursor job.Cursor) State {
	return State{Phase: PhaseProcessing, Cursor: cursor}
}

func WaitingState(cursor job.Cursor, until int64) State {
	return State{Phase: PhaseWaiting, Cursor: cursor, Until: until}
}

func StoppedState(message string) State {
	return State{Phase: PhaseStopped, Message: message}
}

func (s State) IsTerminal() bool { return s.Phase == PhaseStopped }

func (s State) String() string {
	switch s.Phase {
	case PhaseCheckForUpdates, PhaseProcessing:
		return fmt.Sprintf("%s(%s)", s.Phase, s.Cursor)
	case PhaseWaiting:
		return fmt.Sprintf("Waiting(until=%d, cursor=%s)", s.Until, s.Cursor)
	case PhaseStopped:
		return fmt.Sprintf("Stopped(%s)", s.Message)
	default:
		return s.Phase.String()
	}
}
