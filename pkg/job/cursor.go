// Package job defines the tagged-union Job and Cursor types the Indexer
// State Machine owns and passes between fetch_jobs/process_job (§3, §4.2).
package job

import (
	"encoding/json"
	"fmt"
)

// CursorKind tags which variant of Cursor is populated.
type CursorKind int

const (
	CursorNone CursorKind = iota
	CursorBlock
	CursorTransaction
)

func (k CursorKind) String() string {
	switch k {
	case CursorNone:
		return "None"
	case CursorBlock:
		return "Block"
	case CursorTransaction:
		return "Transaction"
	default:
		return "None"
	}
}

// Cursor is the durable progress marker (§3). Exactly one of Block/
// Transaction is meaningful, selected by Kind; this mirrors the Rust
// tagged-union IndexingCursor without fragmenting the type per backend
// (see SPEC_FULL.md Open Question 3 — each adapter validates its accepted
// variant itself rather than the type system doing it for them).
type Cursor struct {
	Kind        CursorKind
	Block       uint64
	Transaction string
}

func NoneCursor() Cursor                { return Cursor{Kind: CursorNone} }
func BlockCursor(b uint64) Cursor       { return Cursor{Kind: CursorBlock, Block: b} }
func TransactionCursor(tx string) Cursor { return Cursor{Kind: CursorTransaction, Transaction: tx} }

func (c Cursor) String() string {
	switch c.Kind {
	case CursorBlock:
		return fmt.Sprintf("Block(%d)", c.Block)
	case CursorTransaction:
		return fmt.Sprintf("Transaction(%s)", c.Transaction)
	default:
		return "None"
	}
}

// ExpectBlock validates that c is None or Block, returning CursorMismatch
// otherwise. Adapters that only accept a Block cursor (EVM-like, NEAR-like)
// call this at the top of FetchJobs.
func (c Cursor) ExpectBlock() error {
	if c.Kind == CursorNone || c.Kind == CursorBlock {
		return nil
	}
	return ErrCursorMismatch
}

// ExpectTransaction validates that c is None or Transaction. The
// Solana-like adapter calls this at the top of FetchJobs.
func (c Cursor) ExpectTransaction() error {
	if c.Kind == CursorNone || c.Kind == CursorTransaction {
		return nil
	}
	return ErrCursorMismatch
}

// Less defines the natural per-variant ordering used by property tests
// (P1 Monotonic cursor): None is less than any cursor, and same-kind
// cursors compare by their underlying progress marker.
func (c Cursor) Less(other Cursor) bool {
	if c.Kind == CursorNone {
		return other.Kind != CursorNone
	}
	if other.Kind == CursorNone {
		return false
	}
	switch c.Kind {
	case CursorBlock:
		return c.Block < other.Block
	case CursorTransaction:
		return c.Transaction < other.Transaction
	default:
		return false
	}
}

// MarshalJSON renders the single-key tagged form used by the persisted
// state file and the heartbeat payload: {"<tag>": <value>} (§6).
func (c Cursor) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CursorBlock:
		return json.Marshal(map[string]uint64{"Block": c.Block})
	case CursorTransaction:
		return json.Marshal(map[string]string{"Transaction": c.Transaction})
	default:
		return json.Marshal(map[string]*struct{}{"None": nil})
	}
}

// UnmarshalJSON accepts the tagged form above. Any unrecognized shape is
// treated as None per §4.4's "corrupt/missing file is equivalent to None".
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		*c = NoneCursor()
		return nil
	}
	if raw, ok := tagged["Block"]; ok {
		var b uint64
		if err := json.Unmarshal(raw, &b); err == nil {
			*c = BlockCursor(b)
			return nil
		}
	}
	if raw, ok := tagged["Transaction"]; ok {
		var tx string
		if err := json.Unmarshal(raw, &tx); err == nil {
			*c = TransactionCursor(tx)
			return nil
		}
	}
	*c = NoneCursor()
	return nil
}
