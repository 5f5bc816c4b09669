// Package explorer implements the one part of the downstream Explorer
// service that is in scope here: the webhook-ingestion endpoint an indexer
// delivers push payloads and heartbeats to (§4.5). Its GraphQL API,
// pagination, and statistics are out of scope.
package explorer

import (
	"time"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// Indexer is a caller that has pushed at least once: an indexer ID paired
// with the network it reports for, kept as a roster for operators, not an
// ingestion allowlist.
type Indexer struct {
	ID      uuid.UUID
	Network string
}

// StoredEvent is one delivered push payload, persisted for audit/replay.
type StoredEvent struct {
	ID          int64
	IndexerID   uuid.UUID
	Network     string
	EventName   string
	TxHash      string
	TxIndex     uint64
	Timestamp   uint64
	Data        webhook.PushData
	ReceivedAt  time.Time
}

// Heartbeat is the last-seen liveness record for one indexer.
type Heartbeat struct {
	IndexerID uuid.UUID
	Network   string
	Cursor    string
	SeenAt    time.Time
}
