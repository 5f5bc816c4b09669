package explorer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// schema is applied on every Store start, mirroring how pkg/database
// applies its embedded migrations, except kept as a single idempotent
// statement set rather than a versioned migration chain — this service
// has exactly one schema, not a history of them to replay.
const schema = `
CREATE TABLE IF NOT EXISTS indexers (
	id      UUID PRIMARY KEY,
	network TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id          BIGSERIAL PRIMARY KEY,
	indexer_id  UUID NOT NULL,
	network     TEXT NOT NULL,
	event_name  TEXT NOT NULL,
	tx_hash     TEXT NOT NULL,
	tx_index    BIGINT NOT NULL,
	timestamp   BIGINT NOT NULL,
	data        JSONB NOT NULL,
	received_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (network, tx_hash, tx_index)
);

CREATE TABLE IF NOT EXISTS heartbeats (
	indexer_id UUID PRIMARY KEY,
	network    TEXT NOT NULL,
	cursor     TEXT NOT NULL,
	seen_at    TIMESTAMPTZ NOT NULL
);
`

// Store persists ingested webhook traffic to PostgreSQL, grounded on
// pkg/database/client.go's Client{db,config,logger} + ClientOption shape.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// StoreOption is a functional option for configuring the store.
type StoreOption func(*Store)

func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore opens a connection pool against dsn and applies the schema.
func NewStore(dsn string, opts ...StoreOption) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}

	store := &Store{
		logger: log.New(log.Writer(), "[explorer:store] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(store)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	store.db = db
	store.logger.Println("connected and schema applied")
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RegisterIndexer upserts the (id, network) roster entry for an indexer that
// has successfully authenticated, keeping a live directory of who has
// pushed without gating ingestion on it — the bearer token is the
// authorization (§4.5); this is bookkeeping, not an allowlist.
func (s *Store) RegisterIndexer(ctx context.Context, id uuid.UUID, network string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indexers (id, network) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET network = EXCLUDED.network
	`, id, network)
	return err
}

// InsertEvent persists a delivered push payload. A duplicate (network,
// tx_hash, tx_index) is ignored rather than erroring, since at-least-once
// delivery means a payload can legitimately arrive more than once (§4.5).
func (s *Store) InsertEvent(ctx context.Context, payload webhook.PushPayload) error {
	data, err := json.Marshal(payload.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (indexer_id, network, event_name, tx_hash, tx_index, timestamp, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (network, tx_hash, tx_index) DO NOTHING
	`, payload.ID, payload.NetworkData.Network, payload.Event.Name.String(), payload.Event.TxHash,
		payload.Event.TxIndex, payload.Event.Timestamp, data)
	return err
}

// UpsertHeartbeat records the latest liveness ping for an indexer.
func (s *Store) UpsertHeartbeat(ctx context.Context, id uuid.UUID, network, cursor string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO heartbeats (indexer_id, network, cursor, seen_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (indexer_id) DO UPDATE SET network = EXCLUDED.network, cursor = EXCLUDED.cursor, seen_at = now()
	`, id, network, cursor)
	return err
}
