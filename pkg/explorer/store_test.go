package explorer

import (
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// testStore points at a real Postgres instance when HAPI_TEST_DB is set.
// Store talks to *sql.DB directly with no mock seam, so these are
// skipped rather than faked when no test database is configured.
var testStore *Store

func TestMain(m *testing.M) {
	dsn := os.Getenv("HAPI_TEST_DB")
	if dsn == "" {
		os.Exit(m.Run())
	}

	var err error
	testStore, err = NewStore(dsn)
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	code := m.Run()
	testStore.Close()
	os.Exit(code)
}

func TestRegisterIndexerUpsertsNetwork(t *testing.T) {
	if testStore == nil {
		t.Skip("HAPI_TEST_DB not configured")
	}

	id := uuid.New()
	if err := testStore.RegisterIndexer(t.Context(), id, "ethereum"); err != nil {
		t.Fatalf("RegisterIndexer: %v", err)
	}
	if err := testStore.RegisterIndexer(t.Context(), id, "ethereum-goerli"); err != nil {
		t.Fatalf("RegisterIndexer (re-register): %v", err)
	}
}

func TestInsertEventDedupsByNetworkTxHashTxIndex(t *testing.T) {
	if testStore == nil {
		t.Skip("HAPI_TEST_DB not configured")
	}

	id := uuid.New()
	if err := testStore.RegisterIndexer(t.Context(), id, "ethereum"); err != nil {
		t.Fatalf("RegisterIndexer: %v", err)
	}

	payload := webhook.PushPayload{
		ID:          id,
		NetworkData: webhook.NetworkData{Network: "ethereum"},
		Event: webhook.PushEvent{
			Name:    chain.CreateReporter,
			TxHash:  "0xabc",
			TxIndex: 1,
		},
		Data: webhook.ReporterData(chain.Reporter{}),
	}

	if err := testStore.InsertEvent(t.Context(), payload); err != nil {
		t.Fatalf("InsertEvent (first): %v", err)
	}
	if err := testStore.InsertEvent(t.Context(), payload); err != nil {
		t.Fatalf("InsertEvent (duplicate) should be a no-op, not an error: %v", err)
	}
}

func TestUpsertHeartbeatOverwritesPreviousCursor(t *testing.T) {
	if testStore == nil {
		t.Skip("HAPI_TEST_DB not configured")
	}

	id := uuid.New()
	if err := testStore.RegisterIndexer(t.Context(), id, "near"); err != nil {
		t.Fatalf("RegisterIndexer: %v", err)
	}

	if err := testStore.UpsertHeartbeat(t.Context(), id, "near", `{"Block":1}`); err != nil {
		t.Fatalf("UpsertHeartbeat: %v", err)
	}
	if err := testStore.UpsertHeartbeat(t.Context(), id, "near", `{"Block":2}`); err != nil {
		t.Fatalf("UpsertHeartbeat (overwrite): %v", err)
	}
}
