package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

func TestDeliverSuccessOnFirstAttempt(t *testing.T) {
	var received int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&received, 1)
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header = %q, want Bearer test-token", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	payload := PushPayload{ID: uuid.New(), NetworkData: NetworkData{Network: "ethereum"}}
	if err := client.Deliver(t.Context(), payload); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if atomic.LoadInt32(&received) != 1 {
		t.Errorf("expected exactly one request, got %d", received)
	}
}

func TestDeliverDropsOn4xxWithoutRetry(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	if err := client.Deliver(t.Context(), PushPayload{}); err != nil {
		t.Fatalf("a 4xx response should be dropped, not returned as an error: %v", err)
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("expected no retry on 4xx, got %d attempts", attempts)
	}
}

func TestDeliverRetriesOn5xxThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	client.MaxRetries = 3
	if err := client.Deliver(t.Context(), PushPayload{}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if atomic.LoadInt32(&attempts) != 2 {
		t.Errorf("expected 2 attempts (one failure, one success), got %d", attempts)
	}
}

func TestDeliverExhaustsRetriesAndFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	client.MaxRetries = 1
	if err := client.Deliver(t.Context(), PushPayload{}); err == nil {
		t.Error("expected an error once retries are exhausted")
	}
}

func TestHeartbeatSendsCursorPayload(t *testing.T) {
	var gotBody HeartbeatPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	id := uuid.New()
	payload := HeartbeatPayload{ID: id, NetworkData: NetworkData{Network: "near"}}
	payload.Cursor = json.RawMessage(`{"Block":42}`)

	if err := client.Heartbeat(t.Context(), payload); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if gotBody.ID != id {
		t.Errorf("heartbeat indexer id = %s, want %s", gotBody.ID, id)
	}
}
