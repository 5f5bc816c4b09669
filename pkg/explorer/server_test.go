package explorer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/auth"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

func TestBearerTokenExtractsSuffix(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook/events", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	if got := bearerToken(req); got != "abc.def.ghi" {
		t.Errorf("bearerToken() = %q, want abc.def.ghi", got)
	}
}

func TestBearerTokenRejectsMissingOrMalformedHeader(t *testing.T) {
	cases := []string{"", "Basic abc", "Bearer"}
	for _, h := range cases {
		req := httptest.NewRequest(http.MethodPost, "/webhook/events", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		if got := bearerToken(req); got != "" {
			t.Errorf("bearerToken() with header %q = %q, want empty", h, got)
		}
	}
}

func TestHandleHealthReportsHealthy(t *testing.T) {
	h := NewHandlers(nil, []byte("unused"), nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Mux().ServeHTTP(rec, req)

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestWithAuthRejectsMissingBearerToken(t *testing.T) {
	h := NewHandlers(nil, []byte("a-sufficiently-long-test-secret"), nil)
	req := httptest.NewRequest(http.MethodPost, "/webhook/events", bytes.NewReader(nil))
	rec := httptest.NewRecorder()

	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestWithAuthRejectsTokenFromWrongSecret(t *testing.T) {
	secret := []byte("a-sufficiently-long-test-secret")
	h := NewHandlers(nil, secret, nil)

	token, err := auth.Mint([]byte("a-different-secret-entirely"), uuid.New())
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhook/events", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestWithAuthRejectsWrongHTTPMethod(t *testing.T) {
	h := NewHandlers(nil, []byte("a-sufficiently-long-test-secret"), nil)
	req := httptest.NewRequest(http.MethodGet, "/webhook/events", nil)
	rec := httptest.NewRecorder()

	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

// TestHandleEventEndToEnd exercises the full authenticate-then-insert path
// against a real Postgres instance; skipped when none is configured,
// matching Store's own test gate.
func TestHandleEventEndToEnd(t *testing.T) {
	if testStore == nil {
		t.Skip("HAPI_TEST_DB not configured")
	}

	secret := []byte("a-sufficiently-long-test-secret")
	id := uuid.New()
	token, err := auth.Mint(secret, id)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	h := NewHandlers(testStore, secret, nil)

	payload := webhook.PushPayload{
		ID:          id,
		NetworkData: webhook.NetworkData{Network: "ethereum"},
		Event: webhook.PushEvent{
			Name:    chain.CreateReporter,
			TxHash:  "0xserverdef",
			TxIndex: 7,
		},
		Data: webhook.ReporterData(chain.Reporter{}),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhook/events", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
