package explorer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/auth"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// Handlers provides the HTTP ingestion surface peer indexers push to,
// grounded on pkg/server/attestation_handlers.go's HandlerType{service,
// logger} + writeJSONError shape.
type Handlers struct {
	store     *Store
	jwtSecret []byte
	logger    *log.Logger
}

func NewHandlers(store *Store, jwtSecret []byte, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(log.Writer(), "[explorer:ingest] ", log.LstdFlags)
	}
	return &Handlers{store: store, jwtSecret: jwtSecret, logger: logger}
}

// Mux builds the ServeMux for the ingestion surface. Both routes require a
// bearer token (§4.5); the token's verified subject claim, not anything the
// request body claims, is what payloads get associated with.
func (h *Handlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/events", h.withAuth(h.handleEvent))
	mux.HandleFunc("/webhook/heartbeat", h.withAuth(h.handleHeartbeat))
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

type indexerIDKey struct{}

func indexerIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(indexerIDKey{}).(uuid.UUID)
	return id
}

// withAuth validates the Authorization: Bearer <jwt> header and extracts its
// subject claim to authenticate the caller (§4.5). There is no separate
// allowlist to consult: a token signed with the shared secret is itself the
// authorization, matching the contract a webhook.Client was minted against.
func (h *Handlers) withAuth(next func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeJSONError(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		indexerID, err := auth.IndexerIDFromToken(h.jwtSecret, token)
		if err != nil {
			writeJSONError(w, "invalid bearer token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), indexerIDKey{}, indexerID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return ""
	}
	return h[len(prefix):]
}

// handleEvent handles POST /webhook/events, the target a
// webhook.Client.Deliver call ultimately lands on.
func (h *Handlers) handleEvent(w http.ResponseWriter, r *http.Request) {
	var payload webhook.PushPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	payload.ID = indexerIDFromContext(r.Context())

	if err := h.store.RegisterIndexer(r.Context(), payload.ID, payload.NetworkData.Network); err != nil {
		h.logger.Printf("register indexer: %v", err)
	}

	if err := h.store.InsertEvent(r.Context(), payload); err != nil {
		h.logger.Printf("insert event: %v", err)
		writeJSONError(w, "failed to persist event", http.StatusInternalServerError)
		return
	}

	h.logger.Printf("received %s event for %s (tx %s)", payload.Event.Name, payload.NetworkData.Network, payload.Event.TxHash)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

// handleHeartbeat handles POST /webhook/heartbeat, the target a
// webhook.Client.Heartbeat call lands on while its indexer sits in Waiting.
func (h *Handlers) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var payload webhook.HeartbeatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	payload.ID = indexerIDFromContext(r.Context())

	if err := h.store.RegisterIndexer(r.Context(), payload.ID, payload.NetworkData.Network); err != nil {
		h.logger.Printf("register indexer: %v", err)
	}

	if err := h.store.UpsertHeartbeat(r.Context(), payload.ID, payload.NetworkData.Network, string(payload.Cursor)); err != nil {
		h.logger.Printf("upsert heartbeat: %v", err)
		writeJSONError(w, "failed to persist heartbeat", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
