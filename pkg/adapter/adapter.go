// Package adapter bridges one chain family's raw RPC surface to the
// Indexer State Machine's backend-neutral Job/Cursor/PushPayload types
// (§4.2). Where pkg/chain.Client exposes "read/write one entity", Adapter
// exposes "what changed since cursor, and what does job mean" — the two
// concerns original_source keeps separate too (client.rs's entity CRUD vs.
// indexer/src/indexer/{evm,near,client/solana}.rs's fetch/process loop).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// FetchResult is what one FetchJobs call returns: a page of jobs ordered
// oldest-first, and the cursor that should replace the current one once
// that page is exhausted with no further progress (§4.2).
type FetchResult struct {
	Jobs   []job.Job
	Cursor job.Cursor
}

// Adapter is implemented once per chain family.
type Adapter interface {
	// FetchJobs lists work discovered since cursor. An empty Jobs slice with
	// an unchanged Cursor means "caught up" (§4.3 get_updated_state).
	FetchJobs(ctx context.Context, cursor job.Cursor) (FetchResult, error)

	// ProcessJob decodes one job into zero or more push payloads. Zero
	// payloads (e.g. a ConfirmAddress/ConfirmAsset receipt, or a transaction
	// with no in-scope instructions) is not an error (§4.4).
	ProcessJob(ctx context.Context, j job.Job, net webhook.NetworkData, indexerID uuid.UUID) ([]webhook.PushPayload, error)
}
