package indexer

import (
	"errors"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
)

// ErrCursorMismatch re-exports job.ErrCursorMismatch under the indexer
// package so callers that only import pkg/indexer don't need pkg/job too.
var ErrCursorMismatch = job.ErrCursorMismatch

// ErrDeliveryFailed marks a webhook delivery that exhausted its retry
// budget, the condition that drives the machine into Stopped (§4.5, §7).
var ErrDeliveryFailed = errors.New("webhook delivery failed after exhausting retries")
