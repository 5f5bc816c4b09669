package adapter

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/evm"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/normalize"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// EVM is the Adapter for the EVM-like backend, grounded on
// original_source/indexer/src/indexer/evm.rs.
type EVM struct {
	Client   *evm.Client
	PageSize uint64
}

func (a *EVM) FetchJobs(ctx context.Context, cursor job.Cursor) (FetchResult, error) {
	if err := cursor.ExpectBlock(); err != nil {
		return FetchResult{}, err
	}

	var start uint64
	if cursor.Kind == job.CursorBlock {
		start = cursor.Block + 1
	} else {
		earliest, found, err := a.Client.EarliestLogBlock(ctx)
		if err != nil {
			return FetchResult{}, err
		}
		if !found {
			return FetchResult{Jobs: nil, Cursor: job.NoneCursor()}, nil
		}
		start = earliest
	}

	latest, err := a.Client.LatestBlock(ctx)
	if err != nil {
		return FetchResult{}, err
	}
	if start > latest {
		return FetchResult{Jobs: nil, Cursor: cursor}, nil
	}

	end := start + a.PageSize - 1
	if end > latest {
		end = latest
	}

	logs, err := a.Client.LogsInRange(ctx, start, end)
	if err != nil {
		return FetchResult{}, err
	}

	jobs := make([]job.Job, 0, len(logs))
	for _, l := range logs {
		topics := make([]string, len(l.Topics))
		for i, t := range l.Topics {
			topics[i] = t.Hex()
		}
		jobs = append(jobs, job.NewLogJob(job.LogReference{
			BlockNumber: l.BlockNumber,
			TxHash:      l.TxHash.Hex(),
			LogIndex:    uint64(l.Index),
			Address:     l.Address.Hex(),
			Topics:      topics,
			Data:        l.Data,
		}))
	}

	return FetchResult{Jobs: jobs, Cursor: job.BlockCursor(end)}, nil
}

// ProcessJob dispatches on the decoded event name exactly the way
// process_evm_job_log matches `to_ref()`, fetching the freshly-mutated
// entity back from the contract before emitting its push payload.
func (a *EVM) ProcessJob(ctx context.Context, j job.Job, net webhook.NetworkData, indexerID uuid.UUID) ([]webhook.PushPayload, error) {
	if j.Kind != job.LogReferenceKind {
		return nil, chain.InvalidInputError("evm adapter received a non-log job", nil)
	}
	ref := j.Log

	if len(ref.Topics) == 0 {
		return nil, nil
	}
	ev, err := a.Client.EventByTopic(common.HexToHash(ref.Topics[0]))
	if err != nil {
		// Unrecognized topic: some other contract event landed in the log
		// filter window; skip it rather than failing the whole job.
		return nil, nil
	}
	name, err := chain.ParseEventName(ev.Name)
	if err != nil {
		return nil, nil
	}

	timestamp, err := a.Client.BlockTimestamp(ctx, ref.BlockNumber)
	if err != nil {
		return nil, err
	}
	baseEvent := webhook.PushEvent{Name: name, TxHash: ref.TxHash, TxIndex: ref.LogIndex, Timestamp: timestamp}

	switch name {
	case chain.CreateReporter, chain.UpdateReporter, chain.ActivateReporter, chain.DeactivateReporter, chain.Unstake:
		id, err := topicUUID(ref.Topics)
		if err != nil {
			return nil, err
		}
		r, err := a.Client.GetReporter(ctx, id)
		if err != nil {
			return nil, err
		}
		return onePayload(indexerID, net, baseEvent, webhook.ReporterData(r)), nil

	case chain.CreateCase, chain.UpdateCase:
		id, err := topicUUID(ref.Topics)
		if err != nil {
			return nil, err
		}
		cs, err := a.Client.GetCase(ctx, id)
		if err != nil {
			return nil, err
		}
		return onePayload(indexerID, net, baseEvent, webhook.CaseData(cs)), nil

	case chain.CreateAddress, chain.UpdateAddress:
		addr, err := topicAddress(ref.Topics)
		if err != nil {
			return nil, err
		}
		entity, err := a.Client.GetAddress(ctx, addr)
		if err != nil {
			return nil, err
		}
		return onePayload(indexerID, net, baseEvent, webhook.AddressData(entity)), nil

	case chain.CreateAsset, chain.UpdateAsset:
		addr, err := topicAddress(ref.Topics)
		if err != nil {
			return nil, err
		}
		assetID, err := topicUint256(ref.Topics, 2)
		if err != nil {
			return nil, err
		}
		entity, err := a.Client.GetAsset(ctx, addr, assetID.String())
		if err != nil {
			return nil, err
		}
		return onePayload(indexerID, net, baseEvent, webhook.AssetData(entity)), nil

	case chain.Initialize, chain.SetAuthority, chain.UpdateStakeConfiguration,
		chain.UpdateRewardConfiguration, chain.ConfirmAddress, chain.ConfirmAsset:
		return nil, nil

	default:
		return nil, nil
	}
}

func onePayload(indexerID uuid.UUID, net webhook.NetworkData, event webhook.PushEvent, data webhook.PushData) []webhook.PushPayload {
	return []webhook.PushPayload{{ID: indexerID, NetworkData: net, Event: event, Data: data}}
}

func topicUUID(topics []string) (uuid.UUID, error) {
	if len(topics) < 2 {
		return uuid.Nil, chain.ContractDataError("log has no indexed id topic", nil)
	}
	return normalize.UUIDFromU128Hex(topics[1])
}

func topicAddress(topics []string) (string, error) {
	if len(topics) < 2 {
		return "", chain.ContractDataError("log has no indexed address topic", nil)
	}
	return common.HexToAddress(topics[1]).Hex(), nil
}

func topicUint256(topics []string, index int) (*big.Int, error) {
	if len(topics) <= index {
		return nil, chain.ContractDataError("log is missing an indexed topic", nil)
	}
	return new(big.Int).SetBytes(common.HexToHash(topics[index]).Bytes()), nil
}

var _ Adapter = (*EVM)(nil)
