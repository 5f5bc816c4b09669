package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/nearlike"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// NearLike is the Adapter for the NEAR-like backend, grounded on
// original_source/indexer/src/indexer/client/near.rs.
type NearLike struct {
	Client   *nearlike.Client
	PageSize uint64
}

func (a *NearLike) FetchJobs(ctx context.Context, cursor job.Cursor) (FetchResult, error) {
	if err := cursor.ExpectBlock(); err != nil {
		return FetchResult{}, err
	}

	start := uint64(0)
	if cursor.Kind == job.CursorBlock {
		start = cursor.Block + 1
	}

	latest, err := a.Client.LatestFinalBlock(ctx)
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

	var jobs []job.Job
	for height := start; height <= end; height++ {
		receipts, err := a.Client.ReceiptsInBlock(ctx, height)
		if err != nil {
			return FetchResult{}, err
		}
		for _, r := range receipts {
			jobs = append(jobs, job.NewReceiptJob(job.ReceiptReference{
				Hash:        r.Hash,
				BlockHeight: r.BlockHeight,
				Timestamp:   r.Timestamp,
			}))
		}
	}

	return FetchResult{Jobs: jobs, Cursor: job.BlockCursor(end)}, nil
}

// ProcessJob re-reads the receipt's block to recover the method call this
// job refers to, then decodes it the way process_near_job does, including
// the ft_on_transfer special case (a reporter activating by depositing
// stake emits a fungible-token transfer, not a direct activate_reporter
// call) and the fact that Confirm{Address,Asset} never produce a payload.
func (a *NearLike) ProcessJob(ctx context.Context, j job.Job, net webhook.NetworkData, indexerID uuid.UUID) ([]webhook.PushPayload, error) {
	if j.Kind != job.ReceiptReferenceKind {
		return nil, chain.InvalidInputError("near-like adapter received a non-receipt job", nil)
	}

	receipts, err := a.Client.ReceiptsInBlock(ctx, j.Receipt.BlockHeight)
	if err != nil {
		return nil, err
	}
	var receipt *nearlike.Receipt
	for i := range receipts {
		if receipts[i].Hash == j.Receipt.Hash {
			receipt = &receipts[i]
			break
		}
	}
	if receipt == nil {
		return nil, nil
	}

	args, err := nearlike.DecodeArgs(*receipt)
	if err != nil {
		return nil, err
	}

	name := chain.ActivateReporter
	if receipt.MethodName != "ft_on_transfer" {
		n, err := chain.ParseEventName(receipt.MethodName)
		if err != nil {
			// Not a HAPI method call; ignore the receipt.
			return nil, nil
		}
		name = n
	}

	event := webhook.PushEvent{Name: name, TxHash: receipt.Hash, TxIndex: 0, Timestamp: receipt.Timestamp}

	data, err := a.dataForEvent(ctx, name, args, receipt.MethodName)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return []webhook.PushPayload{{ID: indexerID, NetworkData: net, Event: event, Data: *data}}, nil
}

func (a *NearLike) dataForEvent(ctx context.Context, name chain.EventName, args map[string]interface{}, method string) (*webhook.PushData, error) {
	switch name {
	case chain.ActivateReporter:
		key := "sender_id"
		if method != "ft_on_transfer" {
			key = "id"
		}
		id, err := idArg(args, key)
		if err != nil {
			return nil, err
		}
		r, err := a.Client.GetReporter(ctx, id)
		if err != nil {
			return nil, err
		}
		d := webhook.ReporterData(r)
		return &d, nil

	case chain.CreateReporter, chain.UpdateReporter, chain.DeactivateReporter, chain.Unstake:
		id, err := idArg(args, "id")
		if err != nil {
			return nil, err
		}
		r, err := a.Client.GetReporter(ctx, id)
		if err != nil {
			return nil, err
		}
		d := webhook.ReporterData(r)
		return &d, nil

	case chain.CreateCase, chain.UpdateCase:
		id, err := idArg(args, "id")
		if err != nil {
			return nil, err
		}
		cs, err := a.Client.GetCase(ctx, id)
		if err != nil {
			return nil, err
		}
		d := webhook.CaseData(cs)
		return &d, nil

	case chain.CreateAddress, chain.UpdateAddress:
		addr, ok := args["address"].(string)
		if !ok {
			return nil, chain.ContractDataError("call args missing address field", nil)
		}
		entity, err := a.Client.GetAddress(ctx, addr)
		if err != nil {
			return nil, err
		}
		d := webhook.AddressData(entity)
		return &d, nil

	case chain.CreateAsset, chain.UpdateAsset:
		addr, ok := args["address"].(string)
		if !ok {
			return nil, chain.ContractDataError("call args missing address field", nil)
		}
		assetID, ok := args["id"].(string)
		if !ok {
			return nil, chain.ContractDataError("call args missing id field", nil)
		}
		entity, err := a.Client.GetAsset(ctx, addr, assetID)
		if err != nil {
			return nil, err
		}
		d := webhook.AssetData(entity)
		return &d, nil

	case chain.Initialize, chain.SetAuthority, chain.UpdateStakeConfiguration,
		chain.UpdateRewardConfiguration, chain.ConfirmAddress, chain.ConfirmAsset:
		return nil, nil

	default:
		return nil, nil
	}
}

func idArg(args map[string]interface{}, key string) (uuid.UUID, error) {
	s, ok := args[key].(string)
	if !ok {
		return uuid.Nil, chain.ContractDataError("call args missing "+key+" field", nil)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, chain.ContractDataError("call args "+key+" is not a valid id", err)
	}
	return id, nil
}

var _ Adapter = (*NearLike)(nil)
