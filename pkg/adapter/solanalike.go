package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain/solanalike"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/job"
	"github.com/hapiprotocol/hapi-core-indexer/pkg/webhook"
)

// SolanaLike is the Adapter for the Solana-like backend, grounded on
// original_source/indexer/src/indexer/client/solana.rs.
type SolanaLike struct {
	Client        *solanalike.Client
	PageSize      int
	FetchingDelay time.Duration
}

func (a *SolanaLike) FetchJobs(ctx context.Context, cursor job.Cursor) (FetchResult, error) {
	if err := cursor.ExpectTransaction(); err != nil {
		return FetchResult{}, err
	}
	until := ""
	if cursor.Kind == job.CursorTransaction {
		until = cursor.Transaction
	}

	// get_signature_list pages backwards (before=nil, then before=oldest
	// seen) until it reaches `until` or runs out, reversing into oldest-
	// first order before returning. It sleeps fetching_delay between pages
	// to stay within the RPC node's rate limit.
	var signatures []solanalike.Signature
	before := ""
	for {
		page, err := a.Client.GetSignaturesForAddress(ctx, before, until, a.PageSize)
		if err != nil {
			return FetchResult{}, err
		}
		if len(page) == 0 {
			break
		}
		signatures = append(signatures, page...)
		before = page[len(page)-1].Signature

		if a.FetchingDelay > 0 {
			select {
			case <-ctx.Done():
				return FetchResult{}, ctx.Err()
			case <-time.After(a.FetchingDelay):
			}
		}
	}

	jobs := make([]job.Job, 0, len(signatures))
	for i := len(signatures) - 1; i >= 0; i-- {
		jobs = append(jobs, job.NewSignatureJob(signatures[i].Signature))
	}

	newCursor := cursor
	if len(jobs) > 0 {
		newCursor = job.TransactionCursor(signatures[0].Signature)
	}
	return FetchResult{Jobs: jobs, Cursor: newCursor}, nil
}

// ProcessJob decodes every HAPI instruction in the job's transaction,
// grounded on process_solana_job/get_instruction_data. A transaction with
// no in-scope instructions yields nil payloads rather than an error
// (logic.rs treats an empty Option the same as Some(vec![])).
func (a *SolanaLike) ProcessJob(ctx context.Context, j job.Job, net webhook.NetworkData, indexerID uuid.UUID) ([]webhook.PushPayload, error) {
	if j.Kind != job.TransactionSignatureKind {
		return nil, chain.InvalidInputError("solana-like adapter received a non-signature job", nil)
	}

	instructions, err := a.Client.GetHAPIInstructions(ctx, j.Signature)
	if err != nil {
		return nil, err
	}

	var payloads []webhook.PushPayload
	for _, ins := range instructions {
		data, err := a.instructionData(ctx, ins)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		payloads = append(payloads, webhook.PushPayload{
			ID:          indexerID,
			NetworkData: net,
			Event: webhook.PushEvent{
				Name:      ins.Name,
				TxHash:    j.Signature,
				TxIndex:   ins.Index,
				Timestamp: ins.BlockTime,
			},
			Data: *data,
		})
	}
	return payloads, nil
}

const (
	reporterAccountIndex = 2
	caseAccountIndex     = 3
	addressAccountIndex  = 4
	assetAccountIndex    = 4
)

func (a *SolanaLike) instructionData(ctx context.Context, ins solanalike.Instruction) (*webhook.PushData, error) {
	switch ins.Name {
	case chain.CreateReporter, chain.UpdateReporter, chain.ActivateReporter, chain.DeactivateReporter, chain.Unstake:
		account, err := accountAt(ins.AccountKeys, reporterAccountIndex)
		if err != nil {
			return nil, err
		}
		r, err := a.Client.GetReporterByPubkey(ctx, account)
		if err != nil {
			return nil, err
		}
		d := webhook.ReporterData(r)
		return &d, nil

	case chain.CreateCase, chain.UpdateCase:
		account, err := accountAt(ins.AccountKeys, caseAccountIndex)
		if err != nil {
			return nil, err
		}
		cs, err := a.Client.GetCaseByPubkey(ctx, account)
		if err != nil {
			return nil, err
		}
		d := webhook.CaseData(cs)
		return &d, nil

	case chain.CreateAddress, chain.UpdateAddress:
		account, err := accountAt(ins.AccountKeys, addressAccountIndex)
		if err != nil {
			return nil, err
		}
		entity, err := a.Client.GetAddressByPubkey(ctx, account)
		if err != nil {
			return nil, err
		}
		d := webhook.AddressData(entity)
		return &d, nil

	case chain.CreateAsset, chain.UpdateAsset:
		account, err := accountAt(ins.AccountKeys, assetAccountIndex)
		if err != nil {
			return nil, err
		}
		entity, err := a.Client.GetAssetByPubkey(ctx, account)
		if err != nil {
			return nil, err
		}
		d := webhook.AssetData(entity)
		return &d, nil

	case chain.Initialize, chain.UpdateStakeConfiguration, chain.UpdateRewardConfiguration,
		chain.SetAuthority, chain.ConfirmAddress, chain.ConfirmAsset:
		return nil, nil

	default:
		return nil, nil
	}
}

func accountAt(accounts []string, index int) (string, error) {
	if index >= len(accounts) {
		return "", chain.ContractDataError("instruction is missing an expected account", nil)
	}
	return accounts[index], nil
}

var _ Adapter = (*SolanaLike)(nil)
