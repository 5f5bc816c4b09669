package nearlike

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

// Receipt is a single function-call receipt against this client's contract,
// grounded on NearReceipt in original_source/indexer/src/indexer/client/
// near.rs.
type Receipt struct {
	Hash        string
	BlockHeight uint64
	Timestamp   uint64
	MethodName  string
	ArgsBase64  string
}

// LatestFinalBlock returns the current final block height, used by the
// near-like adapter to bound FetchJobs the same way fetch_near_jobs computes
// final_block = min(PAGE_SIZE-1+start_block, latest_final).
func (c *Client) LatestFinalBlock(ctx context.Context) (uint64, error) {
	var block struct {
		Header struct {
			Height uint64 `json:"height"`
		} `json:"header"`
	}
	err := c.call(ctx, "block", map[string]interface{}{"finality": "final"}, &block)
	if err != nil {
		return 0, err
	}
	return block.Header.Height, nil
}

type rpcBlock struct {
	Header struct {
		Height    uint64 `json:"height"`
		Timestamp uint64 `json:"timestamp"`
	} `json:"header"`
	Chunks []struct {
		ChunkHash string `json:"chunk_hash"`
	} `json:"chunks"`
}

type rpcChunk struct {
	Receipts []struct {
		ReceiptID string `json:"receipt_id"`
		Receiver  string `json:"receiver_id"`
		Receipt   struct {
			Action *struct {
				Actions []struct {
					FunctionCall *struct {
						MethodName string `json:"method_name"`
						Args       string `json:"args"`
					} `json:"FunctionCall"`
				} `json:"actions"`
			} `json:"Action"`
		} `json:"receipt"`
	} `json:"receipts"`
}

// ReceiptsInBlock returns every function-call receipt in blockHeight
// targeting this client's contract, mirroring get_receipts_list's per-chunk
// scan.
func (c *Client) ReceiptsInBlock(ctx context.Context, blockHeight uint64) ([]Receipt, error) {
	var block rpcBlock
	err := c.call(ctx, "block", map[string]interface{}{"block_id": blockHeight}, &block)
	if err != nil {
		return nil, err
	}

	var receipts []Receipt
	seen := make(map[string]struct{})
	for _, chunkRef := range block.Chunks {
		var chunk rpcChunk
		if err := c.call(ctx, "chunk", map[string]interface{}{"chunk_id": chunkRef.ChunkHash}, &chunk); err != nil {
			return nil, err
		}
		for _, r := range chunk.Receipts {
			if r.Receiver != c.cfg.ContractID || r.Receipt.Action == nil {
				continue
			}
			if _, ok := seen[r.ReceiptID]; ok {
				continue
			}
			matched := false
			for _, action := range r.Receipt.Action.Actions {
				if action.FunctionCall == nil {
					continue
				}
				matched = true
				receipts = append(receipts, Receipt{
					Hash:        r.ReceiptID,
					BlockHeight: blockHeight,
					Timestamp:   block.Header.Timestamp,
					MethodName:  action.FunctionCall.MethodName,
					ArgsBase64:  action.FunctionCall.Args,
				})
				break
			}
			if matched {
				seen[r.ReceiptID] = struct{}{}
			}
		}
	}
	return receipts, nil
}

// DecodeArgs base64-decodes and JSON-unmarshals a receipt's call arguments,
// grounded on get_field_from_args/get_id_from_args in near.rs.
func DecodeArgs(receipt Receipt) (map[string]interface{}, error) {
	raw, err := jsonArgs(receipt.ArgsBase64)
	if err != nil {
		return nil, chain.ContractDataError("decode receipt args", err)
	}
	return raw, nil
}

func jsonArgs(b64 string) (map[string]interface{}, error) {
	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(decoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
