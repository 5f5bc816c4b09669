package solanalike

import (
	"context"
	"encoding/base64"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

// Signature is one entry of getSignaturesForAddress, grounded on
// get_signature_list in original_source/indexer/src/indexer/client/
// solana.rs.
type Signature struct {
	Signature string `json:"signature"`
	BlockTime *int64 `json:"blockTime"`
	Slot      uint64 `json:"slot"`
}

// GetSignaturesForAddress pages backwards from before (exclusive) down to
// until (exclusive), newest first, matching
// getConfirmedSignaturesForAddress2's semantics.
func (c *Client) GetSignaturesForAddress(ctx context.Context, before, until string, limit int) ([]Signature, error) {
	opts := map[string]interface{}{"limit": limit}
	if before != "" {
		opts["before"] = before
	}
	if until != "" {
		opts["until"] = until
	}
	var out []Signature
	if err := c.rpc.call(ctx, "getSignaturesForAddress", []interface{}{c.cfg.ProgramID, opts}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Instruction is one decoded program instruction inside a transaction,
// grounded on DecodedInstruction in original_source's
// client.rs/src/client/implementations/solana/instruction_decoder.rs.
type Instruction struct {
	Name        chain.EventName
	AccountKeys []string
	Index       uint64
	BlockTime   uint64
	Data        []byte
}

type rpcTransaction struct {
	BlockTime  *int64 `json:"blockTime"`
	Transaction struct {
		Message struct {
			AccountKeys  []string `json:"accountKeys"`
			Instructions []struct {
				ProgramIDIndex int    `json:"programIdIndex"`
				Accounts       []int  `json:"accounts"`
				Data           string `json:"data"`
			} `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
}

// GetHAPIInstructions fetches signature's transaction and returns only the
// instructions targeting this client's program, decoding each instruction's
// leading discriminator byte into an EventName the same way the program's
// own instruction enum orders its variants.
func (c *Client) GetHAPIInstructions(ctx context.Context, signature string) ([]Instruction, error) {
	var tx rpcTransaction
	err := c.rpc.call(ctx, "getTransaction", []interface{}{
		signature,
		map[string]interface{}{"encoding": "json", "maxSupportedTransactionVersion": 0},
	}, &tx)
	if err != nil {
		return nil, err
	}

	keys := tx.Transaction.Message.AccountKeys
	blockTime := uint64(0)
	if tx.BlockTime != nil {
		blockTime = uint64(*tx.BlockTime)
	}

	var instructions []Instruction
	for idx, raw := range tx.Transaction.Message.Instructions {
		if raw.ProgramIDIndex < 0 || raw.ProgramIDIndex >= len(keys) || keys[raw.ProgramIDIndex] != c.cfg.ProgramID {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(raw.Data)
		if err != nil || len(data) == 0 {
			continue
		}
		name, err := chain.EventNameFromIndex(int(data[0]))
		if err != nil {
			continue
		}
		accountKeys := make([]string, 0, len(raw.Accounts))
		for _, a := range raw.Accounts {
			if a >= 0 && a < len(keys) {
				accountKeys = append(accountKeys, keys[a])
			}
		}
		instructions = append(instructions, Instruction{
			Name:        name,
			AccountKeys: accountKeys,
			Index:       uint64(idx),
			BlockTime:   blockTime,
			Data:        data[1:],
		})
	}
	return instructions, nil
}
