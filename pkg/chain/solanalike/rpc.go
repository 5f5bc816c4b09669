// Package solanalike implements chain.Client and the lower-level account/
// signature primitives pkg/adapter/solanalike needs, against a Solana-like
// JSON-RPC node. No Solana Go SDK appears anywhere in the retrieval pack
// (go-ethereum covers the EVM-like family, nothing covers this one), so this
// package talks JSON-RPC directly over net/http — the same foundation every
// Solana client library is itself built on.
package solanalike

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message) }

type rpcClient struct {
	endpoint string
	http     *http.Client
}

func newRPCClient(endpoint string, httpClient *http.Client) *rpcClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &rpcClient{endpoint: endpoint, http: httpClient}
}

func (c *rpcClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return chain.InvalidInputError("marshal rpc request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return chain.TransportError("build rpc request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return chain.TransportError("rpc round-trip", err)
	}
	defer resp.Body.Close()

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return chain.TransportError("decode rpc response", err)
	}
	if decoded.Error != nil {
		return chain.ContractErrorf(fmt.Sprintf("rpc method %s", method), decoded.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return chain.ContractDataError(fmt.Sprintf("unmarshal rpc result for %s", method), err)
	}
	return nil
}
