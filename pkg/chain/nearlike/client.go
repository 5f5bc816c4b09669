// Package nearlike implements chain.Client and the block/receipt primitives
// pkg/adapter/nearlike needs, against a NEAR-like JSON-RPC node. No NEAR Go
// SDK appears in the retrieval pack, so — exactly as in pkg/chain/
// solanalike — this talks JSON-RPC directly over net/http.
package nearlike

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

type Config struct {
	RPCURL      string
	ContractID  string
	ChainName   string
}

type Client struct {
	cfg  *Config
	http *http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{cfg: cfg, http: http.DefaultClient}
}

func (c *Client) NetworkDescriptor() chain.NetworkDescriptor {
	return chain.NetworkDescriptor{Network: c.cfg.ChainName, ChainID: c.cfg.ContractID}
}

func (c *Client) IsValidAddress(address string) error {
	if address == "" || len(address) > 64 {
		return chain.InvalidInputError("not a valid near-like account id: "+address, nil)
	}
	return nil
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: "indexer", Method: method, Params: params})
	if err != nil {
		return chain.InvalidInputError("marshal rpc request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RPCURL, bytes.NewReader(body))
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
		return chain.ContractErrorf(fmt.Sprintf("rpc method %s", method), fmt.Errorf("%s: %s", decoded.Error.Name, decoded.Error.Message))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return chain.ContractDataError(fmt.Sprintf("unmarshal rpc result for %s", method), err)
	}
	return nil
}

// viewFunction calls a read-only contract method, the NEAR-like analogue of
// an eth_call, returning the JSON-decoded result.
func (c *Client) viewFunction(ctx context.Context, method string, args map[string]interface{}, out interface{}) error {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return chain.InvalidInputError("marshal view args", err)
	}
	var raw struct {
		Result []byte `json:"result"`
	}
	err = c.call(ctx, "query", map[string]interface{}{
		"request_type": "call_function",
		"finality":     "final",
		"account_id":   c.cfg.ContractID,
		"method_name":  method,
		"args_base64":  argsJSON,
	}, &raw)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw.Result, out); err != nil {
		return chain.ContractDataError("decode view result for "+method, err)
	}
	return nil
}

type wireReporter struct {
	ID              uuid.UUID          `json:"id"`
	Account         string             `json:"account_id"`
	Role            chain.ReporterRole `json:"role"`
	Status          chain.ReporterStatus `json:"status"`
	Name            string             `json:"name"`
	URL             string             `json:"url"`
	Stake           string             `json:"stake"`
	UnlockTimestamp uint64             `json:"unlock_timestamp"`
}

func (w wireReporter) toEntity() (chain.Reporter, error) {
	stake, err := chain.AmountFromString(w.Stake)
	if err != nil {
		return chain.Reporter{}, err
	}
	return chain.Reporter{
		ID: w.ID, Account: w.Account, Role: w.Role, Status: w.Status,
		Name: w.Name, URL: w.URL, Stake: stake, UnlockTimestamp: w.UnlockTimestamp,
	}, nil
}

func (c *Client) GetReporter(ctx context.Context, id uuid.UUID) (chain.Reporter, error) {
	var w wireReporter
	if err := c.viewFunction(ctx, "get_reporter", map[string]interface{}{"id": id.String()}, &w); err != nil {
		return chain.Reporter{}, err
	}
	return w.toEntity()
}

func (c *Client) GetReporterByAccount(ctx context.Context, account string) (chain.Reporter, error) {
	var w wireReporter
	if err := c.viewFunction(ctx, "get_reporter_by_account", map[string]interface{}{"account_id": account}, &w); err != nil {
		return chain.Reporter{}, err
	}
	return w.toEntity()
}

func (c *Client) GetReporterCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := c.viewFunction(ctx, "get_reporter_count", nil, &n)
	return n, err
}

func (c *Client) GetReporters(ctx context.Context, skip, take uint64) ([]chain.Reporter, error) {
	var wires []wireReporter
	err := c.viewFunction(ctx, "get_reporters", map[string]interface{}{"skip": skip, "take": take}, &wires)
	if err != nil {
		return nil, err
	}
	out := make([]chain.Reporter, 0, len(wires))
	for _, w := range wires {
		r, err := w.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type wireCase struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	Status     chain.CaseStatus `json:"status"`
	ReporterID uuid.UUID      `json:"reporter_id"`
}

func (w wireCase) toEntity() chain.Case {
	return chain.Case{ID: w.ID, Name: w.Name, URL: w.URL, Status: w.Status, ReporterID: w.ReporterID}
}

func (c *Client) GetCase(ctx context.Context, id uuid.UUID) (chain.Case, error) {
	var w wireCase
	if err := c.viewFunction(ctx, "get_case", map[string]interface{}{"id": id.String()}, &w); err != nil {
		return chain.Case{}, err
	}
	return w.toEntity(), nil
}

func (c *Client) GetCaseCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := c.viewFunction(ctx, "get_case_count", nil, &n)
	return n, err
}

func (c *Client) GetCases(ctx context.Context, skip, take uint64) ([]chain.Case, error) {
	var wires []wireCase
	err := c.viewFunction(ctx, "get_cases", map[string]interface{}{"skip": skip, "take": take}, &wires)
	if err != nil {
		return nil, err
	}
	out := make([]chain.Case, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

type wireAddress struct {
	Address       string         `json:"address"`
	CaseID        uuid.UUID      `json:"case_id"`
	ReporterID    uuid.UUID      `json:"reporter_id"`
	Risk          uint8          `json:"risk"`
	Category      chain.Category `json:"category"`
	Confirmations uint64         `json:"confirmations"`
}

func (w wireAddress) toEntity() chain.Address {
	return chain.Address{
		Address: w.Address, CaseID: w.CaseID, ReporterID: w.ReporterID,
		Risk: w.Risk, Category: w.Category, Confirmations: w.Confirmations,
	}
}

func (c *Client) GetAddress(ctx context.Context, address string) (chain.Address, error) {
	var w wireAddress
	if err := c.viewFunction(ctx, "get_address", map[string]interface{}{"address": address}, &w); err != nil {
		return chain.Address{}, err
	}
	return w.toEntity(), nil
}

func (c *Client) GetAddressCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := c.viewFunction(ctx, "get_address_count", nil, &n)
	return n, err
}

func (c *Client) GetAddresses(ctx context.Context, skip, take uint64) ([]chain.Address, error) {
	var wires []wireAddress
	err := c.viewFunction(ctx, "get_addresses", map[string]interface{}{"skip": skip, "take": take}, &wires)
	if err != nil {
		return nil, err
	}
	out := make([]chain.Address, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

type wireAsset struct {
	Address       string         `json:"address"`
	AssetID       string         `json:"id"`
	CaseID        uuid.UUID      `json:"case_id"`
	ReporterID    uuid.UUID      `json:"reporter_id"`
	Risk          uint8          `json:"risk"`
	Category      chain.Category `json:"category"`
	Confirmations uint64         `json:"confirmations"`
}

func (w wireAsset) toEntity() chain.Asset {
	return chain.Asset{
		Address: w.Address, AssetID: w.AssetID, CaseID: w.CaseID, ReporterID: w.ReporterID,
		Risk: w.Risk, Category: w.Category, Confirmations: w.Confirmations,
	}
}

func (c *Client) GetAsset(ctx context.Context, address, assetID string) (chain.Asset, error) {
	var w wireAsset
	err := c.viewFunction(ctx, "get_asset", map[string]interface{}{"address": address, "id": assetID}, &w)
	if err != nil {
		return chain.Asset{}, err
	}
	return w.toEntity(), nil
}

func (c *Client) GetAssetCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := c.viewFunction(ctx, "get_asset_count", nil, &n)
	return n, err
}

func (c *Client) GetAssets(ctx context.Context, skip, take uint64) ([]chain.Asset, error) {
	var wires []wireAsset
	err := c.viewFunction(ctx, "get_assets", map[string]interface{}{"skip": skip, "take": take}, &wires)
	if err != nil {
		return nil, err
	}
	out := make([]chain.Asset, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

func (c *Client) GetAuthority(ctx context.Context) (string, error) {
	var s string
	err := c.viewFunction(ctx, "get_authority", nil, &s)
	return s, err
}

func (c *Client) GetStakeConfiguration(ctx context.Context) (chain.StakeConfiguration, error) {
	var w struct {
		Token          string `json:"token"`
		UnlockDuration uint64 `json:"unlock_duration"`
		ValidatorStake string `json:"validator_stake"`
		TracerStake    string `json:"tracer_stake"`
		PublisherStake string `json:"publisher_stake"`
		AuthorityStake string `json:"authority_stake"`
	}
	if err := c.viewFunction(ctx, "get_stake_configuration", nil, &w); err != nil {
		return chain.StakeConfiguration{}, err
	}
	validator, err := chain.AmountFromString(w.ValidatorStake)
	if err != nil {
		return chain.StakeConfiguration{}, err
	}
	tracer, err := chain.AmountFromString(w.TracerStake)
	if err != nil {
		return chain.StakeConfiguration{}, err
	}
	publisher, err := chain.AmountFromString(w.PublisherStake)
	if err != nil {
		return chain.StakeConfiguration{}, err
	}
	authority, err := chain.AmountFromString(w.AuthorityStake)
	if err != nil {
		return chain.StakeConfiguration{}, err
	}
	return chain.StakeConfiguration{
		Token: w.Token, UnlockDuration: w.UnlockDuration,
		ValidatorStake: validator, TracerStake: tracer, PublisherStake: publisher, AuthorityStake: authority,
	}, nil
}

func (c *Client) GetRewardConfiguration(ctx context.Context) (chain.RewardConfiguration, error) {
	var w struct {
		Token                     string `json:"token"`
		AddressConfirmationReward string `json:"address_confirmation_reward"`
		AddressTracerReward       string `json:"address_tracer_reward"`
		AssetConfirmationReward   string `json:"asset_confirmation_reward"`
		AssetTracerReward         string `json:"asset_tracer_reward"`
	}
	if err := c.viewFunction(ctx, "get_reward_configuration", nil, &w); err != nil {
		return chain.RewardConfiguration{}, err
	}
	addrConf, err := chain.AmountFromString(w.AddressConfirmationReward)
	if err != nil {
		return chain.RewardConfiguration{}, err
	}
	addrTracer, err := chain.AmountFromString(w.AddressTracerReward)
	if err != nil {
		return chain.RewardConfiguration{}, err
	}
	assetConf, err := chain.AmountFromString(w.AssetConfirmationReward)
	if err != nil {
		return chain.RewardConfiguration{}, err
	}
	assetTracer, err := chain.AmountFromString(w.AssetTracerReward)
	if err != nil {
		return chain.RewardConfiguration{}, err
	}
	return chain.RewardConfiguration{
		Token: w.Token, AddressConfirmationReward: addrConf, AddressTracerReward: addrTracer,
		AssetConfirmationReward: assetConf, AssetTracerReward: assetTracer,
	}, nil
}

// Mutating calls require a signed transaction against a NEAR-like access
// key this read-oriented indexer never holds; consistent with
// pkg/chain/evm and pkg/chain/solanalike, they report SignerMissing rather
// than fabricating a transaction path.

func (c *Client) SetAuthority(ctx context.Context, newAuthority string) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateStakeConfiguration(ctx context.Context, cfg chain.StakeConfiguration) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateRewardConfiguration(ctx context.Context, cfg chain.RewardConfiguration) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) CreateReporter(ctx context.Context, r chain.Reporter) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateReporter(ctx context.Context, r chain.Reporter) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) ActivateReporter(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) DeactivateReporter(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) Unstake(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) CreateCase(ctx context.Context, cs chain.Case) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateCase(ctx context.Context, cs chain.Case) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) CreateAddress(ctx context.Context, a chain.Address) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateAddress(ctx context.Context, a chain.Address) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) ConfirmAddress(ctx context.Context, in chain.ConfirmAddressInput) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) CreateAsset(ctx context.Context, a chain.Asset) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) UpdateAsset(ctx context.Context, a chain.Asset) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}
func (c *Client) ConfirmAsset(ctx context.Context, in chain.ConfirmAssetInput) (chain.TxHandle, error) {
	return chain.TxHandle{}, chain.SignerMissingError("no access key configured for this near-like client")
}

var _ chain.Client = (*Client)(nil)
