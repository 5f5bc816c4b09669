// Package evm implements chain.Client against an EVM-like JSON-RPC node,
// grounded on the ethclient/bind dialing pattern in
// pkg/chain/strategy/evm_strategy.go and on original_source's
// client.rs/src/client/implementations/evm.rs read/decode logic.
package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

// Client talks to one EVM-like contract instance.
type Client struct {
	cfg      *Config
	eth      *ethclient.Client
	abi      abi.ABI
	bound    *bind.BoundContract
	contract common.Address
	chainID  *big.Int
	auth     *bind.TransactOpts // nil unless cfg.PrivateKeyHex was set
}

// NewClient dials cfg.RPCURL and binds cfg.ContractAddress, following the
// same Dial/ChainID/HexToECDSA/NewKeyedTransactorWithChainID sequence as
// NewEVMStrategy.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	cfg = cfg.withDefaults()

	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, chain.InvalidInputError("contract address is not valid hex: "+cfg.ContractAddress, nil)
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, chain.TransportError("dial evm-like rpc node", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, chain.TransportError("fetch chain id", err)
	}

	parsed, err := parsedABI()
	if err != nil {
		return nil, chain.ContractDataError("parse contract abi", err)
	}

	contractAddr := common.HexToAddress(cfg.ContractAddress)
	bound := bind.NewBoundContract(contractAddr, parsed, eth, eth, eth)

	c := &Client{
		cfg:      cfg,
		eth:      eth,
		abi:      parsed,
		bound:    bound,
		contract: contractAddr,
		chainID:  chainID,
	}

	if cfg.PrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(cfg.PrivateKeyHex)
		if err != nil {
			return nil, chain.InvalidInputError("invalid signing key", err)
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, chain.ContractErrorf("build transactor", err)
		}
		c.auth = auth
	}

	return c, nil
}

func (c *Client) NetworkDescriptor() chain.NetworkDescriptor {
	return chain.NetworkDescriptor{Network: c.cfg.ChainName, ChainID: c.chainID.String()}
}

func (c *Client) IsValidAddress(address string) error {
	if !common.IsHexAddress(address) {
		return chain.InvalidInputError("not a valid evm-like address: "+address, nil)
	}
	return nil
}

func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.CallTimeout)
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	var out []interface{}
	err := c.bound.Call(&bind.CallOpts{Context: cctx}, &out, method, args...)
	if err != nil {
		return nil, chain.ContractErrorf(fmt.Sprintf("call %s", method), err)
	}
	return out, nil
}

func (c *Client) transact(ctx context.Context, method string, args ...interface{}) (chain.TxHandle, error) {
	if c.auth == nil {
		return chain.TxHandle{}, chain.SignerMissingError("no signing key configured for this evm-like client")
	}
	cctx, cancel := c.callCtx(ctx)
	defer cancel()

	opts := *c.auth
	opts.Context = cctx

	tx, err := c.bound.Transact(&opts, method, args...)
	if err != nil {
		return chain.TxHandle{}, chain.ContractErrorf(fmt.Sprintf("transact %s", method), err)
	}
	return chain.TxHandle{Hash: tx.Hash().Hex()}, nil
}

func uuidToBig(id uuid.UUID) *big.Int {
	return new(big.Int).SetBytes(id[:])
}

func bigToUUID(v *big.Int) (uuid.UUID, error) {
	return uuidFromHex(fmt.Sprintf("%x", v))
}

// uuidFromHex mirrors normalize.UUIDFromU128Hex without importing the
// normalize package back into chain's dependency graph; both implement the
// same `Uuid::from_u128` rule from the original source.
func uuidFromHex(hex string) (uuid.UUID, error) {
	for len(hex) < 32 {
		hex = "0" + hex
	}
	if len(hex) > 32 {
		hex = hex[len(hex)-32:]
	}
	return uuid.Parse(hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32])
}

func (c *Client) SetAuthority(ctx context.Context, newAuthority string) (chain.TxHandle, error) {
	if err := c.IsValidAddress(newAuthority); err != nil {
		return chain.TxHandle{}, err
	}
	return c.transact(ctx, "setAuthority", common.HexToAddress(newAuthority))
}

func (c *Client) GetAuthority(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "authority")
	if err != nil {
		return "", err
	}
	return out[0].(common.Address).Hex(), nil
}

func (c *Client) UpdateStakeConfiguration(ctx context.Context, cfg chain.StakeConfiguration) (chain.TxHandle, error) {
	return c.transact(ctx, "updateStakeConfiguration",
		common.HexToAddress(cfg.Token), cfg.UnlockDuration,
		cfg.ValidatorStake.BigInt(), cfg.TracerStake.BigInt(),
		cfg.PublisherStake.BigInt(), cfg.AuthorityStake.BigInt())
}

func (c *Client) GetStakeConfiguration(ctx context.Context) (chain.StakeConfiguration, error) {
	out, err := c.call(ctx, "stakeConfiguration")
	if err != nil {
		return chain.StakeConfiguration{}, err
	}
	return chain.StakeConfiguration{
		Token:          out[0].(common.Address).Hex(),
		UnlockDuration: out[1].(uint64),
		ValidatorStake: chain.NewAmount(out[2].(*big.Int)),
		TracerStake:    chain.NewAmount(out[3].(*big.Int)),
		PublisherStake: chain.NewAmount(out[4].(*big.Int)),
		AuthorityStake: chain.NewAmount(out[5].(*big.Int)),
	}, nil
}

func (c *Client) UpdateRewardConfiguration(ctx context.Context, cfg chain.RewardConfiguration) (chain.TxHandle, error) {
	return c.transact(ctx, "updateRewardConfiguration",
		common.HexToAddress(cfg.Token),
		cfg.AddressConfirmationReward.BigInt(), cfg.AddressTracerReward.BigInt(),
		cfg.AssetConfirmationReward.BigInt(), cfg.AssetTracerReward.BigInt())
}

func (c *Client) GetRewardConfiguration(ctx context.Context) (chain.RewardConfiguration, error) {
	out, err := c.call(ctx, "rewardConfiguration")
	if err != nil {
		return chain.RewardConfiguration{}, err
	}
	return chain.RewardConfiguration{
		Token:                     out[0].(common.Address).Hex(),
		AddressConfirmationReward: chain.NewAmount(out[1].(*big.Int)),
		AddressTracerReward:       chain.NewAmount(out[2].(*big.Int)),
		AssetConfirmationReward:   chain.NewAmount(out[3].(*big.Int)),
		AssetTracerReward:         chain.NewAmount(out[4].(*big.Int)),
	}, nil
}

func (c *Client) CreateReporter(ctx context.Context, r chain.Reporter) (chain.TxHandle, error) {
	return c.transact(ctx, "createReporter", uuidToBig(r.ID), common.HexToAddress(r.Account), uint8(r.Role), r.Name, r.URL)
}

func (c *Client) UpdateReporter(ctx context.Context, r chain.Reporter) (chain.TxHandle, error) {
	return c.transact(ctx, "updateReporter", uuidToBig(r.ID), common.HexToAddress(r.Account), uint8(r.Role), r.Name, r.URL)
}

func (c *Client) ActivateReporter(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return c.transact(ctx, "activateReporter", uuidToBig(id))
}

func (c *Client) DeactivateReporter(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return c.transact(ctx, "deactivateReporter", uuidToBig(id))
}

func (c *Client) Unstake(ctx context.Context, id uuid.UUID) (chain.TxHandle, error) {
	return c.transact(ctx, "unstake", uuidToBig(id))
}

func reporterFromTokens(out []interface{}) (chain.Reporter, error) {
	id, err := bigToUUID(out[0].(*big.Int))
	if err != nil {
		return chain.Reporter{}, chain.ContractDataError("decode reporter id", err)
	}
	return chain.Reporter{
		ID:              id,
		Account:         out[1].(common.Address).Hex(),
		Role:            chain.ReporterRole(out[2].(uint8)),
		Status:          chain.ReporterStatus(out[3].(uint8)),
		Name:            out[4].(string),
		URL:             out[5].(string),
		Stake:           chain.NewAmount(out[6].(*big.Int)),
		UnlockTimestamp: out[7].(uint64),
	}, nil
}

func (c *Client) GetReporter(ctx context.Context, id uuid.UUID) (chain.Reporter, error) {
	out, err := c.call(ctx, "getReporter", uuidToBig(id))
	if err != nil {
		return chain.Reporter{}, err
	}
	return reporterFromTokens(out)
}

func (c *Client) GetReporterByAccount(ctx context.Context, account string) (chain.Reporter, error) {
	out, err := c.call(ctx, "getReporterByAccount", common.HexToAddress(account))
	if err != nil {
		return chain.Reporter{}, err
	}
	return reporterFromTokens(out)
}

func (c *Client) GetReporterCount(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "reporterCount")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) GetReporters(ctx context.Context, skip, take uint64) ([]chain.Reporter, error) {
	count, err := c.GetReporterCount(ctx)
	if err != nil {
		return nil, err
	}
	reporters := make([]chain.Reporter, 0, take)
	for i := skip; i < count && i < skip+take; i++ {
		out, err := c.call(ctx, "getReporter", new(big.Int).SetUint64(i))
		if err != nil {
			return nil, err
		}
		r, err := reporterFromTokens(out)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, r)
	}
	return reporters, nil
}

func (c *Client) CreateCase(ctx context.Context, cs chain.Case) (chain.TxHandle, error) {
	return c.transact(ctx, "createCase", uuidToBig(cs.ID), cs.Name, cs.URL)
}

func (c *Client) UpdateCase(ctx context.Context, cs chain.Case) (chain.TxHandle, error) {
	return c.transact(ctx, "updateCase", uuidToBig(cs.ID), cs.Name, cs.URL, uint8(cs.Status))
}

func caseFromTokens(out []interface{}) (chain.Case, error) {
	id, err := bigToUUID(out[0].(*big.Int))
	if err != nil {
		return chain.Case{}, chain.ContractDataError("decode case id", err)
	}
	reporterID, err := bigToUUID(out[4].(*big.Int))
	if err != nil {
		return chain.Case{}, chain.ContractDataError("decode case reporter id", err)
	}
	return chain.Case{
		ID:         id,
		Name:       out[1].(string),
		URL:        out[2].(string),
		Status:     chain.CaseStatus(out[3].(uint8)),
		ReporterID: reporterID,
	}, nil
}

func (c *Client) GetCase(ctx context.Context, id uuid.UUID) (chain.Case, error) {
	out, err := c.call(ctx, "getCase", uuidToBig(id))
	if err != nil {
		return chain.Case{}, err
	}
	return caseFromTokens(out)
}

func (c *Client) GetCaseCount(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "caseCount")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) GetCases(ctx context.Context, skip, take uint64) ([]chain.Case, error) {
	count, err := c.GetCaseCount(ctx)
	if err != nil {
		return nil, err
	}
	cases := make([]chain.Case, 0, take)
	for i := skip; i < count && i < skip+take; i++ {
		out, err := c.call(ctx, "getCase", new(big.Int).SetUint64(i))
		if err != nil {
			return nil, err
		}
		cs, err := caseFromTokens(out)
		if err != nil {
			return nil, err
		}
		cases = append(cases, cs)
	}
	return cases, nil
}

func (c *Client) CreateAddress(ctx context.Context, a chain.Address) (chain.TxHandle, error) {
	return c.transact(ctx, "createAddress", common.HexToAddress(a.Address), uuidToBig(a.CaseID), a.Risk, uint8(a.Category))
}

func (c *Client) UpdateAddress(ctx context.Context, a chain.Address) (chain.TxHandle, error) {
	return c.transact(ctx, "updateAddress", common.HexToAddress(a.Address), a.Risk, uint8(a.Category))
}

func (c *Client) ConfirmAddress(ctx context.Context, in chain.ConfirmAddressInput) (chain.TxHandle, error) {
	return c.transact(ctx, "confirmAddress", common.HexToAddress(in.Address))
}

func addressFromTokens(out []interface{}) (chain.Address, error) {
	caseID, err := bigToUUID(out[1].(*big.Int))
	if err != nil {
		return chain.Address{}, chain.ContractDataError("decode address case id", err)
	}
	reporterID, err := bigToUUID(out[2].(*big.Int))
	if err != nil {
		return chain.Address{}, chain.ContractDataError("decode address reporter id", err)
	}
	category, err := chain.CategoryFromUint8(out[4].(uint8))
	if err != nil {
		return chain.Address{}, err
	}
	return chain.Address{
		Address:       out[0].(common.Address).Hex(),
		CaseID:        caseID,
		ReporterID:    reporterID,
		Risk:          out[3].(uint8),
		Category:      category,
		Confirmations: out[5].(uint64),
	}, nil
}

func (c *Client) GetAddress(ctx context.Context, address string) (chain.Address, error) {
	out, err := c.call(ctx, "getAddress", common.HexToAddress(address))
	if err != nil {
		return chain.Address{}, err
	}
	return addressFromTokens(out)
}

func (c *Client) GetAddressCount(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "addressCount")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) GetAddresses(ctx context.Context, skip, take uint64) ([]chain.Address, error) {
	// The EVM-like contract indexes addresses by account, not by ordinal, so
	// a full paged enumeration requires an off-chain index; this indexer
	// only ever looks addresses up by key (GetAddress), grounded on
	// process_evm_job_log never calling a "list all addresses" path.
	return nil, chain.ContractErrorf("GetAddresses is not supported by the evm-like backend", nil)
}

func (c *Client) CreateAsset(ctx context.Context, a chain.Asset) (chain.TxHandle, error) {
	assetID, ok := new(big.Int).SetString(a.AssetID, 10)
	if !ok {
		return chain.TxHandle{}, chain.InvalidInputError("asset id is not a decimal integer: "+a.AssetID, nil)
	}
	return c.transact(ctx, "createAsset", common.HexToAddress(a.Address), assetID, uuidToBig(a.CaseID), a.Risk, uint8(a.Category))
}

func (c *Client) UpdateAsset(ctx context.Context, a chain.Asset) (chain.TxHandle, error) {
	assetID, ok := new(big.Int).SetString(a.AssetID, 10)
	if !ok {
		return chain.TxHandle{}, chain.InvalidInputError("asset id is not a decimal integer: "+a.AssetID, nil)
	}
	return c.transact(ctx, "updateAsset", common.HexToAddress(a.Address), assetID, a.Risk, uint8(a.Category))
}

func (c *Client) ConfirmAsset(ctx context.Context, in chain.ConfirmAssetInput) (chain.TxHandle, error) {
	assetID, ok := new(big.Int).SetString(in.AssetID, 10)
	if !ok {
		return chain.TxHandle{}, chain.InvalidInputError("asset id is not a decimal integer: "+in.AssetID, nil)
	}
	return c.transact(ctx, "confirmAsset", common.HexToAddress(in.Address), assetID)
}

func assetFromTokens(out []interface{}) (chain.Asset, error) {
	caseID, err := bigToUUID(out[2].(*big.Int))
	if err != nil {
		return chain.Asset{}, chain.ContractDataError("decode asset case id", err)
	}
	reporterID, err := bigToUUID(out[3].(*big.Int))
	if err != nil {
		return chain.Asset{}, chain.ContractDataError("decode asset reporter id", err)
	}
	category, err := chain.CategoryFromUint8(out[5].(uint8))
	if err != nil {
		return chain.Asset{}, err
	}
	return chain.Asset{
		Address:       out[0].(common.Address).Hex(),
		AssetID:       out[1].(*big.Int).String(),
		CaseID:        caseID,
		ReporterID:    reporterID,
		Risk:          out[4].(uint8),
		Category:      category,
		Confirmations: out[6].(uint64),
	}, nil
}

func (c *Client) GetAsset(ctx context.Context, address, assetID string) (chain.Asset, error) {
	id, ok := new(big.Int).SetString(assetID, 10)
	if !ok {
		return chain.Asset{}, chain.InvalidInputError("asset id is not a decimal integer: "+assetID, nil)
	}
	out, err := c.call(ctx, "getAsset", common.HexToAddress(address), id)
	if err != nil {
		return chain.Asset{}, err
	}
	return assetFromTokens(out)
}

func (c *Client) GetAssetCount(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, "assetCount")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (c *Client) GetAssets(ctx context.Context, skip, take uint64) ([]chain.Asset, error) {
	// Same ordinal-enumeration limitation as GetAddresses.
	return nil, chain.ContractErrorf("GetAssets is not supported by the evm-like backend", nil)
}

// LatestBlock returns the chain head, used by the evm adapter to bound
// FetchJobs' block range.
func (c *Client) LatestBlock(ctx context.Context) (uint64, error) {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	n, err := c.eth.BlockNumber(cctx)
	if err != nil {
		return 0, chain.TransportError("fetch latest block number", err)
	}
	return n, nil
}

// LogsInRange returns the contract's raw logs over [fromBlock, toBlock],
// used by the evm adapter's FetchJobs to build LogReference jobs.
func (c *Client) LogsInRange(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	logs, err := c.eth.FilterLogs(cctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{c.contract},
	})
	if err != nil {
		return nil, chain.TransportError("filter logs", err)
	}
	return logs, nil
}

// EarliestLogBlock does an unbounded scan for the contract's first emitted
// log, used to resolve a None cursor to a starting block (§4.2). ok is
// false when the contract has never emitted an event.
func (c *Client) EarliestLogBlock(ctx context.Context) (block uint64, ok bool, err error) {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	logs, err := c.eth.FilterLogs(cctx, ethereum.FilterQuery{
		FromBlock: big.NewInt(0),
		ToBlock:   nil,
		Addresses: []common.Address{c.contract},
	})
	if err != nil {
		return 0, false, chain.TransportError("filter logs for earliest block", err)
	}
	if len(logs) == 0 {
		return 0, false, nil
	}
	return logs[0].BlockNumber, true, nil
}

// EventByTopic resolves a log's topic0 to the ABI event it was emitted by,
// letting the evm adapter dispatch on event_name the same way
// process_evm_job_log matches on `to_ref()`.
func (c *Client) EventByTopic(topic common.Hash) (*abi.Event, error) {
	ev, err := c.abi.EventByID(topic)
	if err != nil {
		return nil, chain.ContractDataError("unrecognized event topic: "+topic.Hex(), err)
	}
	return ev, nil
}

// UnpackLogData unpacks a log's non-indexed fields for the given event.
func (c *Client) UnpackLogData(ev *abi.Event, log types.Log) (map[string]interface{}, error) {
	values := make(map[string]interface{})
	if err := c.abi.UnpackIntoMap(values, ev.Name, log.Data); err != nil {
		return nil, chain.ContractDataError("unpack log data for "+ev.Name, err)
	}
	return values, nil
}

var _ chain.Client = (*Client)(nil)

// BlockTimestamp fetches the timestamp of a block header, used to stamp
// PushEvent.Timestamp for EVM-like jobs (§3).
func (c *Client) BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	header, err := c.eth.HeaderByNumber(cctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, chain.TransportError("fetch block header", err)
	}
	return header.Time, nil
}

