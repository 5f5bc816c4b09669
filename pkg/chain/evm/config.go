package evm

import "time"

// Config dials a single EVM-like node and contract, mirroring
// EVMStrategyConfig's shape (pkg/chain/strategy/evm_strategy.go) trimmed
// to what a read/decode-only indexer needs: no signer is required unless
// the operator also wants the Client's mutating calls.
type Config struct {
	RPCURL          string
	ContractAddress string
	ChainName       string
	PrivateKeyHex   string        // optional; only needed for mutating calls
	CallTimeout     time.Duration
}

func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 15 * time.Second
	}
	return &cfg
}
