package chain

import (
	"context"

	"github.com/google/uuid"
)

// Client is the single polymorphic contract every network family implements
// (§4.1). It is wide on purpose: every backend-specific encoding (checksum
// casing, base58 pubkeys, fixed-width padded strings, u128 ids) is flattened
// here so nothing above this layer ever branches on backend.
//
// Grounded on the one-interface/three-implementations shape of
// pkg/chain/strategy/interface.go, generalized from "write anchors" to
// "read and mutate the compliance registry".
type Client interface {
	// IsValidAddress performs a syntactic check only; it never touches the
	// network.
	IsValidAddress(address string) error

	SetAuthority(ctx context.Context, newAuthority string) (TxHandle, error)
	GetAuthority(ctx context.Context) (string, error)

	UpdateStakeConfiguration(ctx context.Context, cfg StakeConfiguration) (TxHandle, error)
	GetStakeConfiguration(ctx context.Context) (StakeConfiguration, error)

	UpdateRewardConfiguration(ctx context.Context, cfg RewardConfiguration) (TxHandle, error)
	GetRewardConfiguration(ctx context.Context) (RewardConfiguration, error)

	CreateReporter(ctx context.Context, r Reporter) (TxHandle, error)
	UpdateReporter(ctx context.Context, r Reporter) (TxHandle, error)
	ActivateReporter(ctx context.Context, id uuid.UUID) (TxHandle, error)
	DeactivateReporter(ctx context.Context, id uuid.UUID) (TxHandle, error)
	Unstake(ctx context.Context, id uuid.UUID) (TxHandle, error)
	GetReporter(ctx context.Context, id uuid.UUID) (Reporter, error)
	GetReporterByAccount(ctx context.Context, account string) (Reporter, error)
	GetReporterCount(ctx context.Context) (uint64, error)
	GetReporters(ctx context.Context, skip, take uint64) ([]Reporter, error)

	CreateCase(ctx context.Context, c Case) (TxHandle, error)
	UpdateCase(ctx context.Context, c Case) (TxHandle, error)
	GetCase(ctx context.Context, id uuid.UUID) (Case, error)
	GetCaseCount(ctx context.Context) (uint64, error)
	GetCases(ctx context.Context, skip, take uint64) ([]Case, error)

	CreateAddress(ctx context.Context, a Address) (TxHandle, error)
	UpdateAddress(ctx context.Context, a Address) (TxHandle, error)
	ConfirmAddress(ctx context.Context, in ConfirmAddressInput) (TxHandle, error)
	GetAddress(ctx context.Context, address string) (Address, error)
	GetAddressCount(ctx context.Context) (uint64, error)
	GetAddresses(ctx context.Context, skip, take uint64) ([]Address, error)

	CreateAsset(ctx context.Context, a Asset) (TxHandle, error)
	UpdateAsset(ctx context.Context, a Asset) (TxHandle, error)
	ConfirmAsset(ctx context.Context, in ConfirmAssetInput) (TxHandle, error)
	GetAsset(ctx context.Context, address, assetID string) (Asset, error)
	GetAssetCount(ctx context.Context) (uint64, error)
	GetAssets(ctx context.Context, skip, take uint64) ([]Asset, error)

	// NetworkDescriptor identifies which backend family and endpoint this
	// client talks to, carried through into every PushPayload.
	NetworkDescriptor() NetworkDescriptor
}

// NetworkDescriptor is the {network, chain_id} pair carried in every webhook
// payload (§6).
type NetworkDescriptor struct {
	Network string
	ChainID string
}
