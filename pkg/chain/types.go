package chain

import (
	"math/big"

	"github.com/google/uuid"
)

// Amount is an unbounded non-negative integer, rendered as a decimal string
// on the wire. Backed by *big.Int so it never truncates a u128/u256 on-chain
// value.
type Amount struct {
	v *big.Int
}

// NewAmount wraps i as an Amount. A nil i is treated as zero.
func NewAmount(i *big.Int) Amount {
	if i == nil {
		return Amount{v: big.NewInt(0)}
	}
	return Amount{v: new(big.Int).Set(i)}
}

// AmountFromUint64 is a convenience constructor for small on-chain values.
func AmountFromUint64(v uint64) Amount {
	return Amount{v: new(big.Int).SetUint64(v)}
}

// AmountFromString parses a decimal string. Used when decoding wire payloads.
func AmountFromString(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, ContractDataError("amount is not a decimal integer: "+s, nil)
	}
	return Amount{v: v}, nil
}

func (a Amount) BigInt() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.v)
}

func (a Amount) IsZero() bool { return a.v == nil || a.v.Sign() == 0 }

func (a Amount) String() string {
	if a.v == nil {
		return "0"
	}
	return a.v.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ContractDataError("amount is not a decimal integer: "+s, nil)
	}
	a.v = v
	return nil
}

// Reporter is the backend-neutral representation of an on-chain reporter.
type Reporter struct {
	ID              uuid.UUID
	Account         string
	Role            ReporterRole
	Status          ReporterStatus
	Name            string
	URL             string
	Stake           Amount
	UnlockTimestamp uint64
}

// Case is the backend-neutral representation of an on-chain case.
type Case struct {
	ID         uuid.UUID
	Name       string
	URL        string
	Status     CaseStatus
	ReporterID uuid.UUID
}

// Address is the backend-neutral representation of an on-chain flagged
// address.
type Address struct {
	Address       string
	CaseID        uuid.UUID
	ReporterID    uuid.UUID
	Risk          uint8
	Category      Category
	Confirmations uint64
}

// Asset is like Address but additionally keyed by an AssetID.
type Asset struct {
	Address       string
	AssetID       string
	CaseID        uuid.UUID
	ReporterID    uuid.UUID
	Risk          uint8
	Category      Category
	Confirmations uint64
}

// StakeConfiguration mirrors the on-chain per-role stake requirements.
type StakeConfiguration struct {
	Token            string
	UnlockDuration   uint64
	ValidatorStake   Amount
	TracerStake      Amount
	PublisherStake   Amount
	AuthorityStake   Amount
}

// RewardConfiguration mirrors the on-chain confirmation reward schedule.
type RewardConfiguration struct {
	Token                   string
	AddressConfirmationReward Amount
	AddressTracerReward       Amount
	AssetConfirmationReward   Amount
	AssetTracerReward         Amount
}

// TxHandle is returned by every mutating Client call.
type TxHandle struct {
	Hash string
}

// ConfirmAddressInput carries the arguments to Client.ConfirmAddress.
type ConfirmAddressInput struct {
	Address string
}

// ConfirmAssetInput carries the arguments to Client.ConfirmAsset.
type ConfirmAssetInput struct {
	Address string
	AssetID string
}
