package nearlike

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

func TestNetworkDescriptorReflectsConfig(t *testing.T) {
	c := NewClient(&Config{ChainName: "near", ContractID: "registry.hapi.near"})
	got := c.NetworkDescriptor()
	if got.Network != "near" || got.ChainID != "registry.hapi.near" {
		t.Errorf("NetworkDescriptor = %+v, want {near registry.hapi.near}", got)
	}
}

func TestIsValidAddressRejectsEmptyAndOverlong(t *testing.T) {
	c := NewClient(&Config{})
	if err := c.IsValidAddress(""); err == nil {
		t.Error("expected an error for an empty account id")
	}

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	if err := c.IsValidAddress(string(long)); err == nil {
		t.Error("expected an error for an account id over 64 bytes")
	}
}

func TestIsValidAddressAcceptsOrdinaryAccountID(t *testing.T) {
	c := NewClient(&Config{})
	if err := c.IsValidAddress("alice.near"); err != nil {
		t.Errorf("IsValidAddress(alice.near): %v", err)
	}
}

func TestWireReporterToEntityParsesStake(t *testing.T) {
	id := uuid.New()
	w := wireReporter{
		ID: id, Account: "alice.near", Role: chain.Validator,
		Status: chain.Active, Name: "alice", URL: "https://alice.near",
		Stake: "1000000", UnlockTimestamp: 42,
	}
	r, err := w.toEntity()
	if err != nil {
		t.Fatalf("toEntity: %v", err)
	}
	if r.ID != id || r.Stake.BigInt().String() != "1000000" {
		t.Errorf("toEntity() = %+v, want stake 1000000 for %s", r, id)
	}
}

func TestWireReporterToEntityRejectsInvalidStake(t *testing.T) {
	w := wireReporter{Stake: "not-a-number"}
	if _, err := w.toEntity(); err == nil {
		t.Error("expected an error for a non-numeric stake")
	}
}

func TestWireCaseToEntity(t *testing.T) {
	id := uuid.New()
	reporterID := uuid.New()
	w := wireCase{ID: id, Name: "case", URL: "https://case.near", Status: chain.Open, ReporterID: reporterID}

	got := w.toEntity()
	if got.ID != id || got.ReporterID != reporterID || got.Name != "case" {
		t.Errorf("toEntity() = %+v", got)
	}
}

func TestWireAddressToEntity(t *testing.T) {
	caseID := uuid.New()
	reporterID := uuid.New()
	w := wireAddress{
		Address: "alice.near", CaseID: caseID, ReporterID: reporterID,
		Risk: 5, Category: chain.CategoryNone, Confirmations: 2,
	}
	got := w.toEntity()
	if got.Address != "alice.near" || got.CaseID != caseID || got.Confirmations != 2 {
		t.Errorf("toEntity() = %+v", got)
	}
}

func TestWireAssetToEntity(t *testing.T) {
	caseID := uuid.New()
	reporterID := uuid.New()
	w := wireAsset{
		Address: "alice.near", AssetID: "nft-1", CaseID: caseID, ReporterID: reporterID,
		Risk: 1, Category: chain.CategoryNone, Confirmations: 9,
	}
	got := w.toEntity()
	if got.AssetID != "nft-1" || got.Confirmations != 9 {
		t.Errorf("toEntity() = %+v", got)
	}
}
