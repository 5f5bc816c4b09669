package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

func TestUUIDBigRoundTrip(t *testing.T) {
	want := uuid.New()
	got, err := bigToUUID(uuidToBig(want))
	if err != nil {
		t.Fatalf("bigToUUID: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %s, want %s", got, want)
	}
}

func TestUUIDFromHexPadsShortValues(t *testing.T) {
	got, err := uuidFromHex("abc")
	if err != nil {
		t.Fatalf("uuidFromHex: %v", err)
	}
	want := uuid.MustParse("00000000-0000-0000-0000-000000000abc")
	if got != want {
		t.Errorf("uuidFromHex(\"abc\") = %s, want %s", got, want)
	}
}

func TestUUIDFromHexTruncatesOverlongValues(t *testing.T) {
	got, err := uuidFromHex("ffffffffffffffffffffffffffffffffabc")
	if err != nil {
		t.Fatalf("uuidFromHex: %v", err)
	}
	want := uuid.MustParse("ffffffff-ffff-ffff-ffff-fffffffffabc")
	if got != want {
		t.Errorf("uuidFromHex should keep only the low 32 hex digits, got %s want %s", got, want)
	}
}

func TestReporterFromTokensDecodesID(t *testing.T) {
	id := uuid.New()
	out := []interface{}{
		uuidToBig(id),
		common.HexToAddress("0x5aeda56215b167893e80b4fe645ba6d5bab767d"),
		uint8(1),
		uint8(2),
		"acme tracer",
		"https://acme.example.com",
		big.NewInt(1000),
		uint64(123456),
	}
	r, err := reporterFromTokens(out)
	if err != nil {
		t.Fatalf("reporterFromTokens: %v", err)
	}
	if r.ID != id {
		t.Errorf("ID = %s, want %s", r.ID, id)
	}
	if r.Name != "acme tracer" {
		t.Errorf("Name = %s, want acme tracer", r.Name)
	}
	if r.UnlockTimestamp != 123456 {
		t.Errorf("UnlockTimestamp = %d, want 123456", r.UnlockTimestamp)
	}
}

func TestCaseFromTokensDecodesBothIDs(t *testing.T) {
	caseID := uuid.New()
	reporterID := uuid.New()
	out := []interface{}{
		uuidToBig(caseID),
		"money laundering ring",
		"https://case.example.com",
		uint8(1),
		uuidToBig(reporterID),
	}
	cs, err := caseFromTokens(out)
	if err != nil {
		t.Fatalf("caseFromTokens: %v", err)
	}
	if cs.ID != caseID || cs.ReporterID != reporterID {
		t.Errorf("caseFromTokens IDs = (%s, %s), want (%s, %s)", cs.ID, cs.ReporterID, caseID, reporterID)
	}
}

func TestAddressFromTokensRejectsUnknownCategory(t *testing.T) {
	out := []interface{}{
		common.HexToAddress("0x5aeda56215b167893e80b4fe645ba6d5bab767d"),
		uuidToBig(uuid.New()),
		uuidToBig(uuid.New()),
		uint8(5),
		uint8(255),
		uint64(0),
	}
	if _, err := addressFromTokens(out); err == nil {
		t.Error("expected an error for an out-of-range category byte")
	}
}

func TestAssetFromTokensDecodesDecimalAssetID(t *testing.T) {
	out := []interface{}{
		common.HexToAddress("0x5aeda56215b167893e80b4fe645ba6d5bab767d"),
		big.NewInt(987654321),
		uuidToBig(uuid.New()),
		uuidToBig(uuid.New()),
		uint8(1),
		uint8(int(chain.CategoryNone)),
		uint64(3),
	}
	a, err := assetFromTokens(out)
	if err != nil {
		t.Fatalf("assetFromTokens: %v", err)
	}
	if a.AssetID != "987654321" {
		t.Errorf("AssetID = %s, want 987654321", a.AssetID)
	}
	if a.Confirmations != 3 {
		t.Errorf("Confirmations = %d, want 3", a.Confirmations)
	}
}
