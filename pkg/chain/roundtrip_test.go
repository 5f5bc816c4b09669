package chain

import (
	"encoding/json"
	"math/big"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

// TestAmountJSONRoundTrip covers the P4 idempotent-normalization property
// for Amount: decode(encode(v)) == v.
func TestAmountJSONRoundTrip(t *testing.T) {
	want := NewAmount(big.NewInt(123456789))

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Amount
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.BigInt().Cmp(want.BigInt()) != 0 {
		t.Errorf("round trip = %s, want %s", got, want)
	}
}

// TestReporterJSONRoundTrip covers P4 for a full Reporter entity, including
// its Role/Status enum fields.
func TestReporterJSONRoundTrip(t *testing.T) {
	want := Reporter{
		ID:              uuid.New(),
		Account:         "0x5aeda56215b167893e80b4fe645ba6d5bab767de",
		Role:            Validator,
		Status:          Active,
		Name:            "acme tracer",
		URL:             "https://acme.example.com",
		Stake:           NewAmount(big.NewInt(500)),
		UnlockTimestamp: 99,
	}

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Reporter
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

// TestCategoryRoleStatusAcceptBothCanonicalAndNativeSpellings covers P4's
// second half: the parsers must accept both the canonical snake_case form
// and any backend-native alias, not just one.
func TestCategoryRoleStatusAcceptBothCanonicalAndNativeSpellings(t *testing.T) {
	if got, err := ParseCategory("otc_broker"); err != nil || got.String() != "otc_broker" {
		t.Errorf("ParseCategory(otc_broker) = %v, %v", got, err)
	}
	if got, err := ParseCategory("OtcBroker"); err != nil || got.String() != "otc_broker" {
		t.Errorf("ParseCategory(OtcBroker) = %v, %v", got, err)
	}

	if got, err := ParseReporterRole("validator"); err != nil || got != Validator {
		t.Errorf("ParseReporterRole(validator) = %v, %v", got, err)
	}
	if got, err := ParseReporterRole("Validator"); err != nil || got != Validator {
		t.Errorf("ParseReporterRole(Validator) = %v, %v", got, err)
	}

	if got, err := ParseReporterStatus("active"); err != nil || got != Active {
		t.Errorf("ParseReporterStatus(active) = %v, %v", got, err)
	}
	if got, err := ParseCaseStatus("open"); err != nil || got != Open {
		t.Errorf("ParseCaseStatus(open) = %v, %v", got, err)
	}
}
