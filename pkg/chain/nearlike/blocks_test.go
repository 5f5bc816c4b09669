package nearlike

import (
	"encoding/base64"
	"testing"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

func TestJSONArgsDecodesBase64JSON(t *testing.T) {
	raw := `{"id":"3fa85f64-5717-4562-b3fc-2c963f66afa6","risk":7}`
	b64 := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := jsonArgs(b64)
	if err != nil {
		t.Fatalf("jsonArgs: %v", err)
	}
	if got["id"] != "3fa85f64-5717-4562-b3fc-2c963f66afa6" {
		t.Errorf("id = %v, want the uuid string", got["id"])
	}
	if got["risk"].(float64) != 7 {
		t.Errorf("risk = %v, want 7", got["risk"])
	}
}

func TestJSONArgsRejectsInvalidBase64(t *testing.T) {
	if _, err := jsonArgs("not base64!!"); err == nil {
		t.Error("expected an error for invalid base64 input")
	}
}

func TestJSONArgsRejectsInvalidJSON(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString([]byte("not json"))
	if _, err := jsonArgs(b64); err == nil {
		t.Error("expected an error for base64 content that is not valid JSON")
	}
}

func TestDecodeArgsWrapsErrorsAsContractData(t *testing.T) {
	receipt := Receipt{ArgsBase64: "!!!"}
	_, err := DecodeArgs(receipt)
	if err == nil {
		t.Fatal("expected an error for malformed args")
	}
	if !chain.IsKind(err, chain.ContractData) {
		t.Errorf("DecodeArgs error = %v, want a ContractData error", err)
	}
}

func TestDecodeArgsRoundTripsCleanPayload(t *testing.T) {
	raw := `{"method_name":"confirm_address"}`
	receipt := Receipt{ArgsBase64: base64.StdEncoding.EncodeToString([]byte(raw))}

	got, err := DecodeArgs(receipt)
	if err != nil {
		t.Fatalf("DecodeArgs: %v", err)
	}
	if got["method_name"] != "confirm_address" {
		t.Errorf("method_name = %v, want confirm_address", got["method_name"])
	}
}
