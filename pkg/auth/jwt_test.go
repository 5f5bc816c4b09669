package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestMintAndParseRoundTrip(t *testing.T) {
	secret := []byte("a-very-secret-test-signing-key!")
	id := uuid.New()

	token, err := Mint(secret, id)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	got, err := IndexerIDFromToken(secret, token)
	if err != nil {
		t.Fatalf("IndexerIDFromToken: %v", err)
	}
	if got != id {
		t.Errorf("IndexerIDFromToken = %s, want %s", got, id)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	id := uuid.New()
	token, err := Mint([]byte("secret-one-xxxxxxxxxxxxxxxxxxxxx"), id)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	if _, err := IndexerIDFromToken([]byte("secret-two-xxxxxxxxxxxxxxxxxxxxx"), token); err == nil {
		t.Error("expected an error parsing a token with the wrong secret")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := IndexerIDFromToken([]byte("whatever-secret"), "not.a.jwt"); err == nil {
		t.Error("expected an error parsing a non-JWT string")
	}
}
