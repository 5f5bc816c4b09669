// Package normalize holds the backend-encoding rules of §4.6: address
// casing/encoding per family, fixed-width byte trimming, and canonical UUID
// rendering. The entity types themselves (and Amount) live in pkg/chain;
// this package is the set of pure encode/decode helpers adapters call at
// the chain boundary, grounded on original_source's per-backend "into()"
// conversions (evm.rs/solana.rs/near.rs getters all convert on-chain
// representations to entities before handing them to the indexer core).
package normalize

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// ChecksumEVMAddress renders an EVM-like address as an EIP-55 checksummed
// 0x-prefixed string (§4.6: "EVM 0x… lowercased-then-EIP-55 checksummed").
func ChecksumEVMAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errInvalidEVMAddress(address)
	}
	return common.HexToAddress(address).Hex(), nil
}

func errInvalidEVMAddress(address string) error {
	return &normalizeError{msg: "not a valid EVM-like address: " + address}
}

type normalizeError struct{ msg string }

func (e *normalizeError) Error() string { return e.msg }

// NearAddress passes a NEAR-like account id through unchanged (§4.6:
// "NEAR-like left as-is").
func NearAddress(address string) string { return address }

// Base58Encode renders raw Solana-like pubkey/signature bytes as base58.
func Base58Encode(raw []byte) string { return base58.Encode(raw) }

// Base58Decode parses a Solana-like base58 string back into raw bytes.
func Base58Decode(s string) ([]byte, error) { return base58.Decode(s) }

// TrimNUL strips trailing NUL padding from a fixed-width on-chain byte
// array, used for the Solana-like backend's 64-byte address and 32-byte
// asset-id encodings (§4.6, §9).
func TrimNUL(raw []byte) string {
	return string(bytes.TrimRight(raw, "\x00"))
}

// PadNUL is the inverse of TrimNUL, used only when the adapter must encode
// a value back into a fixed-width on-chain field (not used in the
// read-only indexer path, kept for symmetry/tests).
func PadNUL(s string, width int) []byte {
	buf := make([]byte, width)
	copy(buf, s)
	return buf
}

// CanonicalUUID renders u in canonical 8-4-4-4-12 hex groups (§4.6). The
// stdlib uuid.UUID.String() already does this; this wrapper exists so
// callers spell the rule out explicitly rather than relying on an implicit
// stringer (documented as a deliberate stdlib-sufficient case in
// SPEC_FULL.md §6.6).
func CanonicalUUID(u uuid.UUID) string { return u.String() }

// UUIDFromU128Hex parses a hex-encoded u128 (as EVM indexed topics carry
// reporter/case ids) into a UUID, matching the original source's
// `Uuid::from_u128(reporter_id.as_u128())`.
func UUIDFromU128Hex(hex string) (uuid.UUID, error) {
	hex = strings.TrimPrefix(hex, "0x")
	for len(hex) < 32 {
		hex = "0" + hex
	}
	if len(hex) > 32 {
		hex = hex[len(hex)-32:]
	}
	return uuid.Parse(hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32])
}
