package solanalike

import (
	"encoding/binary"

	"github.com/hapiprotocol/hapi-core-indexer/pkg/chain"
)

// borshReader decodes the little-endian, length-prefixed-string layout
// Solana-like on-chain accounts are serialized in (Borsh). No Borsh library
// is available in the pack, so this is a minimal hand-rolled reader
// covering exactly the primitives the registry's account layout needs.
type borshReader struct {
	buf []byte
	pos int
}

func newBorshReader(buf []byte) *borshReader { return &borshReader{buf: buf} }

func (r *borshReader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return chain.ContractDataError("account data too short to decode", nil)
	}
	return nil
}

func (r *borshReader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *borshReader) u64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *borshReader) pubkey() ([32]byte, error) {
	var out [32]byte
	if err := r.need(32); err != nil {
		return out, err
	}
	copy(out[:], r.buf[r.pos:r.pos+32])
	r.pos += 32
	return out, nil
}

func (r *borshReader) fixed(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *borshReader) str() (string, error) {
	l, err := r.u32()
	if err != nil {
		return "", err
	}
	if err := r.need(int(l)); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

func (r *borshReader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}
