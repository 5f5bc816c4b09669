package solanalike

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBorshReaderPrimitives(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x7) // u8

	u32 := make([]byte, 4)
	binary.LittleEndian.PutUint32(u32, 12)
	buf.Write(u32) // string length prefix

	buf.WriteString("hello world!")

	u64 := make([]byte, 8)
	binary.LittleEndian.PutUint64(u64, 1234567890123)
	buf.Write(u64)

	var pubkey [32]byte
	for i := range pubkey {
		pubkey[i] = byte(i)
	}
	buf.Write(pubkey[:])

	buf.Write([]byte{0xde, 0xad, 0xbe, 0xef})

	r := newBorshReader(buf.Bytes())

	gotU8, err := r.u8()
	if err != nil || gotU8 != 0x7 {
		t.Fatalf("u8() = %v, %v; want 0x7, nil", gotU8, err)
	}

	gotStr, err := r.str()
	if err != nil || gotStr != "hello world!" {
		t.Fatalf("str() = %q, %v; want %q, nil", gotStr, err, "hello world!")
	}

	gotU64, err := r.u64()
	if err != nil || gotU64 != 1234567890123 {
		t.Fatalf("u64() = %v, %v; want 1234567890123, nil", gotU64, err)
	}

	gotPubkey, err := r.pubkey()
	if err != nil || gotPubkey != pubkey {
		t.Fatalf("pubkey() = %v, %v; want %v, nil", gotPubkey, err, pubkey)
	}

	gotFixed, err := r.fixed(4)
	if err != nil || !bytes.Equal(gotFixed, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("fixed(4) = %v, %v; want [de ad be ef], nil", gotFixed, err)
	}
}

func TestBorshReaderShortBufferErrors(t *testing.T) {
	r := newBorshReader([]byte{0x1, 0x2, 0x3})

	if _, err := r.u64(); err == nil {
		t.Error("u64() on a 3-byte buffer should fail")
	}

	r2 := newBorshReader([]byte{0x1, 0x2, 0x3})
	if _, err := r2.pubkey(); err == nil {
		t.Error("pubkey() on a 3-byte buffer should fail")
	}

	r3 := newBorshReader(nil)
	if _, err := r3.u8(); err == nil {
		t.Error("u8() on an empty buffer should fail")
	}
}

func TestBorshReaderStringLengthExceedsBuffer(t *testing.T) {
	u32 := make([]byte, 4)
	binary.LittleEndian.PutUint32(u32, 100)
	r := newBorshReader(u32)

	if _, err := r.str(); err == nil {
		t.Error("str() should fail when the declared length exceeds the remaining buffer")
	}
}

func TestBorshReaderSequentialReadsAdvancePosition(t *testing.T) {
	r := newBorshReader([]byte{0x1, 0x2, 0x3, 0x4})

	a, err := r.u8()
	if err != nil || a != 1 {
		t.Fatalf("first u8() = %v, %v", a, err)
	}
	b, err := r.fixed(3)
	if err != nil || !bytes.Equal(b, []byte{2, 3, 4}) {
		t.Fatalf("fixed(3) after u8() = %v, %v", b, err)
	}
	if _, err := r.u8(); err == nil {
		t.Error("reading past the end of the buffer should fail")
	}
}
