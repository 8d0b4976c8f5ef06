// Package hash wraps blake3 with length-prefixed domain separation.
// No other package of the library imports it: key derivation in
// core/keys calls blake3 directly, and the Fiat–Shamir transcript of
// the ring proof has its own SHAKE-based implementation for
// cross-library compatibility.
package hash

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the default output length of Sum.
const DigestLengthBytes = 64

// BytesWithDomain tags a byte string with the domain it came from.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// Hash is an extendable-output hash with per-write domain framing.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash seeded with the library tag and any initial data.
func New(initialData ...BytesWithDomain) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("VRF-BLAKE")
	for _, d := range initialData {
		hash.writeBytesWithDomain(d)
	}
	return hash
}

// Digest returns a reader over the current output stream. It snapshots
// the state, so the Hash can keep absorbing afterwards.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns DigestLengthBytes of output for the current state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny absorbs byte slices, binary marshalers and pre-tagged
// values, applying domain separation to each.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return fmt.Errorf("hash.WriteAny: nil []byte")
			}
			hash.writeBytesWithDomain(BytesWithDomain{"[]byte", t})
		case BytesWithDomain:
			hash.writeBytesWithDomain(t)
		case encoding.BinaryMarshaler:
			b, err := t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.WriteAny: %s: %w", reflect.TypeOf(t).String(), err)
			}
			hash.writeBytesWithDomain(BytesWithDomain{reflect.TypeOf(t).String(), b})
		default:
			return fmt.Errorf("hash.WriteAny: invalid type provided as input")
		}
	}
	return nil
}

func (hash *Hash) writeBytesWithDomain(d BytesWithDomain) {
	var sizeBuf [8]byte

	// (<domain_size><domain><data_size><data>) keeps every absorbed
	// item unambiguous.
	_, _ = hash.h.WriteString("(")
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(d.TheDomain)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.WriteString(d.TheDomain)
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(d.Bytes)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.Write(d.Bytes)
	_, _ = hash.h.WriteString(")")
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// Fork clones the hash and absorbs data into the copy.
func (hash *Hash) Fork(data ...interface{}) *Hash {
	newHash := hash.Clone()
	_ = newHash.WriteAny(data...)
	return newHash
}
