// Package h2c implements RFC 9380 hash-to-curve for the suites in
// core/math/curve: expand_message_xmd/xof, hash_to_field, the SSWU and
// Elligator 2 mappings and the legacy try-and-increment encoding.
package h2c

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

var (
	ErrExpandLength = errors.New("h2c: requested expansion length out of range")
	ErrDSTLength    = errors.New("h2c: domain separation tag longer than 255 bytes")
)

func hashNew(kind curve.HashKind) (func() hash.Hash, int) {
	switch kind {
	case curve.HashSHA256:
		return sha256.New, 64
	case curve.HashSHA384:
		return sha512.New384, 128
	default:
		return sha512.New, 128
	}
}

// ExpandMessageXMD implements expand_message_xmd with the given hash.
func ExpandMessageXMD(newHash func() hash.Hash, blockSize int, msg, dst []byte, lenInBytes int) ([]byte, error) {
	h := newHash()
	bLen := h.Size()
	ell := (lenInBytes + bLen - 1) / bLen
	if ell > 255 || lenInBytes > 65535 {
		return nil, ErrExpandLength
	}
	if len(dst) > 255 {
		return nil, ErrDSTLength
	}

	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))
	zPad := make([]byte, blockSize)
	lib := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	h.Reset()
	h.Write(zPad)
	h.Write(msg)
	h.Write(lib)
	h.Write([]byte{0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h.Reset()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	bi := h.Sum(nil)

	out := append([]byte{}, bi...)
	for i := 2; i <= ell; i++ {
		x := make([]byte, bLen)
		for j := range x {
			x[j] = b0[j] ^ bi[j]
		}
		h.Reset()
		h.Write(x)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi = h.Sum(nil)
		out = append(out, bi...)
	}
	return out[:lenInBytes], nil
}

// ExpandMessageXOF implements expand_message_xof over SHAKE-256.
func ExpandMessageXOF(msg, dst []byte, lenInBytes int) ([]byte, error) {
	if lenInBytes > 65535 {
		return nil, ErrExpandLength
	}
	if len(dst) > 255 {
		return nil, ErrDSTLength
	}
	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))
	sh := sha3.NewShake256()
	sh.Write(msg)
	sh.Write([]byte{byte(lenInBytes >> 8), byte(lenInBytes)})
	sh.Write(dstPrime)
	out := make([]byte, lenInBytes)
	if _, err := sh.Read(out); err != nil {
		return nil, errors.WithMessage(err, "h2c: shake read")
	}
	return out, nil
}

// expand dispatches on the suite's hash kind.
func expand(c *curve.Curve, msg []byte, lenInBytes int) ([]byte, error) {
	if c.Hash == curve.HashSHAKE256 {
		return ExpandMessageXOF(msg, c.DST, lenInBytes)
	}
	newHash, block := hashNew(c.Hash)
	return ExpandMessageXMD(newHash, block, msg, c.DST, lenInBytes)
}
