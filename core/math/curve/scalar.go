package curve

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/ff"
)

// Scalar is an element of the prime-order subgroup's scalar field.
// Arithmetic goes through the constant-time saferith backend.
type Scalar struct {
	c *Curve
	v ff.Element
}

// scalarField exposes the order as an ff context.
func (c *Curve) scalarField() *ff.Field {
	return c.orderF
}

// NewScalar returns the zero scalar.
func (c *Curve) NewScalar() Scalar {
	return Scalar{c: c, v: c.scalarField().Zero()}
}

// ScalarFromBig reduces v mod the group order.
func (c *Curve) ScalarFromBig(v *big.Int) Scalar {
	return Scalar{c: c, v: c.scalarField().FromBig(v)}
}

// ScalarFromUint64 returns v as a scalar.
func (c *Curve) ScalarFromUint64(v uint64) Scalar {
	return Scalar{c: c, v: c.scalarField().FromUint64(v)}
}

// ScalarFromBytesLE reduces a little-endian byte string mod the order.
func (c *Curve) ScalarFromBytesLE(b []byte) Scalar {
	return Scalar{c: c, v: c.scalarField().FromBytesLE(b)}
}

// ScalarFromBytesBE reduces a big-endian byte string mod the order.
func (c *Curve) ScalarFromBytesBE(b []byte) Scalar {
	return Scalar{c: c, v: c.scalarField().FromBytesBE(b)}
}

// RandomScalar samples a uniform nonzero scalar from rand.
func (c *Curve) RandomScalar(rand io.Reader) (Scalar, error) {
	buf := make([]byte, c.scalarField().ByteLen()+16)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return Scalar{}, errors.WithMessage(err, "curve: sampling scalar")
		}
		s := c.ScalarFromBytesBE(buf)
		if !s.IsZero() {
			return s, nil
		}
	}
}

// Add returns s + t mod the order.
func (s Scalar) Add(t Scalar) Scalar {
	return Scalar{c: s.c, v: s.c.scalarField().Add(s.v, t.v)}
}

// Sub returns s - t mod the order.
func (s Scalar) Sub(t Scalar) Scalar {
	return Scalar{c: s.c, v: s.c.scalarField().Sub(s.v, t.v)}
}

// Mul returns s·t mod the order.
func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar{c: s.c, v: s.c.scalarField().Mul(s.v, t.v)}
}

// Neg returns -s mod the order.
func (s Scalar) Neg() Scalar {
	return Scalar{c: s.c, v: s.c.scalarField().Neg(s.v)}
}

// Inv returns s⁻¹ mod the order.
func (s Scalar) Inv() Scalar {
	return Scalar{c: s.c, v: s.c.scalarField().Inv(s.v)}
}

// IsZero reports whether s is zero.
func (s Scalar) IsZero() bool {
	return s.c.scalarField().IsZero(s.v)
}

// Equal reports whether s == t.
func (s Scalar) Equal(t Scalar) bool {
	return s.c.scalarField().Equal(s.v, t.v)
}

// Big returns s as a big integer.
func (s Scalar) Big() *big.Int {
	return s.c.scalarField().ToBig(s.v)
}

// BytesLE returns the canonical little-endian encoding, zero-padded to
// 32 bytes, or the order's byte width where that is larger.
func (s Scalar) BytesLE() []byte {
	out := s.c.scalarField().BytesLE(s.v)
	// pad to the wire width
	for len(out) < 32 {
		out = append(out, 0)
	}
	return out
}

// BytesBE returns the canonical big-endian encoding, of the same width
// as BytesLE.
func (s Scalar) BytesBE() []byte {
	le := s.BytesLE()
	out := make([]byte, len(le))
	for i := range le {
		out[len(le)-1-i] = le[i]
	}
	return out
}

// fixedWidthLE returns the scalar as exactly the order's byte width,
// for the fixed-schedule ladders.
func (s Scalar) fixedWidthLE() []byte {
	return s.c.scalarField().BytesLE(s.v)
}
