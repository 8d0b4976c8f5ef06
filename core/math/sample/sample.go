// Package sample draws field and scalar values from an arbitrary
// entropy or digest stream.
package sample

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

// overshoot widens the raw draw so the modular reduction bias is
// below 2⁻¹²⁸.
const overshoot = 16

// Scalar samples a uniform scalar of the curve's prime subgroup from
// rand, falling back to crypto/rand when rand is nil.
func Scalar(rand io.Reader, c *curve.Curve) (curve.Scalar, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	buf := make([]byte, (c.Order.BitLen()+7)/8+overshoot)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return curve.Scalar{}, errors.WithMessage(err, "sample: reading scalar bytes")
	}
	return c.ScalarFromBytesBE(buf), nil
}

// Bytes fills a fresh n-byte slice from rand.
func Bytes(rand io.Reader, n int) ([]byte, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(rand, out); err != nil {
		return nil, errors.WithMessage(err, "sample: reading bytes")
	}
	return out, nil
}
