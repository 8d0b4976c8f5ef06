// Package ietf implements the RFC 9381 VRF over any configured suite.
package ietf

import (
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/core/vrf"
)

// Proof is the short VRF proof (gamma, c, s).
type Proof struct {
	Gamma curve.Point
	C     curve.Scalar
	S     curve.Scalar
}

// VRF binds the scheme to one suite.
type VRF struct {
	Suite *curve.Curve
}

// New returns the IETF VRF over the given suite.
func New(suite *curve.Curve) VRF {
	return VRF{Suite: suite}
}

// PublicKey returns sk·G.
func (v VRF) PublicKey(sk curve.Scalar) curve.Point {
	return v.Suite.ScalarBaseMul(sk)
}

// Prove generates the proof for (alpha, ad) under sk.
func (v VRF) Prove(sk curve.Scalar, alpha, ad []byte) (Proof, error) {
	c := v.Suite
	input, err := vrf.Input(c, alpha, nil)
	if err != nil {
		return Proof{}, errors.WithMessage(err, "ietf: deriving input point")
	}
	gamma := vrf.Output(c, sk, input)
	pk := c.ScalarBaseMul(sk)

	k := vrf.GenerateNonce(c, sk, input)
	u := c.ScalarBaseMul(k)
	w := c.ScalarMul(input, k)

	ch := vrf.Challenge(c, []curve.Point{pk, input, gamma, u, w}, ad)
	s := k.Add(ch.Mul(sk))
	return Proof{Gamma: gamma, C: ch, S: s}, nil
}

// Verify checks the proof against pk and (alpha, ad).
func (v VRF) Verify(pk curve.Point, alpha, ad []byte, p Proof) (bool, error) {
	c := v.Suite
	input, err := vrf.Input(c, alpha, nil)
	if err != nil {
		return false, errors.WithMessage(err, "ietf: deriving input point")
	}
	// U = s·G - c·pk, V = s·H - c·gamma
	u := c.DoubleScalarMul(p.S, c.Generator(), p.C.Neg(), pk)
	w := c.DoubleScalarMul(p.S, input, p.C.Neg(), p.Gamma)

	expected := vrf.Challenge(c, []curve.Point{pk, input, p.Gamma, u, w}, ad)
	return expected.Equal(p.C), nil
}

// Hash returns the VRF output bound to the proof's gamma.
func (v VRF) Hash(p Proof) []byte {
	return vrf.ProofToHash(v.Suite, p.Gamma)
}

// Bytes serializes gamma ‖ c ‖ s with the challenge truncated to the
// suite's length; 96 bytes on Bandersnatch.
func (v VRF) Bytes(p Proof) []byte {
	c := v.Suite
	out := c.Encode(p.Gamma)
	out = append(out, p.C.BytesLE()[:c.ChallengeLen]...)
	out = append(out, p.S.BytesLE()...)
	return out
}

// FromBytes parses a serialized proof, validating the point encoding.
func (v VRF) FromBytes(data []byte) (Proof, error) {
	c := v.Suite
	ptLen := c.PointLen()
	sLen := len(c.NewScalar().BytesLE())
	if len(data) != ptLen+c.ChallengeLen+sLen {
		return Proof{}, vrf.ErrInvalidEncoding
	}
	gamma, err := c.Decode(data[:ptLen])
	if err != nil {
		return Proof{}, errors.WithMessage(vrf.ErrInvalidEncoding, err.Error())
	}
	ch := c.ScalarFromBytesLE(data[ptLen : ptLen+c.ChallengeLen])
	s := c.ScalarFromBytesLE(data[ptLen+c.ChallengeLen:])
	return Proof{Gamma: gamma, C: ch, S: s}, nil
}
