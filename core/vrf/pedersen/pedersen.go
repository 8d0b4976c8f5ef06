// Package pedersen implements the Pedersen VRF: the IETF scheme with
// the public key replaced by a commitment sk·G + b·B under the suite's
// second generator, so verification never sees the signer's key.
package pedersen

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/core/math/sample"
	"github.com/cipherworks/vrf-lib/core/vrf"
	"github.com/cipherworks/vrf-lib/lib/params"
)

// Proof carries (gamma, pkBlind, R, Ok, s, sb); 192 bytes on
// Bandersnatch.
type Proof struct {
	Gamma   curve.Point
	PKBlind curve.Point
	R       curve.Point
	Ok      curve.Point
	S       curve.Scalar
	Sb      curve.Scalar
}

// VRF binds the scheme to one suite; Rand supplies the blinding
// entropy and defaults to crypto/rand.
type VRF struct {
	Suite *curve.Curve
	Rand  io.Reader
}

// New returns the Pedersen VRF over the given suite.
func New(suite *curve.Curve) VRF {
	return VRF{Suite: suite, Rand: rand.Reader}
}

// Prove generates a proof with a fresh blinding factor.
func (v VRF) Prove(sk curve.Scalar, alpha, ad []byte) (Proof, error) {
	p, _, err := v.ProveWithBlinding(sk, alpha, ad)
	return p, err
}

// ProveWithBlinding additionally returns the blinding factor so a ring
// argument can be built on the same commitment.
func (v VRF) ProveWithBlinding(sk curve.Scalar, alpha, ad []byte) (Proof, curve.Scalar, error) {
	c := v.Suite
	input, err := vrf.Input(c, alpha, nil)
	if err != nil {
		return Proof{}, curve.Scalar{}, errors.WithMessage(err, "pedersen: deriving input point")
	}
	gamma := vrf.Output(c, sk, input)

	b, err := sample.Scalar(v.Rand, c)
	if err != nil {
		return Proof{}, curve.Scalar{}, err
	}

	blindBase := c.BlindingBase()
	pkBlind := c.Add(c.ScalarBaseMul(sk), c.ScalarMul(blindBase, b))

	k := vrf.GenerateNonce(c, sk, input)
	kb := vrf.GenerateNonce(c, b, input)
	r := c.Add(c.ScalarBaseMul(k), c.ScalarMul(blindBase, kb))
	ok := c.ScalarMul(input, k)

	ch := vrf.Challenge(c, []curve.Point{pkBlind, input, gamma, r, ok}, ad)
	s := k.Add(ch.Mul(sk))
	sb := kb.Add(ch.Mul(b))

	return Proof{Gamma: gamma, PKBlind: pkBlind, R: r, Ok: ok, S: s, Sb: sb}, b, nil
}

// Verify checks both commitment equations:
//
//	s·H == Ok + c·gamma
//	s·G + sb·B == R + c·pkBlind
func (v VRF) Verify(alpha, ad []byte, p Proof) (bool, error) {
	c := v.Suite
	input, err := vrf.Input(c, alpha, nil)
	if err != nil {
		return false, errors.WithMessage(err, "pedersen: deriving input point")
	}
	ch := vrf.Challenge(c, []curve.Point{p.PKBlind, input, p.Gamma, p.R, p.Ok}, ad)

	lhs0 := c.ScalarMul(input, p.S)
	rhs0 := c.DoubleScalarMul(ch, p.Gamma, c.ScalarFromUint64(1), p.Ok)
	if !lhs0.Equal(rhs0) {
		return false, nil
	}

	lhs1 := c.DoubleScalarMul(p.S, c.Generator(), p.Sb, c.BlindingBase())
	rhs1 := c.DoubleScalarMul(ch, p.PKBlind, c.ScalarFromUint64(1), p.R)
	return lhs1.Equal(rhs1), nil
}

// Hash returns the VRF output bound to the proof's gamma.
func (v VRF) Hash(p Proof) []byte {
	return vrf.ProofToHash(v.Suite, p.Gamma)
}

// Bytes serializes gamma ‖ pkBlind ‖ R ‖ Ok ‖ s ‖ sb.
func (v VRF) Bytes(p Proof) []byte {
	c := v.Suite
	out := c.Encode(p.Gamma)
	out = append(out, c.Encode(p.PKBlind)...)
	out = append(out, c.Encode(p.R)...)
	out = append(out, c.Encode(p.Ok)...)
	out = append(out, p.S.BytesLE()...)
	out = append(out, p.Sb.BytesLE()...)
	return out
}

// FromBytes parses a serialized proof.
func (v VRF) FromBytes(data []byte) (Proof, error) {
	c := v.Suite
	if c.Shape != curve.TwistedEdwards {
		return Proof{}, errors.New("pedersen: serialization requires a compressed-point suite")
	}
	ptLen := c.PointLen()
	if len(data) != 4*ptLen+2*params.ScalarBytes {
		return Proof{}, vrf.ErrInvalidEncoding
	}
	pts := make([]curve.Point, 4)
	for i := range pts {
		p, err := c.Decode(data[i*ptLen : (i+1)*ptLen])
		if err != nil {
			return Proof{}, errors.WithMessage(vrf.ErrInvalidEncoding, err.Error())
		}
		pts[i] = p
	}
	s := c.ScalarFromBytesLE(data[4*ptLen : 4*ptLen+params.ScalarBytes])
	sb := c.ScalarFromBytesLE(data[4*ptLen+params.ScalarBytes:])
	return Proof{Gamma: pts[0], PKBlind: pts[1], R: pts[2], Ok: pts[3], S: s, Sb: sb}, nil
}
