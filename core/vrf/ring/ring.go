// Package ring glues the Pedersen VRF to the ring membership argument:
// an anonymous VRF whose proof shows the blinded signer key belongs to
// a committed ring without revealing which entry it is.
package ring

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/ringproof"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/core/vrf"
	"github.com/cipherworks/vrf-lib/core/vrf/pedersen"
	"github.com/cipherworks/vrf-lib/lib/params"
)

var (
	ErrKeyNotInRing = ringproof.ErrKeyNotInRing
	ErrProofLength  = errors.New("ring: proof has wrong length")
	ErrRootLength   = errors.New("ring: ring root has wrong length")
)

// Root is the fixed-size ring commitment: the KZG commitments to the
// two key-coordinate columns and the selector column.
type Root struct {
	CPx, CPy, CS bls12381.G1Affine
}

// Bytes returns the 144-byte compressed form.
func (r Root) Bytes() []byte {
	out := make([]byte, 0, params.RingRootBytes)
	for _, c := range []*bls12381.G1Affine{&r.CPx, &r.CPy, &r.CS} {
		b := c.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// ParseRoot decodes and validates a serialized root.
func ParseRoot(data []byte) (Root, error) {
	if len(data) != params.RingRootBytes {
		return Root{}, ErrRootLength
	}
	var r Root
	for i, c := range []*bls12381.G1Affine{&r.CPx, &r.CPy, &r.CS} {
		if _, err := c.SetBytes(data[i*params.G1Bytes : (i+1)*params.G1Bytes]); err != nil {
			return Root{}, errors.WithMessage(vrf.ErrInvalidEncoding, err.Error())
		}
	}
	return r, nil
}

// VRF is the ring VRF over Bandersnatch. The SRS-backed committer and
// the domain parameters are fixed at construction and shared
// read-only across calls.
type VRF struct {
	Params   *ringproof.Params
	KZG      *pcs.KZG
	pedersen pedersen.VRF
}

// New builds a ring VRF for the given domain parameters and committer.
func New(p *ringproof.Params, kzg *pcs.KZG) VRF {
	return VRF{Params: p, KZG: kzg, pedersen: pedersen.New(curve.Bandersnatch())}
}

// toTE moves a Bandersnatch point into the ring proof's coordinate
// representation.
func toTE(p curve.Point) ringproof.TEPoint {
	c := curve.Bandersnatch()
	var out ringproof.TEPoint
	out.X.SetBytesLE(c.Fp.BytesLE(p.X))
	out.Y.SetBytesLE(c.Fp.BytesLE(p.Y))
	return out
}

func toFr(s curve.Scalar) fr.Element {
	var out fr.Element
	out.SetBytesLE(s.BytesLE())
	return out
}

// ConstructRingRoot commits the (padded) ring; the result is
// deterministic in the ring contents and the domain size.
func (v VRF) ConstructRingRoot(pks []curve.Point) (Root, error) {
	fixed, err := v.fixedColumns(pks)
	if err != nil {
		return Root{}, err
	}
	var root Root
	root.CPx, root.CPy, root.CS = fixed.Commitments()
	return root, nil
}

func (v VRF) fixedColumns(pks []curve.Point) (*ringproof.FixedColumns, error) {
	ring := make([]ringproof.TEPoint, len(pks))
	for i, pk := range pks {
		ring[i] = toTE(pk)
	}
	return ringproof.BuildFixedColumns(v.Params, v.KZG, ring)
}

// Prove produces the 784-byte anonymous proof: a Pedersen VRF proof
// followed by the membership argument for its key commitment.
func (v VRF) Prove(sk curve.Scalar, pk curve.Point, alpha, ad []byte, pks []curve.Point) ([]byte, error) {
	signer := -1
	for i := range pks {
		if pks[i].Equal(pk) {
			signer = i
			break
		}
	}
	if signer < 0 {
		return nil, ErrKeyNotInRing
	}

	pedersenProof, blinding, err := v.pedersen.ProveWithBlinding(sk, alpha, ad)
	if err != nil {
		return nil, err
	}

	fixed, err := v.fixedColumns(pks)
	if err != nil {
		return nil, err
	}
	argument, err := ringproof.Prove(v.Params, v.KZG, fixed, signer, toFr(blinding))
	if err != nil {
		return nil, err
	}

	out := v.pedersen.Bytes(pedersenProof)
	out = append(out, argument.Bytes()...)
	return out, nil
}

// Verify checks the Pedersen component and the membership argument
// against the ring root.
func (v VRF) Verify(alpha, ad []byte, root Root, proof []byte) (bool, error) {
	if len(proof) != params.RingProofBytes {
		return false, ErrProofLength
	}
	pedersenProof, err := v.pedersen.FromBytes(proof[:params.PedersenProofBytes])
	if err != nil {
		return false, err
	}
	ok, err := v.pedersen.Verify(alpha, ad, pedersenProof)
	if err != nil || !ok {
		return ok, err
	}

	argument, err := ringproof.ParseProof(proof[params.PedersenProofBytes:])
	if err != nil {
		return false, err
	}
	return ringproof.Verify(
		v.Params, v.KZG,
		[3]bls12381.G1Affine{root.CPx, root.CPy, root.CS},
		toTE(pedersenProof.PKBlind),
		argument,
	)
}

// Hash extracts the VRF output from a ring proof's Pedersen component.
func (v VRF) Hash(proof []byte) ([]byte, error) {
	if len(proof) < params.PedersenProofBytes {
		return nil, ErrProofLength
	}
	p, err := v.pedersen.FromBytes(proof[:params.PedersenProofBytes])
	if err != nil {
		return nil, err
	}
	return v.pedersen.Hash(p), nil
}
