package ringproof

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/lib/params"
)

// Bytes serializes the argument: four witness commitments, seven
// register evaluations, the quotient commitment, the shifted
// linearization evaluation and the two opening proofs. 592 bytes.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, params.RingArgumentBytes)
	for _, c := range []*bls12381.G1Affine{&p.CB, &p.CAccIP, &p.CAccX, &p.CAccY} {
		b := c.Bytes()
		out = append(out, b[:]...)
	}
	for _, e := range []*fr.Element{&p.PxZ, &p.PyZ, &p.SZ, &p.BZ, &p.AccIPZ, &p.AccXZ, &p.AccYZ} {
		b := e.BytesLE()
		out = append(out, b[:]...)
	}
	cq := p.CQ.Bytes()
	out = append(out, cq[:]...)
	lzw := p.LZetaOmega.BytesLE()
	out = append(out, lzw[:]...)
	phiZ := p.PhiZeta.Bytes()
	out = append(out, phiZ[:]...)
	phiZW := p.PhiZetaOmega.Bytes()
	out = append(out, phiZW[:]...)
	return out
}

// ParseProof rejects wrong lengths, off-curve commitments and
// non-canonical scalars.
func ParseProof(data []byte) (*Proof, error) {
	if len(data) != params.RingArgumentBytes {
		return nil, ErrProofEncoding
	}
	p := &Proof{}
	off := 0
	readG1 := func(dst *bls12381.G1Affine) error {
		if _, err := dst.SetBytes(data[off : off+params.G1Bytes]); err != nil {
			return errors.WithMessage(ErrProofEncoding, err.Error())
		}
		off += params.G1Bytes
		return nil
	}
	readFr := func(dst *fr.Element) error {
		if _, ok := dst.SetBytesLE(data[off : off+fr.Bytes]); !ok {
			return ErrProofEncoding
		}
		off += fr.Bytes
		return nil
	}

	for _, c := range []*bls12381.G1Affine{&p.CB, &p.CAccIP, &p.CAccX, &p.CAccY} {
		if err := readG1(c); err != nil {
			return nil, err
		}
	}
	for _, e := range []*fr.Element{&p.PxZ, &p.PyZ, &p.SZ, &p.BZ, &p.AccIPZ, &p.AccXZ, &p.AccYZ} {
		if err := readFr(e); err != nil {
			return nil, err
		}
	}
	if err := readG1(&p.CQ); err != nil {
		return nil, err
	}
	if err := readFr(&p.LZetaOmega); err != nil {
		return nil, err
	}
	if err := readG1(&p.PhiZeta); err != nil {
		return nil, err
	}
	if err := readG1(&p.PhiZetaOmega); err != nil {
		return nil, err
	}
	return p, nil
}
