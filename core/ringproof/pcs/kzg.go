package pcs

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
)

// KZG commits and opens polynomials against one SRS through a chosen
// MSM backend.
type KZG struct {
	srs *SRS
	msm MSM
}

// NewKZG builds a committer; msm nil selects the portable backend.
func NewKZG(srs *SRS, msm MSM) *KZG {
	if msm == nil {
		msm = PortableMSM{}
	}
	return &KZG{srs: srs, msm: msm}
}

// SRS exposes the reference string (read-only).
func (k *KZG) SRS() *SRS { return k.srs }

// Opening is an evaluation proof: π commits to the quotient
// (f(x)-y)/(x-z).
type Opening struct {
	Proof bls12381.G1Affine
	Y     fr.Element
}

// Commit returns Σ fᵢ·[τⁱ]₁.
func (k *KZG) Commit(p polynomial.Poly) (bls12381.G1Affine, error) {
	p = p.Trim()
	if len(p) == 0 {
		return bls12381.G1Affine{}, nil
	}
	if len(p) > len(k.srs.G1) {
		return bls12381.G1Affine{}, ErrSRSDegree
	}
	return k.msm.MultiScalarMulG1(k.srs.G1[:len(p)], p)
}

// Open evaluates f at z and commits to the synthetic-division
// quotient.
func (k *KZG) Open(p polynomial.Poly, z *fr.Element) (Opening, error) {
	y := p.Eval(z)
	q := syntheticDiv(p, z)
	proof, err := k.Commit(q)
	if err != nil {
		return Opening{}, err
	}
	return Opening{Proof: proof, Y: y}, nil
}

// syntheticDiv returns q with f(x) - f(z) = (x - z)·q(x).
func syntheticDiv(p polynomial.Poly, z *fr.Element) polynomial.Poly {
	if len(p) == 0 {
		return polynomial.Poly{}
	}
	q := make(polynomial.Poly, len(p)-1)
	var rem fr.Element
	rem = p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		q[i] = rem
		rem.Mul(&rem, z)
		rem.Add(&rem, &p[i])
	}
	return q
}

// Verify checks e(C - [y]₁, [1]₂) == e(π, [τ - z]₂) with a single
// product-of-pairings call.
func (k *KZG) Verify(commitment, proof bls12381.G1Affine, z, y *fr.Element) bool {
	g1, _ := generators()

	var yG, cMinusY bls12381.G1Affine
	yG = scalarMulG1(&g1, y.BigInt())
	cMinusY.Sub(&commitment, &yG)

	var zG2, tauMinusZ bls12381.G2Affine
	zG2.ScalarMultiplication(&k.srs.G2[0], z.BigInt())
	tauMinusZ.Sub(&k.srs.G2[1], &zG2)

	var negProof bls12381.G1Affine
	negProof.Neg(&proof)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{cMinusY, negProof},
		[]bls12381.G2Affine{k.srs.G2[0], tauMinusZ},
	)
	return err == nil && ok
}

// CommitEvals interpolates evaluations over the domain and commits.
func (k *KZG) CommitEvals(d *polynomial.Domain, evals []fr.Element) (bls12381.G1Affine, polynomial.Poly, error) {
	coeffs := d.Interpolate(evals)
	c, err := k.Commit(coeffs)
	return c, coeffs, err
}

// BatchOpen opens the ν-weighted combination of several polynomials at
// one point: callers fold commitments with the same weights.
func (k *KZG) BatchOpen(polys []polynomial.Poly, nus []fr.Element, z *fr.Element) (Opening, error) {
	if len(polys) != len(nus) {
		return Opening{}, errors.New("pcs: weight count mismatch")
	}
	agg := polynomial.Poly{}
	for i := range polys {
		agg = agg.Add(polys[i].ScalarMul(&nus[i]))
	}
	return k.Open(agg, z)
}
