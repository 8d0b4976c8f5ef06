package ringproof

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/core/ringproof/transcript"
)

// Verify checks the argument against the ring root commitments and the
// claimed relation point (pkBlind). The transcript is replayed in the
// prover's order, the constraint contributions at ζ are recombined
// into the quotient value, and both batched openings are checked with
// one pairing equation each.
func Verify(p *Params, kzg *pcs.KZG, ringRoot [3]bls12381.G1Affine, pkBlind TEPoint, proof *Proof) (bool, error) {
	bandersInit()
	resultPlusSeed := teAdd(SeedPoint(), pkBlind)

	t := transcript.New(labelProtocol)
	absorbVK(t, kzg.SRS(), ringRoot)
	absorbInstance(t, resultPlusSeed)
	appendG1(t, labelCols, &proof.CB, &proof.CAccIP, &proof.CAccX, &proof.CAccY)
	alphas := t.Challenges(labelAlphas, numGates)

	appendG1(t, labelQuotient, &proof.CQ)
	zeta := t.Challenge(labelZeta)
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &p.Domain.Omega)

	zh := p.Domain.VanishingEval(&zeta)
	if zh.IsZero() {
		// ζ landed inside the domain; the quotient identity is
		// undefined there.
		return false, ErrInternal
	}

	absorbEvals(t, proof)
	nus := t.Challenges(labelNus, numNus)

	cz, err := constraintContributions(p, resultPlusSeed, &zeta, proof)
	if err != nil {
		return false, err
	}

	// q(ζ) = (Σ αᵢ·cᵢ(ζ) + ℓ(ζω)) · Π(ζ - ω^(N-k)) / (ζ^N - 1)
	var sum, tmp fr.Element
	for i := 0; i < numGates; i++ {
		tmp.Mul(&alphas[i], &cz[i])
		sum.Add(&sum, &tmp)
	}
	sum.Add(&sum, &proof.LZetaOmega)

	prod := fr.One()
	for _, root := range p.vanishingTriple() {
		tmp.Sub(&zeta, &root)
		prod.Mul(&prod, &tmp)
	}
	var qZ fr.Element
	qZ.Mul(&sum, &prod)
	tmp.Inverse(&zh)
	qZ.Mul(&qZ, &tmp)

	// Batched opening at ζ over the eight committed registers.
	commitments := [numNus]bls12381.G1Affine{
		ringRoot[0], ringRoot[1], ringRoot[2],
		proof.CB, proof.CAccIP, proof.CAccX, proof.CAccY,
		proof.CQ,
	}
	evals := [numNus]fr.Element{
		proof.PxZ, proof.PyZ, proof.SZ,
		proof.BZ, proof.AccIPZ, proof.AccXZ, proof.AccYZ,
		qZ,
	}
	var cAgg bls12381.G1Affine
	var cJac bls12381.G1Jac
	var aggEval fr.Element
	for i := 0; i < numNus; i++ {
		var term bls12381.G1Jac
		var scaled bls12381.G1Affine
		scaled.ScalarMultiplication(&commitments[i], nus[i].BigInt())
		term.FromAffine(&scaled)
		cJac.AddAssign(&term)

		tmp.Mul(&nus[i], &evals[i])
		aggEval.Add(&aggEval, &tmp)
	}
	cAgg.FromJacobian(&cJac)
	if !kzg.Verify(cAgg, proof.PhiZeta, &zeta, &aggEval) {
		return false, nil
	}

	// Linearization commitment: the shifted registers weighted by the
	// same ζ-dependent factors the prover used.
	lin := linearizationCoeffs(p, &zeta, proof)
	shiftedCommits := [numShiftGates]bls12381.G1Affine{proof.CAccIP, proof.CAccX, proof.CAccY}
	var clJac bls12381.G1Jac
	for i := 0; i < numShiftGates; i++ {
		var w fr.Element
		w.Mul(&lin[i], &alphas[i])
		var scaled bls12381.G1Affine
		scaled.ScalarMultiplication(&shiftedCommits[i], w.BigInt())
		var term bls12381.G1Jac
		term.FromAffine(&scaled)
		clJac.AddAssign(&term)
	}
	var cl bls12381.G1Affine
	cl.FromJacobian(&clJac)
	if !kzg.Verify(cl, proof.PhiZetaOmega, &zetaOmega, &proof.LZetaOmega) {
		return false, nil
	}
	return true, nil
}

// constraintContributions evaluates the non-shifted part of every gate
// at ζ from the opened register values (the shifted parts live in the
// linearization polynomial).
func constraintContributions(p *Params, resultPlusSeed TEPoint, zeta *fr.Element, pr *Proof) ([numGates]fr.Element, error) {
	var out [numGates]fr.Element

	l0, err := p.Domain.EvalLagrange(0, zeta)
	if err != nil {
		return out, ErrInternal
	}
	lLast, err := p.Domain.EvalLagrange(p.lastIndex(), zeta)
	if err != nil {
		return out, ErrInternal
	}

	var scalarTerm fr.Element
	nl := p.notLastRoot()
	scalarTerm.Sub(zeta, &nl)

	oneEl := fr.One()
	var oneMinusB fr.Element
	oneMinusB.Sub(&oneEl, &pr.BZ)

	x1, y1 := pr.AccXZ, pr.AccYZ
	x2, y2 := pr.PxZ, pr.PyZ
	seed := SeedPoint()

	var t1, t2 fr.Element

	// c1 with accip(ωζ) zeroed: -(accip + b·s)·(ζ - ω^(N-4))
	t1.Mul(&pr.BZ, &pr.SZ)
	t1.Add(&t1, &pr.AccIPZ)
	t1.Neg(&t1)
	out[0].Mul(&t1, &scalarTerm)

	// c2 with x₃ = 0: (b·(-(x₁y₁ + x₂y₂)) + (1-b)(-x₁))·(ζ - ω^(N-4))
	t1.Mul(&x1, &y1)
	t2.Mul(&x2, &y2)
	t1.Add(&t1, &t2)
	t1.Neg(&t1)
	t1.Mul(&t1, &pr.BZ)
	t2.Neg(&x1)
	t2.Mul(&t2, &oneMinusB)
	t1.Add(&t1, &t2)
	out[1].Mul(&t1, &scalarTerm)

	// c3 with y₃ = 0: (b·(-(x₁y₁ - x₂y₂)) + (1-b)(-y₁))·(ζ - ω^(N-4))
	t1.Mul(&x1, &y1)
	t2.Mul(&x2, &y2)
	t1.Sub(&t1, &t2)
	t1.Neg(&t1)
	t1.Mul(&t1, &pr.BZ)
	t2.Neg(&y1)
	t2.Mul(&t2, &oneMinusB)
	t1.Add(&t1, &t2)
	out[2].Mul(&t1, &scalarTerm)

	// c4
	out[3].Mul(&pr.BZ, &oneMinusB)

	// c5, c6, c7 boundary gates
	t1.Sub(&x1, &seed.X)
	t1.Mul(&t1, &l0)
	t2.Sub(&x1, &resultPlusSeed.X)
	t2.Mul(&t2, &lLast)
	out[4].Add(&t1, &t2)

	t1.Sub(&y1, &seed.Y)
	t1.Mul(&t1, &l0)
	t2.Sub(&y1, &resultPlusSeed.Y)
	t2.Mul(&t2, &lLast)
	out[5].Add(&t1, &t2)

	t1.Mul(&pr.AccIPZ, &l0)
	t2.Sub(&pr.AccIPZ, &oneEl)
	t2.Mul(&t2, &lLast)
	out[6].Add(&t1, &t2)

	return out, nil
}
