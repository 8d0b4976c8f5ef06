package ringproof

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/core/ringproof/transcript"
)

// transcript labels, fixed by the proof format.
var (
	labelProtocol    = []byte("Bandersnatch_SHA-512_ELL2")
	labelVK          = []byte("vk")
	labelInstance    = []byte("instance")
	labelCols        = []byte("committed_cols")
	labelAlphas      = []byte("constraints_aggregation")
	labelQuotient    = []byte("quotient")
	labelZeta        = []byte("evaluation_point")
	labelEvals       = []byte("register_evaluations")
	labelShiftedEval = []byte("shifted_linearization_evaluation")
	labelNus         = []byte("kzg_aggregation")
)

const (
	numGates      = 7
	numNus        = 8
	numShiftGates = 3
)

// Proof is the 592-byte ring membership argument.
type Proof struct {
	CB, CAccIP, CAccX, CAccY bls12381.G1Affine

	PxZ, PyZ, SZ, BZ, AccIPZ, AccXZ, AccYZ fr.Element

	CQ         bls12381.G1Affine
	LZetaOmega fr.Element

	PhiZeta, PhiZetaOmega bls12381.G1Affine
}

func appendG1(t *transcript.Transcript, label []byte, pts ...*bls12381.G1Affine) {
	buf := make([]byte, 0, 96*len(pts))
	for _, p := range pts {
		raw := p.RawBytes()
		buf = append(buf, raw[:]...)
	}
	t.Add(label, buf)
}

// absorbVK binds the transcript to the SRS generators and the ring
// root commitments.
func absorbVK(t *transcript.Transcript, srs *pcs.SRS, fixed [3]bls12381.G1Affine) {
	buf := make([]byte, 0, 96+2*192+3*96)
	g1 := srs.G1[0].RawBytes()
	buf = append(buf, g1[:]...)
	for i := range srs.G2 {
		g2 := srs.G2[i].RawBytes()
		buf = append(buf, g2[:]...)
	}
	for i := range fixed {
		c := fixed[i].RawBytes()
		buf = append(buf, c[:]...)
	}
	t.Add(labelVK, buf)
}

func absorbInstance(t *transcript.Transcript, result TEPoint) {
	x := result.X.BytesLE()
	y := result.Y.BytesLE()
	t.Add(labelInstance, append(x[:], y[:]...))
}

// linearizationCoeffs returns the ζ-dependent scalars the shifted
// registers are weighted by: the recurrence gate contributes 1, the
// two TE gates contribute the bracketed factors of x₃ and y₃. All are
// multiplied by (ζ - ω^(N-4)).
func linearizationCoeffs(p *Params, zeta *fr.Element, evals *Proof) [numShiftGates]fr.Element {
	var scalarTerm fr.Element
	nl := p.notLastRoot()
	scalarTerm.Sub(zeta, &nl)

	oneEl := fr.One()
	var oneMinusB fr.Element
	oneMinusB.Sub(&oneEl, &evals.BZ)

	// x₃ factor: b(y₁y₂ + a·x₁x₂) + (1-b)
	var cx, t fr.Element
	cx.Mul(&evals.AccYZ, &evals.PyZ)
	t.Mul(&evals.AccXZ, &evals.PxZ)
	t.Mul(&t, &edwardsA)
	cx.Add(&cx, &t)
	cx.Mul(&cx, &evals.BZ)
	cx.Add(&cx, &oneMinusB)
	cx.Mul(&cx, &scalarTerm)

	// y₃ factor: b(x₁y₂ - x₂y₁) + (1-b)
	var cy fr.Element
	cy.Mul(&evals.AccXZ, &evals.PyZ)
	t.Mul(&evals.PxZ, &evals.AccYZ)
	cy.Sub(&cy, &t)
	cy.Mul(&cy, &evals.BZ)
	cy.Add(&cy, &oneMinusB)
	cy.Mul(&cy, &scalarTerm)

	return [numShiftGates]fr.Element{scalarTerm, cx, cy}
}

// Prove builds the ring argument: the signer at the given index holds
// pkBlind = ring[signer] + blinding·B.
func Prove(p *Params, kzg *pcs.KZG, fixed *FixedColumns, signer int, blinding fr.Element) (*Proof, error) {
	bandersInit()
	wit, err := buildWitnessColumns(p, kzg, fixed, signer, blinding)
	if err != nil {
		return nil, err
	}

	t := transcript.New(labelProtocol)
	cpx, cpy, cs := fixed.Commitments()
	absorbVK(t, kzg.SRS(), [3]bls12381.G1Affine{cpx, cpy, cs})
	absorbInstance(t, wit.resultPlusSeed)
	appendG1(t, labelCols, &wit.b.commit, &wit.accIP.commit, &wit.accX.commit, &wit.accY.commit)
	alphas := t.Challenges(labelAlphas, numGates)

	gates := buildConstraints(p, fixed, wit)
	quotient, err := p.aggregate(gates, alphas)
	if err != nil {
		return nil, err
	}
	cq, err := kzg.Commit(quotient)
	if err != nil {
		return nil, err
	}

	appendG1(t, labelQuotient, &cq)
	zeta := t.Challenge(labelZeta)
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &p.Domain.Omega)

	proof := &Proof{
		CB:     wit.b.commit,
		CAccIP: wit.accIP.commit,
		CAccX:  wit.accX.commit,
		CAccY:  wit.accY.commit,
		CQ:     cq,

		PxZ:    fixed.px.coeffs.Eval(&zeta),
		PyZ:    fixed.py.coeffs.Eval(&zeta),
		SZ:     fixed.sel.coeffs.Eval(&zeta),
		BZ:     wit.b.coeffs.Eval(&zeta),
		AccIPZ: wit.accIP.coeffs.Eval(&zeta),
		AccXZ:  wit.accX.coeffs.Eval(&zeta),
		AccYZ:  wit.accY.coeffs.Eval(&zeta),
	}

	// Linearization: the shifted-register parts of gates 1-3 collapse
	// into one polynomial opened at ζω.
	lin := linearizationCoeffs(p, &zeta, proof)
	lAgg := polynomial.Poly{}
	shifted := [numShiftGates]polynomial.Poly{wit.accIP.coeffs, wit.accX.coeffs, wit.accY.coeffs}
	for i := 0; i < numShiftGates; i++ {
		var w fr.Element
		w.Mul(&lin[i], &alphas[i])
		lAgg = lAgg.Add(shifted[i].ScalarMul(&w))
	}
	proof.LZetaOmega = lAgg.Eval(&zetaOmega)

	absorbEvals(t, proof)
	nus := t.Challenges(labelNus, numNus)

	polys := [numNus]polynomial.Poly{
		fixed.px.coeffs, fixed.py.coeffs, fixed.sel.coeffs,
		wit.b.coeffs, wit.accIP.coeffs, wit.accX.coeffs, wit.accY.coeffs,
		quotient,
	}
	opening, err := kzg.BatchOpen(polys[:], nus, &zeta)
	if err != nil {
		return nil, err
	}
	proof.PhiZeta = opening.Proof

	shiftOpening, err := kzg.Open(lAgg, &zetaOmega)
	if err != nil {
		return nil, err
	}
	proof.PhiZetaOmega = shiftOpening.Proof
	return proof, nil
}

func absorbEvals(t *transcript.Transcript, p *Proof) {
	buf := make([]byte, 0, 7*fr.Bytes)
	for _, e := range []*fr.Element{&p.PxZ, &p.PyZ, &p.SZ, &p.BZ, &p.AccIPZ, &p.AccXZ, &p.AccYZ} {
		b := e.BytesLE()
		buf = append(buf, b[:]...)
	}
	t.Add(labelEvals, buf)
	lzw := p.LZetaOmega.BytesLE()
	t.Add(labelShiftedEval, lzw[:])
}
