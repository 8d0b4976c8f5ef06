package ringproof

import (
	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
)

// constraintSet holds the seven gate evaluation vectors over the radix
// domain. Gates one to three carry their (x - ω^(N-4)) switch-off
// factor already.
type constraintSet struct {
	c [7][]fr.Element
}

// radixEvals evaluates a column's coefficient form over the 4N radix
// domain.
func (p *Params) radixEvals(poly polynomial.Poly) []fr.Element {
	return p.Radix.Evaluate(poly)
}

// buildConstraints evaluates all gates on the radix domain.
//
//	c1: accip(ωx) - accip(x) - b·s                         (recurrence)
//	c2: b(x₃(y₁y₂ + a·x₁x₂) - (x₁y₁ + x₂y₂)) + (1-b)(x₃-x₁)  (TE x-gate)
//	c3: b(y₃(x₁y₂ - x₂y₁) - (x₁y₁ - x₂y₂)) + (1-b)(y₃-y₁)    (TE y-gate)
//	c4: b(1-b)                                             (booleanity)
//	c5: (accx - seedₓ)L₀ + (accx - resultₓ)L_{N-4}
//	c6: (accy - seed_y)L₀ + (accy - result_y)L_{N-4}
//	c7: accip·L₀ + (accip - 1)L_{N-4}
//
// with (x₁,y₁) the accumulator, (x₂,y₂) the point columns and
// (x₃,y₃) the shifted accumulator.
func buildConstraints(p *Params, fixed *FixedColumns, wit *witnessColumns) *constraintSet {
	m := p.Radix.Size
	shift := p.Radix.Size / p.Domain.Size

	px := p.radixEvals(fixed.px.coeffs)
	py := p.radixEvals(fixed.py.coeffs)
	sel := p.radixEvals(fixed.sel.coeffs)
	b := p.radixEvals(wit.b.coeffs)
	accX := p.radixEvals(wit.accX.coeffs)
	accY := p.radixEvals(wit.accY.coeffs)
	accIP := p.radixEvals(wit.accIP.coeffs)

	accXw := polynomial.Rotate(accX, shift)
	accYw := polynomial.Rotate(accY, shift)
	accIPw := polynomial.Rotate(accIP, shift)

	// (x - ω^(N-4)) over the radix domain
	notLast := make([]fr.Element, m)
	nl := p.notLastRoot()
	for i := range notLast {
		notLast[i].Sub(&p.Radix.Elements[i], &nl)
	}

	l0 := p.radixEvals(p.Domain.LagrangeBasis(0))
	lLast := p.radixEvals(p.Domain.LagrangeBasis(p.lastIndex()))

	seed := SeedPoint()
	res := wit.resultPlusSeed
	oneEl := fr.One()

	cs := &constraintSet{}
	for i := range cs.c {
		cs.c[i] = make([]fr.Element, m)
	}
	var t1, t2, t3, oneMinusB fr.Element
	for i := 0; i < m; i++ {
		x1, y1 := accX[i], accY[i]
		x2, y2 := px[i], py[i]
		x3, y3 := accXw[i], accYw[i]
		bi := b[i]
		oneMinusB.Sub(&oneEl, &bi)

		// c1
		t1.Mul(&bi, &sel[i])
		t2.Sub(&accIPw[i], &accIP[i])
		t2.Sub(&t2, &t1)
		cs.c[0][i].Mul(&t2, &notLast[i])

		// c2
		t1.Mul(&y1, &y2)
		t2.Mul(&x1, &x2)
		t2.Mul(&t2, &edwardsA)
		t1.Add(&t1, &t2)
		t1.Mul(&t1, &x3)
		t2.Mul(&x1, &y1)
		t3.Mul(&x2, &y2)
		t2.Add(&t2, &t3)
		t1.Sub(&t1, &t2)
		t1.Mul(&t1, &bi)
		t2.Sub(&x3, &x1)
		t2.Mul(&t2, &oneMinusB)
		t1.Add(&t1, &t2)
		cs.c[1][i].Mul(&t1, &notLast[i])

		// c3
		t1.Mul(&x1, &y2)
		t2.Mul(&x2, &y1)
		t1.Sub(&t1, &t2)
		t1.Mul(&t1, &y3)
		t2.Mul(&x1, &y1)
		t3.Mul(&x2, &y2)
		t2.Sub(&t2, &t3)
		t1.Sub(&t1, &t2)
		t1.Mul(&t1, &bi)
		t2.Sub(&y3, &y1)
		t2.Mul(&t2, &oneMinusB)
		t1.Add(&t1, &t2)
		cs.c[2][i].Mul(&t1, &notLast[i])

		// c4
		cs.c[3][i].Mul(&bi, &oneMinusB)

		// c5
		t1.Sub(&x1, &seed.X)
		t1.Mul(&t1, &l0[i])
		t2.Sub(&x1, &res.X)
		t2.Mul(&t2, &lLast[i])
		cs.c[4][i].Add(&t1, &t2)

		// c6
		t1.Sub(&y1, &seed.Y)
		t1.Mul(&t1, &l0[i])
		t2.Sub(&y1, &res.Y)
		t2.Mul(&t2, &lLast[i])
		cs.c[5][i].Add(&t1, &t2)

		// c7
		t1.Mul(&accIP[i], &l0[i])
		t2.Sub(&accIP[i], &oneEl)
		t2.Mul(&t2, &lLast[i])
		cs.c[6][i].Add(&t1, &t2)
	}
	return cs
}

// aggregate folds the gates with the transcript weights, restores
// coefficient form, multiplies in the structural-row vanishing factor
// and divides by Z_H.
func (p *Params) aggregate(cs *constraintSet, alphas []fr.Element) (polynomial.Poly, error) {
	m := p.Radix.Size
	agg := make([]fr.Element, m)
	var t fr.Element
	for k := range cs.c {
		for i := 0; i < m; i++ {
			t.Mul(&cs.c[k][i], &alphas[k])
			agg[i].Add(&agg[i], &t)
		}
	}
	coeffs := p.Radix.Interpolate(agg)

	triple := p.vanishingTriple()
	poly := polynomial.Poly(coeffs).Trim()
	for _, root := range triple {
		r := root
		poly = poly.MulByLinear(&r)
	}

	q, exact := poly.DivByVanishing(p.Domain.Size)
	if !exact {
		return nil, ErrInternal
	}
	return q, nil
}
