// Package polynomial provides dense polynomials over the BLS12-381
// scalar field together with power-of-two evaluation domains and an
// in-place radix-2 NTT. All values stay in Montgomery form; callers
// convert on the byte boundary only.
package polynomial

import (
	"github.com/cipherworks/vrf-lib/core/math/fr"
)

// Poly is a dense coefficient vector, lowest degree first.
type Poly []fr.Element

// NewPoly returns the zero polynomial with capacity for n coefficients.
func NewPoly(n int) Poly {
	return make(Poly, n)
}

// Clone returns a copy of p.
func (p Poly) Clone() Poly {
	out := make(Poly, len(p))
	copy(out, p)
	return out
}

// Degree returns the degree of p, -1 for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Trim drops trailing zero coefficients.
func (p Poly) Trim() Poly {
	return p[:p.Degree()+1]
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	copy(out, p)
	for i := range q {
		out[i].Add(&out[i], &q[i])
	}
	return out
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	copy(out, p)
	for i := range q {
		out[i].Sub(&out[i], &q[i])
	}
	return out
}

// ScalarMul returns c·p.
func (p Poly) ScalarMul(c *fr.Element) Poly {
	out := make(Poly, len(p))
	for i := range p {
		out[i].Mul(&p[i], c)
	}
	return out
}

// MulNaive returns p·q by schoolbook multiplication; meant for the
// short polynomials that appear in vanishing factors and tests.
func (p Poly) MulNaive(q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	var t fr.Element
	for i := range p {
		if p[i].IsZero() {
			continue
		}
		for j := range q {
			t.Mul(&p[i], &q[j])
			out[i+j].Add(&out[i+j], &t)
		}
	}
	return out
}

// MulByLinear returns (x - root)·p in O(n).
func (p Poly) MulByLinear(root *fr.Element) Poly {
	out := make(Poly, len(p)+1)
	var t fr.Element
	for i := range p {
		out[i+1].Add(&out[i+1], &p[i])
		t.Mul(&p[i], root)
		out[i].Sub(&out[i], &t)
	}
	return out
}

// Eval returns p(x) by Horner's rule.
func (p Poly) Eval(x *fr.Element) fr.Element {
	var acc fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, x)
		acc.Add(&acc, &p[i])
	}
	return acc
}

// DivByVanishing divides p by x^n - 1, returning the quotient and
// whether the remainder was zero. The quotient coefficient q_j is the
// sum of the coefficients p_{j+kn} for k ≥ 1.
func (p Poly) DivByVanishing(n int) (Poly, bool) {
	if len(p) <= n {
		return Poly{}, p.Degree() < 0
	}
	q := make(Poly, len(p)-n)
	for j := len(q) - 1; j >= 0; j-- {
		q[j] = p[j+n]
		if j+n < len(q) {
			q[j].Add(&q[j], &q[j+n])
		}
	}
	// remainder_j = p_j + q_j must vanish for exact division
	var r fr.Element
	for j := 0; j < n && j < len(p); j++ {
		r = p[j]
		if j < len(q) {
			r.Add(&r, &q[j])
		}
		if !r.IsZero() {
			return q, false
		}
	}
	return q, true
}

// vecOps: lane-parallel helpers over evaluation vectors.

// VecAdd sets out[i] = a[i] + b[i].
func VecAdd(out, a, b []fr.Element) {
	for i := range out {
		out[i].Add(&a[i], &b[i])
	}
}

// VecSub sets out[i] = a[i] - b[i].
func VecSub(out, a, b []fr.Element) {
	for i := range out {
		out[i].Sub(&a[i], &b[i])
	}
}

// VecMul sets out[i] = a[i] · b[i].
func VecMul(out, a, b []fr.Element) {
	for i := range out {
		out[i].Mul(&a[i], &b[i])
	}
}

// VecScalarMul sets out[i] = c · a[i].
func VecScalarMul(out, a []fr.Element, c *fr.Element) {
	for i := range out {
		out[i].Mul(&a[i], c)
	}
}

// Rotate returns v rotated left by k, so that out[i] = v[(i+k) mod n].
// On an evaluation vector over ⟨ω⟩ this realizes f(ωᵏ·x).
func Rotate(v []fr.Element, k int) []fr.Element {
	n := len(v)
	out := make([]fr.Element, n)
	for i := range v {
		out[i] = v[(i+k)%n]
	}
	return out
}
