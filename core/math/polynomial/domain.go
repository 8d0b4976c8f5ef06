package polynomial

import (
	"math/big"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/fr"
)

func bigIntOf(n int) *big.Int { return big.NewInt(int64(n)) }

// omega2048Dec is the canonical 2048-th root of unity shared with the
// reference ring-proof parameters; smaller domains take powers of it
// and larger ones extend it by modular square roots.
const omega2048Dec = "49307615728544765012166121802278658070711169839041683575071795236746050763237"

const baseRootSize = 2048

var ErrDomainSize = errors.New("polynomial: domain size must be a power of two")

// Domain is a multiplicative subgroup ⟨ω⟩ of size n = 2^k with the
// precomputed tables the NTT needs. Domains are immutable once built.
type Domain struct {
	Size     int
	Omega    fr.Element
	OmegaInv fr.Element
	SizeInv  fr.Element

	// Elements[i] = ωⁱ.
	Elements []fr.Element

	// twiddles[s][j] = ω_m^j for stage s with m = 2^(s+1).
	twiddles    [][]fr.Element
	twiddlesInv [][]fr.Element
	bitRev      []int
}

// rootForSize returns a primitive n-th root of unity anchored at the
// shared 2048-th root.
func rootForSize(n int) (fr.Element, error) {
	var root fr.Element
	root.SetString(omega2048Dec)
	size := baseRootSize
	for size < n {
		// Either square root of a primitive m-th root is a primitive
		// 2m-th root, so the choice Sqrt makes is immaterial.
		r, ok := root.Sqrt(&root)
		if !ok {
			return root, errors.New("polynomial: root of unity has no square root")
		}
		root = *r
		size *= 2
	}
	if size%n != 0 {
		return root, ErrDomainSize
	}
	for size > n {
		root.Square(&root)
		size /= 2
	}
	return root, nil
}

// NewDomain builds the evaluation domain of the given power-of-two
// size along with its twiddle and bit-reversal tables.
func NewDomain(n int) (*Domain, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, ErrDomainSize
	}
	omega, err := rootForSize(n)
	if err != nil {
		return nil, err
	}

	d := &Domain{Size: n, Omega: omega}
	d.OmegaInv.Inverse(&omega)
	nEl := fr.NewElement(uint64(n))
	d.SizeInv.Inverse(&nEl)

	d.Elements = make([]fr.Element, n)
	d.Elements[0].SetOne()
	for i := 1; i < n; i++ {
		d.Elements[i].Mul(&d.Elements[i-1], &omega)
	}

	logN := bits.Len(uint(n)) - 1
	d.bitRev = make([]int, n)
	for i := 0; i < n; i++ {
		d.bitRev[i] = int(bits.Reverse(uint(i)) >> (bits.UintSize - logN))
	}

	d.twiddles = make([][]fr.Element, logN)
	d.twiddlesInv = make([][]fr.Element, logN)
	for s := 0; s < logN; s++ {
		m := 1 << (s + 1)
		half := m / 2
		var wm, wmInv fr.Element
		wm.Exp(omega, bigIntOf(n/m))
		wmInv.Inverse(&wm)
		tw := make([]fr.Element, half)
		twInv := make([]fr.Element, half)
		tw[0].SetOne()
		twInv[0].SetOne()
		for j := 1; j < half; j++ {
			tw[j].Mul(&tw[j-1], &wm)
			twInv[j].Mul(&twInv[j-1], &wmInv)
		}
		d.twiddles[s] = tw
		d.twiddlesInv[s] = twInv
	}
	return d, nil
}

// ntt runs the iterative in-place Cooley–Tukey transform with the
// given twiddle tables.
func (d *Domain) ntt(a []fr.Element, tw [][]fr.Element) {
	n := d.Size
	for i := 0; i < n; i++ {
		if r := d.bitRev[i]; i < r {
			a[i], a[r] = a[r], a[i]
		}
	}
	var t fr.Element
	for s := range tw {
		m := 1 << (s + 1)
		half := m / 2
		for k := 0; k < n; k += m {
			for j := 0; j < half; j++ {
				t.Mul(&tw[s][j], &a[k+j+half])
				u := a[k+j]
				a[k+j].Add(&u, &t)
				a[k+j+half].Sub(&u, &t)
			}
		}
	}
}

// NTT transforms coefficients to evaluations over the domain, in place.
// len(a) must equal the domain size.
func (d *Domain) NTT(a []fr.Element) {
	d.ntt(a, d.twiddles)
}

// INTT transforms evaluations back to coefficients, in place.
func (d *Domain) INTT(a []fr.Element) {
	d.ntt(a, d.twiddlesInv)
	for i := range a {
		a[i].Mul(&a[i], &d.SizeInv)
	}
}

// Evaluate returns p over the whole domain. Coefficients beyond the
// domain size are folded mod x^n - 1 first.
func (d *Domain) Evaluate(p Poly) []fr.Element {
	a := make([]fr.Element, d.Size)
	for i := range p {
		j := i % d.Size
		a[j].Add(&a[j], &p[i])
	}
	d.NTT(a)
	return a
}

// Interpolate returns the unique polynomial of degree < n matching the
// given evaluations over the domain.
func (d *Domain) Interpolate(evals []fr.Element) Poly {
	a := make(Poly, d.Size)
	copy(a, evals)
	d.INTT(a)
	return a
}

// EvalLagrange returns Lᵢ(x) for the i-th Lagrange basis polynomial of
// the domain, using Lᵢ(x) = ωⁱ·(xⁿ-1) / (n·(x-ωⁱ)). x must lie outside
// the domain.
func (d *Domain) EvalLagrange(i int, x *fr.Element) (fr.Element, error) {
	var xn fr.Element
	xn.Exp(*x, bigIntOf(d.Size))
	oneEl := fr.One()
	xn.Sub(&xn, &oneEl)
	if xn.IsZero() {
		return fr.Element{}, errors.New("polynomial: evaluation point lies in the domain")
	}
	var den fr.Element
	den.Sub(x, &d.Elements[i])
	nEl := fr.NewElement(uint64(d.Size))
	den.Mul(&den, &nEl)
	den.Inverse(&den)

	var out fr.Element
	out.Mul(&d.Elements[i], &xn)
	out.Mul(&out, &den)
	return out, nil
}

// LagrangeBasis returns the coefficient form of Lᵢ via an inverse
// transform of the i-th unit vector.
func (d *Domain) LagrangeBasis(i int) Poly {
	a := make(Poly, d.Size)
	a[i].SetOne()
	d.INTT(a)
	return a
}

// VanishingEval returns xⁿ - 1.
func (d *Domain) VanishingEval(x *fr.Element) fr.Element {
	var xn fr.Element
	xn.Exp(*x, bigIntOf(d.Size))
	oneEl := fr.One()
	xn.Sub(&xn, &oneEl)
	return xn
}
