// Package curve implements the three curve families the VRF suites
// live on: short Weierstrass, Montgomery and twisted Edwards. A Curve
// value carries the whole capability set a suite needs (fields, group
// law, scalar multiplication, codecs, hash-to-curve parameters);
// points are tagged affine values, not an interface hierarchy.
package curve

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/ff"
)

var (
	ErrNotOnCurve    = errors.New("curve: point is not on the curve")
	ErrInvalidPoint  = errors.New("curve: malformed point encoding")
	ErrNotInSubgroup = errors.New("curve: point is not in the prime-order subgroup")
)

// Shape discriminates the curve family.
type Shape uint8

const (
	ShortWeierstrass Shape = iota
	Montgomery
	TwistedEdwards
)

// MapVariant selects the encode-to-curve mapping of a suite.
type MapVariant uint8

const (
	MapSSWU MapVariant = iota
	MapElligator2
	MapTAI
)

// HashKind names the expand_message hash of a suite.
type HashKind uint8

const (
	HashSHA256 HashKind = iota
	HashSHA384
	HashSHA512
	HashSHAKE256
)

// Curve bundles the constants and capabilities of one curve. Values
// are created once by the suite constructors and never mutated.
type Curve struct {
	Name string

	// Fp is the coordinate field, Order the prime subgroup order.
	Fp       *ff.Field
	Order    *big.Int
	orderF   *ff.Field
	Cofactor uint64

	Shape Shape

	// Short Weierstrass: y² = x³ + Ax + B.
	A, B ff.Element
	// Montgomery: Bv² = u³ + Au² + u (MB usually 1).
	MA, MB ff.Element
	// Twisted Edwards: ax² + y² = 1 + dx²y².
	EdA, EdD ff.Element

	// Generator of the prime-order subgroup.
	Gx, Gy ff.Element

	// Second independent generator for Pedersen commitments, where the
	// suite defines one.
	BlindX, BlindY ff.Element
	HasBlinding    bool

	// Hash-to-curve suite parameters (RFC 9380).
	SuiteString []byte
	DST         []byte
	Hash        HashKind
	L           int // bytes per hash_to_field element
	Z           *big.Int
	Variant     MapVariant
	SecBytes    int // expand_message security parameter block

	// ChallengeLen is the truncated VRF challenge size in bytes.
	ChallengeLen int

	// Uncompressed selects SEC1 uncompressed encoding for SW suites.
	Uncompressed bool

	// isoA, isoB and isoCoeffs are set for SSWU suites that map through
	// an isogenous curve (secp256k1).
	isoA, isoB ff.Element
	isoCoeffs  *IsogenyMap
}

// IsogenyMap carries the rational map from an isogenous curve back to
// the target, as four coefficient lists (x num/den, y num/den).
type IsogenyMap struct {
	XNum, XDen, YNum, YDen []ff.Element
}

// Point is an affine point; Inf marks the identity for the SW and
// Montgomery families. The twisted Edwards identity is (0, 1).
type Point struct {
	c    *Curve
	X, Y ff.Element
	Inf  bool
}

// Curve returns the curve the point belongs to.
func (p Point) Curve() *Curve { return p.c }

// Identity returns the group identity.
func (c *Curve) Identity() Point {
	if c.Shape == TwistedEdwards {
		return Point{c: c, X: c.Fp.Zero(), Y: c.Fp.One()}
	}
	return Point{c: c, Inf: true}
}

// IsIdentity reports whether p is the identity.
func (p Point) IsIdentity() bool {
	if p.c.Shape == TwistedEdwards {
		return p.c.Fp.IsZero(p.X) && p.c.Fp.Equal(p.Y, p.c.Fp.One())
	}
	return p.Inf
}

// Generator returns the configured subgroup generator.
func (c *Curve) Generator() Point {
	return Point{c: c, X: c.Gx, Y: c.Gy}
}

// BlindingBase returns the Pedersen base of the suite.
func (c *Curve) BlindingBase() Point {
	return Point{c: c, X: c.BlindX, Y: c.BlindY}
}

// NewPoint builds a point from affine coordinates, rejecting
// off-curve input.
func (c *Curve) NewPoint(x, y ff.Element) (Point, error) {
	p := Point{c: c, X: x, Y: y}
	if !c.IsOnCurve(p) {
		return Point{}, ErrNotOnCurve
	}
	return p, nil
}

// IsOnCurve checks the family's curve equation.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	f := c.Fp
	switch c.Shape {
	case ShortWeierstrass:
		// y² = x³ + Ax + B
		lhs := f.Square(p.Y)
		rhs := f.Mul(f.Square(p.X), p.X)
		rhs = f.Add(rhs, f.Mul(c.A, p.X))
		rhs = f.Add(rhs, c.B)
		return f.Equal(lhs, rhs)
	case Montgomery:
		// B·v² = u³ + A·u² + u
		lhs := f.Mul(c.MB, f.Square(p.Y))
		rhs := f.Mul(f.Square(p.X), p.X)
		rhs = f.Add(rhs, f.Mul(c.MA, f.Square(p.X)))
		rhs = f.Add(rhs, p.X)
		return f.Equal(lhs, rhs)
	default:
		// a·x² + y² = 1 + d·x²y²
		x2 := f.Square(p.X)
		y2 := f.Square(p.Y)
		lhs := f.Add(f.Mul(c.EdA, x2), y2)
		rhs := f.Add(f.One(), f.Mul(c.EdD, f.Mul(x2, y2)))
		return f.Equal(lhs, rhs)
	}
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) Point {
	switch c.Shape {
	case ShortWeierstrass:
		return c.swAdd(p, q)
	case Montgomery:
		return c.montAdd(p, q)
	default:
		return c.teAdd(p, q)
	}
}

// Double returns 2p.
func (c *Curve) Double(p Point) Point {
	return c.Add(p, p)
}

// Neg returns -p.
func (c *Curve) Neg(p Point) Point {
	if p.Inf {
		return p
	}
	if c.Shape == TwistedEdwards {
		return Point{c: c, X: c.Fp.Neg(p.X), Y: p.Y}
	}
	return Point{c: c, X: p.X, Y: c.Fp.Neg(p.Y)}
}

// Sub returns p - q.
func (c *Curve) Sub(p, q Point) Point {
	return c.Add(p, c.Neg(q))
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.c != q.c {
		return false
	}
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.c.Fp.Equal(p.X, q.X) && p.c.Fp.Equal(p.Y, q.Y)
}

func (c *Curve) swAdd(p, q Point) Point {
	f := c.Fp
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	if f.Equal(p.X, q.X) {
		if f.IsZero(f.Add(p.Y, q.Y)) {
			return c.Identity()
		}
		// tangent case
		if f.IsZero(p.Y) {
			return c.Identity()
		}
		num := f.Add(f.Mul(f.FromUint64(3), f.Square(p.X)), c.A)
		den := f.Inv(f.Add(p.Y, p.Y))
		lam := f.Mul(num, den)
		x3 := f.Sub(f.Square(lam), f.Add(p.X, p.X))
		y3 := f.Sub(f.Mul(lam, f.Sub(p.X, x3)), p.Y)
		return Point{c: c, X: x3, Y: y3}
	}
	lam := f.Mul(f.Sub(q.Y, p.Y), f.Inv(f.Sub(q.X, p.X)))
	x3 := f.Sub(f.Sub(f.Square(lam), p.X), q.X)
	y3 := f.Sub(f.Mul(lam, f.Sub(p.X, x3)), p.Y)
	return Point{c: c, X: x3, Y: y3}
}

func (c *Curve) montAdd(p, q Point) Point {
	f := c.Fp
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	if f.Equal(p.X, q.X) {
		if !f.Equal(p.Y, q.Y) || f.IsZero(p.Y) {
			return c.Identity()
		}
		// λ = (3u² + 2Au + 1) / (2Bv)
		num := f.Add(f.Mul(f.FromUint64(3), f.Square(p.X)), f.Mul(f.FromUint64(2), f.Mul(c.MA, p.X)))
		num = f.Add(num, f.One())
		den := f.Inv(f.Mul(f.FromUint64(2), f.Mul(c.MB, p.Y)))
		lam := f.Mul(num, den)
		x3 := f.Sub(f.Sub(f.Mul(c.MB, f.Square(lam)), c.MA), f.Add(p.X, p.X))
		y3 := f.Sub(f.Mul(lam, f.Sub(p.X, x3)), p.Y)
		return Point{c: c, X: x3, Y: y3}
	}
	lam := f.Mul(f.Sub(q.Y, p.Y), f.Inv(f.Sub(q.X, p.X)))
	x3 := f.Sub(f.Sub(f.Sub(f.Mul(c.MB, f.Square(lam)), c.MA), p.X), q.X)
	y3 := f.Sub(f.Mul(lam, f.Sub(p.X, x3)), p.Y)
	return Point{c: c, X: x3, Y: y3}
}

// teAdd routes through extended projective coordinates; the unified
// formulas need no identity or doubling special cases.
func (c *Curve) teAdd(p, q Point) Point {
	return c.fromExt(c.extAdd(c.toExt(p), c.toExt(q)))
}

// ClearCofactor multiplies by the cofactor.
func (c *Curve) ClearCofactor(p Point) Point {
	if c.Cofactor <= 1 {
		return p
	}
	out := c.Identity()
	add := p
	for k := c.Cofactor; k > 0; k >>= 1 {
		if k&1 == 1 {
			out = c.Add(out, add)
		}
		add = c.Double(add)
	}
	return out
}

// Isogeny exposes the isogenous-curve parameters of an SSWU suite
// that maps through one; ok is false when the suite maps directly.
func (c *Curve) Isogeny() (a, b ff.Element, m *IsogenyMap, ok bool) {
	return c.isoA, c.isoB, c.isoCoeffs, c.isoCoeffs != nil
}

// InSubgroup reports whether order·p is the identity.
func (c *Curve) InSubgroup(p Point) bool {
	return c.mulBig(p, c.Order).IsIdentity()
}
