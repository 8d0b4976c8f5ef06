package h2c

import (
	"crypto/sha512"

	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/core/math/ff"
)

var (
	// ErrMapFailed indicates the try-and-increment counter was
	// exhausted or a mapping hit an impossible state; it corresponds
	// to an internal invariant violation, not bad caller input.
	ErrMapFailed = errors.New("h2c: map-to-curve failed to produce a point")
)

// HashToField derives count field elements from msg per RFC 9380.
func HashToField(c *curve.Curve, msg []byte, count int) ([]ff.Element, error) {
	uniform, err := expand(c, msg, count*c.L)
	if err != nil {
		return nil, err
	}
	out := make([]ff.Element, count)
	for i := 0; i < count; i++ {
		out[i] = c.Fp.FromBytesBE(uniform[i*c.L : (i+1)*c.L])
	}
	return out, nil
}

// HashToCurve is the random-oracle (RO) construction: two field
// elements, two mapped points, one addition, cofactor clearing. TAI
// suites use the try-and-increment encoding instead.
func HashToCurve(c *curve.Curve, msg, salt []byte) (curve.Point, error) {
	if c.Variant == curve.MapTAI {
		return encodeTAI(c, msg, salt)
	}
	u, err := HashToField(c, append(append([]byte{}, salt...), msg...), 2)
	if err != nil {
		return curve.Point{}, err
	}
	q0, err := mapToCurve(c, u[0])
	if err != nil {
		return curve.Point{}, err
	}
	q1, err := mapToCurve(c, u[1])
	if err != nil {
		return curve.Point{}, err
	}
	return c.ClearCofactor(c.Add(q0, q1)), nil
}

// EncodeToCurve is the nonuniform (NU) construction used for VRF
// inputs: one field element, one mapped point, cofactor clearing. TAI
// suites use the try-and-increment encoding instead.
func EncodeToCurve(c *curve.Curve, msg, salt []byte) (curve.Point, error) {
	if c.Variant == curve.MapTAI {
		return encodeTAI(c, msg, salt)
	}
	u, err := HashToField(c, append(append([]byte{}, salt...), msg...), 1)
	if err != nil {
		return curve.Point{}, err
	}
	q, err := mapToCurve(c, u[0])
	if err != nil {
		return curve.Point{}, err
	}
	return c.ClearCofactor(q), nil
}

func mapToCurve(c *curve.Curve, u ff.Element) (curve.Point, error) {
	switch c.Variant {
	case curve.MapSSWU:
		return mapSSWU(c, u)
	case curve.MapElligator2:
		return mapElligator2(c, u)
	default:
		return curve.Point{}, ErrMapFailed
	}
}

// mapSSWU is the simplified SWU map. When the suite declares an
// isogenous curve the map runs on E' and pushes the result through the
// rational isogeny.
func mapSSWU(c *curve.Curve, u ff.Element) (curve.Point, error) {
	f := c.Fp
	a, b := c.A, c.B
	isoA, isoB, iso, hasIso := c.Isogeny()
	if hasIso {
		a, b = isoA, isoB
	}
	z := f.FromBig(c.Z)

	tv1 := f.Mul(z, f.Square(u)) // Z·u²
	tv2 := f.Add(f.Square(tv1), tv1)

	var x1 ff.Element
	if f.IsZero(tv2) {
		// exceptional case x1 = B/(Z·A)
		x1 = f.Mul(b, f.Inv(f.Mul(z, a)))
	} else {
		// x1 = (-B/A)·(1 + 1/(Z²u⁴ + Zu²))
		x1 = f.Mul(f.Neg(f.Mul(b, f.Inv(a))), f.Add(f.One(), f.Inv(tv2)))
	}

	gx1 := f.Add(f.Add(f.Mul(f.Square(x1), x1), f.Mul(a, x1)), b)
	x, y := x1, gx1
	if !f.IsSquare(gx1) {
		// x2 = Z·u²·x1, gx2 = (Z·u²)³·gx1 is then a square
		x = f.Mul(tv1, x1)
		y = f.Add(f.Add(f.Mul(f.Square(x), x), f.Mul(a, x)), b)
	}
	ySqrt, ok := f.Sqrt(y)
	if !ok {
		return curve.Point{}, ErrMapFailed
	}
	if f.Sgn0(ySqrt) != f.Sgn0(u) {
		ySqrt = f.Neg(ySqrt)
	}
	if !hasIso {
		return c.NewPoint(x, ySqrt)
	}
	return applyIsogeny(c, iso, x, ySqrt)
}

func evalPolyFF(f *ff.Field, coeffs []ff.Element, x ff.Element) ff.Element {
	acc := f.Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = f.Add(f.Mul(acc, x), coeffs[i])
	}
	return acc
}

func applyIsogeny(c *curve.Curve, iso *curve.IsogenyMap, x, y ff.Element) (curve.Point, error) {
	f := c.Fp
	xden := evalPolyFF(f, iso.XDen, x)
	yden := evalPolyFF(f, iso.YDen, x)
	if f.IsZero(xden) || f.IsZero(yden) {
		return c.Identity(), nil
	}
	outX := f.Mul(evalPolyFF(f, iso.XNum, x), f.Inv(xden))
	outY := f.Mul(y, f.Mul(evalPolyFF(f, iso.YNum, x), f.Inv(yden)))
	return c.NewPoint(outX, outY)
}

// elligatorJK returns the Montgomery parameters of the map target:
// the curve's own (A, B) for the Montgomery family, or
// J = 2(a+d)/(a-d), K = 4/(a-d) for a twisted Edwards suite.
func elligatorJK(c *curve.Curve) (j, k ff.Element) {
	f := c.Fp
	if c.Shape == curve.Montgomery {
		return c.MA, c.MB
	}
	den := f.Inv(f.Sub(c.EdA, c.EdD))
	j = f.Mul(f.FromUint64(2), f.Mul(f.Add(c.EdA, c.EdD), den))
	k = f.Mul(f.FromUint64(4), den)
	return j, k
}

// mapElligator2 maps u to the curve K·t² = s³ + J·s² + s and, for
// twisted Edwards suites, applies the birational map
// (s, t) → (s/t, (s-1)/(s+1)).
func mapElligator2(c *curve.Curve, u ff.Element) (curve.Point, error) {
	f := c.Fp
	j, k := elligatorJK(c)
	z := f.FromBig(c.Z)

	den := f.Add(f.One(), f.Mul(z, f.Square(u)))
	var s ff.Element
	if f.IsZero(den) {
		s = f.Neg(j)
	} else {
		s = f.Neg(f.Mul(j, f.Inv(den)))
	}
	// t² = (s³ + J·s² + s)/K; n·K is a square exactly when n/K is.
	n := f.Add(f.Mul(f.Square(s), f.Add(s, j)), s)
	if !f.IsSquare(f.Mul(n, k)) {
		// the other candidate s' = -s - J = s·Z·u²
		s = f.Sub(f.Neg(s), j)
		n = f.Add(f.Mul(f.Square(s), f.Add(s, j)), s)
	}
	t, ok := f.Sqrt(f.Mul(n, f.Inv(k)))
	if !ok {
		return curve.Point{}, ErrMapFailed
	}
	if f.Sgn0(t) != f.Sgn0(u) {
		t = f.Neg(t)
	}

	if c.Shape == curve.Montgomery {
		return c.NewPoint(s, t)
	}
	return montToEdwards(c, s, t)
}

// montToEdwards is the exceptional-case-aware birational map used by
// the Edwards Elligator suites.
func montToEdwards(c *curve.Curve, s, t ff.Element) (curve.Point, error) {
	f := c.Fp
	tv1 := f.Add(s, f.One())
	tv2 := f.Mul(tv1, t)
	if f.IsZero(tv2) {
		return c.Identity(), nil
	}
	inv := f.Inv(tv2)
	v := f.Mul(f.Mul(inv, tv1), s)
	w := f.Mul(f.Mul(inv, t), f.Sub(s, f.One()))
	return c.NewPoint(v, w)
}

// encodeTAI is the hash-and-check encoding: a counter-suffixed digest
// is interpreted as a compressed point until decoding succeeds. The
// counter is bounded, so adversarial input cannot loop forever.
func encodeTAI(c *curve.Curve, msg, salt []byte) (curve.Point, error) {
	for ctr := 0; ctr <= 255; ctr++ {
		buf := make([]byte, 0, len(c.SuiteString)+len(salt)+len(msg)+3)
		buf = append(buf, c.SuiteString...)
		buf = append(buf, 0x01)
		buf = append(buf, salt...)
		buf = append(buf, msg...)
		buf = append(buf, byte(ctr))
		buf = append(buf, 0x00)
		digest := sha512.Sum512(buf)

		var cand []byte
		if c.Shape == curve.ShortWeierstrass {
			cand = append([]byte{0x02}, digest[:c.Fp.ByteLen()]...)
		} else {
			cand = digest[:c.PointLen()]
		}
		p, err := c.DecodeAnySubgroup(cand)
		if err != nil {
			continue
		}
		p = c.ClearCofactor(p)
		if p.IsIdentity() {
			continue
		}
		return p, nil
	}
	return curve.Point{}, ErrMapFailed
}
