package curve

import "github.com/cipherworks/vrf-lib/core/math/ff"

// teExt is an extended projective twisted Edwards point with
// x = X/Z, y = Y/Z, T = XY/Z. The identity is (0 : 1 : 1 : 0).
type teExt struct {
	X, Y, Z, T ff.Element
}

func (c *Curve) toExt(p Point) teExt {
	f := c.Fp
	return teExt{X: p.X, Y: p.Y, Z: f.One(), T: f.Mul(p.X, p.Y)}
}

func (c *Curve) extIdentity() teExt {
	f := c.Fp
	return teExt{X: f.Zero(), Y: f.One(), Z: f.One(), T: f.Zero()}
}

func (c *Curve) fromExt(e teExt) Point {
	f := c.Fp
	zInv := f.Inv(e.Z)
	return Point{c: c, X: f.Mul(e.X, zInv), Y: f.Mul(e.Y, zInv)}
}

// extAdd is the unified add-2008-hwcd addition; complete for a square
// and d non-square, so no special cases are needed.
func (c *Curve) extAdd(p, q teExt) teExt {
	f := c.Fp
	a := f.Mul(p.X, q.X)
	b := f.Mul(p.Y, q.Y)
	cc := f.Mul(c.EdD, f.Mul(p.T, q.T))
	d := f.Mul(p.Z, q.Z)
	e := f.Sub(f.Sub(f.Mul(f.Add(p.X, p.Y), f.Add(q.X, q.Y)), a), b)
	fv := f.Sub(d, cc)
	g := f.Add(d, cc)
	h := f.Sub(b, f.Mul(c.EdA, a))
	return teExt{
		X: f.Mul(e, fv),
		Y: f.Mul(g, h),
		T: f.Mul(e, h),
		Z: f.Mul(fv, g),
	}
}

// extDouble is dbl-2008-hwcd.
func (c *Curve) extDouble(p teExt) teExt {
	f := c.Fp
	a := f.Square(p.X)
	b := f.Square(p.Y)
	cc := f.Mul(f.FromUint64(2), f.Square(p.Z))
	d := f.Mul(c.EdA, a)
	e := f.Sub(f.Sub(f.Square(f.Add(p.X, p.Y)), a), b)
	g := f.Add(d, b)
	fv := f.Sub(g, cc)
	h := f.Sub(d, b)
	return teExt{
		X: f.Mul(e, fv),
		Y: f.Mul(g, h),
		T: f.Mul(e, h),
		Z: f.Mul(fv, g),
	}
}
