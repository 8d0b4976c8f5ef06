package curve

import (
	"math/big"
)

const windowBits = 4

// ScalarMul returns s·p with a fixed schedule suitable for secret
// scalars: a 2⁴-entry table, four doublings and one table addition per
// digit regardless of the digit's value. Table lookups scan every
// entry.
func (c *Curve) ScalarMul(p Point, s Scalar) Point {
	if c.Shape == TwistedEdwards {
		return c.teScalarMul(p, s)
	}
	if c.Shape == Montgomery {
		return c.montLadderMul(p, s)
	}
	return c.affineScalarMul(p, s)
}

// ScalarBaseMul returns s·G.
func (c *Curve) ScalarBaseMul(s Scalar) Point {
	return c.ScalarMul(c.Generator(), s)
}

func scalarDigits(s Scalar) []byte {
	le := s.fixedWidthLE()
	digits := make([]byte, 2*len(le))
	for i, b := range le {
		digits[2*i] = b & 0x0f
		digits[2*i+1] = b >> 4
	}
	return digits
}

func (c *Curve) affineScalarMul(p Point, s Scalar) Point {
	var table [1 << windowBits]Point
	table[0] = c.Identity()
	for i := 1; i < len(table); i++ {
		table[i] = c.Add(table[i-1], p)
	}
	digits := scalarDigits(s)
	acc := c.Identity()
	for i := len(digits) - 1; i >= 0; i-- {
		for j := 0; j < windowBits; j++ {
			acc = c.Double(acc)
		}
		acc = c.Add(acc, lookupPoint(&table, digits[i]))
	}
	return acc
}

// lookupPoint scans the whole table so the access pattern does not
// depend on the digit.
func lookupPoint(table *[1 << windowBits]Point, digit byte) Point {
	out := (*table)[0]
	for i := 1; i < len(table); i++ {
		if byte(i) == digit {
			out = (*table)[i]
		}
	}
	return out
}

func (c *Curve) teScalarMul(p Point, s Scalar) Point {
	var table [1 << windowBits]teExt
	table[0] = c.extIdentity()
	pe := c.toExt(p)
	for i := 1; i < len(table); i++ {
		table[i] = c.extAdd(table[i-1], pe)
	}
	digits := scalarDigits(s)
	acc := c.extIdentity()
	for i := len(digits) - 1; i >= 0; i-- {
		for j := 0; j < windowBits; j++ {
			acc = c.extDouble(acc)
		}
		sel := table[0]
		for k := 1; k < len(table); k++ {
			if byte(k) == digits[i] {
				sel = table[k]
			}
		}
		acc = c.extAdd(acc, sel)
	}
	return c.fromExt(acc)
}

// montLadderMul is the XZ Montgomery ladder with Okeya–Sakurai
// y-recovery.
func (c *Curve) montLadderMul(p Point, s Scalar) Point {
	if p.IsIdentity() || s.IsZero() {
		return c.Identity()
	}
	f := c.Fp

	x1 := p.X
	// (X2:Z2) = [k]P, (X3:Z3) = [k+1]P
	X2, Z2 := f.One(), f.Zero()
	X3, Z3 := p.X, f.One()

	a24 := f.Mul(f.Add(c.MA, f.FromUint64(2)), f.Inv(f.FromUint64(4)))

	le := s.fixedWidthLE()
	nbits := 8 * len(le)
	swap := 0
	for i := nbits - 1; i >= 0; i-- {
		bit := int(le[i/8]>>(uint(i)%8)) & 1
		if swap^bit == 1 {
			X2, X3 = X3, X2
			Z2, Z3 = Z3, Z2
		}
		swap = bit

		// ladder step
		A := f.Add(X2, Z2)
		AA := f.Square(A)
		B := f.Sub(X2, Z2)
		BB := f.Square(B)
		E := f.Sub(AA, BB)
		C := f.Add(X3, Z3)
		D := f.Sub(X3, Z3)
		DA := f.Mul(D, A)
		CB := f.Mul(C, B)
		X3 = f.Square(f.Add(DA, CB))
		Z3 = f.Mul(x1, f.Square(f.Sub(DA, CB)))
		X2 = f.Mul(AA, BB)
		Z2 = f.Mul(E, f.Add(BB, f.Mul(a24, E)))
	}
	if swap == 1 {
		X2, X3 = X3, X2
		Z2, Z3 = Z3, Z2
	}
	if f.IsZero(Z2) {
		return c.Identity()
	}

	// Okeya–Sakurai: recover y([k]P) from x1, y1, x2, x3.
	x2 := f.Mul(X2, f.Inv(Z2))
	if f.IsZero(Z3) {
		// [k+1]P at infinity means [k]P = -P
		return Point{c: c, X: p.X, Y: f.Neg(p.Y)}
	}
	x3 := f.Mul(X3, f.Inv(Z3))
	twoA := f.Mul(f.FromUint64(2), c.MA)
	t1 := f.Mul(f.Add(f.Mul(x1, x2), f.One()), f.Add(f.Add(x1, x2), twoA))
	t2 := f.Mul(f.Square(f.Sub(x1, x2)), x3)
	num := f.Sub(f.Sub(t1, twoA), t2)
	den := f.Inv(f.Mul(f.FromUint64(2), f.Mul(c.MB, p.Y)))
	y2 := f.Mul(num, den)
	return Point{c: c, X: x2, Y: y2}
}

// mulBig is a public-input double-and-add used for cofactor and
// subgroup checks.
func (c *Curve) mulBig(p Point, k *big.Int) Point {
	if k.Sign() == 0 {
		return c.Identity()
	}
	kk := k
	if k.Sign() < 0 {
		kk = new(big.Int).Mod(k, c.Order)
	}
	if c.Shape == TwistedEdwards {
		acc := c.extIdentity()
		add := c.toExt(p)
		for i := kk.BitLen() - 1; i >= 0; i-- {
			acc = c.extDouble(acc)
			if kk.Bit(i) == 1 {
				acc = c.extAdd(acc, add)
			}
		}
		return c.fromExt(acc)
	}
	acc := c.Identity()
	for i := kk.BitLen() - 1; i >= 0; i-- {
		acc = c.Double(acc)
		if kk.Bit(i) == 1 {
			acc = c.Add(acc, p)
		}
	}
	return acc
}

// DoubleScalarMul returns a·P + b·Q by Straus interleaving with a 2×2
// block table; the verification combinations run on public data.
func (c *Curve) DoubleScalarMul(a Scalar, p Point, b Scalar, q Point) Point {
	// table[i][j] = i·P + j·Q for i,j in 0..3 (2-bit windows)
	var table [4][4]Point
	table[0][0] = c.Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if j == 0 {
				table[i][0] = c.Add(table[i-1][0], p)
			} else {
				table[i][j] = c.Add(table[i][j-1], q)
			}
		}
	}
	da := scalarDigits2(a)
	db := scalarDigits2(b)
	n := len(da)
	if len(db) > n {
		n = len(db)
	}
	acc := c.Identity()
	for i := n - 1; i >= 0; i-- {
		acc = c.Double(c.Double(acc))
		var ia, ib byte
		if i < len(da) {
			ia = da[i]
		}
		if i < len(db) {
			ib = db[i]
		}
		if ia != 0 || ib != 0 {
			acc = c.Add(acc, table[ia][ib])
		}
	}
	return acc
}

// QuadScalarMul returns a·P + b·Q + e·R + d·S, pairing the operands
// through two Straus passes.
func (c *Curve) QuadScalarMul(a Scalar, p Point, b Scalar, q Point, e Scalar, r Point, d Scalar, s Point) Point {
	return c.Add(c.DoubleScalarMul(a, p, b, q), c.DoubleScalarMul(e, r, d, s))
}

func scalarDigits2(s Scalar) []byte {
	le := s.fixedWidthLE()
	digits := make([]byte, 4*len(le))
	for i, b := range le {
		digits[4*i] = b & 3
		digits[4*i+1] = (b >> 2) & 3
		digits[4*i+2] = (b >> 4) & 3
		digits[4*i+3] = (b >> 6) & 3
	}
	return digits
}
