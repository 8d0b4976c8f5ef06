package curve

import (
	"math/big"
)

// Encode serializes a point in the family's wire format: SEC1 for
// short Weierstrass, sign-compressed little-endian y for twisted
// Edwards, raw (u,v) for Montgomery.
func (c *Curve) Encode(p Point) []byte {
	f := c.Fp
	switch c.Shape {
	case ShortWeierstrass:
		if p.Inf {
			return []byte{0x00}
		}
		if c.Uncompressed {
			out := []byte{0x04}
			out = append(out, f.BytesBE(p.X)...)
			out = append(out, f.BytesBE(p.Y)...)
			return out
		}
		prefix := byte(0x02)
		if f.Sgn0(p.Y) == 1 {
			prefix = 0x03
		}
		return append([]byte{prefix}, f.BytesBE(p.X)...)
	case Montgomery:
		out := f.BytesBE(p.X)
		return append(out, f.BytesBE(p.Y)...)
	default:
		return c.teCompress(p)
	}
}

// teCompressedLen is the compressed twisted Edwards width: the field
// width, plus a spare byte when the modulus occupies every bit of it
// (Ed448), so the sign flag always has a free top bit.
func (c *Curve) teCompressedLen() int {
	n := c.Fp.ByteLen()
	if c.Fp.Modulus().BitLen() == 8*n {
		n++
	}
	return n
}

// PointLen is the wire size of an encoded point for this suite.
func (c *Curve) PointLen() int {
	switch c.Shape {
	case ShortWeierstrass:
		if c.Uncompressed {
			return 1 + 2*c.Fp.ByteLen()
		}
		return 1 + c.Fp.ByteLen()
	case Montgomery:
		return 2 * c.Fp.ByteLen()
	default:
		return c.teCompressedLen()
	}
}

// teCompress stores y little-endian and flags x in the top bit when it
// exceeds (p-1)/2, matching the arkworks convention the reference
// proofs use.
func (c *Curve) teCompress(p Point) []byte {
	f := c.Fp
	out := make([]byte, c.teCompressedLen())
	copy(out, f.BytesLE(p.Y))
	if xIsNegative(f.ToBig(p.X), f.Modulus()) {
		out[len(out)-1] |= 0x80
	}
	return out
}

func xIsNegative(x, p *big.Int) bool {
	half := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	return x.Cmp(half) > 0
}

// Decode parses a point, verifying the encoding, the curve equation
// and (for the prime-subgroup suites) subgroup membership.
func (c *Curve) Decode(data []byte) (Point, error) {
	p, err := c.decode(data)
	if err != nil {
		return Point{}, err
	}
	if c.Cofactor > 1 && !p.IsIdentity() && !c.InSubgroup(p) {
		return Point{}, ErrNotInSubgroup
	}
	return p, nil
}

// DecodeAnySubgroup parses a point without the subgroup check; the TAI
// loop uses it on candidate points before cofactor clearing.
func (c *Curve) DecodeAnySubgroup(data []byte) (Point, error) {
	return c.decode(data)
}

func (c *Curve) decode(data []byte) (Point, error) {
	f := c.Fp
	switch c.Shape {
	case ShortWeierstrass:
		if len(data) == 1 && data[0] == 0x00 {
			return c.Identity(), nil
		}
		flen := f.ByteLen()
		switch {
		case len(data) == 1+flen && (data[0] == 0x02 || data[0] == 0x03):
			x := new(big.Int).SetBytes(data[1:])
			if x.Cmp(f.Modulus()) >= 0 {
				return Point{}, ErrInvalidPoint
			}
			xe := f.FromBig(x)
			// y² = x³ + Ax + B
			rhs := f.Add(f.Add(f.Mul(f.Square(xe), xe), f.Mul(c.A, xe)), c.B)
			y, ok := f.Sqrt(rhs)
			if !ok {
				return Point{}, ErrInvalidPoint
			}
			if f.Sgn0(y) != int(data[0]&1) {
				y = f.Neg(y)
			}
			return Point{c: c, X: xe, Y: y}, nil
		case len(data) == 1+2*flen && data[0] == 0x04:
			x := new(big.Int).SetBytes(data[1 : 1+flen])
			y := new(big.Int).SetBytes(data[1+flen:])
			if x.Cmp(f.Modulus()) >= 0 || y.Cmp(f.Modulus()) >= 0 {
				return Point{}, ErrInvalidPoint
			}
			return c.NewPoint(f.FromBig(x), f.FromBig(y))
		default:
			return Point{}, ErrInvalidPoint
		}
	case Montgomery:
		flen := f.ByteLen()
		if len(data) != 2*flen {
			return Point{}, ErrInvalidPoint
		}
		u := new(big.Int).SetBytes(data[:flen])
		v := new(big.Int).SetBytes(data[flen:])
		if u.Cmp(f.Modulus()) >= 0 || v.Cmp(f.Modulus()) >= 0 {
			return Point{}, ErrInvalidPoint
		}
		return c.NewPoint(f.FromBig(u), f.FromBig(v))
	default:
		return c.teDecompress(data)
	}
}

func (c *Curve) teDecompress(data []byte) (Point, error) {
	f := c.Fp
	if len(data) != c.teCompressedLen() {
		return Point{}, ErrInvalidPoint
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	xNeg := buf[len(buf)-1]&0x80 != 0
	buf[len(buf)-1] &= 0x7f

	yBig := new(big.Int).SetBytes(reverseBytes(buf))
	if yBig.Cmp(f.Modulus()) >= 0 {
		return Point{}, ErrInvalidPoint
	}
	y := f.FromBig(yBig)

	// x² = (1 - y²) / (a - d·y²)
	y2 := f.Square(y)
	num := f.Sub(f.One(), y2)
	den := f.Sub(c.EdA, f.Mul(c.EdD, y2))
	if f.IsZero(den) {
		return Point{}, ErrInvalidPoint
	}
	x2 := f.Mul(num, f.Inv(den))
	x, ok := f.Sqrt(x2)
	if !ok {
		return Point{}, ErrInvalidPoint
	}
	if xIsNegative(f.ToBig(x), f.Modulus()) != xNeg {
		x = f.Neg(x)
	}
	// re-check the flag: x = 0 cannot be negative
	if xNeg && f.IsZero(x) {
		return Point{}, ErrInvalidPoint
	}
	return c.NewPoint(x, y)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
