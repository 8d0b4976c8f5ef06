// Package fr implements the BLS12-381 scalar field
// q = 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001
// on four 64-bit limbs in Montgomery form (R = 2²⁵⁶).
//
// This field doubles as the Bandersnatch base field, so both the
// polynomial/KZG layer and the in-circuit curve arithmetic of the ring
// proof run on it. Multiplication is CIOS and the final subtraction is
// branch-free; only Sqrt, Legendre and the exponentiation ladder branch,
// and those are reserved for public inputs.
package fr

import (
	"math/big"
	"math/bits"
)

// Limbs is the number of 64-bit words of an element.
const Limbs = 4

// Bytes is the serialized size of an element.
const Bytes = 32

// Element is a field element in Montgomery form: e = a·R mod q.
type Element [Limbs]uint64

// Field modulus, little-endian limbs.
var qElement = Element{
	0xffffffff00000001,
	0x53bda402fffe5bfe,
	0x3339d80809a1d805,
	0x73eda753299d7d48,
}

// qInvNeg = -q⁻¹ mod 2⁶⁴, the CIOS folding constant.
const qInvNeg uint64 = 0xfffffffeffffffff

// rSquare = R² mod q, used to enter Montgomery form.
var rSquare = Element{
	0xc999e990f3f29c6d,
	0x2b6cedcb87925c23,
	0x05d314967254398f,
	0x0748d9d99f59ff11,
}

// one = R mod q, the multiplicative identity.
var one = Element{
	0x00000001fffffffe,
	0x5884b7fa00034802,
	0x998c4fefecbc4ff5,
	0x1824b159acc5056f,
}

var (
	qBig       = new(big.Int)
	qMinusTwo  = new(big.Int)
	legExp     = new(big.Int) // (q-1)/2
	tsExp      = new(big.Int) // (t+1)/2 with q-1 = t·2^s, t odd
	tsT        = new(big.Int)
	twoAdicity = 32
)

func init() {
	qBig.SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	qMinusTwo.Sub(qBig, big.NewInt(2))
	legExp.Rsh(new(big.Int).Sub(qBig, big.NewInt(1)), 1)
	tsT.Rsh(new(big.Int).Sub(qBig, big.NewInt(1)), uint(twoAdicity))
	tsExp.Add(tsT, big.NewInt(1))
	tsExp.Rsh(tsExp, 1)
}

// Modulus returns q as a big integer.
func Modulus() *big.Int { return new(big.Int).Set(qBig) }

// One returns the multiplicative identity.
func One() Element { return one }

// NewElement returns v as a field element.
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// SetZero sets z to 0.
func (z *Element) SetZero() *Element {
	*z = Element{}
	return z
}

// SetOne sets z to 1.
func (z *Element) SetOne() *Element {
	*z = one
	return z
}

// SetUint64 sets z to v.
func (z *Element) SetUint64(v uint64) *Element {
	*z = Element{v}
	return z.toMont()
}

// Set sets z to x.
func (z *Element) Set(x *Element) *Element {
	*z = *x
	return z
}

// IsZero reports whether z is the additive identity.
func (z *Element) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// IsOne reports whether z is the multiplicative identity.
func (z *Element) IsOne() bool {
	return *z == one
}

// Equal reports whether z == x.
func (z *Element) Equal(x *Element) bool {
	return *z == *x
}

// smallerThanModulus reports z < q on the raw limbs.
func (z *Element) smallerThanModulus() bool {
	var b uint64
	_, b = bits.Sub64(z[0], qElement[0], 0)
	_, b = bits.Sub64(z[1], qElement[1], b)
	_, b = bits.Sub64(z[2], qElement[2], b)
	_, b = bits.Sub64(z[3], qElement[3], b)
	return b == 1
}

// reduce performs the branch-free conditional final subtraction.
func (z *Element) reduce() *Element {
	var t Element
	var b uint64
	t[0], b = bits.Sub64(z[0], qElement[0], 0)
	t[1], b = bits.Sub64(z[1], qElement[1], b)
	t[2], b = bits.Sub64(z[2], qElement[2], b)
	t[3], b = bits.Sub64(z[3], qElement[3], b)
	// b == 0 means z >= q, keep the difference; mask avoids a branch.
	mask := -b // all ones when borrow
	z[0] = t[0]&^mask | z[0]&mask
	z[1] = t[1]&^mask | z[1]&mask
	z[2] = t[2]&^mask | z[2]&mask
	z[3] = t[3]&^mask | z[3]&mask
	return z
}

// Add sets z = x + y mod q.
func (z *Element) Add(x, y *Element) *Element {
	var carry uint64
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], _ = bits.Add64(x[3], y[3], carry)
	// x, y < q < 2²⁵⁵ so the sum never overflows 256 bits.
	return z.reduce()
}

// Double sets z = 2x mod q.
func (z *Element) Double(x *Element) *Element {
	return z.Add(x, x)
}

// Sub sets z = x - y mod q.
func (z *Element) Sub(x, y *Element) *Element {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], b = bits.Sub64(x[3], y[3], b)
	// Add q back when the subtraction borrowed, without branching.
	mask := -b
	var c uint64
	z[0], c = bits.Add64(z[0], qElement[0]&mask, 0)
	z[1], c = bits.Add64(z[1], qElement[1]&mask, c)
	z[2], c = bits.Add64(z[2], qElement[2]&mask, c)
	z[3], _ = bits.Add64(z[3], qElement[3]&mask, c)
	return z
}

// Neg sets z = -x mod q.
func (z *Element) Neg(x *Element) *Element {
	if x.IsZero() {
		return z.SetZero()
	}
	var b uint64
	z[0], b = bits.Sub64(qElement[0], x[0], 0)
	z[1], b = bits.Sub64(qElement[1], x[1], b)
	z[2], b = bits.Sub64(qElement[2], x[2], b)
	z[3], _ = bits.Sub64(qElement[3], x[3], b)
	return z
}

// madd returns hi,lo of a*b + c + d.
func madd(a, b, c, d uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(a, b)
	var carry uint64
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi, lo
}

// Mul sets z = x·y mod q using Montgomery CIOS.
func (z *Element) Mul(x, y *Element) *Element {
	var t [Limbs + 1]uint64

	for i := 0; i < Limbs; i++ {
		// t = t + x[i]·y
		var carry uint64
		for j := 0; j < Limbs; j++ {
			carry, t[j] = madd(x[i], y[j], t[j], carry)
		}
		t[Limbs] += carry // never overflows: t < 2q·2²⁵⁶ invariant

		// fold the lowest limb away
		m := t[0] * qInvNeg
		carry, _ = madd(m, qElement[0], t[0], 0)
		for j := 1; j < Limbs; j++ {
			carry, t[j-1] = madd(m, qElement[j], t[j], carry)
		}
		t[Limbs-1], carry = bits.Add64(t[Limbs], carry, 0)
		t[Limbs] = carry
	}

	copy(z[:], t[:Limbs])
	return z.reduce()
}

// Square sets z = x² mod q.
func (z *Element) Square(x *Element) *Element {
	return z.Mul(x, x)
}

// toMont converts raw limbs into Montgomery form.
func (z *Element) toMont() *Element {
	return z.Mul(z, &rSquare)
}

// fromMont leaves the Montgomery domain.
func (z *Element) fromMont() *Element {
	o := Element{1}
	return z.Mul(z, &o)
}

// Exp sets z = x^e mod q. The ladder scans the public exponent bits
// and must not be used with secret exponents.
func (z *Element) Exp(x Element, e *big.Int) *Element {
	if e.Sign() == 0 {
		return z.SetOne()
	}
	z.SetOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		z.Square(z)
		if e.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// Inverse sets z = x⁻¹ mod q via Fermat (x^(q-2)); z = 0 when x = 0.
func (z *Element) Inverse(x *Element) *Element {
	return z.Exp(*x, qMinusTwo)
}

// Legendre returns 1 for a nonzero square, -1 for a non-square and 0
// for zero.
func (z *Element) Legendre() int {
	var l Element
	l.Exp(*z, legExp)
	if l.IsZero() {
		return 0
	}
	if l.IsOne() {
		return 1
	}
	return -1
}

// Sqrt sets z to a square root of x and reports whether one exists.
// Tonelli–Shanks with the field's 2-adicity of 32.
func (z *Element) Sqrt(x *Element) (*Element, bool) {
	if x.IsZero() {
		z.SetZero()
		return z, true
	}
	if x.Legendre() != 1 {
		return z, false
	}

	// Non-residue generator g = 7.
	var g Element
	g.SetUint64(7)
	var c Element
	c.Exp(g, tsT)

	var t, r Element
	t.Exp(*x, tsT)
	r.Exp(*x, tsExp)

	m := twoAdicity
	for !t.IsOne() {
		// find least i with t^(2^i) == 1
		i := 0
		sq := t
		for !sq.IsOne() {
			sq.Square(&sq)
			i++
		}
		// b = c^(2^(m-i-1))
		b := c
		for j := 0; j < m-i-1; j++ {
			b.Square(&b)
		}
		m = i
		c.Square(&b)
		t.Mul(&t, &c)
		r.Mul(&r, &b)
	}
	z.Set(&r)
	return z, true
}

// SetBigInt sets z from v reduced mod q.
func (z *Element) SetBigInt(v *big.Int) *Element {
	var r big.Int
	r.Mod(v, qBig)
	words := r.Bytes() // big-endian
	var buf [Bytes]byte
	copy(buf[Bytes-len(words):], words)
	z[3] = beUint64(buf[0:8])
	z[2] = beUint64(buf[8:16])
	z[1] = beUint64(buf[16:24])
	z[0] = beUint64(buf[24:32])
	return z.toMont()
}

// SetString sets z from a base-10 or "0x"-prefixed string.
func (z *Element) SetString(s string) (*Element, bool) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return z, false
	}
	return z.SetBigInt(v), true
}

// BigInt returns z in the regular domain.
func (z *Element) BigInt() *big.Int {
	e := *z
	e.fromMont()
	buf := make([]byte, Bytes)
	bePutUint64(buf[0:8], e[3])
	bePutUint64(buf[8:16], e[2])
	bePutUint64(buf[16:24], e[1])
	bePutUint64(buf[24:32], e[0])
	return new(big.Int).SetBytes(buf)
}

// SetBytesLE sets z from a 32-byte little-endian encoding, reducing
// mod q, and reports whether the input was canonical.
func (z *Element) SetBytesLE(b []byte) (*Element, bool) {
	if len(b) != Bytes {
		return z, false
	}
	z[0] = leUint64(b[0:8])
	z[1] = leUint64(b[8:16])
	z[2] = leUint64(b[16:24])
	z[3] = leUint64(b[24:32])
	canonical := z.smallerThanModulus()
	if !canonical {
		v := new(big.Int).SetBytes(reverse(b))
		return z.SetBigInt(v), false
	}
	return z.toMont(), true
}

// BytesLE returns the canonical 32-byte little-endian encoding.
func (z *Element) BytesLE() [Bytes]byte {
	e := *z
	e.fromMont()
	var out [Bytes]byte
	lePutUint64(out[0:8], e[0])
	lePutUint64(out[8:16], e[1])
	lePutUint64(out[16:24], e[2])
	lePutUint64(out[24:32], e[3])
	return out
}

// BytesBE returns the canonical 32-byte big-endian encoding.
func (z *Element) BytesBE() [Bytes]byte {
	le := z.BytesLE()
	var out [Bytes]byte
	for i := range le {
		out[Bytes-1-i] = le[i]
	}
	return out
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func lePutUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func beUint64(b []byte) uint64 {
	return uint64(b[7]) | uint64(b[6])<<8 | uint64(b[5])<<16 | uint64(b[4])<<24 |
		uint64(b[3])<<32 | uint64(b[2])<<40 | uint64(b[1])<<48 | uint64(b[0])<<56
}

func bePutUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> (8 * i))
	}
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
