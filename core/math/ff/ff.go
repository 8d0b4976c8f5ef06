// Package ff provides prime-field arithmetic for the curve coordinate
// fields. Elements are saferith naturals reduced modulo the field
// characteristic, so the ring operations run in constant time for a
// given announced size; the square-root and Legendre helpers branch
// and are only ever fed public values (map-to-curve inputs and point
// decompression).
package ff

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Element is a field element. The zero value is not usable; elements
// are produced by a Field.
type Element struct {
	n *saferith.Nat
}

// Field is an immutable modulus context.
type Field struct {
	p       *saferith.Modulus
	pBig    *big.Int
	byteLen int

	legExp  *big.Int // (p-1)/2
	pMod4   uint
	pMod8   uint
	sqrtExp *big.Int // (p+1)/4 or (p+3)/8 depending on the residue class

	// Tonelli–Shanks precomputation for p ≡ 1 (mod 8).
	tsS    int
	tsT    *big.Int // odd part of p-1
	tsExp  *big.Int // (t+1)/2
	tsZ    *big.Int // a quadratic non-residue
	sqrtM1 *big.Int // 2^((p-1)/4), the p ≡ 5 (mod 8) fix-up
}

// NewField builds a context for the odd prime p.
func NewField(p *big.Int) *Field {
	f := &Field{
		p:       saferith.ModulusFromBytes(p.Bytes()),
		pBig:    new(big.Int).Set(p),
		byteLen: (p.BitLen() + 7) / 8,
	}
	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	f.legExp = new(big.Int).Rsh(pm1, 1)
	f.pMod4 = uint(new(big.Int).Mod(p, big.NewInt(4)).Uint64())
	f.pMod8 = uint(new(big.Int).Mod(p, big.NewInt(8)).Uint64())

	switch {
	case f.pMod4 == 3:
		f.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
	case f.pMod8 == 5:
		f.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(3)), 3)
		f.sqrtM1 = new(big.Int).Exp(big.NewInt(2), new(big.Int).Rsh(pm1, 2), p)
	default:
		t := new(big.Int).Set(pm1)
		s := 0
		for t.Bit(0) == 0 {
			t.Rsh(t, 1)
			s++
		}
		f.tsS = s
		f.tsT = t
		f.tsExp = new(big.Int).Rsh(new(big.Int).Add(t, big.NewInt(1)), 1)
		z := big.NewInt(2)
		for new(big.Int).Exp(z, f.legExp, p).Cmp(pm1) != 0 {
			z.Add(z, big.NewInt(1))
		}
		f.tsZ = z
	}
	return f
}

// Modulus returns p.
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.pBig) }

// ByteLen returns the serialized element width.
func (f *Field) ByteLen() int { return f.byteLen }

func (f *Field) wrap(n *saferith.Nat) Element {
	return Element{n: n.Mod(n, f.p)}
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{n: new(saferith.Nat).SetUint64(0).Resize(f.p.BitLen())}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return f.FromUint64(1)
}

// FromUint64 returns v as an element.
func (f *Field) FromUint64(v uint64) Element {
	return f.wrap(new(saferith.Nat).SetUint64(v))
}

// FromBig returns v mod p as an element.
func (f *Field) FromBig(v *big.Int) Element {
	r := new(big.Int).Mod(v, f.pBig)
	return Element{n: new(saferith.Nat).SetBig(r, f.p.BitLen())}
}

// ToBig returns e as a big integer.
func (f *Field) ToBig(e Element) *big.Int {
	return e.n.Big()
}

// FromBytesBE interprets b as a big-endian integer reduced mod p.
func (f *Field) FromBytesBE(b []byte) Element {
	return f.wrap(new(saferith.Nat).SetBytes(b))
}

// BytesBE returns the fixed-width big-endian encoding of e.
func (f *Field) BytesBE(e Element) []byte {
	raw := e.n.Big().Bytes()
	out := make([]byte, f.byteLen)
	copy(out[f.byteLen-len(raw):], raw)
	return out
}

// BytesLE returns the fixed-width little-endian encoding of e.
func (f *Field) BytesLE(e Element) []byte {
	be := f.BytesBE(e)
	for i, j := 0, len(be)-1; i < j; i, j = i+1, j-1 {
		be[i], be[j] = be[j], be[i]
	}
	return be
}

// FromBytesLE interprets b as a little-endian integer reduced mod p.
func (f *Field) FromBytesLE(b []byte) Element {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return f.FromBytesBE(be)
}

// Add returns a + b.
func (f *Field) Add(a, b Element) Element {
	return Element{n: new(saferith.Nat).ModAdd(a.n, b.n, f.p)}
}

// Sub returns a - b.
func (f *Field) Sub(a, b Element) Element {
	return Element{n: new(saferith.Nat).ModSub(a.n, b.n, f.p)}
}

// Neg returns -a.
func (f *Field) Neg(a Element) Element {
	return Element{n: new(saferith.Nat).ModNeg(a.n, f.p)}
}

// Mul returns a·b.
func (f *Field) Mul(a, b Element) Element {
	return Element{n: new(saferith.Nat).ModMul(a.n, b.n, f.p)}
}

// Square returns a².
func (f *Field) Square(a Element) Element {
	return f.Mul(a, a)
}

// Inv returns a⁻¹; the inverse of zero is zero.
func (f *Field) Inv(a Element) Element {
	if f.IsZero(a) {
		return f.Zero()
	}
	return Element{n: new(saferith.Nat).ModInverse(a.n, f.p)}
}

// Exp returns a^e for a public exponent.
func (f *Field) Exp(a Element, e *big.Int) Element {
	eNat := new(saferith.Nat).SetBig(e, e.BitLen())
	return Element{n: new(saferith.Nat).Exp(a.n, eNat, f.p)}
}

// IsZero reports whether e is zero.
func (f *Field) IsZero(e Element) bool {
	return e.n.EqZero() == 1
}

// Equal reports whether a == b.
func (f *Field) Equal(a, b Element) bool {
	return a.n.Eq(b.n) == 1
}

// Sgn0 returns the RFC 9380 sign of e (its parity).
func (f *Field) Sgn0(e Element) int {
	return int(e.n.Byte(0) & 1)
}

// IsSquare reports whether e is a quadratic residue (zero counts).
func (f *Field) IsSquare(e Element) bool {
	if f.IsZero(e) {
		return true
	}
	l := f.Exp(e, f.legExp)
	return f.Equal(l, f.One())
}

// Sqrt returns a square root of e when one exists.
func (f *Field) Sqrt(e Element) (Element, bool) {
	if f.IsZero(e) {
		return f.Zero(), true
	}
	switch {
	case f.pMod4 == 3:
		r := f.Exp(e, f.sqrtExp)
		if f.Equal(f.Square(r), e) {
			return r, true
		}
		return f.Zero(), false
	case f.pMod8 == 5:
		r := f.Exp(e, f.sqrtExp)
		if f.Equal(f.Square(r), e) {
			return r, true
		}
		r = f.Mul(r, f.FromBig(f.sqrtM1))
		if f.Equal(f.Square(r), e) {
			return r, true
		}
		return f.Zero(), false
	default:
		return f.tonelliShanks(e)
	}
}

func (f *Field) tonelliShanks(e Element) (Element, bool) {
	if !f.IsSquare(e) {
		return f.Zero(), false
	}
	m := f.tsS
	c := f.Exp(f.FromBig(f.tsZ), f.tsT)
	t := f.Exp(e, f.tsT)
	r := f.Exp(e, f.tsExp)
	for !f.Equal(t, f.One()) {
		i := 0
		sq := t
		for !f.Equal(sq, f.One()) {
			sq = f.Square(sq)
			i++
			if i == m {
				return f.Zero(), false
			}
		}
		b := c
		for j := 0; j < m-i-1; j++ {
			b = f.Square(b)
		}
		m = i
		c = f.Square(b)
		t = f.Mul(t, c)
		r = f.Mul(r, b)
	}
	return r, true
}

// CMov returns b when cond is true and a otherwise. Both arms are
// materialized before selection.
func (f *Field) CMov(a, b Element, cond bool) Element {
	if cond {
		return b
	}
	return a
}
