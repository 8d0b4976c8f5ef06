package fr

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomElement(t *testing.T) Element {
	t.Helper()
	v, err := rand.Int(rand.Reader, Modulus())
	require.NoError(t, err)
	var e Element
	e.SetBigInt(v)
	return e
}

func TestFieldIdentities(t *testing.T) {
	a := randomElement(t)
	b := randomElement(t)
	c := randomElement(t)

	var left, right, tmp Element

	// commutativity
	left.Add(&a, &b)
	right.Add(&b, &a)
	assert.True(t, left.Equal(&right))
	left.Mul(&a, &b)
	right.Mul(&b, &a)
	assert.True(t, left.Equal(&right))

	// distributivity: a(b+c) == ab + ac
	tmp.Add(&b, &c)
	left.Mul(&a, &tmp)
	var ab, ac Element
	ab.Mul(&a, &b)
	ac.Mul(&a, &c)
	right.Add(&ab, &ac)
	assert.True(t, left.Equal(&right))

	// a + (-a) == 0
	tmp.Neg(&a)
	left.Add(&a, &tmp)
	assert.True(t, left.IsZero())

	// a · a⁻¹ == 1
	tmp.Inverse(&a)
	left.Mul(&a, &tmp)
	assert.True(t, left.IsOne())
}

func TestMulMatchesBigInt(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := randomElement(t)
		b := randomElement(t)
		var c Element
		c.Mul(&a, &b)

		expected := new(big.Int).Mul(a.BigInt(), b.BigInt())
		expected.Mod(expected, Modulus())
		assert.Equal(t, 0, c.BigInt().Cmp(expected))
	}
}

func TestBytesRoundTrip(t *testing.T) {
	a := randomElement(t)
	le := a.BytesLE()
	var b Element
	_, canonical := b.SetBytesLE(le[:])
	assert.True(t, canonical)
	assert.True(t, a.Equal(&b))

	be := a.BytesBE()
	v := new(big.Int).SetBytes(be[:])
	assert.Equal(t, 0, v.Cmp(a.BigInt()))
}

func TestNonCanonicalBytesReduce(t *testing.T) {
	raw := Modulus().Bytes() // big-endian q
	le := make([]byte, Bytes)
	for i, b := range raw {
		le[len(raw)-1-i] = b
	}
	var e Element
	_, canonical := e.SetBytesLE(le)
	assert.False(t, canonical)
	assert.True(t, e.IsZero())
}

func TestSqrt(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := randomElement(t)
		var sq Element
		sq.Square(&a)
		r, ok := new(Element).Sqrt(&sq)
		require.True(t, ok)
		var back Element
		back.Square(r)
		assert.True(t, back.Equal(&sq))
	}

	// a non-residue must be rejected: 7 generates the full group
	var g Element
	g.SetUint64(7)
	_, ok := new(Element).Sqrt(&g)
	assert.False(t, ok)
}

func TestLegendre(t *testing.T) {
	a := randomElement(t)
	var sq Element
	sq.Square(&a)
	assert.Equal(t, 1, sq.Legendre())

	var zero Element
	assert.Equal(t, 0, zero.Legendre())
}

func TestExpFermat(t *testing.T) {
	a := randomElement(t)
	var viaExp Element
	viaExp.Exp(a, new(big.Int).Sub(Modulus(), big.NewInt(1)))
	assert.True(t, viaExp.IsOne())
}
