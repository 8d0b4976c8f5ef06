package ff

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the three residue classes the sqrt dispatch distinguishes
var testPrimes = []string{
	"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", // ≡ 3 (mod 4)
	"0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", // ≡ 5 (mod 8)
	"0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", // ≡ 1 (mod 8)
}

func TestArithmetic(t *testing.T) {
	for _, ps := range testPrimes {
		p, _ := new(big.Int).SetString(ps, 0)
		f := NewField(p)

		a := f.FromUint64(1234567891011)
		b := f.FromUint64(987654321)

		assert.True(t, f.Equal(f.Add(a, b), f.Add(b, a)))
		assert.True(t, f.IsZero(f.Add(a, f.Neg(a))))
		assert.True(t, f.Equal(f.Mul(a, f.Inv(a)), f.One()))

		// Fermat
		e := f.Exp(a, new(big.Int).Sub(p, big.NewInt(1)))
		assert.True(t, f.Equal(e, f.One()))
	}
}

func TestSqrtAllResidueClasses(t *testing.T) {
	for _, ps := range testPrimes {
		p, _ := new(big.Int).SetString(ps, 0)
		f := NewField(p)
		for _, v := range []uint64{2, 3, 5, 101, 999983} {
			a := f.FromUint64(v)
			sq := f.Square(a)
			r, ok := f.Sqrt(sq)
			require.True(t, ok, "prime %s value %d", ps, v)
			assert.True(t, f.Equal(f.Square(r), sq))
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	p, _ := new(big.Int).SetString(testPrimes[0], 0)
	f := NewField(p)
	a := f.FromUint64(0xdeadbeef12345678)

	be := f.BytesBE(a)
	assert.Len(t, be, f.ByteLen())
	assert.True(t, f.Equal(a, f.FromBytesBE(be)))

	le := f.BytesLE(a)
	assert.True(t, f.Equal(a, f.FromBytesLE(le)))
}

func TestSgn0(t *testing.T) {
	p, _ := new(big.Int).SetString(testPrimes[0], 0)
	f := NewField(p)
	assert.Equal(t, 0, f.Sgn0(f.FromUint64(4)))
	assert.Equal(t, 1, f.Sgn0(f.FromUint64(7)))
}
