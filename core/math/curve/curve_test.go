package curve

import (
	"crypto/rand"
	"testing"

	ed "filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allSuites() []*Curve {
	return []*Curve{
		Bandersnatch(), BandersnatchSW(), Ed25519(), Curve25519(),
		Ed448(), Curve448(), P256(), P384(), P521(), Secp256k1(),
		JubJub(), BabyJubJub(),
	}
}

func TestGeneratorsOnCurve(t *testing.T) {
	for _, c := range allSuites() {
		assert.True(t, c.IsOnCurve(c.Generator()), c.Name)
		assert.True(t, c.InSubgroup(c.Generator()), c.Name)
		if c.HasBlinding {
			assert.True(t, c.IsOnCurve(c.BlindingBase()), c.Name)
		}
	}
}

func TestGroupLaw(t *testing.T) {
	for _, c := range allSuites() {
		g := c.Generator()
		id := c.Identity()

		assert.True(t, c.Add(g, id).Equal(g), c.Name)
		assert.True(t, c.Add(id, g).Equal(g), c.Name)
		assert.True(t, c.Add(g, c.Neg(g)).IsIdentity(), c.Name)

		// associativity on a few multiples
		g2 := c.Double(g)
		g3 := c.Add(g2, g)
		assert.True(t, c.Add(g, g2).Equal(g3), c.Name)
		assert.True(t, c.Add(g3, c.Neg(g)).Equal(g2), c.Name)
	}
}

func TestOrderAnnihilates(t *testing.T) {
	for _, c := range allSuites() {
		got := c.mulBig(c.Generator(), c.Order)
		assert.True(t, got.IsIdentity(), c.Name)
	}
}

func TestScalarMulAgainstDoubleAndAdd(t *testing.T) {
	for _, c := range allSuites() {
		s, err := c.RandomScalar(rand.Reader)
		require.NoError(t, err)
		fast := c.ScalarMul(c.Generator(), s)
		slow := c.mulBig(c.Generator(), s.Big())
		assert.True(t, fast.Equal(slow), c.Name)
	}
}

func TestDoubleScalarMul(t *testing.T) {
	c := Bandersnatch()
	a, _ := c.RandomScalar(rand.Reader)
	b, _ := c.RandomScalar(rand.Reader)
	p := c.ScalarBaseMul(a) // some point
	q := c.Generator()

	got := c.DoubleScalarMul(a, p, b, q)
	expected := c.Add(c.ScalarMul(p, a), c.ScalarMul(q, b))
	assert.True(t, got.Equal(expected))

	e, _ := c.RandomScalar(rand.Reader)
	d, _ := c.RandomScalar(rand.Reader)
	r := c.ScalarBaseMul(e)
	s4 := c.QuadScalarMul(a, p, b, q, e, r, d, c.BlindingBase())
	expected4 := c.Add(expected, c.Add(c.ScalarMul(r, e), c.ScalarMul(c.BlindingBase(), d)))
	assert.True(t, s4.Equal(expected4))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, c := range allSuites() {
		s, err := c.RandomScalar(rand.Reader)
		require.NoError(t, err)
		p := c.ScalarBaseMul(s)

		enc := c.Encode(p)
		back, err := c.Decode(enc)
		require.NoError(t, err, c.Name)
		assert.True(t, p.Equal(back), c.Name)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := Bandersnatch()
	_, err := c.Decode(make([]byte, 31))
	assert.Error(t, err)

	// y beyond the field prime
	bad := make([]byte, 32)
	for i := range bad {
		bad[i] = 0xff
	}
	bad[31] = 0x7f
	_, err = c.Decode(bad)
	assert.Error(t, err)
}

func TestSecp256k1CrossCheck(t *testing.T) {
	c := Secp256k1()
	s, err := c.RandomScalar(rand.Reader)
	require.NoError(t, err)

	p := c.ScalarBaseMul(s)

	priv := secp256k1.PrivKeyFromBytes(s.BytesBE())
	ref := priv.PubKey().SerializeUncompressed()
	require.Len(t, ref, 65)
	assert.Equal(t, ref[1:33], c.Fp.BytesBE(p.X))
	assert.Equal(t, ref[33:], c.Fp.BytesBE(p.Y))
}

func TestEd25519CrossCheck(t *testing.T) {
	c := Ed25519()
	s, err := c.RandomScalar(rand.Reader)
	require.NoError(t, err)

	p := c.ScalarBaseMul(s)

	sc, err := ed.NewScalar().SetCanonicalBytes(s.BytesLE())
	require.NoError(t, err)
	ref := new(ed.Point).ScalarBaseMult(sc)
	refBytes := ref.Bytes()

	signBit := refBytes[31] >> 7
	yLE := make([]byte, 32)
	copy(yLE, refBytes)
	yLE[31] &= 0x7f

	assert.Equal(t, yLE, c.Fp.BytesLE(p.Y))
	assert.Equal(t, int(signBit), c.Fp.Sgn0(p.X))
}

func TestMontgomeryLadderMatchesGeneric(t *testing.T) {
	c := Curve25519()
	s, err := c.RandomScalar(rand.Reader)
	require.NoError(t, err)
	viaLadder := c.ScalarMul(c.Generator(), s)
	viaBits := c.mulBig(c.Generator(), s.Big())
	assert.True(t, viaLadder.Equal(viaBits))
}

func TestScalarArithmetic(t *testing.T) {
	c := Bandersnatch()
	a, _ := c.RandomScalar(rand.Reader)
	b, _ := c.RandomScalar(rand.Reader)

	assert.True(t, a.Add(b).Sub(b).Equal(a))
	assert.True(t, a.Mul(a.Inv()).Equal(c.ScalarFromUint64(1)))

	le := a.BytesLE()
	assert.Len(t, le, 32)
	assert.True(t, c.ScalarFromBytesLE(le).Equal(a))
}
