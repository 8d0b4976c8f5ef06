package pedersen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func TestProveVerify(t *testing.T) {
	for _, c := range []*curve.Curve{curve.Bandersnatch(), curve.JubJub(), curve.Ed25519()} {
		v := New(c)
		sk := c.ScalarFromUint64(0xabcdef)

		proof, err := v.Prove(sk, []byte("alpha"), []byte("ad"))
		require.NoError(t, err, c.Name)

		ok, err := v.Verify([]byte("alpha"), []byte("ad"), proof)
		require.NoError(t, err, c.Name)
		assert.True(t, ok, c.Name)

		ok, err = v.Verify([]byte("alpha"), []byte("other"), proof)
		require.NoError(t, err, c.Name)
		assert.False(t, ok, c.Name)
	}
}

func TestFreshBlindingHidesKey(t *testing.T) {
	c := curve.Bandersnatch()
	v := New(c)
	sk := c.ScalarFromUint64(12345)

	p1, err := v.Prove(sk, []byte("in"), nil)
	require.NoError(t, err)
	p2, err := v.Prove(sk, []byte("in"), nil)
	require.NoError(t, err)

	// distinct commitments, identical gamma
	assert.False(t, p1.PKBlind.Equal(p2.PKBlind))
	assert.True(t, p1.Gamma.Equal(p2.Gamma))
	assert.Equal(t, v.Hash(p1), v.Hash(p2))

	for _, p := range []Proof{p1, p2} {
		ok, err := v.Verify([]byte("in"), nil, p)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBlindingOpensCommitment(t *testing.T) {
	c := curve.Bandersnatch()
	v := New(c)
	sk := c.ScalarFromUint64(777)

	proof, b, err := v.ProveWithBlinding(sk, []byte("m"), nil)
	require.NoError(t, err)

	expected := c.Add(c.ScalarBaseMul(sk), c.ScalarMul(c.BlindingBase(), b))
	assert.True(t, proof.PKBlind.Equal(expected))
}

func TestSerializationRoundTrip(t *testing.T) {
	c := curve.Bandersnatch()
	v := New(c)
	sk := c.ScalarFromUint64(31337)

	proof, err := v.Prove(sk, []byte("wire"), []byte("ctx"))
	require.NoError(t, err)

	wire := v.Bytes(proof)
	require.Len(t, wire, 192)

	parsed, err := v.FromBytes(wire)
	require.NoError(t, err)
	ok, err := v.Verify([]byte("wire"), []byte("ctx"), parsed)
	require.NoError(t, err)
	assert.True(t, ok)

	// tampering with the blinding response scalar sb rejects
	wire[160] ^= 0x40
	tampered, err := v.FromBytes(wire)
	require.NoError(t, err)
	ok, err = v.Verify([]byte("wire"), []byte("ctx"), tampered)
	require.NoError(t, err)
	assert.False(t, ok)
}
