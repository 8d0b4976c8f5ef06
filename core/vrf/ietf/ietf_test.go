package ietf

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func testSuites() []*curve.Curve {
	return []*curve.Curve{
		curve.Bandersnatch(), curve.BandersnatchSW(), curve.Ed25519(),
		curve.P256(), curve.Secp256k1(), curve.JubJub(),
	}
}

func TestProveVerifyAllSuites(t *testing.T) {
	for _, c := range testSuites() {
		v := New(c)
		sk := c.ScalarFromUint64(0xfeedface)
		pk := v.PublicKey(sk)

		proof, err := v.Prove(sk, []byte("alpha"), []byte("ad"))
		require.NoError(t, err, c.Name)

		ok, err := v.Verify(pk, []byte("alpha"), []byte("ad"), proof)
		require.NoError(t, err, c.Name)
		assert.True(t, ok, c.Name)

		// wrong additional data rejects
		ok, err = v.Verify(pk, []byte("alpha"), []byte("AD"), proof)
		require.NoError(t, err, c.Name)
		assert.False(t, ok, c.Name)

		// wrong message rejects
		ok, err = v.Verify(pk, []byte("omega"), []byte("ad"), proof)
		require.NoError(t, err, c.Name)
		assert.False(t, ok, c.Name)
	}
}

func TestBandersnatchProofFormat(t *testing.T) {
	c := curve.Bandersnatch()
	v := New(c)

	skBytes, err := hex.DecodeString("3d6406500d4009fdf2604546093665911e753f2213570a29521fd88bc30ede18")
	require.NoError(t, err)
	sk := c.ScalarFromBytesLE(skBytes)
	pk := v.PublicKey(sk)

	proof, err := v.Prove(sk, []byte{}, []byte{})
	require.NoError(t, err)

	wire := v.Bytes(proof)
	require.Len(t, wire, 96)

	parsed, err := v.FromBytes(wire)
	require.NoError(t, err)
	ok, err := v.Verify(pk, []byte{}, []byte{}, parsed)
	require.NoError(t, err)
	assert.True(t, ok)

	// flipping a byte inside the challenge region must reject
	wire[50] ^= 0x01
	tampered, err := v.FromBytes(wire)
	require.NoError(t, err)
	ok, err = v.Verify(pk, []byte{}, []byte{}, tampered)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOutputDeterminism(t *testing.T) {
	c := curve.Bandersnatch()
	v := New(c)
	sk := c.ScalarFromUint64(42)

	p1, err := v.Prove(sk, []byte("in"), nil)
	require.NoError(t, err)
	p2, err := v.Prove(sk, []byte("in"), nil)
	require.NoError(t, err)

	// the nonce is deterministic, so the whole proof repeats
	assert.Equal(t, v.Bytes(p1), v.Bytes(p2))
	assert.Equal(t, v.Hash(p1), v.Hash(p2))

	p3, err := v.Prove(sk, []byte("other"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, v.Hash(p1), v.Hash(p3))
}

func TestCrossSuiteRejection(t *testing.T) {
	bander := New(curve.Bandersnatch())
	jub := New(curve.JubJub())

	sk := curve.Bandersnatch().ScalarFromUint64(7)
	proof, err := bander.Prove(sk, []byte("msg"), nil)
	require.NoError(t, err)
	wire := bander.Bytes(proof)

	// same byte layout, different suite: either the point fails to
	// decode into the other subgroup or the challenge breaks
	parsed, err := jub.FromBytes(wire)
	if err == nil {
		jubSK := curve.JubJub().ScalarFromUint64(7)
		pk := jub.PublicKey(jubSK)
		ok, err := jub.Verify(pk, []byte("msg"), nil, parsed)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	c := curve.P256()
	v := New(c)
	sk := c.ScalarFromUint64(1001)
	other := v.PublicKey(c.ScalarFromUint64(1002))

	proof, err := v.Prove(sk, []byte("x"), nil)
	require.NoError(t, err)
	ok, err := v.Verify(other, []byte("x"), nil, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}
