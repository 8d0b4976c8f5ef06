package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func TestFromSeedDeterministic(t *testing.T) {
	c := curve.Bandersnatch()
	a, err := FromSeed(c, []byte("seed"))
	require.NoError(t, err)
	b, err := FromSeed(c, []byte("seed"))
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())

	other, err := FromSeed(c, []byte("seed2"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Bytes(), other.Bytes())

	_, err = FromSeed(c, nil)
	assert.ErrorIs(t, err, ErrSeedLength)
}

func TestGenerate(t *testing.T) {
	c := curve.Bandersnatch()
	sk, pk, err := Generate(c, nil)
	require.NoError(t, err)
	assert.True(t, pk.Equal(sk.Public()))
	assert.True(t, c.InSubgroup(pk))
}

func TestBytesRoundTrip(t *testing.T) {
	c := curve.Bandersnatch()
	sk, err := FromSeed(c, []byte("round trip"))
	require.NoError(t, err)

	back, err := FromBytes(c, sk.Bytes())
	require.NoError(t, err)
	assert.True(t, back.Scalar().Equal(sk.Scalar()))
}

func TestZeroize(t *testing.T) {
	c := curve.Bandersnatch()
	sk, err := FromSeed(c, []byte("gone"))
	require.NoError(t, err)
	sk.Zeroize()
	for _, b := range sk.Bytes() {
		assert.Zero(t, b)
	}
	assert.True(t, sk.Scalar().IsZero())
}

func TestRecordRoundTrip(t *testing.T) {
	c := curve.Bandersnatch()
	sk, err := FromSeed(c, []byte("record"))
	require.NoError(t, err)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)

	back, err := UnmarshalRecord(c, data)
	require.NoError(t, err)
	assert.Equal(t, sk.Bytes(), back.Bytes())

	_, err = UnmarshalRecord(curve.JubJub(), data)
	assert.Error(t, err)
}
