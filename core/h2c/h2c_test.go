package h2c

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func mappedSuites() []*curve.Curve {
	return []*curve.Curve{
		curve.Bandersnatch(), curve.Curve25519(), curve.Ed448(),
		curve.Curve448(), curve.P256(), curve.P384(), curve.P521(),
		curve.Secp256k1(),
	}
}

func taiSuites() []*curve.Curve {
	return []*curve.Curve{
		curve.BandersnatchSW(), curve.Ed25519(), curve.JubJub(),
		curve.BabyJubJub(),
	}
}

func TestExpandMessageXMD(t *testing.T) {
	out, err := ExpandMessageXMD(sha256.New, 64, []byte("abc"), []byte("QUUX-V01-CS02"), 32)
	require.NoError(t, err)
	assert.Len(t, out, 32)

	// deterministic
	again, err := ExpandMessageXMD(sha256.New, 64, []byte("abc"), []byte("QUUX-V01-CS02"), 32)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	// the requested length is bound into b_0, so a longer request does
	// not start with the shorter output
	long, err := ExpandMessageXMD(sha256.New, 64, []byte("abc"), []byte("QUUX-V01-CS02"), 96)
	require.NoError(t, err)
	assert.Len(t, long, 96)
	assert.NotEqual(t, out, long[:32])

	// message sensitivity
	other, err := ExpandMessageXMD(sha256.New, 64, []byte("abd"), []byte("QUUX-V01-CS02"), 32)
	require.NoError(t, err)
	assert.NotEqual(t, out, other)
}

func TestExpandMessageXOF(t *testing.T) {
	out, err := ExpandMessageXOF([]byte("abc"), []byte("DST"), 84)
	require.NoError(t, err)
	assert.Len(t, out, 84)

	_, err = ExpandMessageXOF([]byte("abc"), make([]byte, 256), 84)
	assert.ErrorIs(t, err, ErrDSTLength)
}

func TestHashToFieldCountAndDistinct(t *testing.T) {
	for _, c := range mappedSuites() {
		u, err := HashToField(c, []byte("sample input"), 2)
		require.NoError(t, err, c.Name)
		require.Len(t, u, 2)
		assert.False(t, c.Fp.Equal(u[0], u[1]), c.Name)
	}
}

func TestEncodeToCurveProducesSubgroupPoints(t *testing.T) {
	msgs := [][]byte{{}, []byte("a"), []byte("abc"), []byte("a longer test message")}
	for _, c := range append(mappedSuites(), taiSuites()...) {
		for _, msg := range msgs {
			p, err := EncodeToCurve(c, msg, nil)
			require.NoError(t, err, c.Name)
			assert.True(t, c.IsOnCurve(p), c.Name)
			assert.True(t, c.InSubgroup(p), c.Name)
			assert.False(t, p.IsIdentity(), c.Name)
		}
	}
}

func TestEncodeToCurveDeterministicAndSensitive(t *testing.T) {
	for _, c := range append(mappedSuites(), taiSuites()...) {
		p1, err := EncodeToCurve(c, []byte("msg"), nil)
		require.NoError(t, err, c.Name)
		p2, err := EncodeToCurve(c, []byte("msg"), nil)
		require.NoError(t, err, c.Name)
		assert.True(t, p1.Equal(p2), c.Name)

		p3, err := EncodeToCurve(c, []byte("msh"), nil)
		require.NoError(t, err, c.Name)
		assert.False(t, p1.Equal(p3), c.Name)

		// a salt moves the point
		p4, err := EncodeToCurve(c, []byte("msg"), []byte("salt"))
		require.NoError(t, err, c.Name)
		assert.False(t, p1.Equal(p4), c.Name)
	}
}

func TestHashToCurveDiffersFromEncode(t *testing.T) {
	for _, c := range mappedSuites() {
		ro, err := HashToCurve(c, []byte("msg"), nil)
		require.NoError(t, err, c.Name)
		nu, err := EncodeToCurve(c, []byte("msg"), nil)
		require.NoError(t, err, c.Name)
		assert.True(t, c.IsOnCurve(ro), c.Name)
		assert.False(t, ro.Equal(nu), c.Name)
	}
}

func TestBLS12381Hashing(t *testing.T) {
	dstG2 := []byte("QUUX-V01-CS02-with-BLS12381G2_XMD:SHA-256_SSWU_RO_")
	p, err := HashToCurveG2([]byte("abc"), dstG2)
	require.NoError(t, err)
	assert.True(t, p.IsOnCurve())
	assert.True(t, p.IsInSubGroup())

	again, err := HashToCurveG2([]byte("abc"), dstG2)
	require.NoError(t, err)
	assert.True(t, p.Equal(&again))

	g1, err := HashToCurveG1([]byte("abc"), []byte("QUUX-V01-CS02-with-BLS12381G1_XMD:SHA-256_SSWU_RO_"))
	require.NoError(t, err)
	assert.True(t, g1.IsOnCurve())
	assert.True(t, g1.IsInSubGroup())
}
