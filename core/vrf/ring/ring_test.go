package ring

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/ringproof"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/lib/params"
)

func testVRF(t *testing.T) VRF {
	t.Helper()
	p, err := ringproof.NewParams(params.DefaultDomainSize)
	require.NoError(t, err)
	tau, err := rand.Int(rand.Reader, fr.Modulus())
	require.NoError(t, err)
	srs := pcs.GenerateSRS(tau, 3*params.DefaultDomainSize+2)
	return New(p, pcs.NewKZG(srs, pcs.DelegatedMSM{}))
}

func testKeys(t *testing.T, n int) ([]curve.Scalar, []curve.Point) {
	t.Helper()
	c := curve.Bandersnatch()
	sks := make([]curve.Scalar, n)
	pks := make([]curve.Point, n)
	for i := range sks {
		sks[i] = c.ScalarFromUint64(uint64(1000 + i))
		pks[i] = c.ScalarBaseMul(sks[i])
	}
	return sks, pks
}

func TestRingRootShape(t *testing.T) {
	v := testVRF(t)
	_, pks := testKeys(t, 8)

	root, err := v.ConstructRingRoot(pks)
	require.NoError(t, err)

	wire := root.Bytes()
	require.Len(t, wire, params.RingRootBytes)

	// deterministic in the ring
	again, err := v.ConstructRingRoot(pks)
	require.NoError(t, err)
	assert.Equal(t, wire, again.Bytes())

	parsed, err := ParseRoot(wire)
	require.NoError(t, err)
	assert.Equal(t, wire, parsed.Bytes())

	_, err = ParseRoot(wire[:100])
	assert.ErrorIs(t, err, ErrRootLength)
}

func TestRingProveVerify(t *testing.T) {
	v := testVRF(t)
	sks, pks := testKeys(t, 8)

	root, err := v.ConstructRingRoot(pks)
	require.NoError(t, err)

	proof, err := v.Prove(sks[2], pks[2], []byte("alpha"), []byte("ad"), pks)
	require.NoError(t, err)
	require.Len(t, proof, params.RingProofBytes)

	ok, err := v.Verify([]byte("alpha"), []byte("ad"), root, proof)
	require.NoError(t, err)
	assert.True(t, ok)

	// mutated transcript inputs reject
	ok, err = v.Verify([]byte("alphb"), []byte("ad"), root, proof)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = v.Verify([]byte("alpha"), []byte("da"), root, proof)
	require.NoError(t, err)
	assert.False(t, ok)

	// a different ring gives a different root, which rejects
	_, otherPks := testKeys(t, 8)
	otherPks[0] = curve.Bandersnatch().ScalarBaseMul(curve.Bandersnatch().ScalarFromUint64(9999))
	otherRoot, err := v.ConstructRingRoot(otherPks)
	require.NoError(t, err)
	assert.NotEqual(t, root.Bytes(), otherRoot.Bytes())
	ok, _ = v.Verify([]byte("alpha"), []byte("ad"), otherRoot, proof)
	assert.False(t, ok)
}

func TestBitFlipRejects(t *testing.T) {
	v := testVRF(t)
	sks, pks := testKeys(t, 4)
	root, err := v.ConstructRingRoot(pks)
	require.NoError(t, err)

	proof, err := v.Prove(sks[0], pks[0], []byte("a"), nil, pks)
	require.NoError(t, err)

	// one flip in the Pedersen region, one in the SNARK region
	for _, idx := range []int{40, 400} {
		tampered := append([]byte{}, proof...)
		tampered[idx] ^= 0x01
		ok, err := v.Verify([]byte("a"), nil, root, tampered)
		if err == nil {
			assert.False(t, ok, "flip at %d", idx)
		}
	}
}

func TestKeyNotInRing(t *testing.T) {
	v := testVRF(t)
	sks, pks := testKeys(t, 4)

	outsider := curve.Bandersnatch().ScalarFromUint64(555555)
	outsiderPK := curve.Bandersnatch().ScalarBaseMul(outsider)

	_, err := v.Prove(outsider, outsiderPK, []byte("a"), nil, pks)
	assert.ErrorIs(t, err, ErrKeyNotInRing)

	// same scalar, claimed index of someone else: the Pedersen proof
	// and the trace disagree, so verification rejects
	proof, err := v.Prove(outsider, pks[1], []byte("a"), nil, pks)
	if err == nil {
		root, err := v.ConstructRingRoot(pks)
		require.NoError(t, err)
		ok, _ := v.Verify([]byte("a"), nil, root, proof)
		assert.False(t, ok)
	}
	_ = sks
}

func TestOutputHash(t *testing.T) {
	v := testVRF(t)
	sks, pks := testKeys(t, 4)
	root, err := v.ConstructRingRoot(pks)
	require.NoError(t, err)

	proof, err := v.Prove(sks[1], pks[1], []byte("in"), nil, pks)
	require.NoError(t, err)
	ok, err := v.Verify([]byte("in"), nil, root, proof)
	require.NoError(t, err)
	require.True(t, ok)

	h1, err := v.Hash(proof)
	require.NoError(t, err)
	require.Len(t, h1, 64)

	// a second proof over the same input carries the same gamma
	proof2, err := v.Prove(sks[1], pks[1], []byte("in"), nil, pks)
	require.NoError(t, err)
	h2, err := v.Hash(proof2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
