package ringproof

import (
	"crypto/rand"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/lib/params"
)

func testSetup(t *testing.T) (*Params, *pcs.KZG) {
	t.Helper()
	p, err := NewParams(params.DefaultDomainSize)
	require.NoError(t, err)
	tau, err := rand.Int(rand.Reader, fr.Modulus())
	require.NoError(t, err)
	// the quotient has degree 3N, so the SRS must reach past it
	srs := pcs.GenerateSRS(tau, 3*params.DefaultDomainSize+2)
	return p, pcs.NewKZG(srs, pcs.DelegatedMSM{})
}

func testRing(n int) []TEPoint {
	ring := make([]TEPoint, n)
	g := BlindingBase()
	pt := SeedPoint()
	for i := range ring {
		pt = teAdd(pt, g)
		ring[i] = pt
	}
	return ring
}

func randomBlinding(t *testing.T) fr.Element {
	t.Helper()
	// stay below the Bandersnatch subgroup order (253 bits)
	buf := make([]byte, 31)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	var e fr.Element
	e.SetBytesLE(append(buf, 0))
	return e
}

func TestProveVerify(t *testing.T) {
	p, kzg := testSetup(t)
	ring := testRing(8)
	fixed, err := BuildFixedColumns(p, kzg, ring)
	require.NoError(t, err)

	signer := 3
	blinding := randomBlinding(t)
	proof, err := Prove(p, kzg, fixed, signer, blinding)
	require.NoError(t, err)

	// the relation the verifier checks: pkBlind = ring[signer] + b·B
	bits := make([]byte, 253)
	le := blinding.BytesLE()
	for j := range bits {
		bits[j] = (le[j/8] >> (uint(j) % 8)) & 1
	}
	pkBlind := teAdd(ring[signer], teScalarMulBits(bits, BlindingBase()))

	cpx, cpy, cs := fixed.Commitments()
	root := [3]bls12381.G1Affine{cpx, cpy, cs}

	ok, err := Verify(p, kzg, root, pkBlind, proof)
	require.NoError(t, err)
	assert.True(t, ok)

	// a wrong relation point rejects
	bad := teAdd(pkBlind, BlindingBase())
	ok, err = Verify(p, kzg, root, bad, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProofSerialization(t *testing.T) {
	p, kzg := testSetup(t)
	fixed, err := BuildFixedColumns(p, kzg, testRing(4))
	require.NoError(t, err)

	proof, err := Prove(p, kzg, fixed, 0, randomBlinding(t))
	require.NoError(t, err)

	wire := proof.Bytes()
	require.Len(t, wire, params.RingArgumentBytes)

	back, err := ParseProof(wire)
	require.NoError(t, err)
	assert.Equal(t, proof.Bytes(), back.Bytes())

	_, err = ParseProof(wire[:100])
	assert.ErrorIs(t, err, ErrProofEncoding)
}

func TestRingCapacity(t *testing.T) {
	p, err := NewParams(params.DefaultDomainSize)
	require.NoError(t, err)
	assert.Equal(t, params.DefaultDomainSize-params.PaddingRows-params.TraceScalarBits, p.MaxRing)

	_, err = ParamsForRingSize(p.MaxRing + 1)
	require.NoError(t, err) // bumps to the next domain

	big, err := ParamsForRingSize(1000)
	require.NoError(t, err)
	assert.Equal(t, 2048, big.Domain.Size)

	_, err = ParamsForRingSize(params.MaxDomainSize)
	assert.ErrorIs(t, err, ErrDomainMismatch)
}

func TestSignerOutOfRange(t *testing.T) {
	p, kzg := testSetup(t)
	fixed, err := BuildFixedColumns(p, kzg, testRing(4))
	require.NoError(t, err)

	_, err = Prove(p, kzg, fixed, p.MaxRing, randomBlinding(t))
	assert.ErrorIs(t, err, ErrKeyNotInRing)
}

func TestOversizedRingRejected(t *testing.T) {
	p, kzg := testSetup(t)
	_, err := BuildFixedColumns(p, kzg, testRing(p.MaxRing+1))
	assert.ErrorIs(t, err, ErrDomainMismatch)
}

func TestFixedColumnsDeterministic(t *testing.T) {
	p, kzg := testSetup(t)
	ring := testRing(5)

	f1, err := BuildFixedColumns(p, kzg, ring)
	require.NoError(t, err)
	f2, err := BuildFixedColumns(p, kzg, ring)
	require.NoError(t, err)

	a1, b1, c1 := f1.Commitments()
	a2, b2, c2 := f2.Commitments()
	assert.True(t, a1.Equal(&a2))
	assert.True(t, b1.Equal(&b2))
	assert.True(t, c1.Equal(&c2))
}
