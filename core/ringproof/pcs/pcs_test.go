package pcs

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
)

func testSRS(t *testing.T, n int) *SRS {
	t.Helper()
	tau, err := rand.Int(rand.Reader, fr.Modulus())
	require.NoError(t, err)
	return GenerateSRS(tau, n)
}

func randomPoly(t *testing.T, n int) polynomial.Poly {
	t.Helper()
	p := make(polynomial.Poly, n)
	for i := range p {
		v, err := rand.Int(rand.Reader, fr.Modulus())
		require.NoError(t, err)
		p[i].SetBigInt(v)
	}
	return p
}

func randomScalar(t *testing.T) fr.Element {
	t.Helper()
	v, err := rand.Int(rand.Reader, fr.Modulus())
	require.NoError(t, err)
	var e fr.Element
	e.SetBigInt(v)
	return e
}

func TestKZGOpenVerify(t *testing.T) {
	srs := testSRS(t, 64)
	kzg := NewKZG(srs, nil)

	f := randomPoly(t, 33)
	commit, err := kzg.Commit(f)
	require.NoError(t, err)

	z := randomScalar(t)
	opening, err := kzg.Open(f, &z)
	require.NoError(t, err)

	expected := f.Eval(&z)
	assert.True(t, opening.Y.Equal(&expected))
	assert.True(t, kzg.Verify(commit, opening.Proof, &z, &opening.Y))

	// a lying evaluation fails the pairing check
	var wrong fr.Element
	oneEl := fr.One()
	wrong.Add(&opening.Y, &oneEl)
	assert.False(t, kzg.Verify(commit, opening.Proof, &z, &wrong))
}

func TestCommitRejectsOversizedPoly(t *testing.T) {
	srs := testSRS(t, 8)
	kzg := NewKZG(srs, nil)
	_, err := kzg.Commit(randomPoly(t, 9))
	assert.ErrorIs(t, err, ErrSRSDegree)
}

func TestMSMBackendsAgree(t *testing.T) {
	srs := testSRS(t, 128)
	scalars := make([]fr.Element, 128)
	for i := range scalars {
		scalars[i] = randomScalar(t)
	}

	portable, err := PortableMSM{}.MultiScalarMulG1(srs.G1, scalars)
	require.NoError(t, err)
	delegated, err := DelegatedMSM{}.MultiScalarMulG1(srs.G1, scalars)
	require.NoError(t, err)
	assert.True(t, portable.Equal(&delegated))
}

func TestMSMEdgeCases(t *testing.T) {
	srs := testSRS(t, 4)

	// length mismatch
	_, err := PortableMSM{}.MultiScalarMulG1(srs.G1, make([]fr.Element, 3))
	assert.ErrorIs(t, err, ErrMSMLength)

	// all-zero scalars hit the identity
	out, err := PortableMSM{}.MultiScalarMulG1(srs.G1, make([]fr.Element, 4))
	require.NoError(t, err)
	assert.True(t, out.IsInfinity())
}

func TestBatchOpen(t *testing.T) {
	srs := testSRS(t, 64)
	kzg := NewKZG(srs, DelegatedMSM{})

	polys := []polynomial.Poly{randomPoly(t, 20), randomPoly(t, 40), randomPoly(t, 10)}
	nus := []fr.Element{randomScalar(t), randomScalar(t), randomScalar(t)}
	z := randomScalar(t)

	opening, err := kzg.BatchOpen(polys, nus, &z)
	require.NoError(t, err)

	// the folded claim equals the ν-weighted sum of the evaluations
	var expected, tmp fr.Element
	for i := range polys {
		e := polys[i].Eval(&z)
		tmp.Mul(&nus[i], &e)
		expected.Add(&expected, &tmp)
	}
	assert.True(t, opening.Y.Equal(&expected))
}

func TestParseSRSRoundTrip(t *testing.T) {
	srs := testSRS(t, 6)

	// rebuild the on-disk layout from the generated string
	data := make([]byte, 8)
	data[0] = 6 // little-endian count
	for i := range srs.G1 {
		raw := srs.G1[i].RawBytes()
		// strip gnark's serialization flags down to plain coordinates
		var plain [96]byte
		copy(plain[:], raw[:])
		plain[0] &= 0x1f
		data = append(data, plain[:]...)
	}
	for i := range srs.G2 {
		raw := srs.G2[i].RawBytes()
		var plain [192]byte
		copy(plain[:], raw[:])
		plain[0] &= 0x1f
		data = append(data, plain[:]...)
	}

	parsed, err := ParseSRS(data)
	require.NoError(t, err)
	require.Len(t, parsed.G1, 6)
	assert.True(t, parsed.G1[3].Equal(&srs.G1[3]))
	assert.True(t, parsed.G2[1].Equal(&srs.G2[1]))
}

func TestGenerateSRSStructure(t *testing.T) {
	tau := big.NewInt(12345)
	srs := GenerateSRS(tau, 4)
	// G1[i+1] == τ·G1[i]
	next := scalarMulG1(&srs.G1[1], big.NewInt(1))
	expect := scalarMulG1(&srs.G1[0], tau)
	assert.True(t, next.Equal(&expect))
	assert.Equal(t, 3, srs.MaxDegree())
}
