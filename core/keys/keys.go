// Package keys derives and wraps VRF key material. SecretKey keeps the
// scalar behind a narrow API so it cannot end up in logs by accident,
// and Zeroize clears the backing bytes when the holder is done.
package keys

import (
	"crypto/rand"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/cipherworks/vrf-lib/core/math/curve"
	"github.com/cipherworks/vrf-lib/lib/params"
)

var ErrSeedLength = errors.New("keys: seed must not be empty")

const deriveContext = "vrf-lib v1 secret key derivation"

// SecretKey is a curve scalar with its canonical byte form.
type SecretKey struct {
	suite  *curve.Curve
	scalar curve.Scalar
	raw    []byte
}

// Generate samples a fresh key pair from rand (crypto/rand when nil).
func Generate(suite *curve.Curve, rng io.Reader) (*SecretKey, curve.Point, error) {
	if rng == nil {
		rng = rand.Reader
	}
	seed := make([]byte, params.ScalarBytes)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, curve.Point{}, errors.WithMessage(err, "keys: reading seed")
	}
	sk, err := FromSeed(suite, seed)
	if err != nil {
		return nil, curve.Point{}, err
	}
	return sk, sk.Public(), nil
}

// FromSeed derives a key deterministically: the seed runs through a
// domain-keyed blake3 XOF, widened past the order to keep the
// reduction bias negligible.
func FromSeed(suite *curve.Curve, seed []byte) (*SecretKey, error) {
	if len(seed) == 0 {
		return nil, ErrSeedLength
	}
	h := blake3.NewDeriveKey(deriveContext)
	_, _ = h.Write(seed)
	wide := make([]byte, (suite.Order.BitLen()+7)/8+16)
	_, _ = h.Digest().Read(wide)
	s := suite.ScalarFromBytesBE(wide)
	return FromScalar(suite, s), nil
}

// FromScalar wraps an existing scalar.
func FromScalar(suite *curve.Curve, s curve.Scalar) *SecretKey {
	return &SecretKey{suite: suite, scalar: s, raw: s.BytesLE()}
}

// FromBytes parses a 32-byte little-endian secret scalar.
func FromBytes(suite *curve.Curve, b []byte) (*SecretKey, error) {
	if len(b) != params.ScalarBytes {
		return nil, errors.New("keys: secret key must be 32 bytes")
	}
	return FromScalar(suite, suite.ScalarFromBytesLE(b)), nil
}

// Scalar returns the secret scalar for proving.
func (sk *SecretKey) Scalar() curve.Scalar { return sk.scalar }

// Public returns sk·G.
func (sk *SecretKey) Public() curve.Point {
	return sk.suite.ScalarBaseMul(sk.scalar)
}

// Bytes returns the canonical little-endian encoding.
func (sk *SecretKey) Bytes() []byte {
	out := make([]byte, len(sk.raw))
	copy(out, sk.raw)
	return out
}

// Zeroize clears the retained byte form and replaces the scalar with
// zero. The key is unusable afterwards.
func (sk *SecretKey) Zeroize() {
	for i := range sk.raw {
		sk.raw[i] = 0
	}
	sk.scalar = sk.suite.NewScalar()
}

// keyPairRecord is the storage form of a key pair.
type keyPairRecord struct {
	Suite  string `cbor:"1,keyasint"`
	Secret []byte `cbor:"2,keyasint"`
	Public []byte `cbor:"3,keyasint"`
}

// MarshalBinary encodes the key pair for a keystore.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(keyPairRecord{
		Suite:  sk.suite.Name,
		Secret: sk.Bytes(),
		Public: sk.suite.Encode(sk.Public()),
	})
}

// UnmarshalRecord decodes a stored key pair for the given suite.
func UnmarshalRecord(suite *curve.Curve, data []byte) (*SecretKey, error) {
	var rec keyPairRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, errors.WithMessage(err, "keys: decoding record")
	}
	if rec.Suite != suite.Name {
		return nil, errors.Errorf("keys: record is for suite %q", rec.Suite)
	}
	return FromBytes(suite, rec.Secret)
}
