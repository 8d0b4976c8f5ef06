// Package vrf carries the pieces shared by every VRF flavour: input
// point derivation, deterministic nonces, challenge generation and the
// proof-to-hash output step.
package vrf

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/cipherworks/vrf-lib/core/h2c"
	"github.com/cipherworks/vrf-lib/core/math/curve"
)

var (
	ErrInvalidEncoding = errors.New("vrf: malformed encoding")
	ErrInvalidProof    = errors.New("vrf: proof verification failed")
)

const (
	challengeSeparatorFront = 0x02
	challengeSeparatorBack  = 0x00
	outputSeparatorFront    = 0x03
	outputSeparatorBack     = 0x00
)

// suiteHash applies the suite's hash function. The SHAKE suites read a
// 64-byte prefix of the output stream.
func suiteHash(c *curve.Curve, data []byte) []byte {
	switch c.Hash {
	case curve.HashSHA256:
		d := sha256.Sum256(data)
		return d[:]
	case curve.HashSHA384:
		d := sha512.Sum384(data)
		return d[:]
	case curve.HashSHAKE256:
		out := make([]byte, 64)
		sh := sha3.NewShake256()
		sh.Write(data)
		sh.Read(out)
		return out
	default:
		d := sha512.Sum512(data)
		return d[:]
	}
}

// Input maps (salt, alpha) to a point of the prime-order subgroup with
// the suite's encode-to-curve.
func Input(c *curve.Curve, alpha, salt []byte) (curve.Point, error) {
	return h2c.EncodeToCurve(c, alpha, salt)
}

// Output is gamma = sk·H.
func Output(c *curve.Curve, sk curve.Scalar, input curve.Point) curve.Point {
	return c.ScalarMul(input, sk)
}

// GenerateNonce derives the deterministic nonce of RFC 9381 §5.4.2.2:
// the second half of the hashed secret, concatenated with the input
// point, hashed and reduced.
func GenerateNonce(c *curve.Curve, sk curve.Scalar, input curve.Point) curve.Scalar {
	skHash := suiteHash(c, sk.BytesLE())
	data := append(skHash[len(skHash)/2:], c.Encode(input)...)
	nonceHash := suiteHash(c, data)
	return c.ScalarFromBytesLE(nonceHash)
}

// Challenge hashes the suite tag, the transcript points and the
// additional data, truncating to the suite's challenge length.
func Challenge(c *curve.Curve, points []curve.Point, ad []byte) curve.Scalar {
	buf := append([]byte{}, c.SuiteString...)
	buf = append(buf, challengeSeparatorFront)
	for _, p := range points {
		buf = append(buf, c.Encode(p)...)
	}
	buf = append(buf, ad...)
	buf = append(buf, challengeSeparatorBack)
	digest := suiteHash(c, buf)
	return c.ScalarFromBytesBE(digest[:c.ChallengeLen])
}

// ProofToHash turns the output point into the canonical VRF
// randomness beta.
func ProofToHash(c *curve.Curve, gamma curve.Point) []byte {
	buf := append([]byte{}, c.SuiteString...)
	buf = append(buf, outputSeparatorFront)
	buf = append(buf, c.Encode(gamma)...)
	buf = append(buf, outputSeparatorBack)
	return suiteHash(c, buf)
}
