package h2c

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// The BLS12-381 suites ride on the pairing library, which carries the
// RFC 9380 SSWU-with-isogeny pipeline for both groups (11-isogeny for
// G1, 3-isogeny for G2, including the Fp² arithmetic).

// HashToCurveG1 is BLS12381G1_XMD:SHA-256_SSWU_RO_ under the given DST.
func HashToCurveG1(msg, dst []byte) (bls12381.G1Affine, error) {
	return bls12381.HashToG1(msg, dst)
}

// EncodeToCurveG1 is the NU variant for G1.
func EncodeToCurveG1(msg, dst []byte) (bls12381.G1Affine, error) {
	return bls12381.EncodeToG1(msg, dst)
}

// HashToCurveG2 is BLS12381G2_XMD:SHA-256_SSWU_RO_ under the given DST.
func HashToCurveG2(msg, dst []byte) (bls12381.G2Affine, error) {
	return bls12381.HashToG2(msg, dst)
}

// EncodeToCurveG2 is the NU variant for G2.
func EncodeToCurveG2(msg, dst []byte) (bls12381.G2Affine, error) {
	return bls12381.EncodeToG2(msg, dst)
}
