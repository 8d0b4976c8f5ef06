package pcs

import (
	"encoding/binary"
	"math/big"
	"os"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
)

var (
	ErrSRSFormat = errors.New("pcs: malformed SRS file")
	ErrSRSDegree = errors.New("pcs: polynomial degree exceeds the SRS")
)

const (
	g1UncompressedSize = 96
	g2UncompressedSize = 192
)

// SRS holds the powers-of-τ reference string: {τⁱ·G1} and (G2, τ·G2).
// It is loaded once and shared read-only.
type SRS struct {
	G1 []bls12381.G1Affine
	G2 [2]bls12381.G2Affine
}

// MaxDegree is the largest committable polynomial degree.
func (s *SRS) MaxDegree() int { return len(s.G1) - 1 }

// LoadSRS reads the uncompressed powers-of-tau format: a little-endian
// u64 count of G1 points, that many 96-byte G1 elements, then two
// 192-byte G2 elements (an optional u64 G2 count is tolerated).
func LoadSRS(path string) (*SRS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "pcs: reading SRS file")
	}
	return ParseSRS(data)
}

// ParseSRS decodes the byte form of the SRS file.
func ParseSRS(data []byte) (*SRS, error) {
	if len(data) < 8 {
		return nil, ErrSRSFormat
	}
	g1Count := binary.LittleEndian.Uint64(data[:8])
	offset := 8
	need := offset + int(g1Count)*g1UncompressedSize
	if g1Count == 0 || len(data) < need {
		return nil, ErrSRSFormat
	}

	srs := &SRS{G1: make([]bls12381.G1Affine, g1Count)}
	for i := range srs.G1 {
		if err := decodeG1Uncompressed(&srs.G1[i], data[offset:offset+g1UncompressedSize]); err != nil {
			return nil, err
		}
		offset += g1UncompressedSize
	}

	// Some writers put a count before the G2 block as well.
	if len(data) >= offset+8+2*g2UncompressedSize {
		if binary.LittleEndian.Uint64(data[offset:offset+8]) == 2 {
			offset += 8
		}
	}
	if len(data) < offset+2*g2UncompressedSize {
		return nil, ErrSRSFormat
	}
	for i := 0; i < 2; i++ {
		if err := decodeG2Uncompressed(&srs.G2[i], data[offset:offset+g2UncompressedSize]); err != nil {
			return nil, err
		}
		offset += g2UncompressedSize
	}
	return srs, nil
}

func decodeG1Uncompressed(p *bls12381.G1Affine, b []byte) error {
	if err := p.X.SetBytesCanonical(b[:48]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if err := p.Y.SetBytesCanonical(b[48:96]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if !p.IsOnCurve() {
		return ErrSRSFormat
	}
	return nil
}

func decodeG2Uncompressed(p *bls12381.G2Affine, b []byte) error {
	// x = x0 + x1·u with x1 first on the wire.
	if err := p.X.A1.SetBytesCanonical(b[0:48]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if err := p.X.A0.SetBytesCanonical(b[48:96]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if err := p.Y.A1.SetBytesCanonical(b[96:144]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if err := p.Y.A0.SetBytesCanonical(b[144:192]); err != nil {
		return errors.WithMessage(ErrSRSFormat, err.Error())
	}
	if !p.IsOnCurve() {
		return ErrSRSFormat
	}
	return nil
}

// GenerateSRS derives an SRS from an explicit τ. Only tests and local
// tooling may use it; a production SRS comes from a ceremony file.
func GenerateSRS(tau *big.Int, n int) *SRS {
	g1, g2 := generators()
	srs := &SRS{G1: make([]bls12381.G1Affine, n)}
	acc := new(big.Int).SetInt64(1)
	order := bls12381.ID.ScalarField()
	for i := 0; i < n; i++ {
		srs.G1[i] = scalarMulG1(&g1, acc)
		acc.Mul(acc, tau)
		acc.Mod(acc, order)
	}
	srs.G2[0] = g2
	srs.G2[1].ScalarMultiplication(&g2, new(big.Int).Mod(tau, order))
	return srs
}
