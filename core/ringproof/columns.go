package ringproof

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
	"github.com/cipherworks/vrf-lib/core/ringproof/pcs"
	"github.com/cipherworks/vrf-lib/lib/params"
)

// column is one committed register: evaluations over the domain,
// coefficient form and KZG commitment.
type column struct {
	evals  []fr.Element
	coeffs polynomial.Poly
	commit bls12381.G1Affine
}

func buildColumn(p *Params, kzg *pcs.KZG, evals []fr.Element) (column, error) {
	padded := make([]fr.Element, p.Domain.Size)
	copy(padded, evals)
	coeffs := p.Domain.Interpolate(padded)
	c, err := kzg.Commit(coeffs)
	if err != nil {
		return column{}, err
	}
	return column{evals: padded, coeffs: coeffs, commit: c}, nil
}

// FixedColumns are the ring-dependent registers Px, Py and the
// selector s; their commitments are the ring root.
type FixedColumns struct {
	px, py, sel column

	// points is the full padded point vector the accumulator walks:
	// ring keys, padding, blinding-base powers, four zero rows.
	points []TEPoint
}

// Commitments returns (C_Px, C_Py, C_s).
func (f *FixedColumns) Commitments() (bls12381.G1Affine, bls12381.G1Affine, bls12381.G1Affine) {
	return f.px.commit, f.py.commit, f.sel.commit
}

// BuildFixedColumns pads the ring, appends the blinding-base powers
// and the structural zero rows, then interpolates and commits the
// coordinate and selector columns.
func BuildFixedColumns(p *Params, kzg *pcs.KZG, ring []TEPoint) (*FixedColumns, error) {
	if len(ring) > p.MaxRing {
		return nil, ErrDomainMismatch
	}
	n := p.Domain.Size

	points := make([]TEPoint, 0, n)
	points = append(points, ring...)
	for len(points) < p.MaxRing {
		points = append(points, PaddingPoint())
	}
	// Powers 2ⁱ·B line the trace rows up with the blinding bits.
	pow := BlindingBase()
	for len(points) < n-params.PaddingRows {
		points = append(points, pow)
		pow = teDouble(pow)
	}
	var zero TEPoint
	for len(points) < n {
		points = append(points, zero)
	}

	px := make([]fr.Element, n)
	py := make([]fr.Element, n)
	sel := make([]fr.Element, n)
	oneEl := fr.One()
	for i, pt := range points {
		px[i] = pt.X
		py[i] = pt.Y
		if i < p.MaxRing {
			sel[i] = oneEl
		}
	}

	out := &FixedColumns{points: points}
	var err error
	if out.px, err = buildColumn(p, kzg, px); err != nil {
		return nil, err
	}
	if out.py, err = buildColumn(p, kzg, py); err != nil {
		return nil, err
	}
	if out.sel, err = buildColumn(p, kzg, sel); err != nil {
		return nil, err
	}
	return out, nil
}

// witnessColumns are the prover-only registers.
type witnessColumns struct {
	b, accX, accY, accIP column

	// resultPlusSeed is the accumulator's pinned final value:
	// seed + pk + t·B.
	resultPlusSeed TEPoint
}

// buildWitnessColumns lays out the bit register (signer indicator
// followed by the blinding bits), walks the conditional-addition and
// inner-product accumulators, and commits everything.
func buildWitnessColumns(p *Params, kzg *pcs.KZG, fixed *FixedColumns, signer int, blinding fr.Element) (*witnessColumns, error) {
	if signer < 0 || signer >= p.MaxRing {
		return nil, ErrKeyNotInRing
	}
	n := p.Domain.Size

	bits := make([]byte, n-params.PaddingRows+1)
	bits[signer] = 1
	blindLE := blinding.BytesLE()
	for j := 0; j < params.TraceScalarBits; j++ {
		bits[p.MaxRing+j] = (blindLE[j/8] >> (uint(j) % 8)) & 1
	}

	bCol := make([]fr.Element, len(bits))
	oneEl := fr.One()
	for i, bit := range bits {
		if bit == 1 {
			bCol[i] = oneEl
		}
	}

	// acc[i+1] = acc[i] + b[i]·points[i], seeded outside the ring.
	last := p.lastIndex()
	accX := make([]fr.Element, last+1)
	accY := make([]fr.Element, last+1)
	accIP := make([]fr.Element, last+1)
	acc := SeedPoint()
	ip := fr.Element{}
	accX[0], accY[0] = acc.X, acc.Y
	for i := 1; i <= last; i++ {
		if bits[i-1] == 1 {
			acc = teAdd(acc, fixed.points[i-1])
			ip.Add(&ip, &fixed.sel.evals[i-1])
		}
		accX[i], accY[i] = acc.X, acc.Y
		accIP[i] = ip
	}

	out := &witnessColumns{resultPlusSeed: acc}
	var err error
	if out.b, err = buildColumn(p, kzg, bCol); err != nil {
		return nil, err
	}
	if out.accX, err = buildColumn(p, kzg, accX); err != nil {
		return nil, err
	}
	if out.accY, err = buildColumn(p, kzg, accY); err != nil {
		return nil, err
	}
	if out.accIP, err = buildColumn(p, kzg, accIP); err != nil {
		return nil, err
	}
	return out, nil
}
