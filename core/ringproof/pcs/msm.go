// Package pcs is the polynomial commitment layer of the ring proof:
// SRS handling, KZG commit/open/verify and the pluggable multi-scalar
// multiplication backends.
package pcs

import (
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	gfr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/pool"
)

// MSM computes Σ scalars[i]·points[i] in G1. Both implementations must
// agree bit for bit; the delegated one is simply faster.
type MSM interface {
	MultiScalarMulG1(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error)
}

var ErrMSMLength = errors.New("pcs: scalar and point slices differ in length")

// toGnarkFr converts a Montgomery-form scalar into the pairing
// library's representation.
func toGnarkFr(e *fr.Element) gfr.Element {
	var out gfr.Element
	b := e.BytesBE()
	out.SetBytes(b[:])
	return out
}

// PortableMSM is the in-tree windowed Pippenger MSM, sharded across
// cores.
type PortableMSM struct{}

const msmWindow = 4

func (PortableMSM) MultiScalarMulG1(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Affine{}, ErrMSMLength
	}
	var out bls12381.G1Affine
	if len(points) == 0 {
		return out, nil
	}

	workers := (len(points) + 255) / 256
	partials := make([]bls12381.G1Jac, workers)
	chunk := (len(points) + workers - 1) / workers
	err := pool.Parallelize(workers, func(start, end int) error {
		for w := start; w < end; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > len(points) {
				hi = len(points)
			}
			partials[w] = msmChunk(points[lo:hi], scalars[lo:hi])
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	acc := partials[0]
	for i := 1; i < len(partials); i++ {
		acc.AddAssign(&partials[i])
	}
	out.FromJacobian(&acc)
	return out, nil
}

// msmChunk runs a 4-bit bucketed Pippenger pass over one shard.
func msmChunk(points []bls12381.G1Affine, scalars []fr.Element) bls12381.G1Jac {
	digitsOf := make([][]byte, len(scalars))
	for i := range scalars {
		b := scalars[i].BytesLE()
		d := make([]byte, 2*len(b))
		for j, bb := range b {
			d[2*j] = bb & 0x0f
			d[2*j+1] = bb >> 4
		}
		digitsOf[i] = d
	}
	nDigits := 2 * fr.Bytes

	var acc bls12381.G1Jac
	for pos := nDigits - 1; pos >= 0; pos-- {
		for w := 0; w < msmWindow; w++ {
			acc.DoubleAssign()
		}
		var buckets [1 << msmWindow]bls12381.G1Jac
		used := [1 << msmWindow]bool{}
		for i := range points {
			d := digitsOf[i][pos]
			if d == 0 {
				continue
			}
			buckets[d].AddMixed(&points[i])
			used[d] = true
		}
		// running-sum bucket reduction
		var running, sum bls12381.G1Jac
		for b := (1 << msmWindow) - 1; b >= 1; b-- {
			if used[b] {
				running.AddAssign(&buckets[b])
			}
			sum.AddAssign(&running)
		}
		acc.AddAssign(&sum)
	}
	return acc
}

// DelegatedMSM hands the work to the pairing library's Pippenger.
type DelegatedMSM struct{}

func (DelegatedMSM) MultiScalarMulG1(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	if len(points) != len(scalars) {
		return bls12381.G1Affine{}, ErrMSMLength
	}
	gs := make([]gfr.Element, len(scalars))
	for i := range scalars {
		gs[i] = toGnarkFr(&scalars[i])
	}
	var out bls12381.G1Affine
	if _, err := out.MultiExp(points, gs, ecc.MultiExpConfig{}); err != nil {
		return bls12381.G1Affine{}, errors.WithMessage(err, "pcs: delegated msm")
	}
	return out, nil
}

var (
	g1GenOnce sync.Once
	g1Gen     bls12381.G1Affine
	g2Gen     bls12381.G2Affine
)

func generators() (bls12381.G1Affine, bls12381.G2Affine) {
	g1GenOnce.Do(func() {
		_, _, g1Gen, g2Gen = bls12381.Generators()
	})
	return g1Gen, g2Gen
}

// scalarMulG1 is a small helper over the library's variable-base
// multiplication.
func scalarMulG1(p *bls12381.G1Affine, k *big.Int) bls12381.G1Affine {
	var out bls12381.G1Affine
	out.ScalarMultiplication(p, k)
	return out
}
