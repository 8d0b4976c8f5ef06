// Package ringproof implements the SNARK side of the ring VRF: column
// polynomials over a power-of-two domain, the seven-gate constraint
// system tying a conditional-addition trace to the committed ring, the
// quotient/linearization split and the KZG-backed prover and verifier.
package ringproof

import (
	"github.com/pkg/errors"

	"github.com/cipherworks/vrf-lib/core/math/fr"
	"github.com/cipherworks/vrf-lib/core/math/polynomial"
	"github.com/cipherworks/vrf-lib/lib/params"
)

var (
	ErrDomainMismatch = errors.New("ringproof: ring too large for the domain or SRS")
	ErrKeyNotInRing   = errors.New("ringproof: signer key not present in the ring")
	ErrInternal       = errors.New("ringproof: internal invariant violated")
	ErrInvalidProof   = errors.New("ringproof: proof rejected")
	ErrProofEncoding  = errors.New("ringproof: malformed proof bytes")
)

// radixBlowup is the ratio between the constraint-evaluation domain
// and the column domain; the highest-degree gate is a product of four
// columns.
const radixBlowup = 4

// Params fixes the two evaluation domains and the ring capacity.
type Params struct {
	Domain *polynomial.Domain // size N
	Radix  *polynomial.Domain // size 4N

	// MaxRing rows hold keys; the next TraceScalarBits rows hold the
	// blinding trace and the last PaddingRows rows are structural.
	MaxRing int
}

// NewParams builds parameters for the given column domain size.
func NewParams(domainSize int) (*Params, error) {
	if domainSize < 16 || domainSize > params.MaxDomainSize {
		return nil, ErrDomainMismatch
	}
	maxRing := domainSize - params.PaddingRows - params.TraceScalarBits
	if maxRing < 1 {
		return nil, ErrDomainMismatch
	}
	d, err := polynomial.NewDomain(domainSize)
	if err != nil {
		return nil, err
	}
	r, err := polynomial.NewDomain(domainSize * radixBlowup)
	if err != nil {
		return nil, err
	}
	return &Params{Domain: d, Radix: r, MaxRing: maxRing}, nil
}

// ParamsForRingSize picks the smallest supported domain that fits the
// ring.
func ParamsForRingSize(ringSize int) (*Params, error) {
	if ringSize < 1 {
		return nil, ErrDomainMismatch
	}
	n := params.DefaultDomainSize
	for n <= params.MaxDomainSize {
		if ringSize <= n-params.PaddingRows-params.TraceScalarBits {
			return NewParams(n)
		}
		n *= 2
	}
	return nil, ErrDomainMismatch
}

// lastIndex is the accumulator's final constrained row.
func (p *Params) lastIndex() int {
	return p.Domain.Size - params.PaddingRows
}

// notLastRoot returns ω^(N-4), the root the recurrence gates are
// switched off at.
func (p *Params) notLastRoot() fr.Element {
	return p.Domain.Elements[p.lastIndex()]
}

// vanishingTriple returns ω^(N-1), ω^(N-2), ω^(N-3): the structural
// rows every aggregated constraint is forced to vanish on.
func (p *Params) vanishingTriple() [3]fr.Element {
	n := p.Domain.Size
	return [3]fr.Element{
		p.Domain.Elements[n-1],
		p.Domain.Elements[n-2],
		p.Domain.Elements[n-3],
	}
}
