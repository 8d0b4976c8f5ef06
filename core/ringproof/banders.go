package ringproof

import (
	"sync"

	"github.com/cipherworks/vrf-lib/core/math/fr"
)

// TEPoint is a Bandersnatch point in affine coordinates over fr (the
// Bandersnatch base field equals the BLS12-381 scalar field, which is
// what lets the columns hold raw coordinates). The identity is (0, 1).
type TEPoint struct {
	X, Y fr.Element
}

var bandersInitOnce sync.Once

var (
	edwardsA fr.Element // -5
	edwardsD fr.Element

	// seedPoint anchors the accumulator; paddingPoint fills unused
	// ring slots and lies outside the honest-prover image.
	seedPoint    TEPoint
	paddingPoint TEPoint
	blindingBase TEPoint
)

func bandersInit() {
	bandersInitOnce.Do(func() {
		five := fr.NewElement(5)
		edwardsA.Neg(&five)
		edwardsD.SetString("0x6389c12633c267cbc66e3bf86be3b6d8cb66677177e54f92b369f2f5188d58e7")

		seedPoint.X.SetString("37805570861274048643170021838972902516980894313648523898085159469000338764576")
		seedPoint.Y.SetString("14738305321141000190236674389841754997202271418876976886494444739226156422510")

		paddingPoint.X.SetString("26287722405578650394504321825321286533153045350760430979437739593351290020913")
		paddingPoint.Y.SetString("19058981610000167534379068105702216971787064146691007947119244515951752366738")

		blindingBase.X.SetString("6150229251051246713677296363717454238956877613358614224171740096471278798312")
		blindingBase.Y.SetString("28442734166467795856797249030329035618871580593056783094884474814923353898473")
	})
}

// SeedPoint returns the accumulator seed.
func SeedPoint() TEPoint {
	bandersInit()
	return seedPoint
}

// PaddingPoint returns the nothing-up-my-sleeve slot filler.
func PaddingPoint() TEPoint {
	bandersInit()
	return paddingPoint
}

// BlindingBase returns the Pedersen base whose powers pad the key
// columns.
func BlindingBase() TEPoint {
	bandersInit()
	return blindingBase
}

func teIdentity() TEPoint {
	var p TEPoint
	p.Y.SetOne()
	return p
}

// teAdd is the affine twisted Edwards addition over fr.
func teAdd(p, q TEPoint) TEPoint {
	bandersInit()
	var x1y2, x2y1, y1y2, x1x2, dxy, num, den, t fr.Element
	x1y2.Mul(&p.X, &q.Y)
	x2y1.Mul(&q.X, &p.Y)
	y1y2.Mul(&p.Y, &q.Y)
	x1x2.Mul(&p.X, &q.X)
	dxy.Mul(&edwardsD, &x1x2)
	dxy.Mul(&dxy, &y1y2)

	oneEl := fr.One()
	var out TEPoint

	num.Add(&x1y2, &x2y1)
	den.Add(&oneEl, &dxy)
	den.Inverse(&den)
	out.X.Mul(&num, &den)

	t.Mul(&edwardsA, &x1x2)
	num.Sub(&y1y2, &t)
	den.Sub(&oneEl, &dxy)
	den.Inverse(&den)
	out.Y.Mul(&num, &den)
	return out
}

// teDouble doubles a point.
func teDouble(p TEPoint) TEPoint {
	return teAdd(p, p)
}

// teScalarMulBits multiplies by a little-endian bit slice.
func teScalarMulBits(bits []byte, p TEPoint) TEPoint {
	acc := teIdentity()
	add := p
	for _, b := range bits {
		if b == 1 {
			acc = teAdd(acc, add)
		}
		add = teDouble(add)
	}
	return acc
}

// Equal reports coordinate equality.
func (p TEPoint) Equal(q TEPoint) bool {
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}
