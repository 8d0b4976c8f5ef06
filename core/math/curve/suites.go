package curve

import (
	"math/big"
	"sync"

	"github.com/cipherworks/vrf-lib/core/math/ff"
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return v
}

func (c *Curve) finish(p *big.Int) *Curve {
	c.Fp = ff.NewField(p)
	c.orderF = ff.NewField(c.Order)
	return c
}

var (
	bandersnatchOnce sync.Once
	bandersnatchCrv  *Curve
)

// Bandersnatch returns the primary suite: a twisted Edwards curve over
// the BLS12-381 scalar field, hashed with SHA-512 Elligator 2.
func Bandersnatch() *Curve {
	bandersnatchOnce.Do(func() {
		p := mustBig("0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")
		c := &Curve{
			Name:     "bandersnatch",
			Order:    mustBig("0x1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1"),
			Cofactor: 4,
			Shape:    TwistedEdwards,

			SuiteString:  []byte("Bandersnatch_SHA-512_ELL2"),
			DST:          []byte("ECVRF_Bandersnatch_XMD:SHA-512_ELL2_RO_Bandersnatch_SHA-512_ELL2"),
			Hash:         HashSHA512,
			L:            48,
			Z:            big.NewInt(5),
			Variant:      MapElligator2,
			ChallengeLen: 32,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.EdA = f.FromBig(big.NewInt(-5))
		c.EdD = f.FromBig(mustBig("0x6389c12633c267cbc66e3bf86be3b6d8cb66677177e54f92b369f2f5188d58e7"))
		c.Gx = f.FromBig(mustBig("18886178867200960497001835917649091219057080094937609519140440539760939937304"))
		c.Gy = f.FromBig(mustBig("19188667384257783945677642223292697773471335439753913231509108946878080696678"))
		c.BlindX = f.FromBig(mustBig("6150229251051246713677296363717454238956877613358614224171740096471278798312"))
		c.BlindY = f.FromBig(mustBig("28442734166467795856797249030329035618871580593056783094884474814923353898473"))
		bandersnatchCrv = c
	})
	return bandersnatchCrv
}

var (
	bandersnatchSWOnce sync.Once
	bandersnatchSWCrv  *Curve
)

// BandersnatchSW returns the short Weierstrass rendering of
// Bandersnatch with the try-and-increment suite.
func BandersnatchSW() *Curve {
	bandersnatchSWOnce.Do(func() {
		p := mustBig("52435875175126190479447740508185965837690552500527637822603658699938581184513")
		c := &Curve{
			Name:     "bandersnatch-sw",
			Order:    mustBig("0x1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1"),
			Cofactor: 4,
			Shape:    ShortWeierstrass,

			SuiteString:  []byte("Bandersnatch_SW_SHA-512_TAI"),
			DST:          []byte("ECVRF_Bandersnatch_XMD:SHA-512_TAI_RO_Bandersnatch_SW_SHA-512_TAI"),
			Hash:         HashSHA512,
			L:            64,
			Z:            big.NewInt(-11),
			Variant:      MapTAI,
			ChallengeLen: 32,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.A = f.FromBig(mustBig("10773120815616481058602537765553212789256758185246796157495669123169359657269"))
		c.B = f.FromBig(mustBig("29569587568322301171008055308580903175558631321415017492731745847794083609535"))
		c.Gx = f.FromBig(mustBig("30900340493481298850216505686589334086208278925799850409469406976849338430199"))
		c.Gy = f.FromBig(mustBig("12663882780877899054958035777720958383845500985908634476792678820121468453298"))
		c.BlindX = f.FromBig(mustBig("43295201540795761503961631609120105078472641399392666499799525033203881929458"))
		c.BlindY = f.FromBig(mustBig("47295792057744344182638225978402781315571475472700428341116949953237551542374"))
		bandersnatchSWCrv = c
	})
	return bandersnatchSWCrv
}

var (
	ed25519Once sync.Once
	ed25519Crv  *Curve
)

// Ed25519 returns the legacy try-and-increment Ed25519 suite.
func Ed25519() *Curve {
	ed25519Once.Do(func() {
		p := mustBig("0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")
		c := &Curve{
			Name:     "ed25519",
			Order:    mustBig("0x1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
			Cofactor: 8,
			Shape:    TwistedEdwards,

			SuiteString:  []byte("Ed25519_SHA-512_TAI"),
			DST:          []byte{},
			Hash:         HashSHA512,
			L:            48,
			Z:            big.NewInt(1),
			Variant:      MapTAI,
			ChallengeLen: 16,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.EdA = f.FromBig(big.NewInt(-1))
		c.EdD = f.FromBig(mustBig("0x52036cee2b6ffe738cc740797779e89800700a4d4141d8ab75eb4dca135978a3"))
		c.Gx = f.FromBig(mustBig("0x216936d3cd6e53fec0a4e231fdd6dc5c692cc7609525a7b2c9562d608f25d51a"))
		c.Gy = f.FromBig(mustBig("0x6666666666666666666666666666666666666666666666666666666666666658"))
		c.BlindX = c.Gx
		c.BlindY = c.Gy
		ed25519Crv = c
	})
	return ed25519Crv
}

var (
	curve25519Once sync.Once
	curve25519Crv  *Curve
)

// Curve25519 returns the Montgomery-form Elligator 2 suite.
func Curve25519() *Curve {
	curve25519Once.Do(func() {
		p := mustBig("0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")
		c := &Curve{
			Name:     "curve25519",
			Order:    mustBig("0x1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
			Cofactor: 8,
			Shape:    Montgomery,

			SuiteString:  []byte("curve25519_XMD:SHA-512_ELL2_RO_"),
			DST:          []byte("QUUX-V01-CS02-with-curve25519_XMD:SHA-512_ELL2_RO_"),
			Hash:         HashSHA512,
			L:            48,
			Z:            big.NewInt(2),
			Variant:      MapElligator2,
			ChallengeLen: 16,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.MA = f.FromBig(big.NewInt(486662))
		c.MB = f.One()
		c.Gx = f.FromBig(big.NewInt(9))
		c.Gy = f.FromBig(mustBig("14781619447589544791020593568409986887264606134616475288964881837755586237401"))
		c.BlindX = c.Gx
		c.BlindY = c.Gy
		curve25519Crv = c
	})
	return curve25519Crv
}

var (
	ed448Once sync.Once
	ed448Crv  *Curve
)

// Ed448 returns the Edwards form of Curve448 with SHAKE-256 hashing.
func Ed448() *Curve {
	ed448Once.Do(func() {
		p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 448), new(big.Int).Lsh(big.NewInt(1), 224))
		p.Sub(p, big.NewInt(1))
		order := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 446), mustBig("0x8335dc163bb124b65129c96fde933d8d723a70aadc873d6d54a7bb0d"))
		c := &Curve{
			Name:     "ed448",
			Order:    order,
			Cofactor: 4,
			Shape:    TwistedEdwards,

			SuiteString:  []byte("Ed448_SHAKE-256_ELL2"),
			DST:          []byte("QUUX-V01-CS02-with-edwards448_XOF:SHAKE256_ELL2_RO_"),
			Hash:         HashSHAKE256,
			L:            84,
			Z:            big.NewInt(-1),
			Variant:      MapElligator2,
			ChallengeLen: 28,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.EdA = f.One()
		c.EdD = f.FromBig(big.NewInt(-39081))
		c.Gx = f.FromBig(mustBig("224580040295924300187604334099896036246789641632564134246125461686950415467406032909029192869357953282578032075146446173674602635247710"))
		c.Gy = f.FromBig(mustBig("298819210078481492676017930443930673437544040154080242095928241372331506189835876003536878655418784733982303233503462500531545062832660"))
		c.BlindX = c.Gx
		c.BlindY = c.Gy
		ed448Crv = c
	})
	return ed448Crv
}

var (
	curve448Once sync.Once
	curve448Crv  *Curve
)

// Curve448 returns the Montgomery form of Ed448.
func Curve448() *Curve {
	curve448Once.Do(func() {
		p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 448), new(big.Int).Lsh(big.NewInt(1), 224))
		p.Sub(p, big.NewInt(1))
		order := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 446), mustBig("0x8335dc163bb124b65129c96fde933d8d723a70aadc873d6d54a7bb0d"))
		c := &Curve{
			Name:     "curve448",
			Order:    order,
			Cofactor: 4,
			Shape:    Montgomery,

			SuiteString:  []byte("curve448_XOF:SHAKE-256_ELL2_RO_"),
			DST:          []byte("QUUX-V01-CS02-with-curve448_XOF:SHAKE256_ELL2_RO_"),
			Hash:         HashSHAKE256,
			L:            84,
			Z:            big.NewInt(-1),
			Variant:      MapElligator2,
			ChallengeLen: 28,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.MA = f.FromBig(big.NewInt(156326))
		c.MB = f.One()
		c.Gx = f.FromBig(big.NewInt(5))
		c.Gy = f.FromBig(mustBig("355293926785568175264127502063783334808976399387714271831880898435169088786967410002932673765864550910142774147268105838985595290606362"))
		c.BlindX = c.Gx
		c.BlindY = c.Gy
		curve448Crv = c
	})
	return curve448Crv
}

var (
	p256Once sync.Once
	p256Crv  *Curve
)

// P256 returns the NIST P-256 SSWU suite.
func P256() *Curve {
	p256Once.Do(func() {
		p := mustBig("0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff")
		c := &Curve{
			Name:     "p256",
			Order:    mustBig("0xffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
			Cofactor: 1,
			Shape:    ShortWeierstrass,

			SuiteString:  []byte("P256_XMD:SHA-256_SSWU_RO_"),
			DST:          []byte("P256_XMD:SHA-256_SSWU_RO_"),
			Hash:         HashSHA256,
			L:            48,
			Z:            big.NewInt(-10),
			Variant:      MapSSWU,
			ChallengeLen: 16,
		}
		c.finish(p)
		f := c.Fp
		c.A = f.FromBig(big.NewInt(-3))
		c.B = f.FromBig(mustBig("0x5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"))
		c.Gx = f.FromBig(mustBig("0x6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"))
		c.Gy = f.FromBig(mustBig("0x4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"))
		p256Crv = c
	})
	return p256Crv
}

var (
	p384Once sync.Once
	p384Crv  *Curve
)

// P384 returns the NIST P-384 SSWU suite.
func P384() *Curve {
	p384Once.Do(func() {
		p := mustBig("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff")
		c := &Curve{
			Name:     "p384",
			Order:    mustBig("0xffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"),
			Cofactor: 1,
			Shape:    ShortWeierstrass,

			SuiteString:  []byte("P384_XMD:SHA-384_SSWU_RO_"),
			DST:          []byte("QUUX-V01-CS02-with-P384_XMD:SHA-384_SSWU_RO_"),
			Hash:         HashSHA384,
			L:            72,
			Z:            big.NewInt(-12),
			Variant:      MapSSWU,
			ChallengeLen: 24,
		}
		c.finish(p)
		f := c.Fp
		c.A = f.FromBig(big.NewInt(-3))
		c.B = f.FromBig(mustBig("0xb3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef"))
		c.Gx = f.FromBig(mustBig("0xaa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7"))
		c.Gy = f.FromBig(mustBig("0x3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f"))
		p384Crv = c
	})
	return p384Crv
}

var (
	p521Once sync.Once
	p521Crv  *Curve
)

// P521 returns the NIST P-521 SSWU suite.
func P521() *Curve {
	p521Once.Do(func() {
		p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 521), big.NewInt(1))
		c := &Curve{
			Name:     "p521",
			Order:    mustBig("0x01fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409"),
			Cofactor: 1,
			Shape:    ShortWeierstrass,

			SuiteString:  []byte("P521_XMD:SHA-512_SSWU_RO_"),
			DST:          []byte("QUUX-V01-CS02-with-P521_XMD:SHA-512_SSWU_RO_"),
			Hash:         HashSHA512,
			L:            98,
			Z:            big.NewInt(-4),
			Variant:      MapSSWU,
			ChallengeLen: 32,
		}
		c.finish(p)
		f := c.Fp
		c.A = f.FromBig(big.NewInt(-3))
		c.B = f.FromBig(mustBig("0x0051953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00"))
		c.Gx = f.FromBig(mustBig("0x00c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66"))
		c.Gy = f.FromBig(mustBig("0x011839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650"))
		p521Crv = c
	})
	return p521Crv
}

var (
	secp256k1Once sync.Once
	secp256k1Crv  *Curve
)

// Secp256k1 returns the secp256k1 SSWU suite; the map runs on the
// 3-isogenous curve E' and applies the rational isogeny at the end.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		p := mustBig("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
		c := &Curve{
			Name:     "secp256k1",
			Order:    mustBig("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
			Cofactor: 1,
			Shape:    ShortWeierstrass,

			SuiteString:  []byte("secp256k1_XMD:SHA-256_SSWU_RO_"),
			DST:          []byte("QUUX-V01-CS02-with-secp256k1_XMD:SHA-256_SSWU_RO_"),
			Hash:         HashSHA256,
			L:            48,
			Z:            big.NewInt(-11),
			Variant:      MapSSWU,
			ChallengeLen: 16,
		}
		c.finish(p)
		f := c.Fp
		c.A = f.Zero()
		c.B = f.FromBig(big.NewInt(7))
		c.Gx = f.FromBig(mustBig("0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
		c.Gy = f.FromBig(mustBig("0x483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))

		// E': y² = x³ + A'x + B', 3-isogenous to secp256k1 (RFC 9380 §8.7).
		c.isoA = f.FromBig(mustBig("0x3f8731abdd661adca08a5558f0f5d272e953d363cb6f0e5d405447c01a444533"))
		c.isoB = f.FromBig(big.NewInt(1771))
		c.isoCoeffs = &IsogenyMap{
			XNum: []ff.Element{
				f.FromBig(mustBig("0x8e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38daaaaa8c7")),
				f.FromBig(mustBig("0x07d3d4c80bc321d5b9f315cea7fd44c5d595d2fc0bf63b92dfff1044f17c6581")),
				f.FromBig(mustBig("0x534c328d23f234e6e2a413deca25caece4506144037c40314ecbd0b53d9dd262")),
				f.FromBig(mustBig("0x8e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38e38daaaaa88c")),
			},
			XDen: []ff.Element{
				f.FromBig(mustBig("0xd35771193d94918a9ca34ccbb7b640dd86cd409542f8487d9fe6b745781eb49b")),
				f.FromBig(mustBig("0xedadc6f64383dc1df7c4b2d51b54225406d36b641f5e41bbc52a56612a8c6d14")),
				f.One(),
			},
			YNum: []ff.Element{
				f.FromBig(mustBig("0x4bda12f684bda12f684bda12f684bda12f684bda12f684bda12f684b8e38e23c")),
				f.FromBig(mustBig("0xc75e0c32d5cb7c0fa9d0a54b12a0a6d5647ab046d686da6fdffc90fc201d71a3")),
				f.FromBig(mustBig("0x29a6194691f91a73715209ef6512e576722830a201be2018a765e85a9ecee931")),
				f.FromBig(mustBig("0x2f684bda12f684bda12f684bda12f684bda12f684bda12f684bda12f38e38d84")),
			},
			YDen: []ff.Element{
				f.FromBig(mustBig("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffff93b")),
				f.FromBig(mustBig("0x7a06534bb8bdb49fd5e9e6632722c2989467c1bfc8e8d978dfb425d2685c2573")),
				f.FromBig(mustBig("0x6484aa716545ca2cf3a70c3fa8fe337e0a3d21162f0d6299a7bf8192bfd2a76f")),
				f.One(),
			},
		}
		secp256k1Crv = c
	})
	return secp256k1Crv
}

var (
	jubjubOnce sync.Once
	jubjubCrv  *Curve
)

// JubJub returns the JubJub try-and-increment suite over the BLS12-381
// scalar field.
func JubJub() *Curve {
	jubjubOnce.Do(func() {
		p := mustBig("0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")
		c := &Curve{
			Name:     "jubjub",
			Order:    mustBig("0x0e7db4ea6533afa906673b0101343b00a6682093ccc81082d0970e5ed6f72cb7"),
			Cofactor: 8,
			Shape:    TwistedEdwards,

			SuiteString:  []byte("JubJub_SHA-512_TAI"),
			DST:          []byte{},
			Hash:         HashSHA512,
			L:            48,
			Z:            big.NewInt(5),
			Variant:      MapTAI,
			ChallengeLen: 32,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.EdA = f.FromBig(big.NewInt(-1))
		c.EdD = f.FromBig(mustBig("19257038036680949359750312669786877991949435402254120286184196891950884077233"))
		c.Gx = f.FromBig(mustBig("8076246640662884909881801758704306714034609987455869804520522091855516602923"))
		c.Gy = f.FromBig(mustBig("13262374693698910701929044844600465831413122818447359594527400194675274060458"))
		c.BlindX = f.FromBig(mustBig("42257337814662035284373945156525735092765968053982822992704750832078779438788"))
		c.BlindY = f.FromBig(mustBig("47476395315228831116309413527962830333178159651930104661512857647213254194102"))
		jubjubCrv = c
	})
	return jubjubCrv
}

var (
	babyJubJubOnce sync.Once
	babyJubJubCrv  *Curve
)

// BabyJubJub returns the BabyJubJub try-and-increment suite over the
// BN254 scalar field.
func BabyJubJub() *Curve {
	babyJubJubOnce.Do(func() {
		p := mustBig("21888242871839275222246405745257275088548364400416034343698204186575808495617")
		c := &Curve{
			Name:     "baby-jubjub",
			Order:    mustBig("2736030358979909402780800718157159386076813972158567259200215660948447373041"),
			Cofactor: 8,
			Shape:    TwistedEdwards,

			SuiteString:  []byte("Baby-JubJub_SHA-512_TAI"),
			DST:          []byte{},
			Hash:         HashSHA512,
			L:            32,
			Z:            big.NewInt(5),
			Variant:      MapTAI,
			ChallengeLen: 32,
			HasBlinding:  true,
		}
		c.finish(p)
		f := c.Fp
		c.EdA = f.One()
		c.EdD = f.FromBig(mustBig("9706598848417545097372247223557719406784115219466060233080913168975159366771"))
		c.Gx = f.FromBig(mustBig("19698561148652590122159747500897617769866003486955115824547446575314762165298"))
		c.Gy = f.FromBig(mustBig("19298250018296453272277890825869354524455968081175474282777126169995084727839"))
		c.BlindX = f.FromBig(mustBig("8170247200255741810297410022472365370979789984587637609570347196251706043122"))
		c.BlindY = f.FromBig(mustBig("16313972569917201570489077828713531620741538540099917729994937953803219324220"))
		babyJubJubCrv = c
	})
	return babyJubJubCrv
}
