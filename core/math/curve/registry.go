package curve

import "github.com/pkg/errors"

var ErrUnknownSuite = errors.New("curve: unknown suite")

var registry = map[string]func() *Curve{
	"bandersnatch":    Bandersnatch,
	"bandersnatch-sw": BandersnatchSW,
	"ed25519":         Ed25519,
	"curve25519":      Curve25519,
	"ed448":           Ed448,
	"curve448":        Curve448,
	"p256":            P256,
	"p384":            P384,
	"p521":            P521,
	"secp256k1":       Secp256k1,
	"jubjub":          JubJub,
	"baby-jubjub":     BabyJubJub,
}

// ByName resolves a suite handle from its canonical name.
func ByName(name string) (*Curve, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.WithMessage(ErrUnknownSuite, name)
	}
	return ctor(), nil
}

// Suites lists the registered suite names.
func Suites() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
