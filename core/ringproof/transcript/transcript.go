// Package transcript is the Fiat–Shamir transcript of the ring proof:
// a SHAKE-128 sponge with length-delimited framing compatible with
// ark-transcript. Reading a challenge snapshots the state, so the
// transcript keeps absorbing afterwards.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/cipherworks/vrf-lib/core/math/fr"
)

// Transcript is an extendable-output Fiat–Shamir state.
type Transcript struct {
	shake  sha3.ShakeHash
	length int
	open   bool
}

// New seeds a transcript with the protocol label.
func New(initial []byte) *Transcript {
	t := &Transcript{shake: sha3.NewShake128()}
	t.Label(initial)
	return t
}

// separate closes the current write run with a big-endian length
// footer.
func (t *Transcript) separate() {
	if t.open {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(t.length))
		t.shake.Write(buf[:])
	}
	t.open = false
	t.length = 0
}

func (t *Transcript) write(data []byte) {
	t.open = true
	t.shake.Write(data)
	t.length += len(data)
}

// Label absorbs a domain-separation label.
func (t *Transcript) Label(lbl []byte) {
	t.separate()
	t.write(lbl)
	t.separate()
}

// Append absorbs a framed byte string.
func (t *Transcript) Append(data []byte) {
	t.separate()
	t.write(data)
	t.separate()
}

// Add absorbs data under a label.
func (t *Transcript) Add(label, data []byte) {
	t.Label(label)
	t.Append(data)
}

// AppendScalar absorbs a field element in 32-byte little-endian form.
func (t *Transcript) AppendScalar(label []byte, e *fr.Element) {
	b := e.BytesLE()
	t.Add(label, b[:])
}

// readReduce squeezes ⌈(bits+128)/8⌉ bytes from a state snapshot and
// reduces little-endian mod the field order.
func (t *Transcript) readReduce() fr.Element {
	const n = 48 // (255 + 128 + 7) / 8
	clone := t.shake.Clone()
	buf := make([]byte, n)
	clone.Read(buf)
	// interpret as little-endian
	be := make([]byte, n)
	for i := range buf {
		be[n-1-i] = buf[i]
	}
	var out fr.Element
	out.SetBigInt(new(big.Int).SetBytes(be))
	return out
}

// Challenge derives one field element under the given label.
func (t *Transcript) Challenge(label []byte) fr.Element {
	t.Label(label)
	t.write([]byte("challenge"))
	out := t.readReduce()
	t.separate()
	return out
}

// Challenges derives n field elements under one label.
func (t *Transcript) Challenges(label []byte, n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i] = t.Challenge(label)
	}
	return out
}
