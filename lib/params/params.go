// Package params holds the size constants shared across the library.
package params

const (
	// SecParam is the bit strength targeted by every suite.
	SecParam = 128

	SecBytes = SecParam / 8

	// ScalarBytes is the wire size of a serialized scalar.
	ScalarBytes = 32

	// CompressedPointBytes is the wire size of a compressed Twisted
	// Edwards point (Bandersnatch, Ed25519, JubJub, ...).
	CompressedPointBytes = 32

	// G1Bytes is the compressed size of a BLS12-381 G1 element.
	G1Bytes = 48

	// IETFProofBytes is gamma ‖ c ‖ s on Bandersnatch.
	IETFProofBytes = 96

	// PedersenProofBytes is gamma ‖ pkBlind ‖ R ‖ Ok ‖ s ‖ sb.
	PedersenProofBytes = 192

	// RingArgumentBytes is the SNARK part of a ring VRF proof.
	RingArgumentBytes = 592

	// RingProofBytes is a full ring VRF proof.
	RingProofBytes = PedersenProofBytes + RingArgumentBytes

	// RingRootBytes is the fixed ring commitment size.
	RingRootBytes = 3 * G1Bytes

	// DefaultDomainSize is the ring-proof evaluation domain used for
	// small rings; MaxDomainSize bounds what the SRS must cover.
	DefaultDomainSize = 512
	MaxDomainSize     = 4096

	// PaddingRows is the reserved suffix of the ring-proof domain.
	PaddingRows = 4

	// TraceScalarBits is the bit length of the Bandersnatch subgroup
	// order; the blinding trace occupies this many rows.
	TraceScalarBits = 253
)
