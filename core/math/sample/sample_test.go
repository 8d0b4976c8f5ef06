package sample

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func TestScalarFromDigestStream(t *testing.T) {
	// a fixed stream yields a fixed scalar
	stream := bytes.Repeat([]byte{0xa5}, 64)
	s1, err := Scalar(bytes.NewReader(stream), curve.Bandersnatch())
	require.NoError(t, err)
	s2, err := Scalar(bytes.NewReader(stream), curve.Bandersnatch())
	require.NoError(t, err)
	assert.True(t, s1.Equal(s2))
}

func TestScalarExhaustedReader(t *testing.T) {
	_, err := Scalar(bytes.NewReader([]byte{1, 2}), curve.Bandersnatch())
	assert.Error(t, err)
}

func TestBytes(t *testing.T) {
	b, err := Bytes(nil, 32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}
