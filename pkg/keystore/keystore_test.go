package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cipherworks/vrf-lib/core/math/curve"
)

func TestStoreLifecycle(t *testing.T) {
	s := New()
	id, pk, err := s.Generate(curve.Bandersnatch())
	require.NoError(t, err)

	sk, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, sk.Public().Equal(pk))

	s.Delete(id)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownHandle(t *testing.T) {
	s := New()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
