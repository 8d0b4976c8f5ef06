package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSeparation(t *testing.T) {
	h1 := New()
	require.NoError(t, h1.WriteAny([]byte("ab"), []byte("c")))
	h2 := New()
	require.NoError(t, h2.WriteAny([]byte("a"), []byte("bc")))
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestDeterminism(t *testing.T) {
	h1 := New(BytesWithDomain{"seed", []byte{1, 2}})
	h2 := New(BytesWithDomain{"seed", []byte{1, 2}})
	assert.Equal(t, h1.Sum(), h2.Sum())

	h3 := New(BytesWithDomain{"other", []byte{1, 2}})
	assert.NotEqual(t, h1.Sum(), h3.Sum())
}

func TestForkDiverges(t *testing.T) {
	base := New()
	require.NoError(t, base.WriteAny([]byte("common")))

	a := base.Fork([]byte("a"))
	b := base.Fork([]byte("b"))
	assert.NotEqual(t, a.Sum(), b.Sum())
}

func TestWriteAnyRejectsNil(t *testing.T) {
	h := New()
	var b []byte
	assert.Error(t, h.WriteAny(b))
	assert.Error(t, h.WriteAny(42))
}
