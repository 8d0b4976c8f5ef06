package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t1 := New([]byte("proto"))
	t1.Add([]byte("vk"), []byte{1, 2, 3})
	c1 := t1.Challenge([]byte("alpha"))

	t2 := New([]byte("proto"))
	t2.Add([]byte("vk"), []byte{1, 2, 3})
	c2 := t2.Challenge([]byte("alpha"))

	assert.True(t, c1.Equal(&c2))
}

func TestAbsorptionChangesChallenges(t *testing.T) {
	t1 := New([]byte("proto"))
	t1.Add([]byte("vk"), []byte{1, 2, 3})
	c1 := t1.Challenge([]byte("alpha"))

	t2 := New([]byte("proto"))
	t2.Add([]byte("vk"), []byte{1, 2, 4})
	c2 := t2.Challenge([]byte("alpha"))

	assert.False(t, c1.Equal(&c2))
}

func TestAppendFraming(t *testing.T) {
	// ("ab", "c") and ("a", "bc") must diverge thanks to the length
	// framing
	t1 := New([]byte("proto"))
	t1.Append([]byte("ab"))
	t1.Append([]byte("c"))
	c1 := t1.Challenge([]byte("x"))

	t2 := New([]byte("proto"))
	t2.Append([]byte("a"))
	t2.Append([]byte("bc"))
	c2 := t2.Challenge([]byte("x"))

	assert.False(t, c1.Equal(&c2))
}

func TestChallengeDoesNotFreezeState(t *testing.T) {
	tr := New([]byte("proto"))
	tr.Append([]byte("data"))
	c1 := tr.Challenge([]byte("a"))
	c2 := tr.Challenge([]byte("a"))
	// same label twice still yields fresh values because the first
	// challenge itself mutated the state
	assert.False(t, c1.Equal(&c2))
}

func TestChallengesCount(t *testing.T) {
	tr := New([]byte("proto"))
	cs := tr.Challenges([]byte("nu"), 8)
	assert.Len(t, cs, 8)
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			assert.False(t, cs[i].Equal(&cs[j]))
		}
	}
}
