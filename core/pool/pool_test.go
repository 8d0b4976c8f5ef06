package pool

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoversEveryIndex(t *testing.T) {
	n := 1000
	var hits int64
	err := Parallelize(n, func(start, end int) error {
		atomic.AddInt64(&hits, int64(end-start))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(n), hits)
}

func TestPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Parallelize(64, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestSmallInput(t *testing.T) {
	called := 0
	err := Parallelize(1, func(start, end int) error {
		called++
		assert.Equal(t, 0, start)
		assert.Equal(t, 1, end)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, called)
}
