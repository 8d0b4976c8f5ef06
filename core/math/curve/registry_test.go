package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range Suites() {
		c, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name)
	}

	_, err := ByName("p999")
	assert.ErrorIs(t, err, ErrUnknownSuite)
}
