package roller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/pkg/roller"
)

func TestSeededIsReproducible(t *testing.T) {
	a := roller.NewSeeded(42)
	b := roller.NewSeeded(42)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(6)
		require.NoError(t, err)
		rb, err := b.Roll(6)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
	}
}

func TestRollRange(t *testing.T) {
	r := roller.NewSeeded(1)

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v, err := r.Roll(3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestRollN(t *testing.T) {
	r := roller.NewSeeded(5)

	vals, err := r.RollN(4, 20)
	require.NoError(t, err)
	require.Len(t, vals, 4)
	for _, v := range vals {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 20)
	}

	vals, err = r.RollN(0, 6)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestRollRejectsBadInput(t *testing.T) {
	r := roller.NewSeeded(5)

	_, err := r.Roll(0)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = r.RollN(-1, 6)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = r.RollN(2, 0)
	assert.True(t, errors.IsInvalidArgument(err))
}
