package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("known total", func(t *testing.T) {
		bar := NewProgressBar(10, DescWriting)
		require.NotNil(t, bar)

		require.NoError(t, bar.Add(3))
		state := bar.State()
		assert.Equal(t, int64(3), state.CurrentNum)
		assert.Equal(t, int64(10), state.Max)
	})

	t.Run("unknown total uses spinner", func(t *testing.T) {
		bar := NewProgressBar(-1, DescFetching)
		require.NotNil(t, bar)
		require.NoError(t, bar.Add(1))
	})

	t.Run("completes", func(t *testing.T) {
		bar := NewProgressBar(2, DescPacking)
		require.NoError(t, bar.Add(2))
		assert.True(t, bar.IsFinished())
	})
}
