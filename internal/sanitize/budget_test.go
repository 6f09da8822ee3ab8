package sanitize

import (
	"testing"

	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_Accept(t *testing.T) {
	t.Run("accepts files within limits", func(t *testing.T) {
		b := NewBudget(100, 250)

		require.NoError(t, b.Accept("a.txt", 100))
		require.NoError(t, b.Accept("b.txt", 100))
		require.NoError(t, b.Accept("c.txt", 50))
		assert.Equal(t, int64(250), b.Total())
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		b := NewBudget(100, 1000)

		err := b.Accept("big.bin", 101)
		require.Error(t, err)

		var tooLarge *domain.FileTooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "big.bin", tooLarge.Path)
		assert.Equal(t, int64(101), tooLarge.Size)
		assert.Equal(t, int64(100), tooLarge.Limit)
	})

	t.Run("rejects when cumulative total exceeded", func(t *testing.T) {
		b := NewBudget(100, 150)

		require.NoError(t, b.Accept("a.txt", 100))

		err := b.Accept("b.txt", 100)
		require.Error(t, err)

		var exceeded *domain.TotalSizeExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Equal(t, int64(200), exceeded.Total)
		assert.Equal(t, int64(150), exceeded.Limit)
	})

	t.Run("exactly at the ceiling is accepted", func(t *testing.T) {
		b := NewBudget(10, 20)

		require.NoError(t, b.Accept("a", 10))
		require.NoError(t, b.Accept("b", 10))
	})

	t.Run("zero limits disable the ceilings", func(t *testing.T) {
		b := NewBudget(0, 0)

		require.NoError(t, b.Accept("huge", 1<<40))
		require.NoError(t, b.Accept("huge2", 1<<40))
	})
}
