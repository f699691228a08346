package cursor_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gregoryjjb/ive/cursor"
)

var numbers = []string{"0", "1", "2", "3", "4"}

func current(t *testing.T, c *cursor.CyclicCursor[string]) string {
	t.Helper()
	v, err := c.Current()
	require.NoError(t, err)
	return v
}

func TestCyclicCursor(t *testing.T) {
	t.Run("HasProperSize", func(t *testing.T) {
		c := cursor.New(numbers)
		assert.Equal(t, 5, c.Size())
		assert.True(t, c.IsReset())
		assert.Equal(t, cursor.ResetIndex, c.Index())
	})

	t.Run("ResetHasNoValue", func(t *testing.T) {
		c := cursor.New(numbers)
		_, err := c.Current()
		assert.ErrorIs(t, err, cursor.ErrNoCurrentElement)
	})

	t.Run("HasProperValues", func(t *testing.T) {
		c := cursor.New(numbers)
		var values []string
		for c.HasNext() {
			require.NoError(t, c.MoveNext())
			values = append(values, current(t, c))
		}
		assert.Equal(t, numbers, values)
	})

	t.Run("FirstNextReturnsFirstValue", func(t *testing.T) {
		c := cursor.New(numbers)
		require.NoError(t, c.MoveNext())
		assert.Equal(t, "0", current(t, c))
	})

	t.Run("NextWrapsAfterFullCycle", func(t *testing.T) {
		c := cursor.New(numbers)
		for _, want := range numbers {
			require.NoError(t, c.MoveNext())
			assert.Equal(t, want, current(t, c))
		}
		require.NoError(t, c.MoveNext())
		assert.Equal(t, "0", current(t, c))
		assert.Equal(t, 0, c.Index())
	})

	t.Run("StartIndexIsPositioned", func(t *testing.T) {
		c := cursor.NewAt(numbers, 4)
		assert.Equal(t, "4", current(t, c))
		assert.Equal(t, 4, c.Index())
		assert.False(t, c.HasNext())
		assert.True(t, c.HasPrevious())
	})

	t.Run("LastNextReturnsFirstValue", func(t *testing.T) {
		c := cursor.NewAt(numbers, 4)
		require.NoError(t, c.MoveNext())
		assert.Equal(t, "0", current(t, c))
	})

	t.Run("LastPreviousReturnsOneBeforeLastValue", func(t *testing.T) {
		c := cursor.NewAt(numbers, 4)
		require.NoError(t, c.MovePrevious())
		assert.Equal(t, "3", current(t, c))
		assert.Equal(t, 3, c.Index())
	})

	t.Run("FirstPreviousReturnsLastValue", func(t *testing.T) {
		c := cursor.New(numbers)
		require.NoError(t, c.MovePrevious())
		assert.Equal(t, "4", current(t, c))
		assert.Equal(t, 4, c.Index())
	})

	t.Run("PreviousFromFirstWraps", func(t *testing.T) {
		c := cursor.NewAt(numbers, 0)
		assert.False(t, c.HasPrevious())
		require.NoError(t, c.MovePrevious())
		assert.Equal(t, "4", current(t, c))
	})

	t.Run("OutOfRangeStartIsReset", func(t *testing.T) {
		for _, start := range []int{-1, -7, 5, 100} {
			c := cursor.NewAt(numbers, start)
			assert.True(t, c.IsReset(), "start %d", start)
			_, err := c.Current()
			assert.ErrorIs(t, err, cursor.ErrNoCurrentElement)
		}
	})

	t.Run("NextAndPreviousCombinedReturnsStartingValue", func(t *testing.T) {
		for i := 1; i < len(numbers)-1; i++ {
			c := cursor.NewAt(numbers, i)
			require.NoError(t, c.MoveNext())
			require.NoError(t, c.MovePrevious())
			assert.Equal(t, numbers[i], current(t, c))
			assert.Equal(t, i, c.Index())
		}
	})

	t.Run("RoundTripAcrossWrapBoundary", func(t *testing.T) {
		// HasNext is false at the end, yet moving still wraps and comes back
		c := cursor.NewAt(numbers, 4)
		assert.False(t, c.HasNext())
		require.NoError(t, c.MoveNext())
		assert.False(t, c.HasPrevious())
		require.NoError(t, c.MovePrevious())
		assert.Equal(t, "4", current(t, c))
	})

	t.Run("IndexAfterMoves", func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			values := make([]int, n)
			for k := 1; k <= 3*n+1; k++ {
				c := cursor.New(values)
				for j := 0; j < k; j++ {
					require.NoError(t, c.MoveNext())
				}
				assert.Equal(t, (k-1)%n, c.Index(), "n=%d k=%d", n, k)
			}
		}
	})

	t.Run("ResetResumesFromEitherEnd", func(t *testing.T) {
		c := cursor.NewAt(numbers, 2)
		c.Reset()
		assert.True(t, c.IsReset())
		_, err := c.Current()
		assert.ErrorIs(t, err, cursor.ErrNoCurrentElement)
		require.NoError(t, c.MoveNext())
		assert.Equal(t, "0", current(t, c))

		c.Reset()
		require.NoError(t, c.MovePrevious())
		assert.Equal(t, "4", current(t, c))
	})

	t.Run("SetReplacesCurrentValue", func(t *testing.T) {
		c := cursor.NewAt(numbers, 1)
		c.Set("one")
		assert.Equal(t, "one", current(t, c))

		c.Reset()
		c.Set("ignored")
		assert.Equal(t, []string{"0", "one", "2", "3", "4"}, slices.Collect(c.All()))
	})

	t.Run("SetDoesNotTouchInput", func(t *testing.T) {
		values := []string{"a", "b"}
		c := cursor.NewAt(values, 0)
		c.Set("z")
		assert.Equal(t, []string{"a", "b"}, values)
	})
}

func TestCyclicCursor_Empty(t *testing.T) {
	c := cursor.New([]string{})

	assert.Equal(t, 0, c.Size())
	assert.False(t, c.HasNext())
	assert.False(t, c.HasPrevious())
	assert.ErrorIs(t, c.MoveNext(), cursor.ErrEmptyCursor)
	assert.ErrorIs(t, c.MovePrevious(), cursor.ErrEmptyCursor)

	_, err := c.Current()
	assert.ErrorIs(t, err, cursor.ErrNoCurrentElement)

	_, removed := c.Remove()
	assert.False(t, removed)
	assert.Empty(t, slices.Collect(c.All()))
}

func TestCyclicCursor_All(t *testing.T) {
	t.Run("CollectsOncePerPass", func(t *testing.T) {
		c := cursor.New(numbers)
		assert.Equal(t, numbers, slices.Collect(c.All()))
		assert.Equal(t, "4", current(t, c))
		assert.Empty(t, slices.Collect(c.All()))
	})

	t.Run("StartsFromCurrentPosition", func(t *testing.T) {
		c := cursor.NewAt(numbers, 2)
		assert.Equal(t, []string{"3", "4"}, slices.Collect(c.All()))
	})

	t.Run("RestartsAfterReset", func(t *testing.T) {
		c := cursor.New(numbers)
		slices.Collect(c.All())
		c.Reset()
		assert.Equal(t, numbers, slices.Collect(c.All()))
	})

	t.Run("StopsEarly", func(t *testing.T) {
		c := cursor.New(numbers)
		var got []string
		for v := range c.All() {
			got = append(got, v)
			if v == "1" {
				break
			}
		}
		assert.Equal(t, []string{"0", "1"}, got)
		assert.Equal(t, 1, c.Index())
	})
}

func TestCyclicCursor_Remove(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		removed   string
		current   string
		index     int
		remaining []string
	}{
		{
			name:      "middle",
			start:     2,
			removed:   "2",
			current:   "3",
			index:     2,
			remaining: []string{"0", "1", "3", "4"},
		},
		{
			name:      "first",
			start:     0,
			removed:   "0",
			current:   "1",
			index:     0,
			remaining: []string{"1", "2", "3", "4"},
		},
		{
			name:      "last",
			start:     4,
			removed:   "4",
			current:   "0",
			index:     0,
			remaining: []string{"0", "1", "2", "3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.NewAt(numbers, tt.start)

			v, ok := c.Remove()
			require.True(t, ok)
			assert.Equal(t, tt.removed, v)
			assert.Equal(t, 4, c.Size())
			assert.Equal(t, tt.current, current(t, c))
			assert.Equal(t, tt.index, c.Index())

			c.Reset()
			assert.Equal(t, tt.remaining, slices.Collect(c.All()))

			c.Reset()
			var backwards []string
			for c.HasPrevious() {
				require.NoError(t, c.MovePrevious())
				backwards = append(backwards, current(t, c))
			}
			slices.Reverse(backwards)
			assert.Equal(t, tt.remaining, backwards)
		})
	}

	t.Run("OnlyElementEmptiesCursor", func(t *testing.T) {
		c := cursor.NewAt([]string{"x"}, 0)
		v, ok := c.Remove()
		require.True(t, ok)
		assert.Equal(t, "x", v)
		assert.Equal(t, 0, c.Size())
		assert.True(t, c.IsReset())
		assert.ErrorIs(t, c.MoveNext(), cursor.ErrEmptyCursor)
	})

	t.Run("ResetIsNoop", func(t *testing.T) {
		c := cursor.New(numbers)
		_, ok := c.Remove()
		assert.False(t, ok)
		assert.Equal(t, 5, c.Size())
	})

	t.Run("WrapsOverRemainingElements", func(t *testing.T) {
		c := cursor.NewAt(numbers, 1)
		c.Remove()
		c.Remove()
		// tape is now 0 3 4, positioned on 3
		var seen []string
		for i := 0; i < 4; i++ {
			require.NoError(t, c.MoveNext())
			seen = append(seen, current(t, c))
		}
		assert.Equal(t, []string{"4", "0", "3", "4"}, seen)
		assert.Equal(t, 2, c.Index())
	})
}

func TestCyclicCursor_Clone(t *testing.T) {
	c := cursor.NewAt(numbers, 3)
	clone := c.Clone()

	clone.Set("three")
	clone.Remove()
	clone.Reset()
	assert.Equal(t, []string{"0", "1", "2", "4"}, slices.Collect(clone.All()))

	assert.Equal(t, 5, c.Size())
	assert.Equal(t, "3", current(t, c))
	assert.Equal(t, 3, c.Index())
}

func TestFromSeq(t *testing.T) {
	c := cursor.FromSeq(slices.Values(numbers), 1)
	assert.Equal(t, "1", current(t, c))
	assert.Equal(t, 5, c.Size())
}
