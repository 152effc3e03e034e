package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgpipe/imgpipe/internal/grid"
)

func testIndex(t *testing.T, n int) *Index {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	ix, err := NewIndex(ids)
	require.NoError(t, err)
	return ix
}

func TestParseAttr(t *testing.T) {
	cases := []struct {
		name string
		want Attr
	}{
		{"images", AttrImages},
		{"labels", AttrLabels},
		{"masks", AttrMasks},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attr, err := ParseAttr(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, attr)
			assert.Equal(t, tc.name, attr.String())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseAttr("features")
		assert.ErrorIs(t, err, ErrUnknownAttr)
	})
}

func TestNewBatch(t *testing.T) {
	t.Run("EmptySlots", func(t *testing.T) {
		b, err := New(testIndex(t, 3), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Len())
		assert.Nil(t, b.Images())
		assert.Nil(t, b.Labels())
		assert.Nil(t, b.Masks())
		assert.NotZero(t, b.ID())
	})

	t.Run("Preloaded", func(t *testing.T) {
		b, err := New(testIndex(t, 2), map[Attr]*Column{
			AttrLabels: NewRows([]any{0, 1}),
		})
		require.NoError(t, err)
		require.NotNil(t, b.Labels())
		assert.Equal(t, 2, b.Labels().Len())
	})

	t.Run("PreloadedLengthMismatch", func(t *testing.T) {
		_, err := New(testIndex(t, 2), map[Attr]*Column{
			AttrLabels: NewRows([]any{0, 1, 2}),
		})
		assert.ErrorIs(t, err, ErrColumnLength)
	})

	t.Run("NilIndex", func(t *testing.T) {
		_, err := New(nil, nil)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})
}

func TestSetColumn(t *testing.T) {
	b, err := New(testIndex(t, 3), nil)
	require.NoError(t, err)

	t.Run("LengthEnforced", func(t *testing.T) {
		err := b.SetColumn(AttrImages, NewRows([]any{1, 2}))
		assert.ErrorIs(t, err, ErrColumnLength)
		assert.Nil(t, b.Images())
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, b.SetColumn(AttrLabels, NewRows([]any{1, 2, 3})))
		require.NoError(t, b.SetColumn(AttrLabels, nil))
		assert.Nil(t, b.Labels())
	})

	t.Run("InvalidAttr", func(t *testing.T) {
		err := b.SetColumn(Attr(99), NewRows([]any{1, 2, 3}))
		assert.ErrorIs(t, err, ErrUnknownAttr)
	})
}

// Masks must occupy their own slot: setting masks may not clobber a
// neighboring attribute and must be readable back from the masks accessor.
func TestMaskSlotAlignment(t *testing.T) {
	b, err := New(testIndex(t, 2), nil)
	require.NoError(t, err)

	require.NoError(t, b.SetImages(NewRows([]any{"i0", "i1"})))
	require.NoError(t, b.SetLabels(NewRows([]any{"l0", "l1"})))
	require.NoError(t, b.SetMasks(NewRows([]any{"m0", "m1"})))

	v, err := b.Masks().Row(0)
	require.NoError(t, err)
	assert.Equal(t, "m0", v)

	v, err = b.Labels().Row(1)
	require.NoError(t, err)
	assert.Equal(t, "l1", v)

	v, err = b.Images().Row(0)
	require.NoError(t, err)
	assert.Equal(t, "i0", v)
}

func TestColumn(t *testing.T) {
	t.Run("Rows", func(t *testing.T) {
		col := NewRows([]any{10, 20, 30})
		assert.Equal(t, KindRows, col.Kind())
		assert.Equal(t, 3, col.Len())
		assert.Nil(t, col.Grid())

		v, err := col.Row(2)
		require.NoError(t, err)
		assert.Equal(t, 30, v)

		_, err = col.Row(3)
		assert.ErrorIs(t, err, ErrBadPosition)
	})

	t.Run("Stacked", func(t *testing.T) {
		stacked, err := grid.FromData([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
		require.NoError(t, err)
		col, err := NewStacked(stacked)
		require.NoError(t, err)

		assert.Equal(t, KindStacked, col.Kind())
		assert.Equal(t, 3, col.Len())

		v, err := col.Row(1)
		require.NoError(t, err)
		sub, ok := v.(*grid.Dense)
		require.True(t, ok)
		assert.Equal(t, []float64{3, 4}, sub.Data())
	})

	t.Run("StackedRankOne", func(t *testing.T) {
		_, err := NewStacked(grid.MustNew(4))
		assert.ErrorIs(t, err, ErrStackedColumn)
	})

	t.Run("StackedNil", func(t *testing.T) {
		_, err := NewStacked(nil)
		assert.ErrorIs(t, err, ErrStackedColumn)
	})

	t.Run("Values", func(t *testing.T) {
		col := NewRows([]any{"a", "b"})
		values, err := col.Values()
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, values)
	})
}
