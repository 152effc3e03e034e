package engine

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgpipe/imgpipe/internal/dataset"
)

func TestNew(t *testing.T) {
	t.Run("ZeroMeansNumCPU", func(t *testing.T) {
		e, err := New(0)
		require.NoError(t, err)
		assert.Equal(t, runtime.NumCPU(), e.Limit())
	})

	t.Run("Explicit", func(t *testing.T) {
		e, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 3, e.Limit())
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := New(-1)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})
}

func TestEngineRun(t *testing.T) {
	ctx := context.Background()
	double := func(_ context.Context, v any) (any, error) { return v.(int) * 2, nil }

	t.Run("ReplaceEqualsPerPositionApplication", func(t *testing.T) {
		b := testBatch(t, 3)
		require.NoError(t, b.SetLabels(dataset.NewRows([]any{1, 2, 3})))

		e, err := New(2)
		require.NoError(t, err)

		got, err := e.Run(ctx, b, InitAttr(dataset.AttrLabels), dataset.AttrImages, MergeReplace, double)
		require.NoError(t, err)
		require.Same(t, b, got, "actions hand back the batch they operated on")

		values, err := b.Images().Values()
		require.NoError(t, err)
		assert.Equal(t, []any{2, 4, 6}, values)
	})

	t.Run("MissingAttributeBeforeAnyWorkerRuns", func(t *testing.T) {
		b := testBatch(t, 3)
		invoked := false
		fn := func(_ context.Context, v any) (any, error) {
			invoked = true
			return v, nil
		}

		e := NewWithDefaults()
		got, err := e.Run(ctx, b, InitAttr(dataset.AttrImages), dataset.AttrImages, MergeReplace, fn)
		assert.ErrorIs(t, err, ErrMissingAttribute)
		assert.Same(t, b, got)
		assert.False(t, invoked)
	})

	t.Run("AggregateFailureLeavesTargetUntouched", func(t *testing.T) {
		b := testBatch(t, 4)
		require.NoError(t, b.SetLabels(dataset.NewRows([]any{0, 1, 2, 3})))
		require.NoError(t, b.SetImages(dataset.NewRows([]any{"keep0", "keep1", "keep2", "keep3"})))

		errItem := errors.New("bad item")
		fn := func(_ context.Context, v any) (any, error) {
			if v.(int) == 2 {
				return nil, errItem
			}
			return v, nil
		}

		e := NewWithDefaults()
		_, err := e.Run(ctx, b, InitAttr(dataset.AttrLabels), dataset.AttrImages, MergeReplace, fn)

		var agg *AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Equal(t, []int{2}, agg.Positions())

		v, rowErr := b.Images().Row(2)
		require.NoError(t, rowErr)
		assert.Equal(t, "keep2", v)
	})

	t.Run("ProgressCallback", func(t *testing.T) {
		b := testBatch(t, 5)
		require.NoError(t, b.SetLabels(dataset.NewRows([]any{1, 2, 3, 4, 5})))

		var mu sync.Mutex
		calls := 0
		var last *Progress
		e, err := New(2)
		require.NoError(t, err)
		e.WithProgressCallback(func(p *Progress) {
			mu.Lock()
			calls++
			last = p
			mu.Unlock()
		})

		_, err = e.Run(ctx, b, InitAttr(dataset.AttrLabels), dataset.AttrImages, MergeReplace, double)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 5, calls)
		require.NotNil(t, last)
		assert.True(t, last.IsComplete())
		assert.Equal(t, 100.0, last.PercentComplete())
	})
}

func TestApplyTransform(t *testing.T) {
	ctx := context.Background()

	t.Run("FromIndices", func(t *testing.T) {
		b := testBatch(t, 3)
		e := NewWithDefaults()

		tag := func(_ context.Context, v any) (any, error) { return "item-" + v.(string), nil }
		_, err := e.ApplyTransform(ctx, b, InitIndices(), dataset.AttrLabels, tag)
		require.NoError(t, err)

		values, err := b.Labels().Values()
		require.NoError(t, err)
		assert.Equal(t, []any{"item-a", "item-b", "item-c"}, values)
	})

	t.Run("SrcToDst", func(t *testing.T) {
		b := testBatch(t, 2)
		require.NoError(t, b.SetImages(dataset.NewRows([]any{10, 20})))

		e := NewWithDefaults()
		inc := func(_ context.Context, v any) (any, error) { return v.(int) + 1, nil }
		_, err := e.ApplyTransform(ctx, b, InitAttr(dataset.AttrImages), dataset.AttrMasks, inc)
		require.NoError(t, err)

		values, err := b.Masks().Values()
		require.NoError(t, err)
		assert.Equal(t, []any{11, 21}, values)
	})
}

func TestApplyTransformAll(t *testing.T) {
	ctx := context.Background()

	t.Run("WholeColumn", func(t *testing.T) {
		b := testBatch(t, 3)
		require.NoError(t, b.SetLabels(dataset.NewRows([]any{3, 1, 2})))

		reverse := func(_ context.Context, values []any) ([]any, error) {
			out := make([]any, len(values))
			for i, v := range values {
				out[len(values)-1-i] = v
			}
			return out, nil
		}

		e := NewWithDefaults()
		_, err := e.ApplyTransformAll(ctx, b, InitAttr(dataset.AttrLabels), dataset.AttrLabels, reverse)
		require.NoError(t, err)

		values, err := b.Labels().Values()
		require.NoError(t, err)
		assert.Equal(t, []any{2, 1, 3}, values)
	})

	t.Run("MissingSource", func(t *testing.T) {
		b := testBatch(t, 2)
		e := NewWithDefaults()
		identity := func(_ context.Context, values []any) ([]any, error) { return values, nil }
		_, err := e.ApplyTransformAll(ctx, b, InitAttr(dataset.AttrImages), dataset.AttrImages, identity)
		assert.ErrorIs(t, err, ErrMissingAttribute)
	})

	t.Run("NilFunc", func(t *testing.T) {
		b := testBatch(t, 2)
		e := NewWithDefaults()
		_, err := e.ApplyTransformAll(ctx, b, InitIndices(), dataset.AttrImages, nil)
		assert.ErrorIs(t, err, ErrNilTransform)
	})

	t.Run("LengthChangeRefused", func(t *testing.T) {
		b := testBatch(t, 2)
		e := NewWithDefaults()
		shrink := func(_ context.Context, values []any) ([]any, error) { return values[:1], nil }
		_, err := e.ApplyTransformAll(ctx, b, InitIndices(), dataset.AttrImages, shrink)
		assert.ErrorIs(t, err, dataset.ErrColumnLength)
	})
}
