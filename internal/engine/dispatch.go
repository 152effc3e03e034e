package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TransformFunc is a per-item transform. It must be safe to invoke
// concurrently with disjoint inputs; the engine offers no shared-state
// contract beyond what the caller arranges. The context is passed through
// so callers can apply per-item timeouts inside fn and surface them as
// ordinary errors.
type TransformFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Dispatch runs fn over every input using a bounded worker pool and returns
// one outcome per input, ordered by position regardless of completion
// order. A failure in one item's invocation never cancels, blocks, or
// corrupts the processing of any other item; Dispatch always runs every
// input to completion before returning. An empty input slice yields an
// empty, trivially successful result.
//
// limit bounds the worker pool; values below 1 or above the available
// hardware parallelism are clamped to the number of CPUs.
func Dispatch[In, Out any](ctx context.Context, inputs []In, fn TransformFunc[In, Out], limit int) []Outcome[Out] {
	return dispatch(ctx, inputs, fn, limit, nil)
}

// dispatch is Dispatch plus an optional per-item completion hook used for
// progress tracking. The hook runs on worker goroutines and must be fast.
func dispatch[In, Out any](
	ctx context.Context,
	inputs []In,
	fn TransformFunc[In, Out],
	limit int,
	onItem func(),
) []Outcome[Out] {
	outcomes := make([]Outcome[Out], len(inputs))
	if len(inputs) == 0 {
		return outcomes
	}
	if fn == nil {
		for pos := range outcomes {
			outcomes[pos] = Failure[Out](pos, ErrNilTransform)
		}
		return outcomes
	}

	// A plain Group, not WithContext: item failures are recorded as data
	// and must never propagate a cancellation to sibling workers.
	var g errgroup.Group
	g.SetLimit(clampLimit(limit))

	for pos, input := range inputs {
		pos, input := pos, input
		g.Go(func() error {
			outcomes[pos] = invoke(ctx, pos, input, fn)
			if onItem != nil {
				onItem()
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// invoke is the worker boundary: it converts both returned errors and
// panics from fn into Failure outcomes so no error can cross between
// workers.
func invoke[In, Out any](ctx context.Context, pos int, input In, fn TransformFunc[In, Out]) (out Outcome[Out]) {
	defer func() {
		if r := recover(); r != nil {
			out = Failure[Out](pos, fmt.Errorf("%w: %v", ErrItemPanic, r))
		}
	}()

	value, err := fn(ctx, input)
	if err != nil {
		return Failure[Out](pos, err)
	}
	return Success(pos, value)
}

// clampLimit bounds the worker pool size to [1, NumCPU].
func clampLimit(limit int) int {
	ceiling := runtime.NumCPU()
	if limit < 1 || limit > ceiling {
		return ceiling
	}
	return limit
}
