package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/logging"
)

// Engine runs per-item transforms over one batch at a time: it enumerates
// inputs, dispatches them across its worker pool, and assembles the
// outcomes back into the batch. Concurrency is confined to one batch, one
// invocation, one address space.
type Engine struct {
	// limit bounds the worker pool. Zero means the number of CPUs.
	limit int

	// onProgress is an optional callback for per-item progress updates.
	onProgress ProgressCallback
}

// New creates an engine with the given concurrency limit. A zero limit
// selects the available hardware parallelism; negative limits are refused.
func New(limit int) (*Engine, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, limit)
	}
	return &Engine{limit: limit}, nil
}

// NewWithDefaults creates an engine sized to the available hardware
// parallelism.
func NewWithDefaults() *Engine {
	return &Engine{}
}

// WithProgressCallback sets a progress callback for the engine.
func (e *Engine) WithProgressCallback(callback ProgressCallback) *Engine {
	e.onProgress = callback
	return e
}

// Limit returns the effective worker pool size.
func (e *Engine) Limit() int {
	if e.limit == 0 {
		return runtime.NumCPU()
	}
	return e.limit
}

// Run enumerates the batch per init, dispatches fn over every input, and
// assembles the outcomes into the target attribute under the given merge
// strategy. The batch is returned in all cases so the caller's pipeline
// can continue to refer to it; on error its attributes are untouched.
func (e *Engine) Run(
	ctx context.Context,
	b *dataset.Batch,
	init Init,
	target dataset.Attr,
	strategy MergeStrategy,
	fn TransformFunc[any, any],
) (*dataset.Batch, error) {
	log := logging.FromContext(ctx)

	inputs, err := Inputs(b, init)
	if err != nil {
		return b, err
	}

	log.Debug().
		Str("component", "engine").
		Str("batch_id", b.ID().String()).
		Str("init", init.String()).
		Str("target", target.String()).
		Str("strategy", strategy.String()).
		Int("items", len(inputs)).
		Int("concurrency", e.Limit()).
		Msg("dispatching batch")

	outcomes := e.dispatchAll(ctx, inputs, fn)

	if err := Assemble(b, outcomes, target, strategy); err != nil {
		log.Error().
			Str("component", "engine").
			Str("batch_id", b.ID().String()).
			Err(err).
			Msg("batch assembly failed")
		return b, err
	}

	log.Debug().
		Str("component", "engine").
		Str("batch_id", b.ID().String()).
		Int("items", len(inputs)).
		Msg("batch assembled")
	return b, nil
}

// dispatchAll fans the inputs out across the worker pool, wiring the
// engine's progress tracking into the per-item completion hook.
func (e *Engine) dispatchAll(ctx context.Context, inputs []any, fn TransformFunc[any, any]) []Outcome[any] {
	if e.onProgress == nil {
		return Dispatch(ctx, inputs, fn, e.limit)
	}

	progress := NewProgress(len(inputs))
	return dispatch(ctx, inputs, fn, e.limit, func() {
		progress.AddProcessed(1)
		e.onProgress(progress)
	})
}
