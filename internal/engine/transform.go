package engine

import (
	"context"

	"github.com/imgpipe/imgpipe/internal/dataset"
)

// ColumnFunc transforms a whole attribute column at once. It receives the
// materialized per-position values (nil when no source attribute is
// selected) and returns the replacement values.
type ColumnFunc func(ctx context.Context, values []any) ([]any, error)

// ApplyTransform applies fn to each item of the batch independently and
// writes the results into the dst attribute. The init specification
// selects the per-item input: an attribute's values, or the item
// identifiers when no source attribute applies. This is the primary way
// external per-item logic plugs into the dispatcher.
func (e *Engine) ApplyTransform(
	ctx context.Context,
	b *dataset.Batch,
	init Init,
	dst dataset.Attr,
	fn TransformFunc[any, any],
) (*dataset.Batch, error) {
	return e.Run(ctx, b, init, dst, MergeReplace, fn)
}

// ApplyTransformAll applies fn to an entire column in one call, without
// fanning out per item. src selects the input column; InitIndices feeds
// the identifiers instead. The result replaces the dst attribute.
func (e *Engine) ApplyTransformAll(
	ctx context.Context,
	b *dataset.Batch,
	src Init,
	dst dataset.Attr,
	fn ColumnFunc,
) (*dataset.Batch, error) {
	if fn == nil {
		return b, ErrNilTransform
	}

	values, err := Inputs(b, src)
	if err != nil {
		return b, err
	}

	replaced, err := fn(ctx, values)
	if err != nil {
		return b, err
	}
	if err := b.SetColumn(dst, dataset.NewRows(replaced)); err != nil {
		return b, err
	}
	return b, nil
}
