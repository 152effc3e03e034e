package dataset

import (
	"errors"
	"fmt"

	"github.com/imgpipe/imgpipe/internal/grid"
)

// Column errors.
var (
	ErrColumnLength  = errors.New("column length must equal index length")
	ErrStackedColumn = errors.New("stacked column requires a non-nil array")
)

// ColumnKind is the declared container tag of a column. Merge and transform
// decisions branch on this tag, never on inspection of individual values.
type ColumnKind int

const (
	// KindRows marks a positional sequence with one value per item.
	KindRows ColumnKind = iota

	// KindStacked marks a single composite array whose leading axis is the
	// item position.
	KindStacked
)

// String returns the kind's name.
func (k ColumnKind) String() string {
	switch k {
	case KindRows:
		return "rows"
	case KindStacked:
		return "stacked"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is one batch attribute container: either a positional sequence
// aligned with the batch index, or one stacked array treated as a unit.
type Column struct {
	kind    ColumnKind
	rows    []any
	stacked *grid.Dense
}

// NewRows creates a positional column from one value per item.
func NewRows(values []any) *Column {
	return &Column{
		kind: KindRows,
		rows: values,
	}
}

// NewStacked creates a composite column from a stacked array. The array's
// leading axis must correspond to item positions.
func NewStacked(stacked *grid.Dense) (*Column, error) {
	if stacked == nil {
		return nil, ErrStackedColumn
	}
	if stacked.Rank() < 2 {
		return nil, fmt.Errorf("%w: rank %d array cannot be sliced per item", ErrStackedColumn, stacked.Rank())
	}
	return &Column{
		kind:    KindStacked,
		stacked: stacked,
	}, nil
}

// Kind returns the column's declared container tag.
func (c *Column) Kind() ColumnKind {
	return c.kind
}

// Len returns the number of items the column covers.
func (c *Column) Len() int {
	if c.kind == KindStacked {
		return c.stacked.Shape()[0]
	}
	return len(c.rows)
}

// Row returns the value at the given position. For a stacked column the
// value is a view of the position's sub-array sharing the backing storage.
func (c *Column) Row(position int) (any, error) {
	if position < 0 || position >= c.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadPosition, position, c.Len())
	}
	if c.kind == KindStacked {
		return c.stacked.Slice(position)
	}
	return c.rows[position], nil
}

// Values materializes the column as one value per position.
func (c *Column) Values() ([]any, error) {
	values := make([]any, c.Len())
	for p := range values {
		v, err := c.Row(p)
		if err != nil {
			return nil, err
		}
		values[p] = v
	}
	return values, nil
}

// Grid returns the composite array of a stacked column, or nil for a
// positional column.
func (c *Column) Grid() *grid.Dense {
	return c.stacked
}
