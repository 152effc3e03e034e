package engine

import (
	"fmt"

	"github.com/imgpipe/imgpipe/internal/dataset"
	"github.com/imgpipe/imgpipe/internal/grid"
)

// MergeStrategy is the policy for combining per-item outcomes back into a
// batch attribute.
type MergeStrategy int

const (
	// MergeReplace replaces the attribute wholesale with the ordered
	// per-item values.
	MergeReplace MergeStrategy = iota

	// MergeStack stacks equally-shaped per-item arrays along a new
	// leading axis into one composite array.
	MergeStack
)

// String returns the strategy's config name.
func (s MergeStrategy) String() string {
	switch s {
	case MergeReplace:
		return "replace"
	case MergeStack:
		return "stack"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseMergeStrategy resolves a config name to a merge strategy.
func ParseMergeStrategy(name string) (MergeStrategy, error) {
	switch name {
	case "replace":
		return MergeReplace, nil
	case "stack":
		return MergeStack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Assemble merges the ordered outcomes of one dispatch into the target
// attribute. If any outcome failed, Assemble returns an *AggregateError
// carrying every failing position and the target attribute is left exactly
// as it was; partial success is never written back. On all-success the new
// column is built completely and then assigned in one step.
func Assemble(b *dataset.Batch, outcomes []Outcome[any], target dataset.Attr, strategy MergeStrategy) error {
	if items := CollectFailures(outcomes); len(items) > 0 {
		return &AggregateError{Items: items}
	}

	col, err := buildColumn(outcomes, strategy)
	if err != nil {
		return err
	}
	return b.SetColumn(target, col)
}

// buildColumn constructs the merged attribute container for all-success
// outcomes.
func buildColumn(outcomes []Outcome[any], strategy MergeStrategy) (*dataset.Column, error) {
	switch strategy {
	case MergeReplace:
		values := make([]any, len(outcomes))
		for p, o := range outcomes {
			values[p] = o.Value
		}
		return dataset.NewRows(values), nil

	case MergeStack:
		grids := make([]*grid.Dense, len(outcomes))
		for p, o := range outcomes {
			g, ok := o.Value.(*grid.Dense)
			if !ok {
				return nil, fmt.Errorf("%w: item %d produced %T", ErrNotStackable, p, o.Value)
			}
			grids[p] = g
		}
		stacked, err := grid.Stack(grids)
		if err != nil {
			return nil, err
		}
		return dataset.NewStacked(stacked)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
}
