package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Common engine errors.
var (
	ErrMissingAttribute   = errors.New("attribute is not set on the batch")
	ErrInvalidConcurrency = errors.New("concurrency limit cannot be negative")
	ErrNilTransform       = errors.New("transform function cannot be nil")
	ErrItemPanic          = errors.New("item transform panicked")
	ErrNotStackable       = errors.New("stack merge requires grid values")
	ErrUnknownStrategy    = errors.New("unknown merge strategy")
)

// ItemError is one work item's captured failure, tagged with the item's
// position in the batch index.
type ItemError struct {
	Position int
	Err      error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Position, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// AggregateError is raised at assembly time when one or more work items
// failed. It carries every failing item, not just the first, so callers can
// diagnose the whole dispatch in one pass.
type AggregateError struct {
	Items []ItemError
}

func (e *AggregateError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of the batch's items failed:", len(e.Items))
	for _, item := range e.Items {
		sb.WriteString(" [")
		sb.WriteString(item.Error())
		sb.WriteString("]")
	}
	return sb.String()
}

// Unwrap exposes the per-item errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Items))
	for i, item := range e.Items {
		errs[i] = item
	}
	return errs
}

// Positions returns the ordered positions of the failed items.
func (e *AggregateError) Positions() []int {
	positions := make([]int, len(e.Items))
	for i, item := range e.Items {
		positions[i] = item.Position
	}
	return positions
}
