package engine

// Outcome is the success-or-failure result of processing one work item. The
// ordered outcome slice, indexed by position, is the only channel between
// the dispatcher and the assembler; no other shared state crosses that
// boundary.
type Outcome[T any] struct {
	// Position is the item's index within the batch, not the order in
	// which workers happened to finish.
	Position int

	// Value holds the transform's result when Err is nil.
	Value T

	// Err holds the captured failure, if any.
	Err error
}

// Success creates a successful outcome for the given position.
func Success[T any](position int, value T) Outcome[T] {
	return Outcome[T]{Position: position, Value: value}
}

// Failure creates a failed outcome for the given position.
func Failure[T any](position int, err error) Outcome[T] {
	return Outcome[T]{Position: position, Err: err}
}

// Failed reports whether the outcome captured a failure.
func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}

// AnyFailed reports whether any outcome in the slice captured a failure.
func AnyFailed[T any](outcomes []Outcome[T]) bool {
	for _, o := range outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}

// CollectFailures returns the captured failures in position order, or nil
// when every outcome succeeded.
func CollectFailures[T any](outcomes []Outcome[T]) []ItemError {
	var items []ItemError
	for _, o := range outcomes {
		if o.Failed() {
			items = append(items, ItemError{Position: o.Position, Err: o.Err})
		}
	}
	return items
}
