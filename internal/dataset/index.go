package dataset

import (
	"errors"
	"fmt"
)

// Index errors.
var (
	ErrEmptyIndex  = errors.New("index must contain at least one identifier")
	ErrDuplicateID = errors.New("index identifiers must be unique")
	ErrUnknownID   = errors.New("identifier not in index")
	ErrBadPosition = errors.New("position out of range")
)

// Index is the ordered set of item identifiers for one batch. It defines
// both the iteration order and the position-to-identifier mapping and is
// immutable for the lifetime of the batch that holds it.
type Index struct {
	ids []string
	pos map[string]int
}

// NewIndex creates an index from the given ordered identifiers.
func NewIndex(ids []string) (*Index, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIndex
	}

	pos := make(map[string]int, len(ids))
	for p, id := range ids {
		if _, dup := pos[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		pos[id] = p
	}

	return &Index{
		ids: append([]string(nil), ids...),
		pos: pos,
	}, nil
}

// Len returns the number of identifiers.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// At returns the identifier at the given position.
func (ix *Index) At(position int) (string, error) {
	if position < 0 || position >= len(ix.ids) {
		return "", fmt.Errorf("%w: %d of %d", ErrBadPosition, position, len(ix.ids))
	}
	return ix.ids[position], nil
}

// Pos returns the position of the given identifier.
func (ix *Index) Pos(id string) (int, error) {
	p, ok := ix.pos[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return p, nil
}

// IDs returns a copy of the ordered identifiers.
func (ix *Index) IDs() []string {
	return append([]string(nil), ix.ids...)
}
