package dataset

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Batch is the indexed, attribute-bearing collection of items processed
// together as one unit. Attribute columns are replaced wholesale at the end
// of a pipeline action, never mutated item by item, which is what keeps
// concurrent reads during dispatch safe without per-item locking.
type Batch struct {
	id    ulid.ULID
	index *Index
	cols  [numAttrs]*Column
}

// New creates a batch over the given index, optionally seeded with
// preloaded attribute columns.
func New(index *Index, preloaded map[Attr]*Column) (*Batch, error) {
	if index == nil {
		return nil, ErrEmptyIndex
	}

	b := &Batch{
		id:    ulid.Make(),
		index: index,
	}
	for attr, col := range preloaded {
		if err := b.SetColumn(attr, col); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ID returns the batch's unique identifier, used to correlate log lines
// across pipeline steps.
func (b *Batch) ID() ulid.ULID {
	return b.id
}

// Index returns the batch's identifier index.
func (b *Batch) Index() *Index {
	return b.index
}

// Len returns the number of items in the batch.
func (b *Batch) Len() int {
	return b.index.Len()
}

// Column returns the column stored in the given attribute slot, or nil when
// the slot is unset.
func (b *Batch) Column(attr Attr) *Column {
	if !attr.Valid() {
		return nil
	}
	return b.cols[attr]
}

// SetColumn assigns a column to an attribute slot. The column's length must
// equal the index length; a mismatch indicates corrupted data and the
// assignment is refused. A nil column clears the slot.
func (b *Batch) SetColumn(attr Attr, col *Column) error {
	if !attr.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAttr, int(attr))
	}
	if col != nil && col.Len() != b.index.Len() {
		return fmt.Errorf("%w: attribute %s has %d entries for %d items",
			ErrColumnLength, attr, col.Len(), b.index.Len())
	}
	b.cols[attr] = col
	return nil
}

// Images returns the images column.
func (b *Batch) Images() *Column { return b.cols[AttrImages] }

// Labels returns the labels column.
func (b *Batch) Labels() *Column { return b.cols[AttrLabels] }

// Masks returns the masks column.
func (b *Batch) Masks() *Column { return b.cols[AttrMasks] }

// SetImages assigns the images column.
func (b *Batch) SetImages(col *Column) error { return b.SetColumn(AttrImages, col) }

// SetLabels assigns the labels column.
func (b *Batch) SetLabels(col *Column) error { return b.SetColumn(AttrLabels, col) }

// SetMasks assigns the masks column.
func (b *Batch) SetMasks(col *Column) error { return b.SetColumn(AttrMasks, col) }
