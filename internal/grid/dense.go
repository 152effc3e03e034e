package grid

import (
	"errors"
	"fmt"
)

// Common grid errors.
var (
	ErrInvalidShape  = errors.New("shape dimensions must be positive")
	ErrShapeMismatch = errors.New("arrays must share an identical shape")
	ErrBadIndex      = errors.New("index out of range")
)

// Dense is a dense numeric array of arbitrary rank stored in row-major order.
// It is the payload type for stacked batch attributes: a column holding one
// value per item stacks into a Dense whose leading axis is the item position.
type Dense struct {
	shape []int
	data  []float64
}

// New creates a zero-filled array with the given shape.
func New(shape ...int) (*Dense, error) {
	size := 1
	for _, dim := range shape {
		if dim <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidShape, shape)
		}
		size *= dim
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: shape is empty", ErrInvalidShape)
	}

	return &Dense{
		shape: append([]int(nil), shape...),
		data:  make([]float64, size),
	}, nil
}

// FromData creates an array that adopts data as its row-major backing storage.
// The data length must match the product of the shape dimensions.
func FromData(data []float64, shape ...int) (*Dense, error) {
	d, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(d.data) {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrInvalidShape, len(data), shape)
	}
	d.data = data
	return d, nil
}

// MustNew is New for static shapes; it panics on an invalid shape.
func MustNew(shape ...int) *Dense {
	d, err := New(shape...)
	if err != nil {
		panic(err)
	}
	return d
}

// Shape returns a copy of the array's dimensions.
func (d *Dense) Shape() []int {
	return append([]int(nil), d.shape...)
}

// Rank returns the number of dimensions.
func (d *Dense) Rank() int {
	return len(d.shape)
}

// Size returns the total number of elements.
func (d *Dense) Size() int {
	return len(d.data)
}

// Data returns the row-major backing slice. Callers must treat it as
// read-only while the array is shared across workers.
func (d *Dense) Data() []float64 {
	return d.data
}

// At returns the element at the given multi-dimensional index.
func (d *Dense) At(index ...int) float64 {
	return d.data[d.offset(index)]
}

// Set stores v at the given multi-dimensional index.
func (d *Dense) Set(v float64, index ...int) {
	d.data[d.offset(index)] = v
}

// offset converts a multi-dimensional index to a flat row-major offset.
func (d *Dense) offset(index []int) int {
	if len(index) != len(d.shape) {
		panic(fmt.Errorf("%w: %d indices for rank %d", ErrBadIndex, len(index), len(d.shape)))
	}
	off := 0
	for axis, i := range index {
		if i < 0 || i >= d.shape[axis] {
			panic(fmt.Errorf("%w: index %d on axis %d of extent %d", ErrBadIndex, i, axis, d.shape[axis]))
		}
		off = off*d.shape[axis] + i
	}
	return off
}

// Clone returns a deep copy of the array.
func (d *Dense) Clone() *Dense {
	return &Dense{
		shape: append([]int(nil), d.shape...),
		data:  append([]float64(nil), d.data...),
	}
}

// EqualShape reports whether both arrays have identical dimensions.
func (d *Dense) EqualShape(other *Dense) bool {
	if len(d.shape) != len(other.shape) {
		return false
	}
	for axis, dim := range d.shape {
		if other.shape[axis] != dim {
			return false
		}
	}
	return true
}

// Equal reports whether both arrays have identical shape and contents.
func (d *Dense) Equal(other *Dense) bool {
	if !d.EqualShape(other) {
		return false
	}
	for i, v := range d.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Slice returns a view of the i-th sub-array along the leading axis.
// The view shares backing storage with the parent; it is how per-item
// inputs are enumerated out of a stacked column without copying.
func (d *Dense) Slice(i int) (*Dense, error) {
	if len(d.shape) < 2 {
		return nil, fmt.Errorf("%w: cannot slice rank-%d array", ErrBadIndex, len(d.shape))
	}
	if i < 0 || i >= d.shape[0] {
		return nil, fmt.Errorf("%w: slice %d of extent %d", ErrBadIndex, i, d.shape[0])
	}

	stride := len(d.data) / d.shape[0]
	return &Dense{
		shape: append([]int(nil), d.shape[1:]...),
		data:  d.data[i*stride : (i+1)*stride],
	}, nil
}

// Stack merges equally-shaped arrays into one array with a new leading axis,
// so items[p] becomes the p-th sub-array of the result. All inputs must be
// non-nil and share an identical shape.
func Stack(items []*Dense) (*Dense, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrInvalidShape)
	}

	first := items[0]
	if first == nil {
		return nil, fmt.Errorf("%w: item 0 is nil", ErrShapeMismatch)
	}
	for pos, item := range items[1:] {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is nil", ErrShapeMismatch, pos+1)
		}
		if !first.EqualShape(item) {
			return nil, fmt.Errorf("%w: item %d has shape %v, item 0 has shape %v",
				ErrShapeMismatch, pos+1, item.shape, first.shape)
		}
	}

	stacked := &Dense{
		shape: append([]int{len(items)}, first.shape...),
		data:  make([]float64, 0, len(items)*first.Size()),
	}
	for _, item := range items {
		stacked.data = append(stacked.data, item.data...)
	}
	return stacked, nil
}
