package engine

import (
	"fmt"

	"github.com/imgpipe/imgpipe/internal/dataset"
)

// Init selects what the work enumerator feeds each worker: either the
// item identifiers themselves or the per-item values of one attribute.
type Init struct {
	attr    dataset.Attr
	indices bool
}

// InitIndices enumerates the batch's item identifiers.
func InitIndices() Init {
	return Init{indices: true}
}

// InitAttr enumerates the per-item values of the given attribute.
func InitAttr(attr dataset.Attr) Init {
	return Init{attr: attr}
}

// String returns the init's config name.
func (in Init) String() string {
	if in.indices {
		return "indices"
	}
	return in.attr.String()
}

// ParseInit resolves a config name ("indices" or an attribute name) to an
// init specification.
func ParseInit(name string) (Init, error) {
	if name == "indices" {
		return InitIndices(), nil
	}
	attr, err := dataset.ParseAttr(name)
	if err != nil {
		return Init{}, err
	}
	return InitAttr(attr), nil
}

// Inputs produces the ordered per-position input values for a dispatch,
// one per item in the batch index. It is a pure read of the batch state:
// no side effects, and the batch is untouched on failure. A missing or
// unset attribute fails before any worker runs.
func Inputs(b *dataset.Batch, init Init) ([]any, error) {
	if init.indices {
		ids := b.Index().IDs()
		inputs := make([]any, len(ids))
		for p, id := range ids {
			inputs[p] = id
		}
		return inputs, nil
	}

	col := b.Column(init.attr)
	if col == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingAttribute, init.attr)
	}
	return col.Values()
}
