package dataset

import (
	"errors"
	"fmt"
)

// ErrUnknownAttr is returned when a name does not map to a batch attribute.
var ErrUnknownAttr = errors.New("unknown batch attribute")

// Attr identifies one of the batch's attribute slots. The set is closed so
// that attribute routing is validated at construction time instead of by
// runtime string lookup.
type Attr int

// Batch attribute slots.
const (
	AttrImages Attr = iota
	AttrLabels
	AttrMasks

	numAttrs
)

// attrNames maps each attribute to its wire/config name.
var attrNames = map[Attr]string{
	AttrImages: "images",
	AttrLabels: "labels",
	AttrMasks:  "masks",
}

// String returns the attribute's config name.
func (a Attr) String() string {
	if name, ok := attrNames[a]; ok {
		return name
	}
	return fmt.Sprintf("attr(%d)", int(a))
}

// Valid reports whether a names an existing attribute slot.
func (a Attr) Valid() bool {
	return a >= 0 && a < numAttrs
}

// ParseAttr resolves a config name to an attribute slot.
func ParseAttr(name string) (Attr, error) {
	for attr, n := range attrNames {
		if n == name {
			return attr, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttr, name)
}
