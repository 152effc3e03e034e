package imaging

import (
	"errors"
	"fmt"
	"sort"
)

// Transform names that can be granted through Capabilities.
const (
	TransformResize  = "resize"
	TransformConvert = "convert"
)

// Capability errors.
var (
	ErrUnknownTransform     = errors.New("unknown transform")
	ErrUnavailableTransform = errors.New("transform is not available in this pipeline")
)

// knownTransforms is the closed set of transforms this package implements.
var knownTransforms = map[string]bool{
	TransformResize:  true,
	TransformConvert: true,
}

// Capabilities declares which per-item transforms a pipeline may use. It
// replaces silent feature probing: a transform outside the declared set is
// refused when the pipeline is built, before any batch is dispatched.
type Capabilities struct {
	enabled map[string]bool
}

// NewCapabilities declares an explicit transform set. Unknown names are
// refused so configuration typos surface immediately.
func NewCapabilities(names ...string) (Capabilities, error) {
	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		if !knownTransforms[name] {
			return Capabilities{}, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
		}
		enabled[name] = true
	}
	return Capabilities{enabled: enabled}, nil
}

// DefaultCapabilities grants every transform this package implements.
func DefaultCapabilities() Capabilities {
	enabled := make(map[string]bool, len(knownTransforms))
	for name := range knownTransforms {
		enabled[name] = true
	}
	return Capabilities{enabled: enabled}
}

// Has reports whether the named transform is available.
func (c Capabilities) Has(name string) bool {
	return c.enabled[name]
}

// Require returns an error unless the named transform is available.
func (c Capabilities) Require(name string) error {
	if !knownTransforms[name] {
		return fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	if !c.enabled[name] {
		return fmt.Errorf("%w: %q", ErrUnavailableTransform, name)
	}
	return nil
}

// Names returns the available transform names in sorted order.
func (c Capabilities) Names() []string {
	names := make([]string, 0, len(c.enabled))
	for name := range c.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
