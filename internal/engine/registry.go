package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/imgpipe/imgpipe/internal/dataset"
)

// Registry errors.
var (
	ErrNilAction       = errors.New("action cannot be nil")
	ErrDuplicateAction = errors.New("action is already registered")
	ErrUnknownAction   = errors.New("action is not registered")
)

// Action is one externally orchestrated pipeline step. An action always
// returns a batch, even on a logical no-op, so the driver can chain steps
// unconditionally. Registration is what distinguishes valid pipeline steps
// from internal helpers; the registry adds no behavior of its own.
type Action func(ctx context.Context, b *dataset.Batch, args map[string]any) (*dataset.Batch, error)

// Registry holds the named pipeline actions a driver may invoke.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds a named action. Names must be unique.
func (r *Registry) Register(name string, action Action) error {
	if action == nil {
		return fmt.Errorf("%w: %q", ErrNilAction, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.actions[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, name)
	}
	r.actions[name] = action
	return nil
}

// Lookup resolves a registered action by name.
func (r *Registry) Lookup(name string) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return action, nil
}

// Names returns the registered action names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
