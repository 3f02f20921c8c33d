package version

import (
	"errors"
	"fmt"
	"net/http"
)

// Binding pairs a version Spec with the handler serving that version.
type Binding struct {
	Spec    Spec
	Handler http.Handler
}

// Dispatcher routes each request to the first binding whose Spec matches
// it, in registration order. Construction guarantees the walk always
// terminates: the last binding is the default, and a default matches
// every request its predecessors rejected.
type Dispatcher struct {
	bindings []Binding
}

// NewDispatcher validates and assembles a Dispatcher from the given
// bindings, evaluated in registration order.
//
// Exactly one binding must be flagged as the default, and it must be
// registered last. A default registered earlier would shadow every
// binding after it, so that ordering is a configuration error and is
// rejected rather than silently reordered.
func NewDispatcher(bindings ...Binding) (*Dispatcher, error) {
	if len(bindings) == 0 {
		return nil, errors.New("version: at least one binding is required")
	}

	defaultCount := 0
	for i, b := range bindings {
		if b.Spec.Label == "" {
			return nil, fmt.Errorf("version: binding %d has no label", i)
		}
		if b.Handler == nil {
			return nil, fmt.Errorf("version: binding %q has no handler", b.Spec.Label)
		}
		if b.Spec.Default {
			defaultCount++
		}
	}
	if defaultCount != 1 {
		return nil, fmt.Errorf("version: exactly one binding must be the default, got %d", defaultCount)
	}
	if !bindings[len(bindings)-1].Spec.Default {
		return nil, errors.New("version: the default binding must be registered last")
	}

	return &Dispatcher{bindings: bindings}, nil
}

// ServeHTTP serves the request with the first matching version.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, b := range d.bindings {
		if b.Spec.Matches(r) {
			b.Handler.ServeHTTP(w, r)
			return
		}
	}
	// Unreachable: the terminal default binding matches everything.
}
