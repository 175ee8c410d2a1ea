package qbell

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrBackendUnavailable means the named backend could not be resolved or initialized.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrExecutionFailure means a backend accepted a circuit but the run did not complete.
	ErrExecutionFailure = errors.New("execution failure")
)

const (
	QasmSimulator = "qasm_simulator"
	AerSimulator  = "aer_simulator"
)

// Backend runs a circuit for a number of shots and returns the aggregated counts.
type Backend interface {
	Name() string
	Run(ctx context.Context, circuit *Circuit, shots int) (Counts, error)
}

// Provider resolves a Backend by name.
type Provider interface {
	GetBackend(name string) (Backend, error)
}

// BackendFactory builds a fresh Backend each time it is resolved.
type BackendFactory func() (Backend, error)

/*
Registry is the default Provider. It is filled at startup and only read
afterwards, so concurrent requests can resolve backends freely.
*/
type Registry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

// NewRegistry returns a registry with the built-in state-vector simulator
// available under both of its names.
func NewRegistry(opts ...SimulatorOption) *Registry {
	registry := &Registry{
		factories: make(map[string]BackendFactory),
	}

	simulator := func() (Backend, error) {
		return NewSimulator(opts...), nil
	}

	registry.Register(QasmSimulator, simulator)
	registry.Register(AerSimulator, simulator)

	return registry
}

func (r *Registry) Register(name string, factory BackendFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (r *Registry) GetBackend(name string) (Backend, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrBackendUnavailable, "no backend named %q", name)
	}

	backend, err := factory()
	if err != nil {
		return nil, errors.Wrapf(ErrBackendUnavailable, "init %s: %v", name, err)
	}

	if backend == nil {
		return nil, errors.Wrapf(ErrBackendUnavailable, "backend %q returned nothing", name)
	}

	return backend, nil
}
