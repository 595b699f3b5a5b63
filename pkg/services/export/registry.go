package export

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/area-atlas/pkg/models/domain"
)

// Sink writes a report into an output directory and returns the written paths.
type Sink interface {
	Name() string
	Write(ctx context.Context, dir, base string, report *domain.Report) ([]string, error)
}

// SinkFactory is a function type that creates a Sink
type SinkFactory func() (Sink, error)

// Registry manages output sink factories
type Registry interface {
	// Register adds a new sink factory
	Register(name string, factory SinkFactory) error
	// Create instantiates the named sink
	Create(name string) (Sink, error)
	// ListSinks returns the registered sink names, sorted
	ListSinks() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SinkFactory
}

// NewRegistry creates an empty sink registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]SinkFactory),
	}
}

// NewDefaultRegistry returns a registry holding the xlsx and charts sinks.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register("xlsx", func() (Sink, error) { return NewXLSXRenderer(), nil })
	_ = r.Register("charts", func() (Sink, error) { return NewChartRenderer(), nil })
	return r
}

func (r *registry) Register(name string, factory SinkFactory) error {
	if name == "" {
		return fmt.Errorf("sink name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("sink %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string) (Sink, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("sink %q is not registered", name)
	}

	return factory()
}

func (r *registry) ListSinks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
