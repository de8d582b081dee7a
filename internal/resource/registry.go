// Package resource creates named resources through a registry of factories and
// decodes the descriptors they are loaded from.
package resource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/parser"
)

// Resource is anything loadable from a named byte source
type Resource interface {
	Name() string
	TypeName() string
	Load(src parser.ByteSource) error
}

// Factory creates an empty resource with the given name
type Factory func(name string) Resource

// Registry maps resource type names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Standard returns a Registry with the built-in resource types. Descriptors are read with p.
func Standard(p *parser.Parser) *Registry {
	r := NewRegistry()
	r.Register(TextureTypeName, TextureFactory(p))
	return r
}

// Register adds or replaces the factory for typeName
func (r *Registry) Register(typeName string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = factory
}

// Create makes a new, unloaded resource of typeName
func (r *Registry) Create(typeName, name string) (Resource, error) {
	r.mu.RLock()
	factory, ok := r.factories[typeName]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NewDescriptorError(
			fmt.Sprintf("unable to create %s '%s'", typeName, name),
			errors.ErrUnknownResourceType,
		)
	}
	return factory(name), nil
}

// Types returns the registered type names in sorted order
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
