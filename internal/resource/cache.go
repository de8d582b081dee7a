package resource

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/parser"
	"github.com/rs/zerolog"
)

// Opener resolves a resource name to its byte source
type Opener func(name string) (parser.ByteSource, error)

// DirOpener opens resource names as files relative to root
func DirOpener(root string) Opener {
	return func(name string) (parser.ByteSource, error) {
		src, err := parser.OpenFile(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// Cache creates each (type, name) resource once and hands out the same instance afterwards.
// The cache lock is held while a resource opens and loads, so Load must not call back
// into the same Cache.
type Cache struct {
	registry *Registry
	open     Opener
	logger   zerolog.Logger

	mu        sync.Mutex
	resources map[string]map[string]Resource
}

// NewCache creates a Cache that builds resources with registry and reads them through open
func NewCache(registry *Registry, open Opener, logger zerolog.Logger) *Cache {
	return &Cache{
		registry:  registry,
		open:      open,
		logger:    logger,
		resources: make(map[string]map[string]Resource),
	}
}

// Get returns the cached resource or creates and loads it. A resource that fails to
// load is not cached.
func (c *Cache) Get(typeName, name string) (Resource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res, ok := c.resources[typeName][name]; ok {
		return res, nil
	}

	res, err := c.registry.Create(typeName, name)
	if err != nil {
		c.logger.Error().Str("type", typeName).Str("name", name).Err(err).Msg("unable to create resource")
		return nil, err
	}

	src, err := c.open(name)
	if err != nil {
		c.logger.Error().Str("type", typeName).Str("name", name).Err(err).Msg("unable to open resource")
		return nil, errors.NewInputError(fmt.Sprintf("unable to open %s '%s'", typeName, name), err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := res.Load(src); err != nil {
		c.logger.Error().Str("type", typeName).Str("name", name).Err(err).Msg("unable to load resource")
		return nil, err
	}

	if c.resources[typeName] == nil {
		c.resources[typeName] = make(map[string]Resource)
	}
	c.resources[typeName][name] = res
	c.logger.Debug().Str("type", typeName).Str("name", name).Msg("resource loaded")
	return res, nil
}

// Len returns the number of cached resources
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, byName := range c.resources {
		n += len(byName)
	}
	return n
}

// Clear drops every cached resource
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = make(map[string]map[string]Resource)
}
