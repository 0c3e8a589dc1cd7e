package graph

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Resource is one entry of the compiled deployment template.
type Resource struct {
	Type       string
	Properties map[string]interface{}
}

// Graph is the in-memory mapping of resource name to resource definition.
// It is the only mutable state shared by the per-task synthesis branches,
// written through key-scoped Put calls that never collide.
type Graph struct {
	mu        sync.Mutex
	resources map[string]Resource
}

// New returns a new empty Graph
func New() *Graph {
	return &Graph{
		resources: make(map[string]Resource),
	}
}

// Put adds the resource under the given name.
// A name can only be written once, a second write is an error.
func (g *Graph) Put(name string, r Resource) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.resources[name]; exists {
		return errors.Errorf("resource %s already exists", name)
	}
	g.resources[name] = r
	return nil
}

// Get returns the resource stored under the given name.
func (g *Graph) Get(name string) (Resource, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[name]
	return r, ok
}

// Len returns the number of resources in the graph.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.resources)
}

// Names returns the sorted resource names.
func (g *Graph) Names() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.resources))
	for n := range g.resources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resources returns a copy of the resource map.
func (g *Graph) Resources() map[string]Resource {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]Resource, len(g.resources))
	for n, r := range g.resources {
		out[n] = r
	}
	return out
}

// MarshalJSON serializes the graph as a template document for the external compiler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Resources map[string]Resource
	}{Resources: g.Resources()})
}
