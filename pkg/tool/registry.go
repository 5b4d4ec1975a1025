package tool

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Registry is the process-wide catalog of tools, keyed by unique id.
// Constructed once at startup, read-mostly thereafter.
type Registry struct {
	tools   map[string]*Tool
	schemas map[string]*gojsonschema.Schema
	order   []string
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// Register inserts a tool, overwriting any existing tool with the same
// id. Overwrites are deliberate last-wins (they support hot-reloading
// tool definitions during development) and logged as warnings, not
// errors.
func (r *Registry) Register(t Tool) error {
	if err := validateDefinition(t); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	schema, err := generateSchema(t)
	if err != nil {
		return fmt.Errorf("failed to generate options schema for %s: %w", t.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.ID]; exists {
		log.Warn().Str("tool", t.ID).Msg("Tool already registered, overwriting")
	} else {
		r.order = append(r.order, t.ID)
	}
	r.tools[t.ID] = &t
	r.schemas[t.ID] = schema

	log.Debug().Str("tool", t.ID).Str("category", string(t.Category)).Msg("Tool registered")

	return nil
}

// Get returns the tool with the given id, or nil when not registered.
func (r *Registry) Get(id string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tools[id]
}

// schema returns the compiled options schema for a registered tool.
func (r *Registry) schema(id string) *gojsonschema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.schemas[id]
}

// All returns every registered tool in insertion order. Callers must
// treat the result as a set; the ordering is not contractual.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.order))
	for _, id := range r.order {
		tools = append(tools, r.tools[id])
	}
	return tools
}

// ByCategory returns all tools with an exact category match.
func (r *Registry) ByCategory(category Category) []*Tool {
	all := r.All()
	filtered := make([]*Tool, 0, len(all))
	for _, t := range all {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Search returns tools whose id, title, description, category, or
// keywords contain the trimmed, lowercased query. An empty or
// whitespace-only query is "no filter" and returns all tools.
func (r *Registry) Search(query string) []*Tool {
	q := strings.ToLower(strings.TrimSpace(query))
	all := r.All()
	if q == "" {
		return all
	}

	matched := make([]*Tool, 0, len(all))
	for _, t := range all {
		searchable := strings.ToLower(strings.Join(append([]string{
			t.ID, t.Title, t.Description, string(t.Category),
		}, t.Keywords...), " "))
		if strings.Contains(searchable, q) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}
