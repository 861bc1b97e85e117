// Package registry implements the ToolRegistry: a name-indexed store of
// Tool instances with capability and free-form tag secondary indices,
// supplying the sanitized function-declaration list the LLM consumes.
// Grounded on the original tools/registry.py almost line for line, with
// the DB-specific capability enum generalized to spec's generic tag set.
package registry

import (
	"sort"
	"sync"

	"github.com/dbrheo/agentcore/internal/sanitize"
	"github.com/dbrheo/agentcore/internal/tool"
)

// Info is the registry's bookkeeping record for one tool.
type Info struct {
	Tool         tool.Tool
	Capabilities map[tool.Capability]bool
	Tags         map[string]bool
	Priority     int
	Metadata     map[string]any
}

// FunctionDeclaration is the LLM-facing shape for one registered tool.
type FunctionDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Registry holds Tool instances indexed by name, capability, and tag. It
// belongs to a Client, not to a process-global singleton. Safe for
// concurrent reads; writes are serialized by mu.
type Registry struct {
	mu sync.RWMutex

	byName        map[string]*Info
	byCapability  map[tool.Capability]map[string]bool
	byTag         map[string]map[string]bool
	insertionOrder []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName:       map[string]*Info{},
		byCapability: map[tool.Capability]map[string]bool{},
		byTag:        map[string]map[string]bool{},
	}
}

// Register adds tool t to all indices. Registering a name that already
// exists overwrites the prior entry but preserves insertion order at the
// original position.
func (r *Registry) Register(t tool.Tool, caps []tool.Capability, tags []string, priority int, metadata map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	capSet := make(map[tool.Capability]bool, len(caps))
	for _, c := range caps {
		capSet[c] = true
	}
	tagSet := make(map[string]bool, len(tags))
	for _, tg := range tags {
		tagSet[tg] = true
	}

	if _, exists := r.byName[name]; !exists {
		r.insertionOrder = append(r.insertionOrder, name)
	}
	r.byName[name] = &Info{Tool: t, Capabilities: capSet, Tags: tagSet, Priority: priority, Metadata: metadata}

	for c := range capSet {
		if r.byCapability[c] == nil {
			r.byCapability[c] = map[string]bool{}
		}
		r.byCapability[c][name] = true
	}
	for tg := range tagSet {
		if r.byTag[tg] == nil {
			r.byTag[tg] = map[string]bool{}
		}
		r.byTag[tg][name] = true
	}
}

// Unregister removes name from every index. Used when an MCP server
// disconnects and its tools go away.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.byName[name]
	if !ok {
		return
	}
	for c := range info.Capabilities {
		delete(r.byCapability[c], name)
		if len(r.byCapability[c]) == 0 {
			delete(r.byCapability, c)
		}
	}
	for tg := range info.Tags {
		delete(r.byTag[tg], name)
		if len(r.byTag[tg]) == 0 {
			delete(r.byTag, tg)
		}
	}
	delete(r.byName, name)
	for i, n := range r.insertionOrder {
		if n == name {
			r.insertionOrder = append(r.insertionOrder[:i], r.insertionOrder[i+1:]...)
			break
		}
	}
}

// Get performs an O(1) lookup by name.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return info.Tool, true
}

// GetInfo returns the full bookkeeping record for name.
func (r *Registry) GetInfo(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byName[name]
	return info, ok
}

// ByCapability returns tools carrying capability c, sorted by priority
// descending, excluding any whose priority is below minPriority.
func (r *Registry) ByCapability(c tool.Capability, minPriority int) []tool.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.byCapability[c]
	return r.sortedByPriority(names, minPriority)
}

// ByCapabilities returns the union (matchAll=false) or intersection
// (matchAll=true) of tools carrying the given capabilities, sorted by
// priority descending.
func (r *Registry) ByCapabilities(caps []tool.Capability, matchAll bool) []tool.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(caps) == 0 {
		return nil
	}
	result := map[string]bool{}
	for i, c := range caps {
		names := r.byCapability[c]
		if i == 0 {
			for n := range names {
				result[n] = true
			}
			continue
		}
		if matchAll {
			for n := range result {
				if !names[n] {
					delete(result, n)
				}
			}
		} else {
			for n := range names {
				result[n] = true
			}
		}
	}
	return r.sortedByPriority(result, -1<<31)
}

// ByTag returns tools carrying the free-form tag, sorted by priority
// descending.
func (r *Registry) ByTag(tag string) []tool.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedByPriority(r.byTag[tag], -1<<31)
}

// Search returns tools whose name or description contains query
// (ASCII case-insensitive substring, a simple text search),
// optionally further filtered by capability and tag.
func (r *Registry) Search(query string, cap *tool.Capability, tag *string) []tool.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []tool.Tool
	for _, name := range r.insertionOrder {
		info := r.byName[name]
		if cap != nil && !info.Capabilities[*cap] {
			continue
		}
		if tag != nil && !info.Tags[*tag] {
			continue
		}
		if containsFold(info.Tool.Name(), query) || containsFold(info.Tool.Description(), query) {
			out = append(out, info.Tool)
		}
	}
	return out
}

// CapabilitySummary returns the count of registered tools per capability.
func (r *Registry) CapabilitySummary() map[tool.Capability]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[tool.Capability]int{}
	for c, names := range r.byCapability {
		out[c] = len(names)
	}
	return out
}

// FunctionDeclarations returns the sanitized, priority-sorted list of
// tool declarations for LLM consumption.
func (r *Registry) FunctionDeclarations() []FunctionDeclaration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.byName))
	for name, info := range r.byName {
		entries = append(entries, entry{name, info.Priority})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	out := make([]FunctionDeclaration, 0, len(entries))
	for _, e := range entries {
		t := r.byName[e.name].Tool
		schema := t.ParameterSchema()
		out = append(out, FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  sanitize.Schema(cloneSchema(schema)),
		})
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

func (r *Registry) sortedByPriority(names map[string]bool, minPriority int) []tool.Tool {
	type entry struct {
		tool     tool.Tool
		priority int
	}
	entries := make([]entry, 0, len(names))
	for n := range names {
		info := r.byName[n]
		if info.Priority < minPriority {
			continue
		}
		entries = append(entries, entry{info.Tool, info.Priority})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})
	out := make([]tool.Tool, len(entries))
	for i, e := range entries {
		out[i] = e.tool
	}
	return out
}

func containsFold(s, substr string) bool {
	return len(substr) == 0 || indexFold(s, substr) >= 0
}

func indexFold(s, substr string) int {
	return indexOf(toLower(s), toLower(substr))
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

func cloneSchema(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if m, ok := v.(map[string]any); ok {
			out[k] = cloneSchema(m)
		} else if list, ok := v.([]any); ok {
			cl := make([]any, len(list))
			for i, item := range list {
				if m, ok := item.(map[string]any); ok {
					cl[i] = cloneSchema(m)
				} else {
					cl[i] = item
				}
			}
			out[k] = cl
		} else {
			out[k] = v
		}
	}
	return out
}
