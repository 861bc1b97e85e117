// Package builtintools provides in-process MCP servers registered the
// same way an external MCP server is: through internal/mcp.Manager and
// internal/mcp.ToolAdapter, over an in-process transport instead of a
// subprocess or socket. Adapted from internal/builtin/registry.go's
// BuiltinServerWrapper/Registry shape (factory-per-name, CreateServer by
// string key); fs, bash, and fetch are implemented here, matching
// SPEC_FULL.md's module map. The teacher's todo and http builtins have
// no grounding beyond the registration shape and are dropped — see
// DESIGN.md.
package builtintools

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-filesystem-server/filesystemserver"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// FactoryOptions configures a builtin server at creation time.
type FactoryOptions struct {
	// AllowedDirectories scopes the filesystem server's reads/writes.
	// Empty defaults to the current working directory.
	AllowedDirectories []string
}

// Factory builds one named builtin MCP server.
type Factory func(opts FactoryOptions) (*mcpserver.MCPServer, error)

// Registry holds every builtin server's factory, keyed by name.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a Registry with every builtin server registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.register("fs", newFilesystemServer)
	r.register("bash", newBashServer)
	r.register("fetch", newFetchServer)
	return r
}

func (r *Registry) register(name string, f Factory) {
	r.factories[name] = f
}

// Create builds the named builtin server. Returns an error if name is
// unknown or the underlying server fails to construct.
func (r *Registry) Create(name string, opts FactoryOptions) (*mcpserver.MCPServer, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("builtintools: unknown builtin server %q", name)
	}
	return factory(opts)
}

// Names lists every registered builtin server name. Order is not
// guaranteed.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

func newFilesystemServer(opts FactoryOptions) (*mcpserver.MCPServer, error) {
	allowedDirs := opts.AllowedDirectories
	if len(allowedDirs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("builtintools: getting working directory: %w", err)
		}
		allowedDirs = []string{cwd}
	}

	srv, err := filesystemserver.NewFilesystemServer(allowedDirs)
	if err != nil {
		return nil, fmt.Errorf("builtintools: creating filesystem server: %w", err)
	}
	return srv, nil
}
