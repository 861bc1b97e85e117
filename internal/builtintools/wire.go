package builtintools

import (
	"context"
	"time"

	"github.com/dbrheo/agentcore/internal/mcp"
	"github.com/dbrheo/agentcore/internal/registry"
)

// Connect creates the named builtin server and connects it into mgr over
// an in-process transport, discovering its tools and registering
// mcp.ToolAdapters into reg exactly as an external MCP server would.
func Connect(ctx context.Context, reg *registry.Registry, mgr *mcp.Manager, trust *mcp.TrustStore, builtinRegistry *Registry, serverName, builtinName string, opts FactoryOptions, cfgTrust bool) error {
	srv, err := builtinRegistry.Create(builtinName, opts)
	if err != nil {
		return err
	}

	cfg := mcp.ServerConfig{
		Transport:       mcp.TransportInProcess,
		InProcessServer: srv,
		Timeout:         30 * time.Second,
		Trust:           cfgTrust,
		Enabled:         true,
	}
	return mgr.AddServer(ctx, reg, trust, serverName, cfg)
}
