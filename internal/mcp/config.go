// Package mcp implements the MCP client lifecycle: per-server connection
// state machines, tool discovery, and the MCPToolAdapter that exposes a
// discovered tool through the tool.Tool interface. Grounded on
// tools/mcp/mcp_client.py, mcp_config.py, and mcp_adapter.py from the
// original implementation; transport wiring grounded on the teacher's
// real use of github.com/mark3labs/mcp-go/client.
package mcp

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Transport selects exactly one of the five supported MCP transports.
type Transport string

const (
	TransportStdio     Transport = "stdio"
	TransportSSE       Transport = "sse"
	TransportHTTP      Transport = "http"
	TransportWebSocket Transport = "websocket"
	TransportInProcess Transport = "in-process"
)

// ServerConfig describes one MCP server. Exactly one transport's fields
// are meaningful, selected by Transport.
type ServerConfig struct {
	Transport Transport

	// stdio
	Command string
	Args    []string
	Env     map[string]string
	Cwd     string

	// sse / http / websocket
	URL     string
	Headers map[string]string

	// in-process: a builtin server run in the same process, skipping the
	// subprocess/socket transport entirely. Grounded on internal/builtin's
	// filesystem server, which has no reason to pay fork/exec cost when
	// it links into the binary already.
	InProcessServer *mcpserver.MCPServer

	Timeout        time.Duration
	Trust          bool
	IncludeTools   []string
	ExcludeTools   []string
	Description    string
	Enabled        bool
}

const defaultCallTimeout = 10 * time.Minute

// Substitute expands ${env://VAR}, ${env://VAR:-default}, ${VAR}, and
// ${VAR:-default} references in s against the process environment.
// Grounded on the teacher's internal/config substitution.go convention.
var substitutionPattern = regexp.MustCompile(`\$\{(?:env://)?([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func Substitute(s string) string {
	return substitutionPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := substitutionPattern.FindStringSubmatch(match)
		name := groups[1]
		def := groups[3]
		if name == "" {
			name = groups[4]
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	})
}

// Substituted applies Substitute to every string field a server
// config carries.
func (c ServerConfig) Substituted() ServerConfig {
	out := c
	out.Command = Substitute(c.Command)
	out.URL = Substitute(c.URL)
	out.Cwd = Substitute(c.Cwd)
	if len(c.Args) > 0 {
		out.Args = make([]string, len(c.Args))
		for i, a := range c.Args {
			out.Args[i] = Substitute(a)
		}
	}
	if len(c.Env) > 0 {
		out.Env = make(map[string]string, len(c.Env))
		for k, v := range c.Env {
			out.Env[k] = Substitute(v)
		}
	}
	if len(c.Headers) > 0 {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = Substitute(v)
		}
	}
	if out.Timeout == 0 {
		out.Timeout = defaultCallTimeout
	}
	return out
}

// Validate checks exactly one transport's required fields are present.
func (c ServerConfig) Validate() error {
	switch c.Transport {
	case TransportStdio:
		if strings.TrimSpace(c.Command) == "" {
			return fmt.Errorf("mcp: stdio server requires command")
		}
	case TransportSSE, TransportHTTP, TransportWebSocket:
		if strings.TrimSpace(c.URL) == "" {
			return fmt.Errorf("mcp: %s server requires url", c.Transport)
		}
	case TransportInProcess:
		if c.InProcessServer == nil {
			return fmt.Errorf("mcp: in-process server requires InProcessServer")
		}
	default:
		return fmt.Errorf("mcp: unknown transport %q", c.Transport)
	}
	return nil
}

// allowsTool applies IncludeTools/ExcludeTools filters: if IncludeTools is
// non-empty, only listed names pass; ExcludeTools always removes a match.
func (c ServerConfig) allowsTool(name string) bool {
	if len(c.IncludeTools) > 0 {
		included := false
		for _, n := range c.IncludeTools {
			if n == name {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, n := range c.ExcludeTools {
		if n == name {
			return false
		}
	}
	return true
}
