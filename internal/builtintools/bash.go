package builtintools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// bashArgs is reflected into the bash_exec tool's InputSchema via
// reflectSchema; the struct is never constructed, only reflected.
type bashArgs struct {
	Command        string `json:"command" jsonschema:"required,description=Shell command to execute"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"description=Command timeout in seconds (default 30)"`
}

const defaultBashTimeout = 30 * time.Second
const maxBashOutput = 64 * 1024

var bashSchema = reflectSchema(&bashArgs{})

// newBashServer builds an in-process MCP server exposing a single
// bash_exec tool that runs a command through /bin/sh -c. Grounded on
// internal/builtin/registry.go's dropped bash builtin (the teacher's
// factory only carried the registration shape, not an implementation);
// this is a from-scratch implementation in the same in-process-MCP-server
// idiom as newFilesystemServer.
func newBashServer(opts FactoryOptions) (*mcpserver.MCPServer, error) {
	srv := mcpserver.NewMCPServer("agentcore-bash", "0.1.0")

	tool := mcpsdk.NewTool("bash_exec",
		mcpsdk.WithDescription("Execute a shell command and return its combined stdout/stderr"),
		mcpsdk.WithString("command", mcpsdk.Required(), mcpsdk.Description("Shell command to execute")),
		mcpsdk.WithNumber("timeout_seconds", mcpsdk.Description("Command timeout in seconds (default 30)")),
	)

	srv.AddTool(tool, func(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		args := req.GetArguments()
		if missing := missingRequired(bashSchema, args); len(missing) > 0 {
			return mcpsdk.NewToolResultError(fmt.Sprintf("missing required argument(s): %v", missing)), nil
		}

		command, _ := args["command"].(string)
		timeout := defaultBashTimeout
		if secs, ok := args["timeout_seconds"].(float64); ok && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}

		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", command)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		runErr := cmd.Run()
		text := out.String()
		if len(text) > maxBashOutput {
			text = text[:maxBashOutput] + "\n...output truncated..."
		}

		if runErr != nil {
			return mcpsdk.NewToolResultError(fmt.Sprintf("%s\nexit error: %v", text, runErr)), nil
		}
		return mcpsdk.NewToolResultText(text), nil
	})

	return srv, nil
}
