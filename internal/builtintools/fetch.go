package builtintools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// fetchArgs is reflected into the fetch tool's InputSchema via
// reflectSchema.
type fetchArgs struct {
	URL string `json:"url" jsonschema:"required,description=URL to fetch over HTTP GET"`
}

const defaultFetchTimeout = 20 * time.Second
const maxFetchBody = 256 * 1024

var fetchSchema = reflectSchema(&fetchArgs{})

// newFetchServer builds an in-process MCP server exposing a single fetch
// tool that performs an HTTP GET and returns the body as text, capped to
// maxFetchBody bytes. Grounded on internal/builtin/registry.go's dropped
// fetch builtin; implemented fresh since the teacher's retrieved slice
// did not carry a fetch server implementation, only the registry shape.
func newFetchServer(opts FactoryOptions) (*mcpserver.MCPServer, error) {
	srv := mcpserver.NewMCPServer("agentcore-fetch", "0.1.0")

	client := &http.Client{Timeout: defaultFetchTimeout}

	tool := mcpsdk.NewTool("fetch",
		mcpsdk.WithDescription("Fetch a URL over HTTP GET and return its body as text"),
		mcpsdk.WithString("url", mcpsdk.Required(), mcpsdk.Description("URL to fetch")),
	)

	srv.AddTool(tool, func(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		args := req.GetArguments()
		if missing := missingRequired(fetchSchema, args); len(missing) > 0 {
			return mcpsdk.NewToolResultError(fmt.Sprintf("missing required argument(s): %v", missing)), nil
		}

		url, _ := args["url"].(string)
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return mcpsdk.NewToolResultError(fmt.Sprintf("building request: %v", err)), nil
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcpsdk.NewToolResultError(fmt.Sprintf("fetching %s: %v", url, err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
		if err != nil {
			return mcpsdk.NewToolResultError(fmt.Sprintf("reading response body: %v", err)), nil
		}

		text := string(body)
		if resp.StatusCode >= 400 {
			return mcpsdk.NewToolResultError(fmt.Sprintf("http %d: %s", resp.StatusCode, text)), nil
		}
		return mcpsdk.NewToolResultText(text), nil
	})

	return srv, nil
}
