package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dbrheo/agentcore/internal/mcp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadMergesWorkspaceAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, ".agentcore.yaml"), `
mcpServers:
  files:
    command: "mcp-filesystem-server"
    args: ["/tmp"]
  remote:
    url: "https://example.com/mcp"
`)

	t.Setenv("AGENTCORE_MCP_SERVERS", `{"files":{"enabled":false},"extra":{"url":"https://extra.example.com"}}`)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cfg.MCPServers["files"]; ok {
		t.Fatal("files should have been removed by the env layer's enabled:false")
	}
	if cfg.MCPServers["remote"].URL != "https://example.com/mcp" {
		t.Fatalf("remote server missing or wrong url: %+v", cfg.MCPServers["remote"])
	}
	if cfg.MCPServers["extra"].URL != "https://extra.example.com" {
		t.Fatalf("extra server not merged from env layer: %+v", cfg.MCPServers["extra"])
	}
}

func TestLoadRuntimeLayerWinsOverFileLayers(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, ".agentcore.json"), `{"mcpServers":{"files":{"command":"from-file"}}}`)

	cfg, err := Load(Options{
		RuntimeServers: map[string]mcp.ServerConfig{
			"files": {Transport: mcp.TransportStdio, Command: "from-runtime"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MCPServers["files"].Command != "from-runtime" {
		t.Fatalf("runtime layer should win, got %+v", cfg.MCPServers["files"])
	}
}

func TestLoadSubstitutesEnvReferences(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AGENTCORE_TEST_TOKEN", "secret-value")
	writeFile(t, filepath.Join(dir, ".agentcore.yaml"), `
mcpServers:
  auth:
    url: "https://example.com"
    headers:
      Authorization: "Bearer ${AGENTCORE_TEST_TOKEN}"
`)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.MCPServers["auth"].Headers["Authorization"]; got != "Bearer secret-value" {
		t.Fatalf("expected substituted header, got %q", got)
	}
}

func TestLoadMissingLayersAreNotErrors(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("missing layers should not error: %v", err)
	}
	if len(cfg.MCPServers) != 0 {
		t.Fatalf("expected no servers, got %+v", cfg.MCPServers)
	}
}

func TestWorkspaceConfigFileOverride(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	writeFile(t, custom, `
mcpServers:
  files:
    command: "mcp-filesystem-server"
`)

	cfg, err := Load(Options{WorkspaceConfigFile: custom})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MCPServers["files"].Command != "mcp-filesystem-server" {
		t.Fatalf("expected server from overridden workspace file, got %+v", cfg.MCPServers)
	}
}
