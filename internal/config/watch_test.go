package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWorkspaceFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".agentcore.yaml")
	writeFile(t, path, `
mcpServers:
  files:
    command: "v1"
`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	err := Watch(ctx, Options{WorkspaceConfigFile: path}, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, `
mcpServers:
  files:
    command: "v2"
`)

	select {
	case cfg := <-reloaded:
		if cfg.MCPServers["files"].Command != "v2" {
			t.Fatalf("expected reloaded command v2, got %+v", cfg.MCPServers["files"])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workspace config reload")
	}
}

func TestWatchNoWorkspaceFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Watch(ctx, Options{}, func(*Config, error) {
		t.Fatal("onReload should never fire without a workspace config file")
	}); err != nil {
		t.Fatal(err)
	}
}
