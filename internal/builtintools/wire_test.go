package builtintools

import (
	"context"
	"testing"

	"github.com/dbrheo/agentcore/internal/mcp"
	"github.com/dbrheo/agentcore/internal/registry"
)

func TestConnectRegistersFilesystemTools(t *testing.T) {
	reg := registry.New()
	mgr := mcp.NewManager()
	trust := mcp.NewTrustStore()
	builtinRegistry := NewRegistry()

	err := Connect(context.Background(), reg, mgr, trust, builtinRegistry, "builtin-fs", "fs", FactoryOptions{AllowedDirectories: []string{t.TempDir()}}, true)
	if err != nil {
		t.Fatal(err)
	}

	status, _ := mgr.GetStatus("builtin-fs")
	if status != mcp.StatusConnected {
		t.Fatalf("expected connected status, got %s", status)
	}

	tools := mgr.GetServerTools("builtin-fs")
	if len(tools) == 0 {
		t.Fatal("expected the filesystem server to expose at least one tool")
	}

	registered := reg.ByTag("mcp:builtin-fs")
	if len(registered) != len(tools) {
		t.Fatalf("expected %d registered tools tagged mcp:builtin-fs, got %d", len(tools), len(registered))
	}
}

func TestConnectRegistersBashAndFetchTools(t *testing.T) {
	reg := registry.New()
	mgr := mcp.NewManager()
	trust := mcp.NewTrustStore()
	builtinRegistry := NewRegistry()

	if err := Connect(context.Background(), reg, mgr, trust, builtinRegistry, "builtin-bash", "bash", FactoryOptions{}, true); err != nil {
		t.Fatal(err)
	}
	if err := Connect(context.Background(), reg, mgr, trust, builtinRegistry, "builtin-fetch", "fetch", FactoryOptions{}, true); err != nil {
		t.Fatal(err)
	}

	if tools := mgr.GetServerTools("builtin-bash"); len(tools) != 1 || tools[0].Name != "bash_exec" {
		t.Fatalf("expected one bash_exec tool, got %v", tools)
	}
	if tools := mgr.GetServerTools("builtin-fetch"); len(tools) != 1 || tools[0].Name != "fetch" {
		t.Fatalf("expected one fetch tool, got %v", tools)
	}
}

func TestCreateUnknownBuiltinErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("does-not-exist", FactoryOptions{}); err == nil {
		t.Fatal("expected an error for an unknown builtin name")
	}
}
