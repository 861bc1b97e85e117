package mcp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbrheo/agentcore/internal/tools"
)

func TestSubstituteEnvVar(t *testing.T) {
	t.Setenv("AGENTCORE_TEST_VAR", "hello")
	got := Substitute("${env://AGENTCORE_TEST_VAR}")
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstituteDefault(t *testing.T) {
	got := Substitute("${AGENTCORE_MISSING_VAR:-fallback}")
	if got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestServerConfigValidate(t *testing.T) {
	cfg := ServerConfig{Transport: TransportStdio}
	if err := cfg.Validate(); err == nil {
		t.Fatal("stdio config without command should fail validation")
	}
	cfg.Command = "echo"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid stdio config should pass: %v", err)
	}
}

func TestAllowsToolIncludeExclude(t *testing.T) {
	cfg := ServerConfig{IncludeTools: []string{"a", "b"}}
	if !cfg.allowsTool("a") {
		t.Error("a should be included")
	}
	if cfg.allowsTool("c") {
		t.Error("c should not be included when IncludeTools is set and excludes it")
	}

	cfg2 := ServerConfig{ExcludeTools: []string{"x"}}
	if cfg2.allowsTool("x") {
		t.Error("x should be excluded")
	}
	if !cfg2.allowsTool("y") {
		t.Error("y should be allowed, not excluded")
	}
}

func TestTrustStore(t *testing.T) {
	ts := NewTrustStore()
	if ts.IsTrusted("srv", "tool") {
		t.Fatal("fresh trust store should trust nothing")
	}
	ts.TrustTool("srv", "tool")
	if !ts.IsTrusted("srv", "tool") {
		t.Fatal("expected tool-level trust to stick")
	}
	if ts.IsTrusted("srv", "other") {
		t.Fatal("tool-level trust should not leak to other tools")
	}
	ts.TrustServer("srv2")
	if !ts.IsTrusted("srv2", "anything") {
		t.Fatal("server-level trust should cover every tool on that server")
	}
}

func TestGetStatusDefaultsDisconnected(t *testing.T) {
	m := NewManager()
	status, err := m.GetStatus("nonexistent")
	if status != StatusDisconnected || err != nil {
		t.Fatalf("unknown server should report disconnected/nil, got %v/%v", status, err)
	}
}

func TestSetDebugLoggerBuffersStatusTransitions(t *testing.T) {
	m := NewManager()
	logger := tools.NewBufferedDebugLogger(true)
	m.SetDebugLogger(logger)

	m.setStatus("srv", StatusConnecting, nil)
	m.setStatus("srv", StatusConnected, nil)

	messages := logger.GetMessages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 buffered debug lines, got %d: %v", len(messages), messages)
	}
	if logger.IsDebugEnabled() != true {
		t.Fatal("expected logger to report enabled")
	}
}

func TestSetDebugLoggerDisabledIsNoop(t *testing.T) {
	m := NewManager()
	logger := tools.NewBufferedDebugLogger(false)
	m.SetDebugLogger(logger)

	m.setStatus("srv", StatusConnecting, nil)
	if messages := logger.GetMessages(); len(messages) != 0 {
		t.Fatalf("expected no buffered messages when disabled, got %v", messages)
	}
}

// TestConcurrentStatusUpdatesDoNotRace fires setStatus for one server
// from many goroutines at once (the shape DiscoverAllServers/DisconnectAll
// produce in production) and asserts, after they all finish, that the
// server's final status is Connected.
func TestConcurrentStatusUpdatesDoNotRace(t *testing.T) {
	m := NewManager()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "srv"
			m.setStatus(name, StatusConnecting, nil)
			m.setStatus(name, StatusConnected, nil)
		}(i)
	}
	wg.Wait()

	status, err := m.GetStatus("srv")
	require.NoError(t, err)
	require.Equal(t, StatusConnected, status)
}

func TestStatusListenerNotifiedOnTransition(t *testing.T) {
	m := NewManager()
	var seen []Status
	m.AddStatusListener(func(name string, status Status, err error) {
		seen = append(seen, status)
	})
	m.setStatus("srv", StatusConnecting, nil)
	m.setStatus("srv", StatusConnected, nil)
	if len(seen) != 2 || seen[0] != StatusConnecting || seen[1] != StatusConnected {
		t.Fatalf("unexpected status sequence: %v", seen)
	}
}
