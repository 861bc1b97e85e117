package registry

import (
	"context"
	"testing"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/tool"
)

type fakeTool struct {
	name string
	desc string
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) DisplayName() string { return f.name }
func (f *fakeTool) Description() string { return f.desc }
func (f *fakeTool) ParameterSchema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
func (f *fakeTool) ValidateParams(map[string]any) error { return nil }
func (f *fakeTool) GetDescription(map[string]any) string { return f.desc }
func (f *fakeTool) ShouldConfirmExecute(context.Context, map[string]any, *abort.Signal) (*tool.ConfirmationDetails, error) {
	return nil, nil
}
func (f *fakeTool) Execute(context.Context, map[string]any, *abort.Signal, tool.OutputUpdater) (*tool.Result, error) {
	return tool.TextResult("ok"), nil
}
func (f *fakeTool) Capabilities() []tool.Capability { return []tool.Capability{tool.CapabilityQuery} }

func TestRegisterAndGet(t *testing.T) {
	r := New()
	r.Register(&fakeTool{name: "now", desc: "current time"}, []tool.Capability{tool.CapabilityQuery}, []string{"time"}, 10, nil)

	got, ok := r.Get("now")
	if !ok || got.Name() != "now" {
		t.Fatal("expected to find registered tool")
	}
}

func TestUnregisterRemovesFromAllIndices(t *testing.T) {
	r := New()
	r.Register(&fakeTool{name: "now", desc: "current time"}, []tool.Capability{tool.CapabilityQuery}, []string{"time"}, 10, nil)
	r.Unregister("now")

	if _, ok := r.Get("now"); ok {
		t.Fatal("tool should be gone after Unregister")
	}
	if len(r.ByCapability(tool.CapabilityQuery, -1<<31)) != 0 {
		t.Fatal("capability index should be empty after Unregister")
	}
	if len(r.ByTag("time")) != 0 {
		t.Fatal("tag index should be empty after Unregister")
	}
	if r.Len() != 0 {
		t.Fatal("registry should be empty after Unregister")
	}
}

func TestFunctionDeclarationsSortedByPriorityDescending(t *testing.T) {
	r := New()
	r.Register(&fakeTool{name: "low", desc: "x"}, nil, nil, 1, nil)
	r.Register(&fakeTool{name: "high", desc: "y"}, nil, nil, 100, nil)

	decls := r.FunctionDeclarations()
	if len(decls) != 2 || decls[0].Name != "high" {
		t.Fatalf("expected high-priority tool first, got %+v", decls)
	}
}

func TestByCapabilitiesIntersectionAndUnion(t *testing.T) {
	r := New()
	r.Register(&fakeTool{name: "a"}, []tool.Capability{tool.CapabilityQuery, tool.CapabilityRead}, nil, 1, nil)
	r.Register(&fakeTool{name: "b"}, []tool.Capability{tool.CapabilityQuery}, nil, 1, nil)

	union := r.ByCapabilities([]tool.Capability{tool.CapabilityQuery, tool.CapabilityRead}, false)
	if len(union) != 2 {
		t.Fatalf("union should match both tools, got %d", len(union))
	}
	intersect := r.ByCapabilities([]tool.Capability{tool.CapabilityQuery, tool.CapabilityRead}, true)
	if len(intersect) != 1 || intersect[0].Name() != "a" {
		t.Fatalf("intersection should match only 'a', got %+v", intersect)
	}
}

func TestSanitizationAppliedToFunctionDeclarations(t *testing.T) {
	r := New()
	r.Register(&tricky{}, nil, nil, 0, nil)
	decls := r.FunctionDeclarations()
	props := decls[0].Parameters["properties"].(map[string]any)
	field := props["x"].(map[string]any)
	if _, ok := field["default"]; ok {
		t.Fatal("registry should sanitize schemas before exposing declarations")
	}
}

type tricky struct{ fakeTool }

func (t *tricky) Name() string { return "tricky" }
func (t *tricky) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "string", "default": "y"},
		},
	}
}
