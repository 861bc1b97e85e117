package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/tool"
	"github.com/dbrheo/agentcore/internal/toolcall"
)

type stubTool struct {
	name           string
	confirmDetails *tool.ConfirmationDetails
	confirmErr     error
	execResult     *tool.Result
	execErr        error
	execDelay      time.Duration
	respectAbort   bool
}

func (s *stubTool) Name() string                         { return s.name }
func (s *stubTool) DisplayName() string                  { return s.name }
func (s *stubTool) Description() string                  { return s.name }
func (s *stubTool) ParameterSchema() map[string]any       { return map[string]any{"type": "object"} }
func (s *stubTool) ValidateParams(map[string]any) error  { return nil }
func (s *stubTool) GetDescription(map[string]any) string { return s.name }
func (s *stubTool) Capabilities() []tool.Capability       { return nil }

func (s *stubTool) ShouldConfirmExecute(context.Context, map[string]any, *abort.Signal) (*tool.ConfirmationDetails, error) {
	return s.confirmDetails, s.confirmErr
}

func (s *stubTool) Execute(ctx context.Context, args map[string]any, signal *abort.Signal, update tool.OutputUpdater) (*tool.Result, error) {
	if s.execDelay > 0 {
		select {
		case <-time.After(s.execDelay):
		case <-signal.Done():
			if s.respectAbort {
				return nil, nil
			}
		}
	}
	return s.execResult, s.execErr
}

func newReg(tools ...tool.Tool) *registry.Registry {
	r := registry.New()
	for _, t := range tools {
		r.Register(t, nil, nil, 0, nil)
	}
	return r
}

func TestScheduleToolNotFound(t *testing.T) {
	r := newReg()
	var completed []*toolcall.ToolCall
	sched := New(r, func(c []*toolcall.ToolCall) { completed = c }, nil, nil)

	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "missing"}}, abort.Background(), nil)
	if err != nil {
		t.Fatalf("schedule should not error on a missing tool: %v", err)
	}
	if len(completed) != 1 || completed[0].Status != toolcall.StatusError {
		t.Fatalf("expected one error call, got %+v", completed)
	}
}

func TestScheduleAutoApproveSuccess(t *testing.T) {
	st := &stubTool{name: "now", execResult: tool.TextResult("2024-01-01T00:00:00Z")}
	r := newReg(st)
	var completed []*toolcall.ToolCall
	sched := New(r, func(c []*toolcall.ToolCall) { completed = c }, nil, nil)

	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "now"}}, abort.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 1 || completed[0].Status != toolcall.StatusSuccess {
		t.Fatalf("expected success, got %+v", completed)
	}
	if completed[0].Request.CallID != "c1" {
		t.Fatal("callId mismatch")
	}
}

func TestConfirmationProceed(t *testing.T) {
	st := &stubTool{
		name:           "delete_file",
		confirmDetails: &tool.ConfirmationDetails{Type: tool.ConfirmationExec, Title: "delete?"},
		execResult:     tool.TextResult("deleted"),
	}
	r := newReg(st)
	var completed []*toolcall.ToolCall
	var statuses []toolcall.Status
	sched := New(r, func(c []*toolcall.ToolCall) { completed = c }, nil, nil)

	go func() {
		for {
			s, _ := sched.getStatusForTest("c1")
			if s == toolcall.StatusAwaitingApproval {
				_ = sched.HandleConfirmationResponse(context.Background(), "c1", tool.OutcomeProceedOnce, abort.Background(), nil, func(calls []*toolcall.ToolCall) {
					for _, c := range calls {
						if c.Request.CallID == "c1" {
							statuses = append(statuses, c.Status)
						}
					}
				})
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "delete_file"}}, abort.Background(), func(calls []*toolcall.ToolCall) {
		for _, c := range calls {
			if c.Request.CallID == "c1" {
				statuses = append(statuses, c.Status)
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if len(completed) != 1 || completed[0].Status != toolcall.StatusSuccess {
		t.Fatalf("expected success after confirmation, got %+v", completed)
	}
}

func TestConfirmationCancel(t *testing.T) {
	st := &stubTool{
		name:           "delete_file",
		confirmDetails: &tool.ConfirmationDetails{Type: tool.ConfirmationExec, Title: "delete?"},
	}
	r := newReg(st)
	var completed []*toolcall.ToolCall
	sched := New(r, func(c []*toolcall.ToolCall) { completed = c }, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if s, ok := sched.getStatusForTest("c1"); ok && s == toolcall.StatusAwaitingApproval {
				_ = sched.HandleConfirmationResponse(context.Background(), "c1", tool.OutcomeCancel, abort.Background(), nil, nil)
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	_ = sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "delete_file"}}, abort.Background(), nil)
	<-done
	time.Sleep(10 * time.Millisecond)
	if len(completed) != 1 || completed[0].Status != toolcall.StatusCancelled {
		t.Fatalf("expected cancelled, got %+v", completed)
	}
}

func TestConcurrentMixedOutcomes(t *testing.T) {
	ok := &stubTool{name: "ok", execResult: tool.TextResult("done")}
	bad := &stubTool{name: "bad", execErr: errors.New("boom")}
	slow := &stubTool{name: "slow", execDelay: 200 * time.Millisecond, respectAbort: true}
	r := newReg(ok, bad, slow)

	var completed []*toolcall.ToolCall
	calls := 0
	sched := New(r, func(c []*toolcall.ToolCall) { completed = c; calls++ }, nil, nil)

	signal := abort.Background()
	go func() {
		time.Sleep(20 * time.Millisecond)
		signal.Abort("test abort")
	}()

	err := sched.Schedule(context.Background(), []toolcall.Request{
		{CallID: "c1", Name: "ok"},
		{CallID: "c2", Name: "bad"},
		{CallID: "c3", Name: "slow"},
	}, signal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("onAllToolsComplete should fire exactly once, fired %d times", calls)
	}
	if len(completed) != 3 {
		t.Fatalf("expected 3 terminal calls, got %d", len(completed))
	}
	byID := map[string]toolcall.Status{}
	for _, c := range completed {
		byID[c.Request.CallID] = c.Status
	}
	if byID["c1"] != toolcall.StatusSuccess {
		t.Errorf("c1 should succeed, got %v", byID["c1"])
	}
	if byID["c2"] != toolcall.StatusError {
		t.Errorf("c2 should error, got %v", byID["c2"])
	}
	if byID["c3"] != toolcall.StatusCancelled {
		t.Errorf("c3 should be cancelled, got %v", byID["c3"])
	}
}

func TestEmptyBatchNoCallback(t *testing.T) {
	r := newReg()
	calls := 0
	sched := New(r, func(c []*toolcall.ToolCall) { calls++ }, nil, nil)
	if err := sched.Schedule(context.Background(), nil, abort.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatal("empty batch should not invoke onAllToolsComplete")
	}
}

func TestScheduleFailsFastWhileRunning(t *testing.T) {
	slow := &stubTool{name: "slow", execDelay: 100 * time.Millisecond}
	r := newReg(slow)
	sched := New(r, nil, nil, nil)

	go func() { _ = sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "slow"}}, abort.Background(), nil) }()
	time.Sleep(10 * time.Millisecond)
	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c2", Name: "slow"}}, abort.Background(), nil)
	if err == nil {
		t.Fatal("scheduling while already running should fail fast")
	}
}

// TestConcurrentScheduleFailsFastUnderRace uses require.Eventually/require
// instead of the manual sleep-and-poll pattern above: the fail-fast
// rejection and its error content both need to hold under a concurrent
// Schedule call, which a table test can't express as cleanly as a
// fail-fast assertion.
func TestConcurrentScheduleFailsFastUnderRace(t *testing.T) {
	slow := &stubTool{name: "slow", execDelay: 150 * time.Millisecond}
	r := newReg(slow)
	sched := New(r, nil, nil, nil)

	go func() {
		_ = sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "slow"}}, abort.Background(), nil)
	}()

	require.Eventually(t, func() bool {
		_, ok := sched.getStatusForTest("c1")
		return ok
	}, time.Second, time.Millisecond, "c1 should be scheduled")

	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c2", Name: "slow"}}, abort.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already running")
}

// getStatusForTest is a small test-only helper exposing internal state
// without widening the production API surface.
func (s *Scheduler) getStatusForTest(callID string) (toolcall.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.toolCalls {
		if c.Request.CallID == callID {
			return c.Status, true
		}
	}
	return 0, false
}
