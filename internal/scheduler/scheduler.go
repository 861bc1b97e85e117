// Package scheduler implements the ToolScheduler state machine: the
// validating → scheduled → awaitingApproval → executing → terminal
// pipeline, confirmation handoff, concurrent execution, and the
// completion sweep. Grounded directly on core/scheduler.py — this is a
// close translation of schedule(), _attempt_execution_of_scheduled_calls,
// handle_confirmation_response, _check_and_notify_completion, and
// _set_status.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/tool"
	"github.com/dbrheo/agentcore/internal/toolcall"
)

// UpdateListener is notified with a snapshot of the scheduler's ToolCall
// list after every transition.
type UpdateListener func(calls []*toolcall.ToolCall)

// CompletionCallback is invoked exactly once per batch, when every call in
// it has reached a terminal state and none is awaitingApproval or
// executing. It receives the completed batch in original request order.
type CompletionCallback func(completed []*toolcall.ToolCall)

// Logger is the minimal interface the scheduler needs for debug output —
// a printf-style variant of tools.DebugLogger (without IsDebugEnabled)
// rather than a package-global logger.
type Logger interface {
	LogDebug(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) LogDebug(string, ...any) {}

// completionWaitCap is the debug safety net polling ceiling from spec
// §4.6/§5, not a correctness bound. Per the Open Question decision it
// logs and continues rather than escalating to a hard error.
const completionWaitCap = 30 * time.Second

// Scheduler drives a batch of ToolCalls through the state machine.
// Scheduler exclusively owns the ToolCall list and its mutations.
type Scheduler struct {
	registry *registry.Registry
	onDone   CompletionCallback
	logger   Logger
	metrics  *Metrics

	mu       sync.Mutex
	toolCalls []*toolcall.ToolCall
	running   bool

	confirmWaiters map[string]chan confirmSignal
}

type confirmSignal struct {
	outcome tool.ConfirmationOutcome
	payload map[string]any
}

// New creates a Scheduler bound to reg, invoking onDone after every batch
// completes. A nil logger uses a no-op logger. metrics may be nil, in
// which case tool-call outcomes are not instrumented.
func New(reg *registry.Registry, onDone CompletionCallback, logger Logger, metrics *Metrics) *Scheduler {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Scheduler{
		registry:       reg,
		onDone:         onDone,
		logger:         logger,
		metrics:        metrics,
		confirmWaiters: map[string]chan confirmSignal{},
	}
}

// Schedule accepts a batch of requests. Precondition: the scheduler is not
// currently running (no call in executing or awaitingApproval); violating
// this fails fast with an error rather than silently queuing.
func (s *Scheduler) Schedule(ctx context.Context, requests []toolcall.Request, signal *abort.Signal, onUpdate UpdateListener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler: schedule called while a batch is already running")
	}
	if len(requests) == 0 {
		s.mu.Unlock()
		s.checkAndNotifyCompletion(onUpdate)
		return nil
	}
	s.running = true

	for _, req := range requests {
		t, ok := s.registry.Get(req.Name)
		if !ok {
			call := toolcall.New(req, nil)
			call.Status = toolcall.StatusError
			call.Response = tool.ErrorResult(fmt.Sprintf("Tool %s not found", req.Name))
			call.DurationMs = 0
			s.toolCalls = append(s.toolCalls, call)
			continue
		}
		s.toolCalls = append(s.toolCalls, toolcall.New(req, t))
	}
	s.mu.Unlock()
	s.notify(onUpdate)

	if err := s.validateScheduledCalls(ctx, signal, onUpdate); err != nil {
		return err
	}
	return s.attemptExecutionOfScheduledCalls(ctx, signal, onUpdate)
}

// validateScheduledCalls runs shouldConfirmExecute for every call still in
// validating, moving each to awaitingApproval, scheduled, or error.
func (s *Scheduler) validateScheduledCalls(ctx context.Context, signal *abort.Signal, onUpdate UpdateListener) error {
	s.mu.Lock()
	pending := make([]*toolcall.ToolCall, 0)
	for _, c := range s.toolCalls {
		if c.Status == toolcall.StatusValidating {
			pending = append(pending, c)
		}
	}
	s.mu.Unlock()

	for _, c := range pending {
		details, err := c.Tool.ShouldConfirmExecute(ctx, c.Request.Args, signal)
		if err != nil {
			s.transition(c, toolcall.StatusError, tool.ErrorResult(err.Error()))
			s.notify(onUpdate)
			continue
		}
		if details != nil {
			s.mu.Lock()
			c.Status = toolcall.StatusAwaitingApproval
			c.ConfirmationDetails = details
			s.mu.Unlock()
		} else {
			s.mu.Lock()
			c.Status = toolcall.StatusScheduled
			s.mu.Unlock()
		}
		s.notify(onUpdate)
	}

	s.checkAndNotifyCompletion(onUpdate)
	return nil
}

// attemptExecutionOfScheduledCalls launches every call currently in
// scheduled concurrently via an errgroup, the Go analogue of
// asyncio.gather, and waits for all of them to reach a terminal state.
func (s *Scheduler) attemptExecutionOfScheduledCalls(ctx context.Context, signal *abort.Signal, onUpdate UpdateListener) error {
	s.mu.Lock()
	toRun := make([]*toolcall.ToolCall, 0)
	for _, c := range s.toolCalls {
		if c.Status == toolcall.StatusScheduled {
			toRun = append(toRun, c)
		}
	}
	s.mu.Unlock()

	if len(toRun) == 0 {
		s.checkAndNotifyCompletion(onUpdate)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range toRun {
		call := c
		s.mu.Lock()
		call.Status = toolcall.StatusExecuting
		s.mu.Unlock()
		s.notify(onUpdate)

		g.Go(func() error {
			s.runOne(gctx, call, signal, onUpdate)
			return nil
		})
	}
	_ = g.Wait()

	s.checkAndNotifyCompletion(onUpdate)
	return nil
}

func (s *Scheduler) runOne(ctx context.Context, call *toolcall.ToolCall, signal *abort.Signal, onUpdate UpdateListener) {
	updater := func(chunk string) {
		s.mu.Lock()
		call.LiveOutput += chunk
		s.mu.Unlock()
	}

	result, err := safeExecute(ctx, call.Tool, call.Request.Args, signal, updater)

	if signal.IsAborted() && err == nil && (result == nil || result.Error == "") {
		s.transition(call, toolcall.StatusCancelled, tool.ErrorResult("cancelled"))
		s.notify(onUpdate)
		return
	}
	if err != nil {
		s.transition(call, toolcall.StatusError, tool.ErrorResult(err.Error()))
		s.notify(onUpdate)
		return
	}
	if result != nil && result.Error != "" {
		s.transition(call, toolcall.StatusError, result)
		s.notify(onUpdate)
		return
	}
	s.transition(call, toolcall.StatusSuccess, result)
	s.notify(onUpdate)
}

// safeExecute normalizes a tool that returns a non-nil error vs one that
// returns a Result carrying result.Error — the scheduler treats both the
// same way (spec §4.1).
func safeExecute(ctx context.Context, t tool.Tool, args map[string]any, signal *abort.Signal, update tool.OutputUpdater) (result *tool.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return t.Execute(ctx, args, signal, update)
}

// HandleConfirmationResponse resolves an awaitingApproval call. Outcomes:
// cancel or an already-aborted signal → cancelled; modifyWithEditor with a
// payload merges into request.args then → scheduled; proceedOnce /
// proceedAlways* → scheduled (trust-scope bookkeeping is the host's
// concern, via whatever ShouldConfirmExecute consults next time).
func (s *Scheduler) HandleConfirmationResponse(ctx context.Context, callID string, outcome tool.ConfirmationOutcome, signal *abort.Signal, payload map[string]any, onUpdate UpdateListener) error {
	s.mu.Lock()
	var call *toolcall.ToolCall
	for _, c := range s.toolCalls {
		if c.Request.CallID == callID && c.Status == toolcall.StatusAwaitingApproval {
			call = c
			break
		}
	}
	s.mu.Unlock()
	if call == nil {
		return fmt.Errorf("scheduler: no awaitingApproval call with id %s", callID)
	}

	if outcome == tool.OutcomeCancel || signal.IsAborted() {
		s.transition(call, toolcall.StatusCancelled, tool.ErrorResult("User cancelled the operation"))
		s.notify(onUpdate)
		s.checkAndNotifyCompletion(onUpdate)
		return nil
	}

	if outcome == tool.OutcomeModifyWithEditor && payload != nil {
		s.mu.Lock()
		if call.Request.Args == nil {
			call.Request.Args = map[string]any{}
		}
		for k, v := range payload {
			call.Request.Args[k] = v
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	call.Status = toolcall.StatusScheduled
	s.mu.Unlock()
	s.notify(onUpdate)

	return s.attemptExecutionOfScheduledCalls(ctx, signal, onUpdate)
}

func (s *Scheduler) transition(call *toolcall.ToolCall, status toolcall.Status, result *tool.Result) {
	s.mu.Lock()
	call.Status = status
	call.Response = result
	elapsed := time.Since(call.StartTime)
	call.DurationMs = elapsed.Milliseconds()
	s.mu.Unlock()

	if status.IsTerminal() {
		s.metrics.observe(call.Request.Name, status, elapsed)
	}
}

func (s *Scheduler) notify(onUpdate UpdateListener) {
	if onUpdate == nil {
		return
	}
	s.mu.Lock()
	snapshot := append([]*toolcall.ToolCall(nil), s.toolCalls...)
	s.mu.Unlock()
	onUpdate(snapshot)
}

// checkAndNotifyCompletion is the completion sweep: it fires after every
// transition. It clears toolCalls ONLY when all calls are terminal AND
// none is awaitingApproval AND none is executing.
func (s *Scheduler) checkAndNotifyCompletion(onUpdate UpdateListener) {
	s.mu.Lock()
	if len(s.toolCalls) == 0 {
		s.running = false
		s.mu.Unlock()
		return
	}
	for _, c := range s.toolCalls {
		if !c.Status.IsTerminal() {
			s.mu.Unlock()
			return
		}
	}
	completed := s.toolCalls
	s.toolCalls = nil
	s.running = false
	s.mu.Unlock()

	if s.onDone != nil {
		s.onDone(completed)
	}
	s.notify(onUpdate)
}

// WaitIdle blocks, with the 30s debug polling ceiling, until the scheduler
// is not running. It logs and returns if the ceiling is exceeded rather
// than erroring, matching the original's debug-safety-net behavior.
func (s *Scheduler) WaitIdle(ctx context.Context) {
	deadline := time.Now().Add(completionWaitCap)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if !running {
			return
		}
		if time.Now().After(deadline) {
			s.logger.LogDebug("scheduler: WaitIdle exceeded %s cap, continuing", completionWaitCap)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
