package scheduler

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/tool"
	"github.com/dbrheo/agentcore/internal/toolcall"
)

func TestMetricsObservesTerminalOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	st := &stubTool{name: "now", execResult: tool.TextResult("done")}
	r := newReg(st)
	sched := New(r, nil, nil, metrics)

	err := sched.Schedule(context.Background(), []toolcall.Request{{CallID: "c1", Name: "now"}}, abort.Background(), nil)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "agentcore_scheduler_tool_calls_total" {
			found = true
			require.NotEmpty(t, f.GetMetric())
		}
	}
	require.True(t, found, "expected agentcore_scheduler_tool_calls_total to be registered and observed")
}
