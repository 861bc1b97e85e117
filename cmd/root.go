package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/auth"
	"github.com/dbrheo/agentcore/internal/builtintools"
	"github.com/dbrheo/agentcore/internal/chat"
	"github.com/dbrheo/agentcore/internal/client"
	"github.com/dbrheo/agentcore/internal/config"
	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/hooks"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/mcp"
	"github.com/dbrheo/agentcore/internal/registry"
	"github.com/dbrheo/agentcore/internal/scheduler"
	"github.com/dbrheo/agentcore/internal/session"
	"github.com/dbrheo/agentcore/internal/tool"
	"github.com/dbrheo/agentcore/internal/toolcall"
	"github.com/dbrheo/agentcore/internal/turn"
	"github.com/dbrheo/agentcore/internal/ui"
)

var (
	configFile       string
	modelFlag        string
	systemPromptFile string
	maxTurns         int
	debugMode        bool
	compactMode      bool
	sessionFile      string
	hooksConfigFile  string
	anthropicAPIKey  string
	openaiAPIKey     string
)

const defaultMaxTurns = 50

var rootCmd = &cobra.Command{
	Use:   "agentcore",
	Short: "Chat with AI models through a tool-using agent runtime",
	Long: `agentcore is a terminal agent host: it drives a turn loop against an
LLM provider, schedules the tool calls the model requests (built-in
filesystem/bash/fetch tools plus any configured MCP servers), and
streams the result to your terminal.

Available models can be specified using the --model flag:
- Anthropic Claude: anthropic:claude-sonnet-4-20250514
- OpenAI: openai:gpt-4o

Example:
  agentcore -m anthropic:claude-sonnet-4-20250514
  agentcore -m openai:gpt-4o --compact`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// Execute runs the root command, wrapping it with fang for styled
// help/error output.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "workspace config file (default: probe .agentcore.json/.agentcore.yaml/agentcore.yaml)")
	flags.StringVarP(&modelFlag, "model", "m", "anthropic:claude-sonnet-4-20250514", "model to use (format: provider:model)")
	flags.StringVar(&systemPromptFile, "system-prompt", "", "system prompt text or path to a file containing it")
	flags.IntVar(&maxTurns, "max-turns", defaultMaxTurns, "maximum number of model turns per message (0 for the default)")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.BoolVar(&compactMode, "compact", false, "use compact single-line message rendering")
	flags.StringVar(&sessionFile, "session", "", "path to a session transcript file to resume and persist to")
	flags.StringVar(&hooksConfigFile, "hooks-config", "", "path to a lifecycle hooks YAML config file")
	flags.StringVar(&anthropicAPIKey, "anthropic-api-key", "", "Anthropic API key (overrides stored credentials and $ANTHROPIC_API_KEY)")
	flags.StringVar(&openaiAPIKey, "openai-api-key", "", "OpenAI API key (overrides $OPENAI_API_KEY)")
}

// resolveSystemPrompt treats the flag value as a literal prompt unless it
// names an existing file, in which case the file's contents are used.
func resolveSystemPrompt(flagValue string) (string, error) {
	if flagValue == "" {
		return "You are a helpful assistant with access to tools. Use them when they help answer the user's request.", nil
	}
	if data, err := os.ReadFile(flagValue); err == nil {
		return string(data), nil
	}
	return flagValue, nil
}

// createProvider builds the llmprovider.Provider named by modelString
// (provider:model), resolving credentials the way cmd/auth.go's stored
// credentials and the provider-specific env vars do.
func createProvider(modelString string) (llmprovider.Provider, error) {
	parts := strings.SplitN(modelString, ":", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid model format, expected provider:model, got %q", modelString)
	}
	providerName, model := parts[0], parts[1]

	switch providerName {
	case "anthropic":
		apiKey, _, err := auth.GetAnthropicAPIKey(anthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("resolving Anthropic credentials: %w", err)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no Anthropic API key available: run %q, pass --anthropic-api-key, or set ANTHROPIC_API_KEY", "agentcore auth login anthropic")
		}
		return llmprovider.NewAnthropicProvider(apiKey, model), nil

	case "openai":
		apiKey := openaiAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no OpenAI API key available: pass --openai-api-key or set OPENAI_API_KEY")
		}
		return llmprovider.NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// schedulerLogger adapts the UI's debug logger to scheduler.Logger, so
// the same CLI-backed sink observes both MCP connection chatter and
// scheduler-level tool events.
type schedulerLogger struct {
	l *ui.CLIDebugLogger
}

func (s schedulerLogger) LogDebug(format string, args ...any) {
	if s.l != nil && s.l.IsDebugEnabled() {
		s.l.LogDebug(fmt.Sprintf(format, args...))
	}
}

// runtime bundles everything runInteractive and runScriptCommand both
// need, so cmd/script.go can assemble the same wiring around a
// non-interactive loop.
type runtime struct {
	client   *client.Client
	registry *registry.Registry
	mcpMgr   *mcp.Manager
	trust    *mcp.TrustStore
	sessMgr  *session.Manager
	provider llmprovider.Provider
	modelStr string
}

// buildRuntime wires config, the tool registry, builtin + configured MCP
// servers, the provider, chat/session state, and the Client orchestrator.
func buildRuntime(ctx context.Context, debugLogger *ui.CLIDebugLogger) (*runtime, error) {
	cfg, err := config.Load(config.Options{WorkspaceConfigFile: configFile, RuntimeModel: modelFlag})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reg := registry.New()
	mgr := mcp.NewManager()
	if debugLogger != nil {
		mgr.SetDebugLogger(debugLogger)
	}
	trust := mcp.NewTrustStore()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	builtinRegistry := builtintools.NewRegistry()
	if err := builtintools.Connect(ctx, reg, mgr, trust, builtinRegistry, "builtin-fs", "fs",
		builtintools.FactoryOptions{AllowedDirectories: []string{cwd}}, true); err != nil {
		return nil, fmt.Errorf("connecting builtin filesystem tools: %w", err)
	}
	if err := builtintools.Connect(ctx, reg, mgr, trust, builtinRegistry, "builtin-bash", "bash",
		builtintools.FactoryOptions{}, false); err != nil {
		return nil, fmt.Errorf("connecting builtin bash tool: %w", err)
	}
	if err := builtintools.Connect(ctx, reg, mgr, trust, builtinRegistry, "builtin-fetch", "fetch",
		builtintools.FactoryOptions{}, true); err != nil {
		return nil, fmt.Errorf("connecting builtin fetch tool: %w", err)
	}

	for name, serverCfg := range cfg.MCPServers {
		if err := mgr.AddServer(ctx, reg, trust, name, serverCfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not connect MCP server %q: %v\n", name, err)
		}
	}

	modelStr := cfg.Model
	provider, err := createProvider(modelStr)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := resolveSystemPrompt(systemPromptFile)
	if err != nil {
		return nil, fmt.Errorf("resolving system prompt: %w", err)
	}
	if cfg.SystemPrompt != "" && systemPromptFile == "" {
		systemPrompt = cfg.SystemPrompt
	}
	c := chat.New(systemPrompt, nil, nil)

	var sessMgr *session.Manager
	if sessionFile != "" {
		if sess, err := session.LoadFromFile(sessionFile); err == nil {
			sessMgr = session.NewManagerWithSession(sess, sessionFile)
			for _, cc := range sessMgr.GetHistory() {
				c.AppendHistory(cc)
			}
		} else {
			sessMgr = session.NewManager(sessionFile)
		}
		_ = sessMgr.SetMetadata(session.Metadata{Provider: provider.Name(), Model: modelStr})
	}

	var hookExecutor *hooks.Executor
	if hooksConfigFile != "" {
		hookCfg, err := hooks.LoadHooksConfig(hooksConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading hooks config: %w", err)
		}
		hookExecutor = hooks.NewExecutor(hookCfg, sessionFile, sessionFile)
	}

	metrics := scheduler.NewMetrics(prometheus.DefaultRegisterer)
	cl := client.New(c, reg, provider, schedulerLogger{debugLogger}, noAutonomousContinuation, hookExecutor, sessMgr, metrics)

	return &runtime{
		client:   cl,
		registry: reg,
		mcpMgr:   mgr,
		trust:    trust,
		sessMgr:  sessMgr,
		provider: provider,
		modelStr: modelStr,
	}, nil
}

// noAutonomousContinuation always waits for the next user message instead
// of letting the model keep talking unprompted, matching the teacher's
// turn-based REPL rather than an autonomous-continuation mode.
func noAutonomousContinuation(ctx context.Context, c *chat.Chat) bool { return false }

func runInteractive(ctx context.Context) error {
	cli, err := ui.NewCLI(debugMode, compactMode)
	if err != nil {
		return fmt.Errorf("initializing terminal UI: %w", err)
	}
	debugLogger := ui.NewCLIDebugLogger(cli)

	rt, err := buildRuntime(ctx, debugLogger)
	if err != nil {
		return err
	}
	defer rt.mcpMgr.DisconnectAll()

	cli.SetModelName(rt.modelStr)
	cli.SetUsageTracker(ui.NewUsageTracker(modelPricing(rt.modelStr), rt.provider.Name(), 80, false))

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	_ = config.Watch(watchCtx, config.Options{WorkspaceConfigFile: configFile}, func(cfg *config.Config, err error) {
		if err != nil {
			debugLogger.LogDebug(fmt.Sprintf("config reload failed: %v", err))
			return
		}
		debugLogger.LogDebug("workspace config changed; restart to pick up new MCP servers")
	})

	cli.DisplayInfo(fmt.Sprintf("Connected. Model: %s", rt.modelStr))

	for {
		prompt, err := cli.GetPrompt()
		if err != nil {
			return nil
		}
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			continue
		}

		history := historyForCLI(rt.sessMgr)
		if cli.IsSlashCommand(prompt) {
			result := cli.HandleSlashCommand(prompt, serverNames(rt.mcpMgr), toolNames(rt.registry), history)
			if result.Handled {
				continue
			}
		}

		cli.DisplayUserMessage(prompt)
		if err := runOneTurn(ctx, cli, rt, prompt); err != nil {
			cli.DisplayError(err)
		}
		cli.DisplayUsageAfterResponse()
	}
}

func historyForCLI(sessMgr *session.Manager) []content.Content {
	if sessMgr == nil {
		return nil
	}
	return sessMgr.GetHistory()
}

func runOneTurn(ctx context.Context, cli *ui.CLI, rt *runtime, prompt string) error {
	signal := abort.New(ctx)
	promptID := fmt.Sprintf("prompt-%d", time.Now().UnixNano())

	cli.StartStreamingMessage(rt.modelStr)
	var responseText strings.Builder
	streamEnded := false
	endStream := func() {
		if !streamEnded {
			cli.EndStreamingMessage()
			streamEnded = true
		}
	}
	defer endStream()

	turns := maxTurns
	if turns <= 0 {
		turns = defaultMaxTurns
	}

	for ev := range rt.client.SendMessageStream(ctx, prompt, signal, promptID, turns) {
		switch {
		case ev.Err != nil:
			endStream()
			return ev.Err
		case ev.Kind == turn.EventContent && ev.Text != "":
			responseText.WriteString(ev.Text)
			cli.UpdateStreamingMessage(responseText.String())
		case ev.ToolCallsUpdate != nil:
			endStream()
			handleToolCallsUpdate(ctx, cli, rt, signal, ev.ToolCallsUpdate)
			cli.StartStreamingMessage(rt.modelStr)
			streamEnded = false
		case ev.MaxTurnsExceeded:
			cli.DisplayInfo("Maximum turns exceeded for this message; stopping.")
		}
	}
	endStream()

	cli.UpdateUsage(prompt, responseText.String())
	return nil
}

// handleToolCallsUpdate renders in-flight tool activity and, for any call
// newly awaiting approval, runs the standalone ToolApprovalInput bubbletea
// program the same way CLI.GetPrompt runs huh.Form.Run() directly rather
// than embedding the whole session in one Bubble Tea app.
func handleToolCallsUpdate(ctx context.Context, cli *ui.CLI, rt *runtime, signal *abort.Signal, calls []*toolcall.ToolCall) {
	for _, call := range calls {
		switch call.Status {
		case toolcall.StatusExecuting, toolcall.StatusScheduled, toolcall.StatusValidating:
			cli.DisplayToolCallMessage(call.Request.Name, formatArgs(call.Request.Args))

		case toolcall.StatusAwaitingApproval:
			approval := ui.NewToolApprovalInput(call.ConfirmationDetails, 80)
			program := tea.NewProgram(approval)
			if _, err := program.Run(); err != nil {
				cli.DisplayError(fmt.Errorf("tool approval prompt failed: %w", err))
				_ = rt.client.HandleConfirmationResponse(ctx, call.Request.CallID, tool.OutcomeCancel, signal, nil)
				continue
			}
			outcome := approval.Outcome()
			if adapter, ok := call.Tool.(*mcp.ToolAdapter); ok {
				adapter.ResolveOutcome(outcome)
			}
			if err := rt.client.HandleConfirmationResponse(ctx, call.Request.CallID, outcome, signal, nil); err != nil {
				cli.DisplayError(err)
			}

		case toolcall.StatusSuccess:
			text := ""
			if call.Response != nil {
				text = call.Response.ReturnDisplay
			}
			cli.DisplayToolMessage(call.Request.Name, formatArgs(call.Request.Args), text, false)

		case toolcall.StatusError:
			text := ""
			if call.Response != nil {
				text = call.Response.ReturnDisplay
			}
			cli.DisplayToolMessage(call.Request.Name, formatArgs(call.Request.Args), text, true)

		case toolcall.StatusCancelled:
			cli.DisplayToolMessage(call.Request.Name, formatArgs(call.Request.Args), "cancelled", true)
		}
	}
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	first := true
	for k, v := range args {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %v", k, v)
	}
	b.WriteString("}")
	return b.String()
}

// toolNames/serverNames feed the /tools and /servers slash commands.
func toolNames(reg *registry.Registry) []string {
	decls := reg.FunctionDeclarations()
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	return names
}

func serverNames(mgr *mcp.Manager) []string {
	statuses := mgr.GetAllStatuses()
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	return names
}

// modelPricing returns host-known pricing for well-known models, or a
// zero value (cost display suppressed) for anything else.
func modelPricing(modelStr string) ui.ModelPricing {
	switch {
	case strings.Contains(modelStr, "claude"):
		readPrice, writePrice := 0.30, 3.75
		return ui.ModelPricing{ContextLimit: 200_000, InputPerMillion: 3.0, OutputPerMillion: 15.0, CacheReadPerMillion: &readPrice, CacheWritePerMillion: &writePrice}
	case strings.Contains(modelStr, "gpt-4o"):
		return ui.ModelPricing{ContextLimit: 128_000, InputPerMillion: 2.5, OutputPerMillion: 10.0}
	default:
		return ui.ModelPricing{}
	}
}
