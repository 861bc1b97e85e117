package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dbrheo/agentcore/internal/abort"
	"github.com/dbrheo/agentcore/internal/toolcall"
	"github.com/dbrheo/agentcore/internal/turn"
)

var scriptQuiet bool

// scriptFrontmatter is the YAML block a script file may open with,
// overriding the flags that would otherwise come from the command line.
type scriptFrontmatter struct {
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system-prompt"`
	MaxTurns     int    `yaml:"max-turns"`
	Debug        bool   `yaml:"debug"`
}

var scriptCmd = &cobra.Command{
	Use:   "script <script-file>",
	Short: "Run a single prompt from a script file, non-interactively",
	Long: `Run a script file containing optional YAML frontmatter and a prompt body,
non-interactively: the turn loop runs to completion (or --max-turns) and
the final assistant response is printed to stdout. Useful for exercising
the agent from tests or CI without a terminal.

Example script file:
---
model: "anthropic:claude-sonnet-4-20250514"
max-turns: 10
---
List the files in ${directory} and tell me about them.

Variables in the script are substituted using ${variable} syntax, supplied
with --args:variable value:

  agentcore script myscript.txt --args:directory /tmp`,
	Args: cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		variables := parseCustomVariables(args[0])
		return runScriptCommand(cmd.Context(), args[0], variables)
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringVar(&systemPromptFile, "system-prompt", "", "system prompt text or path to a file containing it")
	scriptCmd.Flags().StringVarP(&modelFlag, "model", "m", "anthropic:claude-sonnet-4-20250514", "model to use (format: provider:model)")
	scriptCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	scriptCmd.Flags().IntVar(&maxTurns, "max-turns", defaultMaxTurns, "maximum number of model turns (0 for the default)")
	scriptCmd.Flags().BoolVar(&scriptQuiet, "quiet", false, "suppress tool-call narration, print only the final response")
	scriptCmd.Flags().StringVar(&anthropicAPIKey, "anthropic-api-key", "", "Anthropic API key")
	scriptCmd.Flags().StringVar(&openaiAPIKey, "openai-api-key", "", "OpenAI API key")
}

// parseCustomVariables extracts --args:name value pairs that appear after
// the script file argument; cobra's FParseErrWhitelist lets these through
// as unrecognized flags instead of failing the parse.
func parseCustomVariables(scriptFile string) map[string]string {
	variables := make(map[string]string)
	args := os.Args[1:]

	scriptPos := -1
	for i, arg := range args {
		if arg == scriptFile {
			scriptPos = i
			break
		}
	}
	if scriptPos == -1 {
		return variables
	}

	for i := scriptPos + 1; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--args:") {
			continue
		}
		varName := strings.TrimPrefix(arg, "--args:")
		if varName == "" {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			variables[varName] = args[i+1]
			i++
		} else {
			variables[varName] = ""
		}
	}
	return variables
}

func runScriptCommand(ctx context.Context, scriptFile string, variables map[string]string) error {
	frontmatter, prompt, err := parseScriptFile(scriptFile, variables)
	if err != nil {
		return fmt.Errorf("parsing script file: %w", err)
	}
	if prompt == "" {
		return fmt.Errorf("script file %s has no prompt body", scriptFile)
	}

	if frontmatter.Model != "" {
		modelFlag = frontmatter.Model
	}
	if frontmatter.SystemPrompt != "" {
		systemPromptFile = frontmatter.SystemPrompt
	}
	if frontmatter.MaxTurns != 0 {
		maxTurns = frontmatter.MaxTurns
	}
	if frontmatter.Debug {
		debugMode = true
	}

	rt, err := buildRuntime(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.mcpMgr.DisconnectAll()

	signal := abort.New(ctx)
	promptID := fmt.Sprintf("script-%d", time.Now().UnixNano())
	turns := maxTurns
	if turns <= 0 {
		turns = defaultMaxTurns
	}

	var finalText strings.Builder
	for ev := range rt.client.SendMessageStream(ctx, prompt, signal, promptID, turns) {
		switch {
		case ev.Err != nil:
			return ev.Err
		case ev.Kind == turn.EventContent && ev.Text != "":
			finalText.WriteString(ev.Text)
		case ev.ToolCallsUpdate != nil:
			for _, call := range ev.ToolCallsUpdate {
				if call.Status == toolcall.StatusAwaitingApproval {
					return fmt.Errorf("script: tool %q requires interactive approval; run it in an interactive session or grant trust via config", call.Request.Name)
				}
				if call.Status.IsTerminal() && !scriptQuiet {
					fmt.Fprintf(os.Stderr, "[tool] %s -> %s\n", call.Request.Name, call.Status)
				}
			}
		case ev.MaxTurnsExceeded:
			fmt.Fprintln(os.Stderr, "warning: max turns exceeded")
		}
	}

	fmt.Println(strings.TrimSpace(finalText.String()))
	return nil
}

// parseScriptFile reads scriptFile, substitutes ${variable} references,
// and splits the result into optional YAML frontmatter (delimited by ---
// lines) and a prompt body.
func parseScriptFile(filename string, variables map[string]string) (scriptFrontmatter, string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return scriptFrontmatter{}, "", err
	}

	content := substituteVariables(string(data), variables)
	lines := strings.Split(content, "\n")

	start := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		start = 1
	}

	var yamlLines, promptLines []string
	inFrontmatter := false
	foundFrontmatter := false
	frontmatterEnd := -1

	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "---" && !inFrontmatter && !foundFrontmatter {
			inFrontmatter = true
			foundFrontmatter = true
			continue
		}
		if trimmed == "---" && inFrontmatter {
			inFrontmatter = false
			frontmatterEnd = i + 1
			continue
		}
		if inFrontmatter {
			yamlLines = append(yamlLines, lines[i])
		}
	}

	if foundFrontmatter && frontmatterEnd != -1 && frontmatterEnd <= len(lines) {
		promptLines = lines[frontmatterEnd:]
	} else {
		promptLines = lines[start:]
	}

	var fm scriptFrontmatter
	if len(yamlLines) > 0 {
		if err := yaml.Unmarshal([]byte(strings.Join(yamlLines, "\n")), &fm); err != nil {
			return scriptFrontmatter{}, "", fmt.Errorf("parsing YAML frontmatter: %w", err)
		}
	}

	prompt := strings.TrimSpace(strings.Join(promptLines, "\n"))
	return fm, prompt, nil
}

// substituteVariables replaces ${name} with variables[name], leaving
// unresolved references untouched.
func substituteVariables(content string, variables map[string]string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := variables[name]; ok {
			return value
		}
		return match
	})
}
