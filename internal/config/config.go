// Package config loads agentcore's host and MCP server configuration
// from layered sources, grounded on
// original_source/.../tools/mcp/mcp_config.py's MCPConfig: system, user,
// workspace, environment, and runtime layers, merged per-server-key with
// later layers overriding earlier ones and an explicit "enabled: false"
// removing a server a lower layer already loaded. File parsing uses
// spf13/viper, which auto-detects YAML vs JSON from the file extension;
// ${VAR} substitution reuses internal/mcp.ServerConfig.Substituted.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/dbrheo/agentcore/internal/mcp"
)

// ServerConfig is the file/env wire shape for one MCP server: every field
// optional except whatever the chosen transport requires, mirroring
// MCPServerConfig's dataclass in mcp_config.py. Enabled is a pointer so
// an absent field defaults true while an explicit `enabled: false`
// is distinguishable and removes the server from a lower layer.
type ServerConfig struct {
	Transport string            `yaml:"transport,omitempty" json:"transport,omitempty"`
	Command   string            `yaml:"command,omitempty" json:"command,omitempty"`
	Args      []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env       map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Cwd       string            `yaml:"cwd,omitempty" json:"cwd,omitempty"`

	URL     string            `yaml:"url,omitempty" json:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	TimeoutSeconds int  `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Trust          bool `yaml:"trust,omitempty" json:"trust,omitempty"`

	IncludeTools []string `yaml:"includeTools,omitempty" json:"includeTools,omitempty"`
	ExcludeTools []string `yaml:"excludeTools,omitempty" json:"excludeTools,omitempty"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

func (s ServerConfig) enabled() bool {
	return s.Enabled == nil || *s.Enabled
}

func (s ServerConfig) transport() mcp.Transport {
	if s.Transport != "" {
		return mcp.Transport(s.Transport)
	}
	switch {
	case s.Command != "":
		return mcp.TransportStdio
	case s.URL != "":
		return mcp.TransportHTTP
	default:
		return mcp.TransportStdio
	}
}

// ToMCPConfig converts the file/env wire shape into the exact config
// internal/mcp.Manager.Connect consumes.
func (s ServerConfig) ToMCPConfig() mcp.ServerConfig {
	cfg := mcp.ServerConfig{
		Transport:    s.transport(),
		Command:      s.Command,
		Args:         s.Args,
		Env:          s.Env,
		Cwd:          s.Cwd,
		URL:          s.URL,
		Headers:      s.Headers,
		Trust:        s.Trust,
		IncludeTools: s.IncludeTools,
		ExcludeTools: s.ExcludeTools,
		Description:  s.Description,
		Enabled:      s.enabled(),
	}
	if s.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
	}
	return cfg.Substituted()
}

// Config is the fully merged, ready-to-use host configuration.
type Config struct {
	MCPServers map[string]mcp.ServerConfig

	Model        string
	SystemPrompt string
	MaxTurns     int
	Debug        bool
}

// Options controls where Load looks and what it layers on top of the
// files it finds. RuntimeServers is the highest-priority layer —
// programmatic overrides a host passes in directly (e.g. `--mcp-server`
// repeated flags), never persisted.
type Options struct {
	// WorkspaceConfigFile overrides the workspace-layer file path
	// (normally discovered by probing WorkspaceConfigNames in the
	// current directory). Set from cmd/root.go's --config flag.
	WorkspaceConfigFile string

	RuntimeServers map[string]mcp.ServerConfig
	RuntimeModel   string

	EnvPrefix string // defaults to "AGENTCORE" (AGENTCORE_MCP_SERVERS, AGENTCORE_MODEL, ...)
}

// WorkspaceConfigNames are tried, in order, in the current working
// directory when Options.WorkspaceConfigFile is empty. Grounded on
// mcp_config.py's own fallback list (.dbrheo.json, .dbrheo/mcp.yaml,
// mcp.yaml), renamed to this project.
var WorkspaceConfigNames = []string{".agentcore.json", ".agentcore.yaml", "agentcore.yaml"}

const (
	systemConfigPath = "/etc/agentcore/config.yaml"
	userConfigSuffix = ".agentcore/config.yaml"
)

// Load merges, in increasing priority, the system config file, the user
// config file, the workspace config file, the EnvPrefix+"_MCP_SERVERS"
// JSON environment variable, and opts.RuntimeServers. A server present
// in an earlier layer and re-declared with `enabled: false` in a later
// layer is removed rather than merged, matching mcp_config.py's
// _merge_config.
func Load(opts Options) (*Config, error) {
	cfg := &Config{MCPServers: map[string]mcp.ServerConfig{}}
	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "AGENTCORE"
	}

	layers := []string{systemConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		layers = append(layers, filepath.Join(home, userConfigSuffix))
	}
	layers = append(layers, workspaceConfigPath(opts.WorkspaceConfigFile))

	for _, path := range layers {
		if path == "" {
			continue
		}
		servers, err := loadServersFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
		mergeServers(cfg.MCPServers, servers)
	}

	if envJSON := os.Getenv(prefix + "_MCP_SERVERS"); envJSON != "" {
		var servers map[string]ServerConfig
		if err := json.Unmarshal([]byte(envJSON), &servers); err != nil {
			return nil, fmt.Errorf("config: parsing %s_MCP_SERVERS: %w", prefix, err)
		}
		mergeServers(cfg.MCPServers, servers)
	}

	if len(opts.RuntimeServers) > 0 {
		for name, sc := range opts.RuntimeServers {
			cfg.MCPServers[name] = sc
		}
	}

	if v := os.Getenv(prefix + "_MODEL"); v != "" {
		cfg.Model = v
	}
	if opts.RuntimeModel != "" {
		cfg.Model = opts.RuntimeModel
	}

	return cfg, nil
}

// workspaceConfigPath resolves the workspace layer's file path: the
// explicit override if given, else the first of WorkspaceConfigNames
// that exists in the current directory.
func workspaceConfigPath(override string) string {
	if override != "" {
		return override
	}
	for _, name := range WorkspaceConfigNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadServersFile reads one YAML or JSON config file's "mcpServers" key
// via viper, which auto-detects the format from the extension.
// ${env://VAR}/${VAR:-default} substitution is applied later, in
// ToMCPConfig, via mcp.ServerConfig.Substituted. Returns nil, nil if path
// does not exist — a missing layer is not an error.
func loadServersFile(path string) (map[string]ServerConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var wrapper struct {
		MCPServers map[string]ServerConfig `yaml:"mcpServers" json:"mcpServers" mapstructure:"mcpServers"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, err
	}
	return wrapper.MCPServers, nil
}

// mergeServers applies layer's entries into merged in place: an enabled
// server is added/overwritten; a server present in merged but disabled
// in layer is deleted rather than overwritten with a disabled stub.
func mergeServers(merged map[string]mcp.ServerConfig, layer map[string]ServerConfig) {
	for name, sc := range layer {
		if !sc.enabled() {
			delete(merged, name)
			continue
		}
		merged[name] = sc.ToMCPConfig()
	}
}

