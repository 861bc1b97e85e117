package hooks

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// HookEntry is one shell command a matcher fires, with an optional
// per-hook timeout in seconds (0 means inherit the caller's context).
type HookEntry struct {
	Type    string `yaml:"type"`
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"`
}

// HookMatcher binds a tool-name regex (ignored for events that don't
// RequiresMatcher) to the hooks it triggers.
type HookMatcher struct {
	Matcher string      `yaml:"matcher"`
	Hooks   []HookEntry `yaml:"hooks"`
}

// HookConfig is the merged set of matchers per event, loaded from one or
// more YAML files.
type HookConfig struct {
	Hooks map[HookEvent][]HookMatcher `yaml:"hooks"`
}

type hookConfigFile struct {
	Hooks map[HookEvent][]HookMatcher `yaml:"hooks"`
}

// LoadHooksConfig reads and merges one or more YAML hook configuration
// files, applying ${env://VAR:-default} substitution to every command,
// and concatenating each event's matcher list in file order.
func LoadHooksConfig(paths ...string) (*HookConfig, error) {
	merged := &HookConfig{Hooks: map[HookEvent][]HookMatcher{}}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("hooks: reading %s: %w", path, err)
		}

		var parsed hookConfigFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("hooks: parsing %s: %w", path, err)
		}

		for event, matchers := range parsed.Hooks {
			for i := range matchers {
				for j := range matchers[i].Hooks {
					matchers[i].Hooks[j].Command = substituteEnv(matchers[i].Hooks[j].Command)
				}
			}
			merged.Hooks[event] = append(merged.Hooks[event], matchers...)
		}
	}

	return merged, nil
}

var envSubstitutionPattern = regexp.MustCompile(`\$\{env://([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func substituteEnv(s string) string {
	return envSubstitutionPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envSubstitutionPattern.FindStringSubmatch(match)
		name, def := parts[1], parts[3]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return def
	})
}

// matchesPattern reports whether toolName matches a hook matcher's
// pattern. An empty pattern matches everything; an invalid regex falls
// back to an exact string comparison.
func matchesPattern(pattern, toolName string) bool {
	if pattern == "" {
		return true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return pattern == toolName
	}
	return re.MatchString(toolName)
}
