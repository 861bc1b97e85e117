// Package promptenv builds the initial system prompt: static instructions
// plus hierarchical memory, project prompt, and an environment summary.
// Grounded on original_source's core/prompts.py and core/environment.py —
// the teacher carries no direct analogue (mcphost's system prompt is a
// flat string in cmd/root.go), so this package is the sole
// original_source-grounded component re-expressed as a small builder
// type rather than Python f-string concatenation.
package promptenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// MemoryFile is one hierarchical memory file discovered walking up from
// the working directory (closest-first precedence, furthest-last).
type MemoryFile struct {
	Path    string
	Content string
}

// Environment summarizes the host process for the model: platform, cwd,
// date, and any project-level context.
type Environment struct {
	WorkingDirectory string
	Platform         string
	Date             time.Time
}

// Summary renders the environment block included in the system prompt.
func (e Environment) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Working directory: %s\n", e.WorkingDirectory)
	fmt.Fprintf(&sb, "Platform: %s\n", e.Platform)
	fmt.Fprintf(&sb, "Date: %s\n", e.Date.Format("2006-01-02"))
	return sb.String()
}

// DetectEnvironment builds an Environment from the current process.
func DetectEnvironment(now time.Time) Environment {
	wd, _ := os.Getwd()
	return Environment{WorkingDirectory: wd, Platform: runtime.GOOS, Date: now}
}

// Manager builds the system prompt from a static base instruction, the
// detected Environment, hierarchical memory files, and an optional
// project-specific prompt.
type Manager struct {
	BaseInstructions string
	ProjectPrompt    string
	Memory           []MemoryFile
	Env              Environment
}

// NewManager builds a Manager with memory files discovered by walking up
// from startDir to the filesystem root looking for filename (e.g.
// "AGENTS.md"), closest directory first.
func NewManager(baseInstructions, projectPrompt, startDir, filename string, env Environment) *Manager {
	return &Manager{
		BaseInstructions: baseInstructions,
		ProjectPrompt:    projectPrompt,
		Memory:           discoverMemory(startDir, filename),
		Env:              env,
	}
}

func discoverMemory(startDir, filename string) []MemoryFile {
	var files []MemoryFile
	dir := startDir
	for {
		candidate := filepath.Join(dir, filename)
		if data, err := os.ReadFile(candidate); err == nil {
			files = append(files, MemoryFile{Path: candidate, Content: string(data)})
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return files
}

// Build assembles the full system prompt: static instructions, then the
// environment summary, then project prompt, then memory (furthest
// ancestor first so nearer, more specific memory wins by appearing last).
func (m *Manager) Build() string {
	var sb strings.Builder
	sb.WriteString(m.BaseInstructions)
	sb.WriteString("\n\n## Environment\n")
	sb.WriteString(m.Env.Summary())

	if m.ProjectPrompt != "" {
		sb.WriteString("\n## Project instructions\n")
		sb.WriteString(m.ProjectPrompt)
		sb.WriteString("\n")
	}

	if len(m.Memory) > 0 {
		sb.WriteString("\n## Memory\n")
		for i := len(m.Memory) - 1; i >= 0; i-- {
			fmt.Fprintf(&sb, "### %s\n%s\n", m.Memory[i].Path, m.Memory[i].Content)
		}
	}

	return sb.String()
}
