package session

import (
	"fmt"
	"sync"

	"github.com/dbrheo/agentcore/internal/content"
)

// Manager provides thread-safe, optionally auto-saving access to a
// Session, bridging internal/content's live history to the persisted
// JSON form.
type Manager struct {
	session  *Session
	filePath string
	mutex    sync.RWMutex
}

// NewManager creates a Manager over a fresh Session. An empty filePath
// disables auto-save.
func NewManager(filePath string) *Manager {
	return &Manager{session: NewSession(), filePath: filePath}
}

// NewManagerWithSession wraps an already-loaded Session, e.g. one
// returned by LoadFromFile when resuming a prior conversation.
func NewManagerWithSession(session *Session, filePath string) *Manager {
	return &Manager{session: session, filePath: filePath}
}

// AddContent appends one Content and auto-saves if configured.
func (m *Manager) AddContent(cc content.Content) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.session.AddMessage(FromContent(cc))
	return m.saveLocked()
}

// ReplaceAllContent discards the session's messages and replaces them
// with cs, e.g. after a compression pass rewrites the live history.
func (m *Manager) ReplaceAllContent(cs []content.Content) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.session.Messages = make([]Message, 0, len(cs))
	for _, cc := range cs {
		m.session.AddMessage(FromContent(cc))
	}
	return m.saveLocked()
}

// SetMetadata updates and auto-saves the session's metadata.
func (m *Manager) SetMetadata(metadata Metadata) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.session.SetMetadata(metadata)
	return m.saveLocked()
}

// GetHistory returns every message as content.Content, in order.
func (m *Manager) GetHistory() []content.Content {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]content.Content, len(m.session.Messages))
	for i, msg := range m.session.Messages {
		out[i] = msg.ToContent()
	}
	return out
}

// GetSession returns a copy of the current session with its own Messages
// slice; each copied Message still shares its Parts with the original.
func (m *Manager) GetSession() *Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	cp := *m.session
	cp.Messages = make([]Message, len(m.session.Messages))
	copy(cp.Messages, m.session.Messages)
	return &cp
}

// Save forces a write to filePath, failing if none was configured.
func (m *Manager) Save() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.filePath == "" {
		return fmt.Errorf("session: no file path configured for this manager")
	}
	return m.session.SaveToFile(m.filePath)
}

// GetFilePath returns the configured auto-save path, if any.
func (m *Manager) GetFilePath() string { return m.filePath }

// MessageCount returns how many messages the session holds.
func (m *Manager) MessageCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.session.Messages)
}

func (m *Manager) saveLocked() error {
	if m.filePath == "" {
		return nil
	}
	return m.session.SaveToFile(m.filePath)
}
