// Package session implements JSON persistence for a conversation's
// history, so it can survive process restarts and be inspected offline.
// Grounded on the teacher's internal/session/session.go, with its
// OpenAI-shaped flat ToolCalls list replaced by internal/content.Part so
// a persisted session round-trips functionCall/functionResponse/thought
// content exactly rather than losing fidelity to the tool-calling
// subset of the schema.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dbrheo/agentcore/internal/content"
)

// Session is a complete conversation: metadata plus the ordered message
// history, serializable to and from a JSON file.
type Session struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Metadata  Metadata  `json:"metadata"`
	Messages  []Message `json:"messages"`
}

// Metadata records the environment a session was created under, useful
// when reviewing an old session file.
type Metadata struct {
	AgentVersion string `json:"agent_version"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
}

// Message is one persisted turn: a role and its ordered Parts, matching
// content.Content but with an ID and timestamp for storage.
type Message struct {
	ID        string         `json:"id"`
	Role      content.Role   `json:"role"`
	Parts     []content.Part `json:"parts"`
	Timestamp time.Time      `json:"timestamp"`
}

// FromContent builds a persistable Message from a content.Content.
func FromContent(cc content.Content) Message {
	return Message{ID: generateMessageID(), Role: cc.Role, Parts: cc.Parts, Timestamp: time.Now()}
}

// ToContent reconstructs the content.Content this Message recorded.
func (m Message) ToContent() content.Content {
	return content.Content{Role: m.Role, Parts: m.Parts}
}

// NewSession creates an empty session ready to receive messages.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		Version:   "1.0",
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}
}

// AddMessage appends msg, stamping an ID and timestamp if absent.
func (s *Session) AddMessage(msg Message) {
	if msg.ID == "" {
		msg.ID = generateMessageID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now()
}

// SetMetadata replaces the session's metadata.
func (s *Session) SetMetadata(metadata Metadata) {
	s.Metadata = metadata
	s.UpdatedAt = time.Now()
}

// SaveToFile writes the session as indented JSON.
func (s *Session) SaveToFile(filePath string) error {
	s.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling: %w", err)
	}
	return os.WriteFile(filePath, data, 0644)
}

// LoadFromFile reads a session previously written by SaveToFile.
func LoadFromFile(filePath string) (*Session, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("session: reading %s: %w", filePath, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: unmarshaling %s: %w", filePath, err)
	}
	return &s, nil
}

func generateMessageID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "msg_" + hex.EncodeToString(b)
}
