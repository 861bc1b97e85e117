package mcp

import "sync"

// TrustStore tracks proceedAlwaysServer / proceedAlwaysTool outcomes for
// the lifetime of a session. Per the Open Question decision (trust scope
// lifetime unspecified upstream), this repo keeps trust session-only,
// held by the runtime cmd/root.go builds and shared with every
// ToolAdapter, rather than persisted to disk.
type TrustStore struct {
	mu      sync.RWMutex
	servers map[string]bool
	tools   map[string]bool // keyed "server/tool"
}

// NewTrustStore creates an empty, session-scoped trust store.
func NewTrustStore() *TrustStore {
	return &TrustStore{servers: map[string]bool{}, tools: map[string]bool{}}
}

func (t *TrustStore) TrustServer(server string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.servers[server] = true
}

func (t *TrustStore) TrustTool(server, tool string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tools[server+"/"+tool] = true
}

func (t *TrustStore) IsTrusted(server, tool string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.servers[server] || t.tools[server+"/"+tool]
}
