package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dbrheo/agentcore/internal/abort"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run an HTTP chat API backed by the agent runtime",
	Long: `Run an HTTP server exposing the agent runtime as a chat API: POST /chat
starts or continues a conversation, DELETE /conversation/{id} discards
one, and GET /metrics exposes Prometheus counters for tool-call
duration and outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerMode(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntVar(&serverPort, "port", 8090, "port to listen on")
	serverCmd.Flags().StringVarP(&modelFlag, "model", "m", "anthropic:claude-sonnet-4-20250514", "model to use (format: provider:model)")
	serverCmd.Flags().StringVar(&systemPromptFile, "system-prompt", "", "system prompt text or path to a file containing it")
	serverCmd.Flags().IntVar(&maxTurns, "max-turns", defaultMaxTurns, "maximum number of model turns per message")
	serverCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	serverCmd.Flags().StringVar(&anthropicAPIKey, "anthropic-api-key", "", "Anthropic API key")
	serverCmd.Flags().StringVar(&openaiAPIKey, "openai-api-key", "", "OpenAI API key")
}

// conversation is one HTTP-addressable chat session: its own runtime
// (hence its own Client/registry/chat history) so concurrent
// conversations never share mutable turn state.
type conversation struct {
	id           string
	rt           *runtime
	lastActivity time.Time
}

// conversationStore indexes live conversations by ID and reaps ones idle
// past conversationIdleTimeout, mirroring the teacher's cleanup-ticker pattern.
type conversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*conversation
}

func newConversationStore() *conversationStore {
	return &conversationStore{conversations: make(map[string]*conversation)}
}

func (s *conversationStore) get(id string) (*conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[id]
	return c, ok
}

func (s *conversationStore) create(ctx context.Context) (*conversation, error) {
	rt, err := buildRuntime(ctx, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := &conversation{id: uuid.New().String(), rt: rt, lastActivity: time.Now()}
	s.conversations[c.id] = c
	return c, nil
}

func (s *conversationStore) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[id]; ok {
		c.lastActivity = time.Now()
	}
}

func (s *conversationStore) close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return false
	}
	c.rt.mcpMgr.DisconnectAll()
	delete(s.conversations, id)
	return true
}

const conversationIdleTimeout = 24 * time.Hour

func (s *conversationStore) startCleanupTask(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupInactive()
			}
		}
	}()
}

func (s *conversationStore) cleanupInactive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	threshold := time.Now().Add(-conversationIdleTimeout)
	for id, c := range s.conversations {
		if c.lastActivity.Before(threshold) {
			c.rt.mcpMgr.DisconnectAll()
			delete(s.conversations, id)
			log.Printf("closed idle conversation %s", id)
		}
	}
}

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type chatResponse struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// serverHandler routes the chat API onto a conversationStore.
type serverHandler struct {
	store *conversationStore
}

func newServerHandler() *serverHandler {
	return &serverHandler{store: newConversationStore()}
}

func (h *serverHandler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("DELETE /conversation/{id}", h.handleCloseConversation)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (h *serverHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message must not be empty", http.StatusBadRequest)
		return
	}

	var conv *conversation
	if req.ConversationID != "" {
		var ok bool
		conv, ok = h.store.get(req.ConversationID)
		if !ok {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
	} else {
		var err error
		conv, err = h.store.create(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to start conversation: %v", err), http.StatusInternalServerError)
			return
		}
	}
	h.store.touch(conv.id)

	signal := abort.New(r.Context())
	promptID := fmt.Sprintf("http-%d", time.Now().UnixNano())
	turns := maxTurns
	if turns <= 0 {
		turns = defaultMaxTurns
	}

	var responseText string
	for ev := range conv.rt.client.SendMessageStream(r.Context(), req.Message, signal, promptID, turns) {
		switch {
		case ev.Err != nil:
			http.Error(w, ev.Err.Error(), http.StatusInternalServerError)
			return
		case ev.Text != "":
			responseText += ev.Text
		}
	}

	resp := chatResponse{ConversationID: conv.id, Message: responseText}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *serverHandler) handleCloseConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.close(id) {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %s", r.Method, r.URL.Path, time.Since(start), r.RemoteAddr)
	})
}

func runServerMode(ctx context.Context) error {
	handler := newServerHandler()
	handler.store.startCleanupTask(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", serverPort),
		Handler:      loggingMiddleware(handler.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("listening on :%d", serverPort)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
