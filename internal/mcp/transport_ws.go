package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"

	"github.com/gorilla/websocket"
)

// wsSession is a length-delimited-free JSON-RPC 2.0 session over a
// WebSocket connection, implementing the session interface for the
// WebSocket transport mcp-go's retrieved client package doesn't cover
// directly — wired to gorilla/websocket per the domain dependency list.
type wsSession struct {
	conn   *websocket.Conn
	nextID int64

	mu      sync.Mutex
	pending map[int64]chan rpcResponse

	closeOnce sync.Once
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newWebSocketSession(ctx context.Context, cfg ServerConfig) (*wsSession, error) {
	header := make(map[string][]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		header[k] = []string{v}
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("mcp: dialing websocket server: %w", err)
	}
	s := &wsSession{conn: conn, pending: map[int64]chan rpcResponse{}}
	go s.readLoop()
	return s, nil
}

func (s *wsSession) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.failAllPending(err)
			return
		}
		var resp rpcResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			continue
		}
		s.mu.Lock()
		ch, ok := s.pending[resp.ID]
		if ok {
			delete(s.pending, resp.ID)
		}
		s.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

func (s *wsSession) failAllPending(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.pending {
		ch <- rpcResponse{ID: id, Error: &rpcError{Message: err.Error()}}
		delete(s.pending, id)
	}
}

func (s *wsSession) call(ctx context.Context, method string, params any, out any) error {
	id := atomic.AddInt64(&s.nextID, 1)
	ch := make(chan rpcResponse, 1)
	s.mu.Lock()
	s.pending[id] = ch
	s.mu.Unlock()

	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("mcp: websocket write: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case resp := <-ch:
		if resp.Error != nil {
			return fmt.Errorf("mcp: %s: %s", method, resp.Error.Message)
		}
		if out != nil {
			return json.Unmarshal(resp.Result, out)
		}
		return nil
	}
}

func (s *wsSession) Initialize(ctx context.Context, req mcpsdk.InitializeRequest) (*mcpsdk.InitializeResult, error) {
	var out mcpsdk.InitializeResult
	if err := s.call(ctx, "initialize", req.Params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *wsSession) ListTools(ctx context.Context, req mcpsdk.ListToolsRequest) (*mcpsdk.ListToolsResult, error) {
	var out mcpsdk.ListToolsResult
	if err := s.call(ctx, "tools/list", req.Params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *wsSession) CallTool(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var out mcpsdk.CallToolResult
	if err := s.call(ctx, "tools/call", req.Params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *wsSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}
