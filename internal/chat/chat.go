// Package chat implements the Chat component: conversation history,
// system prompt, and the compression policy hook. Grounded on spec §4.7,
// with compression wired to real token counting via internal/tokens
// (pkoukk/tiktoken-go) rather than left as a placeholder.
package chat

import (
	"context"
	"fmt"

	"github.com/dbrheo/agentcore/internal/content"
	"github.com/dbrheo/agentcore/internal/llmprovider"
	"github.com/dbrheo/agentcore/internal/tokens"
)

// CompressionThreshold is the curated-token-count above which TryCompress
// will attempt a summarization pass when not forced.
const CompressionThreshold = 80_000

// KeepLastTurns is the number of most-recent raw Contents TryCompress
// always keeps verbatim.
const KeepLastTurns = 6

// Chat holds the system prompt and history for one conversation.
type Chat struct {
	systemPrompt string
	history      *content.History
	counter      tokens.Counter
}

// New creates a Chat with systemPrompt built once by PromptManager. A nil
// policy/counter use the defaults.
func New(systemPrompt string, policy content.CurationPolicy, counter tokens.Counter) *Chat {
	if counter == nil {
		counter = tokens.NewTiktokenCounter()
	}
	return &Chat{
		systemPrompt: systemPrompt,
		history:      content.NewHistory(policy),
		counter:      counter,
	}
}

// SystemPrompt returns the system prompt built once at construction.
func (c *Chat) SystemPrompt() string { return c.systemPrompt }

// AppendHistory adds a Content; Client is the only caller that mutates
// Chat's history, per ownership rules in spec §3.
func (c *Chat) AppendHistory(cc content.Content) { c.history.Append(cc) }

// RawHistory returns every Content ever appended.
func (c *Chat) RawHistory() []content.Content { return c.history.Raw() }

// CuratedHistory returns the model-facing curated view.
func (c *Chat) CuratedHistory() []content.Content { return c.history.Curated() }

// CuratedTokenCount sums the counter's estimate over the curated view.
func (c *Chat) CuratedTokenCount() int {
	total := 0
	for _, cc := range c.CuratedHistory() {
		total += c.counter.CountContent(cc)
	}
	return total
}

// TryCompress partitions history at a boundary keeping the last
// KeepLastTurns verbatim, asks provider to summarize the prefix, and
// replaces the prefix with a single synthetic model Content. It is a
// no-op (and non-fatal on failure) unless force is true or the curated
// token count exceeds CompressionThreshold.
func (c *Chat) TryCompress(ctx context.Context, provider llmprovider.Provider, force bool) error {
	if !force && c.CuratedTokenCount() <= CompressionThreshold {
		return nil
	}

	raw := c.history.Raw()
	if len(raw) <= KeepLastTurns {
		return nil
	}
	prefixLen := len(raw) - KeepLastTurns

	summaryPrompt := "Summarize the following conversation prefix concisely, preserving any facts later turns may depend on."
	stream, err := provider.StreamChat(ctx, summaryPrompt, raw[:prefixLen], nil)
	if err != nil {
		return fmt.Errorf("chat: compression request failed (non-fatal): %w", err)
	}

	var summary string
	for chunk := range stream.Chunks {
		if chunk.Kind == llmprovider.ChunkText {
			summary += chunk.TextDelta
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("chat: compression stream failed (non-fatal): %w", err)
	}

	c.history.Compress(prefixLen, summary)
	return nil
}
