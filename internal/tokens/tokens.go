// Package tokens provides token accounting used by Chat's compression
// trigger. Adapted from the teacher's internal/tokens counter interface;
// the teacher's own counters were heuristic placeholders, replaced here
// with real BPE counting via pkoukk/tiktoken-go.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/dbrheo/agentcore/internal/content"
)

// Counter estimates token counts for Content/text.
type Counter interface {
	CountText(s string) int
	CountContent(c content.Content) int
}

// TiktokenCounter counts using a cl100k_base BPE encoding, lazily
// initialized and cached, matching the encoding used by most modern chat
// models closely enough for a compression-trigger heuristic.
type TiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{}
}

func (c *TiktokenCounter) encoding() *tiktoken.Tiktoken {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding("cl100k_base")
	})
	return c.enc
}

func (c *TiktokenCounter) CountText(s string) int {
	enc := c.encoding()
	if enc == nil {
		return len(s) / 4
	}
	return len(enc.Encode(s, nil, nil))
}

func (c *TiktokenCounter) CountContent(cc content.Content) int {
	total := 0
	for _, p := range cc.Parts {
		if p.Kind == content.KindText {
			total += c.CountText(p.Text)
		}
	}
	return total
}
