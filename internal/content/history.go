package content

// CurationPolicy decides which Contents are dropped from the curated view
// presented to the model. Pluggable per the curation-policy Open Question:
// the exact predicate the source used was fuzzy, so implementers expose
// this rather than hardcoding one rule.
type CurationPolicy interface {
	// ShouldDrop reports whether content at index i of raw should be
	// excluded from the curated view. It may inspect neighbors.
	ShouldDrop(raw []Content, i int) bool
}

// DefaultCurationPolicy implements spec's literal rule: drop model
// Contents that are entirely empty, and drop function Contents that carry
// only error responses. User turns are never dropped.
type DefaultCurationPolicy struct{}

func (DefaultCurationPolicy) ShouldDrop(raw []Content, i int) bool {
	c := raw[i]
	switch c.Role {
	case RoleUser:
		return false
	case RoleModel:
		return c.IsEmpty()
	case RoleFunction:
		return c.IsAllErrorResponses()
	default:
		return false
	}
}

// History is the append-only ordered sequence of Content exchanged in a
// conversation. Appends never mutate prior entries; compression replaces a
// prefix wholesale via Compress, never in place.
type History struct {
	raw    []Content
	policy CurationPolicy
}

// NewHistory creates an empty History using policy for curation. A nil
// policy defaults to DefaultCurationPolicy.
func NewHistory(policy CurationPolicy) *History {
	if policy == nil {
		policy = DefaultCurationPolicy{}
	}
	return &History{policy: policy}
}

// Append adds a Content to the raw history.
func (h *History) Append(c Content) {
	h.raw = append(h.raw, c)
}

// Raw returns every Content ever appended, in order. The returned slice is
// a snapshot copy; mutating it does not affect the History.
func (h *History) Raw() []Content {
	out := make([]Content, len(h.raw))
	copy(out, h.raw)
	return out
}

// Curated returns the subset of Raw() the active CurationPolicy keeps.
func (h *History) Curated() []Content {
	out := make([]Content, 0, len(h.raw))
	for i, c := range h.raw {
		if !h.policy.ShouldDrop(h.raw, i) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of raw entries.
func (h *History) Len() int { return len(h.raw) }

// Compress replaces the first n raw entries with a single synthetic model
// Content summarizing them. It is a no-op if n is out of range.
func (h *History) Compress(n int, summary string) {
	if n <= 0 || n > len(h.raw) {
		return
	}
	replacement := ModelContent(TextPart("summary of earlier conversation: " + summary))
	rest := make([]Content, len(h.raw)-n)
	copy(rest, h.raw[n:])
	h.raw = append([]Content{replacement}, rest...)
}
