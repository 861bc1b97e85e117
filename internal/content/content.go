package content

// Role identifies who produced a Content.
type Role string

const (
	RoleUser     Role = "user"
	RoleModel    Role = "model"
	RoleFunction Role = "function"
)

// Content is one message: a role plus an ordered sequence of Parts.
type Content struct {
	Role  Role
	Parts []Part
}

// UserContent builds a single-text-Part user Content.
func UserContent(text string) Content {
	return Content{Role: RoleUser, Parts: []Part{TextPart(text)}}
}

// ModelContent builds a model Content from accumulated Parts.
func ModelContent(parts ...Part) Content {
	return Content{Role: RoleModel, Parts: parts}
}

// FunctionContent builds a function-role Content from functionResponse
// Parts, preserving the order they're given in.
func FunctionContent(parts ...Part) Content {
	return Content{Role: RoleFunction, Parts: parts}
}

// IsEmpty reports whether every Part in the Content is empty text/thought,
// i.e. the model produced nothing meaningful.
func (c Content) IsEmpty() bool {
	if len(c.Parts) == 0 {
		return true
	}
	for _, p := range c.Parts {
		if !p.IsEmptyText() {
			return false
		}
	}
	return true
}

// Text concatenates every text Part in the Content.
func (c Content) Text() string {
	var out string
	for _, p := range c.Parts {
		if p.Kind == KindText {
			out += p.Text
		}
	}
	return out
}

// FunctionCalls returns every functionCall Part's payload, in order.
func (c Content) FunctionCalls() []*FunctionCall {
	var out []*FunctionCall
	for _, p := range c.Parts {
		if p.Kind == KindFunctionCall && p.FunctionCall != nil {
			out = append(out, p.FunctionCall)
		}
	}
	return out
}

// IsAllErrorResponses reports whether a function-role Content consists
// entirely of functionResponse Parts whose Response carries an "error" key,
// used by the default curation policy.
func (c Content) IsAllErrorResponses() bool {
	found := false
	for _, p := range c.Parts {
		if p.Kind != KindFunctionResponse || p.FunctionResponse == nil {
			return false
		}
		if _, hasErr := p.FunctionResponse.Response["error"]; !hasErr {
			return false
		}
		found = true
	}
	return found
}
