// Package content implements the tagged-union message model shared by
// Chat, Turn, and the tool scheduler: Part, Content, and History.
package content

// Kind discriminates the variant carried by a Part.
type Kind int

const (
	KindText Kind = iota
	KindInlineData
	KindFileData
	KindFunctionCall
	KindFunctionResponse
	KindThought
	KindExecutableCode
	KindCodeExecutionResult
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInlineData:
		return "inlineData"
	case KindFileData:
		return "fileData"
	case KindFunctionCall:
		return "functionCall"
	case KindFunctionResponse:
		return "functionResponse"
	case KindThought:
		return "thought"
	case KindExecutableCode:
		return "executableCode"
	case KindCodeExecutionResult:
		return "codeExecutionResult"
	default:
		return "unknown"
	}
}

// InlineData is raw bytes embedded directly in a Part.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// FileData references external content by URI rather than embedding it.
type FileData struct {
	MIMEType string
	URI      string
}

// FunctionCall is a model-originated request to invoke a tool.
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]any
}

// FunctionResponse is the result of a tool invocation, fed back to the
// model. Response carries either an "output" key, an "error" key, or
// tool-specific fields — the scheduler decides which.
type FunctionResponse struct {
	ID       string
	Name     string
	Response map[string]any
}

// ExecutableCode is a model-emitted code block intended for execution by a
// code-execution tool.
type ExecutableCode struct {
	Language string
	Code     string
}

// CodeExecutionResult is the outcome of running an ExecutableCode block.
type CodeExecutionResult struct {
	Outcome string
	Output  string
}

// Part is one tagged fragment of a Content. Only the field matching Kind
// is populated; callers must switch on Kind before reading a field.
// Ordering of Parts within a Content is significant.
type Part struct {
	Kind Kind

	Text                string
	InlineData          *InlineData
	FileData            *FileData
	FunctionCall        *FunctionCall
	FunctionResponse    *FunctionResponse
	Thought             string
	ExecutableCode      *ExecutableCode
	CodeExecutionResult *CodeExecutionResult
}

// TextPart builds a text Part.
func TextPart(text string) Part { return Part{Kind: KindText, Text: text} }

// ThoughtPart builds a thought Part.
func ThoughtPart(text string) Part { return Part{Kind: KindThought, Thought: text} }

// FunctionCallPart builds a functionCall Part.
func FunctionCallPart(id, name string, args map[string]any) Part {
	return Part{Kind: KindFunctionCall, FunctionCall: &FunctionCall{ID: id, Name: name, Args: args}}
}

// FunctionResponsePart builds a functionResponse Part.
func FunctionResponsePart(id, name string, response map[string]any) Part {
	return Part{Kind: KindFunctionResponse, FunctionResponse: &FunctionResponse{ID: id, Name: name, Response: response}}
}

// IsEmptyText reports whether the Part is a text or thought Part with no
// non-whitespace content — used by the curation policy.
func (p Part) IsEmptyText() bool {
	switch p.Kind {
	case KindText:
		return isBlank(p.Text)
	case KindThought:
		return isBlank(p.Thought)
	default:
		return false
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
