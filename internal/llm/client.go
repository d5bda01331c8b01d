package llm

import "context"

type Message struct {
	Role       string
	Content    string
	Name       string     // tool name, set on tool result messages
	ToolCallID string     // id of the tool call a result answers
	ToolCalls  []ToolCall // set on assistant messages that request tools
}

type Tool struct {
	Type     string
	Function Function
}

type Function struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

type FunctionCall struct {
	Name      string
	Arguments map[string]interface{}
}

type Response struct {
	Content          string
	Model            string
	ToolCalls        []ToolCall
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// ToolCaller is implemented by providers that support function tools.
// Providers without it still work; the agent answers directly instead
// of invoking capabilities.
type ToolCaller interface {
	Client
	GenerateWithTools(ctx context.Context, messages []Message, tools []Tool) (Response, error)
}
