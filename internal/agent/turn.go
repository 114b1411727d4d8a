package agent

// TurnKind discriminates the three kinds of conversation turns.
type TurnKind string

const (
	TurnUser       TurnKind = "user"
	TurnAssistant  TurnKind = "assistant"
	TurnToolResult TurnKind = "tool_result"
)

// ToolCallRequest is one tool invocation requested by the model. Raw
// holds the argument text exactly as streamed so history replay echoes
// what the provider sent; Arguments is the parsed form, empty when the
// text was not a JSON object.
type ToolCallRequest struct {
	ID        string
	Name      string
	Arguments map[string]any
	Raw       string
}

// Turn is one entry in the conversation. Which fields carry meaning
// depends on Kind; a turn is immutable once appended.
type Turn struct {
	Kind       TurnKind
	Text       string
	Reasoning  string            // assistant only, never replayed to the model
	ToolCalls  []ToolCallRequest // assistant only
	ToolCallID string            // tool_result only
	ToolName   string            // tool_result only
}

func NewUserTurn(text string) Turn {
	return Turn{Kind: TurnUser, Text: text}
}

func NewAssistantTurn(text, reasoning string, calls []ToolCallRequest) Turn {
	return Turn{Kind: TurnAssistant, Text: text, Reasoning: reasoning, ToolCalls: calls}
}

func NewToolResultTurn(callID, toolName, text string) Turn {
	return Turn{Kind: TurnToolResult, Text: text, ToolCallID: callID, ToolName: toolName}
}
