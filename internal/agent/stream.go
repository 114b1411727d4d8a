package agent

import (
	"context"

	"github.com/homecode-dev/homecode/internal/tools"
)

// ToolCallDelta is a fragment of one streamed tool call. Index groups
// fragments belonging to the same call; ID arrives with the first
// fragment when the provider assigns ids at all.
type ToolCallDelta struct {
	Index          int
	ID             string
	NameDelta      string
	ArgumentsDelta string
}

// StreamEvent is the provider-neutral unit of streamed model output.
// Exactly one field is populated per event.
type StreamEvent struct {
	ContentDelta   string
	ReasoningDelta string
	ToolCall       *ToolCallDelta
}

// Stream yields StreamEvents until io.EOF.
type Stream interface {
	Recv() (StreamEvent, error)
	Close() error
}

// Streamer opens one streaming model call over the full conversation.
// The tool definitions are sent unchanged with every call.
type Streamer interface {
	StreamChat(ctx context.Context, system string, turns []Turn, defs []tools.Definition) (Stream, error)
}
