package provider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/homecode-dev/homecode/internal/agent"
	"github.com/homecode-dev/homecode/internal/tools"
)

// StreamChat opens one streaming chat completion over the conversation.
// It implements agent.Streamer.
func (e *Endpoint) StreamChat(ctx context.Context, system string, turns []agent.Turn, defs []tools.Definition) (agent.Stream, error) {
	req := openai.ChatCompletionRequest{
		Model:    e.info.Model,
		Messages: encodeTurns(system, turns),
		Stream:   true,
		StreamOptions: &openai.StreamOptions{
			IncludeUsage: true,
		},
	}
	if len(defs) > 0 {
		req.Tools = encodeTools(defs)
	}

	stream, err := e.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}
	return &chatStream{inner: stream, onUsage: e.onUsage}, nil
}

// encodeTurns maps the conversation into provider messages, prepending
// the system prompt. Assistant tool calls echo their raw argument text;
// tool results answer by id. Reasoning is never encoded.
func encodeTurns(system string, turns []agent.Turn) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})

	for _, t := range turns {
		switch t.Kind {
		case agent.TurnUser:
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: t.Text,
			})
		case agent.TurnAssistant:
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: t.Text,
			}
			for _, call := range t.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: call.Raw,
					},
				})
			}
			msgs = append(msgs, msg)
		case agent.TurnToolResult:
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    t.Text,
				Name:       t.ToolName,
				ToolCallID: t.ToolCallID,
			})
		}
	}
	return msgs
}

// encodeTools maps the tool schemas into the provider's function
// definitions.
func encodeTools(defs []tools.Definition) []openai.Tool {
	out := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

// chatStream adapts the provider's chunk stream to agent.Stream,
// flattening multi-field chunks into single-field events and capturing
// the usage block the final chunk carries.
type chatStream struct {
	inner   *openai.ChatCompletionStream
	onUsage func(prompt, completion, total int)
	pending []agent.StreamEvent
}

func (s *chatStream) Recv() (agent.StreamEvent, error) {
	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}

		chunk, err := s.inner.Recv()
		if err != nil {
			return agent.StreamEvent{}, err
		}
		if chunk.Usage != nil && s.onUsage != nil {
			s.onUsage(chunk.Usage.PromptTokens, chunk.Usage.CompletionTokens, chunk.Usage.TotalTokens)
		}

		events := deltaEvents(chunk)
		if len(events) == 0 {
			continue
		}
		s.pending = events[1:]
		return events[0], nil
	}
}

func (s *chatStream) Close() error {
	return s.inner.Close()
}

// deltaEvents flattens one stream chunk into provider-neutral events.
func deltaEvents(chunk openai.ChatCompletionStreamResponse) []agent.StreamEvent {
	if len(chunk.Choices) == 0 {
		return nil
	}
	delta := chunk.Choices[0].Delta

	var events []agent.StreamEvent
	if delta.ReasoningContent != "" {
		events = append(events, agent.StreamEvent{ReasoningDelta: delta.ReasoningContent})
	}
	if delta.Content != "" {
		events = append(events, agent.StreamEvent{ContentDelta: delta.Content})
	}
	for _, tc := range delta.ToolCalls {
		index := 0
		if tc.Index != nil {
			index = *tc.Index
		}
		events = append(events, agent.StreamEvent{ToolCall: &agent.ToolCallDelta{
			Index:          index,
			ID:             tc.ID,
			NameDelta:      tc.Function.Name,
			ArgumentsDelta: tc.Function.Arguments,
		}})
	}
	return events
}
