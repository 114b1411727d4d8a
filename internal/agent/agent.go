package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/homecode-dev/homecode/internal/tools"
)

// RunState tracks where the loop is and how a run ended. Done and
// LimitReached are the terminal states a RunResult reports.
type RunState int

const (
	StateAwaitingModel RunState = iota
	StateHasToolCalls
	StateDone
	StateLimitReached
)

func (s RunState) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateHasToolCalls:
		return "has_tool_calls"
	case StateDone:
		return "done"
	case StateLimitReached:
		return "limit_reached"
	default:
		return "unknown"
	}
}

// RunResult is the outcome of one user request.
type RunResult struct {
	State      RunState
	FinalText  string
	ModelCalls int
}

// Hooks let the caller observe a run without coupling the loop to a
// display. Every field is optional.
type Hooks struct {
	OnTurnStart     func()
	OnTurnEnd       func()
	OnAssistantTurn func(turn Turn)
	OnToolCall      func(call ToolCallRequest)
	OnToolResult    func(call ToolCallRequest, result tools.Result)
}

// Agent drives the tool-calling loop: model call, tool execution,
// result feedback, repeated until the model answers in plain text or
// the iteration cap stops the run.
type Agent struct {
	streamer      Streamer
	registry      *tools.Registry
	conversation  *Conversation
	defs          []tools.Definition
	hooks         Hooks
	systemPrompt  string
	maxIterations int
}

// New creates an agent. maxIterations caps the number of model calls a
// single Run may issue.
func New(streamer Streamer, registry *tools.Registry, systemPrompt string, maxIterations int, hooks Hooks) *Agent {
	return &Agent{
		streamer:      streamer,
		registry:      registry,
		conversation:  NewConversation(),
		defs:          tools.Definitions(),
		hooks:         hooks,
		systemPrompt:  systemPrompt,
		maxIterations: maxIterations,
	}
}

// Conversation exposes the append-only turn log.
func (a *Agent) Conversation() *Conversation { return a.conversation }

// Reset discards the conversation history.
func (a *Agent) Reset() { a.conversation.Reset() }

// Run processes one user request to completion. Tool failures feed back
// to the model and the loop continues; only transport failures abort,
// leaving history exactly as it was before the failed call.
func (a *Agent) Run(ctx context.Context, userInput string) (*RunResult, error) {
	a.conversation.Append(NewUserTurn(userInput))

	modelCalls := 0
	for {
		if modelCalls >= a.maxIterations {
			return &RunResult{State: StateLimitReached, ModelCalls: modelCalls}, nil
		}
		modelCalls++

		if a.hooks.OnTurnStart != nil {
			a.hooks.OnTurnStart()
		}
		turn, err := a.streamOnce(ctx)
		if a.hooks.OnTurnEnd != nil {
			a.hooks.OnTurnEnd()
		}
		if err != nil {
			return nil, err
		}

		a.conversation.Append(turn)
		if a.hooks.OnAssistantTurn != nil {
			a.hooks.OnAssistantTurn(turn)
		}

		if len(turn.ToolCalls) == 0 {
			return &RunResult{State: StateDone, FinalText: turn.Text, ModelCalls: modelCalls}, nil
		}

		// The tools from the final permitted turn still run; the cap
		// check above only gates the next model call.
		for _, call := range turn.ToolCalls {
			if a.hooks.OnToolCall != nil {
				a.hooks.OnToolCall(call)
			}
			result := a.registry.Execute(call.Name, call.Arguments)
			if a.hooks.OnToolResult != nil {
				a.hooks.OnToolResult(call, result)
			}
			a.conversation.Append(NewToolResultTurn(call.ID, call.Name, result.Text))
		}
	}
}

// streamOnce performs a single streaming model call and assembles the
// response into one assistant turn. On failure nothing has been
// appended to the conversation.
func (a *Agent) streamOnce(ctx context.Context) (Turn, error) {
	stream, err := a.streamer.StreamChat(ctx, a.systemPrompt, a.conversation.Snapshot(), a.defs)
	if err != nil {
		return Turn{}, fmt.Errorf("LLM call failed: %w", err)
	}
	defer stream.Close()

	asm := NewAssembler()
	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Turn{}, fmt.Errorf("LLM stream failed: %w", err)
		}
		asm.Feed(ev)
	}
	return asm.Finish(), nil
}
