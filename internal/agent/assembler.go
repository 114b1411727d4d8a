package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Assembler folds a stream of deltas into exactly one assistant turn.
// Content and reasoning concatenate in arrival order; tool-call deltas
// group by index, ids kept when the provider sends them and synthesized
// at finalization otherwise.
type Assembler struct {
	// OnFirstContent fires once, when the first content delta arrives.
	// OnStreamEnd fires once, from Finish. Both are optional.
	OnFirstContent func()
	OnStreamEnd    func()

	content    strings.Builder
	reasoning  strings.Builder
	order      []int
	partial    map[int]*partialCall
	sawContent bool
}

type partialCall struct {
	id   string
	name strings.Builder
	args strings.Builder
}

func NewAssembler() *Assembler {
	return &Assembler{partial: make(map[int]*partialCall)}
}

// Feed records one stream event.
func (a *Assembler) Feed(ev StreamEvent) {
	if ev.ContentDelta != "" {
		if !a.sawContent {
			a.sawContent = true
			if a.OnFirstContent != nil {
				a.OnFirstContent()
			}
		}
		a.content.WriteString(ev.ContentDelta)
	}
	if ev.ReasoningDelta != "" {
		a.reasoning.WriteString(ev.ReasoningDelta)
	}
	if tc := ev.ToolCall; tc != nil {
		pc, ok := a.partial[tc.Index]
		if !ok {
			pc = &partialCall{}
			a.partial[tc.Index] = pc
			a.order = append(a.order, tc.Index)
		}
		if tc.ID != "" {
			pc.id = tc.ID
		}
		pc.name.WriteString(tc.NameDelta)
		pc.args.WriteString(tc.ArgumentsDelta)
	}
}

// Finish produces the assembled assistant turn. Calls appear in the
// order their indices were first seen. An argument payload that fails
// to parse becomes an empty map; the tool layer reports the mismatch,
// assembly never does.
func (a *Assembler) Finish() Turn {
	if a.OnStreamEnd != nil {
		a.OnStreamEnd()
	}

	var calls []ToolCallRequest
	for i, idx := range a.order {
		pc := a.partial[idx]
		id := pc.id
		if id == "" {
			id = fmt.Sprintf("call_%d", i)
		}
		raw := pc.args.String()
		args := map[string]any{}
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				args = map[string]any{}
			}
		}
		calls = append(calls, ToolCallRequest{
			ID:        id,
			Name:      pc.name.String(),
			Arguments: args,
			Raw:       raw,
		})
	}
	return NewAssistantTurn(a.content.String(), a.reasoning.String(), calls)
}
