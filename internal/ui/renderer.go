package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/homecode-dev/homecode/internal/storage"
)

// maxResultLines caps how much of a tool result is shown in the panel.
const maxResultLines = 25

// Renderer handles all UI output formatting
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Banner returns the startup panel showing the active model, host, and
// working directory, followed by a usage hint.
func (r *Renderer) Banner(model, host, workdir string) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("HomeCode"))
	sb.WriteString(Subtle.Render("  model: "))
	sb.WriteString(ToolArg.Render(model))
	sb.WriteString(Subtle.Render("  host: "))
	sb.WriteString(Subtle.Render(host))
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render("workdir: " + workdir))

	panel := BannerStyle.Render(sb.String())
	hint := Subtle.Render("Type your request, Enter to submit, /exit to quit")
	return panel + "\n" + hint + "\n"
}

// Rule returns a dim horizontal line separating assistant turns.
func (r *Renderer) Rule() string {
	return Subtle.Render(strings.Repeat("─", 60))
}

// ToolCallLine returns a one-line summary of a tool invocation with its
// arguments, long values truncated.
func (r *Renderer) ToolCallLine(name string, args map[string]interface{}) string {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(ToolName.Render(name))

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		val := fmt.Sprintf("%v", args[k])
		if runes := []rune(val); len(runes) > 80 {
			val = string(runes[:77]) + "..."
		}
		sb.WriteString(Subtle.Render("  " + k + "="))
		sb.WriteString(ToolArg.Render(val))
	}
	return sb.String()
}

// ToolResultPanel returns a bordered block with the tool result, capped at
// maxResultLines. Errors get a red border, successes a green one.
func (r *Renderer) ToolResultPanel(toolName, result string, isError bool) string {
	lines := strings.Split(result, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	truncated := 0
	if len(lines) > maxResultLines {
		truncated = len(lines) - maxResultLines
		lines = lines[:maxResultLines]
	}

	style, border := ToolOut, Success
	if isError {
		style, border = ToolError, Error
	}
	body := style.Render(strings.Join(lines, "\n"))
	if truncated > 0 {
		body += "\n" + Subtle.Render(fmt.Sprintf("... (%d more lines)", truncated))
	}

	title := Subtle.Render(toolName)
	return title + "\n" + ResultPanel.BorderForeground(border).Render(body)
}

// ReasoningBlock formats model reasoning shown in thinking mode.
func (r *Renderer) ReasoningBlock(text string) string {
	return Subtle.Render(strings.TrimSpace(text))
}

// IterationLimitMessage explains that the agent hit its iteration cap.
func (r *Renderer) IterationLimitMessage(limit int) string {
	msg := fmt.Sprintf("Tool iteration limit (%d) reached. The agent stopped to avoid runaway loops.", limit)
	return LimitPanel.Render(WarningStyle.Render(msg))
}

// ErrorMessage formats an error message
func (r *Renderer) ErrorMessage(err error) string {
	return ToolError.Render("Error:") + fmt.Sprintf(" %v", err)
}

// WarningMessage formats a warning message
func (r *Renderer) WarningMessage(msg string) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, msg))
}

// InfoMessage formats an info message
func (r *Renderer) InfoMessage(msg string) string {
	return Subtle.Render(msg)
}

// SuccessMessage formats a success message
func (r *Renderer) SuccessMessage(msg string) string {
	return SuccessStyle.Render(fmt.Sprintf("%s %s", IconSuccess, msg))
}

// FormatUsage formats token usage statistics for display
func (r *Renderer) FormatUsage(usage *storage.TokenUsage) string {
	if usage == nil || usage.TotalTokens == 0 {
		return Subtle.Render("No token usage recorded yet.")
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(IconInfo+" Token Usage") + "\n")
	sb.WriteString(fmt.Sprintf("  Prompt tokens:     %d\n", usage.PromptTokens))
	sb.WriteString(fmt.Sprintf("  Completion tokens: %d\n", usage.CompletionTokens))
	sb.WriteString(fmt.Sprintf("  Total tokens:      %d\n", usage.TotalTokens))

	return sb.String()
}
