package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"

	"github.com/homecode-dev/homecode/internal/agent"
	"github.com/homecode-dev/homecode/internal/config"
	"github.com/homecode-dev/homecode/internal/provider"
	"github.com/homecode-dev/homecode/internal/storage"
	"github.com/homecode-dev/homecode/internal/tools"
	"github.com/homecode-dev/homecode/internal/ui"
)

const (
	// requestTimeout bounds one full agent run, tool executions included.
	requestTimeout = 5 * time.Minute
	// detectTimeout bounds the startup model listing.
	detectTimeout = 15 * time.Second
)

func startREPL() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	renderer := ui.NewRenderer()

	endpoint := provider.NewEndpoint(cfg.Host, cfg.APIKey)

	usage := &storage.TokenUsage{}
	endpoint.SetUsageHandler(usage.Add)

	model, err := resolveModel(endpoint, cfg.Model, renderer)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderer.ErrorMessage(err))
		os.Exit(1)
	}
	endpoint.SetModel(model)

	fmt.Println(renderer.Banner(model, cfg.Host, cfg.WorkingDir))

	// Transcript failures must not block the session
	var transcript *storage.Transcript
	if dir, derr := storage.DefaultTranscriptDir(); derr != nil {
		fmt.Println(renderer.WarningMessage(fmt.Sprintf("Transcript disabled: %v", derr)))
	} else if tr, terr := storage.OpenTranscript(dir); terr != nil {
		fmt.Println(renderer.WarningMessage(fmt.Sprintf("Transcript disabled: %v", terr)))
	} else {
		transcript = tr
		defer transcript.Close()
	}

	logEntry := func(entry storage.TranscriptEntry) {
		if transcript == nil {
			return
		}
		if werr := transcript.Append(entry); werr != nil {
			fmt.Fprintln(os.Stderr, renderer.WarningMessage(fmt.Sprintf("Transcript write failed: %v", werr)))
		}
	}

	spinner := ui.NewSpinner()
	spin := func(msg string) {
		if !cfg.NoSpinner {
			spinner.Start(msg)
		}
	}
	unspin := func() {
		if !cfg.NoSpinner {
			spinner.Stop()
		}
	}

	hooks := agent.Hooks{
		OnTurnStart: func() {
			fmt.Println(renderer.Rule())
			spin("Thinking...")
		},
		OnTurnEnd: unspin,
		OnAssistantTurn: func(turn agent.Turn) {
			if cfg.ShowThinking && turn.Reasoning != "" {
				fmt.Println(renderer.ReasoningBlock(turn.Reasoning))
				fmt.Println()
			}
			logEntry(storage.TranscriptEntry{Role: "assistant", Content: turn.Text})
		},
		OnToolCall: func(call agent.ToolCallRequest) {
			unspin()
			fmt.Println(renderer.ToolCallLine(call.Name, call.Arguments))
			spin(fmt.Sprintf("Running %s...", call.Name))
		},
		OnToolResult: func(call agent.ToolCallRequest, result tools.Result) {
			unspin()
			fmt.Println(renderer.ToolResultPanel(call.Name, result.Text, result.IsError))
			logEntry(storage.TranscriptEntry{
				Role:       "tool",
				Content:    result.Text,
				ToolName:   call.Name,
				ToolCallID: call.ID,
				IsError:    result.IsError,
			})
		},
	}

	registry := tools.NewRegistry(cfg.WorkingDir, cfg.BashTimeoutSecs)
	homeAgent := agent.New(endpoint, registry, agent.BuildSystemPrompt(cfg.WorkingDir), cfg.MaxToolIterations, hooks)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36m>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewFileCompleter(cfg.WorkingDir),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Println(renderer.InfoMessage("(Interrupted — press Ctrl+D or type /exit to quit)"))
			continue
		}
		if err != nil { // io.EOF
			fmt.Println(renderer.InfoMessage("Goodbye!"))
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Expand @ file references before processing
		if strings.Contains(line, "@") {
			expanded, eerr := expandFileReferences(line, cfg.WorkingDir)
			if eerr != nil {
				fmt.Fprintln(os.Stderr, renderer.ErrorMessage(eerr))
				continue
			}
			line = expanded
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(line, homeAgent, endpoint, renderer, usage); quit {
				break
			}
			continue
		}

		logEntry(storage.TranscriptEntry{Role: "user", Content: line})

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		res, err := homeAgent.Run(ctx, line)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, renderer.ErrorMessage(err))
			fmt.Println()
			continue
		}

		switch res.State {
		case agent.StateLimitReached:
			fmt.Println(renderer.IterationLimitMessage(cfg.MaxToolIterations))
		case agent.StateDone:
			if strings.TrimSpace(res.FinalText) != "" {
				fmt.Println(ui.RenderMarkdown(res.FinalText))
			}
		}
		fmt.Println()
	}
}

// resolveModel returns the configured model, or asks the server what it
// serves and picks one: automatically when there is a single model,
// interactively when there are several.
func resolveModel(endpoint *provider.Endpoint, configured string, renderer *ui.Renderer) (string, error) {
	if configured != "" {
		return configured, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()

	models, err := endpoint.DetectModels(ctx)
	if err != nil {
		return "", fmt.Errorf("no model configured and detection failed: %w", err)
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no model configured and the server reports none")
	}
	if len(models) == 1 {
		fmt.Println(renderer.InfoMessage(fmt.Sprintf("Using model %s", models[0])))
		return models[0], nil
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(models[index]), strings.ToLower(input))
	}
	prompt := promptui.Select{
		Label:             "Select a model",
		Items:             models,
		Size:              20,
		Searcher:          searcher,
		StartInSearchMode: true,
		HideSelected:      true,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("model selection cancelled: %w", err)
	}
	return selected, nil
}

// handleCommand runs a slash command and reports whether the REPL should
// exit.
func handleCommand(cmd string, homeAgent *agent.Agent, endpoint *provider.Endpoint, renderer *ui.Renderer, usage *storage.TokenUsage) bool {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "/exit", "/quit":
		fmt.Println(renderer.InfoMessage("Goodbye!"))
		return true

	case "/reset":
		homeAgent.Reset()
		fmt.Println(renderer.InfoMessage("Conversation history cleared."))

	case "/model":
		info := endpoint.Info()
		fmt.Println(renderer.InfoMessage(fmt.Sprintf("Model: %s  |  Host: %s", info.Model, info.Host)))

	case "/usage":
		fmt.Println(renderer.FormatUsage(usage))

	case "/help":
		printHelp()

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type '/help' for available commands.")
	}
	return false
}

func printHelp() {
	commands := []struct{ name, desc string }{
		{"/exit", "Exit HomeCode"},
		{"/quit", "Exit HomeCode"},
		{"/reset", "Clear conversation history and start fresh"},
		{"/model", "Show current model name"},
		{"/usage", "Show token usage statistics"},
		{"/help", "Show this help message"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n", ui.ToolName.Render(c.name), ui.Subtle.Render(c.desc))
	}
}
