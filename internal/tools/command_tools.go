package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

type bashParams struct {
	Command string `json:"command"`
}

func (r *Registry) bash(p bashParams) Result {
	timeout := time.Duration(r.bashTimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", p.Command)
	cmd.Dir = r.workingDir

	// Inherit the environment with HOME ensured for tools that need it.
	env := os.Environ()
	if home, err := os.UserHomeDir(); err == nil {
		env = append(env, "HOME="+home)
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return errorf("Command timed out after %ds: %s", r.bashTimeoutSecs, p.Command)
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return errorf("%v", err)
		}
	}

	var parts []string
	if stdout.Len() > 0 {
		parts = append(parts, stdout.String())
	}
	if stderr.Len() > 0 {
		parts = append(parts, "[stderr]\n"+stderr.String())
	}
	if exitCode != 0 {
		// Include the exit code so the model knows the command failed.
		parts = append(parts, fmt.Sprintf("[exit code: %d]", exitCode))
	}

	if len(parts) == 0 {
		return Result{Text: "[no output]"}
	}
	return Result{Text: strings.Join(parts, "\n")}
}
