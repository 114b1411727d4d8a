package tools

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type readFileParams struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type writeFileParams struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type editFileParams struct {
	Path      string `json:"path"`
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

// absPath resolves p against the working directory when relative.
func (r *Registry) absPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.workingDir, p)
}

// splitLines splits text into lines the way line counts are reported:
// CRLF normalized, no empty element after a final newline, and empty
// text has zero lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func rstrip(s string) string {
	return strings.TrimRight(s, " \t\r\n\v\f")
}

func (r *Registry) readFile(p readFileParams) Result {
	abs := r.absPath(p.Path)

	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return errorf("Is a directory: %s", abs)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return errorf("File not found: %s", abs)
		case errors.Is(err, os.ErrPermission):
			return errorf("Permission denied: %s", abs)
		default:
			return errorf("%v", err)
		}
	}

	lines := splitLines(string(data))
	total := len(lines)

	start := 0
	if p.Offset > 0 {
		start = p.Offset - 1
	}
	end := total
	if p.Limit > 0 {
		end = start + p.Limit
	}

	header := fmt.Sprintf("File: %s (%d lines total)", abs, total)
	if p.Offset > 0 || p.Limit > 0 {
		shown := end
		if shown > total {
			shown = total
		}
		header += fmt.Sprintf(" [showing lines %d-%d]", start+1, shown)
	}

	// Clamp the requested range the way slicing would.
	lo, hi := start, end
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	if hi < lo {
		hi = lo
	}

	numbered := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		numbered = append(numbered, fmt.Sprintf("%6d→ %s", i+1, rstrip(lines[i])))
	}
	return Result{Text: header + "\n" + strings.Join(numbered, "\n")}
}

func (r *Registry) writeFile(p writeFileParams) Result {
	abs := r.absPath(p.Path)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return errorf("%v", err)
	}
	if err := os.WriteFile(abs, []byte(p.Content), 0o644); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return errorf("Permission denied: %s", abs)
		}
		return errorf("%v", err)
	}

	lines := strings.Count(p.Content, "\n")
	if p.Content != "" && !strings.HasSuffix(p.Content, "\n") {
		lines++
	}
	return Result{Text: fmt.Sprintf("Written %d lines to %s", lines, abs)}
}

func (r *Registry) editFile(p editFileParams) Result {
	abs := r.absPath(p.Path)

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errorf("File not found: %s", abs)
		}
		return errorf("%v", err)
	}
	content := string(data)

	count := strings.Count(content, p.OldString)
	if count == 0 {
		return errorf("String not found in %s.\nMake sure to use the exact characters including whitespace.", abs)
	}
	if count > 1 {
		return errorf("String appears %d times in %s — cannot replace unambiguously. Include more context (surrounding lines) in old_string.", count, abs)
	}

	updated := strings.Replace(content, p.OldString, p.NewString, 1)
	if err := os.WriteFile(abs, []byte(updated), 0o644); err != nil {
		return errorf("%v", err)
	}
	return Result{Text: fmt.Sprintf("Edited %s: replaced %d lines with %d lines",
		abs, len(splitLines(p.OldString)), len(splitLines(p.NewString)))}
}
