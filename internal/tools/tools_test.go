package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "homecode-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func testRegistry(dir string) *Registry {
	return NewRegistry(dir, 30)
}

func TestReadFile(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	// Create test file
	testFile := filepath.Join(dir, "test.txt")
	os.WriteFile(testFile, []byte("line1\nline2\nline3\nline4\nline5\n"), 0644)

	// Full read: header with total count, numbered lines
	res := r.Execute("read_file", map[string]any{"path": "test.txt"})
	if res.IsError {
		t.Fatalf("read_file failed: %s", res.Text)
	}
	if !strings.Contains(res.Text, fmt.Sprintf("File: %s (5 lines total)", testFile)) {
		t.Errorf("Missing header, got: %s", res.Text)
	}
	if !strings.Contains(res.Text, "     1→ line1") {
		t.Errorf("Missing numbered first line, got: %s", res.Text)
	}
	if !strings.Contains(res.Text, "     5→ line5") {
		t.Errorf("Missing numbered last line, got: %s", res.Text)
	}

	// Offset and limit select a range and annotate the header
	res = r.Execute("read_file", map[string]any{"path": "test.txt", "offset": float64(2), "limit": float64(2)})
	if res.IsError {
		t.Fatalf("read_file with range failed: %s", res.Text)
	}
	if !strings.Contains(res.Text, "[showing lines 2-3]") {
		t.Errorf("Missing range annotation, got: %s", res.Text)
	}
	if !strings.Contains(res.Text, "line2") || !strings.Contains(res.Text, "line3") {
		t.Errorf("Expected lines 2-3, got: %s", res.Text)
	}
	if strings.Contains(res.Text, "line4") {
		t.Errorf("Line outside range included: %s", res.Text)
	}

	// Offset without limit reads to the end
	res = r.Execute("read_file", map[string]any{"path": "test.txt", "offset": float64(4)})
	if !strings.Contains(res.Text, "[showing lines 4-5]") {
		t.Errorf("Missing range annotation, got: %s", res.Text)
	}

	// Missing file
	res = r.Execute("read_file", map[string]any{"path": "missing.txt"})
	if !res.IsError {
		t.Error("Expected error for missing file")
	}
	if !strings.Contains(res.Text, "File not found: ") {
		t.Errorf("Unexpected error text: %s", res.Text)
	}

	// Directory
	res = r.Execute("read_file", map[string]any{"path": "."})
	if !res.IsError || !strings.Contains(res.Text, "Is a directory: ") {
		t.Errorf("Expected directory error, got: %s", res.Text)
	}
}

func TestWriteFile(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	testFile := filepath.Join(dir, "new.txt")
	res := r.Execute("write_file", map[string]any{"path": "new.txt", "content": "hello world"})
	if res.IsError {
		t.Fatalf("write_file failed: %s", res.Text)
	}
	if res.Text != fmt.Sprintf("Written 1 lines to %s", testFile) {
		t.Errorf("Unexpected result: %s", res.Text)
	}

	// Verify content
	data, _ := os.ReadFile(testFile)
	if string(data) != "hello world" {
		t.Errorf("Content mismatch: got %q", string(data))
	}

	// Line counting: trailing newline does not add a line
	res = r.Execute("write_file", map[string]any{"path": "two.txt", "content": "a\nb\n"})
	if !strings.Contains(res.Text, "Written 2 lines") {
		t.Errorf("Unexpected count: %s", res.Text)
	}
	res = r.Execute("write_file", map[string]any{"path": "empty.txt", "content": ""})
	if !strings.Contains(res.Text, "Written 0 lines") {
		t.Errorf("Unexpected count for empty file: %s", res.Text)
	}

	// Parent directories are created
	nested := filepath.Join(dir, "nested", "deep", "file.txt")
	res = r.Execute("write_file", map[string]any{"path": "nested/deep/file.txt", "content": "x"})
	if res.IsError {
		t.Fatalf("write_file with nested dirs failed: %s", res.Text)
	}
	if _, err := os.Stat(nested); err != nil {
		t.Errorf("Nested file not created: %v", err)
	}
}

func TestEditFile(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	testFile := filepath.Join(dir, "edit.txt")
	os.WriteFile(testFile, []byte("alpha\nbeta\ngamma\n"), 0644)

	res := r.Execute("edit_file", map[string]any{
		"path": "edit.txt", "old_string": "beta", "new_string": "delta",
	})
	if res.IsError {
		t.Fatalf("edit_file failed: %s", res.Text)
	}
	if res.Text != fmt.Sprintf("Edited %s: replaced 1 lines with 1 lines", testFile) {
		t.Errorf("Unexpected result: %s", res.Text)
	}
	data, _ := os.ReadFile(testFile)
	if string(data) != "alpha\ndelta\ngamma\n" {
		t.Errorf("Content mismatch: got %q", string(data))
	}

	// Applying the same edit again fails: the string is gone
	res = r.Execute("edit_file", map[string]any{
		"path": "edit.txt", "old_string": "beta", "new_string": "delta",
	})
	if !res.IsError || !strings.Contains(res.Text, "String not found in ") {
		t.Errorf("Expected not-found on second apply, got: %s", res.Text)
	}

	// Ambiguous match leaves the file untouched
	dupFile := filepath.Join(dir, "dup.txt")
	os.WriteFile(dupFile, []byte("same\nsame\n"), 0644)
	res = r.Execute("edit_file", map[string]any{
		"path": "dup.txt", "old_string": "same", "new_string": "changed",
	})
	if !res.IsError {
		t.Fatal("Expected error for ambiguous match")
	}
	if !strings.Contains(res.Text, "2 times") || !strings.Contains(res.Text, "cannot replace unambiguously") {
		t.Errorf("Unexpected error text: %s", res.Text)
	}
	data, _ = os.ReadFile(dupFile)
	if string(data) != "same\nsame\n" {
		t.Errorf("Ambiguous edit modified the file: %q", string(data))
	}

	// Missing file
	res = r.Execute("edit_file", map[string]any{
		"path": "nope.txt", "old_string": "a", "new_string": "b",
	})
	if !res.IsError || !strings.Contains(res.Text, "File not found: ") {
		t.Errorf("Unexpected error text: %s", res.Text)
	}

	// Replacing a unique string with itself succeeds and changes nothing
	res = r.Execute("edit_file", map[string]any{
		"path": "edit.txt", "old_string": "alpha", "new_string": "alpha",
	})
	if res.IsError {
		t.Errorf("No-op edit failed: %s", res.Text)
	}
	data, _ = os.ReadFile(testFile)
	if string(data) != "alpha\ndelta\ngamma\n" {
		t.Errorf("No-op edit modified the file: %q", string(data))
	}

	// Multi-line replacement counts
	os.WriteFile(testFile, []byte("one\ntwo\nthree\n"), 0644)
	res = r.Execute("edit_file", map[string]any{
		"path": "edit.txt", "old_string": "one\ntwo", "new_string": "single",
	})
	if !strings.Contains(res.Text, "replaced 2 lines with 1 lines") {
		t.Errorf("Unexpected counts: %s", res.Text)
	}
}

func TestBash(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	res := r.Execute("bash", map[string]any{"command": "echo hello"})
	if res.IsError {
		t.Fatalf("bash failed: %s", res.Text)
	}
	if res.Text != "hello\n" {
		t.Errorf("Unexpected output: %q", res.Text)
	}

	// Commands run in the working directory
	res = r.Execute("bash", map[string]any{"command": "pwd"})
	if !strings.Contains(res.Text, filepath.Base(dir)) {
		t.Errorf("Expected working dir in pwd output: %q", res.Text)
	}

	// Non-zero exit code is reported
	res = r.Execute("bash", map[string]any{"command": "exit 3"})
	if res.IsError {
		t.Errorf("Non-zero exit should not be an error result: %s", res.Text)
	}
	if res.Text != "[exit code: 3]" {
		t.Errorf("Unexpected output: %q", res.Text)
	}

	// Stderr is tagged
	res = r.Execute("bash", map[string]any{"command": "echo oops >&2"})
	if res.Text != "[stderr]\noops\n" {
		t.Errorf("Unexpected output: %q", res.Text)
	}

	// All three sections combine
	res = r.Execute("bash", map[string]any{"command": "echo out; echo err >&2; exit 2"})
	for _, want := range []string{"out\n", "[stderr]\nerr\n", "[exit code: 2]"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("Missing %q in output: %q", want, res.Text)
		}
	}

	// Silence
	res = r.Execute("bash", map[string]any{"command": "true"})
	if res.Text != "[no output]" {
		t.Errorf("Unexpected output: %q", res.Text)
	}
}

func TestBashTimeout(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := NewRegistry(dir, 1)

	res := r.Execute("bash", map[string]any{"command": "sleep 5"})
	if !res.IsError {
		t.Fatal("Expected timeout error")
	}
	if res.Text != "Error: Command timed out after 1s: sleep 5" {
		t.Errorf("Unexpected error text: %q", res.Text)
	}
}

func setupGrepTree(t *testing.T) string {
	dir := setupTestDir(t)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world\nfoo bar\nhello again\n"), 0644)
	os.MkdirAll(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("hello sub\n"), 0644)
	os.MkdirAll(filepath.Join(dir, ".hidden"), 0755)
	os.WriteFile(filepath.Join(dir, ".hidden", "c.txt"), []byte("hello hidden\n"), 0644)
	os.WriteFile(filepath.Join(dir, "d.pyc"), []byte("hello binary\n"), 0644)
	return dir
}

func TestGrep(t *testing.T) {
	dir := setupGrepTree(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	// Directory scan skips hidden dirs and binary extensions
	res := r.Execute("grep", map[string]any{"pattern": "hello"})
	if res.IsError {
		t.Fatalf("grep failed: %s", res.Text)
	}
	if !strings.Contains(res.Text, "Found 3 match(es) for /hello/") {
		t.Errorf("Unexpected count: %s", res.Text)
	}
	if !strings.Contains(res.Text, filepath.Join(dir, "a.txt")+":1> hello world") {
		t.Errorf("Missing match line: %s", res.Text)
	}
	if strings.Contains(res.Text, ".hidden") || strings.Contains(res.Text, "d.pyc") {
		t.Errorf("Skipped files leaked into results: %s", res.Text)
	}

	// A glob filter searches everything it matches, hidden dirs included
	res = r.Execute("grep", map[string]any{"pattern": "hello", "glob_pattern": "*.txt"})
	if !strings.Contains(res.Text, "Found 4 match(es) for /hello/") {
		t.Errorf("Unexpected count with glob filter: %s", res.Text)
	}
	if !strings.Contains(res.Text, ".hidden") {
		t.Errorf("Glob filter should not skip hidden dirs: %s", res.Text)
	}

	// Context lines carry a space marker and groups are separated
	res = r.Execute("grep", map[string]any{"pattern": "foo", "context": float64(1)})
	if !strings.Contains(res.Text, ":2> foo bar") {
		t.Errorf("Missing match marker: %s", res.Text)
	}
	if !strings.Contains(res.Text, ":1  hello world") || !strings.Contains(res.Text, ":3  hello again") {
		t.Errorf("Missing context lines: %s", res.Text)
	}
	if !strings.Contains(res.Text, "\n--") {
		t.Errorf("Missing group separator: %s", res.Text)
	}

	// Searching a single file
	res = r.Execute("grep", map[string]any{"pattern": "hello", "path": "a.txt"})
	if !strings.Contains(res.Text, "Found 2 match(es)") {
		t.Errorf("Unexpected count for single file: %s", res.Text)
	}

	// No matches
	res = r.Execute("grep", map[string]any{"pattern": "zzz"})
	if res.Text != "No matches for pattern /zzz/" {
		t.Errorf("Unexpected output: %q", res.Text)
	}

	// Invalid regex
	res = r.Execute("grep", map[string]any{"pattern": "["})
	if !res.IsError || !strings.Contains(res.Text, "Invalid regex pattern: ") {
		t.Errorf("Expected invalid pattern error, got: %s", res.Text)
	}
}

func TestGlob(t *testing.T) {
	dir := setupGrepTree(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	// Top-level pattern matches only at that depth
	res := r.Execute("glob", map[string]any{"pattern": "*.txt"})
	if res.IsError {
		t.Fatalf("glob failed: %s", res.Text)
	}
	if !strings.Contains(res.Text, "Found 1 file(s):") || !strings.Contains(res.Text, "a.txt") {
		t.Errorf("Unexpected result: %s", res.Text)
	}

	// Recursive matching includes hidden directories
	res = r.Execute("glob", map[string]any{"pattern": "**/*.txt"})
	if !strings.Contains(res.Text, "Found 3 file(s):") {
		t.Errorf("Unexpected count: %s", res.Text)
	}
	for _, want := range []string{"a.txt", filepath.Join("sub", "b.txt"), filepath.Join(".hidden", "c.txt")} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("Missing %q in result: %s", want, res.Text)
		}
	}

	// Patterns anchored at a subdirectory
	res = r.Execute("glob", map[string]any{"pattern": "sub/*.txt"})
	if !strings.Contains(res.Text, "Found 1 file(s):") {
		t.Errorf("Unexpected result: %s", res.Text)
	}

	// No matches reports the pattern and base
	res = r.Execute("glob", map[string]any{"pattern": "*.xyz"})
	if res.Text != fmt.Sprintf("No files match pattern: *.xyz in %s", dir) {
		t.Errorf("Unexpected output: %q", res.Text)
	}
}

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, rel string
		want         bool
	}{
		{"*.go", "main.go", true},
		{"*.go", "cmd/main.go", false},
		{"**/*.go", "main.go", true},
		{"**/*.go", "a/b/c/main.go", true},
		{"src/*.ts", "src/app.ts", true},
		{"src/*.ts", "src/deep/app.ts", false},
		{"src/**/*.ts", "src/deep/app.ts", true},
		{"**", "anything/at/all", true},
	}
	for _, c := range cases {
		if got := matchGlob(c.pattern, c.rel); got != c.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", c.pattern, c.rel, got, c.want)
		}
	}
}

func TestExecuteArgumentErrors(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	// Unknown tool
	res := r.Execute("fetch_url", map[string]any{"url": "http://example.com"})
	if !res.IsError || res.Text != "Error: Unknown tool 'fetch_url'" {
		t.Errorf("Unexpected result: %q", res.Text)
	}

	// Missing required parameter
	res = r.Execute("read_file", map[string]any{})
	if !res.IsError || !strings.Contains(res.Text, "Wrong arguments for tool 'read_file'") {
		t.Errorf("Unexpected result: %q", res.Text)
	}
	if !strings.Contains(res.Text, "missing required parameter 'path'") {
		t.Errorf("Unexpected detail: %q", res.Text)
	}

	// Unknown extra parameter
	res = r.Execute("read_file", map[string]any{"path": "x.txt", "mode": "full"})
	if !res.IsError || !strings.Contains(res.Text, "Wrong arguments for tool 'read_file'") {
		t.Errorf("Unexpected result: %q", res.Text)
	}

	// Mistyped parameter
	res = r.Execute("read_file", map[string]any{"path": "x.txt", "offset": "two"})
	if !res.IsError || !strings.Contains(res.Text, "Wrong arguments for tool 'read_file'") {
		t.Errorf("Unexpected result: %q", res.Text)
	}
}

func TestDefinitionsCoverRegistry(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)
	r := testRegistry(dir)

	// Every declared tool dispatches to a handler, never to the
	// unknown-tool branch.
	for _, def := range Definitions() {
		res := r.Execute(def.Name, map[string]any{})
		if strings.Contains(res.Text, "Unknown tool") {
			t.Errorf("Definition %q has no handler", def.Name)
		}
	}
	if len(Definitions()) != 6 {
		t.Errorf("Expected 6 tool definitions, got %d", len(Definitions()))
	}
}
