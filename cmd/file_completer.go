package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// Dependency and artifact directories never offered for completion or
// expansion.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
}

// FileCompleter implements readline.AutoCompleter for @ file references.
type FileCompleter struct {
	workingDir string
}

func NewFileCompleter(workingDir string) *FileCompleter {
	return &FileCompleter{workingDir: workingDir}
}

// Do completes the path fragment following the last @ before the cursor.
// Candidates are the remaining suffixes of matching project paths.
func (f *FileCompleter) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	at := strings.LastIndex(before, "@")
	if at == -1 {
		return nil, 0
	}
	prefix := before[at+1:]

	entries := projectEntries(f.workingDir, true)
	if len(entries) == 0 {
		return nil, 0
	}

	var candidates [][]rune
	lower := strings.ToLower(prefix)
	for _, entry := range entries {
		if prefix == "" || strings.HasPrefix(strings.ToLower(entry), lower) {
			candidates = append(candidates, []rune(entry[len(prefix):]))
		}
	}
	return candidates, len(prefix)
}

// projectEntries walks root and returns its paths relative to root,
// skipping hidden entries and the dependency directories. Directories
// carry a trailing slash and are included only when includeDirs is set.
func projectEntries(root string, includeDirs bool) []string {
	var entries []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
			return filepath.SkipDir
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		if d.IsDir() {
			if includeDirs {
				entries = append(entries, rel+"/")
			}
			return nil
		}
		entries = append(entries, rel)
		return nil
	})
	return entries
}

// selectFile opens an interactive picker over the project's files and
// returns the chosen path relative to workingDir.
func selectFile(workingDir string) (string, error) {
	files := projectEntries(workingDir, false)
	if len(files) == 0 {
		return "", fmt.Errorf("no files found in directory")
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(files[index]), strings.ToLower(input))
	}
	prompt := promptui.Select{
		Label:             "Select a file",
		Items:             files,
		Size:              20,
		Searcher:          searcher,
		StartInSearchMode: true,
		HideSelected:      true,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}

// fencedBlock renders one file as a fenced markdown block with its
// extension as the language hint.
func fencedBlock(path string, content []byte) string {
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	return fmt.Sprintf("**File: `%s`**\n```%s\n%s\n```", path, lang, content)
}

// expandDirectoryReference inlines every readable file under the
// referenced directory. The header counts the files found; unreadable
// ones are skipped.
func expandDirectoryReference(dirPath, workingDir string) string {
	root := filepath.Join(workingDir, dirPath)

	files := projectEntries(root, false)
	if len(files) == 0 {
		return fmt.Sprintf("\n\n**Directory: `%s`** (empty or no readable files)\n", dirPath)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\n**Directory: `%s`** (%d files)\n", dirPath, len(files))
	for _, rel := range files {
		content, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		sb.WriteString("\n" + fencedBlock(filepath.Join(dirPath, rel), content) + "\n")
	}
	return sb.String()
}

// expandFileReferences replaces each @path in message with the
// referenced file rendered as a fenced block. A bare trailing @ opens
// the interactive picker; a directory reference inlines its files.
func expandFileReferences(message, workingDir string) (string, error) {
	parts := strings.Split(message, "@")
	if len(parts) == 1 {
		return message, nil
	}

	result := parts[0]
	for _, part := range parts[1:] {
		words := strings.Fields(part)

		var filePath, rest string
		if len(words) == 0 {
			fmt.Println("\nSelect a file (or use Tab after @ for completion):")
			selected, err := selectFile(workingDir)
			if err != nil {
				return "", fmt.Errorf("file selection cancelled: %w", err)
			}
			filePath = selected
		} else {
			filePath = words[0]
			rest = strings.TrimPrefix(part, filePath)
		}

		fullPath := filepath.Join(workingDir, filePath)
		info, err := os.Stat(fullPath)
		if err != nil {
			return "", fmt.Errorf("failed to access %s: %w", filePath, err)
		}

		if info.IsDir() {
			result += expandDirectoryReference(filePath, workingDir) + rest
		} else {
			content, rerr := os.ReadFile(fullPath)
			if rerr != nil {
				return "", fmt.Errorf("failed to read file %s: %w", filePath, rerr)
			}
			result += "\n\n" + fencedBlock(filePath, content) + rest
		}
	}
	return result, nil
}
