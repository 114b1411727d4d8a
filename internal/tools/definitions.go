package tools

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Definition describes one tool to the model.
type Definition struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

// Definitions returns the schemas for the closed tool set, in the order
// they are presented to the model. Every name here has exactly one
// handler in Registry.Execute and vice versa.
func Definitions() []Definition {
	return []Definition{
		{
			Name: "read_file",
			Description: "Read the contents of a file with line numbers. " +
				"Use offset and limit to read a specific range of lines.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"path": {
						Type:        jsonschema.String,
						Description: "Path to the file (absolute or relative to working dir)",
					},
					"offset": {
						Type:        jsonschema.Integer,
						Description: "1-based line number to start reading from (optional)",
					},
					"limit": {
						Type:        jsonschema.Integer,
						Description: "Maximum number of lines to return (optional)",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name: "write_file",
			Description: "Write content to a file, creating it or overwriting it entirely. " +
				"Use for new files. For existing files, prefer edit_file for targeted changes.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"path": {
						Type:        jsonschema.String,
						Description: "File path",
					},
					"content": {
						Type:        jsonschema.String,
						Description: "Complete file content to write",
					},
				},
				Required: []string{"path", "content"},
			},
		},
		{
			Name: "edit_file",
			Description: "Replace an exact string in a file. The old_string must appear " +
				"EXACTLY ONCE in the file. Include enough surrounding context " +
				"to be unique. Fails if the string is not found or appears multiple times.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"path": {
						Type:        jsonschema.String,
						Description: "File path",
					},
					"old_string": {
						Type:        jsonschema.String,
						Description: "The exact string to find and replace (must be unique in file)",
					},
					"new_string": {
						Type:        jsonschema.String,
						Description: "The replacement string",
					},
				},
				Required: []string{"path", "old_string", "new_string"},
			},
		},
		{
			Name: "bash",
			Description: "Execute a shell command in the project working directory. " +
				"Returns stdout, stderr, and exit code. " +
				"Use for: running tests, git commands, installing packages, building, etc.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"command": {
						Type:        jsonschema.String,
						Description: "Shell command to execute",
					},
				},
				Required: []string{"command"},
			},
		},
		{
			Name: "grep",
			Description: "Search file contents using a regex pattern. " +
				"Returns matching lines with file:line references.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"pattern": {
						Type:        jsonschema.String,
						Description: "Regular expression pattern to search for",
					},
					"path": {
						Type:        jsonschema.String,
						Description: "File or directory to search in (default: working dir)",
					},
					"glob_pattern": {
						Type:        jsonschema.String,
						Description: "Glob filter for files, e.g. '*.py' or '**/*.ts'",
					},
					"context": {
						Type:        jsonschema.Integer,
						Description: "Number of context lines before/after each match",
					},
				},
				Required: []string{"pattern"},
			},
		},
		{
			Name: "glob",
			Description: "Find files by glob pattern. Returns a list of matching file paths. " +
				"Use ** for recursive matching, e.g. '**/*.py'.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"pattern": {
						Type:        jsonschema.String,
						Description: "Glob pattern, e.g. '**/*.py', 'src/*.ts'",
					},
					"path": {
						Type:        jsonschema.String,
						Description: "Root directory to search from (default: working dir)",
					},
				},
				Required: []string{"pattern"},
			},
		},
	}
}
