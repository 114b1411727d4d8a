package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result carries a tool's complete output. Text is what the model sees,
// including the "Error: " prefix on failures; IsError marks failures so
// callers never have to sniff the text.
type Result struct {
	Text    string
	IsError bool
}

func errorf(format string, args ...any) Result {
	return Result{Text: "Error: " + fmt.Sprintf(format, args...), IsError: true}
}

func wrongArgs(tool string, err error) Result {
	return errorf("Wrong arguments for tool '%s': %v", tool, err)
}

// Registry executes the fixed tool set against a working directory. The
// set is closed: every name dispatched here has exactly one schema in
// Definitions and vice versa.
type Registry struct {
	workingDir      string
	bashTimeoutSecs int
}

// NewRegistry creates a registry rooted at workingDir. Relative paths in
// tool arguments resolve against it and bash commands run inside it.
func NewRegistry(workingDir string, bashTimeoutSecs int) *Registry {
	return &Registry{
		workingDir:      workingDir,
		bashTimeoutSecs: bashTimeoutSecs,
	}
}

// Execute runs the named tool with the given arguments. Failures of any
// kind come back as error-tagged Results; Execute never panics on bad
// input from the model.
func (r *Registry) Execute(name string, args map[string]any) Result {
	switch name {
	case "read_file":
		var p readFileParams
		if res, ok := decodeArgs(name, args, &p, "path"); !ok {
			return res
		}
		return r.readFile(p)
	case "write_file":
		var p writeFileParams
		if res, ok := decodeArgs(name, args, &p, "path", "content"); !ok {
			return res
		}
		return r.writeFile(p)
	case "edit_file":
		var p editFileParams
		if res, ok := decodeArgs(name, args, &p, "path", "old_string", "new_string"); !ok {
			return res
		}
		return r.editFile(p)
	case "bash":
		var p bashParams
		if res, ok := decodeArgs(name, args, &p, "command"); !ok {
			return res
		}
		return r.bash(p)
	case "grep":
		var p grepParams
		if res, ok := decodeArgs(name, args, &p, "pattern"); !ok {
			return res
		}
		return r.grep(p)
	case "glob":
		var p globParams
		if res, ok := decodeArgs(name, args, &p, "pattern"); !ok {
			return res
		}
		return r.glob(p)
	default:
		return errorf("Unknown tool '%s'", name)
	}
}

// decodeArgs strictly decodes args into the tool's parameter struct.
// Unknown keys, mistyped values, and missing required keys all produce a
// wrong-arguments Result; ok reports whether decoding succeeded.
func decodeArgs(tool string, args map[string]any, dst any, required ...string) (Result, bool) {
	for _, key := range required {
		if _, present := args[key]; !present {
			return wrongArgs(tool, fmt.Errorf("missing required parameter '%s'", key)), false
		}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return wrongArgs(tool, err), false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return wrongArgs(tool, err), false
	}
	return Result{}, true
}
