package tools

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

type grepParams struct {
	Pattern     string `json:"pattern"`
	Path        string `json:"path"`
	GlobPattern string `json:"glob_pattern"`
	Context     int    `json:"context"`
}

type globParams struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
}

// Binary and generated file types skipped when grep scans a directory.
var grepSkipExts = map[string]bool{
	".pyc": true, ".so": true, ".o": true, ".jpg": true, ".jpeg": true,
	".png": true, ".gif": true, ".pdf": true, ".zip": true, ".tar": true,
	".gz": true, ".exe": true, ".bin": true, ".whl": true,
}

func (r *Registry) grep(p grepParams) Result {
	if p.Path == "" {
		p.Path = "."
	}

	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return errorf("Invalid regex pattern: %v", err)
	}

	base := r.absPath(p.Path)

	var files []string
	if p.GlobPattern != "" {
		// A glob filter applies at any depth below base.
		files = globWalk(base, "**/"+p.GlobPattern, false)
	} else if info, err := os.Stat(base); err == nil && !info.IsDir() {
		files = []string{base}
	} else {
		files = scanFiles(base)
	}
	sort.Strings(files)

	var out []string
	matchCount := 0

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		lines := splitLines(string(data))

		for i, line := range lines {
			if !re.MatchString(line) {
				continue
			}
			matchCount++

			lo := i - p.Context
			if lo < 0 {
				lo = 0
			}
			hi := i + p.Context + 1
			if hi > len(lines) {
				hi = len(lines)
			}
			for j := lo; j < hi; j++ {
				marker := " "
				if j == i {
					marker = ">"
				}
				out = append(out, fmt.Sprintf("%s:%d%s %s", file, j+1, marker, rstrip(lines[j])))
			}
			if p.Context > 0 {
				out = append(out, "--")
			}
		}
	}

	if len(out) == 0 {
		return Result{Text: fmt.Sprintf("No matches for pattern /%s/", p.Pattern)}
	}
	return Result{Text: fmt.Sprintf("Found %d match(es) for /%s/\n", matchCount, p.Pattern) + strings.Join(out, "\n")}
}

func (r *Registry) glob(p globParams) Result {
	if p.Path == "" {
		p.Path = "."
	}
	base := r.absPath(p.Path)

	matches := globWalk(base, p.Pattern, true)
	sort.Strings(matches)

	if len(matches) == 0 {
		return Result{Text: fmt.Sprintf("No files match pattern: %s in %s", p.Pattern, base)}
	}

	// Show paths relative to the working dir for readability, absolute
	// when they fall outside it.
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(r.workingDir, m)
		if err != nil || strings.HasPrefix(rel, "..") {
			out = append(out, m)
			continue
		}
		out = append(out, rel)
	}
	return Result{Text: fmt.Sprintf("Found %d file(s):\n", len(matches)) + strings.Join(out, "\n")}
}

// scanFiles collects every regular file under base, skipping anything
// inside hidden directories and the known-binary extensions. Hidden
// files themselves are kept.
func scanFiles(base string) []string {
	var files []string
	filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if grepSkipExts[filepath.Ext(path)] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

// globWalk returns the absolute paths under base whose base-relative
// path matches pattern. includeDirs controls whether directories are
// candidates; walk errors and unreadable subtrees are skipped.
func globWalk(base, pattern string, includeDirs bool) []string {
	var matches []string
	filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == base {
			return nil
		}
		if d.IsDir() && !includeDirs {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		if matchGlob(pattern, filepath.ToSlash(rel)) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}

// matchGlob matches a slash-separated relative path against pattern.
// '*' and '?' stay within one path component; '**' spans any number of
// components, so '**/*.go' matches at every depth.
func matchGlob(pattern, rel string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pat, parts []string) bool {
	if len(pat) == 0 {
		return len(parts) == 0
	}
	if pat[0] == "**" {
		for skip := 0; skip <= len(parts); skip++ {
			if matchSegments(pat[1:], parts[skip:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	if ok, err := filepath.Match(pat[0], parts[0]); err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], parts[1:])
}
