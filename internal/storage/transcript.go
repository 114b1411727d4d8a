package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transcript appends conversation entries to a JSONL file, one object per line
type Transcript struct {
	mu        sync.Mutex
	f         *os.File
	path      string
	SessionID string
}

// DefaultTranscriptDir returns the transcript directory under the user home
func DefaultTranscriptDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".homecode", "transcripts"), nil
}

// OpenTranscript creates a new transcript file under dir, named by session
// start time plus a short unique suffix
func OpenTranscript(dir string) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	sessionID := uuid.New().String()[:8]
	name := fmt.Sprintf("%s-%s.jsonl", time.Now().Format("20060102-150405"), sessionID)
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	return &Transcript{f: f, path: path, SessionID: sessionID}, nil
}

// Append writes one entry to the transcript, stamping the time if unset
func (t *Transcript) Append(entry TranscriptEntry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript entry: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transcript entry: %w", err)
	}
	return nil
}

// Path returns the transcript file path
func (t *Transcript) Path() string {
	return t.path
}

// Close closes the underlying file
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.f.Close()
}
