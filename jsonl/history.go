// Package jsonl persists the console run history as JSON Lines.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/evalconsole"
	"github.com/gofrs/flock"
)

// Compile-time interface verification.
var _ evalconsole.HistoryStore = (*History)(nil)

// maxLineSize is the maximum size for a single JSONL line (1MB).
const maxLineSize = 1024 * 1024

// History appends and reads HistoryEntry records in a JSONL file. Writers in
// separate processes are serialized with a lock file next to the history.
type History struct {
	path string
}

// NewHistory creates a History backed by path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Append adds an entry, creating parent directories if needed.
func (h *History) Append(entry evalconsole.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	lock := flock.New(h.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", h.path, err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Load reads all entries. Returns an empty slice if the file doesn't exist.
func (h *History) Load() ([]evalconsole.HistoryEntry, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []evalconsole.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e evalconsole.HistoryEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
