package jsonl_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid history file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "history.jsonl")
		content := `{"operation":"compare","at":"2025-01-15T10:30:00Z","score":"8","report_md":"/files/r.md"}

{"operation":"generate","at":"2025-01-15T10:31:00Z"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		entries, err := jsonl.NewHistory(path).Load()

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, evalconsole.OperationCompare, entries[0].Operation)
		assert.Equal(t, "8", entries[0].Score)
		assert.Equal(t, "/files/r.md", entries[0].ReportMD)
		assert.Equal(t, evalconsole.OperationGenerate, entries[1].Operation)
		assert.Equal(t, time.Date(2025, 1, 15, 10, 31, 0, 0, time.UTC), entries[1].At)
	})

	t.Run("returns empty slice for non-existent file", func(t *testing.T) {
		t.Parallel()

		entries, err := jsonl.NewHistory("/nonexistent/history.jsonl").Load()

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("returns error for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.jsonl")
		content := `{"operation":"generate","at":"2025-01-15T10:31:00Z"}
not valid json`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := jsonl.NewHistory(path).Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestHistory_Append(t *testing.T) {
	t.Parallel()

	t.Run("appends entries in order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "subdir", "nested", "history.jsonl")
		h := jsonl.NewHistory(path)
		first := evalconsole.HistoryEntry{
			Operation: evalconsole.OperationEvaluate,
			At:        time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		}
		second := evalconsole.HistoryEntry{
			Operation:  evalconsole.OperationCompare,
			At:         time.Date(2025, 1, 15, 10, 31, 0, 0, time.UTC),
			Score:      "7/10",
			Suggestion: "Add edge cases",
		}

		require.NoError(t, h.Append(first))
		require.NoError(t, h.Append(second))

		entries, err := h.Load()
		require.NoError(t, err)
		assert.Equal(t, []evalconsole.HistoryEntry{first, second}, entries)
	})

	t.Run("concurrent appends keep every line intact", func(t *testing.T) {
		t.Parallel()

		h := jsonl.NewHistory(filepath.Join(t.TempDir(), "history.jsonl"))

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, h.Append(evalconsole.HistoryEntry{
					Operation: evalconsole.OperationGenerate,
					At:        time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
				}))
			}()
		}
		wg.Wait()

		entries, err := h.Load()
		require.NoError(t, err)
		assert.Len(t, entries, 20)
	})
}
