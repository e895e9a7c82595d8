package fs_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes content under the attachment name", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "downloads")
		w := fs.NewReportWriter(dir)

		path, err := w.Write(evalconsole.Attachment{
			Name:     "test_case_evaluation_report_2025-01-02T03-04-05.md",
			MIMEType: evalconsole.ReportMIMEType,
			Content:  "# Report\n",
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "test_case_evaluation_report_2025-01-02T03-04-05.md"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Report\n", string(data))
	})

	t.Run("strips directory components from the name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewReportWriter(dir)

		path, err := w.Write(evalconsole.Attachment{Name: "../escape.md", Content: "x"})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "escape.md"), path)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewReportWriter(t.TempDir()).Write(evalconsole.Attachment{Content: "x"})

		assert.Error(t, err)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewReportWriter(dir)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := w.Write(evalconsole.Attachment{Name: "same.md", Content: "content"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
		require.NoError(t, err)
		assert.Empty(t, matches)
		data, err := os.ReadFile(filepath.Join(dir, "same.md"))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})
}

func TestReadCases(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cases.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1}]`), 0o644))

	got, err := fs.ReadCases(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)

	_, err = fs.ReadCases(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = fs.ReadCases(" ")
	assert.Error(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "config.yaml", filepath.Base(fs.DefaultConfigPath()))
	assert.Equal(t, "evalconsole.log", filepath.Base(fs.DefaultLogPath()))
	assert.NotEmpty(t, fs.DefaultDownloadDir())
}
