package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/evalconsole"
	"github.com/gofrs/flock"
)

// lockName is the lock file guarding writes in a download directory.
const lockName = ".evalconsole.lock"

// Compile-time interface verification.
var _ evalconsole.ReportWriter = (*ReportWriter)(nil)

// ReportWriter saves attachments into a directory. Writes are atomic and
// serialized across processes sharing the directory.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a ReportWriter for dir. An empty dir uses
// DefaultDownloadDir.
func NewReportWriter(dir string) *ReportWriter {
	if dir == "" {
		dir = DefaultDownloadDir()
	}
	return &ReportWriter{dir: dir}
}

// Dir returns the target directory.
func (w *ReportWriter) Dir() string {
	return w.dir
}

// Write implements evalconsole.ReportWriter.
func (w *ReportWriter) Write(a evalconsole.Attachment) (string, error) {
	name := filepath.Base(a.Name)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("invalid attachment name %q", a.Name)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", w.dir, err)
	}

	lock := flock.New(filepath.Join(w.dir, lockName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock %s: %w", w.dir, err)
	}
	defer func() { _ = lock.Unlock() }()

	path := filepath.Join(w.dir, name)
	if err := AtomicWrite(path, []byte(a.Content)); err != nil {
		return "", err
	}
	return path, nil
}

// AtomicWrite writes data to path via a temp file in the same directory
// and a rename, so readers never see a partial file.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// ReadCases reads a test case file. The content is returned as-is; callers
// validate it as JSON.
func ReadCases(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("no file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
