// Package browser opens backend report links with the system browser.
package browser

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/evalconsole"
	browserlib "github.com/pkg/browser"
)

// Compile-time interface verification.
var _ evalconsole.LinkOpener = (*Opener)(nil)

// Opener opens links to backend artifacts. Links are either http(s) or file
// URLs, or paths on the backend host: paths that exist locally are opened as
// files, other paths are resolved against BaseURL. Any other scheme is
// rejected.
type Opener struct {
	BaseURL string

	// OpenURL and OpenFile default to pkg/browser.
	OpenURL  func(url string) error
	OpenFile func(path string) error
}

// NewOpener creates an Opener that resolves relative links against baseURL
// and discards the browser's own output.
func NewOpener(baseURL string) *Opener {
	browserlib.Stdout = io.Discard
	browserlib.Stderr = io.Discard
	return &Opener{
		BaseURL:  baseURL,
		OpenURL:  browserlib.OpenURL,
		OpenFile: browserlib.OpenFile,
	}
}

// Open implements evalconsole.LinkOpener.
func (o *Opener) Open(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return errors.New("empty link")
	}

	if u, err := url.Parse(link); err == nil && u.Scheme != "" && !isWindowsDrive(u.Scheme) {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return o.openURL(link)
		case "file":
			if u.Path == "" {
				return fmt.Errorf("cannot open %q: missing file path", link)
			}
			return o.openFile(u.Path)
		default:
			return fmt.Errorf("cannot open %q: unsupported scheme %q", link, u.Scheme)
		}
	}

	if filepath.IsAbs(link) {
		if _, err := os.Stat(link); err == nil {
			return o.openFile(link)
		}
	}

	resolved, err := o.Resolve(link)
	if err != nil {
		return err
	}
	return o.openURL(resolved)
}

// Resolve returns link as an absolute URL under BaseURL.
func (o *Opener) Resolve(link string) (string, error) {
	base, err := url.Parse(strings.TrimRight(o.BaseURL, "/") + "/")
	if err != nil || base.Host == "" {
		return "", fmt.Errorf("cannot resolve %q: invalid base URL %q", link, o.BaseURL)
	}
	ref, err := url.Parse(strings.TrimLeft(filepath.ToSlash(link), "/"))
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", link, err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return "", fmt.Errorf("cannot resolve %q: not a relative path", link)
	}
	return base.ResolveReference(ref).String(), nil
}

// isWindowsDrive reports whether a parsed scheme is a drive letter such as
// the "c" in C:\reports.
func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1
}

func (o *Opener) openURL(u string) error {
	if o.OpenURL == nil {
		return browserlib.OpenURL(u)
	}
	return o.OpenURL(u)
}

func (o *Opener) openFile(path string) error {
	if o.OpenFile == nil {
		return browserlib.OpenFile(path)
	}
	return o.OpenFile(path)
}
