package evalconsole

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Configuration defaults.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTimeout  = 6 * time.Minute
	DefaultTheme    = "dark"
	DefaultLogLevel = "info"
)

// Config holds console settings.
type Config struct {
	// BaseURL is the root of the evaluation backend.
	BaseURL string
	// Timeout bounds each HTTP request. Evaluations run an LLM and are slow.
	Timeout time.Duration
	// ModelName is forwarded to the compare endpoint; empty lets the backend choose.
	ModelName string
	// SaveResults asks the backend to store report files on compare.
	SaveResults bool
	// PersistGolden saves golden cases after a successful comparison.
	PersistGolden bool
	// DownloadDir is where downloaded reports are written.
	DownloadDir string
	// Theme is "dark" or "light".
	Theme string
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string
	// LogFile receives logs while the TUI owns the terminal.
	LogFile string
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		SaveResults: true,
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.Theme) {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q: must be dark or light", c.Theme)
	}
	return nil
}
