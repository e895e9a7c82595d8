// Package yaml loads console configuration from YAML files and the environment.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/evalconsole"
	yamlv3 "gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvBaseURL     = "EVALCONSOLE_URL"
	EnvTimeout     = "EVALCONSOLE_TIMEOUT"
	EnvModel       = "EVALCONSOLE_MODEL"
	EnvDownloadDir = "EVALCONSOLE_DOWNLOAD_DIR"
	EnvLogLevel    = "EVALCONSOLE_LOG_LEVEL"
	EnvTheme       = "EVALCONSOLE_THEME"
)

// fileConfig mirrors evalconsole.Config with pointer fields so that keys
// absent from the file keep their defaults.
type fileConfig struct {
	BaseURL       *string `yaml:"base_url"`
	Timeout       *string `yaml:"timeout"`
	ModelName     *string `yaml:"model_name"`
	SaveResults   *bool   `yaml:"save_results"`
	PersistGolden *bool   `yaml:"persist_golden"`
	DownloadDir   *string `yaml:"download_dir"`
	Theme         *string `yaml:"theme"`
	LogLevel      *string `yaml:"log_level"`
	LogFile       *string `yaml:"log_file"`
}

// Load reads configuration from path on top of evalconsole.DefaultConfig,
// then applies environment overrides. A missing file is not an error.
func Load(path string) (evalconsole.Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (evalconsole.Config, error) {
	cfg := evalconsole.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := Decode(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode merges YAML data into cfg. Only keys present in data are changed.
func Decode(data []byte, cfg *evalconsole.Config) error {
	var fc fileConfig
	if err := yamlv3.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Timeout != nil {
		d, err := parseTimeout(strings.TrimSpace(*fc.Timeout))
		if err != nil {
			return fmt.Errorf("invalid timeout format %q: %w", *fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fc.ModelName != nil {
		cfg.ModelName = *fc.ModelName
	}
	if fc.SaveResults != nil {
		cfg.SaveResults = *fc.SaveResults
	}
	if fc.PersistGolden != nil {
		cfg.PersistGolden = *fc.PersistGolden
	}
	if fc.DownloadDir != nil {
		cfg.DownloadDir = *fc.DownloadDir
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}

func applyEnv(cfg *evalconsole.Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = d
	}
	if v, ok := get(EnvModel); ok {
		cfg.ModelName = v
	}
	if v, ok := get(EnvDownloadDir); ok {
		cfg.DownloadDir = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvTheme); ok {
		cfg.Theme = v
	}
	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Encode renders cfg as YAML, e.g. for writing a starter config file.
func Encode(cfg evalconsole.Config) ([]byte, error) {
	out := map[string]any{
		"base_url":       cfg.BaseURL,
		"timeout":        cfg.Timeout.String(),
		"model_name":     cfg.ModelName,
		"save_results":   cfg.SaveResults,
		"persist_golden": cfg.PersistGolden,
		"download_dir":   cfg.DownloadDir,
		"theme":          cfg.Theme,
		"log_level":      cfg.LogLevel,
		"log_file":       cfg.LogFile,
	}
	return yamlv3.Marshal(out)
}
