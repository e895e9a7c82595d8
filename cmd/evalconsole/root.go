package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/evalconsole/color"
	"github.com/fwojciec/evalconsole/fs"
	"github.com/fwojciec/evalconsole/lipgloss"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath  string
	url         string
	timeout     time.Duration
	logLevel    string
	theme       string
	interactive bool
}

func (a *App) newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	s := &session{}

	cmd := &cobra.Command{
		Use:   "evalconsole",
		Short: "Generate and evaluate test cases against an evaluation backend",
		Long: `evalconsole is a console for a test case evaluation backend.

Without a subcommand it opens an interactive terminal UI with Generate,
Evaluate and Compare views. Subcommands run the same operations from the
command line for scripting.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context(), s)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", fs.DefaultConfigPath(), "Path to the YAML config file")
	flags.StringVar(&opts.url, "url", "", "Backend base URL (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout, e.g. 90s or 6m (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	flags.StringVar(&opts.theme, "theme", "", "Color theme: dark or light")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for required values that were not given")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.resolve(cmd, opts, s)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context(), s)
		},
	})
	cmd.AddCommand(a.newGenerateCommand(opts, s))
	cmd.AddCommand(a.newEvaluateCommand(opts, s))
	cmd.AddCommand(a.newCompareCommand(opts, s))
	cmd.AddCommand(a.newSaveGoldenCommand(opts, s))
	cmd.AddCommand(a.newUploadCommand(s))
	cmd.AddCommand(a.newHealthCommand(s))
	cmd.AddCommand(a.newHistoryCommand())
	cmd.AddCommand(a.newConfigCommand(opts, s))

	return cmd
}

// resolve layers config file, environment and flags into the session.
func (a *App) resolve(cmd *cobra.Command, opts *globalOptions, s *session) error {
	cfg, err := a.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.BaseURL = opts.url
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.theme
	}

	if !color.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.theme = theme
	return nil
}
