package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/browser"
	"github.com/fwojciec/evalconsole/bubbletea"
	"github.com/fwojciec/evalconsole/chroma"
	"github.com/fwojciec/evalconsole/clipboard"
	"github.com/fwojciec/evalconsole/color"
	"github.com/fwojciec/evalconsole/fs"
	"github.com/fwojciec/evalconsole/glamour"
	"github.com/fwojciec/evalconsole/goldmark"
	"github.com/fwojciec/evalconsole/http"
	"github.com/fwojciec/evalconsole/huh"
	"github.com/fwojciec/evalconsole/jsonl"
	"github.com/fwojciec/evalconsole/lipgloss"
	"github.com/fwojciec/evalconsole/yaml"
)

var version = "dev"

// reportedError marks an error the console has already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// App encapsulates the application logic for testing. Every field has a
// production default set by NewApp.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig func(path string) (evalconsole.Config, error)
	NewBackend func(cfg evalconsole.Config, logger evalconsole.Logger) evalconsole.Backend
	NewOpener  func(baseURL string) evalconsole.LinkOpener
	Clipboard  evalconsole.Clipboard
	Prompter   evalconsole.Prompter
	History    evalconsole.HistoryStore
	RunTUI     func(ctx context.Context, console *evalconsole.Console, theme evalconsole.Theme) error
	Now        func() time.Time
}

// NewApp returns an App wired to the real terminal, filesystem and backend.
func NewApp() *App {
	return &App{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: yaml.Load,
		NewBackend: func(cfg evalconsole.Config, logger evalconsole.Logger) evalconsole.Backend {
			c := http.NewClient(cfg.BaseURL, cfg.Timeout)
			c.UserAgent = "evalconsole/" + version
			c.Logger = logger
			return c
		},
		NewOpener: func(baseURL string) evalconsole.LinkOpener {
			return browser.NewOpener(baseURL)
		},
		Clipboard: clipboard.New(),
		Prompter:  huh.NewPrompter(os.Stdin, os.Stderr),
		History:   jsonl.NewHistory(fs.DefaultHistoryPath()),
		RunTUI:    runTUI,
		Now:       time.Now,
	}
}

// Main runs the command line and returns the process exit code.
func (a *App) Main(ctx context.Context, args []string) int {
	cmd := a.newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(a.Stdin)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(a.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// session holds the settings resolved for one invocation.
type session struct {
	cfg   evalconsole.Config
	theme *lipgloss.Theme
}

// console assembles a Console that reports to the terminal.
func (a *App) console(s *session, renderer evalconsole.Renderer) *evalconsole.Console {
	logger := color.NewLogger(a.Stderr, s.cfg.LogLevel)
	return &evalconsole.Console{
		Backend:       a.NewBackend(s.cfg, logger),
		Renderer:      renderer,
		Clipboard:     a.Clipboard,
		Notifier:      color.NewNotifier(a.Stderr),
		Indicator:     color.NewIndicator(a.Stderr),
		Writer:        fs.NewReportWriter(s.cfg.DownloadDir),
		Opener:        a.NewOpener(s.cfg.BaseURL),
		Logger:        logger,
		History:       a.History,
		ModelName:     s.cfg.ModelName,
		SaveResults:   s.cfg.SaveResults,
		PersistGolden: s.cfg.PersistGolden,
		Now:           a.Now,
	}
}

// runTUI starts the full-screen console. Logs go to the configured log file
// because the terminal belongs to the UI.
func (a *App) runTUI(ctx context.Context, s *session) error {
	logFile := s.cfg.LogFile
	if logFile == "" {
		logFile = fs.DefaultLogPath()
	}
	var w io.Writer = io.Discard
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			defer f.Close()
			w = f
		}
	}
	logger := color.NewLogger(w, s.cfg.LogLevel)
	logger.Info("starting console", "url", s.cfg.BaseURL, "version", version)

	console := &evalconsole.Console{
		Backend:       a.NewBackend(s.cfg, logger),
		Renderer:      glamour.NewRenderer(s.theme.MarkdownStyle()),
		Clipboard:     a.Clipboard,
		Writer:        fs.NewReportWriter(s.cfg.DownloadDir),
		Opener:        a.NewOpener(s.cfg.BaseURL),
		Logger:        logger,
		History:       a.History,
		ModelName:     s.cfg.ModelName,
		SaveResults:   s.cfg.SaveResults,
		PersistGolden: s.cfg.PersistGolden,
		Now:           a.Now,
	}
	return a.RunTUI(ctx, console, s.theme)
}

func runTUI(ctx context.Context, console *evalconsole.Console, theme evalconsole.Theme) error {
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return err
	}
	return bubbletea.Run(ctx, console,
		bubbletea.WithTheme(theme),
		bubbletea.WithTokenizer(tokenizer),
	)
}

// newRenderer returns the report renderer for an output format. The "md"
// format prints raw Markdown.
func newRenderer(format string, theme *lipgloss.Theme) (evalconsole.Renderer, error) {
	switch format {
	case "", "term":
		return glamour.NewRenderer(theme.MarkdownStyle()), nil
	case "md":
		return nil, nil
	case "html":
		style, err := chroma.ChromaStyle("evalconsole", theme.Palette())
		if err != nil {
			return nil, err
		}
		h, err := chroma.NewHTMLHighlighter(style)
		if err != nil {
			return nil, err
		}
		return goldmark.NewRenderer(h), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: must be term, md or html", format)
	}
}

// consoleErr marks errors from Console operations as already reported.
func consoleErr(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return &reportedError{err: err}
}

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(NewApp().Main(ctx, os.Args[1:]))
}
