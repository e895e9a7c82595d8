package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/fs"
	"github.com/fwojciec/evalconsole/yaml"
	"github.com/spf13/cobra"
)

// reportOptions are the output flags shared by report-producing commands.
type reportOptions struct {
	format   string
	copy     bool
	download bool
}

func (o *reportOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "term", "Output format: term, md or html")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the raw Markdown report to the clipboard")
	cmd.Flags().BoolVar(&o.download, "download", false, "Save the raw Markdown report to the download directory")
}

// prompt fills empty required fields when running interactively.
func (a *App) prompt(opts *globalOptions, fields []evalconsole.Field) ([]evalconsole.Field, error) {
	if !opts.interactive || a.Prompter == nil {
		return fields, nil
	}
	return a.Prompter.Prompt(fields)
}

// readCases reads a case file when path is set. "-" reads standard input.
func (a *App) readCases(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return fs.ReadCases(path)
	}
}

// emitReport prints the rendered report and runs the requested follow-ups.
func (a *App) emitReport(console *evalconsole.Console, report *evalconsole.Report, o *reportOptions) error {
	fmt.Fprintln(a.Stdout, report.Rendered)
	if o.copy {
		if err := console.Copy(report.Markdown); err != nil {
			return consoleErr(err)
		}
	}
	if o.download {
		if _, err := console.Download(report); err != nil {
			return consoleErr(err)
		}
	}
	return nil
}

func (a *App) newGenerateCommand(opts *globalOptions, s *session) *cobra.Command {
	var (
		req     evalconsole.GenerateRequest
		copyOut bool
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases from a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := a.prompt(opts, evalconsole.GenerateFields(req))
			if err != nil {
				return err
			}
			req.DocToken = evalconsole.FieldValue(fields, evalconsole.FieldDocToken)
			req.UserAccessToken = evalconsole.FieldValue(fields, evalconsole.FieldUserToken)

			console := a.console(s, nil)
			g, err := console.Generate(cmd.Context(), req)
			if err != nil {
				return consoleErr(err)
			}
			fmt.Fprintln(a.Stdout, g.Formatted)

			if outPath != "" {
				if err := fs.AtomicWrite(outPath, []byte(g.Formatted+"\n")); err != nil {
					return err
				}
			}
			if copyOut {
				return consoleErr(console.Copy(g.Formatted))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.DocToken, "doc-token", "", "Token of the source document")
	cmd.Flags().StringVar(&req.UserAccessToken, "user-token", "", "User access token for the document service")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the generated JSON to the clipboard")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the generated JSON to a file")
	return cmd
}

func (a *App) newEvaluateCommand(opts *globalOptions, s *session) *cobra.Command {
	var (
		single                         bool
		docToken, userToken            string
		llmPath, goldenPath, humanPath string
		out                            reportOptions
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate LLM-generated test cases",
		Long: `Evaluate LLM-generated test cases.

By default the evaluation runs in two phases against golden cases: the JSON
evaluation is fetched first, then the Markdown report, and both are combined.
With --single a one-pass evaluation compares human-written and LLM cases for
a document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := newRenderer(out.format, s.theme)
			if err != nil {
				return err
			}
			llm, err := a.readCases(llmPath)
			if err != nil {
				return err
			}

			var run func(ctx context.Context, console *evalconsole.Console) (*evalconsole.Report, error)
			if single {
				human, err := a.readCases(humanPath)
				if err != nil {
					return err
				}
				fields, err := a.prompt(opts, evalconsole.EvaluateFields(evalconsole.EvaluateRequest{
					DocToken:        docToken,
					UserAccessToken: userToken,
					HumanCasesText:  human,
					LLMCasesText:    llm,
				}))
				if err != nil {
					return err
				}
				req := evalconsole.EvaluateRequest{
					DocToken:        evalconsole.FieldValue(fields, evalconsole.FieldDocToken),
					UserAccessToken: evalconsole.FieldValue(fields, evalconsole.FieldUserToken),
					HumanCasesText:  evalconsole.FieldValue(fields, evalconsole.FieldHumanCases),
					LLMCasesText:    evalconsole.FieldValue(fields, evalconsole.FieldLLMCases),
				}
				run = func(ctx context.Context, c *evalconsole.Console) (*evalconsole.Report, error) {
					return c.Evaluate(ctx, req)
				}
			} else {
				golden, err := a.readCases(goldenPath)
				if err != nil {
					return err
				}
				fields, err := a.prompt(opts, evalconsole.CasesFields(evalconsole.CasesRequest{
					LLMTestCases:    llm,
					GoldenTestCases: golden,
				}))
				if err != nil {
					return err
				}
				req := evalconsole.CasesRequest{
					LLMTestCases:    evalconsole.FieldValue(fields, evalconsole.FieldLLMCases),
					GoldenTestCases: evalconsole.FieldValue(fields, evalconsole.FieldGoldenCases),
				}
				run = func(ctx context.Context, c *evalconsole.Console) (*evalconsole.Report, error) {
					return c.EvaluateTwoPhase(ctx, req)
				}
			}

			console := a.console(s, renderer)
			report, err := run(cmd.Context(), console)
			if err != nil {
				return consoleErr(err)
			}
			return a.emitReport(console, report, &out)
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "Run a single-pass evaluation against a document")
	cmd.Flags().StringVar(&docToken, "doc-token", "", "Token of the source document (with --single)")
	cmd.Flags().StringVar(&userToken, "user-token", "", "User access token (with --single)")
	cmd.Flags().StringVar(&humanPath, "human-cases", "", "File with human-written test cases (with --single)")
	cmd.Flags().StringVar(&llmPath, "llm-cases", "", "File with LLM-generated test cases, - for stdin")
	cmd.Flags().StringVar(&goldenPath, "golden-cases", "", "File with golden test cases")
	out.register(cmd)
	return cmd
}

func (a *App) newCompareCommand(opts *globalOptions, s *session) *cobra.Command {
	var (
		llmPath, goldenPath string
		model               string
		noSave              bool
		persistGolden       bool
		open                bool
		out                 reportOptions
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare LLM-generated test cases with golden cases",
		Long: `Compare LLM-generated test cases with golden cases.

When no golden cases are given the backend uses its stored golden set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := newRenderer(out.format, s.theme)
			if err != nil {
				return err
			}
			llm, err := a.readCases(llmPath)
			if err != nil {
				return err
			}
			golden, err := a.readCases(goldenPath)
			if err != nil {
				return err
			}
			fields, err := a.prompt(opts, evalconsole.CompareFields(evalconsole.CompareInput{LLMCases: llm, GoldenCases: golden}))
			if err != nil {
				return err
			}
			in := evalconsole.CompareInput{
				LLMCases:    evalconsole.FieldValue(fields, evalconsole.FieldLLMCases),
				GoldenCases: evalconsole.FieldValue(fields, evalconsole.FieldGoldenCases),
			}

			console := a.console(s, renderer)
			if cmd.Flags().Changed("model") {
				console.ModelName = model
			}
			if noSave {
				console.SaveResults = false
			}
			if persistGolden {
				console.PersistGolden = true
			}

			report, err := console.Compare(cmd.Context(), in)
			if err != nil {
				return consoleErr(err)
			}
			if report.Summary != nil {
				fmt.Fprintf(a.Stdout, "Overall score: %s\n", report.Summary.OverallScore)
				if report.Summary.FinalSuggestion != "" {
					fmt.Fprintf(a.Stdout, "Suggestion: %s\n", report.Summary.FinalSuggestion)
				}
				fmt.Fprintln(a.Stdout)
			}
			if err := a.emitReport(console, report, &out); err != nil {
				return err
			}
			if f := report.Files; f != nil {
				if f.ReportMD != "" {
					fmt.Fprintf(a.Stderr, "Report file: %s\n", f.ReportMD)
				}
				if f.ReportJSON != "" {
					fmt.Fprintf(a.Stderr, "Data file: %s\n", f.ReportJSON)
				}
				if open {
					return consoleErr(console.OpenLink(f.ReportMD))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&llmPath, "llm-cases", "", "File with LLM-generated test cases, - for stdin")
	cmd.Flags().StringVar(&goldenPath, "golden-cases", "", "File with golden test cases (optional)")
	cmd.Flags().StringVar(&model, "model", "", "Model the backend evaluates with (overrides config)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store report files on the backend")
	cmd.Flags().BoolVar(&persistGolden, "persist-golden", false, "Save the given golden cases after a successful comparison")
	cmd.Flags().BoolVar(&open, "open", false, "Open the stored report when the backend returns a link")
	out.register(cmd)
	return cmd
}

func (a *App) newSaveGoldenCommand(opts *globalOptions, s *session) *cobra.Command {
	var goldenPath string
	cmd := &cobra.Command{
		Use:   "save-golden",
		Short: "Store golden test cases on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			golden, err := a.readCases(goldenPath)
			if err != nil {
				return err
			}
			fields, err := a.prompt(opts, evalconsole.SaveGoldenFields(golden))
			if err != nil {
				return err
			}
			golden = evalconsole.FieldValue(fields, evalconsole.FieldGoldenCases)
			return consoleErr(a.console(s, nil).SaveGoldenCases(cmd.Context(), golden))
		},
	}
	cmd.Flags().StringVar(&goldenPath, "golden-cases", "", "File with golden test cases, - for stdin")
	return cmd
}

func (a *App) newUploadCommand(s *session) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Replace a case set on the backend with a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := fs.ReadCases(args[0])
			if err != nil {
				return err
			}
			resp, err := a.console(s, nil).Upload(cmd.Context(), evalconsole.CaseKind(kind), filepath.Base(args[0]), content)
			if err != nil {
				return consoleErr(err)
			}
			if resp.FilePath != "" {
				fmt.Fprintln(a.Stdout, resp.FilePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(evalconsole.CaseKindAI), "Case set to replace: ai or golden")
	return cmd
}

func (a *App) newHealthCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.console(s, nil).Health(cmd.Context())
			if err != nil {
				return consoleErr(err)
			}

			fmt.Fprintf(a.Stdout, "status: %s\n", h.Status)
			if h.ModelInfo != nil {
				fmt.Fprintf(a.Stdout, "model: %s\n", h.ModelInfo.ModelName)
			}
			dirs := make([]string, 0, len(h.DirsStatus))
			for d := range h.DirsStatus {
				dirs = append(dirs, d)
			}
			sort.Strings(dirs)
			for _, d := range dirs {
				state := "missing"
				if h.DirsStatus[d] {
					state = "ok"
				}
				fmt.Fprintf(a.Stdout, "dir %s: %s\n", d, state)
			}

			if h.Status != "healthy" && h.Status != "ok" {
				if h.Error != "" {
					return fmt.Errorf("backend is %s: %s", h.Status, h.Error)
				}
				return fmt.Errorf("backend is %s", h.Status)
			}
			return nil
		},
	}
}

func (a *App) newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent successful runs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.History == nil {
				return errors.New("history is unavailable")
			}
			entries, err := a.History.Load()
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.Stdout, "No runs recorded yet.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			t := table.New().Headers("WHEN", "OPERATION", "SCORE", "REPORT")
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				t.Row(e.At.Local().Format("2006-01-02 15:04"), e.Operation, e.Score, e.ReportMD)
			}
			fmt.Fprintln(a.Stdout, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show, 0 for all")
	return cmd
}

func (a *App) newConfigCommand(opts *globalOptions, s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := yaml.Encode(s.cfg)
			if err != nil {
				return err
			}
			_, err = a.Stdout.Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := opts.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			data, err := yaml.Encode(s.cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := fs.AtomicWrite(path, data); err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}
