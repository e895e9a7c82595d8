package evalconsole

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Endpoint paths of the evaluation backend.
const (
	EndpointEvaluate       = "/evaluate"
	EndpointGenerate       = "/generate-test-cases"
	EndpointEvaluateOnly   = "/evaluate-test-cases-only"
	EndpointMarkdownReport = "/generate-markdown-report"
	EndpointCompare        = "/compare-test-cases"
	EndpointSaveGolden     = "/api/save-golden-cases"
	EndpointUpload         = "/upload-test-cases"
	EndpointHealth         = "/health"
)

// CompareInput is the form state of the comparison view.
type CompareInput struct {
	LLMCases    string // JSON
	GoldenCases string // JSON, optional
}

// Console runs the user-facing operations of the evaluation console. It holds
// no per-request state: every operation reads its inputs at call time, so a
// Console is safe for concurrent use when its collaborators are.
type Console struct {
	Backend   Backend
	Renderer  Renderer
	Clipboard Clipboard
	Notifier  Notifier
	Indicator Indicator
	Writer    ReportWriter
	Opener    LinkOpener
	Logger    Logger
	History   HistoryStore

	// ModelName and SaveResults are forwarded to the compare endpoint.
	ModelName   string
	SaveResults bool
	// PersistGolden saves supplied golden cases after a successful comparison.
	PersistGolden bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Generate asks the backend for test cases generated from a document.
// Output that is not valid JSON is returned raw with Valid=false.
func (c *Console) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	if err := c.validate(GenerateFields(req)...); err != nil {
		return nil, err
	}

	stop := c.begin("Generating test cases")
	defer stop()

	resp, err := c.Backend.Generate(ctx, req)
	if err != nil {
		return nil, c.fail("Generation failed", EndpointGenerate, err)
	}

	formatted, ok := PrettyJSON(resp.TestCasesJSON)
	g := &Generation{Raw: resp.TestCasesJSON, Formatted: formatted, Valid: ok}
	if !ok {
		c.logWarn("generated test cases are not valid JSON")
		c.notify("The generated content is not valid JSON", SeverityWarning)
		return g, nil
	}
	c.record(OperationGenerate, nil)
	c.notify("Test cases generated successfully", SeveritySuccess)
	return g, nil
}

// Evaluate runs a single-pass evaluation of human and LLM cases.
func (c *Console) Evaluate(ctx context.Context, req EvaluateRequest) (*Report, error) {
	if err := c.validate(EvaluateFields(req)...); err != nil {
		return nil, err
	}

	stop := c.begin("Evaluating test cases")
	defer stop()

	resp, err := c.Backend.Evaluate(ctx, req)
	if err != nil {
		return nil, c.fail("Evaluation failed", EndpointEvaluate, err)
	}

	report := c.Render(resp.ReportMarkdown)
	c.record(OperationEvaluate, report)
	c.notify("Evaluation report generated", SeveritySuccess)
	return report, nil
}

// EvaluateTwoPhase fetches the JSON evaluation and then the Markdown report,
// one after the other, and combines them into a single report. If either
// call fails no report is produced and the error of the failing call is
// returned.
func (c *Console) EvaluateTwoPhase(ctx context.Context, req CasesRequest) (*Report, error) {
	if err := c.validate(CasesFields(req)...); err != nil {
		return nil, err
	}

	stop := c.begin("Evaluating test cases")
	defer stop()

	evaluation, err := c.evaluationPhase(ctx, req)
	if err != nil {
		return nil, c.fail("Evaluation failed", EndpointEvaluateOnly, err)
	}
	report, err := c.reportPhase(ctx, req)
	if err != nil {
		return nil, c.fail("Evaluation failed", EndpointMarkdownReport, err)
	}

	markdown, ok := ComposeReport(report.ReportMarkdown, evaluation.EvaluationJSON)
	if !ok {
		c.logWarn("evaluation result is not valid JSON")
		c.notify("The evaluation data is not valid JSON and is shown as received", SeverityWarning)
	}

	out := c.Render(markdown)
	c.record(OperationEvaluateTwoPhase, out)
	c.notify("Evaluation report generated", SeveritySuccess)
	return out, nil
}

func (c *Console) evaluationPhase(ctx context.Context, req CasesRequest) (*EvaluationResponse, error) {
	c.logDebug("requesting evaluation", "endpoint", EndpointEvaluateOnly)
	return c.Backend.EvaluateOnly(ctx, req)
}

func (c *Console) reportPhase(ctx context.Context, req CasesRequest) (*ReportResponse, error) {
	c.logDebug("requesting report", "endpoint", EndpointMarkdownReport)
	return c.Backend.MarkdownReport(ctx, req)
}

// Compare compares LLM cases with golden cases. When golden cases are empty
// the backend uses its stored golden set.
func (c *Console) Compare(ctx context.Context, in CompareInput) (*Report, error) {
	if err := c.validate(CompareFields(in)...); err != nil {
		return nil, err
	}

	req := CompareRequest{
		AITestCases: in.LLMCases,
		ModelName:   c.ModelName,
		SaveResults: c.SaveResults,
	}
	if strings.TrimSpace(in.GoldenCases) != "" {
		golden := in.GoldenCases
		req.GoldenTestCases = &golden
	}

	stop := c.begin("Comparing test cases")
	defer stop()

	resp, err := c.Backend.Compare(ctx, req)
	if err != nil {
		return nil, c.fail("Comparison failed", EndpointCompare, err)
	}
	if !resp.Success {
		return nil, c.fail("Comparison failed", EndpointCompare, &BackendError{
			Endpoint:  EndpointCompare,
			Message:   resp.Error,
			Type:      resp.ErrorType,
			RequestID: resp.RequestID,
		})
	}

	markdown := resp.Report
	if strings.TrimSpace(markdown) == "" && resp.EvaluationResult != nil {
		markdown, err = FencedJSON(resp.EvaluationResult)
		if err != nil {
			return nil, c.fail("Comparison failed", EndpointCompare, fmt.Errorf("encode evaluation result: %w", err))
		}
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, c.fail("Comparison failed", EndpointCompare, &BackendError{
			Endpoint:  EndpointCompare,
			Message:   "response contained neither a report nor an evaluation result",
			RequestID: resp.RequestID,
		})
	}

	report := c.Render(markdown)
	report.Files = resp.Files
	report.Summary = DecodeSummary(resp.EvaluationResult)

	if c.PersistGolden && req.GoldenTestCases != nil {
		c.persistGolden(ctx, *req.GoldenTestCases)
	}

	c.record(OperationCompare, report)
	c.notify("Comparison complete", SeveritySuccess)
	return report, nil
}

// persistGolden saves golden cases as a side step. Failures are logged only.
func (c *Console) persistGolden(ctx context.Context, golden string) {
	if err := c.Backend.SaveGoldenCases(ctx, SaveGoldenRequest{GoldenTestCases: golden}); err != nil {
		c.logError("saving golden cases failed", "endpoint", EndpointSaveGolden, "err", err)
		return
	}
	c.logDebug("golden cases saved", "endpoint", EndpointSaveGolden)
}

// SaveGoldenCases persists golden cases on the backend.
func (c *Console) SaveGoldenCases(ctx context.Context, golden string) error {
	if err := c.validate(SaveGoldenFields(golden)...); err != nil {
		return err
	}

	stop := c.begin("Saving golden cases")
	defer stop()

	if err := c.Backend.SaveGoldenCases(ctx, SaveGoldenRequest{GoldenTestCases: golden}); err != nil {
		c.logError("saving golden cases failed", "endpoint", EndpointSaveGolden, "err", err)
		c.notify("Golden cases were not saved: "+err.Error(), SeverityWarning)
		return err
	}
	c.notify("Golden cases saved", SeveritySuccess)
	return nil
}

// Upload replaces a case set on the backend. Content must be JSON.
func (c *Console) Upload(ctx context.Context, kind CaseKind, filename, content string) (*UploadResponse, error) {
	if kind != CaseKindAI && kind != CaseKindGolden {
		err := fmt.Errorf("unknown case kind %q: must be %q or %q", kind, CaseKindAI, CaseKindGolden)
		c.notify(err.Error(), SeverityDanger)
		return nil, err
	}
	label := "LLM-generated test cases"
	if kind == CaseKindGolden {
		label = "Golden test cases"
	}
	if err := c.validate(Field{Name: string(kind), Label: label, Value: content, JSON: true}); err != nil {
		return nil, err
	}

	stop := c.begin("Uploading " + filename)
	defer stop()

	resp, err := c.Backend.UploadCases(ctx, UploadRequest{Kind: kind, Filename: filename, Content: content})
	if err != nil {
		return nil, c.fail("Upload failed", EndpointUpload, err)
	}
	if !resp.Success {
		return nil, c.fail("Upload failed", EndpointUpload, &BackendError{
			Endpoint:  EndpointUpload,
			Message:   resp.Error,
			RequestID: resp.RequestID,
		})
	}
	c.notify(fmt.Sprintf("Uploaded %s as %s cases", filename, kind), SeveritySuccess)
	return resp, nil
}

// Health reports backend status.
func (c *Console) Health(ctx context.Context) (*Health, error) {
	stop := c.begin("Checking backend")
	defer stop()

	h, err := c.Backend.Health(ctx)
	if err != nil {
		return nil, c.fail("Health check failed", EndpointHealth, err)
	}
	return h, nil
}

// Render converts Markdown for display. The raw Markdown is kept verbatim on
// the returned report. A renderer failure falls back to showing the raw text.
func (c *Console) Render(markdown string) *Report {
	r := &Report{Markdown: markdown}
	if c.Renderer == nil {
		r.Rendered = markdown
		return r
	}
	out, err := c.Renderer.Render(markdown)
	if err != nil {
		c.logError("markdown rendering failed", "err", err)
		c.notify("Markdown rendering failed, showing raw content", SeverityWarning)
		r.Rendered = "Markdown rendering failed. Raw content:\n\n" + markdown
		return r
	}
	r.Rendered = out
	return r
}

// Copy writes text to the clipboard.
func (c *Console) Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		c.notify("There is nothing to copy", SeverityWarning)
		return ErrNoReport
	}
	if c.Clipboard == nil {
		err := errors.New("clipboard unavailable")
		c.notify("Copy failed, please copy manually", SeverityDanger)
		return err
	}
	if err := c.Clipboard.Copy(text); err != nil {
		c.logError("copy failed", "err", err)
		c.notify("Copy failed, please copy manually", SeverityDanger)
		return err
	}
	c.notify("Copied to clipboard", SeveritySuccess)
	return nil
}

// Download saves the report's raw Markdown and returns the written path.
func (c *Console) Download(report *Report) (string, error) {
	if report.Empty() {
		c.notify("There is no report to download", SeverityWarning)
		return "", ErrNoReport
	}
	if c.Writer == nil {
		err := errors.New("report writer unavailable")
		c.notify("Download failed: "+err.Error(), SeverityDanger)
		return "", err
	}

	name := ReportFilename(c.now())
	path, err := c.Writer.Write(Attachment{
		Name:     name,
		MIMEType: ReportMIMEType,
		Content:  report.Markdown,
	})
	if err != nil {
		c.logError("download failed", "name", name, "err", err)
		c.notify("Download failed: "+err.Error(), SeverityDanger)
		return "", err
	}
	c.logInfo("report downloaded", "path", path)
	c.notify("Report downloaded: "+name, SeveritySuccess)
	return path, nil
}

// OpenLink opens a backend artifact link.
func (c *Console) OpenLink(url string) error {
	if strings.TrimSpace(url) == "" {
		c.notify("No file link available", SeverityWarning)
		return ErrNoReport
	}
	if c.Opener == nil {
		return errors.New("link opener unavailable")
	}
	if err := c.Opener.Open(url); err != nil {
		c.logError("open link failed", "url", url, "err", err)
		c.notify("Could not open "+url, SeverityDanger)
		return err
	}
	return nil
}

func (c *Console) validate(fields ...Field) error {
	if err := Validate(fields...); err != nil {
		c.logDebug("validation failed", "err", err)
		c.notify(err.Error(), SeverityDanger)
		return err
	}
	return nil
}

// fail logs and surfaces a failed call. The returned error is err itself so
// that its message is exactly what the backend reported. Cancelled requests
// are not surfaced.
func (c *Console) fail(prefix, endpoint string, err error) error {
	if errors.Is(err, context.Canceled) {
		c.logDebug("request cancelled", "endpoint", endpoint)
		return err
	}
	c.logError(strings.ToLower(prefix), "endpoint", endpoint, "err", err)
	c.notify(prefix+": "+err.Error(), SeverityDanger)
	return err
}

func (c *Console) begin(label string) func() {
	if c.Indicator == nil {
		return func() {}
	}
	return c.Indicator.Start(label)
}

// record appends a history entry. Failures are logged only.
func (c *Console) record(operation string, report *Report) {
	if c.History == nil {
		return
	}
	if err := c.History.Append(historyEntry(operation, c.now(), report)); err != nil {
		c.logWarn("recording history failed", "operation", operation, "err", err)
	}
}

func (c *Console) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Console) notify(message string, severity Severity) {
	if c.Notifier != nil {
		c.Notifier.Notify(message, severity)
	}
}

func (c *Console) logDebug(msg string, kv ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, kv...)
	}
}

func (c *Console) logInfo(msg string, kv ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, kv...)
	}
}

func (c *Console) logWarn(msg string, kv ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, kv...)
	}
}

func (c *Console) logError(msg string, kv ...any) {
	if c.Logger != nil {
		c.Logger.Error(msg, kv...)
	}
}
