package evalconsole

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ReportMIMEType is the media type of downloaded reports.
const ReportMIMEType = "text/markdown"

// reportFilenameLayout is ISO-8601 without milliseconds, colons replaced.
const reportFilenameLayout = "2006-01-02T15-04-05"

// rawDataHeading introduces the JSON block appended to two-phase reports.
const rawDataHeading = "## Raw evaluation data (JSON)"

// Report is a rendered evaluation report. Markdown is the verbatim source
// and is the only thing copied or downloaded; Rendered is display-only.
type Report struct {
	Markdown string
	Rendered string
	Files    *ReportFiles       // Backend-stored artifacts, if any
	Summary  *EvaluationSummary // Decoded headline scores, if any
}

// Empty reports whether there is no Markdown to copy or download.
func (r *Report) Empty() bool {
	return r == nil || strings.TrimSpace(r.Markdown) == ""
}

// Generation is the result of test case generation.
type Generation struct {
	Raw       string // Exactly what the backend returned
	Formatted string // Pretty-printed JSON, or Raw when Valid is false
	Valid     bool   // Whether Raw parsed as JSON
}

// Attachment is a file handed to a ReportWriter.
type Attachment struct {
	Name     string
	MIMEType string
	Content  string
}

// EvaluationSummary is the headline of an evaluation result.
type EvaluationSummary struct {
	OverallScore    string `mapstructure:"overall_score"`
	FinalSuggestion string `mapstructure:"final_suggestion"`
}

// ReportFilename returns the download name for a report created at t.
func ReportFilename(t time.Time) string {
	return "test_case_evaluation_report_" + t.UTC().Format(reportFilenameLayout) + ".md"
}

// PrettyJSON re-indents a JSON document with two spaces. It returns false
// and the input unchanged when raw is not valid JSON.
func PrettyJSON(raw string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(raw)), "", "  "); err != nil {
		return raw, false
	}
	return buf.String(), true
}

// ComposeReport appends the evaluation JSON to a Markdown report as a fenced
// block. evaluationJSON is embedded verbatim when it is not valid JSON; the
// returned bool reports whether it was.
func ComposeReport(markdown, evaluationJSON string) (string, bool) {
	pretty, ok := PrettyJSON(evaluationJSON)
	var sb strings.Builder
	sb.WriteString(markdown)
	sb.WriteString("\n\n")
	sb.WriteString(rawDataHeading)
	sb.WriteString("\n\n```json\n")
	sb.WriteString(pretty)
	sb.WriteString("\n```")
	return sb.String(), ok
}

// FencedJSON renders a value as a fenced JSON block.
func FencedJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return "```json\n" + string(data) + "\n```", nil
}

// DecodeSummary extracts the evaluation summary from a compare result.
// Scores may arrive as numbers or strings. Returns nil when absent.
func DecodeSummary(result map[string]any) *EvaluationSummary {
	raw, ok := result["evaluation_summary"]
	if !ok || raw == nil {
		return nil
	}

	var s EvaluationSummary
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil
	}
	if err := dec.Decode(raw); err != nil {
		return nil
	}
	if s.OverallScore == "" && s.FinalSuggestion == "" {
		return nil
	}
	return &s
}
