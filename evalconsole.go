// Package evalconsole provides domain types for generating and evaluating
// test cases against a remote evaluation backend.
package evalconsole

import "context"

// GenerateRequest asks the backend to generate test cases from a document.
type GenerateRequest struct {
	DocToken        string `json:"doc_token"`
	UserAccessToken string `json:"user_access_token"`
}

// GenerateResponse carries generated test cases as a JSON-encoded string.
type GenerateResponse struct {
	TestCasesJSON string `json:"test_cases_json"`
}

// EvaluateRequest asks for a single-pass evaluation of human and LLM cases
// against a document.
type EvaluateRequest struct {
	DocToken        string `json:"doc_token"`
	UserAccessToken string `json:"user_access_token"`
	HumanCasesText  string `json:"human_cases_text"`
	LLMCasesText    string `json:"llm_cases_text"`
}

// ReportResponse carries a Markdown report.
type ReportResponse struct {
	ReportMarkdown string `json:"report_markdown"`
}

// CasesRequest pairs LLM cases with golden cases. It is the body of both
// halves of the two-phase evaluation.
type CasesRequest struct {
	LLMTestCases    string `json:"llm_test_cases"`
	GoldenTestCases string `json:"golden_test_cases"`
}

// EvaluationResponse carries a JSON-encoded evaluation result.
type EvaluationResponse struct {
	EvaluationJSON string `json:"evaluation_json"`
}

// CompareRequest asks the backend to compare AI cases with golden cases.
// A nil GoldenTestCases lets the backend fall back to its stored golden set.
type CompareRequest struct {
	AITestCases     string  `json:"ai_test_cases"`
	GoldenTestCases *string `json:"golden_test_cases,omitempty"`
	ModelName       string  `json:"model_name,omitempty"`
	SaveResults     bool    `json:"save_results"`
}

// CompareResponse is the body returned by the compare endpoint. Failure is
// signalled with Success=false rather than an HTTP status.
type CompareResponse struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message,omitempty"`
	Error            string         `json:"error,omitempty"`
	ErrorType        string         `json:"error_type,omitempty"`
	EvaluationResult map[string]any `json:"evaluation_result,omitempty"`
	Report           string         `json:"report,omitempty"`
	Files            *ReportFiles   `json:"files,omitempty"`
	RequestID        string         `json:"request_id,omitempty"`
}

// ReportFiles holds opaque links to report artifacts stored by the backend.
type ReportFiles struct {
	ReportMD   string `json:"report_md"`
	ReportJSON string `json:"report_json"`
}

// SaveGoldenRequest persists golden cases on the backend.
type SaveGoldenRequest struct {
	GoldenTestCases string `json:"golden_test_cases"`
}

// CaseKind identifies which case set an upload replaces.
type CaseKind string

// Case kinds accepted by the upload endpoint.
const (
	CaseKindAI     CaseKind = "ai"
	CaseKindGolden CaseKind = "golden"
)

// UploadRequest uploads a case file to the backend.
type UploadRequest struct {
	Kind     CaseKind
	Filename string
	Content  string
}

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	FilePath  string `json:"file_path,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Health is the backend health report.
type Health struct {
	Status     string          `json:"status"`
	Timestamp  float64         `json:"timestamp"`
	DirsStatus map[string]bool `json:"dirs_status,omitempty"`
	ModelInfo  *ModelInfo      `json:"model_info,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ModelInfo describes the model the backend evaluates with.
type ModelInfo struct {
	ModelName        string `json:"model_name"`
	APIURLConfigured bool   `json:"api_url_configured"`
}

// Backend is the evaluation service consumed by the console.
type Backend interface {
	// Generate creates test cases from the referenced document.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	// Evaluate runs a single-pass evaluation and returns a Markdown report.
	Evaluate(ctx context.Context, req EvaluateRequest) (*ReportResponse, error)
	// EvaluateOnly returns the JSON evaluation of LLM cases against golden cases.
	EvaluateOnly(ctx context.Context, req CasesRequest) (*EvaluationResponse, error)
	// MarkdownReport returns a Markdown report for LLM cases against golden cases.
	MarkdownReport(ctx context.Context, req CasesRequest) (*ReportResponse, error)
	// Compare compares AI cases with golden cases. A Success=false body is
	// returned without error; transport and HTTP failures return an error.
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
	// SaveGoldenCases persists golden cases on the backend.
	SaveGoldenCases(ctx context.Context, req SaveGoldenRequest) error
	// UploadCases replaces a case set on the backend with a file.
	UploadCases(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	// Health reports backend status.
	Health(ctx context.Context) (*Health, error)
}
