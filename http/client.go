// Package http implements evalconsole.Backend over the evaluation service's
// JSON HTTP API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/evalconsole"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Response size limits.
const (
	maxErrorBody    = 1 << 20
	maxEnvelopeBody = 16 << 20
)

// Compile-time interface verification.
var _ evalconsole.Backend = (*Client)(nil)

// Client talks to the evaluation backend.
type Client struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient performs requests. Defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
	// UserAgent is sent with every request when set.
	UserAgent string
	// Logger receives request diagnostics. May be nil.
	Logger evalconsole.Logger
	// NewRequestID returns a correlation ID. Defaults to a random UUID.
	NewRequestID func() string
}

// NewClient returns a Client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = evalconsole.DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Generate implements evalconsole.Backend.
func (c *Client) Generate(ctx context.Context, req evalconsole.GenerateRequest) (*evalconsole.GenerateResponse, error) {
	var out evalconsole.GenerateResponse
	if err := c.postJSON(ctx, evalconsole.EndpointGenerate, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Evaluate implements evalconsole.Backend.
func (c *Client) Evaluate(ctx context.Context, req evalconsole.EvaluateRequest) (*evalconsole.ReportResponse, error) {
	var out evalconsole.ReportResponse
	if err := c.postJSON(ctx, evalconsole.EndpointEvaluate, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluateOnly implements evalconsole.Backend.
func (c *Client) EvaluateOnly(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.EvaluationResponse, error) {
	var out evalconsole.EvaluationResponse
	if err := c.postJSON(ctx, evalconsole.EndpointEvaluateOnly, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkdownReport implements evalconsole.Backend.
func (c *Client) MarkdownReport(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.ReportResponse, error) {
	var out evalconsole.ReportResponse
	if err := c.postJSON(ctx, evalconsole.EndpointMarkdownReport, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare implements evalconsole.Backend. The backend reports failures in a
// {success: false} body, sometimes with a 5xx status; such bodies are
// returned as responses rather than errors.
func (c *Client) Compare(ctx context.Context, req evalconsole.CompareRequest) (*evalconsole.CompareResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var out evalconsole.CompareResponse
	if err := c.doEnvelope(ctx, evalconsole.EndpointCompare, "application/json", bytes.NewReader(body), &out, func() bool {
		return out.Success || out.Error != ""
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveGoldenCases implements evalconsole.Backend.
func (c *Client) SaveGoldenCases(ctx context.Context, req evalconsole.SaveGoldenRequest) error {
	var out struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, evalconsole.EndpointSaveGolden, req, &out); err != nil {
		return err
	}
	if out.Success != nil && !*out.Success {
		return &evalconsole.BackendError{Endpoint: evalconsole.EndpointSaveGolden, Message: out.Error}
	}
	return nil
}

// UploadCases implements evalconsole.Backend.
func (c *Client) UploadCases(ctx context.Context, req evalconsole.UploadRequest) (*evalconsole.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.WriteString(part, req.Content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := w.WriteField("file_type", string(req.Kind)); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	var out evalconsole.UploadResponse
	if err := c.doEnvelope(ctx, evalconsole.EndpointUpload, w.FormDataContentType(), &buf, &out, func() bool {
		return out.Success || out.Error != ""
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health implements evalconsole.Backend.
func (c *Client) Health(ctx context.Context) (*evalconsole.Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, evalconsole.EndpointHealth, "", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(evalconsole.EndpointHealth, resp)
	}
	var out evalconsole.Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", evalconsole.EndpointHealth, err)
	}
	return &out, nil
}

// postJSON posts v and decodes a 2xx body into out. Non-2xx responses
// become *evalconsole.APIError.
func (c *Client) postJSON(ctx context.Context, endpoint string, v, out any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(endpoint, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// doEnvelope posts body and decodes the response into out regardless of
// status. A non-2xx response whose body is not a success envelope, as
// reported by isEnvelope, becomes *evalconsole.APIError.
func (c *Client) doEnvelope(ctx context.Context, endpoint, contentType string, body io.Reader, out any, isEnvelope func() bool) error {
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, contentType, body)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBody))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	decodeErr := json.Unmarshal(data, out)
	if ok {
		if decodeErr != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, decodeErr)
		}
		return nil
	}
	if decodeErr == nil && isEnvelope() {
		return nil
	}
	return &evalconsole.APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Detail: parseDetail(data)}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, c.requestID())
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: evalconsole.DefaultTimeout}
	}
	id := req.Header.Get(RequestIDHeader)
	start := time.Now()
	if c.Logger != nil {
		c.Logger.Debug("request", "method", req.Method, "path", req.URL.Path, "request_id", id)
	}
	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if c.Logger != nil {
		c.Logger.Debug("response", "path", req.URL.Path, "status", resp.StatusCode, "request_id", id, "elapsed", time.Since(start).Round(time.Millisecond))
	}
	return resp, nil
}

func (c *Client) requestID() string {
	if c.NewRequestID != nil {
		return c.NewRequestID()
	}
	return uuid.NewString()
}

func decodeAPIError(endpoint string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &evalconsole.APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Detail: parseDetail(data)}
}

// parseDetail extracts a human-readable message from an error body. The
// "detail" field is either a string or a list of validation errors; bodies
// in the success envelope carry "error" instead.
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if len(it.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[len(it.Loc)-1], it.Msg))
					continue
				}
				msgs = append(msgs, it.Msg)
			}
			return strings.Join(msgs, "; ")
		}
		return string(body.Detail)
	}
	return body.Error
}
