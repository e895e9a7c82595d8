package bubbletea_test

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/bubbletea"
	"github.com/fwojciec/evalconsole/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend() *mock.Backend {
	return &mock.Backend{
		HealthFn: func(context.Context) (*evalconsole.Health, error) {
			return &evalconsole.Health{
				Status:    "healthy",
				ModelInfo: &evalconsole.ModelInfo{ModelName: "judge-1"},
			}, nil
		},
	}
}

func newConsole(b *mock.Backend) *evalconsole.Console {
	return &evalconsole.Console{
		Backend: b,
		Renderer: &mock.Renderer{RenderFn: func(md string) (string, error) {
			return md, nil
		}},
	}
}

func newTestModel(t *testing.T, console *evalconsole.Console) *teatest.TestModel {
	t.Helper()

	toasts := bubbletea.NewToastNotifier()
	t.Cleanup(toasts.Close)
	console.Notifier = toasts

	renderer := lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
	m := bubbletea.NewModel(console,
		bubbletea.WithToasts(toasts),
		bubbletea.WithLipglossRenderer(renderer),
	)
	return teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 60))
}

func waitFor(t *testing.T, tm *teatest.TestModel, s string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(s))
	}, teatest.WithDuration(3*time.Second))
}

func press(tm *teatest.TestModel, k tea.KeyType) {
	tm.Send(tea.KeyMsg{Type: k})
}

func quit(t *testing.T, tm *teatest.TestModel) bubbletea.Model {
	t.Helper()
	press(tm, tea.KeyCtrlC)
	fm := tm.FinalModel(t, teatest.WithFinalTimeout(time.Second))
	m, ok := fm.(bubbletea.Model)
	require.True(t, ok)
	return m
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(newConsole(newBackend()))

	assert.Contains(t, m.View(), "Loading")
}

func TestModel_ShowsBackendHealth(t *testing.T) {
	t.Parallel()

	tm := newTestModel(t, newConsole(newBackend()))

	waitFor(t, tm, "backend: healthy (judge-1)")

	view := quit(t, tm).View()
	assert.Contains(t, view, "Generate")
	assert.Contains(t, view, "Evaluate (two-phase)")
	assert.Contains(t, view, "Compare")
}

func TestModel_HealthFailure(t *testing.T) {
	t.Parallel()

	b := newBackend()
	b.HealthFn = func(context.Context) (*evalconsole.Health, error) {
		return nil, &evalconsole.APIError{Endpoint: evalconsole.EndpointHealth, StatusCode: 503}
	}
	tm := newTestModel(t, newConsole(b))

	waitFor(t, tm, "backend: unreachable")
	quit(t, tm)
}

func TestModel_GenerateFillsOtherViews(t *testing.T) {
	t.Parallel()

	b := newBackend()
	b.GenerateFn = func(_ context.Context, req evalconsole.GenerateRequest) (*evalconsole.GenerateResponse, error) {
		assert.Equal(t, "doc", req.DocToken)
		assert.Equal(t, "secret", req.UserAccessToken)
		return &evalconsole.GenerateResponse{TestCasesJSON: `[{"id":1}]`}, nil
	}
	tm := newTestModel(t, newConsole(b))

	tm.Type("doc")
	press(tm, tea.KeyTab)
	tm.Type("secret")
	press(tm, tea.KeyCtrlR)

	waitFor(t, tm, "Test cases generated successfully")

	press(tm, tea.KeyF3)
	waitFor(t, tm, `"id": 1`)

	view := quit(t, tm).View()
	assert.Contains(t, view, "Compare")
	assert.NotContains(t, view, "secret")
}

func TestModel_ValidationErrorShownInline(t *testing.T) {
	t.Parallel()

	tm := newTestModel(t, newConsole(newBackend()))

	press(tm, tea.KeyCtrlR)

	waitFor(t, tm, "✗ Document token is required")
	quit(t, tm)
}

func TestModel_DuplicateSubmitIgnored(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 2)
	b := newBackend()
	b.GenerateFn = func(ctx context.Context, _ evalconsole.GenerateRequest) (*evalconsole.GenerateResponse, error) {
		started <- struct{}{}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	tm := newTestModel(t, newConsole(b))

	tm.Type("doc")
	press(tm, tea.KeyTab)
	tm.Type("user")
	press(tm, tea.KeyCtrlR)
	<-started
	press(tm, tea.KeyCtrlR)

	waitFor(t, tm, "A request is already in progress")
	quit(t, tm)
	assert.Len(t, started, 0, "backend should be called once")
}

func TestModel_StaleResponseIgnored(t *testing.T) {
	t.Parallel()

	calls := make(chan int32, 2)
	firstReturned := make(chan struct{})
	var n atomic.Int32
	b := newBackend()
	b.EvaluateOnlyFn = func(ctx context.Context, _ evalconsole.CasesRequest) (*evalconsole.EvaluationResponse, error) {
		call := n.Add(1)
		calls <- call
		if call == 1 {
			<-ctx.Done()
			close(firstReturned)
			return nil, ctx.Err()
		}
		return &evalconsole.EvaluationResponse{EvaluationJSON: `{"score":1}`}, nil
	}
	b.MarkdownReportFn = func(context.Context, evalconsole.CasesRequest) (*evalconsole.ReportResponse, error) {
		return &evalconsole.ReportResponse{ReportMarkdown: "# Second report"}, nil
	}
	tm := newTestModel(t, newConsole(b))

	press(tm, tea.KeyF2)
	tm.Type("[1]")
	press(tm, tea.KeyTab)
	tm.Type("[2]")
	press(tm, tea.KeyCtrlR)
	require.Equal(t, int32(1), <-calls)

	press(tm, tea.KeyCtrlL)
	<-firstReturned
	press(tm, tea.KeyCtrlR)
	require.Equal(t, int32(2), <-calls)

	waitFor(t, tm, "# Second report")

	view := quit(t, tm).View()
	assert.Contains(t, view, "# Second report")
	assert.NotContains(t, view, "context canceled")
}

func TestModel_ToggleEvaluateMode(t *testing.T) {
	t.Parallel()

	tm := newTestModel(t, newConsole(newBackend()))

	press(tm, tea.KeyF2)
	press(tm, tea.KeyCtrlE)

	waitFor(t, tm, "Evaluate (single-pass)")

	view := quit(t, tm).View()
	assert.Contains(t, view, "Human-written test cases")
	assert.Contains(t, view, "Document token")
}

func TestModel_SingleEvaluateSharesTokens(t *testing.T) {
	t.Parallel()

	b := newBackend()
	b.EvaluateFn = func(_ context.Context, req evalconsole.EvaluateRequest) (*evalconsole.ReportResponse, error) {
		assert.Equal(t, "doc", req.DocToken)
		assert.Equal(t, "user", req.UserAccessToken)
		assert.Equal(t, "human", req.HumanCasesText)
		assert.Equal(t, "llm", req.LLMCasesText)
		return &evalconsole.ReportResponse{ReportMarkdown: "# Single report"}, nil
	}
	tm := newTestModel(t, newConsole(b))

	tm.Type("doc")
	press(tm, tea.KeyTab)
	tm.Type("user")

	press(tm, tea.KeyF2)
	press(tm, tea.KeyCtrlE)
	press(tm, tea.KeyTab)
	press(tm, tea.KeyTab)
	tm.Type("human")
	press(tm, tea.KeyTab)
	tm.Type("llm")
	press(tm, tea.KeyCtrlR)

	waitFor(t, tm, "# Single report")
	quit(t, tm)
}

func TestModel_CompareLinksAndSummary(t *testing.T) {
	t.Parallel()

	opened := make(chan string, 1)
	b := newBackend()
	b.CompareFn = func(_ context.Context, req evalconsole.CompareRequest) (*evalconsole.CompareResponse, error) {
		assert.Equal(t, "[]", req.AITestCases)
		assert.Nil(t, req.GoldenTestCases)
		return &evalconsole.CompareResponse{
			Success: true,
			Report:  "# Compare report",
			EvaluationResult: map[string]any{
				"evaluation_summary": map[string]any{"overall_score": "4.2"},
			},
			Files: &evalconsole.ReportFiles{ReportMD: "/srv/r.md", ReportJSON: "/srv/r.json"},
		}, nil
	}
	console := newConsole(b)
	console.Opener = &mock.LinkOpener{OpenFn: func(url string) error {
		opened <- url
		return nil
	}}
	tm := newTestModel(t, console)

	press(tm, tea.KeyF3)
	tm.Type("[]")
	press(tm, tea.KeyCtrlR)

	waitFor(t, tm, "# Compare report")

	press(tm, tea.KeyTab)
	press(tm, tea.KeyTab)
	tm.Type("o")

	select {
	case url := <-opened:
		assert.Equal(t, "/srv/r.md", url)
	case <-time.After(3 * time.Second):
		t.Fatal("link was not opened")
	}

	view := quit(t, tm).View()
	assert.Contains(t, view, "Overall score: 4.2")
	assert.Contains(t, view, "/srv/r.json")
}

func TestModel_CopyAndDownloadFlipLabels(t *testing.T) {
	t.Parallel()

	copied := make(chan string, 1)
	written := make(chan evalconsole.Attachment, 1)
	b := newBackend()
	b.EvaluateOnlyFn = func(context.Context, evalconsole.CasesRequest) (*evalconsole.EvaluationResponse, error) {
		return &evalconsole.EvaluationResponse{EvaluationJSON: `{"score":1}`}, nil
	}
	b.MarkdownReportFn = func(context.Context, evalconsole.CasesRequest) (*evalconsole.ReportResponse, error) {
		return &evalconsole.ReportResponse{ReportMarkdown: "# Report"}, nil
	}
	console := newConsole(b)
	console.Clipboard = &mock.Clipboard{CopyFn: func(content string) error {
		copied <- content
		return nil
	}}
	console.Writer = &mock.ReportWriter{WriteFn: func(a evalconsole.Attachment) (string, error) {
		written <- a
		return "/tmp/" + a.Name, nil
	}}
	tm := newTestModel(t, console)

	press(tm, tea.KeyF2)
	tm.Type("[1]")
	press(tm, tea.KeyTab)
	tm.Type("[2]")
	press(tm, tea.KeyCtrlR)
	waitFor(t, tm, "[ctrl+y] copy")

	press(tm, tea.KeyCtrlY)
	waitFor(t, tm, "copied ✓")
	assert.Contains(t, <-copied, "## Raw evaluation data (JSON)")

	press(tm, tea.KeyCtrlD)
	waitFor(t, tm, "downloaded ✓")
	a := <-written
	assert.Equal(t, evalconsole.ReportMIMEType, a.MIMEType)
	assert.Contains(t, a.Content, "# Report")

	quit(t, tm)
}

func TestModel_CopyWithoutResultWarns(t *testing.T) {
	t.Parallel()

	console := newConsole(newBackend())
	console.Clipboard = &mock.Clipboard{CopyFn: func(string) error {
		t.Error("clipboard should not be used")
		return nil
	}}
	tm := newTestModel(t, console)

	press(tm, tea.KeyCtrlY)

	waitFor(t, tm, "There is nothing to copy")
	quit(t, tm)
}

func TestModel_ToggleHelp(t *testing.T) {
	t.Parallel()

	tm := newTestModel(t, newConsole(newBackend()))

	press(tm, tea.KeyCtrlG)

	waitFor(t, tm, "single/two-phase")
	quit(t, tm)
}
