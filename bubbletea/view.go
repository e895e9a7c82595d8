package bubbletea

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/fwojciec/evalconsole"
)

// ViewID identifies one of the console views.
type ViewID int

// View constants, in tab order.
const (
	ViewGenerate ViewID = iota
	ViewEvaluate
	ViewCompare
	viewCount
)

// String returns the tab label of the view.
func (v ViewID) String() string {
	switch v {
	case ViewGenerate:
		return "Generate"
	case ViewEvaluate:
		return "Evaluate"
	case ViewCompare:
		return "Compare"
	default:
		return "Unknown"
	}
}

// EvalMode selects how the Evaluate view talks to the backend.
type EvalMode int

// EvalMode constants.
const (
	// ModeTwoPhase fetches the JSON evaluation and then the Markdown report.
	ModeTwoPhase EvalMode = iota
	// ModeSingle runs a single-pass evaluation against a document.
	ModeSingle
)

// String returns a short label for the mode.
func (m EvalMode) String() string {
	if m == ModeSingle {
		return "single-pass"
	}
	return "two-phase"
}

// Input keys. Token inputs are shared by every view that needs them.
const (
	inputDocToken      = "doc_token"
	inputUserToken     = "user_token"
	inputEvalHuman     = "evaluate.human"
	inputEvalLLM       = "evaluate.llm"
	inputEvalGolden    = "evaluate.golden"
	inputCompareLLM    = "compare.llm"
	inputCompareGolden = "compare.golden"
)

// panelState is the lifecycle of a view's results panel.
type panelState int

const (
	panelHidden panelState = iota
	panelLoading
	panelResult
	panelError
)

// action identifies a result action whose hint label flips on success.
type action int

const (
	actionCopy action = iota
	actionDownload
	actionSaveGolden
	actionOpen
)

// viewState holds the per-view request lifecycle and results panel.
type viewState struct {
	id    ViewID
	focus int // index into the view's inputs; len(inputs) is the results panel

	// Request lifecycle. seq identifies the latest submission; responses
	// carrying an older seq are dropped.
	seq      int
	inFlight bool
	cancel   context.CancelFunc

	state      panelState
	spinner    spinner.Model
	results    viewport.Model
	generation *evalconsole.Generation
	report     *evalconsole.Report
	err        error

	copied     bool
	downloaded bool
	flips      map[action]int
}

func newViewState(id ViewID) *viewState {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &viewState{
		id:      id,
		spinner: sp,
		flips:   make(map[action]int),
	}
}

// begin starts a new submission and returns its sequence number.
func (v *viewState) begin(parent context.Context) (context.Context, int) {
	ctx, cancel := context.WithCancel(parent)
	v.seq++
	v.inFlight = true
	v.cancel = cancel
	v.state = panelLoading
	v.generation = nil
	v.report = nil
	v.err = nil
	v.copied = false
	v.downloaded = false
	v.results.SetContent("")
	v.results.GotoTop()
	return ctx, v.seq
}

// finish ends the submission seq. It reports false for stale responses.
func (v *viewState) finish(seq int) bool {
	if seq != v.seq {
		return false
	}
	v.inFlight = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	return true
}

// reset cancels any in-flight request and hides the results panel.
func (v *viewState) reset() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.seq++
	v.inFlight = false
	v.state = panelHidden
	v.generation = nil
	v.report = nil
	v.err = nil
	v.copied = false
	v.downloaded = false
	v.results.SetContent("")
}

// copyText returns what the copy action copies for this view.
func (v *viewState) copyText() string {
	if v.generation != nil {
		return v.generation.Formatted
	}
	if v.report != nil {
		return v.report.Markdown
	}
	return ""
}

// files returns the backend artifact links of the current report, if any.
func (v *viewState) files() *evalconsole.ReportFiles {
	if v.report == nil {
		return nil
	}
	return v.report.Files
}
