// Package bubbletea provides the terminal console for generating and
// evaluating test cases using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/evalconsole"
)

// Messages produced by commands. Each request-bound message carries the
// sequence number of the submission that produced it.
type (
	generateDoneMsg struct {
		seq        int
		generation *evalconsole.Generation
		err        error
	}

	reportDoneMsg struct {
		view   ViewID
		seq    int
		report *evalconsole.Report
		err    error
	}

	healthMsg struct {
		health *evalconsole.Health
		err    error
	}

	actionDoneMsg struct {
		view   ViewID
		action action
		err    error
	}

	flipExpiredMsg struct {
		view   ViewID
		action action
		id     int
	}
)

// widthSetter is implemented by renderers whose output wraps to a width.
type widthSetter interface {
	SetWidth(width int)
}

// Model is the Bubble Tea model for the evaluation console. Console
// operations run inside commands, never in Update.
type Model struct {
	console *evalconsole.Console
	ctx     context.Context

	inputs map[string]*formField
	views  [viewCount]*viewState
	active ViewID
	mode   EvalMode

	// toasts is created on the first notification.
	toasts   *ToastStack
	notifier *ToastNotifier

	health      *evalconsole.Health
	healthErr   error
	healthKnown bool

	keymap    KeyMap
	help      help.Model
	styles    evalconsole.Styles
	renderer  *lipgloss.Renderer
	tokenizer evalconsole.Tokenizer

	width, height int
	ready         bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTheme sets the theme for the model.
func WithTheme(t evalconsole.Theme) ModelOption {
	return func(m *Model) {
		m.styles = t.Styles()
	}
}

// WithTokenizer sets the tokenizer used to highlight generated JSON.
func WithTokenizer(t evalconsole.Tokenizer) ModelOption {
	return func(m *Model) {
		m.tokenizer = t
	}
}

// WithToasts delivers Console notifications from n as toasts.
func WithToasts(n *ToastNotifier) ModelOption {
	return func(m *Model) {
		m.notifier = n
	}
}

// WithLipglossRenderer sets a custom lipgloss renderer for the model.
func WithLipglossRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithContext sets the parent context of every request.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// NewModel creates a new Model driving console.
func NewModel(console *evalconsole.Console, opts ...ModelOption) Model {
	m := Model{
		console: console,
		ctx:     context.Background(),
		keymap:  DefaultKeyMap(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	generate := evalconsole.GenerateFields(evalconsole.GenerateRequest{})
	single := evalconsole.EvaluateFields(evalconsole.EvaluateRequest{})
	cases := evalconsole.CasesFields(evalconsole.CasesRequest{})
	compare := evalconsole.CompareFields(evalconsole.CompareInput{})

	m.inputs = map[string]*formField{
		inputDocToken:      newFormField(generate[0], false),
		inputUserToken:     newFormField(generate[1], true),
		inputEvalHuman:     newFormField(single[2], false),
		inputEvalLLM:       newFormField(cases[0], false),
		inputEvalGolden:    newFormField(cases[1], false),
		inputCompareLLM:    newFormField(compare[0], false),
		inputCompareGolden: newFormField(compare[1], false),
	}
	m.inputs[inputCompareGolden].area.Placeholder = "Golden test cases (optional, stored set is used when empty)"

	for id := range m.views {
		m.views[id] = newViewState(ViewID(id))
	}
	m.focusCurrent()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkHealth()}
	if m.notifier != nil {
		cmds = append(cmds, m.notifier.listen())
	}
	if in := m.focusedInput(); in != nil {
		cmds = append(cmds, in.Focus())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, v := range m.views {
			if !v.inFlight {
				continue
			}
			var c tea.Cmd
			v.spinner, c = v.spinner.Update(msg)
			cmds = append(cmds, c)
		}
		cmd = tea.Batch(cmds...)

	case toastMsg:
		cmd = tea.Batch(m.pushToast(msg.message, msg.severity), m.notifier.listen())

	case toastExpiredMsg:
		if m.toasts != nil {
			m.toasts.Dismiss(msg.id)
		}

	case healthMsg:
		m.health, m.healthErr, m.healthKnown = msg.health, msg.err, true

	case generateDoneMsg:
		cmd = m.handleGenerateDone(msg)

	case reportDoneMsg:
		m.handleReportDone(msg)

	case actionDoneMsg:
		cmd = m.handleActionDone(msg)

	case flipExpiredMsg:
		v := m.views[msg.view]
		if v.flips[msg.action] == msg.id {
			m.setFlip(v, msg.action, false)
		}

	default:
		if in := m.focusedInput(); in != nil {
			cmd = in.Update(msg)
		}
	}

	m.layout()
	return m, cmd
}

// handleKey processes a key press. quit reports that the program is exiting.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	v := m.current()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		for _, v := range m.views {
			if v.cancel != nil {
				v.cancel()
			}
		}
		if m.notifier != nil {
			m.notifier.Close()
		}
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, false
	case key.Matches(msg, m.keymap.GenerateView):
		return m.switchView(ViewGenerate), false
	case key.Matches(msg, m.keymap.EvaluateView):
		return m.switchView(ViewEvaluate), false
	case key.Matches(msg, m.keymap.CompareView):
		return m.switchView(ViewCompare), false
	case key.Matches(msg, m.keymap.NextView):
		return m.switchView((m.active + 1) % viewCount), false
	case key.Matches(msg, m.keymap.PrevView):
		return m.switchView((m.active + viewCount - 1) % viewCount), false
	case key.Matches(msg, m.keymap.NextField):
		return m.moveFocus(1), false
	case key.Matches(msg, m.keymap.PrevField):
		return m.moveFocus(-1), false
	case key.Matches(msg, m.keymap.Submit):
		return m.submit(), false
	case key.Matches(msg, m.keymap.ToggleMode):
		return m.toggleMode(), false
	case key.Matches(msg, m.keymap.Clear):
		v.reset()
		return nil, false
	case key.Matches(msg, m.keymap.Copy):
		return m.copyResult(), false
	case key.Matches(msg, m.keymap.Download):
		return m.downloadResult(), false
	case key.Matches(msg, m.keymap.SaveGolden):
		return m.saveGolden(), false
	}

	if !m.resultsFocused() {
		if in := m.focusedInput(); in != nil {
			return in.Update(msg), false
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.OpenReport):
		if f := v.files(); f != nil {
			return m.openLink(f.ReportMD), false
		}
	case key.Matches(msg, m.keymap.OpenReportJSON):
		if f := v.files(); f != nil {
			return m.openLink(f.ReportJSON), false
		}
	case key.Matches(msg, m.keymap.ScrollUp):
		v.results.ScrollUp(1)
	case key.Matches(msg, m.keymap.ScrollDown):
		v.results.ScrollDown(1)
	case key.Matches(msg, m.keymap.PageUp):
		v.results.PageUp()
	case key.Matches(msg, m.keymap.PageDown):
		v.results.PageDown()
	}
	return nil, false
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	widthChanged := m.width != msg.Width
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	for _, in := range m.inputs {
		in.SetWidth(msg.Width - 2)
	}
	if ws, ok := m.console.Renderer.(widthSetter); ok {
		ws.SetWidth(msg.Width - 4)
		if widthChanged {
			m.rerenderReports()
		}
	}

	if !m.ready {
		for _, v := range m.views {
			v.results = viewport.New(msg.Width, 1)
		}
		m.ready = true
	}
	for _, v := range m.views {
		v.results.Width = msg.Width
		m.refreshResults(v)
	}
}

// rerenderReports wraps the shown reports to the current renderer width.
func (m *Model) rerenderReports() {
	for _, v := range m.views {
		if v.report == nil {
			continue
		}
		r := *v.report
		r.Rendered = m.console.Render(r.Markdown).Rendered
		v.report = &r
	}
}

func (m *Model) handleGenerateDone(msg generateDoneMsg) tea.Cmd {
	v := m.views[ViewGenerate]
	if !v.finish(msg.seq) {
		return nil
	}
	if msg.err != nil {
		v.state = panelError
		v.err = msg.err
		m.refreshResults(v)
		return nil
	}
	v.state = panelResult
	v.generation = msg.generation
	m.refreshResults(v)

	if !msg.generation.Valid {
		return nil
	}
	m.inputs[inputEvalLLM].SetValue(msg.generation.Formatted)
	m.inputs[inputCompareLLM].SetValue(msg.generation.Formatted)
	return m.pushToast("Generated cases copied to the Evaluate and Compare views", evalconsole.SeverityInfo)
}

func (m *Model) handleReportDone(msg reportDoneMsg) {
	v := m.views[msg.view]
	if !v.finish(msg.seq) {
		return
	}
	if msg.err != nil {
		v.state = panelError
		v.err = msg.err
	} else {
		v.state = panelResult
		v.report = msg.report
	}
	m.refreshResults(v)
}

func (m *Model) handleActionDone(msg actionDoneMsg) tea.Cmd {
	if msg.err != nil {
		return nil
	}
	switch msg.action {
	case actionCopy, actionDownload:
		v := m.views[msg.view]
		v.flips[msg.action]++
		id := v.flips[msg.action]
		m.setFlip(v, msg.action, true)
		return tea.Tick(FlipDuration, func(time.Time) tea.Msg {
			return flipExpiredMsg{view: msg.view, action: msg.action, id: id}
		})
	}
	return nil
}

func (m *Model) setFlip(v *viewState, a action, on bool) {
	switch a {
	case actionCopy:
		v.copied = on
	case actionDownload:
		v.downloaded = on
	}
}

func (m *Model) pushToast(message string, severity evalconsole.Severity) tea.Cmd {
	if m.toasts == nil {
		m.toasts = &ToastStack{}
	}
	t := m.toasts.Push(message, severity)
	return expireToast(t.ID)
}

// Commands

func (m *Model) checkHealth() tea.Cmd {
	console, ctx := m.console, m.ctx
	return func() tea.Msg {
		h, err := console.Health(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (m *Model) submit() tea.Cmd {
	v := m.current()
	if v.inFlight {
		return m.pushToast("A request is already in progress", evalconsole.SeverityInfo)
	}

	console := m.console
	value := func(name string) string { return m.inputs[name].Value() }

	var run func(ctx context.Context, seq int) tea.Msg
	switch v.id {
	case ViewGenerate:
		req := evalconsole.GenerateRequest{
			DocToken:        value(inputDocToken),
			UserAccessToken: value(inputUserToken),
		}
		run = func(ctx context.Context, seq int) tea.Msg {
			g, err := console.Generate(ctx, req)
			return generateDoneMsg{seq: seq, generation: g, err: err}
		}
	case ViewEvaluate:
		if m.mode == ModeSingle {
			req := evalconsole.EvaluateRequest{
				DocToken:        value(inputDocToken),
				UserAccessToken: value(inputUserToken),
				HumanCasesText:  value(inputEvalHuman),
				LLMCasesText:    value(inputEvalLLM),
			}
			run = func(ctx context.Context, seq int) tea.Msg {
				r, err := console.Evaluate(ctx, req)
				return reportDoneMsg{view: ViewEvaluate, seq: seq, report: r, err: err}
			}
			break
		}
		req := evalconsole.CasesRequest{
			LLMTestCases:    value(inputEvalLLM),
			GoldenTestCases: value(inputEvalGolden),
		}
		run = func(ctx context.Context, seq int) tea.Msg {
			r, err := console.EvaluateTwoPhase(ctx, req)
			return reportDoneMsg{view: ViewEvaluate, seq: seq, report: r, err: err}
		}
	case ViewCompare:
		in := evalconsole.CompareInput{
			LLMCases:    value(inputCompareLLM),
			GoldenCases: value(inputCompareGolden),
		}
		run = func(ctx context.Context, seq int) tea.Msg {
			r, err := console.Compare(ctx, in)
			return reportDoneMsg{view: ViewCompare, seq: seq, report: r, err: err}
		}
	}

	ctx, seq := v.begin(m.ctx)
	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg { return run(ctx, seq) },
	)
}

func (m *Model) copyResult() tea.Cmd {
	v := m.current()
	console, text, id := m.console, v.copyText(), v.id
	return func() tea.Msg {
		return actionDoneMsg{view: id, action: actionCopy, err: console.Copy(text)}
	}
}

func (m *Model) downloadResult() tea.Cmd {
	v := m.current()
	console, report, id := m.console, v.report, v.id
	return func() tea.Msg {
		_, err := console.Download(report)
		return actionDoneMsg{view: id, action: actionDownload, err: err}
	}
}

func (m *Model) saveGolden() tea.Cmd {
	if m.active != ViewCompare {
		return nil
	}
	console, ctx := m.console, m.ctx
	golden := m.inputs[inputCompareGolden].Value()
	return func() tea.Msg {
		return actionDoneMsg{view: ViewCompare, action: actionSaveGolden, err: console.SaveGoldenCases(ctx, golden)}
	}
}

func (m *Model) openLink(url string) tea.Cmd {
	console, id := m.console, m.active
	return func() tea.Msg {
		return actionDoneMsg{view: id, action: actionOpen, err: console.OpenLink(url)}
	}
}

// Focus and navigation

func (m *Model) current() *viewState {
	return m.views[m.active]
}

// inputNames returns the input keys of a view in focus order.
func (m *Model) inputNames(id ViewID) []string {
	switch id {
	case ViewGenerate:
		return []string{inputDocToken, inputUserToken}
	case ViewEvaluate:
		if m.mode == ModeSingle {
			return []string{inputDocToken, inputUserToken, inputEvalHuman, inputEvalLLM}
		}
		return []string{inputEvalLLM, inputEvalGolden}
	case ViewCompare:
		return []string{inputCompareLLM, inputCompareGolden}
	}
	return nil
}

func (m *Model) focusedInput() *formField {
	names := m.inputNames(m.active)
	v := m.current()
	if v.focus >= len(names) {
		return nil
	}
	return m.inputs[names[v.focus]]
}

func (m *Model) resultsFocused() bool {
	return m.current().focus >= len(m.inputNames(m.active))
}

// focusCurrent blurs every input, then focuses the current view's field.
func (m *Model) focusCurrent() tea.Cmd {
	for _, in := range m.inputs {
		in.Blur()
	}
	if in := m.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	v := m.current()
	n := len(m.inputNames(m.active)) + 1
	v.focus = (v.focus + delta + n) % n
	return m.focusCurrent()
}

func (m *Model) switchView(id ViewID) tea.Cmd {
	m.active = id
	return m.focusCurrent()
}

func (m *Model) toggleMode() tea.Cmd {
	if m.active != ViewEvaluate {
		return nil
	}
	if m.mode == ModeTwoPhase {
		m.mode = ModeSingle
	} else {
		m.mode = ModeTwoPhase
	}
	m.current().focus = 0
	return m.focusCurrent()
}

// layout sizes each results viewport to the space left by the chrome.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	for id, v := range m.views {
		form := 0
		for _, name := range m.inputNames(ViewID(id)) {
			form += m.inputs[name].Height()
		}
		// Tab bar, blank line and results header.
		chrome := 3 + form + lipgloss.Height(m.helpView())
		if m.toasts != nil {
			chrome += m.toasts.Len()
		}
		if v.report != nil && v.report.Summary != nil {
			chrome++
		}
		h := m.height - chrome
		if h < 3 {
			h = 3
		}
		v.results.Height = h
	}
}

func (m *Model) helpView() string {
	return m.help.View(m.keymap)
}
