package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/evalconsole"
)

// lineTokenizer is implemented by tokenizers that keep multi-line context.
type lineTokenizer interface {
	TokenizeLines(language, source string) [][]evalconsole.Token
}

// minGutterWidth is the minimum width of the line number column.
const minGutterWidth = 3

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	v := m.current()
	var s strings.Builder

	s.WriteString(m.renderTabBar())
	s.WriteString("\n\n")

	names := m.inputNames(m.active)
	for i, name := range names {
		s.WriteString(m.renderLabel(m.inputs[name], v.focus == i))
		s.WriteString("\n")
		s.WriteString(m.inputs[name].View())
		s.WriteString("\n")
	}

	s.WriteString(m.renderResultsHeader(v))
	s.WriteString("\n")
	if summary := m.renderSummary(v); summary != "" {
		s.WriteString(summary)
		s.WriteString("\n")
	}
	if v.state == panelLoading {
		s.WriteString(v.spinner.View() + " " + m.loadingLabel())
		s.WriteString(strings.Repeat("\n", max(v.results.Height-1, 0)))
	} else {
		s.WriteString(v.results.View())
	}

	if toasts := m.renderToasts(); toasts != "" {
		s.WriteString("\n")
		s.WriteString(toasts)
	}
	s.WriteString("\n")
	s.WriteString(m.helpView())

	return s.String()
}

func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (m Model) renderTabBar() string {
	var tabs []string
	for id := ViewID(0); id < viewCount; id++ {
		label := id.String()
		if id == ViewEvaluate {
			label += " (" + m.mode.String() + ")"
		}
		if m.views[id].inFlight {
			label += " …"
		}
		cp := m.styles.Tab
		if id == m.active {
			cp = m.styles.ActiveTab
		}
		tabs = append(tabs, styleFromColorPair(cp, m.renderer).Padding(0, 1).Render(label))
	}
	bar := strings.Join(tabs, " ")

	status := m.renderHealth()
	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return bar + strings.Repeat(" ", gap) + status
}

func (m Model) renderHealth() string {
	switch {
	case !m.healthKnown:
		return m.newStyle().Faint(true).Render("backend: checking")
	case m.healthErr != nil:
		return styleFromColorPair(m.styles.Danger, m.renderer).Render("backend: unreachable")
	}
	status := "backend: " + m.health.Status
	if m.health.ModelInfo != nil && m.health.ModelInfo.ModelName != "" {
		status += " (" + m.health.ModelInfo.ModelName + ")"
	}
	if m.health.Status != "healthy" && m.health.Status != "ok" {
		return styleFromColorPair(m.styles.Warning, m.renderer).Render(status)
	}
	return styleFromColorPair(m.styles.Success, m.renderer).Render(status)
}

func (m Model) renderLabel(f *formField, focused bool) string {
	style := styleFromColorPair(m.styles.Label, m.renderer).Bold(true)
	label := f.field.Label
	if f.field.Optional {
		label += " (optional)"
	}
	if focused {
		return styleFromColorPair(m.styles.Focused, m.renderer).Bold(true).Render("▸ " + label)
	}
	return style.Render("  " + label)
}

func (m Model) renderResultsHeader(v *viewState) string {
	title := "RESULT"
	if m.resultsFocused() {
		title += " [active]"
	}
	header := styleFromColorPair(m.styles.Label, m.renderer).Bold(true).Render(title)
	if v.state != panelResult {
		return header
	}

	faint := m.newStyle().Faint(true)
	done := styleFromColorPair(m.styles.Success, m.renderer)

	hints := []string{faint.Render("[ctrl+y] copy")}
	if v.copied {
		hints[0] = done.Render("copied ✓")
	}
	if v.report != nil {
		if v.downloaded {
			hints = append(hints, done.Render("downloaded ✓"))
		} else {
			hints = append(hints, faint.Render("[ctrl+d] download"))
		}
	}
	return header + "  " + strings.Join(hints, "  ")
}

func (m Model) renderSummary(v *viewState) string {
	if v.report == nil || v.report.Summary == nil {
		return ""
	}
	s := v.report.Summary
	line := "Overall score: " + s.OverallScore
	if s.FinalSuggestion != "" {
		line += " │ " + s.FinalSuggestion
	}
	return styleFromColorPair(m.styles.Info, m.renderer).Render(line)
}

func (m Model) loadingLabel() string {
	switch m.active {
	case ViewGenerate:
		return "Generating test cases..."
	case ViewCompare:
		return "Comparing test cases..."
	default:
		return "Evaluating test cases..."
	}
}

func (m Model) renderToasts() string {
	if m.toasts == nil || m.toasts.Len() == 0 {
		return ""
	}
	lines := make([]string, 0, m.toasts.Len())
	for _, t := range m.toasts.Items() {
		style := styleFromColorPair(m.styles.Severity(t.Severity), m.renderer).Padding(0, 1)
		lines = append(lines, style.Render(severityIcon(t.Severity)+" "+t.Message))
	}
	return strings.Join(lines, "\n")
}

func severityIcon(s evalconsole.Severity) string {
	switch s {
	case evalconsole.SeveritySuccess:
		return "✓"
	case evalconsole.SeverityDanger:
		return "✗"
	case evalconsole.SeverityWarning:
		return "!"
	default:
		return "i"
	}
}

// refreshResults sets the results viewport content from the view state.
func (m *Model) refreshResults(v *viewState) {
	if !m.ready {
		return
	}
	switch v.state {
	case panelHidden:
		v.results.SetContent(m.newStyle().Faint(true).Render("Submit with ctrl+r to see results here."))
	case panelLoading:
		v.results.SetContent("")
	case panelError:
		v.results.SetContent(styleFromColorPair(m.styles.Danger, m.renderer).Render("✗ " + v.err.Error()))
	case panelResult:
		switch {
		case v.generation != nil:
			v.results.SetContent(m.renderGeneration(v.generation))
		case v.report != nil:
			v.results.SetContent(m.renderLinks(v.report.Files) + ExpandTabs(v.report.Rendered))
		}
	}
}

func (m Model) renderLinks(files *evalconsole.ReportFiles) string {
	if files == nil || (files.ReportMD == "" && files.ReportJSON == "") {
		return ""
	}
	link := styleFromColorPair(m.styles.Link, m.renderer).Underline(true)
	faint := m.newStyle().Faint(true)

	var sb strings.Builder
	if files.ReportMD != "" {
		sb.WriteString(faint.Render("[o] report  ") + link.Render(files.ReportMD) + "\n")
	}
	if files.ReportJSON != "" {
		sb.WriteString(faint.Render("[O] data    ") + link.Render(files.ReportJSON) + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// renderGeneration renders generated cases as highlighted JSON with line
// numbers. Invalid JSON is shown raw beneath a warning.
func (m Model) renderGeneration(g *evalconsole.Generation) string {
	if !g.Valid {
		warn := styleFromColorPair(m.styles.Warning, m.renderer).Render("! Not valid JSON, showing raw output")
		return warn + "\n\n" + ExpandTabs(g.Raw)
	}

	lines := strings.Split(g.Formatted, "\n")
	tokens := m.tokenizeJSON(g.Formatted, lines)
	gutterWidth := max(digitWidth(len(lines)), minGutterWidth)
	gutterStyle := m.newStyle().Faint(true)

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(gutterStyle.Render(formatLineNum(i+1, gutterWidth) + " "))
		if i < len(tokens) {
			sb.WriteString(renderLineWithTokens(tokens[i], evalconsole.ColorPair{}, m.renderer))
		} else {
			sb.WriteString(line)
		}
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// tokenizeJSON returns per-line tokens, or nil when no tokenizer can
// highlight the source.
func (m Model) tokenizeJSON(source string, lines []string) [][]evalconsole.Token {
	if m.tokenizer == nil {
		return nil
	}
	if lt, ok := m.tokenizer.(lineTokenizer); ok {
		return lt.TokenizeLines("json", source)
	}
	out := make([][]evalconsole.Token, len(lines))
	for i, line := range lines {
		toks := m.tokenizer.Tokenize("json", line)
		if toks == nil {
			return nil
		}
		out[i] = toks
	}
	return out
}

// renderLineWithTokens renders syntax tokens over a base color pair. Token
// foregrounds win over the base foreground.
func renderLineWithTokens(tokens []evalconsole.Token, colors evalconsole.ColorPair, renderer *lipgloss.Renderer) string {
	var sb strings.Builder
	for _, tok := range tokens {
		style := styleFromColorPair(evalconsole.ColorPair{Background: colors.Background}, renderer)
		if tok.Style.Foreground != "" {
			style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
		} else if colors.Foreground != "" {
			style = style.Foreground(lipgloss.Color(colors.Foreground))
		}
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(tok.Text))
	}
	return sb.String()
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp evalconsole.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// formatLineNum right-aligns num within width.
func formatLineNum(num, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
