package bubbletea

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/mock"
	"github.com/stretchr/testify/assert"
)

// widthRenderer tags its output with the width it wraps to.
type widthRenderer struct {
	width int
	calls int
}

func (r *widthRenderer) Render(markdown string) (string, error) {
	r.calls++
	return fmt.Sprintf("[%d] %s", r.width, markdown), nil
}

func (r *widthRenderer) SetWidth(width int) {
	r.width = width
}

func TestModel_ResizeRewrapsShownReports(t *testing.T) {
	t.Parallel()

	r := &widthRenderer{}
	m := NewModel(&evalconsole.Console{Backend: &mock.Backend{}, Renderer: r})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	v := m.views[ViewCompare]
	files := &evalconsole.ReportFiles{ReportMD: "results/report.md"}
	v.state = panelResult
	v.report = &evalconsole.Report{Markdown: "# Report", Rendered: "[76] # Report", Files: files}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	v = m.views[ViewCompare]
	assert.Equal(t, "[116] # Report", v.report.Rendered)
	assert.Equal(t, "# Report", v.report.Markdown)
	assert.Same(t, files, v.report.Files)
	assert.Nil(t, m.views[ViewEvaluate].report)
}

func TestModel_ResizeKeepsRenderingAtSameWidth(t *testing.T) {
	t.Parallel()

	r := &widthRenderer{}
	m := NewModel(&evalconsole.Console{Backend: &mock.Backend{}, Renderer: r})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m.views[ViewEvaluate].state = panelResult
	m.views[ViewEvaluate].report = &evalconsole.Report{Markdown: "# Report", Rendered: "[76] # Report"}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	assert.Equal(t, 0, r.calls)
	assert.Equal(t, "[76] # Report", m.views[ViewEvaluate].report.Rendered)
}
