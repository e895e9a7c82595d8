package bubbletea

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/evalconsole"
)

// areaHeight is the visible height of multiline inputs.
const areaHeight = 4

// formField is a labelled input backed by a textinput for single-line
// values or a textarea for free-form text.
type formField struct {
	field evalconsole.Field
	input textinput.Model
	area  textarea.Model
}

func newFormField(f evalconsole.Field, secret bool) *formField {
	ff := &formField{field: f}
	if f.Multiline {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.Prompt = "│ "
		ta.Placeholder = f.Label
		ta.SetHeight(areaHeight)
		ta.Blur()
		ff.area = ta
		return ff
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = f.Label
	if secret {
		ti.EchoMode = textinput.EchoPassword
	}
	ti.Blur()
	ff.input = ti
	return ff
}

func (f *formField) Value() string {
	if f.field.Multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) SetValue(s string) {
	if f.field.Multiline {
		f.area.SetValue(s)
		return
	}
	f.input.SetValue(s)
}

func (f *formField) Focus() tea.Cmd {
	if f.field.Multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *formField) Blur() {
	if f.field.Multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *formField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.field.Multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *formField) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	if f.field.Multiline {
		f.area.SetWidth(width)
		return
	}
	f.input.Width = width - len(f.input.Prompt) - 1
}

// Height returns the rows the field occupies, label included.
func (f *formField) Height() int {
	if f.field.Multiline {
		return areaHeight + 1
	}
	return 2
}

func (f *formField) View() string {
	if f.field.Multiline {
		return f.area.View()
	}
	return f.input.View()
}
