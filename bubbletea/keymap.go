package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the console.
type KeyMap struct {
	// Views
	GenerateView key.Binding
	EvaluateView key.Binding
	CompareView  key.Binding
	NextView     key.Binding
	PrevView     key.Binding

	// Focus
	NextField key.Binding
	PrevField key.Binding

	// Actions
	Submit     key.Binding
	ToggleMode key.Binding
	Copy       key.Binding
	Download   key.Binding
	SaveGolden key.Binding
	Clear      key.Binding

	// Results panel
	OpenReport     key.Binding
	OpenReportJSON key.Binding
	ScrollUp       key.Binding
	ScrollDown     key.Binding
	PageUp         key.Binding
	PageDown       key.Binding

	// General
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default key bindings. Plain letter keys are
// only active when the results panel has focus, so they never collide with
// typing into a form field.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		GenerateView: key.NewBinding(
			key.WithKeys("f1", "alt+1"),
			key.WithHelp("F1", "generate"),
		),
		EvaluateView: key.NewBinding(
			key.WithKeys("f2", "alt+2"),
			key.WithHelp("F2", "evaluate"),
		),
		CompareView: key.NewBinding(
			key.WithKeys("f3", "alt+3"),
			key.WithHelp("F3", "compare"),
		),
		NextView: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "previous view"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "submit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "single/two-phase"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Download: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "download"),
		),
		SaveGolden: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save golden"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear result"),
		),
		OpenReport: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open report"),
		),
		OpenReportJSON: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open JSON"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.NextField, k.Submit, k.Copy, k.Download, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GenerateView, k.EvaluateView, k.CompareView, k.NextView, k.PrevView},
		{k.NextField, k.PrevField, k.Submit, k.ToggleMode, k.Clear},
		{k.Copy, k.Download, k.SaveGolden, k.OpenReport, k.OpenReportJSON},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown, k.Help, k.Quit},
	}
}
