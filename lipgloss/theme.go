// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"
	"strings"

	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.Theme = (*Theme)(nil)

// Theme implements evalconsole.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles        evalconsole.Styles
	palette       evalconsole.Palette
	markdownStyle string
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() evalconsole.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() evalconsole.Palette {
	return t.palette
}

// MarkdownStyle returns the glamour standard style matching this theme.
func (t *Theme) MarkdownStyle() string {
	return t.markdownStyle
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called "dark" or "light".
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: evalconsole.Styles{
			Info: evalconsole.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#89b4fa", // Blue
			},
			Success: evalconsole.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#a6e3a1", // Green
			},
			Danger: evalconsole.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f38ba8", // Red
			},
			Warning: evalconsole.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f9e2af", // Yellow
			},
			ActiveTab: evalconsole.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#cba6f7", // Mauve
			},
			Tab: evalconsole.ColorPair{
				Foreground: "#a6adc8", // Subtext
				Background: "#313244", // Dark surface
			},
			Focused: evalconsole.ColorPair{
				Foreground: "#cba6f7",
			},
			Label: evalconsole.ColorPair{
				Foreground: "#f9e2af",
			},
			Link: evalconsole.ColorPair{
				Foreground: "#89dceb", // Sky
			},
		},
		palette: evalconsole.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			// Syntax highlighting colors
			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",

			// UI colors
			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
		},
		markdownStyle: "dark",
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: evalconsole.Styles{
			Info: evalconsole.ColorPair{
				Foreground: "#ffffff", // White text on saturated background
				Background: "#1e66f5", // Blue
			},
			Success: evalconsole.ColorPair{
				Foreground: "#ffffff",
				Background: "#40a02b", // Green
			},
			Danger: evalconsole.ColorPair{
				Foreground: "#ffffff",
				Background: "#d20f39", // Red
			},
			Warning: evalconsole.ColorPair{
				Foreground: "#4c4f69", // Dark text on yellow
				Background: "#df8e1d",
			},
			ActiveTab: evalconsole.ColorPair{
				Foreground: "#ffffff",
				Background: "#8839ef", // Mauve
			},
			Tab: evalconsole.ColorPair{
				Foreground: "#6c6f85",
				Background: "#e6e9ef", // Light surface
			},
			Focused: evalconsole.ColorPair{
				Foreground: "#8839ef",
			},
			Label: evalconsole.ColorPair{
				Foreground: "#df8e1d",
			},
			Link: evalconsole.ColorPair{
				Foreground: "#04a5e5",
			},
		},
		palette: evalconsole.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			// Syntax highlighting colors
			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",

			// UI colors
			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
		},
		markdownStyle: "light",
	}
}
