package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ evalconsole.Theme = lipgloss.DefaultTheme()
	})

	t.Run("returns same styles as DarkTheme", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lipgloss.DarkTheme().Styles(), lipgloss.DefaultTheme().Styles())
	})
}

func TestThemes_SeverityColors(t *testing.T) {
	t.Parallel()

	themes := map[string]*lipgloss.Theme{
		"dark":  lipgloss.DarkTheme(),
		"light": lipgloss.LightTheme(),
	}
	severities := []evalconsole.Severity{
		evalconsole.SeverityInfo,
		evalconsole.SeveritySuccess,
		evalconsole.SeverityDanger,
		evalconsole.SeverityWarning,
	}

	for name, theme := range themes {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			seen := map[string]bool{}
			for _, sev := range severities {
				cp := theme.Styles().Severity(sev)
				assert.NotEmpty(t, cp.Foreground, "severity %s foreground", sev)
				assert.NotEmpty(t, cp.Background, "severity %s background", sev)
				assert.False(t, seen[cp.Background], "severity %s shares a background", sev)
				seen[cp.Background] = true
			}
			assert.Equal(t, name, theme.MarkdownStyle())
			assert.NotEmpty(t, theme.Palette().String)
		})
	}
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	dark, err := lipgloss.ThemeByName("")
	require.NoError(t, err)
	assert.Equal(t, "dark", dark.MarkdownStyle())

	light, err := lipgloss.ThemeByName("LIGHT")
	require.NoError(t, err)
	assert.Equal(t, "light", light.MarkdownStyle())

	_, err = lipgloss.ThemeByName("neon")
	assert.Error(t, err)
}
