package color_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/color"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_Notify(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := color.NewNotifier(&buf)

	n.Notify("Copied to clipboard", evalconsole.SeveritySuccess)
	n.Notify("Comparison failed: X", evalconsole.SeverityDanger)
	n.Notify("There is nothing to copy", evalconsole.SeverityWarning)
	n.Notify("Request already in progress", evalconsole.SeverityInfo)

	assert.Equal(t, "✓ Copied to clipboard\n✗ Comparison failed: X\n! There is nothing to copy\ni Request already in progress\n", buf.String())
}

func TestIndicator_Start(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ind := color.NewIndicator(&buf)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ind.SetNow(func() time.Time { return clock })

	stop := ind.Start("Evaluating test cases")
	clock = clock.Add(1500 * time.Millisecond)
	stop()
	stop()

	assert.Equal(t, "Evaluating test cases...\ndone in 1.5s\n", buf.String())
}
