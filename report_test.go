package evalconsole_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/fwojciec/evalconsole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilename(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 26, 14, 3, 9, 987_000_000, time.UTC)

	name := evalconsole.ReportFilename(ts)

	assert.Equal(t, "test_case_evaluation_report_2025-06-26T14-03-09.md", name)
	assert.Regexp(t, regexp.MustCompile(`^test_case_evaluation_report_\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.md$`), name)
}

func TestReportFilename_UsesUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*60*60)
	ts := time.Date(2025, 6, 27, 2, 0, 0, 0, loc)

	assert.Equal(t, "test_case_evaluation_report_2025-06-26T18-00-00.md", evalconsole.ReportFilename(ts))
}

func TestPrettyJSON(t *testing.T) {
	t.Parallel()

	t.Run("indents with two spaces", func(t *testing.T) {
		t.Parallel()

		out, ok := evalconsole.PrettyJSON(`{"a":1}`)

		assert.True(t, ok)
		assert.Equal(t, "{\n  \"a\": 1\n}", out)
	})

	t.Run("returns input unchanged when invalid", func(t *testing.T) {
		t.Parallel()

		out, ok := evalconsole.PrettyJSON("not json")

		assert.False(t, ok)
		assert.Equal(t, "not json", out)
	})
}

func TestComposeReport(t *testing.T) {
	t.Parallel()

	t.Run("appends pretty JSON block", func(t *testing.T) {
		t.Parallel()

		out, ok := evalconsole.ComposeReport("# Report", `{"score":4}`)

		assert.True(t, ok)
		assert.Equal(t, "# Report\n\n## Raw evaluation data (JSON)\n\n```json\n{\n  \"score\": 4\n}\n```", out)
	})

	t.Run("embeds raw text when not JSON", func(t *testing.T) {
		t.Parallel()

		out, ok := evalconsole.ComposeReport("# Report", "oops")

		assert.False(t, ok)
		assert.Contains(t, out, "```json\noops\n```")
	})
}

func TestFencedJSON(t *testing.T) {
	t.Parallel()

	out, err := evalconsole.FencedJSON(map[string]any{"a": 1})

	require.NoError(t, err)
	assert.Equal(t, "```json\n{\n  \"a\": 1\n}\n```", out)
}

func TestDecodeSummary(t *testing.T) {
	t.Parallel()

	t.Run("decodes string score", func(t *testing.T) {
		t.Parallel()

		s := evalconsole.DecodeSummary(map[string]any{
			"evaluation_summary": map[string]any{
				"overall_score":    "4.2",
				"final_suggestion": "Reduce duplicates",
			},
		})

		require.NotNil(t, s)
		assert.Equal(t, "4.2", s.OverallScore)
		assert.Equal(t, "Reduce duplicates", s.FinalSuggestion)
	})

	t.Run("decodes numeric score", func(t *testing.T) {
		t.Parallel()

		s := evalconsole.DecodeSummary(map[string]any{
			"evaluation_summary": map[string]any{"overall_score": 3.5},
		})

		require.NotNil(t, s)
		assert.Equal(t, "3.5", s.OverallScore)
	})

	t.Run("nil when absent", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, evalconsole.DecodeSummary(map[string]any{"other": 1}))
		assert.Nil(t, evalconsole.DecodeSummary(nil))
	})
}

func TestReport_Empty(t *testing.T) {
	t.Parallel()

	var nilReport *evalconsole.Report
	assert.True(t, nilReport.Empty())
	assert.True(t, (&evalconsole.Report{Markdown: "  "}).Empty())
	assert.False(t, (&evalconsole.Report{Markdown: "# x"}).Empty())
}
