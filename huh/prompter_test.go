package huh_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Prompt(t *testing.T) {
	t.Parallel()

	t.Run("returns fields unchanged when nothing is missing", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := huh.NewPrompter(strings.NewReader(""), &out)
		fields := evalconsole.GenerateFields(evalconsole.GenerateRequest{DocToken: "d", UserAccessToken: "u"})

		got, err := p.Prompt(fields)

		require.NoError(t, err)
		assert.Equal(t, fields, got)
		assert.Empty(t, out.String())
	})

	t.Run("skips optional fields", func(t *testing.T) {
		t.Parallel()

		p := huh.NewPrompter(strings.NewReader(""), &bytes.Buffer{})
		fields := evalconsole.CompareFields(evalconsole.CompareInput{LLMCases: "[]"})

		got, err := p.Prompt(fields)

		require.NoError(t, err)
		assert.Empty(t, evalconsole.FieldValue(got, evalconsole.FieldGoldenCases))
	})

	t.Run("reads missing values in accessible mode", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := huh.NewPrompter(strings.NewReader("doc-123\n"), &out)
		fields := evalconsole.GenerateFields(evalconsole.GenerateRequest{UserAccessToken: "u"})

		got, err := p.Prompt(fields)

		require.NoError(t, err)
		assert.Equal(t, "doc-123", evalconsole.FieldValue(got, evalconsole.FieldDocToken))
		assert.Equal(t, "u", evalconsole.FieldValue(got, evalconsole.FieldUserToken))
		assert.Contains(t, out.String(), "Document token")
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		t.Parallel()

		p := huh.NewPrompter(strings.NewReader("doc-123\n"), &bytes.Buffer{})
		fields := evalconsole.GenerateFields(evalconsole.GenerateRequest{UserAccessToken: "u"})

		_, err := p.Prompt(fields)

		require.NoError(t, err)
		assert.Empty(t, evalconsole.FieldValue(fields, evalconsole.FieldDocToken))
	})
}
