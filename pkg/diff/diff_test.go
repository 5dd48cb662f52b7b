package diff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptengine/pkg/quality"
)

func TestWordsRebuildsBothTexts(t *testing.T) {
	tests := []struct{ a, b string }{
		{"make app", "make a web app"},
		{"Create a function", "Create a Python function that validates email addresses."},
		{"remove all of this", ""},
		{"", "brand new"},
	}
	for _, tt := range tests {
		d := Words(tt.a, tt.b)
		assert.Equal(t, tt.a, Old(d))
		assert.Equal(t, tt.b, New(d))
		for i := 1; i < len(d); i++ {
			assert.NotEqual(t, d[i-1].Op, d[i].Op, "adjacent deltas are merged")
		}
	}
}

func TestWordsIdentical(t *testing.T) {
	assert.Equal(t, []WordDelta{{Op: Equal, Text: "same text"}}, Words("same text", "same text"))
	assert.Nil(t, Words("", ""))
}

func TestPrompts(t *testing.T) {
	oldText := "Create a function"
	newText := "Create a secure API function. It must handle 1000 requests and include tests."
	d := Prompts(oldText, newText)

	require.Len(t, d.Dimensions, len(quality.Weights))
	for i, c := range d.Dimensions {
		assert.Equal(t, quality.Weights[i].Dimension, c.Dimension)
		assert.Equal(t, quality.Round2(c.New-c.Old), c.Delta)
	}

	o, n := quality.Score(oldText), quality.Score(newText)
	assert.Equal(t, o.Overall, d.Overall.Old)
	assert.Equal(t, n.Overall, d.Overall.New)
	assert.Equal(t, Improved, d.Overall.State)
	assert.Equal(t, quality.Improvement(o, n), d.Improvement)
}

func TestChangeStates(t *testing.T) {
	assert.Equal(t, Improved, change(quality.Clarity, 1, 2).State)
	assert.Equal(t, Regressed, change(quality.Clarity, 2, 1).State)
	assert.Equal(t, Unchanged, change(quality.Clarity, 2, 2.001).State)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Prompts("make app", "make a web app").Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Scores")
	assert.Contains(t, out, string(quality.OutputSpecification))
	assert.Contains(t, out, fgGreen+uline)
}
