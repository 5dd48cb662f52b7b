package utils

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeWordsRoundTrip(t *testing.T) {
	s := "Build a REST-API, don't   stop!"
	tokens := TokenizeWords(s)
	assert.Equal(t, s, strings.Join(tokens, ""))
	assert.Equal(t, []string{"Build", " ", "a", " ", "REST-API", ",", " ", "don't", "   ", "stop", "!"}, tokens)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON("  {\"a\":1} "))
	assert.Equal(t, `{"a":1}`, CleanJSON("```\n{\"a\":1}"))
}

func TestLimitStr(t *testing.T) {
	assert.Equal(t, "abc", LimitStr("abc", 3))
	assert.Equal(t, "ab...", LimitStr("abc", 2))
	assert.Equal(t, "hé...", LimitStr("héllo", 2))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		" a/b\\c:d.txt ": "c_d.txt",
		"../notes.txt":   "notes.txt",
		"C:report.md":    "C_report.md",
		"..":             "",
		"dir/":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.json")
	require.NoError(t, Save(path, map[string]int{"a": 1}))

	got, err := Load[map[string]int](path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestSSEWriter(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	w, err := NewSSEWriter(c)
	require.NoError(t, err)
	require.NoError(t, w.Event("score", map[string]float64{"overall": 1.5}))
	require.NoError(t, w.Event("note", "plain"))
	require.NoError(t, w.Event("text", "line one\r\nline two"))
	w.Close()
	require.NoError(t, w.Event("ignored", "after close"))
	w.Close()

	assert.Equal(t, 4, w.Sent())
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"event: score\ndata: {\"overall\":1.5}\n\n"+
			"event: note\ndata: plain\n\n"+
			"event: text\ndata: line one\ndata: line two\n\n"+
			"event: close\ndata: null\n\n",
		rec.Body.String())
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}
