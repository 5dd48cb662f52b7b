package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptengine/pkg/diff"
	"promptengine/pkg/modes"
	"promptengine/pkg/optimizer"
	"promptengine/pkg/schema"
	"promptengine/pkg/store"
	"promptengine/pkg/utils"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.New(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
	}
	opt := optimizer.New(nil, modes.Default(), optimizer.WithTokenCounter(utils.EstimateTokens))
	return NewServer(context.Background(), opt, st, Options{})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(data))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Echo.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	w := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	h := decode[schema.Health](t, w)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "none", h.Provider)
	assert.Equal(t, optimizer.RuleBased, h.Model)
	assert.Equal(t, modes.AIDev, h.Mode)
}

func TestOptimizeRecordsHistory(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/optimize", schema.OptimizeRequest{Prompt: "Create a login API"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[schema.OptimizeResponse](t, w)
	assert.True(t, resp.Fallback)
	assert.Equal(t, modes.AIDev, resp.Mode)
	assert.NotEmpty(t, resp.Ref)
	assert.NotZero(t, resp.HistoryID)
	assert.Greater(t, resp.OptimizedScores.Overall, resp.OriginalScores.Overall)

	w = do(t, s, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]store.HistoryEntry](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, resp.Ref, history[0].Ref)
}

func TestOptimizeValidation(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name string
		req  schema.OptimizeRequest
	}{
		{"empty prompt", schema.OptimizeRequest{Prompt: "   "}},
		{"unknown mode", schema.OptimizeRequest{Prompt: "write a poem", Mode: "poetry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/optimize", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestOptimizeUsesServerMode(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/set-mode", schema.ModeRequest{Mode: "image-mode"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, modes.ImageGeneration, s.Mode())

	w = do(t, s, http.MethodPost, "/api/optimize", schema.OptimizeRequest{Prompt: "a cat on a roof"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, modes.ImageGeneration, decode[schema.OptimizeResponse](t, w).Mode)
}

func TestOptimizeStream(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/optimize/stream", schema.OptimizeRequest{Prompt: "Build a REST API"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get(echo.HeaderContentType))

	body := w.Body.String()
	for _, event := range []string{
		optimizer.EventOriginalScores,
		optimizer.EventOptimized,
		optimizer.EventOptimizedScores,
		"done",
		"close",
	} {
		assert.Contains(t, body, "event: "+event+"\n")
	}
	assert.Less(t, strings.Index(body, "event: original_scores"), strings.Index(body, "event: done"))
}

func TestModes(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/set-mode", schema.ModeRequest{Mode: "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, false, body["success"])
	assert.Len(t, body["available_modes"], 7)

	w = do(t, s, http.MethodGet, "/api/get-mode", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mode := decode[schema.ModeResponse](t, w)
	assert.Equal(t, modes.AIDev, mode.Mode)
	assert.Equal(t, optimizer.RuleBased, mode.Model)

	w = do(t, s, http.MethodGet, "/api/available-modes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string]modes.Summary](t, w), 7)
}

func TestScoring(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/quality-score", schema.TextRequest{Prompt: ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overall":0`)

	w = do(t, s, http.MethodPost, "/api/analyze", schema.TextRequest{Prompt: "Create a database function"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.EqualValues(t, 4, body["word_count"])
	assert.Equal(t, []any{"Function", "Database"}, body["elements"])

	w = do(t, s, http.MethodGet, "/api/schema/quality", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "overall")
}

func TestAssistantConversation(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/assistant", schema.AssistantRequest{Message: "how do I start?", Context: "ai-dev"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[schema.AssistantResponse](t, w)
	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.ConversationID)
	assert.NotEmpty(t, resp.Response)

	w = do(t, s, http.MethodGet, "/api/assistant/"+resp.ConversationID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := decode[[]store.AssistantMessage](t, w)
	require.Len(t, msgs, 2)
	assert.Equal(t, store.RoleUser, msgs[0].Role)
	assert.Equal(t, store.RoleAssistant, msgs[1].Role)

	w = do(t, s, http.MethodPost, "/api/assistant", schema.AssistantRequest{Message: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateImage(t *testing.T) {
	s := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/generate-image", schema.ImageRequest{Description: "a lighthouse at dusk", ImageMode: "illustration"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[schema.ImageResponse](t, w)
	assert.Equal(t, "illustration", resp.ImageMode)
	assert.Equal(t, "gemini-image-art", resp.ModelUsed)
	assert.Contains(t, resp.ImagePrompt, "a lighthouse at dusk")
}

func TestKeywordsJSON(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/upload/keywords", map[string]any{
		"filename":        "../notes.txt",
		"file_size":       42,
		"content_preview": "Kubernetes deployment with kubernetes operators and the deployment pipeline",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[schema.KeywordsResponse](t, w)
	assert.Equal(t, "notes.txt", resp.Filename)
	assert.NotZero(t, resp.DocumentID)
	assert.Equal(t, []string{"kubernetes", "deployment", "operators", "pipeline"}, resp.Keywords)
}

func TestKeywordsMultipart(t *testing.T) {
	s := newTestServer(t, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.md")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Latency budget for checkout service"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/upload/keywords", &buf)
	r.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Echo.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[schema.KeywordsResponse](t, w)
	assert.Equal(t, "notes.md", resp.Filename)
	assert.Zero(t, resp.DocumentID)
	assert.Equal(t, []string{"latency", "budget", "checkout", "service"}, resp.Keywords)
}

func TestPromptsCRUD(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/prompts", schema.PromptRequest{Title: "login", Text: "Create a login API", Mode: "dev-mode"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[store.Prompt](t, w)
	assert.Equal(t, "ai-dev", p.Mode)

	id := "/api/prompts/" + itoa(p.ID)

	w = do(t, s, http.MethodPut, id, map[string]string{"text": "Create a secure login API"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Create a secure login API", decode[store.Prompt](t, w).Text)

	w = do(t, s, http.MethodPut, id, map[string]string{"mode": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, id+"/scores", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodGet, id+"/scores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]store.QualityScore](t, w), 1)

	w = do(t, s, http.MethodGet, "/api/prompts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]store.Prompt](t, w), 1)

	w = do(t, s, http.MethodDelete, id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/api/prompts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryDiffAndDelete(t *testing.T) {
	s := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/optimize", schema.OptimizeRequest{Prompt: "Create a login API"})
	require.Equal(t, http.StatusOK, w.Code)
	path := "/api/history/" + itoa(decode[schema.OptimizeResponse](t, w).HistoryID)

	w = do(t, s, http.MethodGet, path+"/diff", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Diff diff.PromptDiff `json:"diff"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Create a login API", diff.Old(body.Diff.Words))
	assert.Len(t, body.Diff.Dimensions, 9)
	assert.Equal(t, diff.Improved, body.Diff.Overall.State)

	w = do(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(t, true)

	do(t, s, http.MethodPost, "/api/optimize", schema.OptimizeRequest{Prompt: "Create a login API"})
	w := do(t, s, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[store.Stats](t, w)
	assert.Equal(t, 1, stats.Optimizations)
	assert.Equal(t, 1, stats.Fallbacks)
}

func TestStorageDisabled(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/api/history", "/api/prompts", "/api/stats"} {
		w := do(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func itoa(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}
