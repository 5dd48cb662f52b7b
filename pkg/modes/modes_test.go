package modes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	c := Default()

	assert.Equal(t, []Mode{
		AIDev, BusinessAnalysis, ChatbotTraining, ContentWriting,
		DataAnalysis, ImageGeneration, ResearchAcademic,
	}, c.Names())
	assert.Equal(t, "gemini-2.0-flash", c.DefaultModel())

	dev, err := c.Lookup("ai-dev")
	require.NoError(t, err)
	assert.Equal(t, 0.3, dev.Temperature)
	assert.EqualValues(t, 2048, dev.MaxTokens)
	assert.Equal(t, "code_with_documentation", dev.OutputFormat)
	assert.NotEmpty(t, dev.SystemPrompt)
	assert.NotContains(t, dev.SystemPrompt, "\n\n")

	img, err := c.Lookup("image-generation")
	require.NoError(t, err)
	assert.True(t, img.Image)
}

func TestLookupAliases(t *testing.T) {
	c := Default()
	for alias, want := range map[string]Mode{
		"":                     AIDev,
		"dev-mode":             AIDev,
		"Software-Development": AIDev,
		"image-mode":           ImageGeneration,
		"chatbot-design":       ChatbotTraining,
		" content-writing ":    ContentWriting,
	} {
		t.Run(alias, func(t *testing.T) {
			m, err := c.Lookup(alias)
			require.NoError(t, err)
			assert.Equal(t, want, m.Name)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	c := Default()
	_, err := c.Lookup("poetry")
	assert.ErrorIs(t, err, ErrUnknownMode)

	// auto is not a concrete mode
	_, err = c.Lookup("auto")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestResolveAuto(t *testing.T) {
	c := Default()

	m, err := c.Resolve("auto", "Draw a poster with a logo and a banner")
	require.NoError(t, err)
	assert.Equal(t, ImageGeneration, m.Name)

	m, err = c.Resolve("auto-detect", "Implement a function that queries the database")
	require.NoError(t, err)
	assert.Equal(t, AIDev, m.Name)

	m, err = c.Resolve("research-academic", "a photo")
	require.NoError(t, err)
	assert.Equal(t, ResearchAcademic, m.Name)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		prompt string
		want   Mode
	}{
		{"", AIDev},
		{"write a haiku about autumn", AIDev},
		{"a photo of a cat", ImageGeneration},
		{"design a logo", ImageGeneration},
		// one hint each: tie goes to development
		{"render the api docs", AIDev},
		{"build an icon set", AIDev},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.prompt))
		})
	}
}

func TestWithModelOverride(t *testing.T) {
	base := Default()
	c := base.WithModelOverride("raptor-mini")

	for _, m := range c.All() {
		if m.Image {
			assert.Equal(t, "gemini-2.0-pro", m.Model)
			continue
		}
		assert.Equal(t, "raptor-mini", m.Model, m.Name)
	}
	assert.Equal(t, "raptor-mini", c.DefaultModel())

	dev, err := base.Lookup("ai-dev")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", dev.Model, "original catalogue must be untouched")

	assert.Same(t, base, base.WithModelOverride(""))
}

func TestSummaries(t *testing.T) {
	s := Default().Summaries()
	require.Len(t, s, 7)

	dev := s[AIDev]
	assert.Equal(t, "gemini-2.0-flash", dev.Model)
	assert.Equal(t, []string{"programming_language", "functionality", "requirements"}, dev.RequiredFields)
	assert.Len(t, []rune(dev.SystemPromptPreview), 103)
	assert.Contains(t, dev.SystemPromptPreview, "...")
}

func TestImageModel(t *testing.T) {
	c := Default()

	kind, model := c.ImageModel("Illustration")
	assert.Equal(t, "illustration", kind)
	assert.Equal(t, "gemini-image-art", model)

	kind, model = c.ImageModel("watercolor")
	assert.Equal(t, "photo", kind)
	assert.Equal(t, "gemini-image-v1", model)
}

func TestParse(t *testing.T) {
	t.Run("no modes", func(t *testing.T) {
		_, err := Parse([]byte("default_model: x\n"))
		assert.Error(t, err)
	})
	t.Run("duplicate", func(t *testing.T) {
		_, err := Parse([]byte("modes:\n  - name: ai-dev\n  - name: ai-dev\n"))
		assert.ErrorContains(t, err, "duplicate")
	})
	t.Run("missing default mode", func(t *testing.T) {
		_, err := Parse([]byte("modes:\n  - name: content-writing\n"))
		assert.ErrorContains(t, err, "ai-dev")
	})
	t.Run("model falls back to default_model", func(t *testing.T) {
		c, err := Parse([]byte("default_model: m1\nmodes:\n  - name: ai-dev\n"))
		require.NoError(t, err)
		dev, err := c.Lookup("ai-dev")
		require.NoError(t, err)
		assert.Equal(t, "m1", dev.Model)
	})
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("modes: [\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Names(), 7)

	path := filepath.Join(t.TempDir(), "modes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modes:\n  - name: ai-dev\n    model: local\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Mode{AIDev}, c.Names())
	assert.Equal(t, "local", c.DefaultModel())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
