// Package modes holds the catalogue of optimization modes: which model,
// sampling parameters and system prompt each mode uses.
package modes

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"promptengine/pkg/utils"
)

// Mode is a closed set of optimization targets.
type Mode string

const (
	AIDev            Mode = "ai-dev"
	ContentWriting   Mode = "content-writing"
	ImageGeneration  Mode = "image-generation"
	BusinessAnalysis Mode = "business-analysis"
	DataAnalysis     Mode = "data-analysis"
	ChatbotTraining  Mode = "chatbot-training"
	ResearchAcademic Mode = "research-academic"

	// Auto picks a mode from the prompt content.
	Auto Mode = "auto"
)

// DefaultMode is used when no mode is requested or detection finds nothing.
const DefaultMode = AIDev

var aliases = map[string]Mode{
	"dev-mode":             AIDev,
	"software-development": AIDev,
	"image-mode":           ImageGeneration,
	"chatbot-design":       ChatbotTraining,
	"auto-detect":          Auto,
}

var ErrUnknownMode = errors.New("unknown mode")

//go:embed modes.yaml
var defaultCatalogue []byte

// Config is the immutable configuration of one mode.
type Config struct {
	Name           Mode     `yaml:"name" json:"mode"`
	Title          string   `yaml:"title" json:"title"`
	Model          string   `yaml:"model" json:"model"`
	Image          bool     `yaml:"image" json:"image,omitempty"`
	Temperature    float64  `yaml:"temperature" json:"temperature"`
	MaxTokens      int64    `yaml:"max_tokens" json:"max_tokens"`
	OutputFormat   string   `yaml:"output_format" json:"output_format"`
	RequiredFields []string `yaml:"required_fields" json:"required_fields"`
	OptionalFields []string `yaml:"optional_fields" json:"optional_fields"`
	SystemPrompt   string   `yaml:"system_prompt" json:"system_prompt"`
}

// Summary is the compact, client-facing view of a mode.
type Summary struct {
	Model               string   `json:"model"`
	Temperature         float64  `json:"temperature"`
	MaxTokens           int64    `json:"max_tokens"`
	RequiredFields      []string `json:"required_fields"`
	OptionalFields      []string `json:"optional_fields"`
	OutputFormat        string   `json:"output_format"`
	SystemPromptPreview string   `json:"system_prompt_preview"`
}

type catalogueFile struct {
	DefaultModel string            `yaml:"default_model"`
	ImageModels  map[string]string `yaml:"image_models"`
	Modes        []Config          `yaml:"modes"`
}

// Catalogue is a read-only set of mode configurations.
type Catalogue struct {
	defaultModel string
	imageModels  map[string]string
	modes        map[Mode]Config
}

// Default returns the catalogue embedded in the binary.
func Default() *Catalogue {
	c, err := Parse(defaultCatalogue)
	if err != nil {
		panic(fmt.Sprintf("modes: embedded catalogue: %v", err))
	}
	return c
}

// Load reads a YAML catalogue from path, or returns the default one when path is empty.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modes: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalogue.
func Parse(data []byte) (*Catalogue, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("modes: decode catalogue: %w", err)
	}
	if len(f.Modes) == 0 {
		return nil, errors.New("modes: catalogue has no modes")
	}

	c := &Catalogue{
		defaultModel: f.DefaultModel,
		imageModels:  f.ImageModels,
		modes:        make(map[Mode]Config, len(f.Modes)),
	}
	for _, m := range f.Modes {
		m.Name = Mode(strings.TrimSpace(string(m.Name)))
		if m.Name == "" {
			return nil, errors.New("modes: mode without a name")
		}
		if _, dup := c.modes[m.Name]; dup {
			return nil, fmt.Errorf("modes: duplicate mode %q", m.Name)
		}
		if m.Model == "" {
			m.Model = f.DefaultModel
		}
		m.SystemPrompt = strings.TrimSpace(m.SystemPrompt)
		c.modes[m.Name] = m
	}
	if _, ok := c.modes[DefaultMode]; !ok {
		return nil, fmt.Errorf("modes: catalogue must define %q", DefaultMode)
	}
	if c.defaultModel == "" {
		c.defaultModel = c.modes[DefaultMode].Model
	}
	return c, nil
}

// WithModelOverride returns a copy in which every text mode uses model.
// Image modes keep their own model.
func (c *Catalogue) WithModelOverride(model string) *Catalogue {
	if model == "" {
		return c
	}
	out := &Catalogue{
		defaultModel: model,
		imageModels:  c.imageModels,
		modes:        make(map[Mode]Config, len(c.modes)),
	}
	for name, m := range c.modes {
		if !m.Image {
			m.Model = model
		}
		out.modes[name] = m
	}
	return out
}

// DefaultModel is the model used when a mode does not name one.
func (c *Catalogue) DefaultModel() string { return c.defaultModel }

// Normalize maps a requested mode name, including aliases, onto a Mode.
// The empty name maps to DefaultMode.
func Normalize(name string) Mode {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultMode
	}
	if m, ok := aliases[name]; ok {
		return m
	}
	return Mode(name)
}

// Lookup returns the configuration of a concrete mode.
func (c *Catalogue) Lookup(name string) (Config, error) {
	m, ok := c.modes[Normalize(name)]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return m, nil
}

// Resolve is Lookup with auto-detection: the Auto mode is replaced by the
// mode detected from prompt.
func (c *Catalogue) Resolve(name, prompt string) (Config, error) {
	if Normalize(name) == Auto {
		return c.Lookup(string(Detect(prompt)))
	}
	return c.Lookup(name)
}

// Names lists the concrete modes in lexical order.
func (c *Catalogue) Names() []Mode {
	names := make([]Mode, 0, len(c.modes))
	for name := range c.modes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every mode configuration in lexical order of name.
func (c *Catalogue) All() []Config {
	out := make([]Config, 0, len(c.modes))
	for _, name := range c.Names() {
		out = append(out, c.modes[name])
	}
	return out
}

// Summaries returns the client-facing view of every mode.
func (c *Catalogue) Summaries() map[Mode]Summary {
	out := make(map[Mode]Summary, len(c.modes))
	for name, m := range c.modes {
		out[name] = Summary{
			Model:               m.Model,
			Temperature:         m.Temperature,
			MaxTokens:           m.MaxTokens,
			RequiredFields:      m.RequiredFields,
			OptionalFields:      m.OptionalFields,
			OutputFormat:        m.OutputFormat,
			SystemPromptPreview: utils.LimitStr(m.SystemPrompt, 100),
		}
	}
	return out
}

// ImageModel picks the image model for kind, falling back to "photo".
// It returns the kind actually used.
func (c *Catalogue) ImageModel(kind string) (string, string) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if m, ok := c.imageModels[kind]; ok {
		return kind, m
	}
	return "photo", c.imageModels["photo"]
}
