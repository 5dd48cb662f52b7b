// Package config reads the service configuration from the environment.
package config

import (
	"cmp"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"promptengine/pkg/inference"
)

type Config struct {
	Port    int
	DataDir string

	Debug    bool
	LogLevel string
	LogFile  string

	CORSOrigins []string
	MaxUpload   int64

	Inference inference.Config

	// ModesFile replaces the embedded mode catalogue when set.
	ModesFile string
	// ModelOverride replaces every text model of the catalogue.
	ModelOverride string
}

const (
	DefaultPort      = 8000
	DefaultDataDir   = "./data"
	DefaultRaptor    = "raptor-mini"
	defaultTimeout   = 120 * time.Second
	defaultRetries   = 2
	defaultMaxUpload = 1 << 20
)

// Load reads Config from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads Config through getenv.
func LoadFrom(getenv func(string) string) (Config, error) {
	var errs []string
	boolean := func(key string) bool {
		v := getenv(key)
		if v == "" {
			return false
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a boolean", key, v))
		}
		return b
	}
	integer := func(key string, def int) int {
		v := getenv(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("%s: %q is not a non-negative integer", key, v))
			return def
		}
		return n
	}
	duration := func(key string, def time.Duration) time.Duration {
		v := getenv(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			// plain seconds
			n, nerr := strconv.Atoi(v)
			if nerr != nil || n <= 0 {
				errs = append(errs, fmt.Sprintf("%s: %q is not a duration", key, v))
				return def
			}
			d = time.Duration(n) * time.Second
		}
		return d
	}

	cfg := Config{
		Port:        integer("PORT", DefaultPort),
		DataDir:     cmp.Or(getenv("DATA_DIR"), DefaultDataDir),
		Debug:       boolean("DEBUG"),
		LogLevel:    strings.ToLower(cmp.Or(getenv("LOG_LEVEL"), "info")),
		LogFile:     getenv("LOG_FILE"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS")),
		MaxUpload:   int64(integer("MAX_UPLOAD_BYTES", defaultMaxUpload)),
		ModesFile:   getenv("MODES_FILE"),
		Inference: inference.Config{
			Provider:      inference.Provider(strings.ToLower(getenv("INFERENCE_PROVIDER"))),
			GeminiAPIKey:  getenv("GEMINI_API_KEY"),
			GeminiModel:   getenv("GEMINI_MODEL"),
			OpenAIAPIKey:  getenv("OPENAI_API_KEY"),
			OpenAIModel:   getenv("OPENAI_MODEL"),
			OpenAIBaseURL: getenv("OPENAI_BASE_URL"),
			Timeout:       duration("INFERENCE_TIMEOUT", defaultTimeout),
			Retries:       integer("INFERENCE_RETRIES", defaultRetries),
		},
	}
	if boolean("RAPTOR_MINI_ENABLED") {
		cfg.ModelOverride = cmp.Or(getenv("RAPTOR_MODEL_NAME"), DefaultRaptor)
	}
	if cfg.Debug && getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "debug"
	}

	switch cfg.Inference.Provider {
	case "", inference.ProviderAuto, inference.ProviderGemini, inference.ProviderOpenAI, inference.ProviderNone:
	default:
		errs = append(errs, fmt.Sprintf("INFERENCE_PROVIDER: unknown provider %q", cfg.Inference.Provider))
	}
	if cfg.Port == 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT: %d is out of range", cfg.Port))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
