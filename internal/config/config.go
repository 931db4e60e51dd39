package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultURL is the OpenAI-compatible chat completions endpoint.
	DefaultURL = "https://api.groq.com/openai/v1"
	// DefaultModel is used when neither the config file nor the
	// environment names one.
	DefaultModel = "llama-3.3-70b-versatile"
)

// Config is the only persisted config file schema. API keys are never
// persisted; they come from the environment. A missing key stays an empty
// string — authentication failures surface when a request is attempted.
type Config struct {
	URL       string `toml:"url"`
	Model     string `toml:"model"`
	APIKey    string `toml:"-"`
	SearchKey string `toml:"-"`
	Source    string `toml:"-"`
}

func Default() Config {
	return Config{
		URL:   DefaultURL,
		Model: DefaultModel,
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sage", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("GROQ_BASE_URL")); env != "" {
		cfg.URL = env
	}
	if env := strings.TrimSpace(os.Getenv("SAGE_MODEL")); env != "" {
		cfg.Model = env
	}
	cfg.APIKey = os.Getenv("GROQ_API_KEY")
	cfg.SearchKey = os.Getenv("TAVILY_API_KEY")
	return cfg
}
