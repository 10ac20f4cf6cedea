package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables read at startup. Fields tagged
// `optional:"true"` are skipped by CheckConfigEnvFields; keys that only a
// particular backend needs are validated when that backend is constructed.
type EnvVars struct {
	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	LLMModel        string `env:"LLM_MODEL" optional:"true"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" optional:"true"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY" optional:"true"`
	OllamaBaseURL   string `env:"OLLAMA_BASE_URL" optional:"true"`
	TavilyAPIKey    string `env:"TAVILY_API_KEY" optional:"true"`
	DatabaseURL     string `env:"DATABASE_URL" optional:"true"`
	DBPath          string `env:"UNCLUTTERED_DB_PATH" optional:"true"`
	PromptsFile     string `env:"UNCLUTTERED_PROMPTS_FILE" optional:"true"`
	Port            string `env:"PORT" envDefault:"8080"`
}

// LoadConfig parses environment variables into the Config struct and loads
// prompt templates (from PromptsFile when set, otherwise the compiled-in
// defaults).
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}

	if config.EnvVars.PromptsFile != "" {
		prompts, err := LoadPrompts(config.EnvVars.PromptsFile)
		if err != nil {
			return nil, err
		}
		config.Prompts = prompts
	} else {
		config.Prompts = DefaultPrompts()
	}

	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}

// DatabasePath returns the SQLite file path, creating parent directories if
// needed. Used when DATABASE_URL is not set.
func (c *Config) DatabasePath() (string, error) {
	if c.EnvVars.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(c.EnvVars.DBPath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create data directory: %w", err)
		}
		return c.EnvVars.DBPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dataDir := filepath.Join(homeDir, ".local", "share", "uncluttered")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dataDir, "uncluttered.db"), nil
}
