// Package config loads the application configuration from .env files,
// environment variables and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// Server
	Port           int
	AllowedOrigins []string
	RequestTimeout time.Duration
	CacheTTL       time.Duration

	// GitHub
	GitHubToken   string
	StatsRetryMax time.Duration

	// Language model
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// Load reads the configuration in order of precedence:
// 1. Environment variables
// 2. .env files (.env.local overrides .env)
// 3. Config file (configFile, or ./.github-assistant.yaml)
// 4. Defaults
func Load(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".github-assistant")
		// The default config file is optional, but one that exists must parse.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	cfg := &Config{
		Port:           v.GetInt("port"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		RequestTimeout: v.GetDuration("request_timeout"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		GitHubToken:    v.GetString("github_token"),
		StatsRetryMax:  v.GetDuration("stats_retry_max"),
		LLMAPIKey:      firstNonEmpty(v.GetString("groq_api_key"), v.GetString("llm_api_key")),
		LLMBaseURL:     v.GetString("llm_base_url"),
		LLMModel:       v.GetString("llm_model"),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CacheTTL < 0 || c.StatsRetryMax < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 5069)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("request_timeout", 2*time.Minute)
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("stats_retry_max", 15*time.Second)
	v.SetDefault("llm_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm_model", "llama3-70b-8192")
	// Keys without defaults must still be known to AutomaticEnv lookups.
	v.SetDefault("github_token", "")
	v.SetDefault("groq_api_key", "")
	v.SetDefault("llm_api_key", "")
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env.local goes first.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
