package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int      `yaml:"port"`
		AllowedOrigins  []string `yaml:"allowedOrigins"`
		DefaultLanguage string   `yaml:"defaultLanguage"`
	} `yaml:"server"`

	AI struct {
		// Provider is "openai" (any OpenAI-compatible endpoint) or "offline".
		Provider string `yaml:"provider"`
		APIKey   string `yaml:"apiKey"`
		BaseURL  string `yaml:"baseURL"`
		Model    string `yaml:"model"`
	} `yaml:"ai"`

	Upload struct {
		MaxImageBytes int64 `yaml:"maxImageBytes"`
	} `yaml:"upload"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load baca file config.yaml, lalu override dari env (.env ikut dibaca kalau ada).
// A missing file is not an error; defaults and env are enough to boot.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HSE_AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("HSE_AI_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("HSE_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("HSE_AI_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("HSE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("HSE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.DefaultLanguage == "" {
		c.Server.DefaultLanguage = "fr"
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Upload.MaxImageBytes == 0 {
		c.Upload.MaxImageBytes = 4 * 1024 * 1024
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 30
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks what the server cannot run without.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "openai":
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai.apiKey is required (or set HSE_AI_API_KEY)")
		}
	case "offline":
	default:
		return fmt.Errorf("unknown ai.provider %q (allowed: openai, offline)", c.AI.Provider)
	}
	if c.Upload.MaxImageBytes < 0 {
		return fmt.Errorf("upload.maxImageBytes must be positive")
	}
	if c.Server.DefaultLanguage != "ar" && c.Server.DefaultLanguage != "fr" {
		return fmt.Errorf("server.defaultLanguage must be ar or fr")
	}
	return nil
}
