package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"HSE_AI_API_KEY", "HSE_AI_BASE_URL", "HSE_AI_MODEL", "HSE_AI_PROVIDER", "HSE_PORT", "HSE_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFileAndDefaults(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
server:
  port: 9090
ai:
  apiKey: from-file
  model: gpt-4o-mini
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.AI.Model != "gpt-4o-mini" || cfg.AI.APIKey != "from-file" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Upload.MaxImageBytes != 4*1024*1024 || cfg.Server.DefaultLanguage != "fr" || cfg.AI.Provider != "openai" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "ai:\n  apiKey: from-file\n")
	t.Setenv("HSE_AI_API_KEY", "from-env")
	t.Setenv("HSE_PORT", "7000")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AI.APIKey != "from-env" || cfg.Server.Port != 7000 {
		t.Fatalf("env not applied: key=%q port=%d", cfg.AI.APIKey, cfg.Server.Port)
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HSE_AI_PROVIDER", "offline")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("offline provider needs no key: %v", err)
	}
}

func TestValidateRequiresKey(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "server:\n  port: 1\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.AI.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing key error")
	}
	cfg.AI.Provider = "bard"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}
