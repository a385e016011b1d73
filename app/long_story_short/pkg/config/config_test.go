package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvNewsAPIKey, "")
	t.Setenv(EnvCohereAPIKey, "")
	t.Setenv(EnvLLMAPIKey, "")

	path := writeConfig(t, `
news:
  provider: newsapi
topics:
  - climate change
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Summary.MaxTokens != 100 {
		t.Errorf("MaxTokens = %d, want 100", cfg.Summary.MaxTokens)
	}
	if cfg.Summary.Temperature == nil || *cfg.Summary.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", cfg.Summary.Temperature)
	}
	if cfg.Linker.BaseURL != "https://www.google.com/search?q=" {
		t.Errorf("Linker.BaseURL = %q", cfg.Linker.BaseURL)
	}
	if cfg.Concurrency.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Concurrency.Workers)
	}
	if cfg.NER.Provider != "spacy" || cfg.NER.SpaCy.Model != "en_core_web_sm" {
		t.Errorf("NER = %+v", cfg.NER)
	}
	if len(cfg.Topics) != 1 || cfg.Topics[0] != "climate change" {
		t.Errorf("Topics = %v", cfg.Topics)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvNewsAPIKey, "news-key")
	t.Setenv(EnvCohereAPIKey, "cohere-key")
	t.Setenv(EnvLLMAPIKey, "")

	path := writeConfig(t, `
llm:
  api_key: from-file
news:
  newsapi:
    api_key: from-file
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.News.NewsAPI.APIKey != "news-key" {
		t.Errorf("NewsAPI.APIKey = %q, want env value", cfg.News.NewsAPI.APIKey)
	}
	if cfg.LLM.APIKey != "cohere-key" {
		t.Errorf("LLM.APIKey = %q, want env value", cfg.LLM.APIKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigZeroTemperature(t *testing.T) {
	t.Setenv(EnvNewsAPIKey, "")
	t.Setenv(EnvCohereAPIKey, "")
	t.Setenv(EnvLLMAPIKey, "")

	path := writeConfig(t, `
summary:
  temperature: 0
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Summary.Temperature == nil || *cfg.Summary.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0", cfg.Summary.Temperature)
	}
}
