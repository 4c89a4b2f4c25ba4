package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "fast" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.TTSProvider != "elevenlabs" {
		t.Errorf("TTSProvider = %q", cfg.TTSProvider)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Markdown.Style = %q", cfg.Markdown.Style)
	}
	if cfg.SpeakReplies {
		t.Error("SpeakReplies should default to false")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Errorf("missing config file should yield defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DefaultModel = "pro"
	cfg.TTSProvider = "openai"
	cfg.SpeakReplies = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.DefaultModel != "pro" || loaded.TTSProvider != "openai" || !loaded.SpeakReplies {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".gemvoice")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("corrupt config should report an error")
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestSecretsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ELEVENLABS_API_KEY", "e-key")
	t.Setenv("OPENAI_API_KEY", "")

	s := SecretsFromEnv()
	if s.GeminiAPIKey != "g-key" {
		t.Errorf("GeminiAPIKey = %q", s.GeminiAPIKey)
	}
	if s.ElevenLabsAPIKey != "e-key" {
		t.Errorf("ElevenLabsAPIKey = %q", s.ElevenLabsAPIKey)
	}
	if s.OpenAIAPIKey != "" {
		t.Errorf("OpenAIAPIKey = %q", s.OpenAIAPIKey)
	}
}
