package commands

import (
	"strings"
	"testing"

	"github.com/diogo/gemvoice/internal/config"
	"github.com/diogo/gemvoice/internal/tts"
)

func TestBuildSynthesizerElevenLabs(t *testing.T) {
	cfg := config.DefaultConfig()
	secrets := config.Secrets{ElevenLabsAPIKey: "test-key"}

	synth, err := buildSynthesizer(cfg, secrets)
	if err != nil {
		t.Fatalf("buildSynthesizer: %v", err)
	}
	if _, ok := synth.(*tts.ElevenLabsClient); !ok {
		t.Errorf("synth = %T, want *tts.ElevenLabsClient", synth)
	}
}

func TestBuildSynthesizerOpenAI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TTSProvider = "openai"
	secrets := config.Secrets{OpenAIAPIKey: "test-key"}

	synth, err := buildSynthesizer(cfg, secrets)
	if err != nil {
		t.Fatalf("buildSynthesizer: %v", err)
	}
	if _, ok := synth.(*tts.OpenAISynthesizer); !ok {
		t.Errorf("synth = %T, want *tts.OpenAISynthesizer", synth)
	}
}

func TestBuildSynthesizerMissingKeys(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantEnv  string
	}{
		{"elevenlabs without key", "elevenlabs", "ELEVENLABS_API_KEY"},
		{"openai without key", "openai", "OPENAI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.TTSProvider = tt.provider

			_, err := buildSynthesizer(cfg, config.Secrets{})
			if err == nil {
				t.Fatal("expected error for missing key")
			}
			if !strings.Contains(err.Error(), tt.wantEnv) {
				t.Errorf("error %q should name %s", err, tt.wantEnv)
			}
		})
	}
}

func TestBuildSynthesizerUnknownProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TTSProvider = "espeak"

	_, err := buildSynthesizer(cfg, config.Secrets{ElevenLabsAPIKey: "k", OpenAIAPIKey: "k"})
	if err == nil || !strings.Contains(err.Error(), "espeak") {
		t.Errorf("error = %v, want unknown provider error", err)
	}
}
