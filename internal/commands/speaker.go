package commands

import (
	"fmt"

	"github.com/diogo/gemvoice/internal/audio"
	"github.com/diogo/gemvoice/internal/config"
	"github.com/diogo/gemvoice/internal/tts"
)

// buildSynthesizer creates the speech backend named by the config
func buildSynthesizer(cfg config.Config, secrets config.Secrets) (tts.Synthesizer, error) {
	switch cfg.TTSProvider {
	case "", "elevenlabs":
		if secrets.ElevenLabsAPIKey == "" {
			return nil, fmt.Errorf("ELEVENLABS_API_KEY is not set")
		}
		return tts.NewElevenLabs(secrets.ElevenLabsAPIKey)
	case "openai":
		if secrets.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return tts.NewOpenAI(secrets.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice)
	default:
		return nil, fmt.Errorf("unknown tts provider '%s' (use elevenlabs or openai)", cfg.TTSProvider)
	}
}

// buildSpeaker couples the configured synthesizer with a system player
func buildSpeaker(cfg config.Config, secrets config.Secrets) (*tts.Speaker, error) {
	synth, err := buildSynthesizer(cfg, secrets)
	if err != nil {
		return nil, err
	}

	player, err := audio.NewExecPlayer()
	if err != nil {
		return nil, err
	}

	return tts.NewSpeaker(synth, player), nil
}
