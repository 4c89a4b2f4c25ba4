package tts

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/diogo/gemvoice/internal/audio"
	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
)

const (
	defaultOpenAITTSModel = "gpt-4o-mini-tts"
	defaultOpenAIVoice    = "alloy"
)

// OpenAISynthesizer synthesizes speech through the OpenAI Audio Speech
// API, as an alternate provider behind the same Synthesizer interface
type OpenAISynthesizer struct {
	sdk   openai.Client
	model string
	voice string
}

// NewOpenAI constructs an OpenAI-backed synthesizer. The apiKey is
// required; model and voice fall back to sensible defaults when empty.
func NewOpenAI(apiKey, model, voice string) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, apierrors.ErrNoAPIKey
	}
	if model == "" {
		model = defaultOpenAITTSModel
	}
	if voice == "" {
		voice = defaultOpenAIVoice
	}
	sdk := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAISynthesizer{sdk: sdk, model: model, voice: voice}, nil
}

// Synthesize generates an mp3 clip and buffers it fully
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text string) (*audio.Source, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	req := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.model),
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	resp, err := o.sdk.Audio.Speech.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai audio body: %w", err)
	}

	return audio.NewSource(body, models.MIMEAudioMPEG), nil
}
