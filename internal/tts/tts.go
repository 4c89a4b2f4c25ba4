// Package tts converts completed reply text into buffered audio.
package tts

import (
	"context"
	"fmt"
	"strings"

	"github.com/diogo/gemvoice/internal/audio"
)

// Synthesizer converts text into a fully buffered audio source
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*audio.Source, error)
}

// Speaker couples a synthesizer with a player. It synthesizes the full
// clip first and only then starts playback; a failed synthesis never
// reaches the player.
type Speaker struct {
	synth  Synthesizer
	player audio.Player
}

// NewSpeaker creates a Speaker
func NewSpeaker(synth Synthesizer, player audio.Player) *Speaker {
	return &Speaker{synth: synth, player: player}
}

// Speak synthesizes text and plays the result. Empty or whitespace-only
// text is a no-op.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	src, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	if err := s.player.Play(ctx, src); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Synthesize exposes the underlying synthesizer, for callers that want
// the audio bytes without playback
func (s *Speaker) Synthesize(ctx context.Context, text string) (*audio.Source, error) {
	return s.synth.Synthesize(ctx, text)
}
