package api

import (
	"context"
	"sync"

	"github.com/diogo/gemvoice/internal/models"
)

// ChatSession maintains conversation context across messages. Context is
// carried as the accumulated turn history resent on each call; turns are
// appended only after a successful exchange.
type ChatSession struct {
	client       GeminiClientInterface
	mu           sync.RWMutex // Protects model, history, lastOutput
	model        models.Model
	history      []models.Turn
	lastOutput   *models.ModelOutput
	systemPrompt string
}

// copyTurns creates a copy of the turn slice to avoid races
func copyTurns(turns []models.Turn) []models.Turn {
	if turns == nil {
		return nil
	}
	result := make([]models.Turn, len(turns))
	copy(result, turns)
	return result
}

// SendMessage sends a message in the chat session and updates context.
// On failure the history is left untouched.
func (s *ChatSession) SendMessage(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	s.mu.RLock()
	opts := &GenerateOptions{
		Model:        s.model,
		History:      copyTurns(s.history),
		SystemPrompt: s.systemPrompt,
	}
	s.mu.RUnlock()

	output, err := s.client.GenerateContent(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastOutput = output
	s.history = append(s.history,
		models.Turn{Role: "user", Text: prompt},
		models.Turn{Role: "model", Text: output.Text()},
	)
	s.mu.Unlock()

	return output, nil
}

// SendMessageWithImages issues a one-shot call carrying inline images.
// The exchange stands alone: no prior turns are sent with it, and it is
// not recorded into the session history.
func (s *ChatSession) SendMessageWithImages(ctx context.Context, prompt string, images []InlineImage) (*models.ModelOutput, error) {
	s.mu.RLock()
	opts := &GenerateOptions{
		Model:        s.model,
		Images:       images,
		SystemPrompt: s.systemPrompt,
	}
	s.mu.RUnlock()

	output, err := s.client.GenerateContent(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastOutput = output
	s.mu.Unlock()

	return output, nil
}

// History returns a copy of the accumulated turns
func (s *ChatSession) History() []models.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTurns(s.history)
}

// SetHistory replaces the accumulated turns (for resuming conversations)
func (s *ChatSession) SetHistory(history []models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = copyTurns(history)
}

// GetModel returns the session's model
func (s *ChatSession) GetModel() models.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel changes the session's model
func (s *ChatSession) SetModel(model models.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
}

// SystemPrompt returns the session's system instruction
func (s *ChatSession) SystemPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemPrompt
}

// SetSystemPrompt changes the session's system instruction
func (s *ChatSession) SetSystemPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt = prompt
}

// LastOutput returns the last response from the session
func (s *ChatSession) LastOutput() *models.ModelOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOutput
}
