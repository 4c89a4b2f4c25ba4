package api

import (
	"context"

	"github.com/diogo/gemvoice/internal/models"
)

// MockGeminiClient is a mock implementation of GeminiClientInterface for testing
type MockGeminiClient struct {
	// Mock return values
	Model              models.Model
	IsClosedVal        bool
	GenerateContentVal *models.ModelOutput
	GenerateContentErr error

	// Call counters/recorders
	CloseCalled           bool
	GenerateContentCalled int
	LastPrompt            string
	LastOptions           *GenerateOptions
}

// Ensure MockGeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*MockGeminiClient)(nil)

func (m *MockGeminiClient) Close() {
	m.CloseCalled = true
}

func (m *MockGeminiClient) IsClosed() bool {
	return m.IsClosedVal
}

func (m *MockGeminiClient) GetModel() models.Model {
	return m.Model
}

func (m *MockGeminiClient) SetModel(model models.Model) {
	m.Model = model
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, prompt string, opts *GenerateOptions) (*models.ModelOutput, error) {
	m.GenerateContentCalled++
	m.LastPrompt = prompt
	m.LastOptions = opts
	return m.GenerateContentVal, m.GenerateContentErr
}

// StartChat creates a session bound to this mock
func (m *MockGeminiClient) StartChat(opts ...ChatOption) *ChatSession {
	s := &ChatSession{client: m, model: m.Model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
