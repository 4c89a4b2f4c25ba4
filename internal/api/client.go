// Package api implements the client for the hosted Gemini generateContent API.
package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
)

// GeminiClientInterface abstracts the client for testing
type GeminiClientInterface interface {
	GenerateContent(ctx context.Context, prompt string, opts *GenerateOptions) (*models.ModelOutput, error)
	GetModel() models.Model
	SetModel(model models.Model)
	Close()
	IsClosed() bool
}

// GeminiClient is the main client for the generative-language API
type GeminiClient struct {
	httpClient tls_client.HttpClient
	apiKey     string
	baseURL    string
	model      models.Model
	mu         sync.RWMutex
	closed     bool
}

// Ensure GeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*GeminiClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the default model for the client
func WithModel(model models.Model) ClientOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *GeminiClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *GeminiClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a new GeminiClient. The apiKey is required.
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apierrors.ErrNoAPIKey
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(300),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	client := &GeminiClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    models.EndpointBase,
		model:      models.DefaultModel,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close marks the client closed. Further calls fail.
func (c *GeminiClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *GeminiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the default model
func (c *GeminiClient) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the default model
func (c *GeminiClient) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// ChatOption configures a new chat session
type ChatOption func(*ChatSession)

// WithChatModel sets the session's model
func WithChatModel(model models.Model) ChatOption {
	return func(s *ChatSession) {
		s.model = model
	}
}

// WithSystemPrompt sets the session's system instruction
func WithSystemPrompt(prompt string) ChatOption {
	return func(s *ChatSession) {
		s.systemPrompt = prompt
	}
}

// WithHistory seeds the session with prior turns (for resuming)
func WithHistory(history []models.Turn) ChatOption {
	return func(s *ChatSession) {
		s.history = append([]models.Turn(nil), history...)
	}
}

// StartChat creates a new chat session bound to this client
func (c *GeminiClient) StartChat(opts ...ChatOption) *ChatSession {
	s := &ChatSession{
		client: c,
		model:  c.GetModel(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
