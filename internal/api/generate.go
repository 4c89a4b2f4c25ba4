package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
)

// InlineImage is an image attached inline to a prompt
type InlineImage struct {
	Data []byte
	MIME string
}

// GenerateOptions contains options for content generation
type GenerateOptions struct {
	Model        models.Model
	History      []models.Turn // Prior turns resent for multi-turn context
	Images       []InlineImage // Images attached to this prompt
	SystemPrompt string
}

// request payload structures for generateContent
type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *generateInline `json:"inline_data,omitempty"`
}

type generateInline struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

// GenerateContent sends a prompt to the generateContent endpoint and
// returns the parsed response
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, opts *GenerateOptions) (*models.ModelOutput, error) {
	if prompt == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	model := c.GetModel()
	var history []models.Turn
	var images []InlineImage
	var systemPrompt string

	if opts != nil {
		if opts.Model.ID != "" {
			model = opts.Model
		}
		history = opts.History
		images = opts.Images
		systemPrompt = opts.SystemPrompt
	}

	payload, err := buildPayload(prompt, history, images, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.baseURL + fmt.Sprintf(models.PathGenerate, model.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}

	if resp.StatusCode != 200 {
		message := "generate content failed"
		if apiMsg := gjson.GetBytes(body, PathErrorMessage); apiMsg.Exists() {
			message = apiMsg.String()
		}
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, message, string(body))
	}

	return parseResponse(body)
}

// buildPayload creates the JSON request body for generateContent
func buildPayload(prompt string, history []models.Turn, images []InlineImage, systemPrompt string) ([]byte, error) {
	req := generateRequest{}

	if systemPrompt != "" {
		req.SystemInstruction = &generateContent{
			Parts: []generatePart{{Text: systemPrompt}},
		}
	}

	for _, turn := range history {
		req.Contents = append(req.Contents, generateContent{
			Role:  turn.Role,
			Parts: []generatePart{{Text: turn.Text}},
		})
	}

	parts := []generatePart{{Text: prompt}}
	for _, img := range images {
		parts = append(parts, generatePart{
			InlineData: &generateInline{
				MIMEType: img.MIME,
				Data:     base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}
	req.Contents = append(req.Contents, generateContent{
		Role:  "user",
		Parts: parts,
	})

	return json.Marshal(req)
}

// parseResponse parses the generateContent response
func parseResponse(body []byte) (*models.ModelOutput, error) {
	parsed := gjson.ParseBytes(body)

	candidateList := parsed.Get(PathCandidates)
	if !candidateList.Exists() || !candidateList.IsArray() {
		if block := parsed.Get(PathBlockReason); block.Exists() {
			return nil, apierrors.NewParseError(
				fmt.Sprintf("prompt blocked: %s", block.String()), PathBlockReason)
		}
		return nil, apierrors.NewParseError("no candidates found", PathCandidates)
	}

	candidates := []models.Candidate{}
	candidateList.ForEach(func(_, candValue gjson.Result) bool {
		var sb strings.Builder
		candValue.Get(PathCandParts).ForEach(func(_, part gjson.Result) bool {
			sb.WriteString(part.Get(PathPartText).String())
			return true
		})

		candidates = append(candidates, models.Candidate{
			Text:         sb.String(),
			FinishReason: candValue.Get(PathFinishReason).String(),
		})
		return true
	})

	if len(candidates) == 0 {
		return nil, apierrors.NewParseError("no valid candidates found", PathCandidates)
	}

	return &models.ModelOutput{
		Candidates: candidates,
		Chosen:     0,
	}, nil
}
