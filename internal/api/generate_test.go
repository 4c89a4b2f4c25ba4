package api

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/gemvoice/internal/errors"
	"github.com/diogo/gemvoice/internal/models"
)

func TestBuildPayloadTextOnly(t *testing.T) {
	payload, err := buildPayload("hello", nil, nil, "")
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	parsed := gjson.ParseBytes(payload)
	if got := parsed.Get("contents.#").Int(); got != 1 {
		t.Fatalf("contents length = %d, want 1", got)
	}
	if got := parsed.Get("contents.0.role").String(); got != "user" {
		t.Errorf("role = %q, want user", got)
	}
	if got := parsed.Get("contents.0.parts.0.text").String(); got != "hello" {
		t.Errorf("text = %q, want hello", got)
	}
	if parsed.Get("system_instruction").Exists() {
		t.Error("system_instruction should be omitted when empty")
	}
}

func TestBuildPayloadWithHistory(t *testing.T) {
	history := []models.Turn{
		{Role: "user", Text: "first question"},
		{Role: "model", Text: "first answer"},
	}

	payload, err := buildPayload("second question", history, nil, "be brief")
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	parsed := gjson.ParseBytes(payload)
	if got := parsed.Get("contents.#").Int(); got != 3 {
		t.Fatalf("contents length = %d, want 3", got)
	}
	if got := parsed.Get("contents.1.role").String(); got != "model" {
		t.Errorf("second turn role = %q, want model", got)
	}
	if got := parsed.Get("contents.2.parts.0.text").String(); got != "second question" {
		t.Errorf("final prompt = %q", got)
	}
	if got := parsed.Get("system_instruction.parts.0.text").String(); got != "be brief" {
		t.Errorf("system instruction = %q", got)
	}
}

func TestBuildPayloadWithImage(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	payload, err := buildPayload("what is this", nil, []InlineImage{{Data: img, MIME: "image/jpeg"}}, "")
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	parsed := gjson.ParseBytes(payload)
	if got := parsed.Get("contents.0.parts.#").Int(); got != 2 {
		t.Fatalf("parts length = %d, want 2", got)
	}
	if got := parsed.Get("contents.0.parts.1.inline_data.mime_type").String(); got != "image/jpeg" {
		t.Errorf("mime_type = %q", got)
	}
	wantData := base64.StdEncoding.EncodeToString(img)
	if got := parsed.Get("contents.0.parts.1.inline_data.data").String(); got != wantData {
		t.Errorf("inline data = %q, want %q", got, wantData)
	}
}

func TestParseResponse(t *testing.T) {
	body := []byte(`{
		"candidates": [
			{
				"content": {"parts": [{"text": "Hello, "}, {"text": "world."}], "role": "model"},
				"finishReason": "STOP"
			}
		]
	}`)

	output, err := parseResponse(body)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if got := output.Text(); got != "Hello, world." {
		t.Errorf("Text() = %q", got)
	}
	if got := output.ChosenCandidate().FinishReason; got != "STOP" {
		t.Errorf("FinishReason = %q", got)
	}
}

func TestParseResponseNoCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"blocked prompt", `{"promptFeedback": {"blockReason": "SAFETY"}}`},
		{"candidates not array", `{"candidates": "oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResponse([]byte(tt.body))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, apierrors.ErrInvalidResponse) {
				t.Errorf("error should match ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestParseResponseEmptyText(t *testing.T) {
	// A candidate with no text parts parses fine; callers decide what an
	// empty reply means.
	body := []byte(`{"candidates": [{"content": {"parts": []}, "finishReason": "STOP"}]}`)
	output, err := parseResponse(body)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if got := output.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}
