// Package models contains data types and constants for the Gemini API.
package models

// Endpoints for the hosted generative-language API
const (
	EndpointBase     = "https://generativelanguage.googleapis.com"
	PathGenerate     = "/v1beta/models/%s:generateContent"
	HeaderAPIKey     = "x-goog-api-key"
	MIMEImageJPEG    = "image/jpeg"
	MIMEImagePNG     = "image/png"
	MIMEAudioMPEG    = "audio/mpeg"
	MIMEApplication  = "application/json"
	DefaultUserAgent = "gemvoice/1.0"
)

// Model represents an available Gemini model
type Model struct {
	Name string
	// ID is the identifier used in the REST path
	ID string
}

// Available models
var (
	ModelFlash = Model{
		Name: "fast",
		ID:   "gemini-2.5-flash",
	}

	ModelPro = Model{
		Name: "pro",
		ID:   "gemini-2.5-pro",
	}

	// DefaultModel is the recommended default
	DefaultModel = ModelFlash
)

// AllModels returns a list of all available models
func AllModels() []Model {
	return []Model{ModelFlash, ModelPro}
}

// ModelFromName returns a Model by its short name or full identifier
func ModelFromName(name string) Model {
	switch name {
	case "fast", "gemini-2.5-flash":
		return ModelFlash
	case "pro", "gemini-2.5-pro":
		return ModelPro
	default:
		return DefaultModel
	}
}

// DefaultHeaders returns the default headers for generateContent requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": MIMEApplication,
		"User-Agent":   DefaultUserAgent,
	}
}
