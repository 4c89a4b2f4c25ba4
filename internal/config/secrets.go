package config

import "os"

// Secrets holds API credentials. These are sourced from the environment
// only and never written to the config file.
type Secrets struct {
	GeminiAPIKey     string
	ElevenLabsAPIKey string
	OpenAIAPIKey     string
}

// SecretsFromEnv reads API credentials from the environment
func SecretsFromEnv() Secrets {
	return Secrets{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}
}
