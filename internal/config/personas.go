package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Persona represents a reply style template applied to outgoing prompts
type Persona struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Template wraps each user prompt. A %s placeholder receives the
	// prompt text; without a placeholder the template is prepended.
	Template string `json:"template"`
}

// PersonaConfig stores all personas
type PersonaConfig struct {
	Personas       []Persona `json:"personas"`
	DefaultPersona string    `json:"default_persona,omitempty"`
}

// DefaultPersonas returns pre-configured personas. The assistant persona
// is the default: replies stay short and speakable so they read well
// aloud through the speech path.
func DefaultPersonas() []Persona {
	return []Persona{
		{
			Name:        "assistant",
			Description: "Conversational voice assistant",
			Template: "You are a friendly voice assistant. Answer conversationally in a few " +
				"short sentences, without markdown tables or code unless asked. " +
				"Question: %s",
		},
		{
			Name:        "plain",
			Description: "No style template",
			Template:    "",
		},
		{
			Name:        "coder",
			Description: "Expert programmer assistant",
			Template: "You are an expert programmer. Be precise, show code when useful, " +
				"and explain tradeoffs briefly.\n\n%s",
		},
		{
			Name:        "teacher",
			Description: "Patient educational assistant",
			Template: "You are a patient teacher. Break the topic into simple parts and " +
				"use an example.\n\n%s",
		},
	}
}

// GetPersonasPath returns the path to the personas file
func GetPersonasPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "personas.json"), nil
}

// LoadPersonas loads the persona configuration
func LoadPersonas() (*PersonaConfig, error) {
	path, err := GetPersonasPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PersonaConfig{
				Personas:       DefaultPersonas(),
				DefaultPersona: "assistant",
			}, nil
		}
		return nil, fmt.Errorf("failed to read personas: %w", err)
	}

	var cfg PersonaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse personas: %w", err)
	}

	// Merge with defaults (keep user customizations)
	cfg.Personas = mergePersonas(DefaultPersonas(), cfg.Personas)

	return &cfg, nil
}

// SavePersonas saves the persona configuration
func SavePersonas(cfg *PersonaConfig) error {
	path, err := GetPersonasPath()
	if err != nil {
		return err
	}

	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal personas: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// GetPersona returns a persona by name
func GetPersona(name string) (*Persona, error) {
	cfg, err := LoadPersonas()
	if err != nil {
		return nil, err
	}

	for _, p := range cfg.Personas {
		if p.Name == name {
			return &p, nil
		}
	}

	return nil, fmt.Errorf("persona '%s' not found", name)
}

// ListPersonaNames returns the names of all personas
func ListPersonaNames() ([]string, error) {
	cfg, err := LoadPersonas()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(cfg.Personas))
	for i, p := range cfg.Personas {
		names[i] = p.Name
	}
	return names, nil
}

// GetDefaultPersona returns the default persona
func GetDefaultPersona() (*Persona, error) {
	cfg, err := LoadPersonas()
	if err != nil {
		return nil, err
	}

	name := cfg.DefaultPersona
	if name == "" {
		name = "assistant"
	}

	return GetPersona(name)
}

// AddPersona adds or replaces a persona
func AddPersona(persona Persona) error {
	cfg, err := LoadPersonas()
	if err != nil {
		return err
	}

	replaced := false
	for i, p := range cfg.Personas {
		if p.Name == persona.Name {
			cfg.Personas[i] = persona
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Personas = append(cfg.Personas, persona)
	}

	return SavePersonas(cfg)
}

// DeletePersona removes a persona by name
func DeletePersona(name string) error {
	cfg, err := LoadPersonas()
	if err != nil {
		return err
	}

	found := false
	personas := cfg.Personas[:0]
	for _, p := range cfg.Personas {
		if p.Name == name {
			found = true
			continue
		}
		personas = append(personas, p)
	}
	if !found {
		return fmt.Errorf("persona '%s' not found", name)
	}
	cfg.Personas = personas

	if cfg.DefaultPersona == name {
		cfg.DefaultPersona = "assistant"
	}

	return SavePersonas(cfg)
}

// SetDefaultPersona sets the default persona by name
func SetDefaultPersona(name string) error {
	cfg, err := LoadPersonas()
	if err != nil {
		return err
	}

	found := false
	for _, p := range cfg.Personas {
		if p.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("persona '%s' not found", name)
	}

	cfg.DefaultPersona = name
	return SavePersonas(cfg)
}

func mergePersonas(defaults, custom []Persona) []Persona {
	result := make([]Persona, len(defaults))
	copy(result, defaults)

	for _, cp := range custom {
		found := false
		for i, dp := range result {
			if dp.Name == cp.Name {
				result[i] = cp
				found = true
				break
			}
		}
		if !found {
			result = append(result, cp)
		}
	}

	return result
}

// FormatPrompt applies the persona's template to a user prompt. A nil
// persona or empty template returns the prompt unchanged.
func FormatPrompt(persona *Persona, prompt string) string {
	if persona == nil || persona.Template == "" {
		return prompt
	}

	if containsPlaceholder(persona.Template) {
		return fmt.Sprintf(persona.Template, prompt)
	}
	return persona.Template + "\n\n" + prompt
}

func containsPlaceholder(template string) bool {
	for i := 0; i+1 < len(template); i++ {
		if template[i] == '%' {
			if template[i+1] == 's' {
				return true
			}
			if template[i+1] == '%' {
				i++
			}
		}
	}
	return false
}
