package domain

import (
	"fmt"
	"strings"
)

// Generation parameter bounds enforced by the configuration editor.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinTopP        = 0.0
	MaxTopP        = 1.0
	MinMaxTokens   = 100
	MaxMaxTokens   = 8192
)

// GenerationParams governs a single model invocation.
type GenerationParams struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	TopP        float64 `json:"top_p" yaml:"topP"`
	MaxTokens   int     `json:"max_tokens" yaml:"maxTokens"`
}

// Validate range-checks the parameters.
func (p GenerationParams) Validate() error {
	if p.Temperature < MinTemperature || p.Temperature > MaxTemperature {
		return &ValidationError{Field: "temperature", Message: fmt.Sprintf("must be between %g and %g, got %g", MinTemperature, MaxTemperature, p.Temperature)}
	}
	if p.TopP < MinTopP || p.TopP > MaxTopP {
		return &ValidationError{Field: "top_p", Message: fmt.Sprintf("must be between %g and %g, got %g", MinTopP, MaxTopP, p.TopP)}
	}
	if p.MaxTokens < MinMaxTokens || p.MaxTokens > MaxMaxTokens {
		return &ValidationError{Field: "max_tokens", Message: fmt.Sprintf("must be between %d and %d, got %d", MinMaxTokens, MaxMaxTokens, p.MaxTokens)}
	}
	return nil
}

// AgentConfig is one pipeline stage: a prompt template plus a target model
// and generation parameters.
type AgentConfig struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description,omitempty"`
	SystemPrompt string `json:"system_prompt" yaml:"systemPrompt"`
	UserPrompt   string `json:"user_prompt" yaml:"userPrompt"`
	Model        string `json:"model" yaml:"model"`

	GenerationParams `yaml:",inline"`
}

// Validate checks the fields the configuration editor is allowed to change.
func (a AgentConfig) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(a.Model) == "" {
		return &ValidationError{Field: "model", Message: "is required"}
	}
	return a.GenerationParams.Validate()
}

// ValidationError reports an out-of-range or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
