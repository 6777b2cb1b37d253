// Package llm is the generation gateway: a thin, stateless relay to the two
// model capabilities the review pipeline needs, text generation and
// multimodal transcription of page images.
//
// Every call carries the caller's credential. Nothing is cached, batched, or
// retried here; provider errors come back to the caller as they were raised.
package llm

import (
	"context"
	"errors"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

// ErrCredentialRequired is returned before any network call when no API key is supplied.
var ErrCredentialRequired = errors.New("API key is required")

// TranscriptionInstruction is sent with every batch of page images.
const TranscriptionInstruction = "請將這些圖片中的文字完整轉錄（保持原文、段落與標點）。若有表格，請以Markdown表格呈現。Ignore any non-text artifacts."

// TextRequest is the input to a single text generation call.
type TextRequest struct {
	Model  string                  `json:"model"`
	System string                  `json:"system,omitempty"`
	Prompt string                  `json:"prompt"`
	Params domain.GenerationParams `json:"params"`
}

// TextResult is the output of a text generation call.
type TextResult struct {
	Text   string `json:"text"`
	Tokens int    `json:"tokens"` // provider-reported total, 0 when unreported
}

// Gateway is implemented by every generation backend.
type Gateway interface {
	// GenerateText issues one generation call.
	GenerateText(ctx context.Context, credential string, req TextRequest) (*TextResult, error)

	// TranscribeImages sends all images plus TranscriptionInstruction in one request.
	TranscribeImages(ctx context.Context, credential, model string, images []domain.PageImage) (string, error)
}

// Provider is a named Gateway that can be registered with a Registry.
type Provider interface {
	Gateway

	// Name returns the provider name (e.g., "gemini").
	Name() string
}
