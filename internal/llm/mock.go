package llm

import (
	"context"
	"strings"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

// MockGateway is a test double for Provider. With no funcs set it echoes
// prompts back and reports one token per whitespace-separated word.
type MockGateway struct {
	ProviderName     string
	GenerateTextFunc func(ctx context.Context, credential string, req TextRequest) (*TextResult, error)
	TranscribeFunc   func(ctx context.Context, credential, model string, images []domain.PageImage) (string, error)
}

func (m *MockGateway) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockGateway) GenerateText(ctx context.Context, credential string, req TextRequest) (*TextResult, error) {
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, credential, req)
	}
	return &TextResult{Text: req.Prompt, Tokens: len(strings.Fields(req.Prompt))}, nil
}

func (m *MockGateway) TranscribeImages(ctx context.Context, credential, model string, images []domain.PageImage) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, credential, model, images)
	}
	return "mock transcription", nil
}
