package llm

import (
	"context"
	"testing"

	"github.com/soyeahso/reviewdesk/internal/config"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLog() *logging.Logger {
	return logging.New(nil, "silent")
}

// --- Registry tests ---

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{ProviderName: "test-provider"})

	p, err := reg.Resolve("test-provider")
	require.NoError(t, err)
	assert.Equal(t, "test-provider", p.Name())
}

func TestRegistryAlias(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{ProviderName: "gemini"})
	reg.Alias("gemini-2.5-flash", "gemini")
	reg.Alias("gemini-2.5-flash-lite", "gemini")

	p, err := reg.Resolve("gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = reg.Resolve("gemini-2.5-flash-lite")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
}

func TestRegistryFallback(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{ProviderName: "default-llm"})
	reg.SetFallback("default-llm")

	p, err := reg.Resolve("unknown-model-xyz")
	require.NoError(t, err)
	assert.Equal(t, "default-llm", p.Name())
}

func TestRegistryResolveNotFound(t *testing.T) {
	reg := NewRegistry(silentLog())

	_, err := reg.Resolve("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM provider")
}

func TestRegistryAliasToMissingProviderUsesFallback(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{ProviderName: "fb"})
	reg.SetFallback("fb")
	reg.Alias("orphan-model", "gone")

	p, err := reg.Resolve("orphan-model")
	require.NoError(t, err)
	assert.Equal(t, "fb", p.Name())
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{ProviderName: "zeta"})
	reg.Register(&MockGateway{ProviderName: "alpha"})

	assert.Equal(t, []string{"alpha", "zeta"}, reg.List())
}

func TestRegistryRoutesGenerateTextByModel(t *testing.T) {
	reg := NewRegistry(silentLog())

	var gotCredential string
	var gotReq TextRequest
	reg.Register(&MockGateway{
		ProviderName: "gemini",
		GenerateTextFunc: func(_ context.Context, credential string, req TextRequest) (*TextResult, error) {
			gotCredential = credential
			gotReq = req
			return &TextResult{Text: "routed", Tokens: 7}, nil
		},
	})
	reg.Alias("gemini-2.0-flash", "gemini")

	req := TextRequest{
		Model:  "gemini-2.0-flash",
		System: "be terse",
		Prompt: "hello",
		Params: domain.GenerationParams{Temperature: 0.2, TopP: 0.9, MaxTokens: 500},
	}
	res, err := reg.GenerateText(context.Background(), "key-1", req)
	require.NoError(t, err)
	assert.Equal(t, "routed", res.Text)
	assert.Equal(t, 7, res.Tokens)
	assert.Equal(t, "key-1", gotCredential)
	assert.Equal(t, req, gotReq)
}

func TestRegistryRoutesTranscribeByModel(t *testing.T) {
	reg := NewRegistry(silentLog())
	reg.Register(&MockGateway{
		ProviderName: "gemini",
		TranscribeFunc: func(_ context.Context, _, model string, images []domain.PageImage) (string, error) {
			return model + ":" + string(rune('0'+len(images))), nil
		},
	})
	reg.SetFallback("gemini")

	text, err := reg.TranscribeImages(context.Background(), "k", "gemini-2.5-flash", make([]domain.PageImage, 3))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash:3", text)
}

func TestRegistryGenerateTextUnresolved(t *testing.T) {
	reg := NewRegistry(silentLog())
	_, err := reg.GenerateText(context.Background(), "k", TextRequest{Model: "m"})
	assert.Error(t, err)

	_, err = reg.TranscribeImages(context.Background(), "k", "m", nil)
	assert.Error(t, err)
}

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Agents = []domain.AgentConfig{{ID: "x", Name: "X", Model: "custom-model"}}

	reg := NewRegistryFromConfig(cfg, silentLog())
	assert.Equal(t, []string{"gemini"}, reg.List())

	for _, model := range append(cfg.Pipeline.Models, "custom-model", "anything-else") {
		p, err := reg.Resolve(model)
		require.NoError(t, err, model)
		assert.Equal(t, "gemini", p.Name())
	}
}

// --- MockGateway tests ---

func TestMockGatewayDefaults(t *testing.T) {
	m := &MockGateway{}
	assert.Equal(t, "mock", m.Name())

	res, err := m.GenerateText(context.Background(), "", TextRequest{Prompt: "one two three"})
	require.NoError(t, err)
	assert.Equal(t, "one two three", res.Text)
	assert.Equal(t, 3, res.Tokens)

	text, err := m.TranscribeImages(context.Background(), "", "m", nil)
	require.NoError(t, err)
	assert.Equal(t, "mock transcription", text)
}
