package llm

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/soyeahso/reviewdesk/internal/config"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
)

// Registry routes model identifiers to providers. It is itself a Gateway,
// so the pipeline can hold one value regardless of how many backends exist.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider // provider name → provider
	aliases   map[string]string   // model id → provider name
	fallback  string              // default provider name
	log       *logging.Logger
}

var _ Gateway = (*Registry)(nil)

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		aliases:   make(map[string]string),
		log:       log.Sub("llm.registry"),
	}
}

// Register adds a provider under its name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
	r.log.Info().Str("provider", p.Name()).Msg("registered LLM provider")
}

// Alias maps a model id to a provider.
// e.g., Alias("gemini-2.5-flash", "gemini").
func (r *Registry) Alias(model, provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[model] = provider
}

// SetFallback sets the provider used when a model has no alias.
func (r *Registry) SetFallback(provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = provider
}

// Resolve returns the provider for the given model id.
// Resolution order: exact provider name → alias → fallback.
func (r *Registry) Resolve(model string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.providers[model]; ok {
		return p, nil
	}

	if name, ok := r.aliases[model]; ok {
		if p, ok := r.providers[name]; ok {
			return p, nil
		}
	}

	if r.fallback != "" {
		if p, ok := r.providers[r.fallback]; ok {
			return p, nil
		}
	}

	return nil, fmt.Errorf("no LLM provider for model %q", model)
}

// List returns all registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// GenerateText routes the request by model id.
func (r *Registry) GenerateText(ctx context.Context, credential string, req TextRequest) (*TextResult, error) {
	p, err := r.Resolve(req.Model)
	if err != nil {
		return nil, err
	}
	return p.GenerateText(ctx, credential, req)
}

// TranscribeImages routes the request by model id.
func (r *Registry) TranscribeImages(ctx context.Context, credential, model string, images []domain.PageImage) (string, error) {
	p, err := r.Resolve(model)
	if err != nil {
		return "", err
	}
	return p.TranscribeImages(ctx, credential, model, images)
}

// NewRegistryFromConfig registers the Gemini provider as the fallback and
// aliases every catalog and agent model to it.
func NewRegistryFromConfig(cfg config.Config, log *logging.Logger) *Registry {
	reg := NewRegistry(log)

	gemini := NewGeminiClient(GeminiOptions{
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	}, log)
	reg.Register(gemini)
	reg.SetFallback(gemini.Name())

	for _, m := range cfg.Pipeline.Models {
		reg.Alias(m, gemini.Name())
	}
	for _, a := range cfg.Agents {
		if a.Model != "" {
			reg.Alias(a.Model, gemini.Name())
		}
	}
	return reg
}
