package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"google.golang.org/genai"
)

// GeminiOptions configures the Gemini gateway.
type GeminiOptions struct {
	BaseURL    string        // overrides the public endpoint, mainly for tests
	Timeout    time.Duration // per request; zero means no client-side limit
	HTTPClient *http.Client
}

// GeminiClient calls the Gemini API through the Google Gen AI SDK.
// A fresh SDK client is built per call because the credential is per call.
type GeminiClient struct {
	opts GeminiOptions
	http *http.Client
	log  *logging.Logger
}

var _ Provider = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini gateway.
func NewGeminiClient(opts GeminiOptions, log *logging.Logger) *GeminiClient {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	log = log.Sub("llm.gemini")
	hc := &http.Client{
		Timeout:       opts.Timeout,
		Transport:     newTracingTransport(base.Transport, log),
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
	}
	return &GeminiClient{opts: opts, http: hc, log: log}
}

// Name returns "gemini".
func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) client(ctx context.Context, credential string) (*genai.Client, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrCredentialRequired
	}
	cc := &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
	}
	if c.opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// GenerateText sends one prompt with a system instruction and sampling parameters.
func (c *GeminiClient) GenerateText(ctx context.Context, credential string, req TextRequest) (*TextResult, error) {
	client, err := c.client(ctx, credential)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Params.Temperature)),
		TopP:            genai.Ptr(float32(req.Params.TopP)),
		MaxOutputTokens: int32(req.Params.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	c.log.Debug().
		Str("model", req.Model).
		Int("promptChars", len(req.Prompt)).
		Int("maxTokens", req.Params.MaxTokens).
		Msg("generate text")

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, err
	}

	out := &TextResult{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		out.Tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// TranscribeImages sends every page image and the transcription instruction in a single request.
func (c *GeminiClient) TranscribeImages(ctx context.Context, credential, model string, images []domain.PageImage) (string, error) {
	client, err := c.client(ctx, credential)
	if err != nil {
		return "", err
	}

	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, mime))
	}
	parts = append(parts, genai.NewPartFromText(TranscriptionInstruction))

	c.log.Debug().Str("model", model).Int("images", len(images)).Msg("transcribe images")

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
