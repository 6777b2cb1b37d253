package cli

import (
	"fmt"

	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/config"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/llm"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/soyeahso/reviewdesk/internal/pdf"
	"github.com/soyeahso/reviewdesk/internal/pipeline"
	"github.com/soyeahso/reviewdesk/internal/store"
)

// session bundles an executor with the pieces its owner must release.
type session struct {
	exec    *pipeline.Executor
	hooks   *hooks.Manager
	metrics store.MetricsStore
}

func (s *session) Close() error {
	return s.metrics.Close()
}

// newSession wires the gateway registry, the MuPDF rasterizer, the agent
// registry and the metrics store into one executor.
func newSession(cfg config.Config, log *logging.Logger) (*session, error) {
	agentCfgs := cfg.Agents
	if len(agentCfgs) == 0 {
		agentCfgs = agent.DefaultAgents()
	}
	agents, err := agent.NewRegistry(agentCfgs)
	if err != nil {
		return nil, fmt.Errorf("loading agents: %w", err)
	}

	metrics, err := store.NewMetricsStore(cfg.Metrics.Store, log)
	if err != nil {
		return nil, fmt.Errorf("opening metrics store: %w", err)
	}

	models := llm.NewRegistryFromConfig(cfg, log)

	hm := hooks.NewManager(log)
	exec := pipeline.New(pipeline.Config{
		OCRModel:      cfg.Pipeline.OCRModel,
		FollowUpModel: cfg.Pipeline.FollowUpModel,
		MaxPages:      cfg.Pipeline.MaxPages,
		Models:        cfg.Pipeline.Models,
		Credential:    cfg.Gemini.APIKey,
	}, models, pdf.NewFitzRasterizer(cfg.Pipeline.DPI, log), agents, metrics, hm, log)

	log.Info().
		Int("agents", agents.Len()).
		Str("metrics", cfg.Metrics.Store).
		Strs("providers", models.List()).
		Bool("credential", exec.HasCredential()).
		Msg("review session ready")

	return &session{exec: exec, hooks: hm, metrics: metrics}, nil
}
