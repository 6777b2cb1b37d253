package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/llm"
)

// Comparison defaults when the caller leaves a model empty.
const (
	DefaultCompareModelA = "gemini-2.5-flash"
	DefaultCompareModelB = "gemini-2.5-flash-lite"
)

// RunComparison runs the agent at position against the document text on
// modelA and then modelB, strictly one after the other. If a call fails the
// remaining one is skipped and results already produced stay visible.
// Comparison runs are not recorded in the run metrics log.
func (e *Executor) RunComparison(ctx context.Context, position int, modelA, modelB string) (*domain.ComparisonResult, error) {
	const op = "compare.run"
	if err := e.begin(ctx, op); err != nil {
		return nil, err
	}
	defer e.end(ctx, op)

	a, err := e.agents.Get(position)
	if err != nil {
		return nil, e.reject(op, fmt.Errorf("%w: %d", ErrUnknownStage, position))
	}
	credential, err := e.requireCredential(op)
	if err != nil {
		return nil, err
	}
	doc := e.DocumentText()
	if doc == "" {
		return nil, e.reject(op, ErrNoDocument)
	}

	if modelA == "" {
		modelA = DefaultCompareModelA
	}
	if modelB == "" {
		modelB = DefaultCompareModelB
	}

	result := &domain.ComparisonResult{
		ID:        uuid.NewString(),
		AgentID:   a.ID,
		AgentName: a.Name,
		A:         domain.ComparisonSide{Model: modelA},
		B:         domain.ComparisonSide{Model: modelB},
		StartedAt: time.Now(),
	}
	e.publishComparison(ctx, result)

	prompt := agent.ComposePrompt(a, doc)
	for _, side := range []*domain.ComparisonSide{&result.A, &result.B} {
		start := time.Now()
		res, err := e.gateway.GenerateText(ctx, credential, llm.TextRequest{
			Model:  side.Model,
			System: a.SystemPrompt,
			Prompt: prompt,
			Params: a.GenerationParams,
		})
		if err != nil {
			side.Error = err.Error()
			side.Done = true
			e.publishComparison(ctx, result)
			e.log.Warn().Err(err).Str("agent", a.Name).Str("model", side.Model).Msg("comparison failed")
			return result.Clone(), fmt.Errorf("comparison failed: %w", err)
		}
		side.Output = res.Text
		side.Tokens = res.Tokens
		side.Seconds = domain.Seconds(time.Since(start))
		side.Done = true
		e.publishComparison(ctx, result)
	}

	e.log.Info().
		Str("agent", a.Name).
		Str("modelA", modelA).
		Float64("latencyA", result.A.Seconds).
		Str("modelB", modelB).
		Float64("latencyB", result.B.Seconds).
		Msg("comparison completed")
	return result.Clone(), nil
}

// Comparison returns the latest comparison record, or nil.
func (e *Executor) Comparison() *domain.ComparisonResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.comparison == nil {
		return nil
	}
	return e.comparison.Clone()
}

func (e *Executor) publishComparison(ctx context.Context, result *domain.ComparisonResult) {
	snapshot := result.Clone()
	e.mu.Lock()
	e.comparison = snapshot
	e.mu.Unlock()
	e.emit(ctx, hooks.EventComparisonUpdated, map[string]any{"comparison": snapshot.Clone()})
}
