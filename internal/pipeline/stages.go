package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/llm"
)

// ExecuteAgent runs the agent at position. Position 0 reads the document
// text and every later position reads the output stored at position-1.
// A success overwrites the slot and appends one run metric; a failure
// leaves both untouched.
func (e *Executor) ExecuteAgent(ctx context.Context, position int) (*domain.AgentOutput, error) {
	const op = "agent.execute"
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

	e.mu.RLock()
	var input string
	if position == 0 {
		input = e.documentText
	} else if prev := e.outputs[position-1]; prev != nil {
		input = prev.Output
	}
	e.mu.RUnlock()
	if input == "" {
		return nil, e.reject(op, ErrNoInput)
	}

	e.setRunning(position)
	defer e.setRunning(-1)
	e.emit(ctx, hooks.EventStageStarted, map[string]any{
		"position": position,
		"agentId":  a.ID,
		"model":    a.Model,
	})

	start := time.Now()
	res, err := e.gateway.GenerateText(ctx, credential, llm.TextRequest{
		Model:  a.Model,
		System: a.SystemPrompt,
		Prompt: agent.ComposePrompt(a, input),
		Params: a.GenerationParams,
	})
	elapsed := time.Since(start)
	if err != nil {
		e.log.Warn().Err(err).Int("position", position).Str("agent", a.Name).Str("model", a.Model).Msg("agent failed")
		e.emit(ctx, hooks.EventStageFailed, map[string]any{
			"position": position,
			"agentId":  a.ID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("agent %s failed: %w", a.Name, err)
	}

	out := domain.AgentOutput{
		AgentID: a.ID,
		Input:   domain.PreviewInput(input),
		Output:  res.Text,
		Seconds: domain.Seconds(elapsed),
		Tokens:  res.Tokens,
		Model:   a.Model,
	}
	metric := domain.RunMetric{
		Agent:   a.Name,
		Latency: out.Seconds,
		Tokens:  out.Tokens,
		Model:   a.Model,
	}
	if err := e.metrics.Append(context.WithoutCancel(ctx), metric); err != nil {
		return nil, fmt.Errorf("recording run metric: %w", err)
	}

	e.mu.Lock()
	e.outputs[position] = &out
	e.mu.Unlock()

	e.log.Info().
		Int("position", position).
		Str("agent", a.Name).
		Str("model", a.Model).
		Float64("latency", out.Seconds).
		Int("tokens", out.Tokens).
		Msg("agent completed")
	e.emit(ctx, hooks.EventStageCompleted, map[string]any{
		"position": position,
		"agentId":  a.ID,
		"output":   out,
	})
	return &out, nil
}

func (e *Executor) setRunning(position int) {
	e.mu.Lock()
	e.running = position
	e.mu.Unlock()
}
