package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/llm"
	"github.com/soyeahso/reviewdesk/internal/notes"
)

const (
	followUpSystem = "You are a rigorous FDA auditor."
	followUpPrompt = "Based on the following review notes, please generate exactly 20 comprehensive follow-up questions for the applicant. The questions should be numbered 1-20 and cover safety, efficacy, and quality aspects.\n\nNotes:\n"
)

// followUpParams are fixed regardless of agent settings.
var followUpParams = domain.GenerationParams{Temperature: 0.7, TopP: 0.95, MaxTokens: 4000}

// GenerateFollowUp asks the model for 20 numbered follow-up questions based
// on the current notes and appends them under a heading. It returns the
// updated notes. A failure leaves the notes unchanged.
func (e *Executor) GenerateFollowUp(ctx context.Context) (string, error) {
	const op = "notes.followup"
	if err := e.begin(ctx, op); err != nil {
		return "", err
	}
	defer e.end(ctx, op)

	credential, err := e.requireCredential(op)
	if err != nil {
		return "", err
	}

	model := e.cfg.FollowUpModel
	start := time.Now()
	res, err := e.gateway.GenerateText(ctx, credential, llm.TextRequest{
		Model:  model,
		System: followUpSystem,
		Prompt: followUpPrompt + e.Notes(),
		Params: followUpParams,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("model", model).Msg("follow-up generation failed")
		return "", fmt.Errorf("failed to generate questions: %w", err)
	}

	// Appended to the notes as they are now, which may include edits made during the call.
	e.mu.Lock()
	e.notes = notes.AppendFollowUp(e.notes, res.Text)
	updated := e.notes
	e.mu.Unlock()

	e.log.Info().
		Str("model", model).
		Int("tokens", res.Tokens).
		Float64("latency", domain.Seconds(time.Since(start))).
		Msg("follow-up questions generated")
	e.emit(ctx, hooks.EventNotesUpdated, map[string]any{"length": len(updated), "followUp": true})
	return updated, nil
}
