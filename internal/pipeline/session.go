package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/store"
)

// View is the front end's active screen.
type View string

const (
	ViewUpload    View = "upload"
	ViewReview    View = "review"
	ViewConfig    View = "config"
	ViewExecute   View = "execute"
	ViewDashboard View = "dashboard"
	ViewNotes     View = "notes"
	ViewCompare   View = "compare"
)

// Views lists every view in navigation order.
var Views = []View{ViewUpload, ViewReview, ViewConfig, ViewExecute, ViewDashboard, ViewNotes, ViewCompare}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// StageStatus is the state of one pipeline position.
type StageStatus struct {
	Position int                 `json:"position"`
	AgentID  string              `json:"agentId"`
	Name     string              `json:"name"`
	State    domain.StageState   `json:"state"`
	Output   *domain.AgentOutput `json:"output,omitempty"`
}

// Snapshot is a read-only copy of the session. The credential itself is never exposed.
type Snapshot struct {
	HasCredential bool                     `json:"hasCredential"`
	Processing    bool                     `json:"processing"`
	View          View                     `json:"view"`
	PageCount     int                      `json:"pageCount"`
	PageRange     string                   `json:"pageRange"`
	OCRModel      string                   `json:"ocrModel"`
	DocumentText  string                   `json:"documentText"`
	Stages        []StageStatus            `json:"stages"`
	Notes         string                   `json:"notes"`
	Comparison    *domain.ComparisonResult `json:"comparison,omitempty"`
}

// Snapshot copies the current session state.
func (e *Executor) Snapshot() Snapshot {
	agents := e.agents.List()

	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Snapshot{
		HasCredential: e.credential != "",
		Processing:    e.busy.Load(),
		View:          e.view,
		PageCount:     len(e.pages),
		PageRange:     e.pageRange,
		OCRModel:      e.ocrModel,
		DocumentText:  e.documentText,
		Stages:        e.stagesLocked(agents),
		Notes:         e.notes,
	}
	if e.comparison != nil {
		c := *e.comparison
		s.Comparison = &c
	}
	return s
}

// Stages returns the status of every pipeline position.
func (e *Executor) Stages() []StageStatus {
	agents := e.agents.List()
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stagesLocked(agents)
}

func (e *Executor) stagesLocked(agents []domain.AgentConfig) []StageStatus {
	stages := make([]StageStatus, len(agents))
	for i, a := range agents {
		st := StageStatus{Position: i, AgentID: a.ID, Name: a.Name, State: domain.StageNotRun}
		if i < len(e.outputs) && e.outputs[i] != nil {
			out := *e.outputs[i]
			st.Output = &out
			st.State = domain.StageCompleted
		}
		if e.running == i {
			st.State = domain.StageRunning
		}
		stages[i] = st
	}
	return stages
}

// Output returns a copy of the output stored at position, or nil.
func (e *Executor) Output(position int) *domain.AgentOutput {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if position < 0 || position >= len(e.outputs) || e.outputs[position] == nil {
		return nil
	}
	out := *e.outputs[position]
	return &out
}

// SetCredential replaces the session API key. Blank clears it.
func (e *Executor) SetCredential(key string) {
	e.mu.Lock()
	e.credential = strings.TrimSpace(key)
	e.mu.Unlock()
}

// HasCredential reports whether an API key is set.
func (e *Executor) HasCredential() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.credential != ""
}

// SetDocumentText replaces the document text after a manual edit.
func (e *Executor) SetDocumentText(text string) {
	e.mu.Lock()
	e.documentText = text
	e.mu.Unlock()
}

// DocumentText returns the current document text.
func (e *Executor) DocumentText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.documentText
}

// OCRSettings carries optional OCR setting changes; nil fields are left as they are.
type OCRSettings struct {
	PageRange *string `json:"pageRange,omitempty"`
	Model     *string `json:"model,omitempty"`
}

// ConfigureOCR applies OCR setting changes and returns the resulting page range and model.
func (e *Executor) ConfigureOCR(s OCRSettings) (pageRange, model string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.PageRange != nil {
		e.pageRange = *s.PageRange
	}
	if s.Model != nil && strings.TrimSpace(*s.Model) != "" {
		e.ocrModel = strings.TrimSpace(*s.Model)
	}
	return e.pageRange, e.ocrModel
}

// SetNotes replaces the review notes.
func (e *Executor) SetNotes(ctx context.Context, text string) {
	e.mu.Lock()
	e.notes = text
	e.mu.Unlock()
	e.emit(ctx, hooks.EventNotesUpdated, map[string]any{"length": len(text)})
}

// Notes returns the review notes.
func (e *Executor) Notes() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.notes
}

// SetView switches the active view.
func (e *Executor) SetView(name string) (View, error) {
	v, err := ParseView(name)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	e.view = v
	e.mu.Unlock()
	return v, nil
}

// Agents returns the agent list in pipeline order.
func (e *Executor) Agents() []domain.AgentConfig {
	return e.agents.List()
}

// UpdateAgent edits the agent at position in place.
func (e *Executor) UpdateAgent(position int, a domain.AgentConfig) (domain.AgentConfig, error) {
	return e.agents.Update(position, a)
}

// Metrics returns the run metrics log in append order.
func (e *Executor) Metrics(ctx context.Context) ([]domain.RunMetric, error) {
	return e.metrics.List(ctx)
}

// Summary returns dashboard aggregates over the run metrics log.
func (e *Executor) Summary(ctx context.Context) (store.Summary, error) {
	return e.metrics.Summary(ctx)
}

// ClearOutputs empties every output slot. Metrics are kept.
func (e *Executor) ClearOutputs(ctx context.Context) error {
	const op = "outputs.clear"
	if err := e.begin(ctx, op); err != nil {
		return err
	}
	defer e.end(ctx, op)

	e.mu.Lock()
	e.outputs = make([]*domain.AgentOutput, e.agents.Len())
	e.mu.Unlock()

	e.log.Info().Msg("outputs cleared")
	e.emit(ctx, hooks.EventOutputsCleared, nil)
	return nil
}

// Reset starts a new session: document, pages, outputs, comparison and
// metrics are dropped and the notes return to their default. The credential
// and agent settings are kept.
func (e *Executor) Reset(ctx context.Context) error {
	const op = "session.reset"
	if err := e.begin(ctx, op); err != nil {
		return err
	}
	defer e.end(ctx, op)

	if err := e.metrics.Reset(ctx); err != nil {
		return fmt.Errorf("resetting metrics: %w", err)
	}

	e.mu.Lock()
	e.resetSession()
	e.mu.Unlock()

	e.log.Info().Msg("session reset")
	e.emit(ctx, hooks.EventSessionReset, nil)
	return nil
}
