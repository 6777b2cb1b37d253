// Package pipeline drives the review session: OCR over selected pages,
// the sequential agent chain, follow-up questions and model comparison.
//
// An Executor owns all session state. Long-running operations hold a
// single-flight guard for their whole duration and a second trigger is
// refused with ErrBusy rather than queued. Field edits (document text,
// notes, agent settings) are not guarded and race with in-flight writes on
// a last-writer-wins basis.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/llm"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/soyeahso/reviewdesk/internal/notes"
	"github.com/soyeahso/reviewdesk/internal/pagerange"
	"github.com/soyeahso/reviewdesk/internal/pdf"
	"github.com/soyeahso/reviewdesk/internal/store"
)

const (
	defaultOCRModel      = "gemini-2.5-flash"
	defaultFollowUpModel = "gemini-2.5-flash"
	defaultPageRange     = "1-5"
)

// Config holds executor settings taken from the pipeline config section.
type Config struct {
	OCRModel      string
	FollowUpModel string
	MaxPages      int
	Models        []string // catalog offered to the front end
	Credential    string   // initial API key
}

// Executor owns one review session.
type Executor struct {
	cfg        Config
	gateway    llm.Gateway
	rasterizer pdf.Rasterizer
	agents     *agent.Registry
	metrics    store.MetricsStore
	hooks      *hooks.Manager
	log        *logging.Logger

	busy atomic.Bool

	mu           sync.RWMutex
	credential   string
	pages        []domain.PageImage
	pageRange    string
	ocrModel     string
	documentText string
	outputs      []*domain.AgentOutput // indexed by pipeline position
	running      int                   // position in flight, -1 when idle
	notes        string
	comparison   *domain.ComparisonResult
	view         View
}

// New creates an executor with a fresh session. hm may be nil.
func New(
	cfg Config,
	gateway llm.Gateway,
	rasterizer pdf.Rasterizer,
	agents *agent.Registry,
	metrics store.MetricsStore,
	hm *hooks.Manager,
	log *logging.Logger,
) *Executor {
	if cfg.OCRModel == "" {
		cfg.OCRModel = defaultOCRModel
	}
	if cfg.FollowUpModel == "" {
		cfg.FollowUpModel = defaultFollowUpModel
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = pdf.DefaultMaxPages
	}

	e := &Executor{
		cfg:        cfg,
		gateway:    gateway,
		rasterizer: rasterizer,
		agents:     agents,
		metrics:    metrics,
		hooks:      hm,
		log:        log.Sub("pipeline"),
		credential: strings.TrimSpace(cfg.Credential),
	}
	e.resetSession()
	return e
}

// resetSession restores every session field except the credential. Callers hold mu or own e exclusively.
func (e *Executor) resetSession() {
	e.pages = nil
	e.pageRange = defaultPageRange
	e.ocrModel = e.cfg.OCRModel
	e.documentText = ""
	e.outputs = make([]*domain.AgentOutput, e.agents.Len())
	e.running = -1
	e.notes = notes.Default
	e.comparison = nil
	e.view = ViewUpload
}

// begin takes the single-flight guard for op.
func (e *Executor) begin(ctx context.Context, op string) error {
	if !e.busy.CompareAndSwap(false, true) {
		e.log.Debug().Str("op", op).Msg("rejected while busy")
		return &PreconditionError{Op: op, Err: ErrBusy}
	}
	e.emit(ctx, hooks.EventProcessingChanged, map[string]any{"processing": true, "op": op})
	return nil
}

// end releases the guard taken by begin.
func (e *Executor) end(ctx context.Context, op string) {
	e.busy.Store(false)
	e.emit(ctx, hooks.EventProcessingChanged, map[string]any{"processing": false, "op": op})
}

// Processing reports whether an operation holds the guard.
func (e *Executor) Processing() bool {
	return e.busy.Load()
}

func (e *Executor) emit(ctx context.Context, event string, data map[string]any) {
	if e.hooks == nil {
		return
	}
	e.hooks.Emit(context.WithoutCancel(ctx), event, data)
}

func (e *Executor) reject(op string, err error) error {
	e.log.Debug().Str("op", op).Err(err).Msg("precondition failed")
	return &PreconditionError{Op: op, Err: err}
}

// requireCredential returns the session credential or ErrCredentialRequired.
func (e *Executor) requireCredential(op string) (string, error) {
	e.mu.RLock()
	credential := e.credential
	e.mu.RUnlock()
	if credential == "" {
		return "", e.reject(op, llm.ErrCredentialRequired)
	}
	return credential, nil
}

// SelectPages returns the zero-based indices expr picks from the loaded pages.
func (e *Executor) SelectPages(expr string) []int {
	e.mu.RLock()
	n := len(e.pages)
	e.mu.RUnlock()
	return pagerange.Parse(expr, n)
}

// Models returns the model catalog.
func (e *Executor) Models() []string {
	return append([]string(nil), e.cfg.Models...)
}
