// Package hooks provides an event-driven hook system for review pipeline events.
package hooks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soyeahso/reviewdesk/internal/logging"
)

// Event names for the hook system.
const (
	EventProcessingChanged = "processing.changed"
	EventStageStarted      = "stage.started"
	EventStageCompleted    = "stage.completed"
	EventStageFailed       = "stage.failed"
	EventDocumentLoaded    = "document.loaded"
	EventOCRCompleted      = "ocr.completed"
	EventComparisonUpdated = "comparison.updated"
	EventNotesUpdated      = "notes.updated"
	EventOutputsCleared    = "outputs.cleared"
	EventSessionReset      = "session.reset"
	EventGatewayStart      = "gateway.start"
	EventGatewayStop       = "gateway.stop"
)

// AllEvents lists all known hook event names.
var AllEvents = []string{
	EventProcessingChanged,
	EventStageStarted,
	EventStageCompleted,
	EventStageFailed,
	EventDocumentLoaded,
	EventOCRCompleted,
	EventComparisonUpdated,
	EventNotesUpdated,
	EventOutputsCleared,
	EventSessionReset,
	EventGatewayStart,
	EventGatewayStop,
}

// PipelineEvents lists the events clients of the gateway receive.
var PipelineEvents = AllEvents[:len(AllEvents)-2]

// Payload carries event data to hook handlers.
//
// Seq increases with every Emit on the same manager, so listeners can order
// events from concurrent operations. It is not dense: events nobody listens
// to still consume a number.
type Payload struct {
	Seq   int64          `json:"seq"`
	Event string         `json:"event"`
	At    time.Time      `json:"at"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler is a function that handles a hook event.
// Returning an error or panicking logs the failure but does not stop processing.
type Handler func(ctx context.Context, p Payload) error

// Manager manages hook registrations and dispatches events.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	seq      atomic.Int64
	now      func() time.Time
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		now:      time.Now,
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for the given event.
// The name identifies the handler in logs.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// OnEach registers one handler under the same name for every listed event.
func (m *Manager) OnEach(events []string, name string, handler Handler) {
	for _, e := range events {
		m.On(e, name, handler)
	}
}

// Emit stamps the event and dispatches it to every handler synchronously,
// in registration order. It returns the sequence number it assigned.
func (m *Manager) Emit(ctx context.Context, event string, data map[string]any) int64 {
	p := Payload{
		Seq:   m.seq.Add(1),
		Event: event,
		At:    m.now().UTC(),
		Data:  data,
	}

	m.mu.RLock()
	handlers := append([]namedHandler(nil), m.handlers[event]...)
	m.mu.RUnlock()

	for _, h := range handlers {
		if err := m.call(ctx, h, p); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", event).
				Str("handler", h.name).
				Int64("seq", p.Seq).
				Msg("hook handler error")
		}
	}
	return p.Seq
}

func (m *Manager) call(ctx context.Context, h namedHandler, p Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.handler(ctx, p)
}

// Count returns the number of handlers registered for an event.
func (m *Manager) Count(event string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[event])
}
