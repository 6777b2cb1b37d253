// Package agent holds the ordered set of review agents that make up the pipeline.
package agent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

// ErrPositionOutOfRange is returned for a pipeline position with no agent.
var ErrPositionOutOfRange = errors.New("no agent at that pipeline position")

// ContextSeparator sits between an agent's prompt template and its input text.
const ContextSeparator = "\n\n---\nCONTEXT:\n"

// ComposePrompt builds the full prompt sent for one agent run.
func ComposePrompt(a domain.AgentConfig, input string) string {
	return a.UserPrompt + ContextSeparator + input
}

// Registry is a fixed-length, ordered list of agents indexed by pipeline position.
// Agents are edited in place; they are never added, removed, or reordered.
type Registry struct {
	mu     sync.RWMutex
	agents []domain.AgentConfig
}

// NewRegistry validates agents and creates a registry over a copy of them.
func NewRegistry(agents []domain.AgentConfig) (*Registry, error) {
	if len(agents) == 0 {
		return nil, errors.New("agent registry needs at least one agent")
	}
	seen := make(map[string]bool, len(agents))
	for i, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("agent %d: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
	}
	list := make([]domain.AgentConfig, len(agents))
	copy(list, agents)
	return &Registry{agents: list}, nil
}

// Len returns the number of pipeline positions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// Get returns a copy of the agent at position.
func (r *Registry) Get(position int) (domain.AgentConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if position < 0 || position >= len(r.agents) {
		return domain.AgentConfig{}, fmt.Errorf("%w: %d", ErrPositionOutOfRange, position)
	}
	return r.agents[position], nil
}

// List returns a copy of all agents in pipeline order.
func (r *Registry) List() []domain.AgentConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AgentConfig, len(r.agents))
	copy(out, r.agents)
	return out
}

// Update replaces the agent at position. The identifier is stable: an empty
// ID keeps the current one and a different ID is rejected.
func (r *Registry) Update(position int, a domain.AgentConfig) (domain.AgentConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position < 0 || position >= len(r.agents) {
		return domain.AgentConfig{}, fmt.Errorf("%w: %d", ErrPositionOutOfRange, position)
	}

	current := r.agents[position]
	if a.ID == "" {
		a.ID = current.ID
	}
	if a.ID != current.ID {
		return domain.AgentConfig{}, &domain.ValidationError{Field: "id", Message: fmt.Sprintf("cannot change from %q to %q", current.ID, a.ID)}
	}
	if err := a.Validate(); err != nil {
		return domain.AgentConfig{}, err
	}

	r.agents[position] = a
	return a, nil
}
