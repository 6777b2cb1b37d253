package store

import (
	"context"
	"math"
	"sync"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

// MetricsStore is the append-only run metrics log for one session.
type MetricsStore interface {
	// Append records one successful agent run.
	Append(ctx context.Context, m domain.RunMetric) error

	// List returns every metric in append order.
	List(ctx context.Context) ([]domain.RunMetric, error)

	// Summary aggregates the log for the dashboard.
	Summary(ctx context.Context) (Summary, error)

	// Reset empties the log. Only a whole-session reset calls this.
	Reset(ctx context.Context) error

	Close() error
}

// Summary holds dashboard aggregates.
type Summary struct {
	TotalRuns   int            `json:"totalRuns"`
	TotalTokens int            `json:"totalTokens"`
	AvgLatency  float64        `json:"avgLatency"` // seconds, two decimals
	Agents      []AgentSummary `json:"agents"`     // first-seen order
}

// AgentSummary aggregates the runs recorded under one agent name.
type AgentSummary struct {
	Agent      string  `json:"agent"`
	Runs       int     `json:"runs"`
	Tokens     int     `json:"tokens"`
	AvgLatency float64 `json:"avgLatency"`
}

// Summarize computes aggregates over metrics.
func Summarize(metrics []domain.RunMetric) Summary {
	s := Summary{Agents: []AgentSummary{}}
	var latency float64
	index := make(map[string]int)
	sums := make([]float64, 0)

	for _, m := range metrics {
		s.TotalRuns++
		s.TotalTokens += m.Tokens
		latency += m.Latency

		i, ok := index[m.Agent]
		if !ok {
			i = len(s.Agents)
			index[m.Agent] = i
			s.Agents = append(s.Agents, AgentSummary{Agent: m.Agent})
			sums = append(sums, 0)
		}
		s.Agents[i].Runs++
		s.Agents[i].Tokens += m.Tokens
		sums[i] += m.Latency
	}

	s.AvgLatency = average(latency, s.TotalRuns)
	for i := range s.Agents {
		s.Agents[i].AvgLatency = average(sums[i], s.Agents[i].Runs)
	}
	return s
}

// average divides by max(n, 1) and rounds to two decimals.
func average(sum float64, n int) float64 {
	return math.Round(sum/float64(max(n, 1))*100) / 100
}

// MemoryMetricsStore keeps the log in a slice.
type MemoryMetricsStore struct {
	mu      sync.RWMutex
	metrics []domain.RunMetric
}

var _ MetricsStore = (*MemoryMetricsStore)(nil)

// NewMemoryMetricsStore creates an empty in-memory log.
func NewMemoryMetricsStore() *MemoryMetricsStore {
	return &MemoryMetricsStore{}
}

func (s *MemoryMetricsStore) Append(_ context.Context, m domain.RunMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
	return nil
}

func (s *MemoryMetricsStore) List(_ context.Context) ([]domain.RunMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RunMetric, len(s.metrics))
	copy(out, s.metrics)
	return out, nil
}

func (s *MemoryMetricsStore) Summary(ctx context.Context) (Summary, error) {
	list, _ := s.List(ctx)
	return Summarize(list), nil
}

func (s *MemoryMetricsStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = nil
	return nil
}

func (s *MemoryMetricsStore) Close() error { return nil }
