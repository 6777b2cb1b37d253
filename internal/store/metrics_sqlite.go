package store

import (
	"context"
	"fmt"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
)

// SQLiteMetricsStore keeps the log in a run_metrics table and aggregates in SQL.
type SQLiteMetricsStore struct {
	db *DB
}

var _ MetricsStore = (*SQLiteMetricsStore)(nil)

// NewSQLiteMetricsStore creates a metrics store backed by db.
func NewSQLiteMetricsStore(db *DB) *SQLiteMetricsStore {
	return &SQLiteMetricsStore{db: db}
}

func (s *SQLiteMetricsStore) Append(ctx context.Context, m domain.RunMetric) error {
	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO run_metrics (agent, latency, tokens, model) VALUES (?, ?, ?, ?)`,
		m.Agent, m.Latency, m.Tokens, m.Model,
	)
	if err != nil {
		return fmt.Errorf("appending run metric: %w", err)
	}
	return nil
}

func (s *SQLiteMetricsStore) List(ctx context.Context) ([]domain.RunMetric, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT agent, latency, tokens, model FROM run_metrics ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing run metrics: %w", err)
	}
	defer rows.Close()

	out := []domain.RunMetric{}
	for rows.Next() {
		var m domain.RunMetric
		if err := rows.Scan(&m.Agent, &m.Latency, &m.Tokens, &m.Model); err != nil {
			return nil, fmt.Errorf("scanning run metric: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteMetricsStore) Summary(ctx context.Context) (Summary, error) {
	var (
		sum     Summary
		latency float64
	)
	err := s.db.sql.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(tokens), 0), COALESCE(SUM(latency), 0) FROM run_metrics`,
	).Scan(&sum.TotalRuns, &sum.TotalTokens, &latency)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing run metrics: %w", err)
	}
	sum.AvgLatency = average(latency, sum.TotalRuns)

	rows, err := s.db.sql.QueryContext(ctx, `
		SELECT agent, COUNT(*), SUM(tokens), SUM(latency)
		FROM run_metrics
		GROUP BY agent
		ORDER BY MIN(id)
	`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing agents: %w", err)
	}
	defer rows.Close()

	sum.Agents = []AgentSummary{}
	for rows.Next() {
		var (
			a       AgentSummary
			agentLt float64
		)
		if err := rows.Scan(&a.Agent, &a.Runs, &a.Tokens, &agentLt); err != nil {
			return Summary{}, fmt.Errorf("scanning agent summary: %w", err)
		}
		a.AvgLatency = average(agentLt, a.Runs)
		sum.Agents = append(sum.Agents, a)
	}
	return sum, rows.Err()
}

func (s *SQLiteMetricsStore) Reset(ctx context.Context) error {
	if _, err := s.db.sql.ExecContext(ctx, `DELETE FROM run_metrics`); err != nil {
		return fmt.Errorf("resetting run metrics: %w", err)
	}
	return nil
}

func (s *SQLiteMetricsStore) Close() error {
	return s.db.Close()
}

// NewMetricsStore builds the store named by kind ("memory" or "sqlite").
// The SQLite variant uses a private in-memory database.
func NewMetricsStore(kind string, log *logging.Logger) (MetricsStore, error) {
	switch kind {
	case "", "memory":
		return NewMemoryMetricsStore(), nil
	case "sqlite":
		db, err := Open(MemoryPath, log)
		if err != nil {
			return nil, err
		}
		return NewSQLiteMetricsStore(db), nil
	default:
		return nil, fmt.Errorf("unknown metrics store %q", kind)
	}
}
