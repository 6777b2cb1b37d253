package store

import (
	"context"
	"testing"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(MemoryPath, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// stores returns one of each implementation so behaviour tests run against both.
func stores(t *testing.T) map[string]MetricsStore {
	t.Helper()
	return map[string]MetricsStore{
		"memory": NewMemoryMetricsStore(),
		"sqlite": NewSQLiteMetricsStore(testDB(t)),
	}
}

var sample = []domain.RunMetric{
	{Agent: "摘要專家", Latency: 1.5, Tokens: 100, Model: "gemini-2.5-flash"},
	{Agent: "合約資料分析師", Latency: 2.25, Tokens: 300, Model: "gemini-2.5-flash"},
	{Agent: "摘要專家", Latency: 0.5, Tokens: 50, Model: "gemini-2.5-flash-lite"},
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/nested/metrics.db"
	db, err := Open(path, logging.New(nil, "silent"))
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.sql.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.migrate())

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_RunMetricsTableExists(t *testing.T) {
	db := testDB(t)

	var name string
	err := db.sql.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "run_metrics",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "run_metrics", name)
}

// --- MetricsStore behaviour ---

func TestMetricsStore_AppendAndListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, m := range sample {
				require.NoError(t, s.Append(ctx, m))
			}
			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestMetricsStore_EmptyList(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			sum, err := s.Summary(ctx)
			require.NoError(t, err)
			assert.Zero(t, sum.TotalRuns)
			assert.Zero(t, sum.TotalTokens)
			assert.Zero(t, sum.AvgLatency)
			assert.Empty(t, sum.Agents)
		})
	}
}

func TestMetricsStore_Summary(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, m := range sample {
				require.NoError(t, s.Append(ctx, m))
			}
			sum, err := s.Summary(ctx)
			require.NoError(t, err)

			assert.Equal(t, 3, sum.TotalRuns)
			assert.Equal(t, 450, sum.TotalTokens)
			assert.Equal(t, 1.42, sum.AvgLatency) // 4.25 / 3

			require.Len(t, sum.Agents, 2)
			assert.Equal(t, AgentSummary{Agent: "摘要專家", Runs: 2, Tokens: 150, AvgLatency: 1.0}, sum.Agents[0])
			assert.Equal(t, AgentSummary{Agent: "合約資料分析師", Runs: 1, Tokens: 300, AvgLatency: 2.25}, sum.Agents[1])
		})
	}
}

func TestMetricsStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryMetricsStore()
	require.NoError(t, s.Append(ctx, sample[0]))

	got, _ := s.List(ctx)
	got[0].Agent = "renamed"

	again, _ := s.List(ctx)
	assert.Equal(t, "摘要專家", again[0].Agent)
}

func TestMetricsStore_Reset(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, m := range sample {
				require.NoError(t, s.Append(ctx, m))
			}
			require.NoError(t, s.Reset(ctx))

			got, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Append(ctx, sample[1]))
			got, _ = s.List(ctx)
			assert.Len(t, got, 1)
		})
	}
}

func TestNewMetricsStore(t *testing.T) {
	log := logging.New(nil, "silent")

	s, err := NewMetricsStore("memory", log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryMetricsStore{}, s)

	s, err = NewMetricsStore("", log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryMetricsStore{}, s)

	s, err = NewMetricsStore("sqlite", log)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteMetricsStore{}, s)
	require.NoError(t, s.Close())

	_, err = NewMetricsStore("redis", log)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	sum := Summarize(nil)
	assert.Zero(t, sum.TotalRuns)
	assert.NotNil(t, sum.Agents)

	sum = Summarize(sample)
	assert.Equal(t, 3, sum.TotalRuns)
	assert.Equal(t, 1.42, sum.AvgLatency)
}
