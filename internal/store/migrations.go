package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create run metrics",
		SQL: `
			CREATE TABLE run_metrics (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				agent       TEXT NOT NULL,
				latency     REAL NOT NULL,
				tokens      INTEGER NOT NULL DEFAULT 0,
				model       TEXT NOT NULL,
				recorded_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
			);

			CREATE INDEX idx_run_metrics_agent ON run_metrics (agent, id);
		`,
	},
}
