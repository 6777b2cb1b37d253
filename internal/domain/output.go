package domain

import (
	"math"
	"time"
)

// inputPreviewLen is how many characters of an agent's input are kept on its output record.
const inputPreviewLen = 100

// AgentOutput is the result of running one agent once.
type AgentOutput struct {
	AgentID string  `json:"agentId"`
	Input   string  `json:"input"` // preview only, see PreviewInput
	Output  string  `json:"output"`
	Seconds float64 `json:"time"`
	Tokens  int     `json:"tokens"`
	Model   string  `json:"model"`
}

// RunMetric is an append-only log entry for one successful agent run.
// Agent holds the display name as it was at run time.
type RunMetric struct {
	Agent   string  `json:"agent"`
	Latency float64 `json:"latency"`
	Tokens  int     `json:"tokens"`
	Model   string  `json:"model"`
}

// StageState is the status of one pipeline position.
type StageState string

const (
	StageNotRun    StageState = "not_run"
	StageRunning   StageState = "running"
	StageCompleted StageState = "completed"
)

// ComparisonSide is one model's half of a comparison run.
type ComparisonSide struct {
	Model   string  `json:"model"`
	Output  string  `json:"output,omitempty"`
	Seconds float64 `json:"time,omitempty"`
	Tokens  int     `json:"tokens,omitempty"`
	Error   string  `json:"error,omitempty"`
	Done    bool    `json:"done"`
}

// ComparisonResult holds a side-by-side run of one agent on two models.
type ComparisonResult struct {
	ID        string         `json:"id"`
	AgentID   string         `json:"agentId"`
	AgentName string         `json:"agentName"`
	A         ComparisonSide `json:"a"`
	B         ComparisonSide `json:"b"`
	StartedAt time.Time      `json:"startedAt"`
}

// Clone returns a copy of r.
func (r *ComparisonResult) Clone() *ComparisonResult {
	c := *r
	return &c
}

// PreviewInput truncates s to its first 100 characters followed by "...".
// Inputs at or under the limit are returned unchanged.
func PreviewInput(s string) string {
	r := []rune(s)
	if len(r) <= inputPreviewLen {
		return s
	}
	return string(r[:inputPreviewLen]) + "..."
}

// Seconds converts d to seconds rounded to two decimals.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
