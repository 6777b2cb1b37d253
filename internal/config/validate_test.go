package config

import (
	"testing"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuePaths(issues []ValidationIssue) []string {
	var paths []string
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	return paths
}

func validAgent(id string) domain.AgentConfig {
	return domain.AgentConfig{
		ID:    id,
		Name:  "Agent " + id,
		Model: "gemini-2.5-flash",
		GenerationParams: domain.GenerationParams{
			Temperature: 0.3,
			TopP:        0.9,
			MaxTokens:   1500,
		},
	}
}

func TestValidate_ValidDefaults(t *testing.T) {
	cfg := Defaults()
	issues := Validate(&cfg)
	assert.Empty(t, issues)
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Defaults()

	cfg.Gateway.Port = -1
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.port")

	cfg.Gateway.Port = 70000
	issues = Validate(&cfg)
	assert.NotEmpty(t, issues)
}

func TestValidate_ValidPort(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Port = 0
	assert.Empty(t, Validate(&cfg))

	cfg.Gateway.Port = 65535
	assert.Empty(t, Validate(&cfg))

	cfg.Gateway.Port = 8080
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_InvalidBind(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Bind = "tailnet"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Path, "gateway.bind")
}

func TestValidate_ValidBinds(t *testing.T) {
	for _, bind := range []string{"auto", "lan", "loopback", ""} {
		cfg := Defaults()
		cfg.Gateway.Bind = bind
		assert.Empty(t, Validate(&cfg), "bind %q should be valid", bind)
	}
}

func TestValidate_CustomBindNeedsHost(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Bind = "custom"
	assert.Equal(t, []string{"gateway.customBindHost"}, issuePaths(Validate(&cfg)))

	cfg.Gateway.CustomBindHost = "10.0.0.5"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_TLSNeedsCertAndKey(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.TLS.Enabled = true
	cfg.Gateway.TLS.CertPath = "/etc/cert.pem"
	assert.Equal(t, []string{"gateway.tls"}, issuePaths(Validate(&cfg)))

	cfg.Gateway.TLS.KeyPath = "/etc/key.pem"
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_PipelineBounds(t *testing.T) {
	tests := []struct {
		name     string
		maxPages int
		dpi      float64
		want     []string
	}{
		{"defaults", 30, 108, nil},
		{"lower bounds", 1, 36, nil},
		{"upper bounds", 200, 600, nil},
		{"zero pages", 0, 108, []string{"pipeline.maxPages"}},
		{"too many pages", 201, 108, []string{"pipeline.maxPages"}},
		{"dpi too low", 30, 35, []string{"pipeline.dpi"}},
		{"both", 500, 1200, []string{"pipeline.maxPages", "pipeline.dpi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Pipeline.MaxPages = tt.maxPages
			cfg.Pipeline.DPI = tt.dpi
			assert.Equal(t, tt.want, issuePaths(Validate(&cfg)))
		})
	}
}

func TestValidate_Agents(t *testing.T) {
	cfg := Defaults()
	cfg.Agents = []domain.AgentConfig{validAgent("1"), validAgent("2")}
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_AgentRanges(t *testing.T) {
	cfg := Defaults()
	hot := validAgent("1")
	hot.Temperature = 2.5
	short := validAgent("2")
	short.MaxTokens = 50
	cfg.Agents = []domain.AgentConfig{hot, short}

	assert.Equal(t, []string{"agents[0].temperature", "agents[1].max_tokens"}, issuePaths(Validate(&cfg)))
}

func TestValidate_AgentMissingModel(t *testing.T) {
	cfg := Defaults()
	a := validAgent("1")
	a.Model = ""
	cfg.Agents = []domain.AgentConfig{a}

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "agents[0].model", issues[0].Path)
}

func TestValidate_DuplicateAgentIDs(t *testing.T) {
	cfg := Defaults()
	cfg.Agents = []domain.AgentConfig{validAgent("1"), validAgent("2"), validAgent("1")}

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "agents[2].id", issues[0].Path)
	assert.Contains(t, issues[0].Message, "duplicate")
}

func TestValidate_InvalidMetricsStore(t *testing.T) {
	cfg := Defaults()
	cfg.Metrics.Store = "postgres"
	assert.Equal(t, []string{"metrics.store"}, issuePaths(Validate(&cfg)))
}

func TestValidate_ValidMetricsStores(t *testing.T) {
	for _, store := range []string{"memory", "sqlite", ""} {
		cfg := Defaults()
		cfg.Metrics.Store = store
		assert.Empty(t, Validate(&cfg), "store %q should be valid", store)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Equal(t, "logging.level", issues[0].Path)
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"silent", "fatal", "error", "warn", "info", "debug", "trace", ""} {
		cfg := Defaults()
		cfg.Logging.Level = level
		assert.Empty(t, Validate(&cfg), "level %q should be valid", level)
	}
}

func TestValidate_InvalidConsoleStyle(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.ConsoleStyle = "fancy"
	issues := Validate(&cfg)
	assert.NotEmpty(t, issues)
	assert.Equal(t, "logging.consoleStyle", issues[0].Path)
}

func TestValidate_ValidConsoleStyles(t *testing.T) {
	for _, style := range []string{"pretty", "compact", "json", ""} {
		cfg := Defaults()
		cfg.Logging.ConsoleStyle = style
		assert.Empty(t, Validate(&cfg), "style %q should be valid", style)
	}
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := Defaults()
	cfg.Gemini.TimeoutSeconds = -1
	cfg.Gateway.MaxUploadMB = -5
	assert.Equal(t, []string{"gemini.timeoutSeconds", "gateway.maxUploadMB"}, issuePaths(Validate(&cfg)))
}

func TestValidate_MultipleIssues(t *testing.T) {
	cfg := Defaults()
	cfg.Gateway.Port = -1
	cfg.Gateway.Bind = "bad"
	cfg.Logging.Level = "bad"
	issues := Validate(&cfg)
	assert.Len(t, issues, 3)
}

func TestValidationIssueString(t *testing.T) {
	issue := ValidationIssue{Path: "gateway.port", Message: "out of range"}
	assert.Equal(t, "gateway.port: out of range", issue.String())
}
