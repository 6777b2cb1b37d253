package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Page and resolution bounds accepted for rasterization.
const (
	MinPages = 1
	MaxPages = 200
	MinDPI   = 36
	MaxDPI   = 600
)

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// Gemini validation
	if cfg.Gemini.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "gemini.timeoutSeconds",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Gemini.TimeoutSeconds),
		})
	}

	// Gateway validation
	if cfg.Gateway.Port < 0 || cfg.Gateway.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Gateway.Port),
		})
	}

	validBinds := []string{"auto", "lan", "loopback", "custom"}
	if cfg.Gateway.Bind != "" && !slices.Contains(validBinds, cfg.Gateway.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Gateway.Bind),
		})
	}
	if cfg.Gateway.Bind == "custom" && cfg.Gateway.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.customBindHost",
			Message: "required when bind is custom",
		})
	}

	if cfg.Gateway.TLS.Enabled && (cfg.Gateway.TLS.CertPath == "" || cfg.Gateway.TLS.KeyPath == "") {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.tls",
			Message: "certPath and keyPath are required when TLS is enabled",
		})
	}

	if cfg.Gateway.MaxUploadMB < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.maxUploadMB",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Gateway.MaxUploadMB),
		})
	}

	// Pipeline validation
	if cfg.Pipeline.MaxPages < MinPages || cfg.Pipeline.MaxPages > MaxPages {
		issues = append(issues, ValidationIssue{
			Path:    "pipeline.maxPages",
			Message: fmt.Sprintf("must be %d-%d, got %d", MinPages, MaxPages, cfg.Pipeline.MaxPages),
		})
	}
	if cfg.Pipeline.DPI < MinDPI || cfg.Pipeline.DPI > MaxDPI {
		issues = append(issues, ValidationIssue{
			Path:    "pipeline.dpi",
			Message: fmt.Sprintf("must be %d-%d, got %g", MinDPI, MaxDPI, cfg.Pipeline.DPI),
		})
	}

	// Agents validation
	seen := make(map[string]bool, len(cfg.Agents))
	for i, a := range cfg.Agents {
		path := fmt.Sprintf("agents[%d]", i)
		if err := a.Validate(); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				path += "." + ve.Field
			}
			issues = append(issues, ValidationIssue{Path: path, Message: err.Error()})
			continue
		}
		if seen[a.ID] {
			issues = append(issues, ValidationIssue{
				Path:    path + ".id",
				Message: fmt.Sprintf("duplicate agent id %q", a.ID),
			})
		}
		seen[a.ID] = true
	}

	// Metrics validation
	validStores := []string{"memory", "sqlite"}
	if cfg.Metrics.Store != "" && !slices.Contains(validStores, cfg.Metrics.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "metrics.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Metrics.Store),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	return issues
}
