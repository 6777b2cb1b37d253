package config

import "github.com/soyeahso/reviewdesk/internal/domain"

// Config is the root configuration for reviewdesk.
type Config struct {
	Gemini   GeminiConfig         `yaml:"gemini,omitempty"`
	Gateway  GatewayConfig        `yaml:"gateway,omitempty"`
	Pipeline PipelineConfig       `yaml:"pipeline,omitempty"`
	Agents   []domain.AgentConfig `yaml:"agents,omitempty"` // replaces the built-in five when set
	Metrics  MetricsConfig        `yaml:"metrics,omitempty"`
	Logging  LoggingConfig        `yaml:"logging,omitempty"`
}

// GeminiConfig configures the Gemini generation backend.
type GeminiConfig struct {
	APIKey         string `yaml:"apiKey,omitempty"`
	BaseURL        string `yaml:"baseUrl,omitempty"` // empty means the public endpoint
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// GatewayConfig controls the gateway HTTP/WebSocket server.
type GatewayConfig struct {
	Port           int              `yaml:"port,omitempty"`
	Bind           string           `yaml:"bind,omitempty"` // "auto" | "lan" | "loopback" | "custom"
	CustomBindHost string           `yaml:"customBindHost,omitempty"`
	TLS            GatewayTLS       `yaml:"tls,omitempty"`
	ControlUI      GatewayControlUI `yaml:"controlUi,omitempty"`
	MaxUploadMB    int              `yaml:"maxUploadMB,omitempty"`
}

// GatewayTLS configures TLS for the gateway.
type GatewayTLS struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	CertPath string `yaml:"certPath,omitempty"`
	KeyPath  string `yaml:"keyPath,omitempty"`
}

// GatewayControlUI configures the browser front end's access to the gateway.
type GatewayControlUI struct {
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// PipelineConfig holds OCR and follow-up settings plus the model catalog.
type PipelineConfig struct {
	OCRModel      string   `yaml:"ocrModel,omitempty"`
	FollowUpModel string   `yaml:"followUpModel,omitempty"`
	MaxPages      int      `yaml:"maxPages,omitempty"`
	DPI           float64  `yaml:"dpi,omitempty"`
	Models        []string `yaml:"models,omitempty"`
}

// MetricsConfig selects the run metrics backend.
type MetricsConfig struct {
	Store string `yaml:"store,omitempty"` // "memory" | "sqlite"
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File         string `yaml:"file,omitempty"`
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}
