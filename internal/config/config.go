package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// DefaultModels is the model catalog offered to the front end.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gemini: GeminiConfig{
			TimeoutSeconds: 300,
		},
		Gateway: GatewayConfig{
			Port:        18789,
			Bind:        "loopback",
			MaxUploadMB: 50,
		},
		Pipeline: PipelineConfig{
			OCRModel:      "gemini-2.5-flash",
			FollowUpModel: "gemini-2.5-flash",
			MaxPages:      30,
			DPI:           108,
			Models:        append([]string(nil), DefaultModels...),
		},
		Metrics: MetricsConfig{
			Store: "memory",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
