package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so keys can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Gemini.APIKey = expandEnvVars(cfg.Gemini.APIKey)
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Variables
// already set win over file values, and missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{Message: "failed to load " + f + ": " + err.Error()}
		}
	}
	return nil
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Defaults()
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return Defaults(), err
	}

	cfg, err := Parse(data)
	if err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Parse decodes YAML config over the defaults and expands ${VAR} references
// in secret fields. Environment overrides are not applied.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	applyDefaults(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to a YAML config file.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = d.Gemini.TimeoutSeconds
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = d.Gateway.Port
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = d.Gateway.Bind
	}
	if cfg.Gateway.MaxUploadMB == 0 {
		cfg.Gateway.MaxUploadMB = d.Gateway.MaxUploadMB
	}
	if cfg.Pipeline.OCRModel == "" {
		cfg.Pipeline.OCRModel = d.Pipeline.OCRModel
	}
	if cfg.Pipeline.FollowUpModel == "" {
		cfg.Pipeline.FollowUpModel = d.Pipeline.FollowUpModel
	}
	if cfg.Pipeline.MaxPages == 0 {
		cfg.Pipeline.MaxPages = d.Pipeline.MaxPages
	}
	if cfg.Pipeline.DPI == 0 {
		cfg.Pipeline.DPI = d.Pipeline.DPI
	}
	if len(cfg.Pipeline.Models) == 0 {
		cfg.Pipeline.Models = d.Pipeline.Models
	}
	if cfg.Metrics.Store == "" {
		cfg.Metrics.Store = d.Metrics.Store
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = d.Logging.ConsoleStyle
	}
}

// applyEnvOverrides reads REVIEWDESK_* environment variables and overrides config values.
// The API key falls back to GEMINI_API_KEY, then API_KEY, when the file leaves it empty.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REVIEWDESK_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = port
		}
	}
	if v := os.Getenv("REVIEWDESK_GATEWAY_BIND"); v != "" {
		cfg.Gateway.Bind = v
	}
	if v := os.Getenv("REVIEWDESK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if cfg.Gemini.APIKey == "" {
		for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
			if v := os.Getenv(name); v != "" {
				cfg.Gemini.APIKey = v
				break
			}
		}
	}
}
