package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/soyeahso/reviewdesk/internal/agent"
	"github.com/soyeahso/reviewdesk/internal/config"
	"github.com/soyeahso/reviewdesk/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show reviewdesk paths and a configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "reviewdesk %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(w, "Config:   %s\n", paths.Config)
			fmt.Fprintf(w, "Logs:     %s\n", paths.Logs)
			fmt.Fprintln(w)

			if _, err := os.Stat(paths.Config); os.IsNotExist(err) {
				fmt.Fprintln(w, "Config:   not found (using defaults)")
			}
			cfg, err := config.Load(paths.Config)
			if err != nil {
				fmt.Fprintf(w, "Config:   error loading: %v\n", err)
				return nil
			}

			fmt.Fprintf(w, "Gateway:  port=%d bind=%s tls=%v maxUpload=%dMB\n",
				cfg.Gateway.Port, cfg.Gateway.Bind, cfg.Gateway.TLS.Enabled, cfg.Gateway.MaxUploadMB)

			key := "not set"
			if cfg.Gemini.APIKey != "" {
				key = "set"
			}
			fmt.Fprintf(w, "Gemini:   key=%s timeout=%ds\n", key, cfg.Gemini.TimeoutSeconds)
			fmt.Fprintf(w, "OCR:      model=%s maxPages=%d dpi=%g\n",
				cfg.Pipeline.OCRModel, cfg.Pipeline.MaxPages, cfg.Pipeline.DPI)
			fmt.Fprintf(w, "Models:   %s\n", strings.Join(cfg.Pipeline.Models, ", "))
			fmt.Fprintf(w, "Metrics:  store=%s\n", cfg.Metrics.Store)

			agents := cfg.Agents
			source := "config"
			if len(agents) == 0 {
				agents = agent.DefaultAgents()
				source = "built-in"
			}
			fmt.Fprintf(w, "Agents:   %d (%s)\n", len(agents), source)
			for i, a := range agents {
				fmt.Fprintf(w, "  %d. %s model=%s temp=%g topP=%g maxTokens=%d\n",
					i+1, a.Name, a.Model, a.Temperature, a.TopP, a.MaxTokens)
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(w, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(w, "  - %s\n", issue)
				}
			}

			return nil
		},
	}

	return cmd
}
