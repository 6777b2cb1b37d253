package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soyeahso/reviewdesk/internal/config"
	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewdesk",
		Short: "reviewdesk: LLM-assisted drug label review",
		Long: "reviewdesk transcribes regulatory PDFs with a multimodal model and runs\n" +
			"a fixed chain of review agents over the text, serving the session to a\n" +
			"browser front end over WebSocket.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			if err := config.LoadDotEnv(paths.DotEnv, ".env"); err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.reviewdesk/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newPagesCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// loadConfig reads and validates the config file. Validation issues are
// logged one per line before the error is returned.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return cfg, err
	}
	if issues := config.Validate(&cfg); len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return cfg, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}
	return cfg, nil
}

// newLogger builds the long-running logger from the logging section. A
// non-empty flagLevel (from --log-level) wins over the file. The returned
// func closes the file sink.
func newLogger(cfg config.Config, flagLevel string) (*logging.Logger, func(), error) {
	level := cfg.Logging.Level
	if flagLevel != "" {
		level = flagLevel
	}
	opts := logging.Options{Level: level, Style: cfg.Logging.ConsoleStyle}

	if cfg.Logging.File == "" {
		return logging.NewWithOptions(opts), func() {}, nil
	}

	path := cfg.Logging.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(paths.Logs, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	opts.File = f
	return logging.NewWithOptions(opts), func() { f.Close() }, nil
}
