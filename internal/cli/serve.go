package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/soyeahso/reviewdesk/internal/gateway"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the review gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Gateway.Port = port
			}
			if bind != "" {
				cfg.Gateway.Bind = bind
			}
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			slog, closeLog, err := newLogger(cfg, logLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			sess, err := newSession(cfg, slog)
			if err != nil {
				return err
			}
			defer sess.Close()

			if !sess.exec.HasCredential() {
				slog.Warn().Msg("no Gemini API key configured, clients must send credential.set before running OCR or agents")
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := gateway.New(cfg, sess.exec, slog, gateway.WithHooks(sess.hooks))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (auto, lan, loopback, custom)")

	return cmd
}
