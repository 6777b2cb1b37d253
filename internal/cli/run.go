package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/soyeahso/reviewdesk/internal/logging"
	"github.com/soyeahso/reviewdesk/internal/pagerange"
	"github.com/soyeahso/reviewdesk/internal/pipeline"
	"github.com/spf13/cobra"
)

type runOptions struct {
	pdfPath  string
	textPath string
	pages    string
	ocrModel string
	agents   string
	apiKey   string
	outPath  string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run OCR and the agent chain on one document without the server",
		Long: "run transcribes the selected pages of a PDF (or reads an existing\n" +
			"transcript with --text) and runs the selected agents in pipeline order,\n" +
			"writing each output as a Markdown section.",
		Example: "  reviewdesk run --pdf label.pdf --pages 1-3 --agents 1-2 --out review.md",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.pdfPath == "") == (opts.textPath == "") {
				return errors.New("exactly one of --pdf or --text is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if opts.apiKey != "" {
				cfg.Gemini.APIKey = opts.apiKey
			}

			rlog, closeLog, err := newLogger(cfg, logLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			sess, err := newSession(cfg, rlog)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if opts.outPath != "" {
				f, err := os.Create(opts.outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return runHeadless(ctx, sess.exec, opts, out, rlog)
		},
	}

	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "PDF document to transcribe")
	cmd.Flags().StringVar(&opts.textPath, "text", "", "use an existing transcript instead of OCR")
	cmd.Flags().StringVar(&opts.pages, "pages", "", "pages to transcribe, e.g. 1-3,5 (default first five)")
	cmd.Flags().StringVar(&opts.ocrModel, "ocr-model", "", "override the transcription model")
	cmd.Flags().StringVar(&opts.agents, "agents", "", "agent positions to run, 1-based (default all)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (default from config or GEMINI_API_KEY)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write the report here instead of stdout")

	return cmd
}

// runHeadless drives one executor through OCR and the selected agents and
// writes a Markdown report to out. It stops at the first failing stage.
func runHeadless(ctx context.Context, exec *pipeline.Executor, opts runOptions, out io.Writer, log *logging.Logger) error {
	if opts.textPath != "" {
		data, err := os.ReadFile(opts.textPath)
		if err != nil {
			return err
		}
		exec.SetDocumentText(string(data))
	} else {
		data, err := os.ReadFile(opts.pdfPath)
		if err != nil {
			return err
		}
		if _, err := exec.LoadDocument(ctx, data); err != nil {
			return err
		}
		settings := pipeline.OCRSettings{}
		if opts.pages != "" {
			settings.PageRange = &opts.pages
		}
		if opts.ocrModel != "" {
			settings.Model = &opts.ocrModel
		}
		exec.ConfigureOCR(settings)
		if _, err := exec.StartOCR(ctx); err != nil {
			return err
		}
	}

	agents := exec.Agents()
	expr := opts.agents
	if expr == "" {
		expr = fmt.Sprintf("1-%d", len(agents))
	}
	positions := pagerange.Parse(expr, len(agents))
	if len(positions) == 0 {
		return fmt.Errorf("no agents selected by %q", expr)
	}

	fmt.Fprintf(out, "# Document\n\n%s\n", strings.TrimSpace(exec.DocumentText()))
	for _, pos := range positions {
		res, err := exec.ExecuteAgent(ctx, pos)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n# %d. %s\n\n%s\n", pos+1, agents[pos].Name, strings.TrimSpace(res.Output))
		log.Info().
			Str("agent", agents[pos].Name).
			Float64("latency", res.Seconds).
			Int("tokens", res.Tokens).
			Msg("stage done")
	}

	summary, err := exec.Summary(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int("runs", summary.TotalRuns).
		Int("tokens", summary.TotalTokens).
		Float64("avgLatency", summary.AvgLatency).
		Msg("run complete")
	return nil
}
