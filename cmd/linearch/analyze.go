package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/analyze"
	"github.com/tom26757207-cyber/line-archive/internal/render"
)

func analyzeCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "analyze [session-id]",
		Short: "Run the AI case analysis and attach it to the session",
		Long: `Samples the session's messages (first and last half-window when the
transcript exceeds the sample window), submits them to the analysis service,
validates the response and attaches it. A new analysis replaces any prior
one wholesale. Interrupt with Ctrl-C to cancel the request; the session is
left untouched on any failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, arch, closeStore, err := openArchive()
			if err != nil {
				return err
			}
			defer closeStore()

			if cfg.OpenAIAPIKey == "" {
				return fmt.Errorf("no API key: set openai_api_key in the config file or OPENAI_API_KEY in the environment")
			}

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			s, err := findSession(arch, arg)
			if err != nil {
				return err
			}
			if len(s.Messages) == 0 {
				return fmt.Errorf("session %s has no messages to analyze", s.ID)
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			collab := analyze.NewOpenAIClient(analyze.OpenAIConfig{
				APIKey:  cfg.OpenAIAPIKey,
				BaseURL: cfg.OpenAIBaseURL,
				Model:   cfg.Model,
			}, logger)
			runner := analyze.NewRunner(collab, cfg.SampleWindow, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(os.Stderr, "Analyzing %s (%d messages)...\n", s.ID, len(s.Messages))
			a, err := runner.Run(ctx, arch, s)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Attached analysis with %d events.\n\n", len(a.Events))
			fmt.Print(render.Report(s))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log collaborator request details")

	return cmd
}
